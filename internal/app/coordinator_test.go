package app

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/LearnerSumit/yt-video-watch-backend/internal/core"
	"github.com/LearnerSumit/yt-video-watch-backend/internal/domain"
)

// fakeConn records every frame queued on it.
type fakeConn struct {
	mu     sync.Mutex
	frames []core.Frame
}

func (f *fakeConn) TrySend(fr core.Frame) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, fr)
	return nil
}

func (f *fakeConn) Close() {}

// events decodes every recorded frame into a generic map.
func (f *fakeConn) events(t *testing.T) []map[string]any {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]map[string]any, 0, len(f.frames))
	for _, fr := range f.frames {
		var m map[string]any
		if err := json.Unmarshal(fr, &m); err != nil {
			t.Fatalf("bad frame %q: %v", fr, err)
		}
		out = append(out, m)
	}
	return out
}

func (f *fakeConn) byType(t *testing.T, typ string) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, e := range f.events(t) {
		if e["type"] == typ {
			out = append(out, e)
		}
	}
	return out
}

func (f *fakeConn) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = nil
}

func TestJoin_SnapshotToJoinerNoticeToOthers(t *testing.T) {
	c := NewCoordinator(nil)
	c1, c2 := &fakeConn{}, &fakeConn{}

	c.Join("c1", c1, "R1", "alice")
	c.Join("c2", c2, "R1", "bob")

	states := c2.byType(t, EventRoomState)
	if len(states) != 1 {
		t.Fatalf("joiner should get exactly one room-state, got %d", len(states))
	}
	parts := states[0]["participants"].([]any)
	if len(parts) != 2 {
		t.Errorf("snapshot should list 2 participants, got %d", len(parts))
	}
	if states[0]["currentVideo"] != nil {
		t.Errorf("fresh room snapshot should carry null currentVideo")
	}

	joined := c1.byType(t, EventParticipantJoined)
	if len(joined) != 1 {
		t.Fatalf("c1 should see one participant-joined, got %d", len(joined))
	}
	user := joined[0]["user"].(map[string]any)
	if user["id"] != "c2" || user["name"] != "bob" {
		t.Errorf("participant-joined carries %v", user)
	}
	if len(c2.byType(t, EventParticipantJoined)) != 0 {
		t.Error("joiner must not receive its own participant-joined")
	}
}

func TestJoin_EmptyNameRejected(t *testing.T) {
	c := NewCoordinator(nil)
	conn := &fakeConn{}

	c.Join("c1", conn, "R1", "")

	if len(conn.events(t)) != 0 {
		t.Error("rejected join must emit nothing")
	}
	c.mu.Lock()
	_, ok := c.store.get("R1")
	c.mu.Unlock()
	if ok {
		t.Error("rejected join must not create the room")
	}
}

func TestChat_ReachesWholeRoomIncludingSender(t *testing.T) {
	c := NewCoordinator(nil)
	c1, c2 := &fakeConn{}, &fakeConn{}
	c.Join("c1", c1, "R1", "alice")
	c.Join("c2", c2, "R1", "bob")

	msg := json.RawMessage(`{"text":"hi"}`)
	c.Chat("R1", "c1", msg)

	for name, conn := range map[string]*fakeConn{"c1": c1, "c2": c2} {
		got := conn.byType(t, EventNewMessage)
		if len(got) != 1 {
			t.Fatalf("%s should get one new-message, got %d", name, len(got))
		}
	}
}

func TestReaction_CarriesSenderID(t *testing.T) {
	c := NewCoordinator(nil)
	c1, c2 := &fakeConn{}, &fakeConn{}
	c.Join("c1", c1, "R1", "alice")
	c.Join("c2", c2, "R1", "bob")

	c.Reaction("R1", "c2", json.RawMessage(`{"emoji":"fire"}`))

	got := c1.byType(t, EventNewReaction)
	if len(got) != 1 {
		t.Fatalf("expected one new-reaction, got %d", len(got))
	}
	if got[0]["senderId"] != "c2" {
		t.Errorf("senderId = %v, want c2", got[0]["senderId"])
	}
	if len(c2.byType(t, EventNewReaction)) != 1 {
		t.Error("reactions are room-wide, sender included")
	}
}

func TestChatAndReaction_UnknownRoomNoop(t *testing.T) {
	c := NewCoordinator(nil)
	conn := &fakeConn{}
	c.Join("c1", conn, "R1", "alice")
	conn.reset()

	c.Chat("nope", "c1", json.RawMessage(`{}`))
	c.Reaction("nope", "c1", json.RawMessage(`{}`))

	if len(conn.events(t)) != 0 {
		t.Error("events for unknown rooms must be silent no-ops")
	}
}

// Full lifecycle walk: video change, playback update, then staggered
// disconnects tearing the room down.
func TestScenario_TwoClientLifecycle(t *testing.T) {
	c := NewCoordinator(nil)
	c1, c2 := &fakeConn{}, &fakeConn{}
	c.Join("c1", c1, "R1", "alice")
	c.Join("c2", c2, "R1", "bob")
	c1.reset()
	c2.reset()

	c.ChangeVideo("R1", "c1", domain.Video{Source: domain.SourceYouTube, Reference: "abc"})

	for name, conn := range map[string]*fakeConn{"c1": c1, "c2": c2} {
		got := conn.byType(t, EventVideoChanged)
		if len(got) != 1 {
			t.Fatalf("%s should get one video-changed, got %d", name, len(got))
		}
		video := got[0]["video"].(map[string]any)
		if video["source"] != "youtube" || video["reference"] != "abc" {
			t.Errorf("%s video-changed = %v", name, video)
		}
	}

	c.SetPlayback("R1", "c2", domain.PlaybackState{IsPlaying: true, PositionSeconds: 42, Speed: 1})

	updates := c1.byType(t, EventPlaybackUpdate)
	if len(updates) != 1 {
		t.Fatalf("c1 should get one playback-update, got %d", len(updates))
	}
	state := updates[0]["state"].(map[string]any)
	if state["positionSeconds"].(float64) != 42 {
		t.Errorf("positionSeconds = %v, want 42", state["positionSeconds"])
	}
	if len(c2.byType(t, EventPlaybackUpdate)) != 0 {
		t.Error("playback-update must exclude the sender")
	}

	c.Disconnect("c1")
	left := c2.byType(t, EventParticipantLeft)
	if len(left) != 1 || left[0]["userId"] != "c1" {
		t.Fatalf("c2 should see participant-left for c1, got %v", left)
	}
	c.mu.Lock()
	_, ok := c.store.get("R1")
	c.mu.Unlock()
	if !ok {
		t.Fatal("room must survive with one participant")
	}

	c.Disconnect("c2")
	c.mu.Lock()
	_, ok = c.store.get("R1")
	c.mu.Unlock()
	if ok {
		t.Fatal("room must be gone after the last disconnect")
	}
}

func TestJoin_MovingRoomsLeavesTheOldOne(t *testing.T) {
	c := NewCoordinator(nil)
	c1, c2 := &fakeConn{}, &fakeConn{}
	c.Join("c1", c1, "R1", "alice")
	c.Join("c2", c2, "R1", "bob")
	c2.reset()

	c.Join("c1", c1, "R2", "alice")

	left := c2.byType(t, EventParticipantLeft)
	if len(left) != 1 || left[0]["userId"] != "c1" {
		t.Errorf("old room should see participant-left, got %v", left)
	}
	c.mu.Lock()
	r2, ok := c.store.get("R2")
	c.mu.Unlock()
	if !ok || len(r2.members) != 1 {
		t.Error("c1 should now be the sole member of R2")
	}
}

func TestDisconnect_NeverJoinedIsNoop(t *testing.T) {
	c := NewCoordinator(nil)
	c.Disconnect("ghost")
}
