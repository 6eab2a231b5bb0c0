package app

import (
	"testing"

	"github.com/LearnerSumit/yt-video-watch-backend/internal/domain"
)

func TestChangeVideo_AlwaysResetsPlayback(t *testing.T) {
	c := NewCoordinator(nil)
	conn := &fakeConn{}
	c.Join("c1", conn, "R1", "alice")

	c.SetPlayback("R1", "c1", domain.PlaybackState{IsPlaying: true, PositionSeconds: 500, Speed: 2})
	c.ChangeVideo("R1", "c1", domain.Video{Source: domain.SourceDirect, Reference: "http://x/v.mp4"})

	c.mu.Lock()
	r, _ := c.store.get("R1")
	playback := r.playback
	video := r.video
	c.mu.Unlock()

	want := domain.PlaybackState{IsPlaying: true, PositionSeconds: 0, Speed: 1}
	if playback != want {
		t.Errorf("playback after change = %+v, want %+v", playback, want)
	}
	if video == nil || video.Reference != "http://x/v.mp4" {
		t.Errorf("currentVideo = %+v", video)
	}
}

func TestSetPlayback_LastWriterWins(t *testing.T) {
	c := NewCoordinator(nil)
	c.Join("c1", &fakeConn{}, "R1", "alice")
	c.Join("c2", &fakeConn{}, "R1", "bob")

	c.SetPlayback("R1", "c1", domain.PlaybackState{IsPlaying: true, PositionSeconds: 10, Speed: 1})
	// A stale-looking rewind from the other client still wins: there is no
	// monotonic position check.
	c.SetPlayback("R1", "c2", domain.PlaybackState{IsPlaying: false, PositionSeconds: 3, Speed: 1})

	c.mu.Lock()
	r, _ := c.store.get("R1")
	got := r.playback
	c.mu.Unlock()

	if got.PositionSeconds != 3 || got.IsPlaying {
		t.Errorf("playback = %+v, want the later write", got)
	}
}

func TestPlayback_UnknownRoomNoop(t *testing.T) {
	c := NewCoordinator(nil)
	conn := &fakeConn{}
	c.Join("c1", conn, "R1", "alice")
	conn.reset()

	c.SetPlayback("nope", "c1", domain.PlaybackState{IsPlaying: true, Speed: 1})
	c.ChangeVideo("nope", "c1", domain.Video{Source: domain.SourceYouTube, Reference: "x"})

	if len(conn.events(t)) != 0 {
		t.Error("playback events for unknown rooms must emit nothing")
	}
}
