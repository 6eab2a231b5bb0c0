package app

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/LearnerSumit/yt-video-watch-backend/internal/core"
	"github.com/LearnerSumit/yt-video-watch-backend/internal/domain"
)

// ChatRecord is what gets handed to the external record-persistence service.
type ChatRecord struct {
	RoomID    domain.RoomID   `json:"roomId"`
	Sender    domain.ConnID   `json:"sender"`
	Message   json.RawMessage `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
}

// Recorder ships chat records to durable storage. Implementations must not
// block the caller; the coordinator invokes it fire-and-forget.
type Recorder interface {
	RecordChat(ctx context.Context, rec ChatRecord)
}

// Coordinator owns the presence store and applies every inbound event to it.
//
// One mutex serializes mutation and emission: each event is handled to
// completion, broadcasts included, before the next one is applied. Emission
// is a non-blocking TrySend into per-connection buffers, so the lock is
// never held across real I/O. Unknown rooms and untracked connections are
// silent no-ops throughout; late and duplicate events are expected.
type Coordinator struct {
	mu    sync.Mutex
	store *store
	rec   Recorder // may be nil when persistence is unconfigured
}

func NewCoordinator(rec Recorder) *Coordinator {
	return &Coordinator{store: newStore(), rec: rec}
}

// Join puts the connection into roomID, creating the room on first join.
// The joiner gets the full room snapshot; everyone else gets the new
// participant's public fields. A connection already tracked in another room
// is moved: the old room sees the usual departure cascade first.
func (c *Coordinator) Join(id domain.ConnID, conn core.SignalConnection, roomID domain.RoomID, name string) {
	p, err := domain.NewParticipant(id, name, roomID)
	if err != nil {
		log.Warn().Err(err).Str("module", "app").Str("conn", string(id)).Msg("join rejected")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if prev, ok := c.store.roomOf(id); ok && prev.id != roomID {
		c.leaveLocked(id)
	}

	m := c.store.join(p, conn)
	r, _ := c.store.get(roomID)

	snapshot := make([]*domain.Participant, 0, len(r.members))
	for _, rm := range r.members {
		snapshot = append(snapshot, rm.p)
	}
	c.send(conn, roomStateEvent{
		Type:          EventRoomState,
		Participants:  snapshot,
		PlaybackState: r.playback,
		CurrentVideo:  r.video,
	})
	c.fanOut(r.others(id), participantJoinedEvent{Type: EventParticipantJoined, User: m.p})

	log.Info().Str("module", "app").Str("conn", string(id)).Str("room", string(roomID)).Str("name", name).Msg("participant joined")
}

// Disconnect is the implicit leave: room membership and voice membership end
// together. Safe to call for connections that never joined a room.
func (c *Coordinator) Disconnect(id domain.ConnID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.leaveLocked(id)
}

// leaveLocked removes the connection from its room and notifies the
// remaining participants. Callers hold c.mu.
func (c *Coordinator) leaveLocked(id domain.ConnID) {
	m, r, ok := c.store.leave(id)
	if !ok {
		return
	}
	rest := r.others(id)
	c.fanOut(rest, participantLeftEvent{Type: EventParticipantLeft, UserID: id})
	if m.p.Voice.IsJoined {
		// The participant record is already gone; peers still must learn
		// the voice connection died.
		c.fanOut(rest, voicePeerLeftEvent{Type: EventVoicePeerLeft, UserID: id})
	}
	log.Info().Str("module", "app").Str("conn", string(id)).Str("room", string(r.id)).Msg("participant left")
}

// Chat fans a message out to the whole room, sender included, and hands a
// copy to the recorder.
func (c *Coordinator) Chat(roomID domain.RoomID, sender domain.ConnID, message json.RawMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.store.get(roomID)
	if !ok {
		return
	}
	c.fanOut(r.members, newMessageEvent{Type: EventNewMessage, Message: message})

	if c.rec != nil {
		rec := ChatRecord{RoomID: roomID, Sender: sender, Message: message, Timestamp: time.Now().UTC()}
		go c.rec.RecordChat(context.Background(), rec)
	}
}

// Reaction fans a reaction out to the whole room with the sender's id attached.
func (c *Coordinator) Reaction(roomID domain.RoomID, sender domain.ConnID, reaction json.RawMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.store.get(roomID)
	if !ok {
		return
	}
	c.fanOut(r.members, newReactionEvent{Type: EventNewReaction, Reaction: reaction, SenderID: sender})
}

// send marshals v and queues it on one connection. Delivery is best effort:
// a full buffer drops the frame for that recipient only.
func (c *Coordinator) send(conn core.SignalConnection, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app").Msg("marshal event")
		return
	}
	if err := conn.TrySend(core.Frame(b)); err != nil {
		log.Debug().Err(err).Str("module", "app").Msg("drop frame")
	}
}

// fanOut marshals v once and queues it on every given member.
func (c *Coordinator) fanOut(members []*member, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app").Msg("marshal event")
		return
	}
	for _, m := range members {
		if err := m.conn.TrySend(core.Frame(b)); err != nil {
			log.Debug().Err(err).Str("module", "app").Str("conn", string(m.p.ID)).Msg("drop frame")
		}
	}
}
