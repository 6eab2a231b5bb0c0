package app

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/LearnerSumit/yt-video-watch-backend/internal/domain"
)

// JoinVoice transitions the participant into voice chat and answers with the
// roster of everyone already in voice, annotated with the joiner's own block
// flags. The joiner initiates one peer connection per roster entry; the
// relay never initiates anything.
func (c *Coordinator) JoinVoice(roomID domain.RoomID, id domain.ConnID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.store.get(roomID)
	if !ok {
		return
	}
	m := r.find(id)
	if m == nil {
		return
	}

	roster := make([]voicePeer, 0)
	for _, other := range r.others(id) {
		if !other.p.Voice.IsJoined {
			continue
		}
		roster = append(roster, voicePeer{
			ID:             other.p.ID,
			Name:           other.p.Name,
			VoiceState:     other.p.Voice,
			IsBlockedByYou: m.p.HasBlockedVoice(other.p.ID),
		})
	}

	m.p.Voice = domain.VoiceState{IsJoined: true, IsMuted: false}
	c.send(m.conn, voiceRosterEvent{Type: EventVoiceRoster, Users: roster})

	log.Info().Str("module", "app.voice").Str("conn", string(id)).Str("room", string(roomID)).Msg("joined voice")
}

// SetMuted flips the mute flag and tells everyone else in the room.
// Meaningful only while the participant is in voice.
func (c *Coordinator) SetMuted(roomID domain.RoomID, id domain.ConnID, muted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.store.get(roomID)
	if !ok {
		return
	}
	m := r.find(id)
	if m == nil || !m.p.Voice.IsJoined {
		return
	}
	m.p.Voice.IsMuted = muted
	c.fanOut(r.others(id), voiceStateUpdatedEvent{
		Type:       EventVoiceStateUpdated,
		UserID:     id,
		VoiceState: m.p.Voice,
	})
}

// BlockVoice adds target to the caller's block set. Idempotent, and private:
// no one is notified, the blocked side keeps signaling, enforcement is the
// client's job informed by isBlockedByYou flags.
func (c *Coordinator) BlockVoice(roomID domain.RoomID, id, target domain.ConnID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.store.get(roomID)
	if !ok {
		return
	}
	m := r.find(id)
	if m == nil {
		return
	}
	m.p.BlockVoice(target)
	log.Info().Str("module", "app.voice").Str("conn", string(id)).Str("target", string(target)).Msg("voice user blocked")
}

// BlockedVoice answers the caller with its own block list. Useful for
// re-hydrating client state after a refresh.
func (c *Coordinator) BlockedVoice(roomID domain.RoomID, id domain.ConnID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.store.get(roomID)
	if !ok {
		return
	}
	m := r.find(id)
	if m == nil {
		return
	}
	ids := m.p.BlockedVoiceIDs()
	if ids == nil {
		ids = []domain.ConnID{}
	}
	c.send(m.conn, blockedListEvent{Type: EventBlockedList, IDs: ids})
}

// RelayOffer forwards an opaque handshake payload to exactly one target.
// The payload is pass-through transport for the peers' own protocol; it is
// never parsed, validated, or stored here.
func (c *Coordinator) RelayOffer(target domain.ConnID, signal json.RawMessage, callerID domain.ConnID, callerName string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	conn, ok := c.store.connOf(target)
	if !ok {
		return
	}
	c.send(conn, incomingVoicePeerEvent{
		Type:       EventIncomingVoicePeer,
		Signal:     signal,
		CallerID:   callerID,
		CallerName: callerName,
	})
}

// RelayAnswer forwards the reply leg of the handshake back to the original
// caller, tagging it with the answering connection's id.
func (c *Coordinator) RelayAnswer(callerID domain.ConnID, signal json.RawMessage, sender domain.ConnID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	conn, ok := c.store.connOf(callerID)
	if !ok {
		return
	}
	c.send(conn, signalAnsweredEvent{Type: EventSignalAnswered, Signal: signal, ID: sender})
}

// LeaveVoice transitions the participant out of voice chat and notifies the
// whole room, the leaver included. Over-notifying is cheaper than tracking
// who subscribed to whom.
func (c *Coordinator) LeaveVoice(roomID domain.RoomID, id domain.ConnID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.store.get(roomID)
	if !ok {
		return
	}
	if m := r.find(id); m != nil {
		m.p.Voice = domain.VoiceState{}
	}
	// Broadcast even when the record is already gone: disconnect cleanup
	// rides the same path and peers still need the departure.
	c.fanOut(r.members, voicePeerLeftEvent{Type: EventVoicePeerLeft, UserID: id})

	log.Info().Str("module", "app.voice").Str("conn", string(id)).Str("room", string(roomID)).Msg("left voice")
}
