// Package domain contains entity without logic, just meta-data
package domain

import "errors"

const MaxDisplayNameLen = 36

var (
	ErrNameTooLong = errors.New("display name too long")
	ErrNameEmpty   = errors.New("display name empty")
)

// ConnID is the transport-assigned connection identifier.
// The domain never mints these; the transport layer owns uniqueness.
type ConnID string

// VoiceState is the voice sub-state of a participant.
// IsMuted is meaningful only while IsJoined is true.
type VoiceState struct {
	IsJoined bool `json:"isJoined"`
	IsMuted  bool `json:"isMuted"`
}

// Participant is one connected client inside a room.
type Participant struct {
	ID     ConnID     `json:"id"`
	Name   string     `json:"name"`
	RoomID RoomID     `json:"roomId"`
	Voice  VoiceState `json:"voiceState"`

	// blocked holds the connection ids whose voice signals this participant
	// chose to ignore. Grows monotonically until disconnect; stale entries
	// for long-gone participants are harmless.
	blocked map[ConnID]struct{}
}

// NewParticipant avoids raw literals in adapters and keeps construction obvious.
// Voice sub-state always starts as not-joined.
func NewParticipant(id ConnID, name string, roomID RoomID) (*Participant, error) {
	if len(name) == 0 {
		return nil, ErrNameEmpty
	}
	if len(name) > MaxDisplayNameLen {
		return nil, ErrNameTooLong
	}
	return &Participant{ID: id, Name: name, RoomID: roomID}, nil
}

// BlockVoice adds target to the block set. Idempotent.
func (p *Participant) BlockVoice(target ConnID) {
	if p.blocked == nil {
		p.blocked = make(map[ConnID]struct{})
	}
	p.blocked[target] = struct{}{}
}

// HasBlockedVoice reports whether this participant blocked target.
func (p *Participant) HasBlockedVoice(target ConnID) bool {
	_, ok := p.blocked[target]
	return ok
}

// BlockedVoiceIDs returns a snapshot of the block set.
func (p *Participant) BlockedVoiceIDs() []ConnID {
	out := make([]ConnID, 0, len(p.blocked))
	for id := range p.blocked {
		out = append(out, id)
	}
	return out
}
