package app

import (
	"encoding/json"

	"github.com/LearnerSumit/yt-video-watch-backend/internal/domain"
)

// Outbound event names. The wire format is a flat JSON object with a
// "type" discriminator, mirroring the inbound envelopes.
const (
	EventRoomState         = "room-state"
	EventParticipantJoined = "participant-joined"
	EventParticipantLeft   = "participant-left"
	EventPlaybackUpdate    = "playback-update"
	EventVideoChanged      = "video-changed"
	EventNewMessage        = "new-message"
	EventNewReaction       = "new-reaction"
	EventVoiceRoster       = "voice-roster"
	EventVoiceStateUpdated = "voice-state-updated"
	EventBlockedList       = "blocked-list"
	EventIncomingVoicePeer = "incoming-voice-peer"
	EventSignalAnswered    = "signal-answered"
	EventVoicePeerLeft     = "voice-peer-left"
)

type roomStateEvent struct {
	Type          string                `json:"type"`
	Participants  []*domain.Participant `json:"participants"`
	PlaybackState domain.PlaybackState  `json:"playbackState"`
	CurrentVideo  *domain.Video         `json:"currentVideo"`
}

type participantJoinedEvent struct {
	Type string              `json:"type"`
	User *domain.Participant `json:"user"`
}

type participantLeftEvent struct {
	Type   string        `json:"type"`
	UserID domain.ConnID `json:"userId"`
}

type playbackUpdateEvent struct {
	Type  string               `json:"type"`
	State domain.PlaybackState `json:"state"`
}

type videoChangedEvent struct {
	Type  string       `json:"type"`
	Video domain.Video `json:"video"`
}

type newMessageEvent struct {
	Type    string          `json:"type"`
	Message json.RawMessage `json:"message"`
}

type newReactionEvent struct {
	Type     string          `json:"type"`
	Reaction json.RawMessage `json:"reaction"`
	SenderID domain.ConnID   `json:"senderId"`
}

// voicePeer is one roster entry handed to a joining voice participant.
// The joiner initiates one peer connection per entry.
type voicePeer struct {
	ID             domain.ConnID     `json:"id"`
	Name           string            `json:"name"`
	VoiceState     domain.VoiceState `json:"voiceState"`
	IsBlockedByYou bool              `json:"isBlockedByYou"`
}

type voiceRosterEvent struct {
	Type  string      `json:"type"`
	Users []voicePeer `json:"users"`
}

type voiceStateUpdatedEvent struct {
	Type       string            `json:"type"`
	UserID     domain.ConnID     `json:"userId"`
	VoiceState domain.VoiceState `json:"voiceState"`
}

type blockedListEvent struct {
	Type string          `json:"type"`
	IDs  []domain.ConnID `json:"ids"`
}

type incomingVoicePeerEvent struct {
	Type       string          `json:"type"`
	Signal     json.RawMessage `json:"signal"`
	CallerID   domain.ConnID   `json:"callerId"`
	CallerName string          `json:"callerName"`
}

type signalAnsweredEvent struct {
	Type   string          `json:"type"`
	Signal json.RawMessage `json:"signal"`
	ID     domain.ConnID   `json:"id"`
}

type voicePeerLeftEvent struct {
	Type   string        `json:"type"`
	UserID domain.ConnID `json:"userId"`
}
