package domain

import "github.com/google/uuid"

type RoomID string

const roomIDLen = 8

// NewRoomID mints a short, URL-friendly room identifier.
func NewRoomID() RoomID {
	return RoomID(uuid.NewString()[:roomIDLen])
}

// PlaybackState is the shared last-writer-wins player record of a room.
type PlaybackState struct {
	IsPlaying       bool    `json:"isPlaying"`
	PositionSeconds float64 `json:"positionSeconds"`
	Speed           float64 `json:"speed"`
}

// DefaultPlaybackState is the state a freshly created room starts with.
func DefaultPlaybackState() PlaybackState {
	return PlaybackState{IsPlaying: false, PositionSeconds: 0, Speed: 1}
}

// ResetPlaybackState is the state every video change resets the room to.
func ResetPlaybackState() PlaybackState {
	return PlaybackState{IsPlaying: true, PositionSeconds: 0, Speed: 1}
}
