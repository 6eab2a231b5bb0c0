package signal

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// Inbound payloads. Structural validation happens here, at the boundary:
// anything that fails the schema never reaches the coordinator. Content
// beyond shape (message length, reaction kind) is trusted as-is.

var validate = validator.New()

type joinRoomPayload struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId" validate:"required"`
	User   struct {
		Name string `json:"name" validate:"required"`
	} `json:"user"`
}

type playerStatePayload struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId" validate:"required"`
	State  struct {
		IsPlaying       bool    `json:"isPlaying"`
		PositionSeconds float64 `json:"positionSeconds"`
		Speed           float64 `json:"speed"`
	} `json:"state" validate:"required"`
}

type changeVideoPayload struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId" validate:"required"`
	Video  struct {
		Source    string `json:"source" validate:"required,oneof=youtube drive direct"`
		Reference string `json:"reference" validate:"required"`
	} `json:"video"`
}

type sendMessagePayload struct {
	Type    string          `json:"type"`
	RoomID  string          `json:"roomId" validate:"required"`
	Message json.RawMessage `json:"message" validate:"required"`
}

type sendReactionPayload struct {
	Type     string          `json:"type"`
	RoomID   string          `json:"roomId" validate:"required"`
	Reaction json.RawMessage `json:"reaction" validate:"required"`
}

type roomOnlyPayload struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId" validate:"required"`
}

type voiceStatePayload struct {
	Type    string `json:"type"`
	RoomID  string `json:"roomId" validate:"required"`
	IsMuted bool   `json:"isMuted"`
}

type blockVoicePayload struct {
	Type     string `json:"type"`
	RoomID   string `json:"roomId" validate:"required"`
	TargetID string `json:"targetId" validate:"required"`
}

type sendingSignalPayload struct {
	Type       string          `json:"type"`
	TargetID   string          `json:"targetId" validate:"required"`
	Signal     json.RawMessage `json:"signal" validate:"required"`
	CallerID   string          `json:"callerId" validate:"required"`
	CallerName string          `json:"callerName"`
}

type returningSignalPayload struct {
	Type     string          `json:"type"`
	CallerID string          `json:"callerId" validate:"required"`
	Signal   json.RawMessage `json:"signal" validate:"required"`
}

// decode unmarshals and schema-checks an inbound payload. On failure it
// answers the sender with a bad_payload error and reports false.
func (ctl *Controller) decode(c *wsConn, data []byte, v any) bool {
	if err := json.Unmarshal(data, v); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad payload")
		ctl.sendJSON(c, map[string]any{"type": "error", "error": "bad_payload"})
		return false
	}
	if err := validate.Struct(v); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("invalid payload")
		ctl.sendJSON(c, map[string]any{"type": "error", "error": "bad_payload"})
		return false
	}
	return true
}
