// Package persist ships chat records to the external record-persistence
// service. Durable storage, retention, and TTL live over there; this side
// only delivers.
package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/LearnerSumit/yt-video-watch-backend/internal/app"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// RecordChat posts one chat record. Called fire-and-forget from the chat
// path: failures are logged and swallowed, never surfaced to a room.
func (c *Client) RecordChat(ctx context.Context, rec app.ChatRecord) {
	body, err := json.Marshal(rec)
	if err != nil {
		log.Error().Err(err).Str("module", "persist").Msg("marshal chat record")
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/records", bytes.NewReader(body))
	if err != nil {
		log.Error().Err(err).Str("module", "persist").Msg("build record request")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("module", "persist").Str("room", string(rec.RoomID)).Msg("record delivery failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		err := fmt.Errorf("status %d", resp.StatusCode)
		log.Warn().Err(err).Str("module", "persist").Str("room", string(rec.RoomID)).Msg("record rejected")
	}
}
