package app

import (
	"github.com/rs/zerolog/log"

	"github.com/LearnerSumit/yt-video-watch-backend/internal/domain"
)

// SetPlayback overwrites the room's playback state verbatim. Last writer
// wins; nothing is clamped or ordered beyond acceptance order. The sender is
// the authority for its own player, so it is excluded from the broadcast.
func (c *Coordinator) SetPlayback(roomID domain.RoomID, sender domain.ConnID, state domain.PlaybackState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.store.get(roomID)
	if !ok {
		return
	}
	r.playback = state
	c.fanOut(r.others(sender), playbackUpdateEvent{Type: EventPlaybackUpdate, State: state})
}

// ChangeVideo swaps the room's current video and unconditionally resets
// playback to playing-from-zero. Broadcast goes to the whole room, sender
// included, so every client re-synchronizes from the reset state.
func (c *Coordinator) ChangeVideo(roomID domain.RoomID, sender domain.ConnID, video domain.Video) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.store.get(roomID)
	if !ok {
		return
	}
	r.video = &video
	r.playback = domain.ResetPlaybackState()
	c.fanOut(r.members, videoChangedEvent{Type: EventVideoChanged, Video: video})

	log.Info().Str("module", "app").Str("room", string(roomID)).Str("source", string(video.Source)).Msg("video changed")
}
