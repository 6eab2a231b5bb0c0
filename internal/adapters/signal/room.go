package signal

import (
	"github.com/rs/zerolog/log"

	"github.com/LearnerSumit/yt-video-watch-backend/internal/domain"
)

func (ctl *Controller) handleJoinRoom(id domain.ConnID, c *wsConn, data []byte) {
	var p joinRoomPayload
	if !ctl.decode(c, data, &p) {
		return
	}

	log.Info().Str("module", "signal").Str("conn", string(id)).Str("room", p.RoomID).Str("name", p.User.Name).Msg("join-room")
	ctl.Coord.Join(id, c, domain.RoomID(p.RoomID), p.User.Name)
}

func (ctl *Controller) handlePlayerStateChange(id domain.ConnID, c *wsConn, data []byte) {
	var p playerStatePayload
	if !ctl.decode(c, data, &p) {
		return
	}

	ctl.Coord.SetPlayback(domain.RoomID(p.RoomID), id, domain.PlaybackState{
		IsPlaying:       p.State.IsPlaying,
		PositionSeconds: p.State.PositionSeconds,
		Speed:           p.State.Speed,
	})
}

func (ctl *Controller) handleChangeVideo(id domain.ConnID, c *wsConn, data []byte) {
	var p changeVideoPayload
	if !ctl.decode(c, data, &p) {
		return
	}

	ctl.Coord.ChangeVideo(domain.RoomID(p.RoomID), id, domain.Video{
		Source:    domain.VideoSource(p.Video.Source),
		Reference: p.Video.Reference,
	})
}

func (ctl *Controller) handleSendMessage(id domain.ConnID, c *wsConn, data []byte) {
	var p sendMessagePayload
	if !ctl.decode(c, data, &p) {
		return
	}

	ctl.Coord.Chat(domain.RoomID(p.RoomID), id, p.Message)
}

func (ctl *Controller) handleSendReaction(id domain.ConnID, c *wsConn, data []byte) {
	var p sendReactionPayload
	if !ctl.decode(c, data, &p) {
		return
	}

	ctl.Coord.Reaction(domain.RoomID(p.RoomID), id, p.Reaction)
}
