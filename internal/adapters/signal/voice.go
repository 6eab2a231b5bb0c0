package signal

import (
	"github.com/LearnerSumit/yt-video-watch-backend/internal/domain"
)

func (ctl *Controller) handleJoinVoice(id domain.ConnID, c *wsConn, data []byte) {
	var p roomOnlyPayload
	if !ctl.decode(c, data, &p) {
		return
	}
	ctl.Coord.JoinVoice(domain.RoomID(p.RoomID), id)
}

func (ctl *Controller) handleVoiceStateChange(id domain.ConnID, c *wsConn, data []byte) {
	var p voiceStatePayload
	if !ctl.decode(c, data, &p) {
		return
	}
	ctl.Coord.SetMuted(domain.RoomID(p.RoomID), id, p.IsMuted)
}

func (ctl *Controller) handleBlockVoiceUser(id domain.ConnID, c *wsConn, data []byte) {
	var p blockVoicePayload
	if !ctl.decode(c, data, &p) {
		return
	}
	ctl.Coord.BlockVoice(domain.RoomID(p.RoomID), id, domain.ConnID(p.TargetID))
}

func (ctl *Controller) handleGetBlockedVoiceUsers(id domain.ConnID, c *wsConn, data []byte) {
	var p roomOnlyPayload
	if !ctl.decode(c, data, &p) {
		return
	}
	ctl.Coord.BlockedVoice(domain.RoomID(p.RoomID), id)
}

// handleSendingSignal relays the opaque offer leg of a peer handshake.
// The signal blob is never inspected here or anywhere downstream.
func (ctl *Controller) handleSendingSignal(id domain.ConnID, c *wsConn, data []byte) {
	var p sendingSignalPayload
	if !ctl.decode(c, data, &p) {
		return
	}
	ctl.Coord.RelayOffer(domain.ConnID(p.TargetID), p.Signal, domain.ConnID(p.CallerID), p.CallerName)
}

func (ctl *Controller) handleReturningSignal(id domain.ConnID, c *wsConn, data []byte) {
	var p returningSignalPayload
	if !ctl.decode(c, data, &p) {
		return
	}
	ctl.Coord.RelayAnswer(domain.ConnID(p.CallerID), p.Signal, id)
}

func (ctl *Controller) handleLeaveVoice(id domain.ConnID, c *wsConn, data []byte) {
	var p roomOnlyPayload
	if !ctl.decode(c, data, &p) {
		return
	}
	ctl.Coord.LeaveVoice(domain.RoomID(p.RoomID), id)
}
