package app

import (
	"github.com/rs/zerolog/log"

	"github.com/LearnerSumit/yt-video-watch-backend/internal/core"
	"github.com/LearnerSumit/yt-video-watch-backend/internal/domain"
)

// member binds a participant's meta to its transport endpoint.
// The store never closes the connection; the adapter owns it.
type member struct {
	p    *domain.Participant
	conn core.SignalConnection
}

// room is one live session: ordered membership plus shared playback state.
// A room with zero members is never kept around; leave deletes it.
type room struct {
	id       domain.RoomID
	members  []*member // insertion order preserved for display
	playback domain.PlaybackState
	video    *domain.Video
}

func (r *room) find(id domain.ConnID) *member {
	for _, m := range r.members {
		if m.p.ID == id {
			return m
		}
	}
	return nil
}

// others returns every member except the given connection.
func (r *room) others(except domain.ConnID) []*member {
	out := make([]*member, 0, len(r.members))
	for _, m := range r.members {
		if m.p.ID != except {
			out = append(out, m)
		}
	}
	return out
}

// store is the authoritative in-memory table of rooms and participants.
// It is not safe for concurrent use on its own; the coordinator's mutex
// guards every call.
type store struct {
	rooms map[domain.RoomID]*room
	index map[domain.ConnID]domain.RoomID // reverse lookup for O(1) disconnect
}

func newStore() *store {
	return &store{
		rooms: make(map[domain.RoomID]*room),
		index: make(map[domain.ConnID]domain.RoomID),
	}
}

// join registers the participant in its room, creating the room lazily with
// default playback state. Idempotent per connection id: a second join with
// the same id replaces the record in place, keeping its position.
func (s *store) join(p *domain.Participant, conn core.SignalConnection) *member {
	r, ok := s.rooms[p.RoomID]
	if !ok {
		r = &room{id: p.RoomID, playback: domain.DefaultPlaybackState()}
		s.rooms[p.RoomID] = r
		log.Info().Str("module", "app.store").Str("room", string(p.RoomID)).Msg("room created")
	}

	m := &member{p: p, conn: conn}
	if prev := r.find(p.ID); prev != nil {
		*prev = *m
		s.index[p.ID] = p.RoomID
		return prev
	}
	r.members = append(r.members, m)
	s.index[p.ID] = p.RoomID
	return m
}

// leave removes the connection from whichever room holds it. If that empties
// the room, the room is deleted in the same call. Returns the removed member
// and the room it left, or ok=false when the connection was not tracked.
func (s *store) leave(id domain.ConnID) (m *member, r *room, ok bool) {
	roomID, tracked := s.index[id]
	if !tracked {
		return nil, nil, false
	}
	delete(s.index, id)

	r = s.rooms[roomID]
	for i, cand := range r.members {
		if cand.p.ID == id {
			m = cand
			r.members = append(r.members[:i], r.members[i+1:]...)
			break
		}
	}
	if len(r.members) == 0 {
		delete(s.rooms, roomID)
		log.Info().Str("module", "app.store").Str("room", string(roomID)).Msg("room empty, destroyed")
	}
	return m, r, m != nil
}

func (s *store) get(roomID domain.RoomID) (*room, bool) {
	r, ok := s.rooms[roomID]
	return r, ok
}

// roomOf resolves a connection to its current room.
func (s *store) roomOf(id domain.ConnID) (*room, bool) {
	roomID, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.get(roomID)
}

// connOf resolves a bare connection id to its transport endpoint,
// regardless of room. Used by the signal relay.
func (s *store) connOf(id domain.ConnID) (core.SignalConnection, bool) {
	r, ok := s.roomOf(id)
	if !ok {
		return nil, false
	}
	if m := r.find(id); m != nil {
		return m.conn, true
	}
	return nil, false
}
