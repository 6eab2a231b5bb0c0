package domain

import (
	"strings"
	"testing"
)

func TestNewParticipant_NameValidation(t *testing.T) {
	if _, err := NewParticipant("c1", "", "R1"); err != ErrNameEmpty {
		t.Errorf("empty name: err = %v, want ErrNameEmpty", err)
	}
	if _, err := NewParticipant("c1", strings.Repeat("x", MaxDisplayNameLen+1), "R1"); err != ErrNameTooLong {
		t.Errorf("long name: err = %v, want ErrNameTooLong", err)
	}

	p, err := NewParticipant("c1", "alice", "R1")
	if err != nil {
		t.Fatalf("valid name rejected: %v", err)
	}
	if p.Voice.IsJoined || p.Voice.IsMuted {
		t.Errorf("voice state must start zeroed, got %+v", p.Voice)
	}
}

func TestParticipant_BlockSet(t *testing.T) {
	p, _ := NewParticipant("c1", "alice", "R1")

	if p.HasBlockedVoice("c2") {
		t.Error("fresh participant blocks no one")
	}

	p.BlockVoice("c2")
	p.BlockVoice("c2") // idempotent
	p.BlockVoice("c3")

	if !p.HasBlockedVoice("c2") || !p.HasBlockedVoice("c3") {
		t.Error("blocked ids must be reported")
	}
	if ids := p.BlockedVoiceIDs(); len(ids) != 2 {
		t.Errorf("block set size = %d, want 2", len(ids))
	}
}
