package persist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/LearnerSumit/yt-video-watch-backend/internal/app"
)

func TestRecordChat_PostsRecord(t *testing.T) {
	var (
		gotPath string
		gotBody app.ChatRecord
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode record: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	rec := app.ChatRecord{
		RoomID:    "R1",
		Sender:    "c1",
		Message:   json.RawMessage(`{"text":"hi"}`),
		Timestamp: time.Now().UTC(),
	}
	NewClient(srv.URL).RecordChat(context.Background(), rec)

	if gotPath != "/records" {
		t.Errorf("path = %q, want /records", gotPath)
	}
	if gotBody.RoomID != "R1" || gotBody.Sender != "c1" {
		t.Errorf("record = %+v", gotBody)
	}
	var msg struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(gotBody.Message, &msg); err != nil || msg.Text != "hi" {
		t.Errorf("message blob = %s", gotBody.Message)
	}
}

func TestRecordChat_SwallowsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	// Must not panic or surface anything; delivery is best effort.
	NewClient(srv.URL).RecordChat(context.Background(), app.ChatRecord{RoomID: "R1"})
	NewClient("http://127.0.0.1:0").RecordChat(context.Background(), app.ChatRecord{RoomID: "R1"})
}
