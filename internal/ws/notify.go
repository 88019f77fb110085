package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type MatchesGeneratedEvent struct {
	Type           string `json:"type"`
	Target         string `json:"target"`
	TargetID       string `json:"target_id"`
	MatchesCreated int    `json:"matches_created"`
	Timestamp      string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

// NotifyMatchesGenerated broadcasts the completion of a generation run so
// open dashboards can refresh their match lists.
func NotifyMatchesGenerated(target string, targetID uuid.UUID, matchesCreated int) {
	h := defaultHub.Load()
	if h == nil {
		return
	}
	if targetID == uuid.Nil {
		return
	}

	evt := MatchesGeneratedEvent{
		Type:           "matches_generated",
		Target:         target,
		TargetID:       targetID.String(),
		MatchesCreated: matchesCreated,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}
