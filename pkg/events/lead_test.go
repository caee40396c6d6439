package events

import (
	"encoding/json"
	"testing"
	"time"

	"realestate-chatbot-be/pkg/lead"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadCapturedSurvivesTheWire(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	ev := LeadCaptured{
		AccountID:      "acc",
		VisitorID:      "v1",
		ConversationID: "c1",
		Lead:           lead.VisitorInfo{Name: "Dana Cruz", Email: "dana@example.com"},
		CapturedAt:     at,
	}

	raw, err := json.Marshal(ev.Payload())
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &payload))

	back := LeadCapturedFromPayload(payload)
	assert.Equal(t, ev, back)
	assert.Equal(t, LeadCapturedType, back.EventType())
}
