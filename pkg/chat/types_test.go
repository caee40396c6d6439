package chat

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		raw  string
		want Role
		ok   bool
	}{
		{raw: "user", want: RoleUser, ok: true},
		{raw: "bot", want: RoleBot, ok: true},
		{raw: "assistant", want: RoleBot, ok: true},
		{raw: " Model ", want: RoleBot, ok: true},
		{raw: "system", ok: false},
		{raw: "", ok: false},
	}

	for _, tt := range tests {
		got, ok := ParseRole(tt.raw)
		assert.Equal(t, tt.ok, ok, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}

func TestMessageDecodesLegacyRoles(t *testing.T) {
	var msgs []Message
	require.NoError(t, json.Unmarshal([]byte(`[{"role":"assistant","content":"Welcome!"},{"role":"user","content":"hi"}]`), &msgs))
	assert.Equal(t, RoleBot, msgs[0].Role)
	assert.Equal(t, RoleUser, msgs[1].Role)

	out, err := json.Marshal(msgs[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"bot","content":"Welcome!"}`, string(out))
}

func TestMessageRejectsUnknownRole(t *testing.T) {
	var msg Message
	err := json.Unmarshal([]byte(`{"role":"system","content":"x"}`), &msg)
	assert.ErrorIs(t, err, ErrUnknownRole)
}
