package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/querypad/querypad/core/session"
)

func TestParseToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		token      string
		wantID     string
		wantSecret string
		wantOK     bool
	}{
		{
			name:       "well-formed token",
			token:      "abc123.def456",
			wantID:     "abc123",
			wantSecret: "def456",
			wantOK:     true,
		},
		{
			name:       "splits on first separator only",
			token:      "abc.def.ghi",
			wantID:     "abc",
			wantSecret: "def.ghi",
			wantOK:     true,
		},
		{name: "empty string", token: "", wantOK: false},
		{name: "no separator", token: "abcdef", wantOK: false},
		{name: "missing secret", token: "abc.", wantOK: false},
		{name: "missing id", token: ".def", wantOK: false},
		{name: "separator only", token: ".", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			id, secret, ok := session.ParseToken(tt.token)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantSecret, secret)
		})
	}
}
