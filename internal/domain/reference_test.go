package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReference(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantID   string
		wantName string
	}{
		{
			name:   "uuid becomes ID reference",
			input:  "6f1b2a4c-9d3e-4f5a-8b6c-7d8e9f0a1b2c",
			wantID: "6f1b2a4c-9d3e-4f5a-8b6c-7d8e9f0a1b2c",
		},
		{
			name:     "plain name becomes name reference",
			input:    "Queens of the Stone Age",
			wantName: "Queens of the Stone Age",
		},
		{
			name:     "new prefix forces name resolution",
			input:    "new:6f1b2a4c-9d3e-4f5a-8b6c-7d8e9f0a1b2c",
			wantName: "6f1b2a4c-9d3e-4f5a-8b6c-7d8e9f0a1b2c",
		},
		{
			name:     "surrounding whitespace is trimmed",
			input:    "  Royal Albert Hall  ",
			wantName: "Royal Albert Hall",
		},
		{
			name:     "whitespace after prefix is trimmed",
			input:    "new: The Strokes",
			wantName: "The Strokes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := ParseReference(tt.input)

			id, isID := ref.ID()
			if tt.wantID != "" {
				require.True(t, isID)
				assert.Equal(t, tt.wantID, id)
				assert.Empty(t, ref.Name())
			} else {
				require.False(t, isID)
				assert.Equal(t, tt.wantName, ref.Name())
			}
		})
	}
}

func TestReferenceIsZero(t *testing.T) {
	assert.True(t, Reference{}.IsZero())
	assert.True(t, ParseReference("   ").IsZero())
	assert.False(t, ByID("abc").IsZero())
	assert.False(t, ByName("abc").IsZero())
}

func TestParseTicketType(t *testing.T) {
	tests := []struct {
		input string
		want  TicketType
	}{
		{"Standing", TicketStanding},
		{"standing", TicketStanding},
		{"SEATED", TicketSeated},
		{"VIP", TicketVIP},
		{"vip", TicketVIP},
		{"Guest List", TicketGuestList},
		{"guest_list", TicketGuestList},
		{"balcony", TicketOther},
		{"", TicketOther},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTicketType(tt.input))
		})
	}
}
