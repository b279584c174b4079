package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestType_HasSecondary(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"In/Out", true},
		{" Visit ", true},
		{"Maintenance", true},
		{"Complaint", false},
		{"", false},
		{"visit", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NewType(tt.in).HasSecondary())
		})
	}
}

func TestSecondaryTypes_Order(t *testing.T) {
	assert.Equal(t, []Type{TypeInOut, TypeVisit, TypeMaintenance}, SecondaryTypes())
}

func TestNewPriority(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Priority
		wantErr bool
	}{
		{"canonical", "High", PriorityHigh, false},
		{"lower case", "medium", PriorityMedium, false},
		{"padded", "  low ", PriorityLow, false},
		{"empty", "", "", false},
		{"unknown", "urgent", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewPriority(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid priority")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewTicketStatus(t *testing.T) {
	assert.Equal(t, StatusUnderReview, NewTicketStatus("under review"))
	assert.Equal(t, StatusClosed, NewTicketStatus(" Closed"))
	assert.Equal(t, TicketStatus("Waiting on owner"), NewTicketStatus("Waiting on owner"))
	assert.False(t, TicketStatus("Waiting on owner").IsKnown())
	assert.True(t, StatusApproved.IsKnown())
}

func TestStatusOrDefault(t *testing.T) {
	assert.Equal(t, StatusOpen, StatusOrDefault(""))
	assert.Equal(t, StatusOpen, StatusOrDefault("   "))
	assert.Equal(t, StatusApproved, StatusOrDefault("approved"))
}
