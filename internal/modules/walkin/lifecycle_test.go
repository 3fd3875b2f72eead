package walkin

import (
	"testing"

	"salonpos/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to domain.WalkinStatus
		want     bool
	}{
		{domain.WalkinDraft, domain.WalkinConfirmed, true},
		{domain.WalkinDraft, domain.WalkinCancelled, true},
		{domain.WalkinDraft, domain.WalkinInProgress, false},
		{domain.WalkinDraft, domain.WalkinCompleted, false},

		{domain.WalkinConfirmed, domain.WalkinInProgress, true},
		{domain.WalkinConfirmed, domain.WalkinCancelled, true},
		{domain.WalkinConfirmed, domain.WalkinDraft, false},
		{domain.WalkinConfirmed, domain.WalkinCompleted, false},

		{domain.WalkinInProgress, domain.WalkinCompleted, true},
		{domain.WalkinInProgress, domain.WalkinCancelled, true},
		{domain.WalkinInProgress, domain.WalkinConfirmed, false},

		// completed is terminal
		{domain.WalkinCompleted, domain.WalkinConfirmed, false},
		{domain.WalkinCompleted, domain.WalkinCancelled, false},
		{domain.WalkinCompleted, domain.WalkinDraft, false},

		// a cancelled order may be reopened
		{domain.WalkinCancelled, domain.WalkinConfirmed, true},
		{domain.WalkinCancelled, domain.WalkinDraft, false},
		{domain.WalkinCancelled, domain.WalkinCompleted, false},
	}

	for _, tc := range cases {
		got := CanTransition(tc.from, tc.to)
		assert.Equal(t, tc.want, got, "%s -> %s", tc.from, tc.to)
	}
}

func TestEditable(t *testing.T) {
	assert.True(t, Editable(domain.WalkinDraft))
	assert.True(t, Editable(domain.WalkinConfirmed))
	assert.True(t, Editable(domain.WalkinInProgress))
	assert.False(t, Editable(domain.WalkinCompleted))
	assert.False(t, Editable(domain.WalkinCancelled))
}
