package walkin

import "salonpos/internal/domain"

// transitions is the full lifecycle of a walk-in order. completed is
// terminal; a cancelled order may be reopened by confirming it again.
var transitions = map[domain.WalkinStatus][]domain.WalkinStatus{
	domain.WalkinDraft:      {domain.WalkinConfirmed, domain.WalkinCancelled},
	domain.WalkinConfirmed:  {domain.WalkinInProgress, domain.WalkinCancelled},
	domain.WalkinInProgress: {domain.WalkinCompleted, domain.WalkinCancelled},
	domain.WalkinCompleted:  {},
	domain.WalkinCancelled:  {domain.WalkinConfirmed},
}

// CanTransition reports whether from -> to is a legal lifecycle move.
func CanTransition(from, to domain.WalkinStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Editable reports whether lines may still be added or removed. Completed
// and cancelled orders only accept payment reconciliation.
func Editable(status domain.WalkinStatus) bool {
	switch status {
	case domain.WalkinDraft, domain.WalkinConfirmed, domain.WalkinInProgress:
		return true
	}
	return false
}
