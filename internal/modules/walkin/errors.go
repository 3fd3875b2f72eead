package walkin

import "errors"

var (
	ErrStaffRoleMismatch = errors.New("staff member lacks the required role")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrOrderLocked       = errors.New("order is completed or cancelled and no longer editable")
	ErrInvalidDuration   = errors.New("duration must be greater than zero")
	ErrSeatWrongBranch   = errors.New("seat belongs to a different branch")
	ErrInvalidPayment    = errors.New("payment fields must not be negative")
)
