package model

// Status is the lifecycle state of a booking request.
//
// A request starts in PENDING_PAYMENT and moves to PENDING once its payment
// settles. Admins then resolve it to APPROVED or REJECTED, and may move a
// resolved request back to PENDING to re-review it.
type Status string

const (
	StatusPendingPayment Status = "PENDING_PAYMENT"
	StatusPending        Status = "PENDING"
	StatusApproved       Status = "APPROVED"
	StatusRejected       Status = "REJECTED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPendingPayment, StatusPending, StatusApproved, StatusRejected:
		return true
	}

	return false
}

// AdminAssignable reports whether an admin may set this status directly.
// PENDING_PAYMENT is reserved for the payment workflow.
func (s Status) AdminAssignable() bool {
	return s.Valid() && s != StatusPendingPayment
}

// Settleable reports whether a payment may settle a request in this state.
func (s Status) Settleable() bool {
	return s == StatusPendingPayment
}

// VisibleAsTrip reports whether a request in this state shows up in the
// traveler's trip list.
func (s Status) VisibleAsTrip() bool {
	return s == StatusPending || s == StatusApproved
}

func (s Status) String() string {
	return string(s)
}
