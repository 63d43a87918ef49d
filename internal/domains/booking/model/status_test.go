package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wanderwise/internal/domains/booking/model"
)

func TestStatus_Valid(t *testing.T) {
	for _, status := range []model.Status{
		model.StatusPendingPayment,
		model.StatusPending,
		model.StatusApproved,
		model.StatusRejected,
	} {
		assert.True(t, status.Valid(), "expected %s to be valid", status)
	}

	assert.False(t, model.Status("CANCELLED").Valid())
	assert.False(t, model.Status("").Valid())
}

func TestStatus_AdminAssignable(t *testing.T) {
	assert.False(t, model.StatusPendingPayment.AdminAssignable())
	assert.True(t, model.StatusPending.AdminAssignable())
	assert.True(t, model.StatusApproved.AdminAssignable())
	assert.True(t, model.StatusRejected.AdminAssignable())
	assert.False(t, model.Status("CANCELLED").AdminAssignable())
}

func TestStatus_Settleable(t *testing.T) {
	assert.True(t, model.StatusPendingPayment.Settleable())
	assert.False(t, model.StatusPending.Settleable())
	assert.False(t, model.StatusApproved.Settleable())
	assert.False(t, model.StatusRejected.Settleable())
}

func TestStatus_VisibleAsTrip(t *testing.T) {
	assert.False(t, model.StatusPendingPayment.VisibleAsTrip())
	assert.True(t, model.StatusPending.VisibleAsTrip())
	assert.True(t, model.StatusApproved.VisibleAsTrip())
	assert.False(t, model.StatusRejected.VisibleAsTrip())
}
