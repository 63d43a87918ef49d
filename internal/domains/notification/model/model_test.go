package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wanderwise/internal/domains/notification/model"
)

func TestNew(t *testing.T) {
	notif := model.New("Traveler@Example.COM", "Payment Successful", "body", model.TypePayment)

	assert.NotEmpty(t, notif.ID)
	assert.Equal(t, "traveler@example.com", notif.UserEmail)
	assert.Equal(t, model.TypePayment, notif.Type)
	assert.False(t, notif.Read)
	assert.False(t, notif.CreatedAt.IsZero())
}

func TestNotification_Deliverable(t *testing.T) {
	complete := model.New("traveler@example.com", "Booking Approved", "Your booking was approved.", model.TypeBooking)
	assert.True(t, complete.Deliverable())

	tests := []struct {
		name   string
		mutate func(n *model.Notification)
	}{
		{"blank recipient", func(n *model.Notification) { n.UserEmail = "  " }},
		{"blank type", func(n *model.Notification) { n.Type = "" }},
		{"blank title", func(n *model.Notification) { n.Title = " " }},
		{"blank body", func(n *model.Notification) { n.Body = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notif := complete
			tt.mutate(&notif)

			assert.False(t, notif.Deliverable())
		})
	}
}

func TestFilterDeliverable(t *testing.T) {
	deliverable := model.New("traveler@example.com", "Booking Approved", "Your booking was approved.", model.TypeBooking)
	noRecipient := model.New("", "Booking Approved", "Your booking was approved.", model.TypeBooking)
	noBody := model.New("traveler@example.com", "Booking Approved", "", model.TypeBooking)

	kept := model.FilterDeliverable([]model.Notification{noRecipient, deliverable, noBody})

	if assert.Len(t, kept, 1) {
		assert.Equal(t, deliverable.ID, kept[0].ID)
	}
}
