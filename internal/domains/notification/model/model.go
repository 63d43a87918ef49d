package model

import (
	"strings"
	"time"

	"wanderwise/shared/model"
	"wanderwise/shared/timezone"

	"github.com/google/uuid"
)

const (
	TableName  = "traveler_notifications"
	EntityName = "notification"

	FieldID        = "id"
	FieldUserEmail = "user_email"
	FieldTitle     = "title"
	FieldBody      = "body"
	FieldType      = "type"
	FieldRead      = "read"
	FieldCreatedAt = "created_at"

	TypeBooking = "BOOKING"
	TypePayment = "PAYMENT"
)

type Notification struct {
	ID        string    `db:"id"`
	UserEmail string    `db:"user_email"`
	Title     string    `db:"title"`
	Body      string    `db:"body"`
	Type      string    `db:"type"`
	Read      bool      `db:"read"`
	CreatedAt time.Time `db:"created_at"`
	model.Metadata
}

// New builds an unread notification addressed to the given traveler. Emails
// are stored lowercased so lookups stay case-insensitive.
func New(userEmail, title, body, notifType string) Notification {
	email := strings.ToLower(userEmail)
	now := timezone.Now()

	return Notification{
		ID:        uuid.NewString(),
		UserEmail: email,
		Title:     title,
		Body:      body,
		Type:      notifType,
		Read:      false,
		CreatedAt: now,
		Metadata: model.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  email,
			ModifiedBy: email,
		},
	}
}

// Deliverable reports whether the notification can reach a traveler. Ones
// missing a recipient, type, title, or body are silent no-ops for the
// workflows, never errors.
func (n Notification) Deliverable() bool {
	return strings.TrimSpace(n.UserEmail) != "" &&
		strings.TrimSpace(n.Type) != "" &&
		strings.TrimSpace(n.Title) != "" &&
		strings.TrimSpace(n.Body) != ""
}

// FilterDeliverable drops the notifications that cannot be delivered.
func FilterDeliverable(notifications []Notification) []Notification {
	deliverable := make([]Notification, 0, len(notifications))

	for _, n := range notifications {
		if n.Deliverable() {
			deliverable = append(deliverable, n)
		}
	}

	return deliverable
}
