package model

import (
	"time"

	"wanderwise/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID                = "id"
	FieldName              = "name"
	FieldEmail             = "email"
	FieldPassword          = "password"
	FieldMobileNumber      = "mobile_number"
	FieldRole              = "role"
	FieldStatus            = "status"
	FieldPreferredCurrency = "preferred_currency"
	FieldTripsBooked       = "trips_booked"
	FieldLastLogin         = "last_login"

	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

type User struct {
	ID                string     `db:"id"`
	Name              string     `db:"name"`
	Email             string     `db:"email"`
	Password          string     `db:"password"`
	MobileNumber      *string    `db:"mobile_number"`
	Role              string     `db:"role"`
	Status            string     `db:"status"`
	PreferredCurrency string     `db:"preferred_currency"`
	TripsBooked       int        `db:"trips_booked"`
	LastLogin         *time.Time `db:"last_login"`
	model.Metadata
}
