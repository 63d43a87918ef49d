package model

import (
	"time"

	"wanderwise/shared/model"
)

const (
	TableName  = "booking_requests"
	EntityName = "booking"

	FieldID                = "id"
	FieldCode              = "code"
	FieldUserID            = "user_id"
	FieldUserEmail         = "user_email"
	FieldTravelerName      = "traveler_name"
	FieldTravelerEmail     = "traveler_email"
	FieldDestination       = "destination"
	FieldCountry           = "country"
	FieldTravelDate        = "travel_date"
	FieldTransportation    = "transportation"
	FieldTravelerCount     = "traveler_count"
	FieldTravelers         = "travelers"
	FieldAmountPerTraveler = "amount_per_traveler"
	FieldTotalAmount       = "total_amount"
	FieldCurrency          = "currency"
	FieldStatus            = "status"
	FieldNote              = "note"
	FieldRequestedAt       = "requested_at"
)

type BookingRequest struct {
	ID                string    `db:"id"`
	Code              string    `db:"code"`
	UserID            string    `db:"user_id"`
	UserEmail         string    `db:"user_email"`
	TravelerName      string    `db:"traveler_name"`
	TravelerEmail     string    `db:"traveler_email"`
	Destination       string    `db:"destination"`
	Country           string    `db:"country"`
	TravelDate        time.Time `db:"travel_date"`
	Transportation    string    `db:"transportation"`
	TravelerCount     int       `db:"traveler_count"`
	Travelers         string    `db:"travelers"`
	AmountPerTraveler float64   `db:"amount_per_traveler"`
	TotalAmount       float64   `db:"total_amount"`
	Currency          string    `db:"currency"`
	Status            Status    `db:"status"`
	Note              *string   `db:"note"`
	RequestedAt       time.Time `db:"requested_at"`
	model.Metadata
}
