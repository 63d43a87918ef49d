package model

import (
	"time"

	"wanderwise/shared/model"
)

const (
	TableName  = "payments"
	EntityName = "payment"

	FieldID              = "id"
	FieldCode            = "code"
	FieldBookingRecordID = "booking_record_id"
	FieldBookingCode     = "booking_code"
	FieldUserID          = "user_id"
	FieldTravelerName    = "traveler_name"
	FieldTravelerEmail   = "traveler_email"
	FieldAmount          = "amount"
	FieldCurrency        = "currency"
	FieldMethod          = "method"
	FieldStatus          = "status"
	FieldCardHolderName  = "card_holder_name"
	FieldCardLast4       = "card_last4"
	FieldUpiID           = "upi_id"
	FieldBankReference   = "bank_reference"
	FieldPaidAt          = "paid_at"

	MethodCard         = "CARD"
	MethodUpi          = "UPI"
	MethodBankTransfer = "BANK_TRANSFER"

	StatusSuccess = "SUCCESS"
)

type PaymentRecord struct {
	ID              string    `db:"id"`
	Code            string    `db:"code"`
	BookingRecordID string    `db:"booking_record_id"`
	BookingCode     string    `db:"booking_code"`
	UserID          string    `db:"user_id"`
	TravelerName    string    `db:"traveler_name"`
	TravelerEmail   string    `db:"traveler_email"`
	Amount          float64   `db:"amount"`
	Currency        string    `db:"currency"`
	Method          string    `db:"method"`
	Status          string    `db:"status"`
	CardHolderName  *string   `db:"card_holder_name"`
	CardLast4       *string   `db:"card_last4"`
	UpiID           *string   `db:"upi_id"`
	BankReference   *string   `db:"bank_reference"`
	PaidAt          time.Time `db:"paid_at"`
	model.Metadata
}
