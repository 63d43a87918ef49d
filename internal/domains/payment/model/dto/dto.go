package dto

import (
	"wanderwise/internal/domains/payment/model"
	"wanderwise/shared"
	"wanderwise/shared/constant"
	gDto "wanderwise/shared/dto"
	"wanderwise/shared/timezone"
)

type SettlePaymentRequest struct {
	BookingID      string `json:"booking_id"       validate:"required,uuid4"`
	Method         string `json:"method"           validate:"required,oneof=CARD UPI BANK_TRANSFER"`
	CardHolderName string `json:"card_holder_name" validate:"omitempty,max=100"`
	CardNumber     string `json:"card_number"      validate:"omitempty,max=32"`
	UpiID          string `json:"upi_id"           validate:"omitempty,max=100"`
	BankReference  string `json:"bank_reference"   validate:"omitempty,max=100"`
}

type PaymentResponse struct {
	ID              string  `json:"id"`
	Code            string  `json:"code"`
	BookingRecordID string  `json:"booking_record_id"`
	BookingCode     string  `json:"booking_code"`
	UserID          string  `json:"user_id"`
	TravelerName    string  `json:"traveler_name"`
	TravelerEmail   string  `json:"traveler_email"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	Method          string  `json:"method"`
	Status          string  `json:"status"`
	CardHolderName  *string `json:"card_holder_name,omitempty"`
	CardLast4       *string `json:"card_last4,omitempty"`
	UpiID           *string `json:"upi_id,omitempty"`
	BankReference   *string `json:"bank_reference,omitempty"`
	PaidAt          string  `json:"paid_at"`
	gDto.Metadata
}

func (r *PaymentResponse) FromModel(mod model.PaymentRecord) {
	r.ID = mod.ID
	r.Code = mod.Code
	r.BookingRecordID = mod.BookingRecordID
	r.BookingCode = mod.BookingCode
	r.UserID = mod.UserID
	r.TravelerName = mod.TravelerName
	r.TravelerEmail = mod.TravelerEmail
	r.Amount = mod.Amount
	r.Currency = mod.Currency
	r.Method = mod.Method
	r.Status = mod.Status
	r.CardHolderName = mod.CardHolderName
	r.CardLast4 = mod.CardLast4
	r.UpiID = mod.UpiID
	r.BankReference = mod.BankReference
	r.PaidAt = timezone.Format(mod.PaidAt, constant.DateFormat)
	r.Metadata.FromModel(mod.Metadata)
}

type GetPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetPaymentsResponse) FromModels(models []model.PaymentRecord, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Payments = make([]PaymentResponse, len(models))
	for i, mod := range models {
		r.Payments[i].FromModel(mod)
	}
}
