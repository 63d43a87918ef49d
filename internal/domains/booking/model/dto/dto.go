package dto

import (
	"encoding/json"
	"fmt"
	"strings"

	"wanderwise/internal/domains/booking/model"
	userModel "wanderwise/internal/domains/user/model"
	"wanderwise/shared"
	"wanderwise/shared/constant"
	gDto "wanderwise/shared/dto"
	gModel "wanderwise/shared/model"
	"wanderwise/shared/timezone"

	"github.com/google/uuid"
)

type Traveler struct {
	Name   string `json:"name"   validate:"required,min=2,max=100"`
	Age    int    `json:"age"    validate:"required,gte=1,lte=120"`
	Gender string `json:"gender" validate:"omitempty,max=20"`
}

type CreateBookingRequest struct {
	Destination       string     `json:"destination"         validate:"required,min=2,max=100"`
	Country           string     `json:"country"             validate:"required,min=2,max=100"`
	TravelDate        string     `json:"travel_date"         validate:"required,traveldate,futuredate"`
	Transportation    string     `json:"transportation"      validate:"required,min=2,max=50"`
	Travelers         []Traveler `json:"travelers"           validate:"required,min=1,dive"`
	AmountPerTraveler float64    `json:"amount_per_traveler" validate:"required,gt=0"`
	Currency          string     `json:"currency"            validate:"omitempty,len=3"`
}

// ToModel builds the booking request row. The owner's name and email are
// snapshotted onto it at creation and never re-read from the user record.
func (r *CreateBookingRequest) ToModel(owner userModel.User, code string) (model.BookingRequest, error) {
	travelDate, err := timezone.Parse(constant.TravelDateFormat, r.TravelDate)
	if err != nil {
		return model.BookingRequest{}, fmt.Errorf("failed to parse travel date: %w", err)
	}

	travelers, err := json.Marshal(r.Travelers)
	if err != nil {
		return model.BookingRequest{}, fmt.Errorf("failed to serialize travelers: %w", err)
	}

	currency := strings.ToUpper(r.Currency)
	if currency == "" {
		currency = constant.DefaultCurrency
	}

	count := len(r.Travelers)
	now := timezone.Now()
	email := strings.ToLower(owner.Email)

	return model.BookingRequest{
		ID:                uuid.NewString(),
		Code:              code,
		UserID:            owner.ID,
		UserEmail:         email,
		TravelerName:      owner.Name,
		TravelerEmail:     email,
		Destination:       r.Destination,
		Country:           r.Country,
		TravelDate:        travelDate,
		Transportation:    r.Transportation,
		TravelerCount:     count,
		Travelers:         string(travelers),
		AmountPerTraveler: r.AmountPerTraveler,
		TotalAmount:       r.AmountPerTraveler * float64(count),
		Currency:          currency,
		Status:            model.StatusPendingPayment,
		RequestedAt:       now,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  owner.ID,
			ModifiedBy: owner.ID,
		},
	}, nil
}

type UpdateBookingStatusRequest struct {
	Status string  `json:"status" validate:"required"`
	Note   *string `json:"note"   validate:"omitempty,max=500"`
}

type BookingResponse struct {
	ID                string     `json:"id"`
	Code              string     `json:"code"`
	UserID            string     `json:"user_id"`
	UserEmail         string     `json:"user_email"`
	TravelerName      string     `json:"traveler_name"`
	TravelerEmail     string     `json:"traveler_email"`
	Destination       string     `json:"destination"`
	Country           string     `json:"country"`
	TravelDate        string     `json:"travel_date"`
	Transportation    string     `json:"transportation"`
	TravelerCount     int        `json:"traveler_count"`
	Travelers         []Traveler `json:"travelers"`
	AmountPerTraveler float64    `json:"amount_per_traveler"`
	TotalAmount       float64    `json:"total_amount"`
	Currency          string     `json:"currency"`
	Status            string     `json:"status"`
	Note              *string    `json:"note,omitempty"`
	RequestedAt       string     `json:"requested_at"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(mod model.BookingRequest) {
	r.ID = mod.ID
	r.Code = mod.Code
	r.UserID = mod.UserID
	r.UserEmail = mod.UserEmail
	r.TravelerName = mod.TravelerName
	r.TravelerEmail = mod.TravelerEmail
	r.Destination = mod.Destination
	r.Country = mod.Country
	r.TravelDate = timezone.Format(mod.TravelDate, constant.TravelDateFormat)
	r.Transportation = mod.Transportation
	r.TravelerCount = mod.TravelerCount
	r.AmountPerTraveler = mod.AmountPerTraveler
	r.TotalAmount = mod.TotalAmount
	r.Currency = mod.Currency
	r.Status = mod.Status.String()
	r.Note = mod.Note
	r.RequestedAt = timezone.Format(mod.RequestedAt, constant.DateFormat)
	r.Metadata.FromModel(mod.Metadata)

	if mod.Travelers != "" {
		// Stored travelers were serialized by us; a decode failure only
		// drops the list from the response.
		_ = json.Unmarshal([]byte(mod.Travelers), &r.Travelers)
	}
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.BookingRequest, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

const (
	EventBookingCreated       = "booking.created"
	EventBookingSettled       = "booking.settled"
	EventBookingStatusChanged = "booking.status_changed"
	EventBookingDeleted       = "booking.deleted"
)

// BookingEvent is the payload published to the booking event topic.
type BookingEvent struct {
	Type       string `json:"type"`
	BookingID  string `json:"booking_id"`
	Code       string `json:"code"`
	UserEmail  string `json:"user_email"`
	Status     string `json:"status"`
	OccurredAt string `json:"occurred_at"`
}

func NewBookingEvent(eventType string, mod model.BookingRequest) BookingEvent {
	return BookingEvent{
		Type:       eventType,
		BookingID:  mod.ID,
		Code:       mod.Code,
		UserEmail:  mod.UserEmail,
		Status:     mod.Status.String(),
		OccurredAt: timezone.Format(timezone.Now(), constant.DateFormat),
	}
}
