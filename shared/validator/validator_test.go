package validator_test

import (
	"strings"
	"testing"
	"time"

	"wanderwise/shared/constant"
	"wanderwise/shared/validator"
)

type bookingInput struct {
	Destination string  `json:"destination" validate:"required,max=120"`
	Country     string  `json:"country"     validate:"required,max=120"`
	TravelDate  string  `json:"travel_date" validate:"required,traveldate,futuredate"`
	Amount      float64 `json:"amount"      validate:"required,gt=0"`
	Email       string  `json:"email"       validate:"omitempty,email"`
}

func TestValidateStruct(t *testing.T) {
	future := time.Now().AddDate(0, 0, 7).Format(constant.TravelDateFormat)
	past := time.Now().AddDate(0, 0, -7).Format(constant.TravelDateFormat)

	tests := []struct {
		name        string
		input       bookingInput
		expectError bool
	}{
		{
			name: "valid input",
			input: bookingInput{
				Destination: "Paris",
				Country:     "France",
				TravelDate:  future,
				Amount:      1000,
			},
			expectError: false,
		},
		{
			name: "missing destination",
			input: bookingInput{
				Country:    "France",
				TravelDate: future,
				Amount:     1000,
			},
			expectError: true,
		},
		{
			name: "travel date in the past",
			input: bookingInput{
				Destination: "Paris",
				Country:     "France",
				TravelDate:  past,
				Amount:      1000,
			},
			expectError: true,
		},
		{
			name: "malformed travel date",
			input: bookingInput{
				Destination: "Paris",
				Country:     "France",
				TravelDate:  "07-01-2030",
				Amount:      1000,
			},
			expectError: true,
		},
		{
			name: "zero amount",
			input: bookingInput{
				Destination: "Paris",
				Country:     "France",
				TravelDate:  future,
				Amount:      0,
			},
			expectError: true,
		},
		{
			name: "invalid email",
			input: bookingInput{
				Destination: "Paris",
				Country:     "France",
				TravelDate:  future,
				Amount:      1000,
				Email:       "not-an-email",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.input)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidate_DecodesAndValidates(t *testing.T) {
	future := time.Now().AddDate(0, 0, 7).Format(constant.TravelDateFormat)

	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:        "valid JSON body",
			jsonBody:    `{"destination":"Paris","country":"France","travel_date":"` + future + `","amount":1000}`,
			expectError: false,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"destination":`,
			expectError: true,
		},
		{
			name:        "valid JSON failing validation",
			jsonBody:    `{"destination":"","country":"France","travel_date":"` + future + `","amount":1000}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data bookingInput

			err := validator.Validate(strings.NewReader(tt.jsonBody), &data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidationMessages(t *testing.T) {
	data := &bookingInput{}

	err := validator.ValidateStruct(data)
	if err == nil {
		t.Fatal("expected validation error for empty struct")
	}

	if !strings.Contains(err.Error(), "required") {
		t.Errorf("expected descriptive error message containing 'required', got: %s", err.Error())
	}
}

func TestValidateVar(t *testing.T) {
	if err := validator.ValidateVar("user@bank.example", "email"); err != nil {
		t.Errorf("expected valid email, got: %v", err)
	}

	if err := validator.ValidateVar("", "required"); err == nil {
		t.Error("expected error for empty required var")
	}
}
