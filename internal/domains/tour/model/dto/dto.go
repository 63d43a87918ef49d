package dto

import (
	"fmt"
	"strings"

	"wanderwise/internal/domains/tour/model"
	"wanderwise/shared"
	gDto "wanderwise/shared/dto"
	gModel "wanderwise/shared/model"
	"wanderwise/shared/timezone"

	"github.com/google/uuid"
)

type CreateTourRequest struct {
	Destination  string   `json:"destination"   validate:"required,min=2,max=100"`
	Country      string   `json:"country"       validate:"required,min=2,max=100"`
	Description  string   `json:"description"   validate:"omitempty,max=2000"`
	Price        float64  `json:"price"         validate:"required,gt=0"`
	DurationDays int      `json:"duration_days" validate:"required,gt=0"`
	Plan         []string `json:"plan"          validate:"omitempty,dive,max=500"`
}

func (r *CreateTourRequest) ToModel(username string) model.Tour {
	return model.Tour{
		ID:           uuid.NewString(),
		Slug:         Slugify(r.Destination, r.Country),
		Destination:  r.Destination,
		Country:      r.Country,
		Description:  r.Description,
		Price:        r.Price,
		DurationDays: r.DurationDays,
		Plan:         r.Plan,
		Active:       true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

// Slugify joins destination and country into a URL-safe identifier,
// e.g. "Bali" + "Indonesia" becomes "bali-indonesia".
func Slugify(destination, country string) string {
	joined := fmt.Sprintf("%s-%s", destination, country)
	joined = strings.ToLower(strings.TrimSpace(joined))

	var b strings.Builder
	prevDash := false

	for _, r := range joined {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)

			prevDash = false
		default:
			if !prevDash {
				b.WriteRune('-')
			}

			prevDash = true
		}
	}

	return strings.Trim(b.String(), "-")
}

type UpdateTourRequest struct {
	Destination  *string  `db:"destination"   json:"destination,omitempty"   validate:"omitempty,min=2,max=100"`
	Country      *string  `db:"country"       json:"country,omitempty"       validate:"omitempty,min=2,max=100"`
	Description  *string  `db:"description"   json:"description,omitempty"   validate:"omitempty,max=2000"`
	Price        *float64 `db:"price"         json:"price,omitempty"         validate:"omitempty,gt=0"`
	DurationDays *int     `db:"duration_days" json:"duration_days,omitempty" validate:"omitempty,gt=0"`
	Active       *bool    `db:"active"        json:"active,omitempty"`
}

type TourResponse struct {
	ID           string   `json:"id"`
	Slug         string   `json:"slug"`
	Destination  string   `json:"destination"`
	Country      string   `json:"country"`
	Description  string   `json:"description,omitempty"`
	Price        float64  `json:"price"`
	DurationDays int      `json:"duration_days"`
	Plan         []string `json:"plan,omitempty"`
	ImageURL     *string  `json:"image_url,omitempty"`
	Active       bool     `json:"active"`
	gDto.Metadata
}

func (r *TourResponse) FromModel(model model.Tour) {
	r.ID = model.ID
	r.Slug = model.Slug
	r.Destination = model.Destination
	r.Country = model.Country
	r.Description = model.Description
	r.Price = model.Price
	r.DurationDays = model.DurationDays
	r.Plan = model.Plan
	r.ImageURL = model.ImageURL
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetToursResponse struct {
	Tours     []TourResponse `json:"tours"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetToursResponse) FromModels(models []model.Tour, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Tours = make([]TourResponse, len(models))
	for i, mod := range models {
		r.Tours[i].FromModel(mod)
	}
}
