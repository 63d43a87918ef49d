package model

import (
	"wanderwise/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "tours"
	EntityName = "tour"

	FieldID           = "id"
	FieldSlug         = "slug"
	FieldDestination  = "destination"
	FieldCountry      = "country"
	FieldDescription  = "description"
	FieldPrice        = "price"
	FieldDurationDays = "duration_days"
	FieldPlan         = "plan"
	FieldImageURL     = "image_url"
	FieldActive       = "active"
)

type Tour struct {
	ID           string         `db:"id"`
	Slug         string         `db:"slug"`
	Destination  string         `db:"destination"`
	Country      string         `db:"country"`
	Description  string         `db:"description"`
	Price        float64        `db:"price"`
	DurationDays int            `db:"duration_days"`
	Plan         pq.StringArray `db:"plan"`
	ImageURL     *string        `db:"image_url"`
	Active       bool           `db:"active"`
	model.Metadata
}
