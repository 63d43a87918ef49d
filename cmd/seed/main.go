package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"wanderwise/config"
	"wanderwise/infras/otel"
	"wanderwise/infras/postgres"
	"wanderwise/internal/domains/tour/model"
	"wanderwise/internal/domains/tour/model/dto"
	"wanderwise/internal/domains/tour/repository"
	gDto "wanderwise/shared/dto"
	"wanderwise/shared/logger"

	"github.com/rs/zerolog/log"
)

//go:embed tours.json
var toursJSON []byte

const seedUser = "seed"

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	var seeds []dto.CreateTourRequest
	if err := json.Unmarshal(toursJSON, &seeds); err != nil {
		log.Fatal().Err(err).Msg("Failed to decode embedded tour seeds")
	}

	db := postgres.New(cfg)
	repo := repository.New(db, otel.New(cfg))

	ctx := context.Background()
	seeded := 0

	for _, seed := range seeds {
		slug := dto.Slugify(seed.Destination, seed.Country)

		exists, err := repo.Exist(ctx, filterBySlug(slug))
		if err != nil {
			log.Fatal().Err(err).Str("slug", slug).Msg("Failed to check for existing tour")
		}

		if exists {
			log.Info().Str("slug", slug).Msg("Tour already seeded, skipping")

			continue
		}

		if err := repo.Insert(ctx, seed.ToModel(seedUser)); err != nil {
			log.Fatal().Err(err).Str("slug", slug).Msg("Failed to seed tour")
		}

		seeded++
	}

	log.Info().Int("seeded", seeded).Int("total", len(seeds)).Msg("Tour seeding completed")
}

func filterBySlug(slug string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldSlug,
				Operator: gDto.FilterOperatorEq,
				Value:    slug,
				Table:    model.TableName,
			},
		},
	}
}
