// Package refcode produces the short human-facing reference codes attached to
// bookings and payments, e.g. "BK-483920". Codes are random, not sequential, so
// uniqueness is the caller's responsibility: generate, check storage, retry.
package refcode

import (
	"context"
	"fmt"
	"math/rand"
)

const (
	PrefixBooking = "BK"
	PrefixPayment = "PMT"

	codeMin = 100000
	codeMax = 999999
)

// Generate returns a candidate code of the form "{PREFIX}-{6 digits}".
func Generate(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, codeMin+rand.Intn(codeMax-codeMin))
}

// ExistsFunc reports whether a candidate code is already taken.
type ExistsFunc func(ctx context.Context, code string) (bool, error)

// GenerateUnique draws candidates until one is free. The retry loop is unbounded;
// with a keyspace of 900k codes collisions are rare enough that it terminates
// quickly in practice.
func GenerateUnique(ctx context.Context, prefix string, exists ExistsFunc) (string, error) {
	for {
		code := Generate(prefix)

		taken, err := exists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check code uniqueness: %w", err)
		}

		if !taken {
			return code, nil
		}
	}
}
