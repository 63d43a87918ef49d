package refcode_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"wanderwise/shared/refcode"
)

func TestGenerate_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^BK-[1-9][0-9]{5}$`)

	for i := 0; i < 1000; i++ {
		code := refcode.Generate(refcode.PrefixBooking)
		if !pattern.MatchString(code) {
			t.Fatalf("unexpected code format: %s", code)
		}
	}
}

func TestGenerateUnique_RetriesOnCollision(t *testing.T) {
	seen := map[string]bool{}
	calls := 0

	exists := func(_ context.Context, code string) (bool, error) {
		calls++
		// Reject the first two candidates to force the retry loop.
		if calls <= 2 {
			seen[code] = true

			return true, nil
		}

		return seen[code], nil
	}

	code, err := refcode.GenerateUnique(context.Background(), refcode.PrefixPayment, exists)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls < 3 {
		t.Errorf("expected at least 3 uniqueness checks, got %d", calls)
	}

	if seen[code] {
		t.Errorf("returned code %s was reported as taken", code)
	}
}

func TestGenerateUnique_PropagatesCheckError(t *testing.T) {
	wantErr := errors.New("storage down")

	exists := func(_ context.Context, _ string) (bool, error) {
		return false, wantErr
	}

	_, err := refcode.GenerateUnique(context.Background(), refcode.PrefixBooking, exists)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped storage error, got: %v", err)
	}
}
