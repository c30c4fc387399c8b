package usecase

import (
	"context"

	"go-candidate-admin/pkg/security/antivirus"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	scanner    antivirus.Scanner
	redisCheck func(context.Context) error
}

// NewHealthUsecase reports on the optional collaborators. redisCheck may be
// nil when no redis is configured.
func NewHealthUsecase(scanner antivirus.Scanner, redisCheck func(context.Context) error) HealthUsecase {
	return &healthUsecase{scanner: scanner, redisCheck: redisCheck}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	out := map[string]string{
		"status": "ok",
		"redis":  "disabled",
	}
	if u.redisCheck != nil {
		out["redis"] = "up"
		if err := u.redisCheck(ctx); err != nil {
			out["redis"] = "down"
		}
	}
	if u.scanner != nil {
		out["scanner"] = u.scanner.Name()
		if !u.scanner.Available(ctx) {
			out["scanner"] += " (unavailable)"
		}
	}
	return out
}
