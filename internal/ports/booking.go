package ports

import (
	"context"

	"github.com/bnema/doctowatch/internal/domain"
)

// Authenticator drives the login state machine to an authenticated session.
type Authenticator interface {
	Login(ctx context.Context, creds domain.Credentials) error
}

// Catalog resolves what an authenticated account can book.
type Catalog interface {
	ResolveDoctor(ctx context.Context, doctorID string) (domain.DoctorProfile, error)
	Patients(ctx context.Context) ([]domain.Patient, error)
}

// AvailabilityPoller walks the server's next_slot chain for one query and
// reports whether a usable slot exists.
type AvailabilityPoller interface {
	Poll(ctx context.Context, query domain.AvailabilityQuery) (domain.AvailabilityResult, error)
}
