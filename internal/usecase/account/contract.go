package account

import (
	"context"
	"time"

	domprov "github.com/nearserve/nearserve/internal/domain/provider"
)

// Repository defines the storage contract for account lifecycle operations.
type Repository interface {
	Create(ctx context.Context, p *domprov.Provider) error
	GetByEmail(ctx context.Context, email string) (domprov.Provider, error)
	Update(ctx context.Context, p *domprov.Provider, prev *domprov.Provider) error
	Touch(ctx context.Context, id string, lastLogin time.Time) error
}

// Mailer delivers account emails. Delivery failures never roll back the
// account mutation that triggered them.
type Mailer interface {
	SendVerificationCode(ctx context.Context, to, name, code string) error
	SendResetCode(ctx context.Context, to, name, code string) error
}

// TokenIssuer mints session tokens after a successful login.
type TokenIssuer interface {
	Issue(providerID, email string) (string, error)
}

// RegisterInput is the raw registration payload.
type RegisterInput struct {
	Name     string
	Phone    string
	Service  string
	Email    string
	Password string
	Bio      string
	Website  string
	Location *domprov.Location
}

// Session is a successful login result.
type Session struct {
	Token    string
	Provider domprov.Provider
}
