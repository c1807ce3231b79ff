// Package provider holds the service-provider entity and its field rules.
package provider

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/nearserve/nearserve/internal/domain"
	"github.com/nearserve/nearserve/internal/domain/geo"
)

const (
	// MaxNameLen caps the provider display name.
	MaxNameLen = 100
	// MaxServiceLen caps the free-text service description.
	MaxServiceLen = 100
	// MaxBioLen caps the profile bio.
	MaxBioLen = 1000
	// MinPasswordLen is the minimum accepted password length.
	MinPasswordLen = 8
	// MaxPhotos caps the number of photos per profile.
	MaxPhotos = 5

	// VerificationCodeTTL bounds email verification code validity.
	VerificationCodeTTL = 10 * time.Minute
	// ResetCodeTTL bounds password reset code validity.
	ResetCodeTTL = time.Hour
)

// Location is a geographic point. Longitude first, matching GeoJSON order.
type Location struct {
	Longitude float64
	Latitude  float64
}

// Photo is one uploaded profile image stored in the object store.
type Photo struct {
	URL        string    `json:"url"`
	ObjectKey  string    `json:"object_key"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Provider is a registered service-offering entity.
// PasswordHash, VerificationCode and ResetCode are sensitive and must never
// be serialized into API responses.
type Provider struct {
	ID      string
	Name    string
	Phone   string
	Service string
	Bio     string
	Website string
	Email   string

	PasswordHash string

	Photos   []Photo
	Location *Location

	EmailVerified             bool
	VerificationCode          string
	VerificationCodeCreatedAt time.Time
	EmailVerifiedAt           time.Time

	ResetCode          string
	ResetCodeCreatedAt time.Time

	IsActive      bool
	IsBlocked     bool
	BlockedReason string

	LastLoginAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Searchable reports whether the provider is eligible for radius queries.
// Records without a valid location are never geo-indexed.
func (p *Provider) Searchable() bool {
	return p.Location != nil && p.Service != "" &&
		geo.ValidateCoordinates(p.Location.Latitude, p.Location.Longitude)
}

// VerificationCodeValid reports whether the stored email verification code
// is present and within its TTL.
func (p *Provider) VerificationCodeValid(now time.Time) bool {
	if p.VerificationCode == "" || p.VerificationCodeCreatedAt.IsZero() {
		return false
	}
	return now.Sub(p.VerificationCodeCreatedAt) < VerificationCodeTTL
}

// ResetCodeValid reports whether the stored password reset code is present
// and within its TTL.
func (p *Provider) ResetCodeValid(now time.Time) bool {
	if p.ResetCode == "" || p.ResetCodeCreatedAt.IsZero() {
		return false
	}
	return now.Sub(p.ResetCodeCreatedAt) < ResetCodeTTL
}

// CanLogin checks account gates in the order the API reports them.
func (p *Provider) CanLogin() error {
	if !p.IsActive {
		return domain.ErrAccountInactive
	}
	if p.IsBlocked {
		return domain.ErrAccountBlocked
	}
	if !p.EmailVerified {
		return domain.ErrEmailNotVerified
	}
	return nil
}

var (
	phoneRegex = regexp.MustCompile(`^\+?[\d\s\-()]{10,}$`)
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidateName checks the display name contract.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.NewValidationError("name", "is required")
	}
	if len(name) > MaxNameLen {
		return domain.NewValidationError("name", "exceeds 100 characters")
	}
	return nil
}

// ValidatePhone checks the phone number format.
func ValidatePhone(phone string) error {
	if strings.TrimSpace(phone) == "" {
		return domain.NewValidationError("phone", "is required")
	}
	if !phoneRegex.MatchString(strings.TrimSpace(phone)) {
		return domain.NewValidationError("phone", "invalid format")
	}
	return nil
}

// ValidateService checks the service description contract.
func ValidateService(service string) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return domain.NewValidationError("service", "is required")
	}
	if len(service) > MaxServiceLen {
		return domain.NewValidationError("service", "exceeds 100 characters")
	}
	return nil
}

// ValidateEmail checks the email format.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(strings.TrimSpace(email)) {
		return domain.NewValidationError("email", "invalid format")
	}
	return nil
}

// ValidatePassword checks the plaintext password contract (pre-hash).
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLen {
		return domain.NewValidationError("password", "must be at least 8 characters")
	}
	return nil
}

// ValidateBio checks the bio length cap. Empty is allowed.
func ValidateBio(bio string) error {
	if len(bio) > MaxBioLen {
		return domain.NewValidationError("bio", "exceeds 1000 characters")
	}
	return nil
}

// ValidateWebsite checks that a non-empty website is an absolute URL.
func ValidateWebsite(website string) error {
	if website == "" {
		return nil
	}
	u, err := url.Parse(website)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return domain.NewValidationError("website", "invalid url")
	}
	return nil
}

// NormalizeEmail lowercases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
