package account

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/nearserve/nearserve/internal/domain"
	"github.com/nearserve/nearserve/internal/domain/geo"
	domprov "github.com/nearserve/nearserve/internal/domain/provider"
)

// bcryptCost is deliberately above the library default.
const bcryptCost = 12

var codeRegex = regexp.MustCompile(`^\d{6}$`)

// Service implements registration, login and the email-code flows.
type Service struct {
	repo   Repository
	mailer Mailer
	tokens TokenIssuer
	log    *zap.Logger

	now     func() time.Time
	genCode func() (string, error)
}

func New(repo Repository, mailer Mailer, tokens TokenIssuer, log *zap.Logger) *Service {
	return &Service{
		repo:    repo,
		mailer:  mailer,
		tokens:  tokens,
		log:     log,
		now:     time.Now,
		genCode: generateCode,
	}
}

// generateCode draws a uniform 6-digit code from crypto/rand.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Register creates an unverified account and emails a verification code.
// The account is persisted even when the email cannot be delivered.
func (s *Service) Register(ctx context.Context, in RegisterInput) (domprov.Provider, error) {
	if err := validateRegisterInput(in); err != nil {
		return domprov.Provider{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return domprov.Provider{}, fmt.Errorf("hash password: %w", err)
	}

	code, err := s.genCode()
	if err != nil {
		return domprov.Provider{}, err
	}

	now := s.now()
	p := domprov.Provider{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Phone:        strings.TrimSpace(in.Phone),
		Service:      strings.TrimSpace(in.Service),
		Bio:          strings.TrimSpace(in.Bio),
		Website:      strings.TrimSpace(in.Website),
		Email:        domprov.NormalizeEmail(in.Email),
		PasswordHash: string(hash),
		Location:     in.Location,

		VerificationCode:          code,
		VerificationCodeCreatedAt: now,

		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, &p); err != nil {
		return domprov.Provider{}, err
	}

	if err := s.mailer.SendVerificationCode(ctx, p.Email, p.Name, code); err != nil {
		s.log.Warn("verification email failed",
			zap.String("provider_id", p.ID),
			zap.Error(err),
		)
	}

	return p, nil
}

func validateRegisterInput(in RegisterInput) error {
	if err := domprov.ValidateName(in.Name); err != nil {
		return err
	}
	if err := domprov.ValidatePhone(in.Phone); err != nil {
		return err
	}
	if err := domprov.ValidateService(in.Service); err != nil {
		return err
	}
	if err := domprov.ValidateEmail(in.Email); err != nil {
		return err
	}
	if err := domprov.ValidatePassword(in.Password); err != nil {
		return err
	}
	if err := domprov.ValidateBio(in.Bio); err != nil {
		return err
	}
	if err := domprov.ValidateWebsite(in.Website); err != nil {
		return err
	}
	if in.Location != nil && !geo.ValidateCoordinates(in.Location.Latitude, in.Location.Longitude) {
		return domain.ErrInvalidCoordinates
	}
	return nil
}

// Login checks credentials, enforces the account gates and mints a session
// token. Unknown emails and wrong passwords are indistinguishable to the
// caller.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	p, err := s.repo.GetByEmail(ctx, domprov.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrProviderNotFound) {
			return Session{}, domain.ErrInvalidCredentials
		}
		return Session{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) != nil {
		return Session{}, domain.ErrInvalidCredentials
	}

	if err := p.CanLogin(); err != nil {
		return Session{}, err
	}

	now := s.now()
	if err := s.repo.Touch(ctx, p.ID, now); err != nil {
		s.log.Warn("last login update failed",
			zap.String("provider_id", p.ID),
			zap.Error(err),
		)
	}
	p.LastLoginAt = now

	tok, err := s.tokens.Issue(p.ID, p.Email)
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}

	return Session{Token: tok, Provider: p}, nil
}

// VerifyEmail marks the account verified when the submitted code matches the
// stored one and is inside its validity window.
func (s *Service) VerifyEmail(ctx context.Context, email, code string) error {
	if !codeRegex.MatchString(code) {
		return domain.ErrInvalidCode
	}

	p, err := s.repo.GetByEmail(ctx, domprov.NormalizeEmail(email))
	if err != nil {
		return err
	}

	if p.EmailVerified {
		return domain.ErrEmailAlreadyVerified
	}
	if p.VerificationCode != code {
		return domain.ErrInvalidCode
	}
	if !p.VerificationCodeValid(s.now()) {
		return domain.ErrCodeExpired
	}

	prev := p
	p.EmailVerified = true
	p.EmailVerifiedAt = s.now()
	p.VerificationCode = ""
	p.VerificationCodeCreatedAt = time.Time{}
	p.UpdatedAt = s.now()

	return s.repo.Update(ctx, &p, &prev)
}

// RequestPasswordReset stores a fresh reset code and emails it. Unknown
// emails report success so the endpoint cannot be used to enumerate
// accounts.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	p, err := s.repo.GetByEmail(ctx, domprov.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrProviderNotFound) {
			return nil
		}
		return err
	}

	code, err := s.genCode()
	if err != nil {
		return err
	}

	prev := p
	p.ResetCode = code
	p.ResetCodeCreatedAt = s.now()
	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, &p, &prev); err != nil {
		return err
	}

	if err := s.mailer.SendResetCode(ctx, p.Email, p.Name, code); err != nil {
		s.log.Warn("reset email failed",
			zap.String("provider_id", p.ID),
			zap.Error(err),
		)
	}
	return nil
}

// ResetPassword replaces the password when the submitted reset code checks
// out, then invalidates the code. Unknown emails map to the invalid-code
// error for the same enumeration reason as RequestPasswordReset.
func (s *Service) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if err := domprov.ValidatePassword(newPassword); err != nil {
		return err
	}
	if !codeRegex.MatchString(code) {
		return domain.ErrInvalidCode
	}

	p, err := s.repo.GetByEmail(ctx, domprov.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrProviderNotFound) {
			return domain.ErrInvalidCode
		}
		return err
	}

	if p.ResetCode != code {
		return domain.ErrInvalidCode
	}
	if !p.ResetCodeValid(s.now()) {
		return domain.ErrCodeExpired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	prev := p
	p.PasswordHash = string(hash)
	p.ResetCode = ""
	p.ResetCodeCreatedAt = time.Time{}
	p.UpdatedAt = s.now()

	return s.repo.Update(ctx, &p, &prev)
}
