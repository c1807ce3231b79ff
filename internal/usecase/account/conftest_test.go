package account

import (
	"context"
	"time"

	"go.uber.org/zap"

	domprov "github.com/nearserve/nearserve/internal/domain/provider"
)

type mockRepo struct {
	createFn     func(ctx context.Context, p *domprov.Provider) error
	getByEmailFn func(ctx context.Context, email string) (domprov.Provider, error)
	updateFn     func(ctx context.Context, p, prev *domprov.Provider) error
	touchFn      func(ctx context.Context, id string, lastLogin time.Time) error
}

func (m *mockRepo) Create(ctx context.Context, p *domprov.Provider) error {
	return m.createFn(ctx, p)
}

func (m *mockRepo) GetByEmail(ctx context.Context, email string) (domprov.Provider, error) {
	return m.getByEmailFn(ctx, email)
}

func (m *mockRepo) Update(ctx context.Context, p, prev *domprov.Provider) error {
	return m.updateFn(ctx, p, prev)
}

func (m *mockRepo) Touch(ctx context.Context, id string, lastLogin time.Time) error {
	return m.touchFn(ctx, id, lastLogin)
}

type mockMailer struct {
	verificationFn func(ctx context.Context, to, name, code string) error
	resetFn        func(ctx context.Context, to, name, code string) error
}

func (m *mockMailer) SendVerificationCode(ctx context.Context, to, name, code string) error {
	if m.verificationFn == nil {
		return nil
	}
	return m.verificationFn(ctx, to, name, code)
}

func (m *mockMailer) SendResetCode(ctx context.Context, to, name, code string) error {
	if m.resetFn == nil {
		return nil
	}
	return m.resetFn(ctx, to, name, code)
}

type mockTokens struct {
	issueFn func(providerID, email string) (string, error)
}

func (m *mockTokens) Issue(providerID, email string) (string, error) {
	if m.issueFn == nil {
		return "token", nil
	}
	return m.issueFn(providerID, email)
}

func newTestService(repo *mockRepo, mailer *mockMailer, tokens *mockTokens) *Service {
	if mailer == nil {
		mailer = &mockMailer{}
	}
	if tokens == nil {
		tokens = &mockTokens{}
	}
	return New(repo, mailer, tokens, zap.NewNop())
}
