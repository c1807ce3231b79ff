package profile

import (
	"context"
	"io"

	"go.uber.org/zap"

	domprov "github.com/nearserve/nearserve/internal/domain/provider"
)

type mockRepo struct {
	getFn    func(ctx context.Context, id string) (domprov.Provider, error)
	updateFn func(ctx context.Context, p, prev *domprov.Provider) error
}

func (m *mockRepo) Get(ctx context.Context, id string) (domprov.Provider, error) {
	return m.getFn(ctx, id)
}

func (m *mockRepo) Update(ctx context.Context, p, prev *domprov.Provider) error {
	return m.updateFn(ctx, p, prev)
}

type mockObjects struct {
	putFn    func(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	deleteFn func(ctx context.Context, key string) error
}

func (m *mockObjects) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	if m.putFn == nil {
		return "https://cdn.example.com/" + key, nil
	}
	return m.putFn(ctx, key, contentType, body)
}

func (m *mockObjects) Delete(ctx context.Context, key string) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, key)
}

func newTestService(repo *mockRepo, objects *mockObjects) *Service {
	if objects == nil {
		objects = &mockObjects{}
	}
	return New(repo, objects, zap.NewNop())
}
