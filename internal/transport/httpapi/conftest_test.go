package httpapi

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/nearserve/nearserve/internal/domain"
	domprov "github.com/nearserve/nearserve/internal/domain/provider"
	domsuggest "github.com/nearserve/nearserve/internal/domain/suggest"
	"github.com/nearserve/nearserve/internal/token"
	accountuc "github.com/nearserve/nearserve/internal/usecase/account"
	directoryuc "github.com/nearserve/nearserve/internal/usecase/directory"
	healthuc "github.com/nearserve/nearserve/internal/usecase/health"
	profileuc "github.com/nearserve/nearserve/internal/usecase/profile"
	searchuc "github.com/nearserve/nearserve/internal/usecase/search"
	suggestuc "github.com/nearserve/nearserve/internal/usecase/suggest"
)

// fakeRepo is an in-memory provider store shared by all handler tests.
type fakeRepo struct {
	mu        sync.Mutex
	providers map[string]domprov.Provider
	emails    map[string]string
	geo       []domprov.Provider
	counts    []domsuggest.ServiceCount

	err error // when set, every method fails with it
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		providers: make(map[string]domprov.Provider),
		emails:    make(map[string]string),
	}
}

func (f *fakeRepo) Create(_ context.Context, p *domprov.Provider) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.emails[p.Email]; ok {
		return domain.ErrDuplicateEntry
	}
	f.providers[p.ID] = *p
	f.emails[p.Email] = p.ID
	return nil
}

func (f *fakeRepo) Get(_ context.Context, id string) (domprov.Provider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return domprov.Provider{}, f.err
	}
	p, ok := f.providers[id]
	if !ok {
		return domprov.Provider{}, domain.ErrProviderNotFound
	}
	return p, nil
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (domprov.Provider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return domprov.Provider{}, f.err
	}
	id, ok := f.emails[email]
	if !ok {
		return domprov.Provider{}, domain.ErrProviderNotFound
	}
	return f.providers[id], nil
}

func (f *fakeRepo) GetMulti(_ context.Context, ids []string) ([]domprov.Provider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domprov.Provider, 0, len(ids))
	for _, id := range ids {
		if p, ok := f.providers[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, p *domprov.Provider, _ *domprov.Provider) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.providers[p.ID] = *p
	return nil
}

func (f *fakeRepo) Touch(_ context.Context, id string, lastLogin time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	p := f.providers[id]
	p.LastLoginAt = lastLogin
	f.providers[id] = p
	return nil
}

func (f *fakeRepo) GeoSearch(_ context.Context, _ string, _, _, _ float64) ([]domprov.Provider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.geo, nil
}

func (f *fakeRepo) AggregateByService(_ context.Context, _ string) ([]domsuggest.ServiceCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.counts, nil
}

type noopMailer struct{}

func (noopMailer) SendVerificationCode(context.Context, string, string, string) error { return nil }
func (noopMailer) SendResetCode(context.Context, string, string, string) error        { return nil }

// fakeObjects is an in-memory object store.
type fakeObjects struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{blobs: make(map[string][]byte)}
}

func (f *fakeObjects) Put(_ context.Context, key, _ string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blobs[key] = data
	return "https://cdn.test/" + key, nil
}

func (f *fakeObjects) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.blobs, key)
	return nil
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

type testEnv struct {
	repo    *fakeRepo
	objects *fakeObjects
	tokens  *token.Manager
	account *accountuc.Service
	router  chi.Router
}

func newTestEnv() *testEnv {
	repo := newFakeRepo()
	objects := newFakeObjects()
	tokens := token.NewManager("0123456789abcdef0123456789abcdef", "nearserve", time.Hour)
	log := zap.NewNop()

	account := accountuc.New(repo, noopMailer{}, tokens, log)
	srv := NewServer(
		searchuc.New(repo),
		suggestuc.New(repo),
		account,
		profileuc.New(repo, objects, log),
		directoryuc.New(repo),
		healthuc.New(okPinger{}, nil),
		tokens,
		log,
		Options{PhotosEnabled: true},
	)

	r := chi.NewRouter()
	srv.RegisterRoutes(r)

	return &testEnv{
		repo:    repo,
		objects: objects,
		tokens:  tokens,
		account: account,
		router:  r,
	}
}
