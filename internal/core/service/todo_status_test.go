package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoapi/internal/adapter/database/memory"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
	"todoapi/internal/core/service"
)

// statusRepoStub keeps statuses in a slice and counts listings. When gate is
// set, GetAll takes its snapshot and then waits for the gate to open.
type statusRepoStub struct {
	mu        sync.Mutex
	statuses  []domain.TodoStatus
	nextID    int64
	listCalls int
	bySlugErr error
	listed    chan struct{}
	gate      chan struct{}
}

func (r *statusRepoStub) GetAll(ctx context.Context) ([]domain.TodoStatus, error) {
	r.mu.Lock()
	r.listCalls++
	snapshot := append([]domain.TodoStatus{}, r.statuses...)
	listed, gate := r.listed, r.gate
	r.mu.Unlock()

	if gate != nil {
		listed <- struct{}{}
		<-gate
	}

	return snapshot, nil
}

func (r *statusRepoStub) GetByID(ctx context.Context, id int64) (domain.TodoStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, status := range r.statuses {
		if status.ID == id {
			return status, nil
		}
	}

	return domain.TodoStatus{}, domain.ErrTodoStatusNotFound
}

func (r *statusRepoStub) GetBySlug(ctx context.Context, slug string) (domain.TodoStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.bySlugErr != nil {
		return domain.TodoStatus{}, r.bySlugErr
	}

	for _, status := range r.statuses {
		if status.Slug == slug {
			return status, nil
		}
	}

	return domain.TodoStatus{}, domain.ErrTodoStatusNotFound
}

func (r *statusRepoStub) Create(ctx context.Context, status domain.TodoStatus) (domain.TodoStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	status.ID = r.nextID
	r.statuses = append(r.statuses, status)

	return status, nil
}

func (r *statusRepoStub) Update(ctx context.Context, status domain.TodoStatus) (domain.TodoStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.statuses {
		if r.statuses[i].ID == status.ID {
			r.statuses[i] = status
			return status, nil
		}
	}

	return domain.TodoStatus{}, domain.ErrTodoStatusNotFound
}

func (r *statusRepoStub) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.statuses {
		if r.statuses[i].ID == id {
			r.statuses = append(r.statuses[:i], r.statuses[i+1:]...)
			return nil
		}
	}

	return domain.ErrTodoStatusNotFound
}

// brokenCache fails every call.
type brokenCache struct{}

func (brokenCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return errors.New("cache down")
}

func (brokenCache) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("cache down")
}

func (brokenCache) Delete(ctx context.Context, key string) error {
	return errors.New("cache down")
}

func (brokenCache) Close() error { return nil }

func seededRepo(slugs ...string) *statusRepoStub {
	repo := &statusRepoStub{}

	for _, slug := range slugs {
		repo.Create(context.Background(), domain.TodoStatus{Slug: slug})
	}

	return repo
}

func slugsOf(statuses []domain.TodoStatus) []string {
	slugs := make([]string, 0, len(statuses))
	for _, status := range statuses {
		slugs = append(slugs, status.Slug)
	}

	return slugs
}

func TestTodoStatusService_ExistsUsesWholeSet(t *testing.T) {
	RegisterTestingT(t)

	svc := service.NewTodoStatusService(seededRepo("pending", "in-progress", "done"), nil, 0, nil)

	for _, slug := range []string{"pending", "in-progress", "done"} {
		ok, err := svc.Exists(context.Background(), slug)
		Expect(err).To(BeNil())
		Expect(ok).To(BeTrue(), slug)
	}

	ok, err := svc.Exists(context.Background(), "archived")
	Expect(err).To(BeNil())
	Expect(ok).To(BeFalse())
}

func TestTodoStatusService_ExistsSeesWritesFromOtherInstances(t *testing.T) {
	RegisterTestingT(t)

	ctx := context.Background()
	repo := seededRepo("pending")

	first := service.NewTodoStatusService(repo, memory.NewMemoryRepository(), time.Minute, nil)
	second := service.NewTodoStatusService(repo, memory.NewMemoryRepository(), time.Minute, nil)

	_, _ = second.GetAll(ctx)

	ok, _ := second.Exists(ctx, "pending")
	Expect(ok).To(BeTrue())

	_, err := first.Create(ctx, domain.TodoStatus{Slug: "done"})
	Expect(err).To(BeNil())
	Expect(first.Delete(ctx, 1)).To(Succeed())

	ok, _ = second.Exists(ctx, "done")
	Expect(ok).To(BeTrue())

	ok, _ = second.Exists(ctx, "pending")
	Expect(ok).To(BeFalse())
}

func TestTodoStatusService_ListingOverlappingCreateIsNotCached(t *testing.T) {
	RegisterTestingT(t)

	ctx := context.Background()
	repo := seededRepo("pending")

	listed, gate := make(chan struct{}), make(chan struct{})
	repo.listed, repo.gate = listed, gate

	svc := service.NewTodoStatusService(repo, memory.NewMemoryRepository(), time.Minute, nil)

	blocked := make(chan []domain.TodoStatus, 1)
	go func() {
		statuses, _ := svc.GetAll(ctx)
		blocked <- statuses
	}()

	<-listed

	repo.mu.Lock()
	repo.listed, repo.gate = nil, nil
	repo.mu.Unlock()

	_, err := svc.Create(ctx, domain.TodoStatus{Slug: "done"})
	Expect(err).To(BeNil())

	close(gate)
	Expect(slugsOf(<-blocked)).To(Equal([]string{"pending"}))

	statuses, err := svc.GetAll(ctx)
	Expect(err).To(BeNil())
	Expect(slugsOf(statuses)).To(Equal([]string{"pending", "done"}))

	ok, err := svc.Exists(ctx, "done")
	Expect(err).To(BeNil())
	Expect(ok).To(BeTrue())
}

func TestTodoStatusService_CachesListing(t *testing.T) {
	RegisterTestingT(t)

	ctx := context.Background()
	repo := seededRepo("pending")
	cache := memory.NewMemoryRepository()
	svc := service.NewTodoStatusService(repo, cache, time.Minute, nil)

	_, _ = svc.GetAll(ctx)
	statuses, err := svc.GetAll(ctx)
	Expect(err).To(BeNil())
	Expect(slugsOf(statuses)).To(Equal([]string{"pending"}))
	Expect(repo.listCalls).To(Equal(1))

	_, err = cache.Get(ctx, service.StatusesCacheKey)
	Expect(err).To(BeNil())

	_, err = svc.Create(ctx, domain.TodoStatus{Slug: "done"})
	Expect(err).To(BeNil())

	_, err = cache.Get(ctx, service.StatusesCacheKey)
	Expect(err).To(MatchError(port.ErrCacheMiss))

	statuses, _ = svc.GetAll(ctx)
	Expect(slugsOf(statuses)).To(Equal([]string{"pending", "done"}))
	Expect(repo.listCalls).To(Equal(2))
}

func TestTodoStatusService_InvalidatesOnUpdateAndDelete(t *testing.T) {
	RegisterTestingT(t)

	ctx := context.Background()
	repo := seededRepo("pending", "done")
	svc := service.NewTodoStatusService(repo, memory.NewMemoryRepository(), time.Minute, nil)

	_, _ = svc.GetAll(ctx)

	_, err := svc.Update(ctx, 1, domain.TodoStatusPatch{Slug: strPtr("waiting")})
	Expect(err).To(BeNil())

	statuses, _ := svc.GetAll(ctx)
	Expect(slugsOf(statuses)).To(Equal([]string{"waiting", "done"}))

	Expect(svc.Delete(ctx, 2)).To(Succeed())

	statuses, _ = svc.GetAll(ctx)
	Expect(slugsOf(statuses)).To(Equal([]string{"waiting"}))

	ok, _ := svc.Exists(ctx, "done")
	Expect(ok).To(BeFalse())
}

func TestTodoStatusService_ZeroTTLDisablesCache(t *testing.T) {
	ctx := context.Background()
	repo := seededRepo("pending")
	cache := memory.NewMemoryRepository()
	svc := service.NewTodoStatusService(repo, cache, 0, nil)

	_, _ = svc.GetAll(ctx)
	_, _ = svc.GetAll(ctx)

	assert.Equal(t, 2, repo.listCalls)

	_, err := cache.Get(ctx, service.StatusesCacheKey)
	assert.ErrorIs(t, err, port.ErrCacheMiss)
}

func TestTodoStatusService_BrokenCacheFallsBack(t *testing.T) {
	ctx := context.Background()
	repo := seededRepo("pending")
	svc := service.NewTodoStatusService(repo, brokenCache{}, time.Minute, nil)

	statuses, err := svc.GetAll(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"pending"}, slugsOf(statuses))

	_, err = svc.Create(ctx, domain.TodoStatus{Slug: "done"})
	assert.NoError(t, err)
}

func TestTodoStatusService_LookupFailureSurfaces(t *testing.T) {
	repo := seededRepo()
	repo.bySlugErr = domain.ErrPersistence

	svc := service.NewTodoStatusService(repo, nil, 0, nil)

	_, err := svc.Exists(context.Background(), "pending")

	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func TestTodoStatusService_DuplicateSlug(t *testing.T) {
	ctx := context.Background()
	svc := service.NewTodoStatusService(seededRepo("pending", "done"), nil, 0, nil)

	_, err := svc.Create(ctx, domain.TodoStatus{Slug: "pending"})

	var duplicate *domain.DuplicateSlugError
	require.True(t, errors.As(err, &duplicate))

	_, err = svc.Update(ctx, 2, domain.TodoStatusPatch{Slug: strPtr("pending")})
	require.True(t, errors.As(err, &duplicate))

	unchanged, err := svc.Update(ctx, 1, domain.TodoStatusPatch{Slug: strPtr("pending")})
	require.NoError(t, err)
	assert.Equal(t, "pending", unchanged.Slug)
}

func TestTodoStatusService_UpdateNotFound(t *testing.T) {
	svc := service.NewTodoStatusService(seededRepo(), nil, 0, nil)

	_, err := svc.Update(context.Background(), 9, domain.TodoStatusPatch{Slug: strPtr("x")})

	assert.ErrorIs(t, err, domain.ErrTodoStatusNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), 9), domain.ErrTodoStatusNotFound)
}
