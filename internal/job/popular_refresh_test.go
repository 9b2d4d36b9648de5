package job

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"media-search-service/internal/app/service"
)

type fakeProvider struct {
	mu    sync.Mutex
	terms []string
	err   error
	calls int
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) FetchPopular(ctx context.Context) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++

	return p.terms, p.err
}

func (p *fakeProvider) HealthCheck(ctx context.Context) error { return p.err }

func (p *fakeProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.calls
}

type fakeLocker struct {
	mu       sync.Mutex
	denied   bool
	acquires int
	releases int
}

func (l *fakeLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.acquires++

	return !l.denied, nil
}

func (l *fakeLocker) Release(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.releases++

	return nil
}

func newRefresher(provider *fakeProvider, lock *fakeLocker, popular *service.PopularList) *PopularRefresher {
	cfg := RefreshConfig{Interval: time.Hour, Timeout: time.Second}

	return NewPopularRefresher(provider, popular, cfg, zap.NewNop(), lock)
}

func TestPopularRefresher_ReplacesTermsOnStartup(t *testing.T) {
	provider := &fakeProvider{terms: []string{"drama", "agasobanuye"}}
	lock := &fakeLocker{}
	popular := service.NewPopularList(nil)

	r := newRefresher(provider, lock, popular)
	r.Start(true)
	defer r.Stop()

	assert.Eventually(t, func() bool {
		return provider.callCount() == 1
	}, time.Second, 10*time.Millisecond)

	assert.Equal(t, []string{"drama", "agasobanuye"}, popular.Popular())
}

func TestPopularRefresher_SkipsWhenLockHeldElsewhere(t *testing.T) {
	provider := &fakeProvider{terms: []string{"drama"}}
	lock := &fakeLocker{denied: true}
	popular := service.NewPopularList([]string{"comedy"})

	r := newRefresher(provider, lock, popular)
	r.Start(true)
	r.Stop()

	assert.Equal(t, 0, provider.callCount())
	assert.Equal(t, []string{"comedy"}, popular.Popular())
}

func TestPopularRefresher_ReleasesLockOnFetchError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("trends unavailable")}
	lock := &fakeLocker{}
	popular := service.NewPopularList([]string{"comedy"})

	r := newRefresher(provider, lock, popular)
	r.Start(true)
	defer r.Stop()

	assert.Eventually(t, func() bool {
		lock.mu.Lock()
		defer lock.mu.Unlock()

		return lock.releases == 1
	}, time.Second, 10*time.Millisecond)

	assert.Equal(t, []string{"comedy"}, popular.Popular())
}
