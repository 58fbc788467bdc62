package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/guardian/pkg/domain/interfaces"
	"github.com/secmon-lab/guardian/pkg/domain/model/errs"
	"github.com/secmon-lab/guardian/pkg/utils/clock"
)

type kvItem struct {
	value     []byte
	expiresAt time.Time
}

// KV is an in-process KVStore. Expiry is evaluated lazily against
// clock.Now(ctx) so tests can move time.
type KV struct {
	mu    sync.RWMutex
	items map[string]kvItem

	// Call counter for tracking method invocations
	callCounts map[string]int
	callMu     sync.RWMutex

	eb *goerr.Builder
}

var _ interfaces.KVStore = &KV{}

func New() *KV {
	return &KV{
		items:      make(map[string]kvItem),
		callCounts: make(map[string]int),
		eb:         goerr.NewBuilder(goerr.TV(errs.RepositoryKey, "memory")),
	}
}

func (r *KV) incrementCallCount(methodName string) {
	r.callMu.Lock()
	defer r.callMu.Unlock()
	r.callCounts[methodName]++
}

// GetCallCount returns the number of times a method has been called
func (r *KV) GetCallCount(methodName string) int {
	r.callMu.RLock()
	defer r.callMu.RUnlock()
	return r.callCounts[methodName]
}

func (r *KV) Get(ctx context.Context, key string) ([]byte, error) {
	r.incrementCallCount("Get")
	if key == "" {
		return nil, r.eb.New("key is empty", goerr.T(errs.TagValidation))
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[key]
	if !ok {
		return nil, nil
	}
	if !item.expiresAt.IsZero() && !clock.Now(ctx).Before(item.expiresAt) {
		return nil, nil
	}

	copied := make([]byte, len(item.value))
	copy(copied, item.value)
	return copied, nil
}

func (r *KV) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	r.incrementCallCount("Put")
	if key == "" {
		return r.eb.New("key is empty", goerr.T(errs.TagValidation))
	}

	item := kvItem{value: make([]byte, len(value))}
	copy(item.value, value)
	if ttl > 0 {
		item.expiresAt = clock.Now(ctx).Add(ttl)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[key] = item
	return nil
}
