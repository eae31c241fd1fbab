package blobstore

import (
	"context"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ThrottledConfig holds the limits for a ThrottledStore.
type ThrottledConfig struct {
	// MaxConcurrent is the maximum number of in-flight operations.
	// If 0, defaults to 1.
	MaxConcurrent int64

	// BytesPerSec is the maximum payload throughput across Put and Get.
	// If 0, unlimited.
	BytesPerSec int
}

// ThrottledStore wraps another Store and bounds its concurrency and byte
// throughput. Useful when snapshots share a remote backend with
// latency-sensitive traffic.
type ThrottledStore struct {
	inner   Store
	sem     *semaphore.Weighted
	limiter *rate.Limiter // nil if unlimited
}

// NewThrottledStore creates a throttled wrapper around inner.
func NewThrottledStore(inner Store, cfg ThrottledConfig) *ThrottledStore {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 1
	}

	t := &ThrottledStore{
		inner: inner,
		sem:   semaphore.NewWeighted(cfg.MaxConcurrent),
	}
	if cfg.BytesPerSec > 0 {
		t.limiter = rate.NewLimiter(rate.Limit(cfg.BytesPerSec), cfg.BytesPerSec)
	}
	return t
}

// waitBytes blocks until n payload bytes may pass. Payloads larger than the
// limiter burst are admitted in burst-sized installments.
func (t *ThrottledStore) waitBytes(ctx context.Context, n int) error {
	if t.limiter == nil || n <= 0 {
		return nil
	}

	burst := t.limiter.Burst()
	for n > 0 {
		chunk := n
		if chunk > burst {
			chunk = burst
		}
		if err := t.limiter.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

// Put writes a blob through the wrapped store.
func (t *ThrottledStore) Put(ctx context.Context, name string, data []byte) error {
	if err := t.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer t.sem.Release(1)

	if err := t.waitBytes(ctx, len(data)); err != nil {
		return err
	}
	return t.inner.Put(ctx, name, data)
}

// Get reads a blob through the wrapped store.
func (t *ThrottledStore) Get(ctx context.Context, name string) ([]byte, error) {
	if err := t.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer t.sem.Release(1)

	data, err := t.inner.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := t.waitBytes(ctx, len(data)); err != nil {
		return nil, err
	}
	return data, nil
}

// Delete removes a blob through the wrapped store.
func (t *ThrottledStore) Delete(ctx context.Context, name string) error {
	if err := t.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer t.sem.Release(1)

	return t.inner.Delete(ctx, name)
}

// List lists blobs through the wrapped store.
func (t *ThrottledStore) List(ctx context.Context, prefix string) ([]string, error) {
	if err := t.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer t.sem.Release(1)

	return t.inner.List(ctx, prefix)
}
