package server

import (
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/matzehuels/addrscope/pkg/errors"
	"github.com/matzehuels/addrscope/pkg/explorer"
	"github.com/matzehuels/addrscope/pkg/metrics"
)

// Reasons a view leaves the registry.
const (
	closeEvicted  = "evicted"
	closeDeleted  = "deleted"
	closeShutdown = "shutdown"
)

// view is one registered explorer loop.
type view struct {
	id      string
	loop    *explorer.Loop
	created time.Time
	reason  atomic.Value // close reason set before an explicit removal
}

func (v *view) closeReason() string {
	if r, ok := v.reason.Load().(string); ok {
		return r
	}
	return closeEvicted
}

// registry is a bounded, least-recently-used set of views. Removing a view
// for any reason closes its loop.
type registry struct {
	cache   *lru.Cache[string, *view]
	metrics *metrics.Registry
	logger  *log.Logger
}

func newRegistry(size int, m *metrics.Registry, logger *log.Logger) (*registry, error) {
	r := &registry{metrics: m, logger: logger}
	c, err := lru.NewWithEvict(size, r.onEvict)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "view registry")
	}
	r.cache = c
	return r, nil
}

func (r *registry) add(loop *explorer.Loop) *view {
	v := &view{id: uuid.NewString(), loop: loop, created: time.Now()}
	r.cache.Add(v.id, v)
	if r.metrics != nil {
		r.metrics.ViewsActive.Inc()
	}
	return v
}

func (r *registry) get(id string) (*view, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "malformed view id %q", id)
	}
	v, ok := r.cache.Get(id)
	if !ok {
		return nil, errors.New(errors.ErrCodeViewNotFound, "no view with id %s", id)
	}
	return v, nil
}

func (r *registry) remove(id string) bool {
	if v, ok := r.cache.Peek(id); ok {
		v.reason.Store(closeDeleted)
	}
	return r.cache.Remove(id)
}

func (r *registry) purge() {
	for _, v := range r.cache.Values() {
		v.reason.Store(closeShutdown)
	}
	r.cache.Purge()
}

func (r *registry) len() int { return r.cache.Len() }

// onEvict runs for every removal: capacity eviction, DELETE and purge.
func (r *registry) onEvict(id string, v *view) {
	v.loop.Close()
	reason := v.closeReason()
	if r.metrics != nil {
		r.metrics.ViewsActive.Dec()
		r.metrics.ViewsClosed.WithLabelValues(reason).Inc()
	}
	r.logger.Debug("view closed", "id", id, "reason", reason, "age", time.Since(v.created).Round(time.Millisecond))
}
