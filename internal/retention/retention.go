// Package retention deletes generated files once their retention period
// has elapsed.
package retention

import (
	"errors"
	"os"
	"sort"
	"sync"
	"time"

	"billkaro/statement-ledger/internal/dateutils"
	"billkaro/statement-ledger/internal/logging"
)

// DefaultTTL is how long generated files are kept.
const DefaultTTL = 15 * time.Minute

// CleanupTimeLayout formats cleanup times for API responses.
const CleanupTimeLayout = dateutils.DateLayoutTimestamp

type entry struct {
	cleanupAt time.Time
	timer     *time.Timer
}

// Registry tracks generated files and removes each one after the TTL.
type Registry struct {
	ttl    time.Duration
	logger logging.Logger
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
	stopped bool
}

// NewRegistry creates a registry. A non-positive ttl means DefaultTTL.
func NewRegistry(ttl time.Duration, logger logging.Logger) *Registry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Registry{
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
}

// TTL returns the retention period.
func (r *Registry) TTL() time.Duration {
	return r.ttl
}

// Schedule registers paths for deletion and returns the cleanup time.
// Registering a path again restarts its timer.
func (r *Registry) Schedule(paths ...string) time.Time {
	cleanupAt := r.now().Add(r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return cleanupAt
	}
	for _, p := range paths {
		if existing, ok := r.entries[p]; ok {
			existing.timer.Stop()
		}
		path := p
		r.entries[path] = &entry{
			cleanupAt: cleanupAt,
			timer:     time.AfterFunc(r.ttl, func() { r.expire(path) }),
		}
		r.logger.Debug("Scheduled file cleanup",
			logging.Field{Key: logging.FieldFile, Value: path},
			logging.Field{Key: "cleanup_at", Value: cleanupAt.Format(CleanupTimeLayout)})
	}
	return cleanupAt
}

// CleanupTime returns when path is due for deletion.
func (r *Registry) CleanupTime(path string) (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[path]
	if !ok {
		return time.Time{}, false
	}
	return e.cleanupAt, true
}

// Pending lists the tracked paths in lexical order.
func (r *Registry) Pending() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.entries))
	for p := range r.entries {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Remove deletes path now and forgets it.
func (r *Registry) Remove(path string) error {
	r.mu.Lock()
	if e, ok := r.entries[path]; ok {
		e.timer.Stop()
		delete(r.entries, path)
	}
	r.mu.Unlock()
	return removeFile(path)
}

// Stop cancels every pending timer. Files already on disk are left alone.
func (r *Registry) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		e.timer.Stop()
	}
	r.entries = make(map[string]*entry)
	r.stopped = true
}

func (r *Registry) expire(path string) {
	r.mu.Lock()
	if _, ok := r.entries[path]; !ok {
		r.mu.Unlock()
		return
	}
	delete(r.entries, path)
	r.mu.Unlock()

	if err := removeFile(path); err != nil {
		r.logger.WithError(err).Warn("Failed to remove expired file",
			logging.Field{Key: logging.FieldFile, Value: path})
		return
	}
	r.logger.Info("Removed expired file", logging.Field{Key: logging.FieldFile, Value: path})
}

func removeFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
