package singleton

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/randalmurphal/singleton/pkg/singleton/observability"
)

// State describes a registry entry's position in its lifecycle.
type State string

// Entry lifecycle states. Ready is terminal: once an instance is published
// for a key, the entry never changes again.
const (
	StateEmpty    State = "empty"
	StateCreating State = "creating"
	StateReady    State = "ready"
)

// Factory performs real, possibly argument-dependent construction of one
// instance. It is invoked at most once per successful creation; arguments
// are captured by closure.
type Factory func(ctx context.Context) (any, error)

// instance is the published result of one successful factory execution.
// Published via atomic pointer so the read path needs no lock.
type instance struct {
	value     any
	id        string
	createdAt time.Time
}

// entry tracks creation state for a single Key.
// The mutex serializes first-creation attempts for this key only.
type entry struct {
	key      Key
	mu       sync.Mutex
	inst     atomic.Pointer[instance]
	creating atomic.Bool
	attempts atomic.Int64
}

// Registry maps type keys to their cached instances and creation state.
//
// A registry owns every instance it publishes, for the remaining lifetime of
// the process: there is no removal or reset. Entries for distinct keys are
// fully independent; constructing one type never blocks another.
//
// The zero value is not usable; create registries with New.
type Registry struct {
	mu      sync.RWMutex
	entries map[Key]*entry
	cfg     config
}

// New creates an empty registry with the provided options.
func New(opts ...Option) *Registry {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Registry{
		entries: make(map[Key]*entry),
		cfg:     cfg,
	}
}

// Default is the process-wide registry used when a gate or interceptor is
// created with a nil registry. Its lifetime is the process lifetime.
var Default = New()

// entryFor returns the entry for key, materializing an empty one on first
// reference. The registry lock covers only the map insert, never a factory.
func (r *Registry) entryFor(key Key) *entry {
	r.mu.RLock()
	e, ok := r.entries[key]
	r.mu.RUnlock()
	if ok {
		return e
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[key]; ok {
		return e
	}
	e = &entry{key: key}
	r.entries[key] = e
	return e
}

// declare materializes the entry for key without constructing anything.
// Used by interceptors at type-definition time.
func (r *Registry) declare(key Key) {
	r.entryFor(key)
}

// GetOrCreate returns the single shared instance for key, constructing it
// with factory if no instance exists yet.
//
// For a fixed key, every completing call returns the same instance (identity,
// not value equality). The first completing call executes factory exactly
// once; concurrent callers block until that execution finishes. If the
// factory fails, the entry stays empty, the error surfaces only to the caller
// whose attempt ran the factory, and blocked callers retry construction
// themselves.
func (r *Registry) GetOrCreate(ctx context.Context, key Key, factory Factory) (any, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	if key.IsZero() {
		return nil, ErrInvalidKey
	}
	if factory == nil {
		return nil, ErrNilFactory
	}

	e := r.entryFor(key)

	// Fast path: already constructed, no locking.
	if inst := e.inst.Load(); inst != nil {
		r.observeHit(ctx, key, inst)
		return inst.value, nil
	}

	waitStart := time.Now()
	e.mu.Lock()
	defer e.mu.Unlock()

	// Re-check: another caller may have finished construction while this one
	// was acquiring the lock.
	if inst := e.inst.Load(); inst != nil {
		r.cfg.metrics.RecordWait(ctx, key.String(), time.Since(waitStart))
		r.observeHit(ctx, key, inst)
		return inst.value, nil
	}

	return r.create(ctx, e, factory)
}

// create runs factory for e's key and publishes the result.
// Caller must hold e.mu.
func (r *Registry) create(ctx context.Context, e *entry, factory Factory) (any, error) {
	key := e.key
	attempt := e.attempts.Add(1)

	e.creating.Store(true)
	defer e.creating.Store(false)

	observability.LogCreationStart(r.cfg.logger, key.String(), attempt)
	spanCtx, span := r.cfg.spans.StartCreationSpan(ctx, key.String(), attempt)
	start := time.Now()

	value, err := factory(spanCtx)

	duration := time.Since(start)
	durationMs := float64(duration.Milliseconds())
	r.cfg.metrics.RecordCreation(ctx, key.String(), duration, err)
	r.cfg.spans.EndSpanWithError(span, err)

	if err != nil {
		observability.LogCreationError(r.cfg.logger, key.String(), err, durationMs, attempt)
		return nil, &ConstructionError{Key: key, Attempt: attempt, Err: err}
	}

	inst := &instance{
		value:     value,
		id:        newInstanceID(),
		createdAt: time.Now(),
	}
	// Publish before releasing the creation lock so every later call, on any
	// goroutine, observes the same instance.
	e.inst.Store(inst)

	observability.LogCreationComplete(r.cfg.logger, key.String(), inst.id, durationMs)
	return value, nil
}

// observeHit records a request served from an already-constructed instance.
func (r *Registry) observeHit(ctx context.Context, key Key, inst *instance) {
	r.cfg.metrics.RecordHit(ctx, key.String())
	observability.LogCacheHit(r.cfg.logger, key.String(), inst.id)
}

// newInstanceID generates a short unique instance identifier.
func newInstanceID() string {
	return fmt.Sprintf("inst-%s", uuid.New().String()[:8])
}

// GetOrCreate returns the single shared instance of T from r, constructing it
// with factory on first call. The key is derived from T itself, so every call
// site naming the same type shares one instance.
func GetOrCreate[T any](ctx context.Context, r *Registry, factory func(ctx context.Context) (T, error)) (T, error) {
	if factory == nil {
		var zero T
		return zero, ErrNilFactory
	}
	v, err := r.GetOrCreate(ctx, KeyOf[T](), func(ctx context.Context) (any, error) {
		return factory(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: key %s holds %T", ErrWrongType, KeyOf[T](), v)
	}
	return typed, nil
}

// StateOf returns the lifecycle state for key. A key that has never been
// referenced is Empty.
func (r *Registry) StateOf(key Key) State {
	r.mu.RLock()
	e, ok := r.entries[key]
	r.mu.RUnlock()
	if !ok {
		return StateEmpty
	}
	if e.inst.Load() != nil {
		return StateReady
	}
	if e.creating.Load() {
		return StateCreating
	}
	return StateEmpty
}

// Instantiated reports whether an instance has been constructed for key.
func (r *Registry) Instantiated(key Key) bool {
	return r.StateOf(key) == StateReady
}

// Len returns the number of keys known to the registry, constructed or not.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Keys returns all known keys in deterministic (lexicographic) order.
func (r *Registry) Keys() []Key {
	r.mu.RLock()
	keys := make([]Key, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	r.mu.RUnlock()

	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
	return keys
}

// Info is a point-in-time description of one registry entry.
type Info struct {
	// Key identifies the entry's type.
	Key Key

	// State is the entry's lifecycle state at snapshot time.
	State State

	// InstanceID is the unique ID assigned at construction.
	// Empty until the entry is ready.
	InstanceID string

	// CreatedAt is when construction succeeded. Zero until ready.
	CreatedAt time.Time

	// Attempts counts construction attempts so far, including failures.
	Attempts int64
}

// Snapshot returns a point-in-time view of every entry, in deterministic
// key order. The snapshot does not expose instances and holds no locks on
// return.
func (r *Registry) Snapshot() []Info {
	r.mu.RLock()
	entries := make([]*entry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	infos := make([]Info, 0, len(entries))
	for _, e := range entries {
		info := Info{
			Key:      e.key,
			State:    StateEmpty,
			Attempts: e.attempts.Load(),
		}
		if inst := e.inst.Load(); inst != nil {
			info.State = StateReady
			info.InstanceID = inst.id
			info.CreatedAt = inst.createdAt
		} else if e.creating.Load() {
			info.State = StateCreating
		}
		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Key.String() < infos[j].Key.String()
	})
	return infos
}
