package section

import (
	"sync"
	"time"
)

// VisibilityEntry reports that a section entered or left the observed area.
type VisibilityEntry struct {
	ID           string
	Intersecting bool
}

// Environment is the slice of the page the tracker needs: current geometry
// plus subscriptions to visibility and scroll notifications. Every
// subscription returns a function that releases it.
type Environment interface {
	Sections() []Section
	Viewport() Viewport
	ObserveVisibility(id string, cb func(VisibilityEntry)) (unobserve func())
	OnScroll(cb func()) (remove func())
}

type Option func(*Tracker)

// WithHeaderOffset overrides DefaultHeaderOffset.
func WithHeaderOffset(offset float64) Option {
	return func(t *Tracker) { t.headerOffset = offset }
}

// WithOnChange registers fn to receive the new id whenever it changes.
func WithOnChange(fn func(id string)) Option {
	return func(t *Tracker) { t.onChange = fn }
}

// WithInitial starts the tracker on id instead of DefaultSectionID.
func WithInitial(id string) Option {
	return func(t *Tracker) { t.current = id }
}

// WithRetryDelay overrides MountRetryDelay.
func WithRetryDelay(d time.Duration) Option {
	return func(t *Tracker) { t.retryDelay = d }
}

// Tracker keeps the id of the section the navigation should highlight.
type Tracker struct {
	env          Environment
	headerOffset float64
	retryDelay   time.Duration
	onChange     func(id string)

	mu      sync.Mutex
	current string

	regMu    sync.Mutex
	releases []func()
	retry    *time.Timer
	mounted  bool
	gen      uint64
}

func NewTracker(env Environment, opts ...Option) *Tracker {
	t := &Tracker{
		env:          env,
		headerOffset: DefaultHeaderOffset,
		retryDelay:   MountRetryDelay,
		current:      DefaultSectionID,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Active returns the currently highlighted section id.
func (t *Tracker) Active() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Recompute re-reads the environment geometry and updates the active id.
func (t *Tracker) Recompute() string {
	t.mu.Lock()
	prev := t.current
	next := Pick(t.env.Sections(), t.env.Viewport().Height, t.headerOffset, prev)
	t.current = next
	t.mu.Unlock()

	if next != prev && t.onChange != nil {
		t.onChange(next)
	}
	return next
}

// Mount starts tracking: it recomputes once, then on every scroll and on
// every visibility change that reports an intersecting section. If the page
// has no sections yet, a single retry is scheduled after the grace delay.
// Mounting again replaces the previous registrations. The returned function
// releases the registrations of this mount and may be called more than once.
func (t *Tracker) Mount() (unmount func()) {
	t.regMu.Lock()
	if t.mounted {
		t.releaseLocked()
	}
	t.gen++
	gen := t.gen
	t.mounted = true

	if len(t.env.Sections()) == 0 {
		t.retry = time.AfterFunc(t.retryDelay, func() { t.retryMount(gen) })
	} else {
		t.attachLocked()
	}
	t.regMu.Unlock()

	t.Recompute()
	return func() { t.unmount(gen) }
}

// retryMount runs once per grace timer. A timer that already fired cannot be
// stopped, so a retry belonging to an earlier mount is dropped by generation.
func (t *Tracker) retryMount(gen uint64) {
	t.regMu.Lock()
	if !t.mounted || t.gen != gen {
		t.regMu.Unlock()
		return
	}
	t.retry = nil
	if len(t.env.Sections()) > 0 {
		t.attachLocked()
	}
	t.regMu.Unlock()

	t.Recompute()
}

func (t *Tracker) attachLocked() {
	for _, s := range t.env.Sections() {
		unobserve := t.env.ObserveVisibility(s.ID, func(e VisibilityEntry) {
			if e.Intersecting {
				t.Recompute()
			}
		})
		t.releases = append(t.releases, unobserve)
	}
	t.releases = append(t.releases, t.env.OnScroll(func() { t.Recompute() }))
}

func (t *Tracker) unmount(gen uint64) {
	t.regMu.Lock()
	defer t.regMu.Unlock()
	if !t.mounted || t.gen != gen {
		return
	}
	t.releaseLocked()
	t.gen++
	t.mounted = false
}

func (t *Tracker) releaseLocked() {
	if t.retry != nil {
		t.retry.Stop()
		t.retry = nil
	}
	for _, release := range t.releases {
		if release != nil {
			release()
		}
	}
	t.releases = nil
}
