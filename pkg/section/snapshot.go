package section

import "sync"

// SnapshotEnvironment is an in-memory Environment. Geometry is replaced with
// Set and notifications are fired explicitly, which makes it usable for
// headless scoring and for tests.
type SnapshotEnvironment struct {
	mu        sync.Mutex
	sections  []Section
	viewport  Viewport
	nextID    int
	observers map[int]visibilityObserver
	scrollers map[int]func()
}

type visibilityObserver struct {
	sectionID string
	cb        func(VisibilityEntry)
}

func NewSnapshotEnvironment(sections []Section, viewport Viewport) *SnapshotEnvironment {
	env := &SnapshotEnvironment{
		observers: make(map[int]visibilityObserver),
		scrollers: make(map[int]func()),
	}
	env.Set(sections, viewport)
	return env
}

// Set replaces the page geometry without notifying anyone.
func (e *SnapshotEnvironment) Set(sections []Section, viewport Viewport) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sections = append([]Section(nil), sections...)
	e.viewport = viewport
}

func (e *SnapshotEnvironment) Sections() []Section {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Section(nil), e.sections...)
}

func (e *SnapshotEnvironment) Viewport() Viewport {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewport
}

func (e *SnapshotEnvironment) ObserveVisibility(id string, cb func(VisibilityEntry)) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	key := e.nextID
	e.nextID++
	e.observers[key] = visibilityObserver{sectionID: id, cb: cb}
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.observers, key)
	}
}

func (e *SnapshotEnvironment) OnScroll(cb func()) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	key := e.nextID
	e.nextID++
	e.scrollers[key] = cb
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.scrollers, key)
	}
}

// Scroll fires every registered scroll listener.
func (e *SnapshotEnvironment) Scroll() {
	e.mu.Lock()
	cbs := make([]func(), 0, len(e.scrollers))
	for _, cb := range e.scrollers {
		cbs = append(cbs, cb)
	}
	e.mu.Unlock()

	for _, cb := range cbs {
		cb()
	}
}

// SetVisibility notifies the observers of section id.
func (e *SnapshotEnvironment) SetVisibility(id string, intersecting bool) {
	e.mu.Lock()
	var cbs []func(VisibilityEntry)
	for _, o := range e.observers {
		if o.sectionID == id {
			cbs = append(cbs, o.cb)
		}
	}
	e.mu.Unlock()

	entry := VisibilityEntry{ID: id, Intersecting: intersecting}
	for _, cb := range cbs {
		cb(entry)
	}
}

// Registrations reports how many observers and scroll listeners are live.
func (e *SnapshotEnvironment) Registrations() (observers, scrollers int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.observers), len(e.scrollers)
}
