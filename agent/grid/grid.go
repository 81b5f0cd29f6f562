package grid

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

const (
	DefaultLabel              = "Target"
	defaultSubscriberCapacity = 64
)

// Store is the cell write protocol used by the orchestrator. Every method is an
// atomic update of a single key.
type Store interface {
	Snapshot() Snapshot
	BeginAttempt(key Key, attempt string) error
	CompleteAttempt(key Key, attempt, value string) error
	FailAttempt(key Key, attempt string, failure Failure) error
}

var _ Store = (*Grid)(nil)

// Option customizes Grid.
type Option func(*Grid)

func WithLabel(label string) Option {
	return func(g *Grid) {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			g.label = trimmed
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(g *Grid) {
		if now != nil {
			g.now = now
		}
	}
}

func WithSubscriberCapacity(capacity int) Option {
	return func(g *Grid) {
		if capacity > 0 {
			g.subscriberCapacity = capacity
		}
	}
}

// Grid is the authoritative targets × fields table, keyed by (target, field).
type Grid struct {
	mu      sync.RWMutex
	label   string
	targets []string
	fields  []string
	cells   map[Key]Cell
	now     func() time.Time

	subscribers        map[*subscriber]struct{}
	subscriberCapacity int
}

func New(opts ...Option) *Grid {
	g := &Grid{
		label:              DefaultLabel,
		cells:              make(map[Key]Cell, 16),
		now:                time.Now,
		subscribers:        map[*subscriber]struct{}{},
		subscriberCapacity: defaultSubscriberCapacity,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

/* ------------------------------- axes ------------------------------- */

func (g *Grid) Label() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.label
}

// SetLabel renames the row axis. Blank labels fall back to DefaultLabel.
func (g *Grid) SetLabel(label string) {
	label = strings.TrimSpace(label)
	if label == "" {
		label = DefaultLabel
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.label = label
	g.publish(Event{Kind: EventLabelChanged})
}

// AddTarget appends a row with an Empty cell per existing field.
func (g *Grid) AddTarget(target string) error {
	target = strings.TrimSpace(target)
	if target == "" {
		return ErrEmptyName
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if slices.Contains(g.targets, target) {
		return fmt.Errorf("%w: %s", ErrDuplicateTarget, target)
	}
	now := g.now()
	g.targets = append(g.targets, target)
	for _, field := range g.fields {
		g.cells[Key{Target: target, Field: field}] = EmptyCell(now)
	}
	g.publish(Event{Kind: EventAxisChanged})
	return nil
}

// AddField appends a column with an Empty cell per existing target.
func (g *Grid) AddField(field string) error {
	field = strings.TrimSpace(field)
	if field == "" {
		return ErrEmptyName
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if slices.Contains(g.fields, field) {
		return fmt.Errorf("%w: %s", ErrDuplicateField, field)
	}
	now := g.now()
	g.fields = append(g.fields, field)
	for _, target := range g.targets {
		g.cells[Key{Target: target, Field: field}] = EmptyCell(now)
	}
	g.publish(Event{Kind: EventAxisChanged})
	return nil
}

// RemoveTarget drops the row and exactly its cells. In-flight attempts on the
// row later fail their commit with ErrStaleAttempt.
func (g *Grid) RemoveTarget(target string) error {
	target = strings.TrimSpace(target)

	g.mu.Lock()
	defer g.mu.Unlock()
	idx := slices.Index(g.targets, target)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrTargetNotFound, target)
	}
	g.targets = slices.Delete(g.targets, idx, idx+1)
	for _, field := range g.fields {
		delete(g.cells, Key{Target: target, Field: field})
	}
	g.publish(Event{Kind: EventAxisChanged})
	return nil
}

func (g *Grid) RemoveField(field string) error {
	field = strings.TrimSpace(field)

	g.mu.Lock()
	defer g.mu.Unlock()
	idx := slices.Index(g.fields, field)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrFieldNotFound, field)
	}
	g.fields = slices.Delete(g.fields, idx, idx+1)
	for _, target := range g.targets {
		delete(g.cells, Key{Target: target, Field: field})
	}
	g.publish(Event{Kind: EventAxisChanged})
	return nil
}

/* ------------------------------- cells ------------------------------- */

func (g *Grid) Cell(key Key) (Cell, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	c, ok := g.cells[key]
	return c, ok
}

// EditCell is the direct user write: the cell becomes Resolved(value) whatever its
// state. An attempt in flight on the cell loses; its commit is rejected.
func (g *Grid) EditCell(key Key, value string) error {
	return g.update(key, func(c Cell, now time.Time) (Cell, error) {
		return c.edit(value, now), nil
	})
}

// BeginAttempt moves an Empty or Failed cell to Loading under the attempt id.
func (g *Grid) BeginAttempt(key Key, attempt string) error {
	return g.update(key, func(c Cell, now time.Time) (Cell, error) {
		return c.begin(attempt, now)
	})
}

// CompleteAttempt resolves the cell if attempt is still the one in flight.
func (g *Grid) CompleteAttempt(key Key, attempt, value string) error {
	return g.update(key, func(c Cell, now time.Time) (Cell, error) {
		return c.resolve(attempt, value, now)
	})
}

// FailAttempt fails the cell if attempt is still the one in flight.
func (g *Grid) FailAttempt(key Key, attempt string, failure Failure) error {
	return g.update(key, func(c Cell, now time.Time) (Cell, error) {
		return c.fail(attempt, failure, now)
	})
}

func (g *Grid) update(key Key, fn func(Cell, time.Time) (Cell, error)) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	current, ok := g.cells[key]
	if !ok {
		if !slices.Contains(g.targets, key.Target) {
			return fmt.Errorf("%w: %s", ErrTargetNotFound, key.Target)
		}
		return fmt.Errorf("%w: %s", ErrFieldNotFound, key.Field)
	}

	next, err := fn(current, g.now())
	if err != nil {
		return fmt.Errorf("cell %s: %w", key, err)
	}
	g.cells[key] = next
	g.publish(Event{Kind: EventCellChanged, Key: key, Cell: next})
	return nil
}

// Snapshot returns a deep copy of the grid.
func (g *Grid) Snapshot() Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()

	cells := make(map[Key]Cell, len(g.cells))
	for k, c := range g.cells {
		if c.Failure != nil {
			f := *c.Failure
			c.Failure = &f
		}
		cells[k] = c
	}
	return Snapshot{
		Label:   g.label,
		Targets: slices.Clone(g.targets),
		Fields:  slices.Clone(g.fields),
		Cells:   cells,
	}
}
