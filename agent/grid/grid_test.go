package grid

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func fixedClock() func() time.Time {
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	return func() time.Time { return now }
}

func newTestGrid(t *testing.T, targets, fields []string) *Grid {
	t.Helper()
	g := New(WithClock(fixedClock()))
	for _, f := range fields {
		if err := g.AddField(f); err != nil {
			t.Fatalf("AddField(%q) error = %v", f, err)
		}
	}
	for _, tg := range targets {
		if err := g.AddTarget(tg); err != nil {
			t.Fatalf("AddTarget(%q) error = %v", tg, err)
		}
	}
	return g
}

func TestAddFieldInitializesEmptyCellPerTarget(t *testing.T) {
	t.Parallel()

	g := newTestGrid(t, []string{"Acme", "Globex"}, []string{"ceo"})
	if err := g.EditCell(Key{Target: "Acme", Field: "ceo"}, "Jane"); err != nil {
		t.Fatalf("EditCell() error = %v", err)
	}
	before := g.Snapshot()

	if err := g.AddField("industry"); err != nil {
		t.Fatalf("AddField() error = %v", err)
	}
	after := g.Snapshot()

	if len(after.Cells) != len(before.Cells)+2 {
		t.Fatalf("cells = %d, want %d", len(after.Cells), len(before.Cells)+2)
	}
	for _, target := range []string{"Acme", "Globex"} {
		c, ok := after.Cell(target, "industry")
		if !ok || c.Status != CellEmpty {
			t.Fatalf("cell %s/industry = %#v, want empty", target, c)
		}
	}
	for k, c := range before.Cells {
		if after.Cells[k] != c {
			t.Fatalf("cell %s changed: %#v -> %#v", k, c, after.Cells[k])
		}
	}
}

func TestAddTargetInitializesEmptyCellPerField(t *testing.T) {
	t.Parallel()

	g := newTestGrid(t, nil, []string{"ceo", "industry", "size"})
	if err := g.AddTarget("  Acme  "); err != nil {
		t.Fatalf("AddTarget() error = %v", err)
	}

	snap := g.Snapshot()
	if len(snap.Targets) != 1 || snap.Targets[0] != "Acme" {
		t.Fatalf("targets = %#v, want [Acme]", snap.Targets)
	}
	if len(snap.Cells) != 3 {
		t.Fatalf("cells = %d, want 3", len(snap.Cells))
	}
	for _, f := range snap.Fields {
		if c, _ := snap.Cell("Acme", f); c.Status != CellEmpty {
			t.Fatalf("cell Acme/%s = %s, want empty", f, c.Status)
		}
	}
}

func TestAddAxisRejectsDuplicatesAndBlank(t *testing.T) {
	t.Parallel()

	g := newTestGrid(t, []string{"Acme"}, []string{"ceo"})
	if err := g.AddTarget("Acme"); !errors.Is(err, ErrDuplicateTarget) {
		t.Fatalf("AddTarget() error = %v, want ErrDuplicateTarget", err)
	}
	if err := g.AddField("ceo"); !errors.Is(err, ErrDuplicateField) {
		t.Fatalf("AddField() error = %v, want ErrDuplicateField", err)
	}
	if err := g.AddTarget("   "); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("AddTarget() error = %v, want ErrEmptyName", err)
	}
	if err := g.AddField(""); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("AddField() error = %v, want ErrEmptyName", err)
	}
}

func TestRemoveAxisRemovesOnlyItsCells(t *testing.T) {
	t.Parallel()

	g := newTestGrid(t, []string{"A", "B", "C"}, []string{"x", "y"})
	if err := g.EditCell(Key{Target: "C", Field: "y"}, "kept"); err != nil {
		t.Fatalf("EditCell() error = %v", err)
	}

	if err := g.RemoveTarget("B"); err != nil {
		t.Fatalf("RemoveTarget() error = %v", err)
	}
	if err := g.RemoveField("x"); err != nil {
		t.Fatalf("RemoveField() error = %v", err)
	}

	snap := g.Snapshot()
	if len(snap.Cells) != 2 {
		t.Fatalf("cells = %d, want 2", len(snap.Cells))
	}
	if got := fmt.Sprint(snap.Targets); got != "[A C]" {
		t.Fatalf("targets = %s, want [A C]", got)
	}
	if c, ok := snap.Cell("C", "y"); !ok || c.Value != "kept" {
		t.Fatalf("cell C/y = %#v, want kept", c)
	}
	if _, ok := snap.Cell("B", "y"); ok {
		t.Fatal("cell B/y must be removed")
	}

	if err := g.RemoveTarget("B"); !errors.Is(err, ErrTargetNotFound) {
		t.Fatalf("RemoveTarget() error = %v, want ErrTargetNotFound", err)
	}
	if err := g.RemoveField("x"); !errors.Is(err, ErrFieldNotFound) {
		t.Fatalf("RemoveField() error = %v, want ErrFieldNotFound", err)
	}
}

func TestAttemptLifecycle(t *testing.T) {
	t.Parallel()

	g := newTestGrid(t, []string{"Acme"}, []string{"ceo"})
	key := Key{Target: "Acme", Field: "ceo"}

	if err := g.BeginAttempt(key, "a1"); err != nil {
		t.Fatalf("BeginAttempt() error = %v", err)
	}
	if err := g.BeginAttempt(key, "a2"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("second BeginAttempt() error = %v, want ErrInvalidTransition", err)
	}
	if err := g.CompleteAttempt(key, "a2", "wrong"); !errors.Is(err, ErrStaleAttempt) {
		t.Fatalf("CompleteAttempt(a2) error = %v, want ErrStaleAttempt", err)
	}
	if err := g.FailAttempt(key, "a1", Failure{Reason: "join status 500"}); err != nil {
		t.Fatalf("FailAttempt() error = %v", err)
	}

	c, _ := g.Cell(key)
	if c.Status != CellFailed || c.Failure == nil || c.Failure.Kind != FailureRetryable {
		t.Fatalf("cell = %#v, want failed/retryable", c)
	}

	if err := g.BeginAttempt(key, "a3"); err != nil {
		t.Fatalf("BeginAttempt() after failure error = %v", err)
	}
	if err := g.CompleteAttempt(key, "a3", "Jane Doe"); err != nil {
		t.Fatalf("CompleteAttempt() error = %v", err)
	}
	c, _ = g.Cell(key)
	if c.Status != CellResolved || c.Value != "Jane Doe" || c.Attempt != "" || c.Failure != nil {
		t.Fatalf("cell = %#v, want resolved Jane Doe", c)
	}

	if err := g.BeginAttempt(key, "a4"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("BeginAttempt() on resolved error = %v, want ErrInvalidTransition", err)
	}
}

func TestEditDuringLoadingWins(t *testing.T) {
	t.Parallel()

	g := newTestGrid(t, []string{"Acme"}, []string{"ceo"})
	key := Key{Target: "Acme", Field: "ceo"}

	if err := g.BeginAttempt(key, "a1"); err != nil {
		t.Fatalf("BeginAttempt() error = %v", err)
	}
	if err := g.EditCell(key, "typed by user"); err != nil {
		t.Fatalf("EditCell() error = %v", err)
	}
	if err := g.CompleteAttempt(key, "a1", "from agent"); !errors.Is(err, ErrStaleAttempt) {
		t.Fatalf("CompleteAttempt() error = %v, want ErrStaleAttempt", err)
	}

	c, _ := g.Cell(key)
	if c.Value != "typed by user" {
		t.Fatalf("value = %q, want user edit", c.Value)
	}
}

func TestCommitAfterTargetRemovedIsRejected(t *testing.T) {
	t.Parallel()

	g := newTestGrid(t, []string{"Acme"}, []string{"ceo"})
	key := Key{Target: "Acme", Field: "ceo"}
	if err := g.BeginAttempt(key, "a1"); err != nil {
		t.Fatalf("BeginAttempt() error = %v", err)
	}
	if err := g.RemoveTarget("Acme"); err != nil {
		t.Fatalf("RemoveTarget() error = %v", err)
	}
	if err := g.CompleteAttempt(key, "a1", "late"); !errors.Is(err, ErrTargetNotFound) {
		t.Fatalf("CompleteAttempt() error = %v, want ErrTargetNotFound", err)
	}
	if len(g.Snapshot().Cells) != 0 {
		t.Fatal("late commit must not recreate the cell")
	}
}

func TestConcurrentCommitsDoNotClobber(t *testing.T) {
	t.Parallel()

	fields := make([]string, 20)
	for i := range fields {
		fields[i] = fmt.Sprintf("f%02d", i)
	}
	g := newTestGrid(t, []string{"A", "B"}, fields)

	var wg sync.WaitGroup
	for _, target := range []string{"A", "B"} {
		for _, field := range fields {
			key := Key{Target: target, Field: field}
			attempt := key.String()
			if err := g.BeginAttempt(key, attempt); err != nil {
				t.Fatalf("BeginAttempt() error = %v", err)
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := g.CompleteAttempt(key, attempt, "v:"+attempt); err != nil {
					t.Errorf("CompleteAttempt(%s) error = %v", key, err)
				}
			}()
		}
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		g.SetLabel("Company")
	}()
	wg.Wait()

	snap := g.Snapshot()
	for k, c := range snap.Cells {
		if c.Status != CellResolved || c.Value != "v:"+k.String() {
			t.Fatalf("cell %s = %#v, want its own value", k, c)
		}
	}
	if snap.Label != "Company" {
		t.Fatalf("label = %q, want Company", snap.Label)
	}
}

func TestSubscribeReceivesCellEvents(t *testing.T) {
	t.Parallel()

	g := newTestGrid(t, []string{"Acme"}, []string{"ceo"})
	sub := g.Subscribe()
	defer sub.Close()

	key := Key{Target: "Acme", Field: "ceo"}
	if err := g.EditCell(key, "Jane"); err != nil {
		t.Fatalf("EditCell() error = %v", err)
	}

	select {
	case evt := <-sub.Events:
		if evt.Kind != EventCellChanged || evt.Key != key || evt.Cell.Value != "Jane" {
			t.Fatalf("event = %#v", evt)
		}
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}

	sub.Close()
	sub.Close()
	if _, ok := <-sub.Events; ok {
		t.Fatal("events channel must be closed")
	}
}

func TestSubscribeDropsWhenFull(t *testing.T) {
	t.Parallel()

	g := New(WithSubscriberCapacity(1))
	sub := g.Subscribe()
	defer sub.Close()

	for _, f := range []string{"a", "b", "c"} {
		if err := g.AddField(f); err != nil {
			t.Fatalf("AddField() error = %v", err)
		}
	}
	if got := len(sub.Events); got != 1 {
		t.Fatalf("buffered events = %d, want 1", got)
	}
}
