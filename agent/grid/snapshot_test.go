package grid

import (
	"fmt"
	"testing"
)

func TestEligibleIncludesEmptyAndFailedOnly(t *testing.T) {
	t.Parallel()

	g := newTestGrid(t, []string{"A", "B"}, []string{"x", "y"})
	mustBegin(t, g, Key{Target: "A", Field: "x"}, "a1")
	mustBegin(t, g, Key{Target: "A", Field: "y"}, "a2")
	if err := g.FailAttempt(Key{Target: "A", Field: "y"}, "a2", Failure{Kind: FailurePermanent}); err != nil {
		t.Fatalf("FailAttempt() error = %v", err)
	}
	if err := g.EditCell(Key{Target: "B", Field: "x"}, "done"); err != nil {
		t.Fatalf("EditCell() error = %v", err)
	}

	got := fmt.Sprint(g.Snapshot().Eligible())
	want := fmt.Sprint([]Key{{Target: "A", Field: "y"}, {Target: "B", Field: "y"}})
	if got != want {
		t.Fatalf("Eligible() = %s, want %s", got, want)
	}
}

func TestEligibleEmptyOnFullyResolvedGrid(t *testing.T) {
	t.Parallel()

	g := newTestGrid(t, []string{"A"}, []string{"x"})
	if err := g.EditCell(Key{Target: "A", Field: "x"}, "v"); err != nil {
		t.Fatalf("EditCell() error = %v", err)
	}
	if keys := g.Snapshot().Eligible(); len(keys) != 0 {
		t.Fatalf("Eligible() = %v, want none", keys)
	}
}

func TestExamples(t *testing.T) {
	t.Parallel()

	targets := []string{"T0", "T1", "T2", "T3", "T4", "T5", "T6", "T7"}
	g := newTestGrid(t, targets, []string{"industry"})
	for i, target := range targets {
		key := Key{Target: target, Field: "industry"}
		switch i {
		case 2:
			mustBegin(t, g, key, "loading")
		case 3:
			mustBegin(t, g, key, "failing")
			if err := g.FailAttempt(key, "failing", Failure{}); err != nil {
				t.Fatalf("FailAttempt() error = %v", err)
			}
		case 5:
			// left empty
		default:
			if err := g.EditCell(key, "v"+target); err != nil {
				t.Fatalf("EditCell() error = %v", err)
			}
		}
	}
	snap := g.Snapshot()

	got := snap.Examples("industry", "T1", 5)
	want := []string{"vT0", "vT4", "vT6", "vT7"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("Examples() = %v, want %v", got, want)
	}

	if got := snap.Examples("industry", "T7", 2); fmt.Sprint(got) != "[vT0 vT1]" {
		t.Fatalf("Examples(limit=2) = %v, want [vT0 vT1]", got)
	}
	if got := snap.Examples("industry", "none", 0); len(got) != 5 {
		t.Fatalf("Examples(default limit) len = %d, want 5", len(got))
	}
	if got := snap.Examples("unknown", "T0", 5); got == nil || len(got) != 0 {
		t.Fatalf("Examples(unknown field) = %#v, want empty non-nil", got)
	}
}

func TestExamplesTwoTargetScenario(t *testing.T) {
	t.Parallel()

	g := newTestGrid(t, []string{"A", "B"}, []string{"industry"})
	if err := g.EditCell(Key{Target: "A", Field: "industry"}, "X"); err != nil {
		t.Fatalf("EditCell() error = %v", err)
	}
	if got := g.Snapshot().Examples("industry", "B", DefaultExampleLimit); fmt.Sprint(got) != "[X]" {
		t.Fatalf("Examples() = %v, want [X]", got)
	}
}

func mustBegin(t *testing.T, g *Grid, key Key, attempt string) {
	t.Helper()
	if err := g.BeginAttempt(key, attempt); err != nil {
		t.Fatalf("BeginAttempt(%s) error = %v", key, err)
	}
}
