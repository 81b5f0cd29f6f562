package grid

import (
	"fmt"
	"time"
)

type CellStatus string

const (
	CellEmpty    CellStatus = "empty"
	CellLoading  CellStatus = "loading"
	CellResolved CellStatus = "resolved"
	CellFailed   CellStatus = "failed"
)

type FailureKind string

const (
	// FailureRetryable: transient error and automatic retries are disabled.
	FailureRetryable FailureKind = "retryable"
	// FailureRetriesExhausted: transient error on every automatic retry.
	FailureRetriesExhausted FailureKind = "retries_exhausted"
	// FailurePermanent: the service rejected the request; retrying won't help.
	FailurePermanent FailureKind = "permanent"
)

type Failure struct {
	Kind   FailureKind `json:"kind"`
	Reason string      `json:"reason"`
	Tries  int         `json:"tries"`
}

// Key addresses one cell.
type Key struct {
	Target string `json:"target"`
	Field  string `json:"field"`
}

func (k Key) String() string {
	return k.Target + "/" + k.Field
}

// Cell is the state of one (target, field) pair.
// Value is set only when resolved, Failure only when failed, Attempt only while loading.
type Cell struct {
	Status    CellStatus `json:"status"`
	Value     string     `json:"value,omitempty"`
	Failure   *Failure   `json:"failure,omitempty"`
	Attempt   string     `json:"attempt,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func EmptyCell(now time.Time) Cell {
	return Cell{Status: CellEmpty, UpdatedAt: now.UTC()}
}

func (c Cell) IsEligible() bool {
	return c.Status == CellEmpty || c.Status == CellFailed
}

func (c Cell) IsLoading() bool {
	return c.Status == CellLoading
}

func (c Cell) IsResolved() bool {
	return c.Status == CellResolved
}

func (c Cell) IsFailed() bool {
	return c.Status == CellFailed
}

/* ----------------------------- transitions ----------------------------- */

func (c Cell) begin(attempt string, now time.Time) (Cell, error) {
	if attempt == "" {
		return c, fmt.Errorf("%w: attempt id is empty", ErrInvalidTransition)
	}
	if !c.IsEligible() {
		return c, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, c.Status, CellLoading)
	}
	return Cell{Status: CellLoading, Attempt: attempt, UpdatedAt: now.UTC()}, nil
}

func (c Cell) resolve(attempt, value string, now time.Time) (Cell, error) {
	if err := c.checkAttempt(attempt); err != nil {
		return c, err
	}
	return Cell{Status: CellResolved, Value: value, UpdatedAt: now.UTC()}, nil
}

func (c Cell) fail(attempt string, failure Failure, now time.Time) (Cell, error) {
	if err := c.checkAttempt(attempt); err != nil {
		return c, err
	}
	if failure.Kind == "" {
		failure.Kind = FailureRetryable
	}
	return Cell{Status: CellFailed, Failure: &failure, UpdatedAt: now.UTC()}, nil
}

// edit is the direct user write; it is valid from every state.
func (c Cell) edit(value string, now time.Time) Cell {
	return Cell{Status: CellResolved, Value: value, UpdatedAt: now.UTC()}
}

func (c Cell) checkAttempt(attempt string) error {
	if c.Status != CellLoading || c.Attempt != attempt {
		return fmt.Errorf("%w: cell is %s", ErrStaleAttempt, c.Status)
	}
	return nil
}
