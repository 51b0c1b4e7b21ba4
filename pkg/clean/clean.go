// Package clean provides composable table transform stages. A Stage takes a
// table and returns a transformed copy; a Chain applies stages in a fixed
// order. Stage order matters: the resort pipeline checks snowfall presence
// on raw values before numeric coercion runs.
package clean

import (
	"fmt"
	"strings"

	"github.com/snowline/snowline/internal/logger"
	"github.com/snowline/snowline/pkg/table"
)

// Stage transforms a table. Implementations must not mutate the input.
type Stage interface {
	// Apply transforms the input table into a new table.
	Apply(t *table.Table) (*table.Table, error)

	// Name returns the stage type for logging/debugging.
	Name() string
}

// SchemaMismatchError reports a raw table whose column count does not match
// the fixed rename list. Renaming by position would silently mislabel
// columns, so the pipeline fails loudly instead.
type SchemaMismatchError struct {
	Want int
	Got  int
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch: expected %d columns, got %d", e.Want, e.Got)
}

// Chain applies multiple stages in sequence.
type Chain struct {
	stages []Stage
}

// NewChain creates a chain that applies stages in the order provided.
func NewChain(stages ...Stage) *Chain {
	return &Chain{stages: stages}
}

// Apply runs every stage in order. The input table is never modified.
func (c *Chain) Apply(t *table.Table) (*table.Table, error) {
	out := t
	for _, stage := range c.stages {
		var err error
		out, err = stage.Apply(out)
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", stage.Name(), err)
		}
		logger.Debug("clean stage applied", "stage", stage.Name(), "rows", out.NumRows())
	}
	return out, nil
}

// Name returns the names of all chained stages.
func (c *Chain) Name() string {
	names := make([]string, len(c.stages))
	for i, stage := range c.stages {
		names[i] = stage.Name()
	}
	return "chain(" + strings.Join(names, "->") + ")"
}
