package engine

import (
	"context"
	"fmt"

	"github.com/cs121287/zen/internal/garden"
	"github.com/cs121287/zen/internal/rules"
)

// checkEvery is how many sampling attempts pass between cancellation checks.
const checkEvery = 64

// span is the slice of overall progress a stage reports into.
type span struct {
	start, end int
}

// at interpolates progress for step of total inside the span.
func (s span) at(step, total int) int {
	if total <= 0 {
		return s.start
	}
	return s.start + (s.end-s.start)*step/total
}

// split returns the i-th of n equal sub-spans.
func (s span) split(i, n int) span {
	width := s.end - s.start
	return span{start: s.start + width*i/n, end: s.start + width*(i+1)/n}
}

var phaseSpans = map[rules.Phase]span{
	rules.PhaseTerrain:        {0, 15},
	rules.PhaseWater:          {15, 30},
	rules.PhaseInfrastructure: {30, 40},
	rules.PhaseGravelGarden:   {40, 50},
	rules.PhaseFlowPatterns:   {50, 70},
	rules.PhaseDecoration:     {70, 90},
}

var refineSpan = span{90, 100}

// monitor reports monotonic progress and surfaces context cancellation.
type monitor struct {
	ctx  context.Context
	sink func(int)
	last int
}

func newMonitor(ctx context.Context, sink func(int)) *monitor {
	if ctx == nil {
		ctx = context.Background()
	}
	return &monitor{ctx: ctx, sink: sink, last: -1}
}

func (m *monitor) check() error {
	if err := m.ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCancelled, err)
	}
	return nil
}

// report forwards pct to the sink only when it advances.
func (m *monitor) report(pct int) {
	pct = garden.Clamp(pct, 0, 100)
	if pct <= m.last {
		return
	}
	m.last = pct
	if m.sink != nil {
		m.sink(pct)
	}
}
