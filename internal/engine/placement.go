package engine

import (
	"github.com/cs121287/zen/internal/elements"
	"github.com/cs121287/zen/internal/rules"
)

// Sampling budgets for capped kinds.
const (
	attemptsPerSlot = 1000 // stochastic budget is attemptsPerSlot * Max
	forcedAttempts  = 2000
)

func (r *run) runPhase(phase rules.Phase) error {
	sp := phaseSpans[phase]
	r.mon.report(sp.start)

	kinds := rules.KindsInPhase(phase)
	switch phase {
	case rules.PhaseGravelGarden:
		r.fillGravel()
		return nil
	case rules.PhaseFlowPatterns:
		for i, k := range kinds {
			if err := r.sampleFlow(k, sp.split(i, len(kinds))); err != nil {
				return err
			}
		}
		return nil
	}

	for i, k := range kinds {
		if err := r.place(k, sp.split(i, len(kinds))); err != nil {
			return err
		}
	}
	return nil
}

// place runs bounded stochastic placement for one capped kind, then a forced
// pass without the probability gate if the minimum is still unmet.
func (r *run) place(kind rules.ElementKind, sp span) error {
	return r.placeVariant(elements.For(kind), rules.LimitsFor(kind), sp)
}

func (r *run) placeVariant(v elements.Variant, lim rules.PlacementLimits, sp span) error {
	kind := v.Kind
	budget := attemptsPerSlot * lim.Max
	placed := 0
	for attempt := 0; attempt < budget && placed < lim.Max; attempt++ {
		if attempt%checkEvery == 0 {
			if err := r.mon.check(); err != nil {
				return err
			}
			r.mon.report(sp.at(attempt, budget))
		}
		s := r.randomSite()
		if !v.CanPlace(s) {
			continue
		}
		if v.Probability(s) < r.rng.Float64() {
			continue
		}
		v.Effect(s)
		placed++
	}

	forced := 0
	for attempt := 0; attempt < forcedAttempts && placed < lim.Min; attempt++ {
		if attempt%checkEvery == 0 {
			if err := r.mon.check(); err != nil {
				return err
			}
		}
		s := r.randomSite()
		if !v.CanPlace(s) {
			continue
		}
		v.Effect(s)
		placed++
		forced++
	}

	r.placements[kind] = placed
	if placed < lim.Min {
		w := SoftConstraintUnmet{Kind: kind, Min: lim.Min, Placed: placed}
		r.warnings = append(r.warnings, w)
		r.log.Warn("minimum not met", "kind", kind.String(), "min", lim.Min, "placed", placed, "seed", r.cfg.Seed)
	}
	r.log.Debug("kind placed", "kind", kind.String(), "placed", placed, "forced", forced, "cells", r.ctx.Count(kind))
	return nil
}

// fillGravel sweeps every cell once; whatever is still empty becomes gravel.
func (r *run) fillGravel() {
	v := elements.For(rules.FineGravel)
	filled := 0
	for row := 0; row < r.cfg.Height; row++ {
		for col := 0; col < r.cfg.Width; col++ {
			s := r.site(row, col)
			if v.CanPlace(s) {
				filled += v.Effect(s)
			}
		}
	}
	r.placements[rules.FineGravel] = filled
	r.log.Debug("gravel filled", "cells", filled)
}

// sampleFlow draws a fixed number of sites for an uncapped raked kind.
func (r *run) sampleFlow(kind rules.ElementKind, sp span) error {
	v := elements.For(kind)
	budget := r.cfg.FlowAttempts
	lines := 0
	for attempt := 0; attempt < budget; attempt++ {
		if attempt%checkEvery == 0 {
			if err := r.mon.check(); err != nil {
				return err
			}
			r.mon.report(sp.at(attempt, budget))
		}
		s := r.randomSite()
		if !v.CanPlace(s) {
			continue
		}
		if v.Probability(s) < r.rng.Float64() {
			continue
		}
		v.Effect(s)
		lines++
	}
	r.placements[kind] = lines
	r.log.Debug("pattern sampled", "kind", kind.String(), "lines", lines, "attempts", budget)
	return nil
}
