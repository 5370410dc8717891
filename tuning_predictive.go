package autopas

import "math"

// PredictorKind selects how Predictive extrapolates a configuration's next
// runtime from its history.
type PredictorKind int

const (
	PredictorLinear PredictorKind = iota
	PredictorLagrange
	PredictorNewton
)

// predictiveHistory is the cross-phase evidence Predictive keeps for one
// configuration, unlike FullSearch's evidence which is cleared every phase.
type predictiveHistory struct {
	evidence           Evidence
	lastTestedPhase    int
	neverTested        bool
}

// Predictive retains history across tuning phases and, instead of
// re-measuring every configuration every phase, extrapolates each
// configuration's next runtime from its past samples. The candidate set
// for a phase is the union of:
//   - configurations predicted to land within relativeOptimumRange of the
//     best prediction, and
//   - configurations untested for maxTuningPhasesWithoutTest phases
//     (so a configuration that silently got better is eventually
//     re-checked).
//
type Predictive struct {
	space                    *SearchSpace
	predictor                PredictorKind
	relativeOptimumRange     float64
	maxTuningPhasesWithoutTest int
	numSamples               int
	selector                 SelectorStrategyOption

	history map[Configuration]*predictiveHistory
	phase   int

	candidates        []Configuration
	candidateIdx      int
	samplesThisConfig int
}

func NewPredictive(space *SearchSpace, predictor PredictorKind, relativeOptimumRange float64, maxTuningPhasesWithoutTest, numSamples int, selector SelectorStrategyOption) *Predictive {
	p := &Predictive{
		space:                      space,
		predictor:                  predictor,
		relativeOptimumRange:       relativeOptimumRange,
		maxTuningPhasesWithoutTest: maxTuningPhasesWithoutTest,
		numSamples:                 numSamples,
		selector:                   selector,
		history:                    make(map[Configuration]*predictiveHistory),
	}
	for _, c := range space.configs {
		p.history[c] = &predictiveHistory{neverTested: true, lastTestedPhase: -1}
	}
	p.deriveCandidates()
	return p
}

func (p *Predictive) CurrentConfiguration() Configuration {
	return p.candidates[p.candidateIdx]
}

func (p *Predictive) AddEvidence(nanos int64, iteration int) {
	cfg := p.CurrentConfiguration()
	h := p.history[cfg]
	h.evidence.Add(iteration, nanos)
	h.lastTestedPhase = p.phase
	h.neverTested = false
	p.samplesThisConfig++
}

func (p *Predictive) RemoveN3Option(opt Newton3Option) {
	p.space.removeNewton3(opt)
	for cfg := range p.history {
		if cfg.Newton3 == opt {
			delete(p.history, cfg)
		}
	}
	p.deriveCandidates()
}

func (p *Predictive) Reset(iteration int) {
	p.phase++
	p.samplesThisConfig = 0
	p.deriveCandidates()
}

func (p *Predictive) Tune(lastWasInvalid bool) (bool, error) {
	if lastWasInvalid {
		delete(p.history, p.CurrentConfiguration())
		p.samplesThisConfig = 0
		p.candidateIdx++
	} else if p.samplesThisConfig >= p.numSamples {
		p.samplesThisConfig = 0
		p.candidateIdx++
	}

	if p.candidateIdx < len(p.candidates) {
		return true, nil
	}

	if len(p.history) == 0 {
		return false, &TuningUnderDeterminedError{Phase: p.phase}
	}

	best := p.selectBest()
	p.candidates = []Configuration{best}
	p.candidateIdx = 0
	return false, nil
}

// selectBest picks the configuration with the best score over all of its
// retained samples, whichever phases they came from. If no configuration
// has any sample, it returns an arbitrary configuration from the history.
func (p *Predictive) selectBest() Configuration {
	var best Configuration
	bestScore := math.Inf(1)
	for cfg, h := range p.history {
		if len(h.evidence.Samples) == 0 {
			continue
		}
		var score float64
		if p.selector == SelectorFastestAbs {
			score = float64(h.evidence.Fastest())
		} else {
			score = h.evidence.Mean()
		}
		if score < bestScore {
			bestScore = score
			best = cfg
		}
	}
	if math.IsInf(bestScore, 1) {
		for cfg := range p.history {
			best = cfg
			break
		}
	}
	return best
}

// deriveCandidates rebuilds the phase's candidate list from predictions
// plus the "hasn't been tested in a while" rule.
func (p *Predictive) deriveCandidates() {
	type predicted struct {
		cfg   Configuration
		value float64
		has   bool
	}
	preds := make([]predicted, 0, len(p.history))
	for cfg, h := range p.history {
		v, ok := p.predict(h)
		preds = append(preds, predicted{cfg: cfg, value: v, has: ok})
	}

	bestPrediction := math.Inf(1)
	for _, pr := range preds {
		if pr.has && pr.value < bestPrediction {
			bestPrediction = pr.value
		}
	}

	seen := make(map[Configuration]bool)
	var out []Configuration
	for _, pr := range preds {
		stale := p.phase-p.history[pr.cfg].lastTestedPhase >= p.maxTuningPhasesWithoutTest
		withinRange := pr.has && bestPrediction > 0 && pr.value <= p.relativeOptimumRange*bestPrediction
		if !pr.has || stale || withinRange {
			if !seen[pr.cfg] {
				seen[pr.cfg] = true
				out = append(out, pr.cfg)
			}
		}
	}
	if len(out) == 0 {
		// Every configuration was confidently predicted far from
		// optimal and none is stale: fall back to re-deriving against
		// the full remaining space rather than tuning with an empty
		// candidate set.
		for cfg := range p.history {
			out = append(out, cfg)
		}
	}
	p.candidates = out
	p.candidateIdx = 0
}

// predict extrapolates a configuration's next runtime from its two most
// recent samples. Fewer than two samples means no prediction is possible
// yet, so the configuration is always a candidate until it has one.
func (p *Predictive) predict(h *predictiveHistory) (float64, bool) {
	n := len(h.evidence.Samples)
	if n < 2 {
		return 0, false
	}
	s1 := h.evidence.Samples[n-2]
	s2 := h.evidence.Samples[n-1]
	nextIter := float64(s2.Iteration + (s2.Iteration - s1.Iteration))
	if s2.Iteration == s1.Iteration {
		return float64(s2.Nanos), true
	}

	switch p.predictor {
	case PredictorLinear, PredictorLagrange:
		// With exactly two points, linear interpolation and degree-1
		// Lagrange interpolation coincide.
		x1, y1 := float64(s1.Iteration), float64(s1.Nanos)
		x2, y2 := float64(s2.Iteration), float64(s2.Nanos)
		slope := (y2 - y1) / (x2 - x1)
		return y2 + slope*(nextIter-x2), true
	case PredictorNewton:
		if n < 3 {
			x1, y1 := float64(s1.Iteration), float64(s1.Nanos)
			x2, y2 := float64(s2.Iteration), float64(s2.Nanos)
			slope := (y2 - y1) / (x2 - x1)
			return y2 + slope*(nextIter-x2), true
		}
		s0 := h.evidence.Samples[n-3]
		return newtonExtrapolate(s0, s1, s2, nextIter), true
	default:
		return float64(s2.Nanos), true
	}
}

// newtonExtrapolate evaluates the degree-2 Newton divided-difference
// polynomial through three samples at x.
func newtonExtrapolate(s0, s1, s2 Sample, x float64) float64 {
	x0, y0 := float64(s0.Iteration), float64(s0.Nanos)
	x1, y1 := float64(s1.Iteration), float64(s1.Nanos)
	x2, y2 := float64(s2.Iteration), float64(s2.Nanos)

	d01 := (y1 - y0) / (x1 - x0)
	d12 := (y2 - y1) / (x2 - x1)
	d012 := (d12 - d01) / (x2 - x0)

	return y0 + d01*(x-x0) + d012*(x-x0)*(x-x1)
}
