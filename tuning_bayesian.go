package autopas

import (
	"math"

	"github.com/gekko3d/autopas/internal/gp"
)

// AcquisitionFunc selects how BayesianSearch scores a candidate from the
// posterior mean/variance predicted by its Gaussian process.
type AcquisitionFunc int

const (
	AcquisitionUCB AcquisitionFunc = iota
	AcquisitionLCB
	AcquisitionMean
)

// BayesianSearch explores the discrete (container, traversal, layout,
// Newton-3) facets exhaustively but treats cellSizeFactor as a continuous
// dimension modeled by a Gaussian process: each discrete combination gets
// its own regressor over cellSizeFactor, and every phase the acquisition
// function picks which cellSizeFactor sample to measure next.
type BayesianSearch struct {
	discreteConfigs  []Configuration   // one representative per discrete facet combination, cellSizeFactor ignored
	cellSizeSamples  []float64         // finite candidate set for the continuous dimension
	acquisition      AcquisitionFunc
	kappa            float64
	numSamples       int
	selector         SelectorStrategyOption

	regressors map[Configuration]*gp.Regressor
	observedX  map[Configuration][][]float64
	observedY  map[Configuration][]float64

	order             []Configuration
	orderIdx          int
	samplesThisConfig int
	evidence          map[Configuration]*Evidence
	phase             int
}

func NewBayesianSearch(discreteConfigs []Configuration, cellSizeSamples []float64, acquisition AcquisitionFunc, kappa float64, numSamples int, selector SelectorStrategyOption) *BayesianSearch {
	b := &BayesianSearch{
		cellSizeSamples: cellSizeSamples,
		acquisition:     acquisition,
		kappa:           kappa,
		numSamples:      numSamples,
		selector:        selector,
		regressors:      make(map[Configuration]*gp.Regressor),
		observedX:       make(map[Configuration][][]float64),
		observedY:       make(map[Configuration][]float64),
		evidence:        make(map[Configuration]*Evidence),
	}
	for _, c := range discreteConfigs {
		key := withZeroCellSize(c)
		if _, seen := b.regressors[key]; seen {
			continue
		}
		b.regressors[key] = gp.NewRegressor(gp.Kernel{Variance: 1, LengthScale: 0.5}, 1e-6)
		b.discreteConfigs = append(b.discreteConfigs, key)
	}
	b.deriveOrder()
	return b
}

func (b *BayesianSearch) CurrentConfiguration() Configuration {
	return b.order[b.orderIdx]
}

func (b *BayesianSearch) AddEvidence(nanos int64, iteration int) {
	cfg := b.CurrentConfiguration()
	ev, ok := b.evidence[cfg]
	if !ok {
		ev = &Evidence{}
		b.evidence[cfg] = ev
	}
	ev.Add(iteration, nanos)
	b.samplesThisConfig++
}

func (b *BayesianSearch) RemoveN3Option(opt Newton3Option) {
	filtered := b.discreteConfigs[:0:0]
	for _, c := range b.discreteConfigs {
		if c.Newton3 != opt {
			filtered = append(filtered, c)
		}
	}
	b.discreteConfigs = filtered
	b.deriveOrder()
}

func (b *BayesianSearch) Reset(iteration int) {
	b.phase++
	b.samplesThisConfig = 0
	b.evidence = make(map[Configuration]*Evidence)
	b.deriveOrder()
}

func (b *BayesianSearch) Tune(lastWasInvalid bool) (bool, error) {
	if lastWasInvalid {
		delete(b.evidence, b.CurrentConfiguration())
		b.samplesThisConfig = 0
		b.fitObserved(b.CurrentConfiguration(), math.Inf(1))
		b.orderIdx++
	} else if b.samplesThisConfig >= b.numSamples {
		cfg := b.CurrentConfiguration()
		if ev := b.evidence[cfg]; ev != nil {
			var score float64
			if b.selector == SelectorFastestAbs {
				score = float64(ev.Fastest())
			} else {
				score = ev.Mean()
			}
			b.fitObserved(cfg, score)
		}
		b.samplesThisConfig = 0
		b.orderIdx++
	}

	if b.orderIdx < len(b.order) {
		return true, nil
	}

	if len(b.evidence) == 0 {
		return false, &TuningUnderDeterminedError{Phase: b.phase}
	}
	best := b.selectBest()
	b.order = []Configuration{best}
	b.orderIdx = 0
	return false, nil
}

func (b *BayesianSearch) fitObserved(cfg Configuration, score float64) {
	key := withZeroCellSize(cfg)
	reg, ok := b.regressors[key]
	if !ok {
		return
	}
	if math.IsInf(score, 1) {
		return
	}
	b.observedX[key] = append(b.observedX[key], []float64{cfg.CellSizeFactor})
	b.observedY[key] = append(b.observedY[key], score)
	reg.Fit(b.observedX[key], b.observedY[key])
}

func (b *BayesianSearch) selectBest() Configuration {
	var best Configuration
	bestScore := math.Inf(1)
	for cfg, ev := range b.evidence {
		if len(ev.Samples) == 0 {
			continue
		}
		var score float64
		if b.selector == SelectorFastestAbs {
			score = float64(ev.Fastest())
		} else {
			score = ev.Mean()
		}
		if score < bestScore {
			bestScore = score
			best = cfg
		}
	}
	return best
}

// deriveOrder picks, for every discrete facet combination, the
// cellSizeFactor sample the acquisition function currently favors, and
// queues those as this phase's candidates.
func (b *BayesianSearch) deriveOrder() {
	var out []Configuration
	for _, base := range b.discreteConfigs {
		key := withZeroCellSize(base)
		reg := b.regressors[key]
		bestCSF := b.cellSizeSamples[0]
		bestScore := math.Inf(-1)
		for _, csf := range b.cellSizeSamples {
			mean, variance := reg.Predict([]float64{csf})
			score := b.score(mean, variance)
			if score > bestScore {
				bestScore = score
				bestCSF = csf
			}
		}
		cfg := base
		cfg.CellSizeFactor = bestCSF
		out = append(out, cfg)
	}
	b.order = out
	b.orderIdx = 0
}

// score turns a predicted (mean, variance) into an acquisition value to
// maximize. Runtimes are costs, so UCB/LCB are expressed as negated
// mean +/- kappa*stddev: lower predicted runtime always scores higher.
func (b *BayesianSearch) score(mean, variance float64) float64 {
	stddev := math.Sqrt(variance)
	switch b.acquisition {
	case AcquisitionUCB:
		return -mean + b.kappa*stddev
	case AcquisitionLCB:
		return -mean - b.kappa*stddev
	default:
		return -mean
	}
}

func withZeroCellSize(c Configuration) Configuration {
	c.CellSizeFactor = 0
	return c
}
