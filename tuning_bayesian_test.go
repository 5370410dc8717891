package autopas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseBayesianConfig() Configuration {
	return Configuration{
		Container:  ContainerLinkedCells,
		Traversal:  TraversalC08,
		DataLayout: AoS,
		Newton3:    Newton3On,
	}
}

// A BayesianSearch over a single discrete facet combination must still
// explore the continuous cellSizeFactor dimension: successive phases
// should try distinct samples from cellSizeSamples rather than repeating
// the same value, since each measured sample drives the regressor's
// posterior and shifts which sample the acquisition function favors next.
func TestBayesianSearchExploresDistinctCellSizeFactors(t *testing.T) {
	cellSizes := []float64{0.8, 1.0, 1.2, 1.5}
	b := NewBayesianSearch([]Configuration{baseBayesianConfig()}, cellSizes, AcquisitionUCB, 2.0, 1, SelectorFastestMean)

	tried := map[float64]bool{}
	for i := 0; i < len(cellSizes); i++ {
		cfg := b.CurrentConfiguration()
		tried[cfg.CellSizeFactor] = true
		// Make a middling cellSizeFactor look best so the acquisition
		// function has a real signal to chase rather than ties.
		nanos := int64(1000)
		if cfg.CellSizeFactor == 1.0 {
			nanos = 10
		}
		b.AddEvidence(nanos, i)
		_, err := b.Tune(false)
		require.NoError(t, err)
		// A single discrete facet combination means each phase ends
		// after one measurement; Reset starts the next phase the way
		// AutoPas.IteratePairwise does once its tuning phase settles.
		b.Reset(i + 1)
	}

	assert.Greater(t, len(tried), 1, "Bayesian search should sample more than one cellSizeFactor across phases")
}

// Once every candidate cellSizeFactor has been observed and one is a
// clear winner, the mean-acquisition strategy settles on it rather
// than continuing to wander.
func TestBayesianSearchConvergesToObservedBest(t *testing.T) {
	cellSizes := []float64{0.8, 1.0, 1.2}
	b := NewBayesianSearch([]Configuration{baseBayesianConfig()}, cellSizes, AcquisitionMean, 0, 1, SelectorFastestMean)
	scores := map[float64]int64{0.8: 500, 1.0: 10, 1.2: 700}

	// Force every sample to be observed at least once by visiting them
	// directly through the regressor, the way several measured phases
	// would over time.
	for _, csf := range cellSizes {
		cfg := baseBayesianConfig()
		cfg.CellSizeFactor = csf
		b.fitObserved(cfg, float64(scores[csf]))
	}
	b.deriveOrder()

	require.Len(t, b.order, 1)
	assert.Equal(t, 1.0, b.order[0].CellSizeFactor, "mean acquisition should favor the cellSizeFactor with the lowest observed runtime")
}

func TestBayesianSearchUnderDeterminedWithNoEvidence(t *testing.T) {
	b := NewBayesianSearch([]Configuration{baseBayesianConfig()}, []float64{1.0}, AcquisitionUCB, 2.0, 1, SelectorFastestMean)
	_, err := b.Tune(true)
	require.Error(t, err)
	assert.ErrorAs(t, err, new(*TuningUnderDeterminedError))
}
