package autopas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/autopas/internal/mpi"
)

func smallSpace(t *testing.T) *SearchSpace {
	t.Helper()
	space, err := NewSearchSpace(
		[]ContainerOption{ContainerLinkedCells},
		[]float64{1.0},
		[]TraversalOption{TraversalC08, TraversalSliced},
		[]DataLayoutOption{AoS},
		[]Newton3Option{Newton3On},
	)
	require.NoError(t, err)
	return space
}

func TestFullSearchPicksFastestConfiguration(t *testing.T) {
	space := smallSpace(t)
	fs := NewFullSearch(space, 2, SelectorFastestMean)

	// Feed c08 slower samples, sliced faster samples, verifying the
	// strategy settles on sliced.
	timings := map[TraversalOption][]int64{
		TraversalC08:    {100, 110},
		TraversalSliced: {10, 12},
	}
	for {
		cfg := fs.CurrentConfiguration()
		ns := timings[cfg.Traversal][0]
		timings[cfg.Traversal] = timings[cfg.Traversal][1:]
		fs.AddEvidence(ns, 0)
		more, err := fs.Tune(false)
		require.NoError(t, err)
		if !more {
			break
		}
	}
	assert.Equal(t, TraversalSliced, fs.CurrentConfiguration().Traversal)
}

func TestFullSearchUnderDeterminedWithNoEvidence(t *testing.T) {
	space := smallSpace(t)
	fs := NewFullSearch(space, 1, SelectorFastestMean)
	// Every sample reported invalid: no evidence is ever recorded.
	for {
		more, err := fs.Tune(true)
		if !more {
			assert.Error(t, err)
			var tud *TuningUnderDeterminedError
			assert.ErrorAs(t, err, &tud)
			return
		}
		require.NoError(t, err)
	}
}

// 2 ranks, 4-configuration space partitioned {0,1}/{2,3}; both ranks must
// commit to the same winner.
// The two ranks run as concurrent goroutines exchanging real collective
// calls over channels, since Allreduce/Bcast are rendezvous points that
// cannot be faked by running one rank to completion before the other.
func TestFullSearchMPIAllRanksAgree(t *testing.T) {
	space, err := NewSearchSpace(
		[]ContainerOption{ContainerLinkedCells},
		[]float64{1.0},
		[]TraversalOption{TraversalC08, TraversalSliced, TraversalBalancedSliced, TraversalC18},
		[]DataLayoutOption{AoS},
		[]Newton3Option{Newton3On},
	)
	require.NoError(t, err)
	require.Equal(t, 4, space.Len())

	coll := newTwoRankCollective()
	results := make([]Configuration, 2)
	done := make(chan struct{}, 2)

	// Rank 0's subset measures slow; rank 1's measures fast, so the
	// global winner must come from rank 1's subset.
	go func() {
		strat := NewFullSearchMPI(coll.forRank(0), space, 1, SelectorFastestMean)
		runOneRank(t, strat, 1000)
		results[0] = strat.CurrentConfiguration()
		done <- struct{}{}
	}()
	go func() {
		strat := NewFullSearchMPI(coll.forRank(1), space, 1, SelectorFastestMean)
		runOneRank(t, strat, 1)
		results[1] = strat.CurrentConfiguration()
		done <- struct{}{}
	}()
	<-done
	<-done

	assert.Equal(t, results[1], results[0])
}

func runOneRank(t *testing.T, strat *FullSearchMPI, baseNanos int64) {
	t.Helper()
	for {
		strat.AddEvidence(baseNanos, 0)
		more, err := strat.Tune(false)
		require.NoError(t, err)
		if !more {
			return
		}
	}
}

// twoRankCollective is a real (if trivial) 2-rank mpi.Comm: each
// collective call blocks until both ranks have arrived, via channels,
// the way an actual MPI collective would.
type twoRankCollective struct {
	barrier [2]chan struct{}
	reduceIn  [2]chan mpi.RankNS
	reduceOut [2]chan mpi.RankNS
	bcastIn  [2]chan []byte
	bcastOut [2]chan []byte
}

func newTwoRankCollective() *twoRankCollective {
	c := &twoRankCollective{}
	for i := 0; i < 2; i++ {
		c.barrier[i] = make(chan struct{}, 1)
		c.reduceIn[i] = make(chan mpi.RankNS, 1)
		c.reduceOut[i] = make(chan mpi.RankNS, 1)
		c.bcastIn[i] = make(chan []byte, 1)
		c.bcastOut[i] = make(chan []byte, 1)
	}
	go c.runReduce()
	go c.runBcast()
	return c
}

func (c *twoRankCollective) runReduce() {
	a := <-c.reduceIn[0]
	b := <-c.reduceIn[1]
	best := a
	if b.Nanos < best.Nanos {
		best = b
	}
	c.reduceOut[0] <- best
	c.reduceOut[1] <- best
}

func (c *twoRankCollective) runBcast() {
	a := <-c.bcastIn[0]
	b := <-c.bcastIn[1]
	// Whichever rank is root sent the real payload; the other sent a
	// zeroed placeholder (FullSearchMPI.Tune's convention).
	payload := a
	if isZero(payload) {
		payload = b
	}
	c.bcastOut[0] <- payload
	c.bcastOut[1] <- payload
}

func isZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

func (c *twoRankCollective) forRank(rank int) mpi.Comm { return twoRankComm{rank: rank, coll: c} }

type twoRankComm struct {
	rank int
	coll *twoRankCollective
}

func (c twoRankComm) CommRank() int { return c.rank }
func (c twoRankComm) CommSize() int { return 2 }
func (c twoRankComm) BarrierNonBlocking() mpi.Request { return alwaysDoneRequest{} }

func (c twoRankComm) AllReduceMin(local mpi.RankNS) mpi.RankNS {
	c.coll.reduceIn[c.rank] <- local
	return <-c.coll.reduceOut[c.rank]
}

func (c twoRankComm) Bcast(root int, payload []byte) []byte {
	c.coll.bcastIn[c.rank] <- payload
	return <-c.coll.bcastOut[c.rank]
}

type alwaysDoneRequest struct{}

func (alwaysDoneRequest) Test() bool { return true }
