package autopas

import (
	"encoding/binary"
	"math"

	"github.com/gekko3d/autopas/internal/mpi"
)

// FullSearchMPI partitions the search space across MPI ranks by
// contiguous index range (remainder distributed to the low ranks); each
// rank runs an ordinary FullSearch over its subset, then a non-blocking
// barrier and an Allreduce(MIN, rank-carrying-payload) elect the global
// winner, and the winning rank broadcasts the winning configuration so
// every rank ends the phase with the identical committed configuration.
type FullSearchMPI struct {
	comm  mpi.Comm
	local *FullSearch

	committed *Configuration
}

func NewFullSearchMPI(comm mpi.Comm, fullSpace *SearchSpace, numSamples int, selector SelectorStrategyOption) *FullSearchMPI {
	rank := comm.CommRank()
	size := comm.CommSize()
	lo, hi := mpiPartition(len(fullSpace.configs), rank, size)
	local := &SearchSpace{configs: append([]Configuration{}, fullSpace.configs[lo:hi]...)}
	if len(local.configs) == 0 {
		// Keep at least one config so FullSearch never sees an empty
		// space; a rank with no assigned share measures the full space's
		// first configuration and enters the reduction with that timing.
		local.configs = []Configuration{fullSpace.configs[0]}
	}
	return &FullSearchMPI{
		comm:  comm,
		local: NewFullSearch(local, numSamples, selector),
	}
}

// mpiPartition distributes n items across size ranks as evenly as
// possible, with the remainder going to the lowest-numbered ranks.
func mpiPartition(n, rank, size int) (lo, hi int) {
	base := n / size
	rem := n % size
	if rank < rem {
		lo = rank * (base + 1)
		hi = lo + base + 1
	} else {
		lo = rem*(base+1) + (rank-rem)*base
		hi = lo + base
	}
	return
}

func (f *FullSearchMPI) CurrentConfiguration() Configuration {
	if f.committed != nil {
		return *f.committed
	}
	return f.local.CurrentConfiguration()
}

func (f *FullSearchMPI) AddEvidence(nanos int64, iteration int) {
	f.local.AddEvidence(nanos, iteration)
}

func (f *FullSearchMPI) RemoveN3Option(opt Newton3Option) {
	f.local.RemoveN3Option(opt)
}

func (f *FullSearchMPI) Reset(iteration int) {
	f.committed = nil
	f.local.Reset(iteration)
}

func (f *FullSearchMPI) Tune(lastWasInvalid bool) (bool, error) {
	more, err := f.local.Tune(lastWasInvalid)
	if err != nil {
		return false, err
	}
	if more {
		return true, nil
	}

	// Local phase is over: elect the global winner.
	req := f.comm.BarrierNonBlocking()
	for !req.Test() {
		// No task may suspend; a real MPI binding would
		// yield here, the NoOp stub completes on the first Test call.
	}

	localBest := f.local.CurrentConfiguration()
	localNS := int64(math.MaxInt64)
	if ev, ok := f.local.evidence[localBest]; ok && len(ev.Samples) > 0 {
		localNS = ev.Fastest()
	}

	winner := f.comm.AllReduceMin(mpi.RankNS{Nanos: localNS, Rank: f.comm.CommRank()})

	payload := encodeConfiguration(localBest)
	if f.comm.CommRank() != winner.Rank {
		payload = make([]byte, configurationWireSize)
	}
	received := f.comm.Bcast(winner.Rank, payload)
	cfg := decodeConfiguration(received)
	f.committed = &cfg
	return false, nil
}

const configurationWireSize = 5 * 8

func encodeConfiguration(c Configuration) []byte {
	buf := make([]byte, configurationWireSize)
	binary.LittleEndian.PutUint64(buf[0:8], uint64(c.Container))
	binary.LittleEndian.PutUint64(buf[8:16], math.Float64bits(c.CellSizeFactor))
	binary.LittleEndian.PutUint64(buf[16:24], uint64(c.Traversal))
	binary.LittleEndian.PutUint64(buf[24:32], uint64(c.DataLayout))
	binary.LittleEndian.PutUint64(buf[32:40], uint64(c.Newton3))
	return buf
}

func decodeConfiguration(buf []byte) Configuration {
	return Configuration{
		Container:      ContainerOption(binary.LittleEndian.Uint64(buf[0:8])),
		CellSizeFactor: math.Float64frombits(binary.LittleEndian.Uint64(buf[8:16])),
		Traversal:      TraversalOption(binary.LittleEndian.Uint64(buf[16:24])),
		DataLayout:     DataLayoutOption(binary.LittleEndian.Uint64(buf[24:32])),
		Newton3:        Newton3Option(binary.LittleEndian.Uint64(buf[32:40])),
	}
}
