// Package mpi narrows MPI down to the handful of collective operations
// the core actually calls: a barrier, an allreduce, and a Bcast. A no-op
// stub lets the core build and test without linking a real MPI library.
//
// There is deliberately no cgo binding to a real MPI implementation here:
// FullSearchMPI is exercised in single-process tests against NoOp, and an
// embedder that links a real MPI runtime provides their own Comm
// implementation satisfying the same interface.
package mpi

// RankNS pairs a candidate's measured time with the rank that measured
// it, so AllReduceMin can elect both the winning time and the rank that
// should broadcast the winning configuration.
type RankNS struct {
	Nanos int64
	Rank  int
}

// Comm is the narrow collective-operations surface consumed by
// FullSearchMPI.
type Comm interface {
	CommRank() int
	CommSize() int

	// BarrierNonBlocking starts a non-blocking barrier and returns a
	// handle Test polls for completion.
	BarrierNonBlocking() Request

	// AllReduceMin reduces one RankNS per rank to the minimum by Nanos,
	// carrying along which rank produced it.
	AllReduceMin(local RankNS) RankNS

	// Bcast broadcasts cfg (opaque payload bytes) from root to every
	// rank, returning the payload every rank ends up holding.
	Bcast(root int, payload []byte) []byte
}

// Request is a handle to a pending non-blocking collective.
type Request interface {
	// Test reports whether the operation has completed. Never blocks.
	Test() bool
}

// NoOp is the single-rank stub: CommSize is always 1, the barrier
// completes immediately, AllReduceMin returns its own input unchanged,
// and Bcast is the identity. It lets FullSearchMPI run (and be tested)
// without linking any MPI library.
type NoOp struct{}

func (NoOp) CommRank() int { return 0 }
func (NoOp) CommSize() int { return 1 }

func (NoOp) BarrierNonBlocking() Request { return noOpRequest{} }

func (NoOp) AllReduceMin(local RankNS) RankNS { return local }

func (NoOp) Bcast(root int, payload []byte) []byte { return payload }

type noOpRequest struct{}

func (noOpRequest) Test() bool { return true }
