package autopas

import (
	"time"

	"github.com/google/uuid"

	"github.com/gekko3d/autopas/internal/mpi"
)

// TuningStrategyOption selects which TuningStrategy implementation Init
// wires up.
type TuningStrategyOption int

const (
	StrategyFullSearch TuningStrategyOption = iota
	StrategyFullSearchMPI
	StrategyPredictive
	StrategyBayesian
)

// AutoPas is the façade: the only type an embedder constructs directly.
// It owns the active container, drives the tuning state machine, and is
// the sole surface through which user code ever touches particles.
type AutoPas struct {
	Logger Logger

	boxMin, boxMax Vec3
	cutoff         float64
	skin           float64
	rebuildFrequency int

	allowedContainers  []ContainerOption
	allowedTraversals  []TraversalOption
	allowedLayouts     []DataLayoutOption
	allowedNewton3     []Newton3Option
	allowedCellSizes   []float64

	tuningStrategyOption TuningStrategyOption
	numSamples           int
	tuningInterval       int
	selector             SelectorStrategyOption

	strategy TuningStrategy
	space    *SearchSpace

	containers map[ContainerOption]cachedContainer
	active     Container
	current    Configuration

	iteration         int
	inTuningPhase     bool
	samplesThisConfig int
	phaseLogger       Logger // a.Logger.WithPhase(id), rebuilt at the start of every tuning phase
}

type cachedContainer struct {
	container      Container
	cellSizeFactor float64
}

func NewAutoPas(logger Logger) *AutoPas {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &AutoPas{
		Logger:               logger,
		rebuildFrequency:     10,
		numSamples:           3,
		tuningInterval:       1000,
		tuningStrategyOption: StrategyFullSearch,
		selector:             SelectorFastestMean,
		containers:           make(map[ContainerOption]cachedContainer),
		allowedContainers:    []ContainerOption{ContainerLinkedCells},
		allowedTraversals:    []TraversalOption{TraversalC08},
		allowedLayouts:       []DataLayoutOption{AoS},
		allowedNewton3:       []Newton3Option{Newton3On},
		allowedCellSizes:     []float64{1.0},
	}
}

// --- Lifecycle setters ---

func (a *AutoPas) SetBoxMin(v Vec3) *AutoPas { a.boxMin = v; return a }
func (a *AutoPas) SetBoxMax(v Vec3) *AutoPas { a.boxMax = v; return a }
func (a *AutoPas) SetCutoff(c float64) *AutoPas { a.cutoff = c; return a }
func (a *AutoPas) SetVerletSkin(s float64) *AutoPas { a.skin = s; return a }
func (a *AutoPas) SetVerletRebuildFrequency(f int) *AutoPas { a.rebuildFrequency = f; return a }
func (a *AutoPas) SetAllowedContainers(opts []ContainerOption) *AutoPas { a.allowedContainers = opts; return a }
func (a *AutoPas) SetAllowedTraversals(opts []TraversalOption) *AutoPas { a.allowedTraversals = opts; return a }
func (a *AutoPas) SetAllowedDataLayouts(opts []DataLayoutOption) *AutoPas { a.allowedLayouts = opts; return a }
func (a *AutoPas) SetAllowedNewton3Options(opts []Newton3Option) *AutoPas { a.allowedNewton3 = opts; return a }
func (a *AutoPas) SetAllowedCellSizeFactors(factors []float64) *AutoPas { a.allowedCellSizes = factors; return a }
func (a *AutoPas) SetTuningStrategyOption(opt TuningStrategyOption) *AutoPas { a.tuningStrategyOption = opt; return a }
func (a *AutoPas) SetNumSamples(n int) *AutoPas { a.numSamples = n; return a }
func (a *AutoPas) SetTuningInterval(n int) *AutoPas { a.tuningInterval = n; return a }
func (a *AutoPas) SetSelectorStrategy(s SelectorStrategyOption) *AutoPas { a.selector = s; return a }

// SetTuningStrategy installs a strategy built outside the façade (used when
// a strategy needs construction arguments other than Init's defaults: a
// real Comm for FullSearchMPI, or other Predictive or BayesianSearch
// parameters). Calling this after Init replaces the in-flight strategy.
func (a *AutoPas) SetTuningStrategy(s TuningStrategy) *AutoPas { a.strategy = s; return a }

// --- Query ---

func (a *AutoPas) GetCutoff() float64 { return a.cutoff }
func (a *AutoPas) GetVerletSkin() float64 { return a.skin }
func (a *AutoPas) GetInteractionLength() float64 { return interactionLength(a.cutoff, a.skin) }

func (a *AutoPas) GetNumberOfParticles(behavior IteratorBehavior) int {
	if a.active == nil {
		return 0
	}
	return a.active.NumParticles(behavior)
}

// ConfigurationSpaceSize and AllowedConfigurations let an embedder inspect
// what the current allow-lists expand to before Init, so an empty search
// space can be caught eagerly.
func (a *AutoPas) ConfigurationSpaceSize() (int, error) {
	space, err := NewSearchSpace(a.allowedContainers, a.allowedCellSizes, a.allowedTraversals, a.allowedLayouts, a.allowedNewton3)
	if err != nil {
		return 0, err
	}
	return space.Len(), nil
}

func (a *AutoPas) AllowedConfigurations() ([]Configuration, error) {
	space, err := NewSearchSpace(a.allowedContainers, a.allowedCellSizes, a.allowedTraversals, a.allowedLayouts, a.allowedNewton3)
	if err != nil {
		return nil, err
	}
	return space.Configs(), nil
}

// Init builds the search space and the default strategy (if none was
// installed via SetTuningStrategy) and materializes the first
// configuration's container.
func (a *AutoPas) Init() error {
	space, err := NewSearchSpace(a.allowedContainers, a.allowedCellSizes, a.allowedTraversals, a.allowedLayouts, a.allowedNewton3)
	if err != nil {
		return err
	}
	a.space = space

	if a.strategy == nil {
		switch a.tuningStrategyOption {
		case StrategyFullSearchMPI:
			a.strategy = NewFullSearchMPI(mpi.NoOp{}, space, a.numSamples, a.selector)
		case StrategyPredictive:
			a.strategy = NewPredictive(space, PredictorLinear, 1.2, 5, a.numSamples, a.selector)
		case StrategyBayesian:
			a.strategy = NewBayesianSearch(space.configs, a.allowedCellSizes, AcquisitionUCB, 2.0, a.numSamples, a.selector)
		default:
			a.strategy = NewFullSearch(space, a.numSamples, a.selector)
		}
	}

	a.current = a.strategy.CurrentConfiguration()
	a.active = a.materialize(a.current)
	return nil
}

// materialize returns a container for cfg's (Container, CellSizeFactor),
// reusing a cached instance when one already exists for that exact pair
// (cheap switch), rebuilding from the previously-active container's
// particles otherwise.
func (a *AutoPas) materialize(cfg Configuration) Container {
	if cached, ok := a.containers[cfg.Container]; ok && cached.cellSizeFactor == cfg.CellSizeFactor {
		return cached.container
	}

	c := a.buildContainer(cfg.Container, cfg.CellSizeFactor)
	if a.active != nil {
		it := a.active.Iterate(OwnedOrHalo)
		for it.Valid() {
			p := it.Get()
			if p.IsOwned() {
				_ = c.Add(p)
			} else {
				_ = c.AddHalo(p)
			}
			it.Next()
		}
	}
	a.containers[cfg.Container] = cachedContainer{container: c, cellSizeFactor: cfg.CellSizeFactor}
	return c
}

func (a *AutoPas) buildContainer(kind ContainerOption, cellSizeFactor float64) Container {
	switch kind {
	case ContainerDirectSum:
		return NewDirectSum(a.boxMin, a.boxMax, a.cutoff, a.skin)
	case ContainerLinkedCells:
		return NewLinkedCells(a.boxMin, a.boxMax, a.cutoff, a.skin, cellSizeFactor)
	case ContainerLinkedCellsReferences:
		return NewReferenceLinkedCells(a.boxMin, a.boxMax, a.cutoff, a.skin, cellSizeFactor)
	case ContainerVerletLists:
		return NewVerletLists(a.boxMin, a.boxMax, a.cutoff, a.skin, cellSizeFactor, a.rebuildFrequency)
	case ContainerVerletClusterLists:
		return NewVerletClusterLists(a.boxMin, a.boxMax, a.cutoff, a.skin, a.rebuildFrequency)
	default:
		panic("autopas: unknown container option")
	}
}

func (a *AutoPas) buildTraversal(cfg Configuration, functor Functor) Traversal {
	newton3 := cfg.Newton3 == Newton3On
	switch cfg.Traversal {
	case TraversalDirectSum:
		return NewDirectSumTraversal(functor, cfg.DataLayout, newton3)
	case TraversalC08:
		return NewC08Traversal(functor, cfg.DataLayout, newton3)
	case TraversalSliced:
		return NewSlicedTraversal(functor, cfg.DataLayout, newton3)
	case TraversalBalancedSliced:
		return NewBalancedSlicedTraversal(functor, cfg.DataLayout, newton3, LoadEstimatorSquaredCellSize)
	case TraversalC18:
		return NewC18Traversal(functor, cfg.DataLayout, newton3)
	case TraversalVerletList:
		return NewVerletListTraversal(functor, cfg.DataLayout, newton3)
	case TraversalVerletCluster:
		return NewClusterTraversal(functor, cfg.DataLayout, newton3)
	default:
		panic("autopas: unknown traversal option")
	}
}

// --- Data plane ---

func (a *AutoPas) AddParticle(p Particle) error { return a.active.Add(p) }
func (a *AutoPas) AddHaloParticle(p Particle) error { return a.active.AddHalo(p) }
func (a *AutoPas) UpdateHaloParticle(p Particle) (bool, error) { return a.active.UpdateHalo(p) }
func (a *AutoPas) DeleteAllHaloParticles() { a.active.DeleteHalo() }

// UpdateContainer repartitions owned particles and returns those that left
// the domain.
func (a *AutoPas) UpdateContainer() []Particle { return a.active.Update() }

func (a *AutoPas) Begin(behavior IteratorBehavior) *Iterator { return a.active.Iterate(behavior) }

func (a *AutoPas) GetRegionIterator(lo, hi Vec3, behavior IteratorBehavior) *Iterator {
	return a.active.RegionIterate(lo, hi, behavior)
}

func (a *AutoPas) ForEach(behavior IteratorBehavior, fn func(Particle)) {
	ForEach(a.Begin(behavior), fn)
}

func (a *AutoPas) ForEachInRegion(lo, hi Vec3, behavior IteratorBehavior, fn func(Particle)) {
	ForEach(a.GetRegionIterator(lo, hi, behavior), fn)
}

func ReduceOverAutoPas[T any](a *AutoPas, behavior IteratorBehavior, init T, fn func(T, Particle) T) T {
	return Reduce(a.Begin(behavior), init, fn)
}

// IteratePairwise runs one iteration's state machine:
// rebuild neighbor lists if dirty, possibly enter or continue a tuning
// phase, run the traversal, and (if sampling) feed the measurement back
// to the strategy. Returns whether this iteration was a tuning (sampling)
// iteration.
func (a *AutoPas) IteratePairwise(functor Functor) (bool, error) {
	traversalForRebuild := a.buildTraversal(a.current, functor)
	if a.active.IsUpdateNeeded() {
		if err := a.active.RebuildNeighborLists(traversalForRebuild); err != nil {
			return false, err
		}
	}

	if !a.inTuningPhase && a.tuningInterval > 0 && a.iteration%a.tuningInterval == 0 {
		a.inTuningPhase = true
		a.samplesThisConfig = 0
		a.phaseLogger = a.Logger.WithPhase(uuid.NewString())
		a.phaseLogger.Infof("tuning phase started at iteration %d", a.iteration)
		a.strategy.Reset(a.iteration)
		a.current = a.strategy.CurrentConfiguration()
		a.active = a.materialize(a.current)
	}

	traversal := a.buildTraversal(a.current, functor)
	var sampleErr error
	start := time.Now()
	if err := a.active.IteratePairwise(traversal, functor); err != nil {
		sampleErr = err
	}
	elapsed := time.Since(start)

	wasTuning := a.inTuningPhase
	if a.inTuningPhase {
		if sampleErr != nil {
			more, err := a.strategy.Tune(true)
			if err != nil {
				return wasTuning, err
			}
			a.advanceTuning(more)
			a.iteration++
			return wasTuning, nil
		}

		a.strategy.AddEvidence(elapsed.Nanoseconds(), a.iteration)
		a.samplesThisConfig++
		if a.samplesThisConfig >= a.numSamples {
			a.samplesThisConfig = 0
			more, err := a.strategy.Tune(false)
			if err != nil {
				return wasTuning, err
			}
			a.advanceTuning(more)
		}
	} else if sampleErr != nil {
		a.iteration++
		return wasTuning, sampleErr
	}

	a.iteration++
	return wasTuning, nil
}

func (a *AutoPas) advanceTuning(more bool) {
	if more {
		a.current = a.strategy.CurrentConfiguration()
		a.active = a.materialize(a.current)
		return
	}
	a.inTuningPhase = false
	a.current = a.strategy.CurrentConfiguration()
	a.active = a.materialize(a.current)
	a.phaseLogger.Infof("tuning phase settled on %s", a.current)
}

// CurrentConfiguration reports the currently selected configuration: the
// one the next IteratePairwise runs, unless that call starts a new tuning
// phase and the strategy's Reset picks another.
func (a *AutoPas) CurrentConfiguration() Configuration { return a.current }
