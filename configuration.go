package autopas

import "fmt"

type ContainerOption int

const (
	ContainerDirectSum ContainerOption = iota
	ContainerLinkedCells
	ContainerLinkedCellsReferences
	ContainerVerletLists
	ContainerVerletClusterLists
)

func (c ContainerOption) String() string {
	switch c {
	case ContainerDirectSum:
		return "DirectSum"
	case ContainerLinkedCells:
		return "LinkedCells"
	case ContainerLinkedCellsReferences:
		return "LinkedCellsReferences"
	case ContainerVerletLists:
		return "VerletLists"
	case ContainerVerletClusterLists:
		return "VerletClusterLists"
	default:
		return "Unknown"
	}
}

type TraversalOption int

const (
	TraversalDirectSum TraversalOption = iota
	TraversalC08
	TraversalSliced
	TraversalBalancedSliced
	TraversalC18
	TraversalVerletList
	TraversalVerletCluster
)

func (t TraversalOption) String() string {
	switch t {
	case TraversalDirectSum:
		return "DirectSum"
	case TraversalC08:
		return "c08"
	case TraversalSliced:
		return "sliced"
	case TraversalBalancedSliced:
		return "balancedSliced"
	case TraversalC18:
		return "c18"
	case TraversalVerletList:
		return "verletList"
	case TraversalVerletCluster:
		return "verletCluster"
	default:
		return "Unknown"
	}
}

type DataLayoutOption int

const (
	AoS DataLayoutOption = iota
	SoA
)

func (d DataLayoutOption) String() string {
	if d == SoA {
		return "SoA"
	}
	return "AoS"
}

type Newton3Option int

const (
	Newton3On Newton3Option = iota
	Newton3Off
)

func (n Newton3Option) String() string {
	if n == Newton3On {
		return "enabled"
	}
	return "disabled"
}

// SelectorStrategyOption picks how ties are broken among configurations
// with equal (or equally good) measured performance.
type SelectorStrategyOption int

const (
	// SelectorFastestMean picks the configuration with the lowest mean
	// sample time.
	SelectorFastestMean SelectorStrategyOption = iota
	// SelectorFastestAbs picks the configuration with the lowest single
	// fastest sample.
	SelectorFastestAbs
)

// Configuration is an immutable 5-tuple selecting one point in the tuning
// search space. Two configurations compare equal by value.
type Configuration struct {
	Container      ContainerOption
	CellSizeFactor float64
	Traversal      TraversalOption
	DataLayout     DataLayoutOption
	Newton3        Newton3Option
}

func (c Configuration) String() string {
	return fmt.Sprintf("{%s cellSize=%g %s %s newton3=%s}",
		c.Container, c.CellSizeFactor, c.Traversal, c.DataLayout, c.Newton3)
}

// compatibleTraversals lists, per container, the traversal kinds that
// apply to it. isApplicable on the traversal itself
// additionally checks layout/Newton-3/geometry; this table only encodes
// the static container<->traversal pairing.
var compatibleTraversals = map[ContainerOption][]TraversalOption{
	ContainerDirectSum:             {TraversalDirectSum},
	ContainerLinkedCells:           {TraversalC08, TraversalSliced, TraversalBalancedSliced, TraversalC18},
	ContainerLinkedCellsReferences: {TraversalC08, TraversalSliced, TraversalBalancedSliced, TraversalC18},
	ContainerVerletLists:           {TraversalVerletList},
	ContainerVerletClusterLists:    {TraversalVerletCluster},
}

func traversalCompatibleWithContainer(container ContainerOption, traversal TraversalOption) bool {
	for _, t := range compatibleTraversals[container] {
		if t == traversal {
			return true
		}
	}
	return false
}
