package autopas

// TuningStrategy explores the Cartesian product of (container,
// cell-size, traversal, layout, Newton-3) at runtime.
type TuningStrategy interface {
	// CurrentConfiguration returns the configuration the façade should
	// run next.
	CurrentConfiguration() Configuration

	// AddEvidence records one (nanos, iteration) sample for the
	// configuration currently being tested.
	AddEvidence(nanos int64, iteration int)

	// Tune advances to the next configuration to test, or decides the
	// phase is over. lastWasInvalid tells the strategy the previous
	// configuration could not actually be run. Returns whether there is more to try this phase; once
	// it returns false, CurrentConfiguration holds the phase's winner.
	Tune(lastWasInvalid bool) (moreToTry bool, err error)

	// RemoveN3Option drops a Newton-3 option from the remaining search
	// space (used when a functor refuses one and the strategy must
	// re-derive its candidate set without it).
	RemoveN3Option(opt Newton3Option)

	// Reset starts a new tuning phase at the given global iteration
	// index.
	Reset(iteration int)
}

// SearchSpace is the filtered Cartesian product a strategy iterates over,
// built once from the façade's allow-lists.
type SearchSpace struct {
	configs []Configuration
}

// NewSearchSpace expands the allow-lists into every compatible
// Configuration, filtering out traversal/container mismatches.
func NewSearchSpace(containers []ContainerOption, cellSizeFactors []float64, traversals []TraversalOption, layouts []DataLayoutOption, newton3Options []Newton3Option) (*SearchSpace, error) {
	var out []Configuration
	for _, c := range containers {
		for _, csf := range cellSizeFactors {
			for _, t := range traversals {
				if !traversalCompatibleWithContainer(c, t) {
					continue
				}
				for _, l := range layouts {
					for _, n3 := range newton3Options {
						out = append(out, Configuration{
							Container:      c,
							CellSizeFactor: csf,
							Traversal:      t,
							DataLayout:     l,
							Newton3:        n3,
						})
					}
				}
			}
		}
	}
	if len(out) == 0 {
		return nil, &ConfigurationError{Reason: "search space is empty after filtering allow-lists"}
	}
	return &SearchSpace{configs: out}, nil
}

func (s *SearchSpace) Configs() []Configuration { return s.configs }

func (s *SearchSpace) Len() int { return len(s.configs) }

func (s *SearchSpace) removeNewton3(opt Newton3Option) {
	filtered := s.configs[:0:0]
	for _, c := range s.configs {
		if c.Newton3 != opt {
			filtered = append(filtered, c)
		}
	}
	s.configs = filtered
}
