package autopas

// FullSearch enumerates the filtered Cartesian product; after collecting
// numSamples samples per configuration it picks the best by
// SelectorStrategyOption. Ties are broken by enumeration
// order: the first configuration to reach the winning score wins.
type FullSearch struct {
	space      *SearchSpace
	numSamples int
	selector   SelectorStrategyOption

	idx      int
	evidence map[Configuration]*Evidence
	samplesThisConfig int
	phase    int
}

func NewFullSearch(space *SearchSpace, numSamples int, selector SelectorStrategyOption) *FullSearch {
	return &FullSearch{
		space:      space,
		numSamples: numSamples,
		selector:   selector,
		evidence:   make(map[Configuration]*Evidence),
	}
}

func (f *FullSearch) CurrentConfiguration() Configuration {
	return f.space.configs[f.idx]
}

func (f *FullSearch) AddEvidence(nanos int64, iteration int) {
	cfg := f.CurrentConfiguration()
	ev, ok := f.evidence[cfg]
	if !ok {
		ev = &Evidence{}
		f.evidence[cfg] = ev
	}
	ev.Add(iteration, nanos)
	f.samplesThisConfig++
}

func (f *FullSearch) RemoveN3Option(opt Newton3Option) {
	f.space.removeNewton3(opt)
	if f.idx >= len(f.space.configs) {
		f.idx = 0
	}
}

func (f *FullSearch) Reset(iteration int) {
	f.phase++
	f.idx = 0
	f.samplesThisConfig = 0
	f.evidence = make(map[Configuration]*Evidence)
}

func (f *FullSearch) Tune(lastWasInvalid bool) (bool, error) {
	if lastWasInvalid {
		// Drop the invalid config's partial evidence and move on to the
		// next candidate without counting it as sampled.
		delete(f.evidence, f.CurrentConfiguration())
		f.samplesThisConfig = 0
		f.idx++
	} else if f.samplesThisConfig >= f.numSamples {
		f.samplesThisConfig = 0
		f.idx++
	}

	if f.idx < len(f.space.configs) {
		return true, nil
	}

	// Every configuration has been sampled: select the winner and park
	// idx on it so CurrentConfiguration reports the committed choice.
	if len(f.evidence) == 0 {
		return false, &TuningUnderDeterminedError{Phase: f.phase}
	}
	best := f.selectBest()
	for i, c := range f.space.configs {
		if c == best {
			f.idx = i
			break
		}
	}
	return false, nil
}

func (f *FullSearch) selectBest() Configuration {
	var best Configuration
	bestScore := float64(0)
	first := true
	for _, cfg := range f.space.configs {
		ev, ok := f.evidence[cfg]
		if !ok || len(ev.Samples) == 0 {
			continue
		}
		var score float64
		if f.selector == SelectorFastestAbs {
			score = float64(ev.Fastest())
		} else {
			score = ev.Mean()
		}
		if first || score < bestScore {
			best = cfg
			bestScore = score
			first = false
		}
	}
	return best
}
