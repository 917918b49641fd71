package usecase

// tallyEntry accumulates the per-label figures shared by every
// categorical breakdown.
type tallyEntry struct {
	count int
	wins  int
	pnl   float64
}

// orderedTally is a label accumulator that remembers first-seen order so
// that breakdowns and top-label selection stay deterministic across runs.
type orderedTally struct {
	order   []string
	entries map[string]*tallyEntry
}

func newOrderedTally() *orderedTally {
	return &orderedTally{entries: make(map[string]*tallyEntry)}
}

func (t *orderedTally) add(label string, pnl float64, win bool) {
	entry, ok := t.entries[label]
	if !ok {
		entry = &tallyEntry{}
		t.entries[label] = entry
		t.order = append(t.order, label)
	}
	entry.count++
	entry.pnl += pnl
	if win {
		entry.wins++
	}
}

func (t *orderedTally) labels() []string {
	return t.order
}

func (t *orderedTally) get(label string) tallyEntry {
	if entry, ok := t.entries[label]; ok {
		return *entry
	}
	return tallyEntry{}
}

// top returns the first-seen label holding the highest count, or "" when
// the tally is empty.
func (t *orderedTally) top() string {
	best := ""
	bestCount := 0
	for _, label := range t.order {
		if entry := t.entries[label]; entry.count > bestCount {
			best = label
			bestCount = entry.count
		}
	}
	return best
}
