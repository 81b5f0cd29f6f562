package grid

const DefaultExampleLimit = 5

// Snapshot is an immutable copy of the grid at one instant.
type Snapshot struct {
	Label   string
	Targets []string
	Fields  []string
	Cells   map[Key]Cell
}

func (s Snapshot) Cell(target, field string) (Cell, bool) {
	c, ok := s.Cells[Key{Target: target, Field: field}]
	return c, ok
}

// Eligible lists the Empty and Failed cells in row-major grid order.
func (s Snapshot) Eligible() []Key {
	var keys []Key
	for _, target := range s.Targets {
		for _, field := range s.Fields {
			key := Key{Target: target, Field: field}
			if c, ok := s.Cells[key]; ok && c.IsEligible() {
				keys = append(keys, key)
			}
		}
	}
	return keys
}

// Examples returns up to limit resolved values of field from rows other than
// exclude, in row order. The result is never nil.
func (s Snapshot) Examples(field, exclude string, limit int) []string {
	if limit <= 0 {
		limit = DefaultExampleLimit
	}
	examples := make([]string, 0, limit)
	for _, target := range s.Targets {
		if len(examples) >= limit {
			break
		}
		if target == exclude {
			continue
		}
		c, ok := s.Cells[Key{Target: target, Field: field}]
		if !ok || !c.IsResolved() {
			continue
		}
		examples = append(examples, c.Value)
	}
	return examples
}

// Counts tallies cells per status.
func (s Snapshot) Counts() map[CellStatus]int {
	counts := make(map[CellStatus]int, 4)
	for _, c := range s.Cells {
		counts[c.Status]++
	}
	return counts
}
