package qtable

import "math"

// Inspection is a bounded view of a table.
type Inspection struct {
	Entries []Record `json:"entries"`
	Total   int      `json:"total"`
	// Mean absolute change of the shown entries since the previous
	// inspection, over the entries that were shown then as well.
	AverageChange float64 `json:"average_change"`
}

// Inspect returns up to limit entries in stable order and remembers their
// values so the next call can report how much they moved.
func (t *Table) Inspect(limit int) Inspection {
	records := t.Records()
	if limit >= 0 && len(records) > limit {
		records = records[:limit]
	}

	total, count := 0.0, 0
	for _, r := range records {
		e := Entry{State: r.State, Move: r.Move}
		if prev, ok := t.previous[e]; ok {
			total += math.Abs(r.Value - prev)
			count++
		}
		t.previous[e] = r.Value
	}

	avg := 0.0
	if count > 0 {
		avg = total / float64(count)
	}
	return Inspection{Entries: records, Total: t.Len(), AverageChange: avg}
}
