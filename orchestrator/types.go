package orchestrator

import (
	"math"
	"strconv"

	"github.com/dzenilee/presidential/features"
	"github.com/dzenilee/presidential/transcripts"
)

// Table is the featurized form of a segment list. Records[i] belongs to
// Segments[i].
type Table struct {
	Segments []transcripts.Segment
	Records  []features.Record
	// Unparsed lists the rows the annotator could not parse; their
	// parse-dependent columns are empty.
	Unparsed []int
}

func (t *Table) Len() int { return len(t.Records) }

// Cells renders every record as CSV cells in features.Columns order.
func (t *Table) Cells() [][]string {
	out := make([][]string, len(t.Records))
	for i, r := range t.Records {
		vals := r.Values()
		row := make([]string, len(vals))
		for j, v := range vals {
			row[j] = formatValue(v)
		}
		out[i] = row
	}
	return out
}

// formatValue writes NaN as an empty cell, the way pandas writes nulls.
func formatValue(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
