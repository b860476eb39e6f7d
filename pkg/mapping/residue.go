package mapping

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/CompGenomeLab/GPCRevolution-sub000/pkg/conservation"
)

// NoValue marks a gap or a missing cross-reference in a mapping row.
const NoValue = "-"

// ReceptorSequence is one aligned receptor in a mapping run. All
// sequences handed to MapResidues must already share one alignment
// length; that is the caller's contract, checked where alignments are
// loaded, not here.
type ReceptorSequence struct {
	Name     string
	Sequence string
}

// Row holds the field values of one retained alignment column, keyed by
// column name ("{receptor}_resNum", "{receptor}_AA", ...). Use Columns
// for the canonical field order.
type Row map[string]string

// Columns returns the output field order: four fields per receptor in
// input order, with the reference's region and GPCRdb label appended
// directly after its own four.
func Columns(receptors []ReceptorSequence, reference string) []string {
	var cols []string
	for _, r := range receptors {
		cols = append(cols,
			r.Name+"_resNum",
			r.Name+"_AA",
			r.Name+"_Conservation",
			r.Name+"_Conserved_AA",
		)
		if r.Name == reference {
			cols = append(cols, r.Name+"_region", r.Name+"_gpcrdb")
		}
	}
	return cols
}

// counters carries the per-receptor count of residues seen so far.
// advance never mutates its input: each column gets a fresh copy, which
// keeps counter advancement visibly independent of row retention.
type counters map[string]int

func advance(prev counters, receptors []ReceptorSequence, col int) counters {
	next := make(counters, len(prev))
	for k, v := range prev {
		next[k] = v
	}
	for _, r := range receptors {
		if r.Sequence[col] != gap {
			next[r.Name]++
		}
	}
	return next
}

// MapResidues builds the cross-receptor residue correspondence table.
// It walks alignment columns left to right, keeping a row only where
// the reference receptor is non-gap (and, when allow is non-nil, only
// where the reference residue number is allowed). Every receptor's
// residue counter advances on its own non-gap columns whether or not
// the row is kept, so the numbering in the output always matches an
// independent numbering of each ungapped sequence.
func MapResidues(receptors []ReceptorSequence, cons map[string]conservation.Table,
	reference string, allow map[int]bool) ([]Row, error) {

	refIdx := -1
	for i, r := range receptors {
		if r.Name == reference {
			refIdx = i
		}
	}
	if refIdx < 0 {
		return nil, fmt.Errorf("mapping: reference receptor %q not among sequences", reference)
	}

	var rows []Row
	counts := counters{}
	ncols := len(receptors[refIdx].Sequence)
	for col := 0; col < ncols; col++ {
		counts = advance(counts, receptors, col)

		if receptors[refIdx].Sequence[col] == gap {
			continue
		}
		refNum := counts[reference]
		if allow != nil && !allow[refNum] {
			continue
		}

		row := make(Row)
		for _, r := range receptors {
			prefix := r.Name
			if r.Sequence[col] == gap {
				row[prefix+"_resNum"] = NoValue
				row[prefix+"_AA"] = NoValue
				row[prefix+"_Conservation"] = NoValue
				row[prefix+"_Conserved_AA"] = NoValue
				if r.Name == reference {
					row[prefix+"_region"] = NoValue
					row[prefix+"_gpcrdb"] = NoValue
				}
				continue
			}
			num := strconv.Itoa(counts[r.Name])
			row[prefix+"_resNum"] = num
			row[prefix+"_AA"] = string(r.Sequence[col])

			rec, ok := cons[r.Name][num]
			if ok {
				row[prefix+"_Conservation"] = strconv.FormatFloat(rec.Conservation, 'f', -1, 64)
				row[prefix+"_Conserved_AA"] = rec.ConservedAA
			} else {
				row[prefix+"_Conservation"] = NoValue
				row[prefix+"_Conserved_AA"] = NoValue
			}
			if r.Name == reference {
				if ok {
					row[prefix+"_region"] = rec.Region
					row[prefix+"_gpcrdb"] = rec.GPCRdb
				} else {
					row[prefix+"_region"] = NoValue
					row[prefix+"_gpcrdb"] = NoValue
				}
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ParseResidueList parses a comma-separated list of positive residue
// numbers into an allowlist for MapResidues. An empty string means no
// restriction (nil allowlist).
func ParseResidueList(s string) (map[int]bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	allow := make(map[int]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("mapping: bad residue number %q", part)
		}
		allow[n] = true
	}
	if len(allow) == 0 {
		return nil, nil
	}
	return allow, nil
}

// WriteTSV writes the mapping table as tab-separated text: one header
// row in canonical column order, then one line per retained column.
func WriteTSV(w io.Writer, receptors []ReceptorSequence, reference string, rows []Row) error {
	cols := Columns(receptors, reference)
	if _, err := fmt.Fprintln(w, strings.Join(cols, "\t")); err != nil {
		return err
	}
	fields := make([]string, len(cols))
	for _, row := range rows {
		for i, c := range cols {
			v, ok := row[c]
			if !ok {
				v = NoValue
			}
			fields[i] = v
		}
		if _, err := fmt.Fprintln(w, strings.Join(fields, "\t")); err != nil {
			return err
		}
	}
	return nil
}
