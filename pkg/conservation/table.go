// Package conservation holds per-residue conservation tables and the
// per-column statistics used for sequence logos and conservation bars.
package conservation

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is one row of a receptor conservation table, keyed by the
// 1-based residue number of the human sequence.
type Record struct {
	Conservation float64 `json:"conservation"` // percent, 0-100
	ConservedAA  string  `json:"conservedAA"`
	AA           string  `json:"aa"` // human residue at this position
	Region       string  `json:"region"`
	GPCRdb       string  `json:"gpcrdb"` // GPCRdb structural numbering label
}

// Table maps residue-number strings to their records.
type Table map[string]Record

// ParseTable reads a tab-separated conservation file. A header line
// whose first field starts with "residue_number" (any case) is skipped.
// Expected columns: residue_number, conservation, conserved_AA,
// human_AA, region, gpcrdb_number.
func ParseTable(text string) (Table, error) {
	table := make(Table)
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if strings.HasPrefix(strings.ToLower(fields[0]), "residue_number") {
			continue
		}
		if len(fields) < 6 {
			return nil, fmt.Errorf("conservation: line %d has %d fields, expected 6", i+1, len(fields))
		}
		pct, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("conservation: line %d: bad conservation value %q", i+1, fields[1])
		}
		table[strings.TrimSpace(fields[0])] = Record{
			Conservation: pct,
			ConservedAA:  strings.TrimSpace(fields[2]),
			AA:           strings.TrimSpace(fields[3]),
			Region:       strings.TrimSpace(fields[4]),
			GPCRdb:       strings.TrimSpace(fields[5]),
		}
	}
	return table, nil
}
