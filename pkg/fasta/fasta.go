// Package fasta reads and writes FASTA-formatted sequence text.
package fasta

import (
	"fmt"
	"io"
	"strings"
)

// Sequence is one FASTA record. For alignment members the sequence is
// uppercase amino-acid letters with '-' for gaps.
type Sequence struct {
	Header   string `json:"header"`
	Sequence string `json:"sequence"`
}

// Parse splits FASTA text into records. A line starting with '>' opens a
// record; following non-header lines are concatenated into its sequence.
// Blank lines are skipped and \r\n endings are tolerated. A trailing
// header with no body still yields a record with an empty sequence.
func Parse(text string) []Sequence {
	var (
		seqs    []Sequence
		header  string
		body    strings.Builder
		started bool
	)
	flush := func() {
		if started {
			seqs = append(seqs, Sequence{Header: header, Sequence: body.String()})
			body.Reset()
		}
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			flush()
			header = strings.TrimSpace(line[1:])
			started = true
			continue
		}
		if started {
			body.WriteString(line)
		}
	}
	flush()
	return seqs
}

// Write emits records as ">header\nsequence\n".
func Write(w io.Writer, seqs []Sequence) error {
	for _, s := range seqs {
		if _, err := fmt.Fprintf(w, ">%s\n%s\n", s.Header, s.Sequence); err != nil {
			return err
		}
	}
	return nil
}

// Format returns the serialized FASTA text for a record set.
func Format(seqs []Sequence) string {
	var b strings.Builder
	_ = Write(&b, seqs) // strings.Builder never fails
	return b.String()
}

// Alignment is a set of sequences sharing one column count.
type Alignment struct {
	Seqs    []Sequence
	Columns int
}

// NewAlignment validates that all members have the same length. FASTA
// files are only trusted to be aligned after this check.
func NewAlignment(seqs []Sequence) (*Alignment, error) {
	if len(seqs) == 0 {
		return nil, fmt.Errorf("fasta: empty alignment")
	}
	cols := len(seqs[0].Sequence)
	for _, s := range seqs {
		if len(s.Sequence) != cols {
			return nil, fmt.Errorf("fasta: sequence %q has length %d, expected %d",
				s.Header, len(s.Sequence), cols)
		}
	}
	return &Alignment{Seqs: seqs, Columns: cols}, nil
}

// Column returns the characters of one alignment column, one per
// sequence, in member order.
func (a *Alignment) Column(col int) string {
	var b strings.Builder
	b.Grow(len(a.Seqs))
	for _, s := range a.Seqs {
		b.WriteByte(s.Sequence[col])
	}
	return b.String()
}

// FindByHeader returns the first record whose header contains name,
// case-insensitively. Receptor alignments name their human member by
// gene symbol somewhere in the header.
func (a *Alignment) FindByHeader(name string) (Sequence, bool) {
	lower := strings.ToLower(name)
	for _, s := range a.Seqs {
		if strings.Contains(strings.ToLower(s.Header), lower) {
			return s, true
		}
	}
	return Sequence{}, false
}
