package request

// Request structures passed from handlers into the model layer.

// TreeRequest asks for a laid-out phylogenetic tree of one receptor.
type TreeRequest struct {
	Gene       string   `json:"gene"`
	Width      float64  `json:"width"`       // pixel width for the deepest branch
	RowSpacing float64  `json:"row_spacing"` // vertical pixels between leaf rows
	Collapsed  []string `json:"collapsed"`   // node id paths to collapse
}

// MappingRequest asks for the cross-receptor residue mapping table.
type MappingRequest struct {
	Genes     []string `json:"genes"`
	Reference string   `json:"reference"` // defaults to the first gene
	Residues  string   `json:"residues"`  // comma-separated allowlist, empty = all
}

// LogoRequest asks for per-column sequence-logo statistics over one
// receptor's ortholog alignment.
type LogoRequest struct {
	Gene          string `json:"gene"`
	GapsAreSymbol bool   `json:"gaps_are_symbol"` // model gaps as a 21st alphabet symbol
	HumanFrame    bool   `json:"human_frame"`     // trim columns to the human sequence first
}

// AlignmentRequest asks for a receptor's ortholog alignment as FASTA.
type AlignmentRequest struct {
	Gene        string `json:"gene"`
	TrimToHuman bool   `json:"trim_to_human"`
}

// CombinedBarsRequest asks for cross-alignment conservation over a set
// of receptors, in the reference receptor's residue frame.
type CombinedBarsRequest struct {
	Genes     []string `json:"genes"`
	Reference string   `json:"reference"`
}
