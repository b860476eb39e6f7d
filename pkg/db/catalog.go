// Catalog of receptor metadata, backed by sqlite.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var ErrReceptorNotFound = errors.New("receptor not found in catalog")

// Receptor is one catalog record: identity, classification, and the
// data files that belong to it relative to the data directory.
type Receptor struct {
	GeneName         string `json:"geneName"`
	Class            string `json:"class"`
	NumOrthologs     int    `json:"numOrthologs"`
	LCA              string `json:"lca"`
	GPCRdbID         string `json:"gpcrdbId"`
	Name             string `json:"name"`
	Tree             string `json:"tree"`
	Alignment        string `json:"alignment"`
	ConservationFile string `json:"conservationFile"`
	SnakePlot        string `json:"snakePlot"`
	SVGTree          string `json:"svgTree"`
}

// Catalog wraps the receptor metadata database.
type Catalog struct {
	db *sql.DB
}

func NewCatalog(db *sql.DB) *Catalog {
	return &Catalog{db: db}
}

const receptorColumns = `gene_name, class, num_orthologs, lca, gpcrdb_id, name,
	tree_path, alignment_path, conservation_path, snake_plot_path, svg_tree_path`

func scanReceptor(scan func(dest ...any) error) (*Receptor, error) {
	var r Receptor
	err := scan(&r.GeneName, &r.Class, &r.NumOrthologs, &r.LCA, &r.GPCRdbID, &r.Name,
		&r.Tree, &r.Alignment, &r.ConservationFile, &r.SnakePlot, &r.SVGTree)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ByGene looks a receptor up by its gene name.
func (c *Catalog) ByGene(gene string) (*Receptor, error) {

	ctx := context.TODO()

	qstring := `select ` + receptorColumns + ` from receptors where gene_name == ?;`

	stm, err := c.db.PrepareContext(ctx, qstring)
	if err != nil {
		return nil, err
	}
	defer stm.Close()

	r, err := scanReceptor(stm.QueryRowContext(ctx, gene).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrReceptorNotFound, gene)
	}
	return r, err
}

// ByClass lists all receptors of one GPCR class, ordered by gene name.
func (c *Catalog) ByClass(class string) ([]*Receptor, error) {

	ctx := context.TODO()

	qstring := `select ` + receptorColumns + ` from receptors where class == ? order by gene_name;`

	stm, err := c.db.PrepareContext(ctx, qstring)
	if err != nil {
		return nil, err
	}
	defer stm.Close()

	rows, err := stm.QueryContext(ctx, class)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*Receptor
	for rows.Next() {
		r, err := scanReceptor(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// Search finds receptors whose gene name or full name contains term.
func (c *Catalog) Search(term string, limit int) ([]*Receptor, error) {

	ctx := context.TODO()

	qstring := `select ` + receptorColumns + ` from receptors
		where gene_name like ? or name like ? order by gene_name limit ?;`

	stm, err := c.db.PrepareContext(ctx, qstring)
	if err != nil {
		return nil, err
	}
	defer stm.Close()

	pattern := "%" + term + "%"
	rows, err := stm.QueryContext(ctx, pattern, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*Receptor
	for rows.Next() {
		r, err := scanReceptor(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
