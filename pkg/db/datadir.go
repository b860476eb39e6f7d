package db

import (
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/CompGenomeLab/GPCRevolution-sub000/internal/util"
)

// Defining possible error
var ErrDataFileMissing = errors.New("data file does not exist")

// DataDir hosts the flat-file side of the dataset: Newick trees,
// ortholog alignments, and conservation tables, at the paths the
// catalog records point to.
type DataDir struct {
	Dir string
}

func NewDataDir(dir string) (*DataDir, error) {
	required_folders := []string{
		dir,
		path.Join(dir, "trees"),
		path.Join(dir, "alignments"),
		path.Join(dir, "conservation"),
	}

	var errs error

	for _, folder := range required_folders {
		if !util.DirExists(folder) {
			errs = fmt.Errorf("%w: %s", os.ErrNotExist, folder)
		}
	}

	if errs != nil {
		return nil, errs
	}
	return &DataDir{Dir: dir}, nil
}

// ReadText returns the contents of a file given by its catalog-relative
// path.
func (d *DataDir) ReadText(rel string) (string, error) {
	full := path.Join(d.Dir, rel)
	raw, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrDataFileMissing, rel)
		}
		return "", err
	}
	return string(raw), nil
}

// TreeText loads the receptor's Newick tree file.
func (d *DataDir) TreeText(r *Receptor) (string, error) {
	return d.ReadText(r.Tree)
}

// AlignmentText loads the receptor's ortholog alignment FASTA.
func (d *DataDir) AlignmentText(r *Receptor) (string, error) {
	return d.ReadText(r.Alignment)
}

// ConservationText loads the receptor's conservation table.
func (d *DataDir) ConservationText(r *Receptor) (string, error) {
	return d.ReadText(r.ConservationFile)
}

// ClassAlignmentText loads the human-paralog alignment shared by all
// receptors of a class. Cross-receptor residue mapping runs on this
// alignment.
func (d *DataDir) ClassAlignmentText(class string) (string, error) {
	return d.ReadText(path.Join("alignments", "class_"+class+"_humans.fasta"))
}
