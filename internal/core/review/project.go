package review

import (
	"github.com/rs/zerolog"

	"github.com/colonyops/skim/internal/core/diff"
	"github.com/colonyops/skim/internal/core/logging"
)

// HunkView is a hunk annotated with its fingerprint and review status.
type HunkView struct {
	diff.Hunk
	Fingerprint string
	Reviewed    bool
}

// FileView is a changed file whose Hunks carry review annotations. The
// embedded File keeps the raw parse (paths, flags, full hunk list for
// whole-file stats); consumers navigate the annotated Hunks.
type FileView struct {
	diff.File
	Hunks []HunkView
}

// ReviewedCount returns how many of the file's annotated hunks are reviewed.
func (f FileView) ReviewedCount() int {
	n := 0
	for _, h := range f.Hunks {
		if h.Reviewed {
			n++
		}
	}
	return n
}

// View is a diff joined against the ledger: every hunk annotated with its
// review status, plus aggregate counts for progress reporting.
type View struct {
	Files           []FileView
	TotalHunks      int
	ReviewedHunks   int
	UnreviewedHunks int
}

// Projector annotates parsed diffs with review state. It reads the ledger
// but never writes it.
type Projector struct {
	fingerprinter Fingerprinter
	ledger        *Ledger
	log           zerolog.Logger
}

// NewProjector creates a projector over the given ledger.
func NewProjector(f Fingerprinter, l *Ledger) Projector {
	return Projector{
		fingerprinter: f,
		ledger:        l,
		log:           logging.Component("review"),
	}
}

// Project fingerprints every hunk and joins it against the ledger. The input
// files are not modified.
func (p Projector) Project(files []diff.File) View {
	view := View{Files: make([]FileView, 0, len(files))}

	for _, f := range files {
		fv := FileView{File: f, Hunks: make([]HunkView, 0, len(f.Hunks))}
		for _, h := range f.Hunks {
			if len(h.Changed()) == 0 {
				// Pure-context hunk: fingerprints as the empty-input digest.
				// Well defined, but unexpected from real diff output.
				p.log.Debug().
					Str("file", f.Path()).
					Str("hunk", h.Header()).
					Msg("hunk has no changed lines")
			}

			fp := p.fingerprinter.Fingerprint(h)
			reviewed := p.ledger.IsReviewed(fp)

			fv.Hunks = append(fv.Hunks, HunkView{Hunk: h, Fingerprint: fp, Reviewed: reviewed})
			view.TotalHunks++
			if reviewed {
				view.ReviewedHunks++
			}
		}
		view.Files = append(view.Files, fv)
	}

	view.UnreviewedHunks = view.TotalHunks - view.ReviewedHunks
	return view
}

// FilterUnreviewed returns a new view keeping, per file, only the hunks not
// yet reviewed; files left with no hunks are dropped. The input view is not
// modified, so callers can keep its counts for "N of M reviewed" reporting
// while displaying the filtered files. Counts are recomputed over the kept
// hunks, which makes the filter idempotent.
func FilterUnreviewed(view View) View {
	out := View{Files: make([]FileView, 0, len(view.Files))}

	for _, fv := range view.Files {
		kept := make([]HunkView, 0, len(fv.Hunks))
		for _, hv := range fv.Hunks {
			if !hv.Reviewed {
				kept = append(kept, hv)
			}
		}
		if len(kept) == 0 {
			continue
		}
		out.Files = append(out.Files, FileView{File: fv.File, Hunks: kept})
		out.TotalHunks += len(kept)
	}

	out.UnreviewedHunks = out.TotalHunks
	return out
}
