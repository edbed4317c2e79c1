package review

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/skim/internal/core/diff"
)

// Fingerprinter computes stable content fingerprints for diff hunks. The
// fingerprint covers only changed lines, so a hunk keeps its identity when
// it moves to a different file, line offset, or surrounding context.
type Fingerprinter struct {
	normalizeWhitespace bool
}

// NewFingerprinter creates a fingerprinter. With normalizeWhitespace set,
// leading/trailing whitespace is trimmed and internal runs collapse to a
// single space before hashing, so reindented hunks keep their fingerprint.
func NewFingerprinter(normalizeWhitespace bool) Fingerprinter {
	return Fingerprinter{normalizeWhitespace: normalizeWhitespace}
}

// Fingerprint returns the lowercase hex SHA-256 digest of the hunk's changed
// lines, joined by newlines in hunk order. A hunk with no changed lines
// hashes to the empty-input digest.
func (f Fingerprinter) Fingerprint(h diff.Hunk) string {
	changed := h.Changed()

	parts := make([]string, 0, len(changed))
	for _, line := range changed {
		parts = append(parts, f.canonicalize(line.Text))
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, "\n")))
	return fmt.Sprintf("%x", sum)
}

func (f Fingerprinter) canonicalize(text string) string {
	text = ansi.Strip(text)
	if f.normalizeWhitespace {
		text = strings.Join(strings.Fields(text), " ")
	}
	return text
}
