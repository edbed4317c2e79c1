package review

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/skim/pkg/randid"
)

// SnapshotVersion tags the ledger file schema. A snapshot carrying any other
// version is discarded on load rather than reinterpreted.
const SnapshotVersion = "1"

// ErrSnapshotVersion reports a ledger file written under an unknown schema
// version. Loads never fail on it, but the warning carries it so log
// consumers can tell version drift from plain corruption.
var ErrSnapshotVersion = errors.New("unknown ledger snapshot version")

// snapshot is the on-disk form of the ledger. Set-valued fields serialize as
// sorted arrays so repeated saves of the same state produce identical bytes.
type snapshot struct {
	Version       string                     `json:"version"`
	ReviewedHunks map[string]recordSnapshot  `json:"reviewedHunks"`
	Sessions      map[string]sessionSnapshot `json:"sessions"`
	Statistics    statisticsSnapshot         `json:"statistics"`
}

type recordSnapshot struct {
	FirstSeenAt    time.Time `json:"firstSeenAt"`
	LastReviewedAt time.Time `json:"lastReviewedAt"`
	ReviewCount    int       `json:"reviewCount"`
	Context        string    `json:"context,omitempty"`
	Sessions       []string  `json:"sessions"`
}

type sessionSnapshot struct {
	SessionID      string    `json:"sessionId"`
	RepoName       string    `json:"repoName"`
	BranchName     string    `json:"branchName"`
	ReviewedHashes []string  `json:"reviewedHashes"`
	LastUpdated    time.Time `json:"lastUpdated"`
}

type statisticsSnapshot struct {
	TotalReviewedHunks int       `json:"totalReviewedHunks"`
	LastUpdated        time.Time `json:"lastUpdated"`
}

func emptySnapshot() snapshot {
	return snapshot{
		Version:       SnapshotVersion,
		ReviewedHunks: map[string]recordSnapshot{},
		Sessions:      map[string]sessionSnapshot{},
	}
}

// readSnapshot loads the snapshot at path. Every failure mode on the read
// side degrades to an empty snapshot: a missing file is a fresh start, and an
// unreadable, malformed, or version-mismatched file is reported as a warning
// and discarded. Losing review history is acceptable; refusing to start over
// a bad ledger file is not.
func readSnapshot(path string, log zerolog.Logger) snapshot {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Str("path", path).Msg("ledger unreadable, starting empty")
		}
		return emptySnapshot()
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("ledger corrupt, starting empty")
		return emptySnapshot()
	}

	if snap.Version != SnapshotVersion {
		log.Warn().
			Err(ErrSnapshotVersion).
			Str("path", path).
			Str("version", snap.Version).
			Str("want", SnapshotVersion).
			Msg("ledger version not recognized, starting empty")
		return emptySnapshot()
	}

	// Legacy snapshots may omit whole substructures.
	if snap.ReviewedHunks == nil {
		snap.ReviewedHunks = map[string]recordSnapshot{}
	}
	if snap.Sessions == nil {
		snap.Sessions = map[string]sessionSnapshot{}
	}

	return snap
}

// writeSnapshot persists snap to path with write-then-publish discipline:
// marshal, write a uniquely named temp file next to the target, rename it
// over the target. A reader never observes a partial write, and two skim
// processes never trip over each other's temp file (the last rename wins).
// Unlike reads, a write failure propagates to the caller so a review is
// never silently dropped.
func writeSnapshot(path string, snap snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create ledger dir: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}

	tmp := path + "." + randid.Generate(6) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("publish ledger: %w", err)
	}

	return nil
}
