// Package review implements skim's persistent review ledger: content-addressed
// fingerprints of diff hunks, the sessions that reviewed them, and the
// projection of review state onto parsed diffs.
package review

import (
	"errors"
	"strings"
	"time"

	"github.com/colonyops/skim/internal/core/diff"
)

// ErrNoSession is returned by session-scoped operations when no session is active.
var ErrNoSession = errors.New("no session detected")

// record tracks review state for a single hunk fingerprint. Records are
// reachable only through Ledger operations so the record/session membership
// sets always stay in sync.
type record struct {
	firstSeenAt    time.Time
	lastReviewedAt time.Time
	reviewCount    int
	context        string
	sessions       map[string]struct{}
}

// session groups the fingerprints reviewed within one repo/branch context.
type session struct {
	id          string
	repoName    string
	branchName  string
	reviewed    map[string]struct{}
	lastUpdated time.Time
}

func (s *session) info() SessionInfo {
	return SessionInfo{
		ID:            s.id,
		RepoName:      s.repoName,
		BranchName:    s.branchName,
		ReviewedCount: len(s.reviewed),
		LastUpdated:   s.lastUpdated,
	}
}

// Stats summarizes ledger contents.
type Stats struct {
	TotalReviewedHunks int       `json:"totalReviewedHunks"`
	TotalSessions      int       `json:"totalSessions"`
	LastUpdated        time.Time `json:"lastUpdated"`
}

// SessionInfo is a read-only summary of a session.
type SessionInfo struct {
	ID            string    `json:"sessionId"`
	RepoName      string    `json:"repoName"`
	BranchName    string    `json:"branchName"`
	ReviewedCount int       `json:"reviewedCount"`
	LastUpdated   time.Time `json:"lastUpdated"`
}

// RecordInfo is a read-only summary of a fingerprint record.
type RecordInfo struct {
	Fingerprint    string    `json:"fingerprint"`
	FirstSeenAt    time.Time `json:"firstSeenAt"`
	LastReviewedAt time.Time `json:"lastReviewedAt"`
	ReviewCount    int       `json:"reviewCount"`
	Context        string    `json:"context,omitempty"`
	SessionCount   int       `json:"sessionCount"`
}

// snippetLimit caps stored context snippets.
const snippetLimit = 120

// ContextSnippet returns a short human hint for a hunk: its first non-blank
// changed line, truncated.
func ContextSnippet(h diff.Hunk) string {
	for _, line := range h.Changed() {
		text := strings.TrimSpace(line.Text)
		if text == "" {
			continue
		}
		if runes := []rune(text); len(runes) > snippetLimit {
			text = string(runes[:snippetLimit])
		}
		return text
	}
	return ""
}
