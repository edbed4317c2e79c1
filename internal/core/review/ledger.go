package review

import (
	"sort"
	"time"

	"github.com/rs/zerolog"
)

// Ledger is the persistent review store: one record per reviewed fingerprint,
// one session per repo/branch review scope, and the membership edges between
// them. All mutation goes through Mark, Unmark, Reset, and ResetSession so
// the two sides stay consistent: a fingerprint is in a session's reviewed set
// exactly when that session is in the record's session set, and the hunk
// counter always equals the number of records.
//
// The ledger persists after every mutation and is not safe for concurrent
// use; skim runs it on a single goroutine.
type Ledger struct {
	path string
	log  zerolog.Logger

	records  map[string]*record
	sessions map[string]*session

	total       int
	lastUpdated time.Time

	activeID     string
	activeRepo   string
	activeBranch string
}

// Open loads the ledger persisted at path. Open never fails: a missing,
// unreadable, corrupt, or version-mismatched file yields an empty ledger,
// with a warning for everything but the missing case.
func Open(path string, log zerolog.Logger) *Ledger {
	l := &Ledger{path: path, log: log}
	l.fromSnapshot(readSnapshot(path, log))
	return l
}

// Path returns the ledger file location.
func (l *Ledger) Path() string {
	return l.path
}

// SelectSession sets the active session for subsequent queries and mutations,
// creating the session entry if this id has never been seen. The entry is
// persisted by the next mutation's save. The id is opaque to the ledger;
// callers conventionally use "<repo>:<branch>".
func (l *Ledger) SelectSession(id, repo, branch string) {
	if id == "" {
		return
	}
	l.activeID = id
	l.activeRepo = repo
	l.activeBranch = branch
	l.ensureActive()
}

// ActiveSession returns the active session, or false when the ledger runs in
// sessionless mode.
func (l *Ledger) ActiveSession() (SessionInfo, bool) {
	if l.activeID == "" {
		return SessionInfo{}, false
	}
	s, ok := l.sessions[l.activeID]
	if !ok {
		return SessionInfo{}, false
	}
	return s.info(), true
}

// ensureActive returns the active session entry, re-creating it when a reset
// removed it while the selection stayed in place. Returns nil in sessionless
// mode.
func (l *Ledger) ensureActive() *session {
	if l.activeID == "" {
		return nil
	}
	s, ok := l.sessions[l.activeID]
	if !ok {
		s = &session{
			id:          l.activeID,
			repoName:    l.activeRepo,
			branchName:  l.activeBranch,
			reviewed:    map[string]struct{}{},
			lastUpdated: time.Now(),
		}
		l.sessions[l.activeID] = s
	}
	return s
}

// IsReviewed reports whether fp counts as reviewed. With an active session
// this is a session-scoped membership check; only in sessionless mode does it
// degrade to a global "any record exists" check.
func (l *Ledger) IsReviewed(fp string) bool {
	if l.activeID != "" {
		s, ok := l.sessions[l.activeID]
		if !ok {
			return false
		}
		_, ok = s.reviewed[fp]
		return ok
	}
	_, ok := l.records[fp]
	return ok
}

// Mark records fp as reviewed and persists. A first-time fingerprint gets a
// fresh record; a known one bumps its review metadata. With an active session
// the membership edge is added on both sides. contextSnippet is an optional
// human hint stored with the record, refreshed on every non-empty mark.
func (l *Ledger) Mark(fp, contextSnippet string) error {
	now := time.Now()

	rec, ok := l.records[fp]
	if !ok {
		rec = &record{
			firstSeenAt: now,
			sessions:    map[string]struct{}{},
		}
		l.records[fp] = rec
		l.total++
	}
	rec.lastReviewedAt = now
	rec.reviewCount++
	if contextSnippet != "" {
		rec.context = contextSnippet
	}

	if s := l.ensureActive(); s != nil {
		rec.sessions[l.activeID] = struct{}{}
		s.reviewed[fp] = struct{}{}
		s.lastUpdated = now
	}

	return l.save()
}

// Unmark removes the active session's review of fp and persists. The record
// itself is deleted only when the last reviewing session lets go of it,
// mirroring ResetSession; other sessions' review state is never disturbed.
// In sessionless mode the record is deleted outright. Unmarking a
// fingerprint the active session never reviewed changes nothing.
func (l *Ledger) Unmark(fp string) error {
	rec, ok := l.records[fp]
	if ok {
		switch {
		case l.activeID == "":
			delete(l.records, fp)
			l.total--
		default:
			if _, member := rec.sessions[l.activeID]; member {
				delete(rec.sessions, l.activeID)
				if s, ok := l.sessions[l.activeID]; ok {
					delete(s.reviewed, fp)
					s.lastUpdated = time.Now()
				}
				if len(rec.sessions) == 0 {
					delete(l.records, fp)
					l.total--
				}
			}
		}
	}
	return l.save()
}

// Reset discards the entire ledger, records and sessions alike, and persists
// the empty snapshot. The active session selection survives and is lazily
// re-created by the next mark.
func (l *Ledger) Reset() error {
	l.fromSnapshot(emptySnapshot())
	return l.save()
}

// ResetSession removes every trace of the active session: each of its
// reviewed fingerprints loses the membership edge, records whose session set
// empties are deleted, and the session entry itself goes away. Records still
// held by other sessions are kept untouched. Returns ErrNoSession in
// sessionless mode without mutating anything.
func (l *Ledger) ResetSession() error {
	if l.activeID == "" {
		return ErrNoSession
	}

	if s, ok := l.sessions[l.activeID]; ok {
		for fp := range s.reviewed {
			rec, ok := l.records[fp]
			if !ok {
				continue
			}
			delete(rec.sessions, l.activeID)
			if len(rec.sessions) == 0 {
				delete(l.records, fp)
				l.total--
			}
		}
		delete(l.sessions, l.activeID)
	}

	return l.save()
}

// Stats summarizes the ledger from its top-level statistics.
func (l *Ledger) Stats() Stats {
	return Stats{
		TotalReviewedHunks: l.total,
		TotalSessions:      len(l.sessions),
		LastUpdated:        l.lastUpdated,
	}
}

// Sessions returns all known sessions sorted by id.
func (l *Ledger) Sessions() []SessionInfo {
	infos := make([]SessionInfo, 0, len(l.sessions))
	for _, id := range sortedKeys(l.sessions) {
		infos = append(infos, l.sessions[id].info())
	}
	return infos
}

// Record returns the review metadata for fp.
func (l *Ledger) Record(fp string) (RecordInfo, bool) {
	rec, ok := l.records[fp]
	if !ok {
		return RecordInfo{}, false
	}
	return RecordInfo{
		Fingerprint:    fp,
		FirstSeenAt:    rec.firstSeenAt,
		LastReviewedAt: rec.lastReviewedAt,
		ReviewCount:    rec.reviewCount,
		Context:        rec.context,
		SessionCount:   len(rec.sessions),
	}, true
}

// save persists the full snapshot. Called synchronously at the end of every
// mutating operation; a failure here propagates so the caller can report the
// review as not durably recorded.
func (l *Ledger) save() error {
	l.lastUpdated = time.Now()
	return writeSnapshot(l.path, l.toSnapshot())
}

func (l *Ledger) toSnapshot() snapshot {
	snap := emptySnapshot()

	for fp, rec := range l.records {
		snap.ReviewedHunks[fp] = recordSnapshot{
			FirstSeenAt:    rec.firstSeenAt,
			LastReviewedAt: rec.lastReviewedAt,
			ReviewCount:    rec.reviewCount,
			Context:        rec.context,
			Sessions:       sortedKeys(rec.sessions),
		}
	}

	for id, s := range l.sessions {
		snap.Sessions[id] = sessionSnapshot{
			SessionID:      id,
			RepoName:       s.repoName,
			BranchName:     s.branchName,
			ReviewedHashes: sortedKeys(s.reviewed),
			LastUpdated:    s.lastUpdated,
		}
	}

	snap.Statistics = statisticsSnapshot{
		TotalReviewedHunks: l.total,
		LastUpdated:        l.lastUpdated,
	}

	return snap
}

func (l *Ledger) fromSnapshot(snap snapshot) {
	l.records = make(map[string]*record, len(snap.ReviewedHunks))
	for fp, rs := range snap.ReviewedHunks {
		rec := &record{
			firstSeenAt:    rs.FirstSeenAt,
			lastReviewedAt: rs.LastReviewedAt,
			reviewCount:    rs.ReviewCount,
			context:        rs.Context,
			sessions:       make(map[string]struct{}, len(rs.Sessions)),
		}
		for _, id := range rs.Sessions {
			rec.sessions[id] = struct{}{}
		}
		l.records[fp] = rec
	}

	l.sessions = make(map[string]*session, len(snap.Sessions))
	for id, ss := range snap.Sessions {
		s := &session{
			id:          id,
			repoName:    ss.RepoName,
			branchName:  ss.BranchName,
			reviewed:    make(map[string]struct{}, len(ss.ReviewedHashes)),
			lastUpdated: ss.LastUpdated,
		}
		for _, fp := range ss.ReviewedHashes {
			s.reviewed[fp] = struct{}{}
		}
		l.sessions[id] = s
	}

	// Drop membership edges present on only one side so the cross-reference
	// invariant holds even for files not written by this code.
	for fp, rec := range l.records {
		for id := range rec.sessions {
			if s, ok := l.sessions[id]; !ok {
				delete(rec.sessions, id)
			} else if _, ok := s.reviewed[fp]; !ok {
				delete(rec.sessions, id)
			}
		}
	}
	for _, s := range l.sessions {
		for fp := range s.reviewed {
			rec, ok := l.records[fp]
			if !ok {
				delete(s.reviewed, fp)
				continue
			}
			if _, ok := rec.sessions[s.id]; !ok {
				delete(s.reviewed, fp)
			}
		}
	}

	l.total = len(l.records)
	l.lastUpdated = snap.Statistics.LastUpdated
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
