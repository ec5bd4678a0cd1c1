package stats

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/TakatsuMeow/voxuno/game/service"
)

// Ledger records wins per session and ranks them. Entries for one session
// keep first-win order, which makes the ranking stable for tied counts.
type Ledger struct {
	path string
	wins map[string][]service.WinnerEntry
	mu   sync.Mutex
}

// NewLedger creates a win ledger backed by the JSON file at path. An empty
// path keeps the ledger in memory only. A missing file is a fresh ledger;
// an unreadable one is reported and replaced rather than blocking startup.
func NewLedger(path string) (*Ledger, error) {
	l := &Ledger{
		path: path,
		wins: make(map[string][]service.WinnerEntry),
	}

	if path == "" {
		return l, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create stats directory: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return nil, fmt.Errorf("failed to read stats file: %w", err)
	}

	if err := json.Unmarshal(data, &l.wins); err != nil {
		log.Printf("[STATS] Warning: stats file %s unreadable, starting a fresh ledger: %v", path, err)
		l.wins = make(map[string][]service.WinnerEntry)
	}

	return l, nil
}

// RecordWin increments the player's win count for the session, creating
// the entry on first win, and writes the ledger through to disk.
func (l *Ledger) RecordWin(sessionID, player string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := l.wins[sessionID]
	found := false
	for i := range entries {
		if entries[i].Player == player {
			entries[i].Wins++
			found = true
			break
		}
	}
	if !found {
		entries = append(entries, service.WinnerEntry{Player: player, Wins: 1})
	}
	l.wins[sessionID] = entries

	return l.saveLocked()
}

// TopN returns the session's top n winners by win count descending. A
// non-positive n returns the full ranking. Unknown sessions rank empty.
func (l *Ledger) TopN(sessionID string, n int) []service.WinnerEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := l.wins[sessionID]
	ranked := make([]service.WinnerEntry, len(entries))
	copy(ranked, entries)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Wins > ranked[j].Wins
	})

	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// Sessions returns the IDs of all sessions with recorded wins.
func (l *Ledger) Sessions() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	ids := make([]string, 0, len(l.wins))
	for id := range l.wins {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (l *Ledger) saveLocked() error {
	if l.path == "" {
		return nil
	}

	data, err := json.MarshalIndent(l.wins, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	if err := os.WriteFile(l.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write stats file: %w", err)
	}
	return nil
}
