package session

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultSession is the session name used when none is given.
const DefaultSession = "default"

// MaxStoredContent is the maximum number of characters of assistant content
// kept in a session log; longer answers are truncated at rest only.
const MaxStoredContent = 10000

// maxRecordSize bounds a single history record on read. Assistant content is
// capped at MaxStoredContent characters, so 1 MiB leaves ample headroom.
const maxRecordSize = 1 << 20

// Role identifies the author of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one recorded message in a session log.
type Turn struct {
	ID        string    `json:"id,omitempty"`
	Timestamp time.Time `json:"ts"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
}

// ErrInvalidSession is returned when a session name cannot be mapped to a
// log file without reinterpreting it as a different path.
var ErrInvalidSession = errors.New("invalid session name")

// Session names map directly to file names, so anything that could escape
// the sessions directory (separators, leading dots) is rejected outright.
var sessionNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Store persists conversation history as one append-only JSONL file per
// session. The file is the sole source of truth for a session: nothing is
// cached in memory between invocations.
type Store struct {
	dir string
	log zerolog.Logger
}

// NewStore creates a store rooted at dir. The directory is created lazily on
// first append.
func NewStore(dir string, log zerolog.Logger) *Store {
	return &Store{dir: dir, log: log}
}

// Path maps a session name to its log file. A blank name falls back to
// DefaultSession; names that fail validation return ErrInvalidSession.
func (s *Store) Path(sessionID string) (string, error) {
	name := strings.TrimSpace(sessionID)
	if name == "" {
		name = DefaultSession
	}
	if !sessionNamePattern.MatchString(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSession, sessionID)
	}
	return filepath.Join(s.dir, name+".jsonl"), nil
}

// Append writes one turn to the session log as a single self-delimited
// record and flushes it durably. Callers may treat a failure as non-fatal;
// it is still reported so lost history is observable.
func (s *Store) Append(sessionID string, role Role, content string) error {
	path, err := s.Path(sessionID)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create sessions directory: %w", err)
	}

	turn := Turn{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Role:      role,
		Content:   content,
	}
	record, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("failed to marshal turn: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open session log %s: %w", path, err)
	}
	defer f.Close()

	// One write per record keeps appends atomic under concurrent runs.
	if _, err := f.Write(append(record, '\n')); err != nil {
		return fmt.Errorf("failed to append to session log %s: %w", path, err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("failed to sync session log %s: %w", path, err)
	}
	return nil
}

// LoadRecent returns up to n turns from the end of the session log, oldest
// first. A missing or unreadable log yields an empty history; malformed
// records are skipped individually so one corrupt line cannot erase the
// rest of the window.
func (s *Store) LoadRecent(sessionID string, n int) []Turn {
	path, err := s.Path(sessionID)
	if err != nil {
		s.log.Warn().Err(err).Msg("history unavailable")
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("path", path).Msg("failed to open session log")
		}
		return nil
	}
	defer f.Close()

	var turns []Turn
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordSize)
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		var t Turn
		if err := json.Unmarshal([]byte(raw), &t); err != nil {
			s.log.Warn().Err(err).Str("path", path).Int("line", line).
				Msg("skipping malformed history record")
			continue
		}
		turns = append(turns, t)
	}
	if err := scanner.Err(); err != nil {
		// Keep whatever parsed before the read failed.
		s.log.Warn().Err(err).Str("path", path).Msg("session log read aborted")
	}

	if n > 0 && len(turns) > n {
		turns = turns[len(turns)-n:]
	}
	return turns
}

// Clear deletes the session log. A log that never existed is not an error.
func (s *Store) Clear(sessionID string) error {
	path, err := s.Path(sessionID)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session log %s: %w", path, err)
	}
	return nil
}

// TruncateContent caps content at MaxStoredContent characters for storage.
func TruncateContent(content string) string {
	runes := []rune(content)
	if len(runes) <= MaxStoredContent {
		return content
	}
	return string(runes[:MaxStoredContent])
}
