package data

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	// MaxEntries caps the in-memory history: 20 entries = 10 exchanges,
	// oldest evicted first.
	MaxEntries = 20
	// DisplayClip is how much of a stored answer FormatHistory shows. This
	// stays 200 regardless of the record-time budget, so dual-mode answers
	// recorded at 300 chars still display clipped to 200.
	DisplayClip = 200
)

// Session holds one process run's conversation history and the configured
// model identifiers. It is mutated only by the interactive loop, one question
// at a time.
type Session struct {
	history    []string
	models     []string
	truncateAt int
}

// NewSession creates a session. truncateAt is the per-variant character
// budget answers are cut to before storage (300 dual, 200 single); 0 stores
// answers whole.
func NewSession(models []string, truncateAt int) *Session {
	return &Session{
		history:    []string{},
		models:     models,
		truncateAt: truncateAt,
	}
}

// Record appends a timestamped question/answer pair and enforces the
// keep-last-N eviction policy. The answer is truncated to the configured
// budget; losing the tail is deliberate context-window economy.
func (s *Session) Record(question string, answer string) {
	stamp := time.Now().Format("15:04")

	stored := answer
	if s.truncateAt > 0 {
		stored = truncateRunes(answer, s.truncateAt)
	}

	s.history = append(s.history,
		fmt.Sprintf("[%s] %s", stamp, question),
		fmt.Sprintf("[%s] %s", stamp, stored),
	)

	if len(s.history) > MaxEntries {
		s.history = s.history[len(s.history)-MaxEntries:]
	}
}

// FormatHistory renders the last 3 question/answer pairs for reuse as prompt
// context.
func (s *Session) FormatHistory() string {
	if len(s.history) == 0 {
		return "No previous conversation."
	}

	recent := s.history
	if len(recent) > 6 {
		recent = recent[len(recent)-6:] // 3 Q&A pairs
	}

	var formatted []string
	for i := 0; i+1 < len(recent); i += 2 {
		q := recent[i]
		a := clipRunes(recent[i+1], DisplayClip)
		formatted = append(formatted, fmt.Sprintf("Q: %s\nA: %s...", q, a))
	}

	return strings.Join(formatted, "\n\n")
}

// Save serializes the session to path as indented JSON. On failure the
// in-memory history is untouched and the error goes back to the caller.
func (s *Session) Save(path string) error {
	file := SessionFile{
		Timestamp:  time.Now().Format(time.RFC3339),
		ModelsUsed: s.models,
		History:    append([]string{}, s.history...),
	}

	bytes, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, bytes, 0644)
}

// Clear drops the in-memory history. The transcript database is unaffected.
func (s *Session) Clear() {
	s.history = []string{}
}

func (s *Session) Len() int {
	return len(s.history)
}

func (s *Session) Models() []string {
	return s.models
}

// truncateRunes cuts s to at most n runes, marking the cut with an ellipsis.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// clipRunes cuts without a marker; the caller supplies its own.
func clipRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
