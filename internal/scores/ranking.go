// Package scores keeps the top-10 ranking of finished rounds.
//
// The ranking is persisted as a single line of comma-separated integers,
// highest first. Where that line lives is up to a Backend: a plain text file
// or a row in the SQLite store.
package scores

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Capacity is the number of scores the ranking keeps.
const Capacity = 10

var (
	// ErrInvalidScore is returned when writing a negative score.
	ErrInvalidScore = errors.New("scores: invalid score")
	// ErrNilBackend is returned when a ranking is created without a backend.
	ErrNilBackend = errors.New("scores: nil backend")
)

// Backend loads and stores the persisted ranking line.
type Backend interface {
	Load() (string, error)
	Save(line string) error
}

// Ranking is a bounded, descending list of scores.
// It is safe for concurrent use.
type Ranking struct {
	mu      sync.Mutex
	backend Backend
	logger  *log.Logger
}

// NewRanking creates a ranking over backend. A nil logger discards output.
func NewRanking(backend Backend, logger *log.Logger) (*Ranking, error) {
	if backend == nil {
		return nil, ErrNilBackend
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Ranking{backend: backend, logger: logger}, nil
}

// Read returns the stored scores. An empty or unreadable ranking reads as
// Capacity zeros.
func (r *Ranking) Read() []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.load()
	if len(list) == 0 {
		return make([]int, Capacity)
	}
	return list
}

// Write inserts score, keeps the best Capacity entries and persists them.
// It returns the stored list.
func (r *Ranking) Write(score int) ([]int, error) {
	if score < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidScore, score)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	list := insert(r.load(), score)
	if err := r.backend.Save(Format(list)); err != nil {
		return nil, fmt.Errorf("scores: cannot save ranking: %w", err)
	}
	r.logger.Debug("score saved", "score", score, "rank", Rank(score, list))
	return list, nil
}

func (r *Ranking) load() []int {
	line, err := r.backend.Load()
	if err != nil {
		r.logger.Warn("cannot load ranking, starting empty", "err", err)
		return nil
	}

	list, dropped := parse(line)
	for _, tok := range dropped {
		r.logger.Warn("dropping malformed score", "token", tok)
	}
	return list
}

// Parse reads a ranking line, silently skipping malformed tokens.
// Only the first line of the input is considered.
func Parse(line string) []int {
	list, _ := parse(line)
	return list
}

func parse(line string) (list []int, dropped []string) {
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSuffix(line, "\r")
	if line == "" {
		return nil, nil
	}

	for _, tok := range strings.Split(line, ",") {
		n, err := strconv.Atoi(tok)
		if err != nil || n < 0 {
			dropped = append(dropped, tok)
			continue
		}
		list = append(list, n)
	}
	return list, dropped
}

// Format joins scores with commas, without a trailing separator.
func Format(list []int) string {
	parts := make([]string, len(list))
	for i, n := range list {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

// insert appends score, evicts the first smallest entry until at most
// Capacity remain, and sorts the result descending.
func insert(list []int, score int) []int {
	out := make([]int, 0, len(list)+1)
	out = append(out, list...)
	out = append(out, score)

	for len(out) > Capacity {
		minIdx := 0
		for i, n := range out {
			if n < out[minIdx] {
				minIdx = i
			}
		}
		out = append(out[:minIdx], out[minIdx+1:]...)
	}

	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// Rank returns the 1-based position of the first entry equal to score,
// or 0 if the score is not listed.
func Rank(score int, list []int) int {
	for i, n := range list {
		if n == score {
			return i + 1
		}
	}
	return 0
}
