// Package history keeps the bounded, newest-first log of recently shared
// messages. The log lives under a single fixed key in a key-value Store.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

const (
	// Key is the storage key holding the serialized log.
	Key = "flipboard_history"

	// Capacity is the maximum number of entries kept.
	Capacity = 10
)

// ErrEmptyMessage is returned when appending a blank message.
var ErrEmptyMessage = errors.New("history: empty message")

// Entry is one shared message. Timestamp is milliseconds since the Unix epoch.
type Entry struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

// Time returns the entry timestamp as a time.Time.
func (e Entry) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// LogOptions configures a Log. Zero values use the wall clock and random
// UUIDs.
type LogOptions struct {
	Now   func() time.Time
	NewID func() string
}

// Log is the recency list over a Store. It is safe for concurrent use within
// one process; it does not coordinate with other processes.
type Log struct {
	mu    sync.Mutex
	store Store
	now   func() time.Time
	newID func() string
}

// NewLog returns a Log persisting to store.
func NewLog(store Store, opts LogOptions) *Log {
	l := &Log{store: store, now: opts.Now, newID: opts.NewID}
	if l.now == nil {
		l.now = time.Now
	}

	if l.newID == nil {
		l.newID = uuid.NewString
	}

	return l
}

// Append records message as the newest entry, drops anything beyond
// Capacity, persists, and returns the updated log.
func (l *Log) Append(ctx context.Context, message string) ([]Entry, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.load(ctx)
	if err != nil {
		return nil, err
	}

	entry := Entry{
		ID:        l.newID(),
		Message:   message,
		Timestamp: l.now().UnixMilli(),
	}

	entries = lo.Slice(append([]Entry{entry}, entries...), 0, Capacity)

	data, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("marshaling history: %w", err)
	}

	if err := l.store.Put(ctx, Key, data); err != nil {
		return nil, fmt.Errorf("saving history: %w", err)
	}

	return entries, nil
}

// List returns the entries, newest first.
func (l *Log) List(ctx context.Context) ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.load(ctx)
}

// Clear removes the log. Clearing an empty log succeeds.
func (l *Log) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.store.Delete(ctx, Key); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}

	return nil
}

// load reads the stored log. Missing or corrupt data reads as empty.
func (l *Log) load(ctx context.Context) ([]Entry, error) {
	data, err := l.store.Get(ctx, Key)
	if errors.Is(err, ErrNotFound) {
		return []Entry{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		slog.Debug("discarding corrupt history", "error", err)

		return []Entry{}, nil
	}

	return lo.Slice(entries, 0, Capacity), nil
}
