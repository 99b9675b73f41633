// Package history keeps a bounded record of recently dispatched events
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"counter-terminal/pkg/event"
)

// DefaultMaxEntries is the capacity used when none is given
const DefaultMaxEntries = 256

// Direction represents which side of the dispatch loop an entry was seen on
type Direction int

const (
	// DirectionInput is an event received from the terminal controller
	DirectionInput Direction = iota
	// DirectionOutput is a message applied to the model
	DirectionOutput
)

// String returns the string representation of Direction
func (d Direction) String() string {
	switch d {
	case DirectionInput:
		return "input"
	case DirectionOutput:
		return "output"
	default:
		return "unknown"
	}
}

// FileFormat represents different file export formats
type FileFormat int

const (
	FormatPlainText FileFormat = iota
	FormatTimestamped
	FormatJSON
)

// String returns the string representation of FileFormat
func (f FileFormat) String() string {
	switch f {
	case FormatPlainText:
		return "plain_text"
	case FormatTimestamped:
		return "timestamped"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseFileFormat maps a command line name to its FileFormat
func ParseFileFormat(name string) (FileFormat, error) {
	switch name {
	case "plain", "plain_text":
		return FormatPlainText, nil
	case "timestamped":
		return FormatTimestamped, nil
	case "json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("unknown history format: %s (valid: plain, timestamped, json)", name)
	}
}

// Entry represents a single recorded item
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Direction Direction `json:"direction"`
	Detail    string    `json:"detail"`
}

// Validate checks if the entry is valid
func (e Entry) Validate() error {
	if e.Timestamp.IsZero() {
		return fmt.Errorf("timestamp cannot be zero")
	}

	if e.Direction != DirectionInput && e.Direction != DirectionOutput {
		return fmt.Errorf("invalid direction: %d", e.Direction)
	}

	if e.Detail == "" {
		return fmt.Errorf("detail cannot be empty")
	}

	return nil
}

// String formats the entry as one timestamped line
func (e Entry) String() string {
	arrow := "<<"
	if e.Direction == DirectionOutput {
		arrow = ">>"
	}
	return fmt.Sprintf("[%s] %s %s", e.Timestamp.Format("15:04:05.000"), arrow, e.Detail)
}

// Stats provides statistics about the recorder
type Stats struct {
	TotalEntries  int        `json:"total_entries"`
	InputEntries  int        `json:"input_entries"`
	OutputEntries int        `json:"output_entries"`
	Evicted       int        `json:"evicted"`
	Ignored       int        `json:"ignored"`
	MaxEntries    int        `json:"max_entries"`
	OldestEntry   *time.Time `json:"oldest_entry,omitempty"`
	NewestEntry   *time.Time `json:"newest_entry,omitempty"`
}

// Recorder is a ring buffer of entries, safe for concurrent use
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
	start   int
	count   int
	evicted int
	ignored int
	skip    map[event.Kind]bool
	now     func() time.Time
}

// NewRecorder creates a recorder holding at most maxEntries entries
func NewRecorder(maxEntries int) *Recorder {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}

	return &Recorder{
		entries: make([]Entry, maxEntries),
		skip:    make(map[event.Kind]bool),
		now:     time.Now,
	}
}

// Ignore stops input events of the given kinds from being recorded
func (r *Recorder) Ignore(kinds ...event.Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, k := range kinds {
		r.skip[k] = true
	}
}

// RecordEvent records an event received by the dispatch loop
func (r *Recorder) RecordEvent(ev event.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.skip[ev.Kind] {
		r.ignored++
		return
	}
	r.push(Entry{Timestamp: r.now(), Direction: DirectionInput, Detail: ev.String()})
}

// RecordMessage records a message applied to the model
func (r *Recorder) RecordMessage(msg fmt.Stringer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.push(Entry{Timestamp: r.now(), Direction: DirectionOutput, Detail: msg.String()})
}

func (r *Recorder) push(e Entry) {
	capacity := len(r.entries)
	if r.count < capacity {
		r.entries[(r.start+r.count)%capacity] = e
		r.count++
		return
	}

	// Full: overwrite the oldest entry
	r.entries[r.start] = e
	r.start = (r.start + 1) % capacity
	r.evicted++
}

// Len returns the number of stored entries
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.count
}

// MaxEntries returns the capacity
func (r *Recorder) MaxEntries() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.entries)
}

// Entries returns the stored entries, oldest first
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.snapshot()
}

func (r *Recorder) snapshot() []Entry {
	result := make([]Entry, r.count)
	for i := 0; i < r.count; i++ {
		result[i] = r.entries[(r.start+i)%len(r.entries)]
	}
	return result
}

// Recent returns the newest n entries as lines, oldest first
func (r *Recorder) Recent(n int) []string {
	entries := r.Entries()
	if n >= 0 && n < len(entries) {
		entries = entries[len(entries)-n:]
	}

	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.String()
	}
	return lines
}

// Clear removes all entries
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.entries {
		r.entries[i] = Entry{}
	}
	r.start = 0
	r.count = 0
}

// SetMaxEntries changes the capacity, keeping the newest entries
func (r *Recorder) SetMaxEntries(n int) error {
	if n <= 0 {
		return fmt.Errorf("max entries must be positive, got: %d", n)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.snapshot()
	if len(kept) > n {
		r.evicted += len(kept) - n
		kept = kept[len(kept)-n:]
	}

	r.entries = make([]Entry, n)
	copy(r.entries, kept)
	r.start = 0
	r.count = len(kept)
	return nil
}

// Stats returns statistics about the recorder
func (r *Recorder) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := Stats{
		TotalEntries: r.count,
		Evicted:      r.evicted,
		Ignored:      r.ignored,
		MaxEntries:   len(r.entries),
	}

	for i, entry := range r.snapshot() {
		if entry.Direction == DirectionInput {
			stats.InputEntries++
		} else {
			stats.OutputEntries++
		}

		ts := entry.Timestamp
		if i == 0 || ts.Before(*stats.OldestEntry) {
			stats.OldestEntry = &ts
		}
		if i == 0 || ts.After(*stats.NewestEntry) {
			stats.NewestEntry = &ts
		}
	}

	return stats
}

// SaveToFile writes the stored entries to filename in the given format
func (r *Recorder) SaveToFile(filename string, format FileFormat) error {
	return saveEntriesToFile(r.Entries(), filename, format)
}

// saveEntriesToFile saves entries to a file in the specified format
func saveEntriesToFile(entries []Entry, filename string, format FileFormat) error {
	switch format {
	case FormatPlainText, FormatTimestamped, FormatJSON:
	default:
		return fmt.Errorf("unsupported format: %v", format)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	switch format {
	case FormatPlainText:
		return saveAsPlainText(file, entries)
	case FormatTimestamped:
		return saveAsTimestamped(file, entries)
	default:
		return saveAsJSON(file, entries)
	}
}

// saveAsPlainText saves one detail per line
func saveAsPlainText(file *os.File, entries []Entry) error {
	for _, entry := range entries {
		if _, err := fmt.Fprintln(file, entry.Detail); err != nil {
			return fmt.Errorf("failed to write data: %w", err)
		}
	}
	return nil
}

// saveAsTimestamped saves entries with timestamps and direction markers
func saveAsTimestamped(file *os.File, entries []Entry) error {
	for _, entry := range entries {
		arrow := "<<"
		if entry.Direction == DirectionOutput {
			arrow = ">>"
		}

		line := fmt.Sprintf("[%s] %s %s\n",
			entry.Timestamp.Format("2006-01-02 15:04:05.000"),
			arrow,
			entry.Detail)

		if _, err := file.WriteString(line); err != nil {
			return fmt.Errorf("failed to write timestamped data: %w", err)
		}
	}
	return nil
}

// saveAsJSON saves entries as JSON
func saveAsJSON(file *os.File, entries []Entry) error {
	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	data := struct {
		Entries []Entry `json:"entries"`
		Count   int     `json:"count"`
	}{
		Entries: entries,
		Count:   len(entries),
	}

	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
