package tape

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// Recorder captures the nondeterministic surface of a live run.
type Recorder struct {
	mu      sync.Mutex
	runID   string
	seq     uint64
	entries []Entry
}

// NewRecorder creates a recorder with a fresh run ID.
func NewRecorder() *Recorder {
	return &Recorder{runID: uuid.NewString()}
}

// RecordInput captures one consumed line.
func (r *Recorder) RecordInput(line string) {
	r.record(KindInput, line)
}

// RecordRandom captures one random draw.
func (r *Recorder) RecordRandom(value int) {
	r.record(KindRandom, strconv.Itoa(value))
}

// RecordOutput captures one emitted line.
func (r *Recorder) RecordOutput(line string) {
	r.record(KindOutput, line)
}

// Count returns the number of recorded entries.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Transcript returns a snapshot of everything recorded so far.
func (r *Recorder) Transcript() *Transcript {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries := make([]Entry, len(r.entries))
	copy(entries, r.entries)
	return &Transcript{RunID: r.runID, Entries: entries}
}

func (r *Recorder) record(kind Kind, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.entries = append(r.entries, Entry{
		Seq:       r.seq,
		Kind:      kind,
		Value:     value,
		ValueHash: hashValue(value),
	})
}
