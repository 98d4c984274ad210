package intel

// Entry is one recorded stage invocation: what was asked and what came back.
// Entries are never mutated after they are appended.
type Entry struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// Transcript is the chronological trace of every stage invocation in one
// orchestration run. It grows monotonically, is never compacted, and is owned
// by exactly one Orchestrator. Single-threaded per run.
type Transcript struct {
	entries []Entry
}

// Append records an invocation unconditionally, preserving call order.
func (t *Transcript) Append(input, output string) {
	t.entries = append(t.entries, Entry{Input: input, Output: output})
}

// Len reports the number of recorded entries.
func (t *Transcript) Len() int {
	return len(t.entries)
}

// Snapshot returns a copy of the full history in insertion order. Mutating
// the returned slice does not affect the transcript.
func (t *Transcript) Snapshot() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}
