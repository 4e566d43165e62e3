package engine

import "sync"

// ConnectionTuple is the (in, out) field-gene id pair a connection gene
// connects. It doubles as the key used to reuse innovation numbers within
// a single generation.
type ConnectionTuple struct {
	InFieldID  uint16
	OutFieldID uint16
}

// Innovations is the historical-innovation tracker: a monotonic, run-wide
// counter plus a per-generation map so that two independent mutations
// producing the same topological tuple within one generation receive the
// same innovation number (see SPEC_FULL.md §4.3).
type Innovations struct {
	mu               sync.Mutex
	nextNumber       uint16
	perGeneration    map[ConnectionTuple]uint16
}

func newInnovations() Innovations {
	return Innovations{
		nextNumber:    1,
		perGeneration: make(map[ConnectionTuple]uint16),
	}
}

// NumberFor returns the innovation number for tuple, allocating a fresh one
// the first time tuple is seen this generation and reusing it for any
// further mutation that produces the same tuple before the next
// ClearGeneration call.
func (in *Innovations) NumberFor(tuple ConnectionTuple) uint16 {
	in.mu.Lock()
	defer in.mu.Unlock()
	if num, ok := in.perGeneration[tuple]; ok {
		return num
	}
	num := in.nextNumber
	in.nextNumber++
	in.perGeneration[tuple] = num
	return num
}

// ClearGeneration resets the per-generation reuse map. Must be called
// exactly once per generation, after all offspring have been mutated.
func (in *Innovations) ClearGeneration() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.perGeneration = make(map[ConnectionTuple]uint16)
}

// PendingCount reports the size of the per-generation map, used by tests
// asserting invariant 3 (empty at generation boundaries).
func (in *Innovations) PendingCount() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return len(in.perGeneration)
}
