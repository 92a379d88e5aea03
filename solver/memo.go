package solver

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash"
	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
)

// The memo table caches the best evaluation for a candidate set, keyed by a
// canonical representation of the set so that two sets with the same
// membership reached via different recursion paths share an entry.
//
// Entries keep their full canonical key and it is compared on lookup, so a
// 64-bit hash collision is detected and treated as a miss. That keeps
// memoization transparent: toggling it can never change a returned
// evaluation, only the work done to compute it.

// rough per-entry cost used for the memory budget; the canonical key
// dominates for large candidate sets, this just keeps the table from
// swallowing the machine.
const approxEntrySize = 128

type TableLock interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

type FakeLock struct{}

func (f FakeLock) Lock()    {}
func (f FakeLock) Unlock()  {}
func (f FakeLock) RLock()   {}
func (f FakeLock) RUnlock() {}

type memoEntry struct {
	key  string
	eval Evaluation
}

type MemoTable struct {
	TableLock
	entries    map[uint64][]memoEntry
	maxEntries uint64

	created    atomic.Uint64
	lookups    atomic.Uint64
	hits       atomic.Uint64
	collisions atomic.Uint64
	dropped    atomic.Uint64
}

func (t *MemoTable) SetSingleThreadedMode() {
	t.TableLock = &FakeLock{}
}

func (t *MemoTable) SetMultiThreadedMode() {
	t.TableLock = new(sync.RWMutex)
}

// canonicalKey builds the order-independent identity of a candidate set.
// The solver keeps candidate slices sorted throughout the recursion, so the
// sort here is nearly always a no-op; it stays for callers that don't.
func canonicalKey(candidates []string) string {
	if !sort.StringsAreSorted(candidates) {
		sorted := make([]string, len(candidates))
		copy(sorted, candidates)
		sort.Strings(sorted)
		candidates = sorted
	}
	return strings.Join(candidates, "\x00")
}

func (t *MemoTable) lookup(key string) (Evaluation, bool) {
	t.RLock()
	defer t.RUnlock()
	t.lookups.Add(1)
	hash := xxhash.Sum64String(key)
	for _, entry := range t.entries[hash] {
		if entry.key == key {
			t.hits.Add(1)
			return entry.eval, true
		}
		t.collisions.Add(1)
	}
	return Evaluation{}, false
}

func (t *MemoTable) store(key string, eval Evaluation) {
	t.Lock()
	defer t.Unlock()
	if t.created.Load() >= t.maxEntries {
		t.dropped.Add(1)
		return
	}
	hash := xxhash.Sum64String(key)
	for _, entry := range t.entries[hash] {
		if entry.key == key {
			// another thread got here first; the values are identical.
			return
		}
	}
	t.entries[hash] = append(t.entries[hash], memoEntry{key: key, eval: eval})
	t.created.Add(1)
}

// Reset empties the table and recomputes the entry budget from the given
// fraction of system memory. Entries are never evicted during a run; once
// the budget is hit further stores are silently dropped.
func (t *MemoTable) Reset(fractionOfMemory float64) {
	t.Lock()
	defer t.Unlock()
	totalMem := memory.TotalMemory()
	t.maxEntries = uint64(fractionOfMemory * (float64(totalMem) / float64(approxEntrySize)))
	t.entries = make(map[uint64][]memoEntry)

	log.Debug().
		Uint64("max-entries", t.maxEntries).
		Uint64("total-system-memory-bytes", totalMem).
		Msg("memo-table-reset")

	t.created.Store(0)
	t.lookups.Store(0)
	t.hits.Store(0)
	t.collisions.Store(0)
	t.dropped.Store(0)
}
