package value

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/dchest/siphash"
)

// internShards mirrors attrShards/hive/namecache's shard count.
const internShards = 16

type internShard struct {
	mu    sync.Mutex
	byKey map[string]Value
}

// InternTable is the process/instance-wide symbol table. Unlike
// hive/namecache's LRU cache, entries are never evicted: spec.md invariant
// #1 ("intern(s) == intern(s) for every string s") requires interning to be
// total and permanent for the life of the table, so an eviction policy
// would be a correctness bug here, not just a cache-miss cost. The
// sharded-by-keyed-hash lookup shape is kept; the LRU list is not.
type InternTable struct {
	heap   *Heap
	k0, k1 uint64
	shards [internShards]*internShard
	gensym atomic.Uint64
}

// NewInternTable creates an empty intern table allocating through heap.
func NewInternTable(heap *Heap) *InternTable {
	t := &InternTable{heap: heap}
	t.k0, t.k1 = randKeys()
	for i := range t.shards {
		t.shards[i] = &internShard{byKey: make(map[string]Value)}
	}
	return t
}

func (t *InternTable) shardFor(name string) *internShard {
	h := siphash.Hash(t.k0, t.k1, []byte(name))
	return t.shards[h&(internShards-1)]
}

// Intern returns the unique symbol Value for name, allocating it on first
// use. Two calls with equal names always return the identical object
// (Identical(a, b) == true), satisfying spec.md invariant #1.
func (t *InternTable) Intern(name string) Value {
	s := t.shardFor(name)
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.byKey[name]; ok {
		return v
	}
	v := t.heap.AllocSymbol(name, false)
	s.byKey[name] = v
	return v
}

// Lookup reports whether name is already interned, without creating it.
func (t *InternTable) Lookup(name string) (Value, bool) {
	s := t.shardFor(name)
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.byKey[name]
	return v, ok
}

// Len returns the number of interned symbols.
func (t *InternTable) Len() int {
	n := 0
	for _, s := range t.shards {
		s.mu.Lock()
		n += len(s.byKey)
		s.mu.Unlock()
	}
	return n
}

// Gensym returns a fresh, uninterned symbol whose printed name is skeleton
// followed by a monotonically increasing counter (spec.md §6: "a fresh
// uninterned symbol whose skeleton is `.g`"). Uninterned symbols are never
// added to the shard tables: identifier?(x) must be true for every gensym,
// and interning would make a second gensym of the same skeleton collide
// with the first under Lookup.
func (t *InternTable) Gensym(skeleton string) Value {
	n := t.gensym.Add(1)
	name := skeleton + strconv.FormatUint(n, 10)
	return t.heap.AllocSymbol(name, true)
}
