package value

import (
	"crypto/rand"
	"encoding/binary"
	"reflect"
	"sync"

	"github.com/dchest/siphash"
)

// attrShards is the number of independent buckets an AttrMap spreads its
// entries across. Grounded on hive/namecache's 16-shard design, generalized
// from a byte-name key to an arbitrary object-identity key.
const attrShards = 16

type attrEntry struct {
	key heapObject
	val any
}

type attrShard struct {
	mu    sync.Mutex
	items map[heapObject]*attrEntry
}

// AttrMap is the weak/attribute map of spec.md §4.B: an object-identity
// keyed mapping with Has/Set/Del, used by the printer as scratch state for
// cycle/sharing detection and available generally as a heap object variant
// (AttrTable) in its own right.
//
// Entries hold ordinary (strong) Go references to their key objects, so an
// entry keeps its key reachable for Go's garbage collector until Del,
// Reset, or Prune removes it; entries are never dropped automatically.
// Prune is the hook an external collector uses to drop entries for objects
// it has determined are otherwise unreachable.
type AttrMap struct {
	k0, k1 uint64 // siphash keys, randomized per map instance
	shards [attrShards]*attrShard
}

// NewAttrMap creates an empty attribute map.
func NewAttrMap() *AttrMap {
	m := &AttrMap{}
	m.k0, m.k1 = randKeys()
	for i := range m.shards {
		m.shards[i] = &attrShard{items: make(map[heapObject]*attrEntry)}
	}
	return m
}

func randKeys() (uint64, uint64) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		// Fall back to fixed keys; sharding is a performance detail, not a
		// correctness one, so a non-random fallback is harmless here.
		return 0x9ae16a3b2f90404f, 0xc3a5a1e1b01a8a5b
	}
	return binary.LittleEndian.Uint64(b[0:8]), binary.LittleEndian.Uint64(b[8:16])
}

// ptrBits returns the heap address backing o, for use as a hash-sharding
// input. o is always the dynamic value of a pointer type (see the
// heapObject implementations in object.go), so reflect.Value.Pointer is
// well-defined.
func ptrBits(o heapObject) uint64 {
	return uint64(reflect.ValueOf(o).Pointer())
}

func (m *AttrMap) shardFor(o heapObject) *attrShard {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], ptrBits(o))
	h := siphash.Hash(m.k0, m.k1, b[:])
	return m.shards[h&(attrShards-1)]
}

// Has reports whether key has an entry.
func (m *AttrMap) Has(key Value) bool {
	_, ok := m.Get(key)
	return ok
}

// Get returns the value stored for key, if any.
func (m *AttrMap) Get(key Value) (any, bool) {
	o := identityKey(key)
	if o == nil {
		return nil, false
	}
	s := m.shardFor(o)
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[o]
	if !ok {
		return nil, false
	}
	return e.val, true
}

// Set inserts or overwrites the entry for key.
func (m *AttrMap) Set(key Value, val any) {
	o := identityKey(key)
	if o == nil {
		return
	}
	s := m.shardFor(o)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[o] = &attrEntry{key: o, val: val}
}

// Del removes key's entry, if present.
func (m *AttrMap) Del(key Value) {
	o := identityKey(key)
	if o == nil {
		return
	}
	s := m.shardFor(o)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, o)
}

// Len returns the total number of entries across all shards.
func (m *AttrMap) Len() int {
	n := 0
	for _, s := range m.shards {
		s.mu.Lock()
		n += len(s.items)
		s.mu.Unlock()
	}
	return n
}

// Reset removes every entry without changing the map's identity (siphash
// keys are kept, so further inserts remain shard-stable).
func (m *AttrMap) Reset() {
	for _, s := range m.shards {
		s.mu.Lock()
		s.items = make(map[heapObject]*attrEntry)
		s.mu.Unlock()
	}
}

// Prune removes every entry whose key fails alive, for an external
// collector's sweep phase to call between GC cycles.
func (m *AttrMap) Prune(alive func(any) bool) {
	for _, s := range m.shards {
		s.mu.Lock()
		for k, e := range s.items {
			if !alive(e.key) {
				delete(s.items, k)
			}
		}
		s.mu.Unlock()
	}
}
