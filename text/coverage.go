package text

import "sync"

// coverageMap memoizes per-rune glyph coverage of a face.
// It stores 2 bits per rune (known, covered) in 256-rune blocks that are
// allocated on first access. It is safe for concurrent use.
type coverageMap struct {
	mu     sync.RWMutex
	blocks map[uint32]*coverageBlock
}

// coverageBlock holds 256 runes at 2 bits each.
type coverageBlock struct {
	bits [8]uint64
}

func newCoverageMap() *coverageMap {
	return &coverageMap{blocks: make(map[uint32]*coverageBlock)}
}

// bitPos returns the block key, word index and bit offset of r.
func bitPos(r rune) (key, word, shift uint32) {
	u := uint32(r) //nolint:gosec // negative runes map to an unused block
	idx := (u & 0xFF) * 2
	return u >> 8, idx / 64, idx % 64
}

// get returns (covered, known) for r.
func (m *coverageMap) get(r rune) (covered, known bool) {
	key, word, shift := bitPos(r)

	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.blocks[key]
	if !ok {
		return false, false
	}
	w := b.bits[word] >> shift
	return w&2 != 0, w&1 != 0
}

// set records the coverage of r.
func (m *coverageMap) set(r rune, covered bool) {
	key, word, shift := bitPos(r)

	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.blocks[key]
	if !ok {
		b = &coverageBlock{}
		m.blocks[key] = b
	}
	b.bits[word] |= 1 << shift
	if covered {
		b.bits[word] |= 2 << shift
	} else {
		b.bits[word] &^= 2 << shift
	}
}

// lookup returns the coverage of r, computing and storing it with probe
// on first use.
func (m *coverageMap) lookup(r rune, probe func(rune) bool) bool {
	if covered, known := m.get(r); known {
		return covered
	}
	covered := probe(r)
	m.set(r, covered)
	return covered
}
