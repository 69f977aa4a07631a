package vm

import "strconv"

const strbufInitialCapacity = 256

// stringBuffer is a growable byte container identified by an integer id
// and tagged with the call-depth level that created it, with a separate
// append cursor and random-access read/write cursor. Grounded on
// original_source/libvmcore/src/strbuf.c's tzStringBuffer.
type stringBuffer struct {
	id      uint32
	level   uint32
	buf     []byte
	offset  int // append cursor; also the logical length
	rwCursor int // random-access cursor
}

func (b *stringBuffer) ensure(extra int) {
	if b.offset+extra <= len(b.buf) {
		return
	}
	grown := make([]byte, len(b.buf)+strbufInitialCapacity+extra)
	copy(grown, b.buf)
	b.buf = grown
}

func (b *stringBuffer) appendString(s string) {
	b.ensure(len(s))
	copy(b.buf[b.offset:], s)
	b.offset += len(s)
}

func (b *stringBuffer) appendChar(c byte) {
	b.ensure(1)
	b.buf[b.offset] = c
	b.offset++
}

func (b *stringBuffer) appendNumber(n int32) {
	b.appendString(strconv.FormatInt(int64(n), 10))
}

func (b *stringBuffer) appendFloat(f float32) {
	b.appendString(strconv.FormatFloat(float64(f), 'g', -1, 32))
}

func (b *stringBuffer) String() string {
	return string(b.buf[:b.offset])
}

func (b *stringBuffer) clear() {
	b.offset = 0
	b.rwCursor = 0
}

// setRWOffset only takes effect when the new offset is within the
// already-appended region, per strbuf.c's STRINGBUFFER_fnSetRWOffset.
func (b *stringBuffer) setRWOffset(off int) {
	if off < b.offset {
		b.rwCursor = off
	}
}

func (b *stringBuffer) getCharAtCursor() byte {
	if b.rwCursor < b.offset {
		return b.buf[b.rwCursor]
	}
	return 0
}

// setCharAtCursor writes a byte at the random-access cursor; writing a
// NUL truncates the buffer there, matching
// STRINGBUFFER_fnSetCharAtOffset's behavior exactly.
func (b *stringBuffer) setCharAtCursor(c byte) {
	if b.rwCursor >= b.offset {
		return
	}
	b.buf[b.rwCursor] = c
	if c == 0 {
		b.offset = b.rwCursor
	}
}

// strbufManager owns every live buffer and a free-list of buffers
// released by completed call frames, reused before any fresh allocation.
// This is process-wide state in the reference implementation (three
// file-scope statics in strbuf.c); here it is owned by the Core instance
// so multiple VMs in one process do not share it, which is stricter than
// the original but compatible with it (a single-VM-per-process deployment
// sees identical behavior).
type strbufManager struct {
	level    uint32
	byID     map[uint32]*stringBuffer
	freeList []*stringBuffer
}

func newStrbufManager() *strbufManager {
	return &strbufManager{byID: make(map[uint32]*stringBuffer)}
}

func (m *strbufManager) setLevel(level uint32) {
	m.level = level
}

// create returns the buffer for id, allocating it (reusing a free-list
// entry if one exists) and tagging it with the current level if id has
// no live buffer yet. Buffers are keyed by id alone: if an outer,
// still-live level already holds a buffer with this id, that same buffer
// is returned, so an inner frame does not get a separate buffer that
// shadows the outer one.
func (m *strbufManager) create(id uint32) *stringBuffer {
	if b, ok := m.byID[id]; ok {
		return b
	}
	var b *stringBuffer
	if n := len(m.freeList); n > 0 {
		b = m.freeList[n-1]
		m.freeList = m.freeList[:n-1]
		b.offset = 0
		b.rwCursor = 0
	} else {
		b = &stringBuffer{buf: make([]byte, strbufInitialCapacity)}
	}
	b.id = id
	b.level = m.level
	m.byID[id] = b
	return b
}

func (m *strbufManager) get(id uint32) *stringBuffer {
	return m.create(id)
}

// free releases every buffer at level to the free-list, mirroring
// STRINGBUFFER_fnFree. The reference implementation stops at the first
// non-matching node because buffers are created in LIFO order within a
// level and kept at the head of its in-use list; a Go map has no
// intrinsic order, so this walks every entry but produces the same
// resulting set, which is all that spec §8's invariant requires.
func (m *strbufManager) free(level uint32) {
	for id, b := range m.byID {
		if b.level == level {
			delete(m.byID, id)
			m.freeList = append(m.freeList, b)
		}
	}
	if m.level > 0 {
		m.level--
	}
}
