package vm

import "encoding/binary"

// memory is the flat byte image: code and literals at the bottom,
// big-endian-encoded runtime stack growing down from the top. All
// multi-byte transfers between registers and memory are big-endian
// regardless of host byte order, per the on-wire discipline the source
// VM mandates; Go's binary.BigEndian is the mandatory byte-reversing
// helper called out in the design notes.
type memory struct {
	bytes       []byte
	programSize uint32
	stackSize   uint32
}

func newMemory(coreSize, stackSize uint32) *memory {
	return &memory{
		bytes:     make([]byte, coreSize),
		stackSize: stackSize,
	}
}

func (m *memory) Len() uint32 { return uint32(len(m.bytes)) }

func (m *memory) stackFloor() uint32 {
	return m.Len() - m.stackSize
}

func (m *memory) Read8(addr uint32) byte {
	return m.bytes[addr]
}

func (m *memory) Write8(addr uint32, v byte) {
	m.bytes[addr] = v
}

func (m *memory) Read16(addr uint32) uint16 {
	return binary.BigEndian.Uint16(m.bytes[addr:])
}

func (m *memory) Write16(addr uint32, v uint16) {
	binary.BigEndian.PutUint16(m.bytes[addr:], v)
}

func (m *memory) Read32(addr uint32) uint32 {
	return binary.BigEndian.Uint32(m.bytes[addr:])
}

func (m *memory) Write32(addr uint32, v uint32) {
	binary.BigEndian.PutUint32(m.bytes[addr:], v)
}
