package vm

// MemorySize is the LC-3's full 65,536-word address space.
const MemorySize = 1 << 16

const (
	TrapVectorTableStart       Word = 0x0000
	InterruptVectorTableStart  Word = 0x0100
	SystemSpaceStart           Word = 0x0200
	MemoryMappedRegistersStart Word = 0xFE00

	// KBSR/KBDR are the memory-mapped keyboard status and data
	// registers. Reading KBSR has the observable side effect of
	// polling the host keyboard (see Memory.Read).
	KBSR Word = MemoryMappedRegistersStart
	KBDR Word = MemoryMappedRegistersStart + 0x0002
)

// Keyboard decouples Memory's KBSR polling side effect from any
// concrete terminal implementation.
type Keyboard interface {
	// Ready reports whether a key is available without consuming it
	// and without blocking.
	Ready() bool
	// ReadByte blocks until one byte is available and returns it.
	ReadByte() byte
}

// Memory is the machine's linear 65,536-word address space, with
// memory-mapped I/O at KBSR/KBDR.
type Memory struct {
	cells [MemorySize]Word
	kb    Keyboard
}

// NewMemory returns a zero-initialized Memory whose KBSR reads poll
// kb. kb may be nil, in which case KBSR always reads as "no key
// ready".
func NewMemory(kb Keyboard) *Memory {
	return &Memory{kb: kb}
}

// Read returns memory[addr]. Reading KBSR first polls the host
// keyboard: if a key is ready, KBSR is set to 0x8000 and KBDR is set
// to that key's byte value; otherwise KBSR is set to 0. Reading any
// other address, including KBDR, has no side effect.
func (m *Memory) Read(addr Word) Word {
	if addr == KBSR {
		if m.kb != nil && m.kb.Ready() {
			m.cells[KBSR] = 0x8000
			m.cells[KBDR] = Word(m.kb.ReadByte())
		} else {
			m.cells[KBSR] = 0
		}
	}
	return m.cells[addr]
}

// Write unconditionally stores value at addr. Writes to KBSR/KBDR are
// permitted and simply ignored by hardware semantics.
func (m *Memory) Write(addr, value Word) {
	m.cells[addr] = value
}
