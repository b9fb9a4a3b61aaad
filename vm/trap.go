package vm

import (
	"bufio"
	"io"
)

// Writer is the destination traps write guest output to. It is
// exactly io.Writer; a distinct name keeps the CPU's public surface
// free of a direct stdlib import requirement in callers that just
// want to know "where does trap output go."
type Writer = io.Writer

const (
	TrapGETC  Word = 0x20 // get a character from the keyboard, not echoed
	TrapOUT   Word = 0x21 // output a character
	TrapPUTS  Word = 0x22 // output a null-terminated word string
	TrapIN    Word = 0x23 // get a character from the keyboard, echoed
	TrapPUTSP Word = 0x24 // output a null-terminated packed byte string
	TrapHALT  Word = 0x25 // halt the program
)

// trapHandler implements one TRAP service routine.
type trapHandler func(cpu *CPU)

var traps = map[Word]trapHandler{
	TrapGETC:  (*CPU).trapGETC,
	TrapOUT:   (*CPU).trapOUT,
	TrapPUTS:  (*CPU).trapPUTS,
	TrapIN:    (*CPU).trapIN,
	TrapPUTSP: (*CPU).trapPUTSP,
	TrapHALT:  (*CPU).trapHALT,
}

func (cpu *CPU) execTRAP(f operandFields) {
	cpu.Reg.GP[R7] = cpu.Reg.PC
	if h, ok := traps[f.trapvect8]; ok {
		h(cpu)
	}
	// Unknown trap vectors are no-ops: R7 is still set, control
	// returns to the next instruction, nothing else happens.
}

// keyboardByte blocks for one character via the Keyboard abstraction
// Memory was constructed with. GETC/IN always block for a character,
// regardless of whether one was already pending at KBSR.
func (cpu *CPU) keyboardByte() byte {
	if cpu.Mem.kb == nil {
		return 0
	}
	return cpu.Mem.kb.ReadByte()
}

func (cpu *CPU) trapGETC() {
	c := cpu.keyboardByte()
	cpu.Reg.GP[R0] = Word(c)
	cpu.Reg.updateFlags(R0)
}

func (cpu *CPU) trapOUT() {
	w := bufio.NewWriter(cpu.out)
	w.WriteByte(byte(cpu.Reg.GP[R0]))
	w.Flush()
}

func (cpu *CPU) trapPUTS() {
	w := bufio.NewWriter(cpu.out)
	addr := cpu.Reg.GP[R0]
	for c := cpu.Mem.Read(addr); c != 0; c = cpu.Mem.Read(addr) {
		w.WriteByte(byte(c))
		addr++
	}
	w.Flush()
}

func (cpu *CPU) trapIN() {
	w := bufio.NewWriter(cpu.out)
	w.WriteString("Enter a character: ")

	// IN stores the character that was just read, not a stale
	// snapshot.
	c := cpu.keyboardByte()
	w.WriteByte(c)
	w.Flush()

	cpu.Reg.GP[R0] = Word(c)
	cpu.Reg.updateFlags(R0)
}

func (cpu *CPU) trapPUTSP() {
	w := bufio.NewWriter(cpu.out)
	addr := cpu.Reg.GP[R0]
	for word := cpu.Mem.Read(addr); word != 0; word = cpu.Mem.Read(addr) {
		w.WriteByte(byte(word))
		if hi := byte(word >> 8); hi != 0 {
			w.WriteByte(hi)
		}
		addr++
	}
	w.Flush()
}

func (cpu *CPU) trapHALT() {
	w := bufio.NewWriter(cpu.out)
	w.WriteString("HALT\n")
	w.Flush()
	cpu.halted = true
}
