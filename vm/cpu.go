package vm

import "github.com/sirupsen/logrus"

// CPU holds the register file and the memory it operates on, and
// implements the architectural effect of every LC-3 instruction.
type CPU struct {
	Reg    Registers
	Mem    *Memory
	out    Writer
	halted bool

	// Log, if non-nil, receives one Debug-level entry per Step with
	// the fetched PC and instruction word. Nil disables tracing.
	Log *logrus.Logger
}

// NewCPU returns a CPU wired to mem, with trap output written to out.
func NewCPU(mem *Memory, out Writer) *CPU {
	cpu := &CPU{Mem: mem, out: out}
	cpu.Reg.reset()
	return cpu
}

// Halted reports whether the TRAP HALT service routine has run.
func (cpu *CPU) Halted() bool {
	return cpu.halted
}

// Step fetches the instruction at PC, advances PC, and dispatches it.
// PC is incremented before the handler runs, so every handler sees
// the post-increment PC.
func (cpu *CPU) Step() {
	instr := cpu.Mem.Read(cpu.Reg.PC)
	if cpu.Log != nil {
		cpu.Log.WithFields(logrus.Fields{
			"pc":    cpu.Reg.PC,
			"instr": instr,
		}).Debug("CPU step")
	}
	cpu.Reg.PC++

	op, f := decode(instr)
	dispatch[op](cpu, f)
}

func (cpu *CPU) execADD(f operandFields) {
	if f.immFlag {
		cpu.Reg.GP[f.dr] = cpu.Reg.GP[f.sr1] + f.imm5
	} else {
		cpu.Reg.GP[f.dr] = cpu.Reg.GP[f.sr1] + cpu.Reg.GP[f.sr2]
	}
	cpu.Reg.updateFlags(f.dr)
}

func (cpu *CPU) execAND(f operandFields) {
	if f.immFlag {
		cpu.Reg.GP[f.dr] = cpu.Reg.GP[f.sr1] & f.imm5
	} else {
		cpu.Reg.GP[f.dr] = cpu.Reg.GP[f.sr1] & cpu.Reg.GP[f.sr2]
	}
	cpu.Reg.updateFlags(f.dr)
}

func (cpu *CPU) execNOT(f operandFields) {
	cpu.Reg.GP[f.dr] = ^cpu.Reg.GP[f.sr1]
	cpu.Reg.updateFlags(f.dr)
}

func (cpu *CPU) execBR(f operandFields) {
	if f.nzp&int(cpu.Reg.Cond) != 0 {
		cpu.Reg.PC += f.pcOffset9
	}
}

func (cpu *CPU) execJMP(f operandFields) {
	cpu.Reg.PC = cpu.Reg.GP[f.sr1]
}

func (cpu *CPU) execJSR(f operandFields) {
	cpu.Reg.GP[R7] = cpu.Reg.PC
	if f.jsrMode {
		cpu.Reg.PC += f.pcOffset
	} else {
		cpu.Reg.PC = cpu.Reg.GP[f.sr1]
	}
}

func (cpu *CPU) execLD(f operandFields) {
	addr := cpu.Reg.PC + f.pcOffset9
	cpu.Reg.GP[f.dr] = cpu.Mem.Read(addr)
	cpu.Reg.updateFlags(f.dr)
}

func (cpu *CPU) execLDI(f operandFields) {
	addr := cpu.Reg.PC + f.pcOffset9
	cpu.Reg.GP[f.dr] = cpu.Mem.Read(cpu.Mem.Read(addr))
	cpu.Reg.updateFlags(f.dr)
}

func (cpu *CPU) execLDR(f operandFields) {
	addr := cpu.Reg.GP[f.sr1] + f.offset6
	cpu.Reg.GP[f.dr] = cpu.Mem.Read(addr)
	cpu.Reg.updateFlags(f.dr)
}

func (cpu *CPU) execLEA(f operandFields) {
	cpu.Reg.GP[f.dr] = cpu.Reg.PC + f.pcOffset9
	cpu.Reg.updateFlags(f.dr)
}

func (cpu *CPU) execST(f operandFields) {
	addr := cpu.Reg.PC + f.pcOffset9
	cpu.Mem.Write(addr, cpu.Reg.GP[f.dr])
}

func (cpu *CPU) execSTI(f operandFields) {
	addr := cpu.Reg.PC + f.pcOffset9
	cpu.Mem.Write(cpu.Mem.Read(addr), cpu.Reg.GP[f.dr])
}

func (cpu *CPU) execSTR(f operandFields) {
	addr := cpu.Reg.GP[f.sr1] + f.offset6
	cpu.Mem.Write(addr, cpu.Reg.GP[f.dr])
}

// execNoop implements RTI and RES: both are unimplemented opcodes
// that the executive loop treats as no-ops. PC has already advanced
// past the instruction by the time this runs.
func (cpu *CPU) execNoop(f operandFields) {}
