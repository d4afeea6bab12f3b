package cpu

/*
 * Grounded on S370's register bank in emu/cpu/cpu.go (sysCPU.regs
 * [16]uint32, read/written straight off stepInfo) but with x0
 * hardwired to zero, as RV32I requires and S/370 has no analogue for.
 */

import "github.com/rv32sim/rv32sim/isa"

// NumRegisters is the size of the integer register file, x0..x31.
const NumRegisters = 32

// RegisterFile is the 32-entry integer register bank. Reads of x0
// always yield 0; writes to x0 are silently ignored.
type RegisterFile struct {
	regs [NumRegisters]isa.Word
}

// Read populates Src1Val and Src2Val from the instruction's source
// register indices.
func (rf *RegisterFile) Read(instr *isa.Instruction) {
	if instr.HasSrc1 {
		instr.Src1Val = rf.get(instr.Src1)
	}
	if instr.HasSrc2 {
		instr.Src2Val = rf.get(instr.Src2)
	}
}

// Write commits instr.Data to the destination register, if any.
func (rf *RegisterFile) Write(instr *isa.Instruction) {
	if !instr.HasDest {
		return
	}
	rf.set(instr.Dest, instr.Data)
}

func (rf *RegisterFile) get(index uint8) isa.Word {
	if index == 0 {
		return 0
	}
	return rf.regs[index]
}

func (rf *RegisterFile) set(index uint8, value isa.Word) {
	if index == 0 {
		return
	}
	rf.regs[index] = value
}

// Get is an out-of-band accessor for debuggers/monitors; it bypasses
// the Instruction-based protocol used on the hot path.
func (rf *RegisterFile) Get(index uint8) isa.Word {
	return rf.get(index)
}

// Reset clears every register.
func (rf *RegisterFile) Reset() {
	rf.regs = [NumRegisters]isa.Word{}
}
