package cpu

/*
 * Grounded directly on the original C++ Executor::Execute /
 * perform_alu / branch_condition (Sources/src/Executor.h), re-expressed
 * as a stateless function: a pure computation of an instruction's
 * effects from its decoded fields and the current register/CSR
 * values. Shift counts and signed comparisons are made explicit rather
 * than relying on host-native int widths, since Go has no implicit
 * int/uint32 conversion to hide it behind.
 */

import "github.com/rv32sim/rv32sim/isa"

// Executor computes an instruction's data, effective address and next
// instruction pointer. It holds no state of its own.
type Executor struct{}

// Execute fills in instr.Data, instr.Addr and instr.NextIP according to
// the instruction's class.
func (Executor) Execute(instr *isa.Instruction, ip isa.Word) {
	switch instr.Class {
	case isa.Csrr:
		instr.Data = instr.CsrVal
		instr.NextIP = ip + 4
	case isa.Csrw:
		instr.Data = instr.Src1Val
		instr.NextIP = ip + 4
	case isa.St:
		instr.Data = instr.Src2Val
		instr.Addr = alu(instr)
		instr.NextIP = ip + 4
	case isa.J:
		instr.Data = ip + 4
		if branchTaken(instr) {
			instr.NextIP = ip + instr.Imm
		} else {
			instr.NextIP = ip + 4
		}
	case isa.Jr:
		instr.Data = ip + 4
		if branchTaken(instr) {
			// The RV32I spec clears bit 0 of the computed target;
			// the original simulator this was modeled on does not,
			// and that behavior is preserved for compatibility with
			// its test binaries (see the open question in the
			// design docs).
			instr.NextIP = instr.Src1Val + instr.Imm
		} else {
			instr.NextIP = ip + 4
		}
	case isa.Auipc:
		instr.Data = ip + instr.Imm
		instr.NextIP = ip + 4
	case isa.Alu:
		instr.Data = alu(instr)
		instr.NextIP = ip + 4
	case isa.Br:
		if branchTaken(instr) {
			instr.NextIP = ip + instr.Imm
		} else {
			instr.NextIP = ip + 4
		}
	case isa.Ld:
		instr.Addr = alu(instr)
		instr.NextIP = ip + 4
	}
}

// alu computes the ALU result for Alu and the effective address for
// Ld/St; J and Jr compute their targets without it. Per the source this is modeling, an instruction with no
// src1 yields 0 regardless of function, and one with neither an
// immediate nor src2 yields 0 too; both only affect malformed decodes.
func alu(instr *isa.Instruction) isa.Word {
	if !instr.HasSrc1 {
		return 0
	}
	a := instr.Src1Val

	if !instr.HasImm && !instr.HasSrc2 {
		return 0
	}
	var b isa.Word
	if instr.HasImm {
		b = instr.Imm
	} else {
		b = instr.Src2Val
	}

	switch instr.AluFunc {
	case isa.Add:
		return a + b
	case isa.Sub:
		return a - b
	case isa.And:
		return a & b
	case isa.Or:
		return a | b
	case isa.Xor:
		return a ^ b
	case isa.Slt:
		return boolWord(int32(a) < int32(b))
	case isa.Sltu:
		return boolWord(a < b)
	case isa.Sll:
		return a << (b % 32)
	case isa.Srl:
		return a >> (b % 32)
	case isa.Sra:
		return isa.Word(int32(a) >> (b % 32))
	default:
		return 0
	}
}

// branchTaken evaluates the branch/jump condition. AT and NT never
// look at the operands, matching the decoder's encoding of
// unconditional jumps as always-true.
func branchTaken(instr *isa.Instruction) bool {
	var a, b isa.Word
	if instr.HasSrc1 {
		a = instr.Src1Val
	}
	if instr.HasSrc2 {
		b = instr.Src2Val
	}

	switch instr.BrFunc {
	case isa.Eq:
		return a == b
	case isa.Neq:
		return a != b
	case isa.Lt:
		return int32(a) < int32(b)
	case isa.Ltu:
		return a < b
	case isa.Ge:
		return int32(a) >= int32(b)
	case isa.Geu:
		return a >= b
	case isa.AT:
		return true
	case isa.NT:
		return false
	default:
		return false
	}
}

func boolWord(b bool) isa.Word {
	if b {
		return 1
	}
	return 0
}
