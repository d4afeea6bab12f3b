// Package disasm renders decoded RV32I instructions as assembly text,
// one instruction per call. The monitor front ends do not call it.
package disasm

/*
 * Grounded on S370's emu/disassemble package: a table mapping a
 * decoded field to a mnemonic string, applied to one instruction at a
 * time rather than as a batch pass over memory.
 */

import (
	"fmt"

	"github.com/rv32sim/rv32sim/isa"
)

var aluMnemonic = map[isa.AluFunc]string{
	isa.Add:  "add",
	isa.Sub:  "sub",
	isa.And:  "and",
	isa.Or:   "or",
	isa.Xor:  "xor",
	isa.Slt:  "slt",
	isa.Sltu: "sltu",
	isa.Sll:  "sll",
	isa.Srl:  "srl",
	isa.Sra:  "sra",
}

var brMnemonic = map[isa.BrFunc]string{
	isa.Eq:  "beq",
	isa.Neq: "bne",
	isa.Lt:  "blt",
	isa.Ge:  "bge",
	isa.Ltu: "bltu",
	isa.Geu: "bgeu",
}

// Reg formats a register index as its ABI-less x-name.
func Reg(index uint8) string {
	return fmt.Sprintf("x%d", index)
}

// Format renders a decoded instruction as an assembly mnemonic line.
// For Alu, HasImm selects the immediate ("addi") or register ("add")
// form, since the class covers both OP and OP-IMM. Raw is printed as a
// .word directive for any class without a mnemonic.
func Format(instr isa.Instruction) string {
	switch instr.Class {
	case isa.Alu:
		name := aluMnemonic[instr.AluFunc]
		if instr.HasImm {
			return fmt.Sprintf("%si %s, %s, %d", name, Reg(instr.Dest), Reg(instr.Src1), int32(instr.Imm))
		}
		return fmt.Sprintf("%s %s, %s, %s", name, Reg(instr.Dest), Reg(instr.Src1), Reg(instr.Src2))

	case isa.Br:
		return fmt.Sprintf("%s %s, %s, %d", brMnemonic[instr.BrFunc], Reg(instr.Src1), Reg(instr.Src2), int32(instr.Imm))

	case isa.J:
		return fmt.Sprintf("jal %s, %d", Reg(instr.Dest), int32(instr.Imm))

	case isa.Jr:
		return fmt.Sprintf("jalr %s, %s, %d", Reg(instr.Dest), Reg(instr.Src1), int32(instr.Imm))

	case isa.Ld:
		return fmt.Sprintf("lw %s, %d(%s)", Reg(instr.Dest), int32(instr.Imm), Reg(instr.Src1))

	case isa.St:
		return fmt.Sprintf("sw %s, %d(%s)", Reg(instr.Src2), int32(instr.Imm), Reg(instr.Src1))

	case isa.Auipc:
		return fmt.Sprintf("auipc %s, %#x", Reg(instr.Dest), instr.Imm>>12)

	case isa.Csrr:
		return fmt.Sprintf("csrr %s, %#x", Reg(instr.Dest), instr.Csr)

	case isa.Csrw:
		return fmt.Sprintf("csrw %#x, %s", instr.Csr, Reg(instr.Src1))

	default:
		return fmt.Sprintf(".word %#08x", instr.Raw)
	}
}
