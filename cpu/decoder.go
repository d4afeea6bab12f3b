package cpu

/*
 * RV32I bit-field decode. The original reference simulator's Decoder
 * did not survive into the sources kept alongside this repository
 * (only Cpu.h, Executor.h and the memory headers did); this is
 * grounded on the RV32I base ISA encoding itself plus S370's habit of
 * a single opcode-dispatch table per instruction family (see
 * emu/cpu/cpu.go's createTable / cpu_standard.go's per-opcode
 * handlers) re-expressed as straight bit-field extraction, which is
 * the idiomatic shape for a fixed 32-bit instruction word.
 *
 * The CSR surface is intentionally narrow, covering only host
 * communication: CSRRS with the destination wired up decodes to a
 * pure CSR-read (the encoding real RISC-V assemblers emit for the
 * "csrr" pseudo-instruction) and CSRRW decodes to a pure CSR-write
 * ("csrw"). The read-modify-write and immediate CSR forms are out of
 * scope and decode as a no-op ALU instruction.
 */

import "github.com/rv32sim/rv32sim/isa"

const (
	opLoad   = 0x03
	opStore  = 0x23
	opOpImm  = 0x13
	opOp     = 0x33
	opBranch = 0x63
	opJalr   = 0x67
	opJal    = 0x6f
	opLui    = 0x37
	opAuipc  = 0x17
	opSystem = 0x73
)

// Decoder turns a fetched word into an Instruction. It holds no state.
type Decoder struct{}

// Decode extracts instruction fields from word and classifies the
// instruction into its Class.
func (Decoder) Decode(word isa.Word) isa.Instruction {
	opcode := word & 0x7f
	rd := uint8((word >> 7) & 0x1f)
	funct3 := (word >> 12) & 0x7
	rs1 := uint8((word >> 15) & 0x1f)
	rs2 := uint8((word >> 20) & 0x1f)
	funct7 := (word >> 25) & 0x7f

	instr := isa.Instruction{Raw: word}

	switch opcode {
	case opLui:
		instr.Class = isa.Alu
		instr.AluFunc = isa.Add
		instr.HasSrc1 = true
		instr.Src1 = 0
		instr.HasImm = true
		instr.Imm = uImm(word)
		instr.HasDest = true
		instr.Dest = rd

	case opAuipc:
		instr.Class = isa.Auipc
		instr.HasImm = true
		instr.Imm = uImm(word)
		instr.HasDest = true
		instr.Dest = rd

	case opJal:
		instr.Class = isa.J
		instr.BrFunc = isa.AT
		instr.HasImm = true
		instr.Imm = jImm(word)
		instr.HasDest = true
		instr.Dest = rd

	case opJalr:
		instr.Class = isa.Jr
		instr.BrFunc = isa.AT
		instr.HasSrc1 = true
		instr.Src1 = rs1
		instr.HasImm = true
		instr.Imm = iImm(word)
		instr.HasDest = true
		instr.Dest = rd

	case opBranch:
		instr.Class = isa.Br
		instr.BrFunc = branchFunc(funct3)
		instr.HasSrc1 = true
		instr.Src1 = rs1
		instr.HasSrc2 = true
		instr.Src2 = rs2
		instr.HasImm = true
		instr.Imm = bImm(word)

	case opLoad:
		instr.Class = isa.Ld
		instr.AluFunc = isa.Add
		instr.HasSrc1 = true
		instr.Src1 = rs1
		instr.HasImm = true
		instr.Imm = iImm(word)
		instr.HasDest = true
		instr.Dest = rd

	case opStore:
		instr.Class = isa.St
		instr.AluFunc = isa.Add
		instr.HasSrc1 = true
		instr.Src1 = rs1
		instr.HasSrc2 = true
		instr.Src2 = rs2
		instr.HasImm = true
		instr.Imm = sImm(word)

	case opOpImm:
		instr.Class = isa.Alu
		instr.AluFunc = opImmFunc(funct3, word)
		instr.HasSrc1 = true
		instr.Src1 = rs1
		instr.HasImm = true
		instr.Imm = iImm(word)
		instr.HasDest = true
		instr.Dest = rd

	case opOp:
		instr.Class = isa.Alu
		instr.AluFunc = opFunc(funct3, funct7)
		instr.HasSrc1 = true
		instr.Src1 = rs1
		instr.HasSrc2 = true
		instr.Src2 = rs2
		instr.HasDest = true
		instr.Dest = rd

	case opSystem:
		decodeSystem(&instr, funct3, rs1, rd, word)

	default:
		// Unknown opcode: treated as a no-op rather than failing the
		// simulation, so a guest image carrying an unsupported
		// encoding runs past it instead of aborting outright.
		instr.Class = isa.Alu
	}

	return instr
}

func decodeSystem(instr *isa.Instruction, funct3 uint32, rs1, rd uint8, word isa.Word) {
	csr := uint16(word >> 20)
	switch funct3 {
	case 0b010: // CSRRS -> pure CSR read ("csrr" pseudo-op encoding)
		instr.Class = isa.Csrr
		instr.HasCsr = true
		instr.Csr = csr
		instr.HasDest = true
		instr.Dest = rd
	case 0b001: // CSRRW -> pure CSR write ("csrw" pseudo-op encoding)
		instr.Class = isa.Csrw
		instr.HasCsr = true
		instr.Csr = csr
		instr.HasSrc1 = true
		instr.Src1 = rs1
	default:
		// CSRRC and the *I immediate variants are out of scope for
		// this CSR surface; decode as a no-op.
		instr.Class = isa.Alu
	}
}

func branchFunc(funct3 uint32) isa.BrFunc {
	switch funct3 {
	case 0b000:
		return isa.Eq
	case 0b001:
		return isa.Neq
	case 0b100:
		return isa.Lt
	case 0b101:
		return isa.Ge
	case 0b110:
		return isa.Ltu
	case 0b111:
		return isa.Geu
	default:
		return isa.NT
	}
}

func opImmFunc(funct3 uint32, word isa.Word) isa.AluFunc {
	switch funct3 {
	case 0b000:
		return isa.Add
	case 0b010:
		return isa.Slt
	case 0b011:
		return isa.Sltu
	case 0b100:
		return isa.Xor
	case 0b110:
		return isa.Or
	case 0b111:
		return isa.And
	case 0b001:
		return isa.Sll
	case 0b101:
		if (word>>25)&0x7f == 0x20 {
			return isa.Sra
		}
		return isa.Srl
	default:
		return isa.Add
	}
}

func opFunc(funct3, funct7 uint32) isa.AluFunc {
	switch funct3 {
	case 0b000:
		if funct7 == 0x20 {
			return isa.Sub
		}
		return isa.Add
	case 0b001:
		return isa.Sll
	case 0b010:
		return isa.Slt
	case 0b011:
		return isa.Sltu
	case 0b100:
		return isa.Xor
	case 0b101:
		if funct7 == 0x20 {
			return isa.Sra
		}
		return isa.Srl
	case 0b110:
		return isa.Or
	case 0b111:
		return isa.And
	default:
		return isa.Add
	}
}

// iImm sign-extends the 12-bit I-type immediate (bits 31:20).
func iImm(word isa.Word) isa.Word {
	return signExtend(word>>20, 12)
}

// sImm assembles and sign-extends the S-type immediate.
func sImm(word isa.Word) isa.Word {
	imm := ((word >> 25) << 5) | ((word >> 7) & 0x1f)
	return signExtend(imm, 12)
}

// bImm assembles and sign-extends the B-type immediate (even offsets
// only; bit 0 is always 0).
func bImm(word isa.Word) isa.Word {
	imm := (((word >> 31) & 0x1) << 12) |
		(((word >> 7) & 0x1) << 11) |
		(((word >> 25) & 0x3f) << 5) |
		(((word >> 8) & 0xf) << 1)
	return signExtend(imm, 13)
}

// uImm returns the U-type immediate already shifted into bits 31:12.
func uImm(word isa.Word) isa.Word {
	return word &^ 0xfff
}

// jImm assembles and sign-extends the J-type immediate.
func jImm(word isa.Word) isa.Word {
	imm := (((word >> 31) & 0x1) << 20) |
		(((word >> 12) & 0xff) << 12) |
		(((word >> 20) & 0x1) << 11) |
		(((word >> 21) & 0x3ff) << 1)
	return signExtend(imm, 21)
}

// signExtend sign-extends the low bits-wide field of v to a full
// 32-bit two's complement value.
func signExtend(v isa.Word, bits uint) isa.Word {
	shift := 32 - bits
	return isa.Word(int32(v<<shift) >> shift)
}
