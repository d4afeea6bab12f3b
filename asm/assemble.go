// Package asm builds raw RV32I instruction words from their fields, for
// constructing test programs without an external toolchain.
package asm

/*
 * Grounded in spirit on S370's emu/assemble package (a table of
 * mnemonic-to-encoding builder functions used by its test suite to
 * construct instruction streams by hand); re-expressed here against
 * the RV32I base encoding rather than S/370's variable-length formats.
 */

import "github.com/rv32sim/rv32sim/isa"

func rType(opcode, funct3, rd, rs1, rs2, funct7 uint32) isa.Word {
	return funct7<<25 | rs2<<20 | rs1<<15 | funct3<<12 | rd<<7 | opcode
}

func iType(opcode, funct3, rd, rs1 uint32, imm int32) isa.Word {
	return uint32(imm)<<20 | rs1<<15 | funct3<<12 | rd<<7 | opcode
}

func sType(opcode, funct3, rs1, rs2 uint32, imm int32) isa.Word {
	u := uint32(imm)
	return (u>>5)<<25 | rs2<<20 | rs1<<15 | funct3<<12 | (u&0x1f)<<7 | opcode
}

func bType(opcode, funct3, rs1, rs2 uint32, imm int32) isa.Word {
	u := uint32(imm)
	return ((u>>12)&1)<<31 | ((u>>5)&0x3f)<<25 | rs2<<20 | rs1<<15 | funct3<<12 |
		((u>>1)&0xf)<<8 | ((u>>11)&1)<<7 | opcode
}

func uType(opcode, rd uint32, imm uint32) isa.Word {
	return (imm &^ 0xfff) | rd<<7 | opcode
}

func jType(opcode, rd uint32, imm int32) isa.Word {
	u := uint32(imm)
	return ((u>>20)&1)<<31 | ((u>>1)&0x3ff)<<21 | ((u>>11)&1)<<20 | ((u>>12)&0xff)<<12 | rd<<7 | opcode
}

// Register-register ALU.
func Add(rd, rs1, rs2 uint32) isa.Word  { return rType(0x33, 0b000, rd, rs1, rs2, 0x00) }
func Sub(rd, rs1, rs2 uint32) isa.Word  { return rType(0x33, 0b000, rd, rs1, rs2, 0x20) }
func And(rd, rs1, rs2 uint32) isa.Word  { return rType(0x33, 0b111, rd, rs1, rs2, 0x00) }
func Or(rd, rs1, rs2 uint32) isa.Word   { return rType(0x33, 0b110, rd, rs1, rs2, 0x00) }
func Xor(rd, rs1, rs2 uint32) isa.Word  { return rType(0x33, 0b100, rd, rs1, rs2, 0x00) }
func Slt(rd, rs1, rs2 uint32) isa.Word  { return rType(0x33, 0b010, rd, rs1, rs2, 0x00) }
func Sltu(rd, rs1, rs2 uint32) isa.Word { return rType(0x33, 0b011, rd, rs1, rs2, 0x00) }
func Sll(rd, rs1, rs2 uint32) isa.Word  { return rType(0x33, 0b001, rd, rs1, rs2, 0x00) }
func Srl(rd, rs1, rs2 uint32) isa.Word  { return rType(0x33, 0b101, rd, rs1, rs2, 0x00) }
func Sra(rd, rs1, rs2 uint32) isa.Word  { return rType(0x33, 0b101, rd, rs1, rs2, 0x20) }

// Register-immediate ALU.
func Addi(rd, rs1 uint32, imm int32) isa.Word  { return iType(0x13, 0b000, rd, rs1, imm) }
func Andi(rd, rs1 uint32, imm int32) isa.Word  { return iType(0x13, 0b111, rd, rs1, imm) }
func Ori(rd, rs1 uint32, imm int32) isa.Word   { return iType(0x13, 0b110, rd, rs1, imm) }
func Xori(rd, rs1 uint32, imm int32) isa.Word  { return iType(0x13, 0b100, rd, rs1, imm) }
func Slti(rd, rs1 uint32, imm int32) isa.Word  { return iType(0x13, 0b010, rd, rs1, imm) }
func Sltiu(rd, rs1 uint32, imm int32) isa.Word { return iType(0x13, 0b011, rd, rs1, imm) }
func Slli(rd, rs1, shamt uint32) isa.Word      { return iType(0x13, 0b001, rd, rs1, int32(shamt&0x1f)) }
func Srli(rd, rs1, shamt uint32) isa.Word      { return iType(0x13, 0b101, rd, rs1, int32(shamt&0x1f)) }
func Srai(rd, rs1, shamt uint32) isa.Word {
	return iType(0x13, 0b101, rd, rs1, int32((0x20<<5)|(shamt&0x1f)))
}

// Loads and stores.
func Lw(rd, rs1 uint32, imm int32) isa.Word { return iType(0x03, 0b010, rd, rs1, imm) }
func Sw(rs1, rs2 uint32, imm int32) isa.Word { return sType(0x23, 0b010, rs1, rs2, imm) }

// Branches.
func Beq(rs1, rs2 uint32, imm int32) isa.Word  { return bType(0x63, 0b000, rs1, rs2, imm) }
func Bne(rs1, rs2 uint32, imm int32) isa.Word  { return bType(0x63, 0b001, rs1, rs2, imm) }
func Blt(rs1, rs2 uint32, imm int32) isa.Word  { return bType(0x63, 0b100, rs1, rs2, imm) }
func Bge(rs1, rs2 uint32, imm int32) isa.Word  { return bType(0x63, 0b101, rs1, rs2, imm) }
func Bltu(rs1, rs2 uint32, imm int32) isa.Word { return bType(0x63, 0b110, rs1, rs2, imm) }
func Bgeu(rs1, rs2 uint32, imm int32) isa.Word { return bType(0x63, 0b111, rs1, rs2, imm) }

// Jumps.
func Jal(rd uint32, imm int32) isa.Word        { return jType(0x6f, rd, imm) }
func Jalr(rd, rs1 uint32, imm int32) isa.Word  { return iType(0x67, 0b000, rd, rs1, imm) }

// Upper immediates.
func Lui(rd uint32, imm uint32) isa.Word   { return uType(0x37, rd, imm) }
func Auipc(rd uint32, imm uint32) isa.Word { return uType(0x17, rd, imm) }

// CSR pseudo-ops: csrr expands to CSRRS rd, csr, x0; csrw expands to
// CSRRW x0, csr, rs1. These are the only two CSR forms this simulator
// decodes.
func Csrr(rd uint32, csr uint32) isa.Word      { return iType(0x73, 0b010, rd, 0, int32(csr)) }
func Csrw(rs1 uint32, csr uint32) isa.Word     { return iType(0x73, 0b001, 0, rs1, int32(csr)) }
