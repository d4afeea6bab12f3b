package cpu

import (
	"testing"

	"github.com/rv32sim/rv32sim/asm"
	"github.com/rv32sim/rv32sim/isa"
)

func TestDecodeAddRegisterForm(t *testing.T) {
	d := Decoder{}
	instr := d.Decode(asm.Add(5, 6, 7))
	if instr.Class != isa.Alu || instr.AluFunc != isa.Add {
		t.Fatalf("got class=%v func=%v, want Alu/Add", instr.Class, instr.AluFunc)
	}
	if instr.HasImm {
		t.Fatalf("register-register add should not carry an immediate")
	}
	if instr.Dest != 5 || instr.Src1 != 6 || instr.Src2 != 7 {
		t.Fatalf("bad register fields: dest=%d src1=%d src2=%d", instr.Dest, instr.Src1, instr.Src2)
	}
}

func TestDecodeAddiSignExtendsNegativeImmediate(t *testing.T) {
	d := Decoder{}
	instr := d.Decode(asm.Addi(1, 2, -1))
	if instr.Class != isa.Alu || instr.AluFunc != isa.Add || !instr.HasImm {
		t.Fatalf("unexpected decode: %+v", instr)
	}
	if int32(instr.Imm) != -1 {
		t.Fatalf("imm = %#x, want -1", instr.Imm)
	}
}

func TestDecodeLuiProducesAddFromX0(t *testing.T) {
	d := Decoder{}
	instr := d.Decode(asm.Lui(3, 0x10000))
	if instr.Class != isa.Alu || instr.AluFunc != isa.Add {
		t.Fatalf("lui should decode as add-from-x0, got %+v", instr)
	}
	if !instr.HasSrc1 || instr.Src1 != 0 {
		t.Fatalf("lui should read x0 as its source register")
	}
	if instr.Imm != 0x10000 {
		t.Fatalf("imm = %#x, want 0x10000", instr.Imm)
	}
}

func TestDecodeBranchFunctions(t *testing.T) {
	d := Decoder{}
	cases := []struct {
		word isa.Word
		want isa.BrFunc
	}{
		{asm.Beq(1, 2, 8), isa.Eq},
		{asm.Bne(1, 2, 8), isa.Neq},
		{asm.Blt(1, 2, 8), isa.Lt},
		{asm.Bge(1, 2, 8), isa.Ge},
		{asm.Bltu(1, 2, 8), isa.Ltu},
		{asm.Bgeu(1, 2, 8), isa.Geu},
	}
	for _, c := range cases {
		instr := d.Decode(c.word)
		if instr.Class != isa.Br || instr.BrFunc != c.want {
			t.Errorf("word %#08x: got class=%v brfunc=%v, want Br/%v", c.word, instr.Class, instr.BrFunc, c.want)
		}
	}
}

func TestDecodeJalAndJalr(t *testing.T) {
	d := Decoder{}

	jal := d.Decode(asm.Jal(1, 100))
	if jal.Class != isa.J || jal.BrFunc != isa.AT || jal.Dest != 1 || int32(jal.Imm) != 100 {
		t.Fatalf("bad jal decode: %+v", jal)
	}

	jalr := d.Decode(asm.Jalr(1, 2, -4))
	if jalr.Class != isa.Jr || jalr.BrFunc != isa.AT || jalr.Src1 != 2 || int32(jalr.Imm) != -4 {
		t.Fatalf("bad jalr decode: %+v", jalr)
	}
}

func TestDecodeLoadAndStore(t *testing.T) {
	d := Decoder{}

	lw := d.Decode(asm.Lw(1, 2, 16))
	if lw.Class != isa.Ld || lw.Src1 != 2 || int32(lw.Imm) != 16 || lw.Dest != 1 {
		t.Fatalf("bad lw decode: %+v", lw)
	}

	sw := d.Decode(asm.Sw(3, 4, -8))
	if sw.Class != isa.St || sw.Src1 != 3 || sw.Src2 != 4 || int32(sw.Imm) != -8 {
		t.Fatalf("bad sw decode: %+v", sw)
	}
}

func TestDecodeCsrPseudoOps(t *testing.T) {
	d := Decoder{}

	csrr := d.Decode(asm.Csrr(5, 0x7c0))
	if csrr.Class != isa.Csrr || csrr.Csr != 0x7c0 || csrr.Dest != 5 {
		t.Fatalf("bad csrr decode: %+v", csrr)
	}

	csrw := d.Decode(asm.Csrw(6, 0x7c0))
	if csrw.Class != isa.Csrw || csrw.Csr != 0x7c0 || csrw.Src1 != 6 {
		t.Fatalf("bad csrw decode: %+v", csrw)
	}
}

func TestDecodeUnknownOpcodeIsNoOp(t *testing.T) {
	d := Decoder{}
	instr := d.Decode(0x7f) // opcode bits all set, not a valid RV32I major opcode alone
	if instr.Class != isa.Alu || instr.HasSrc1 || instr.HasDest {
		t.Fatalf("expected inert no-op decode, got %+v", instr)
	}
}
