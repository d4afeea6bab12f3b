package loader

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/rv32sim/rv32sim/memory"
)

// buildMinimalElf32 hand-assembles a stripped ELF32 little-endian
// executable with a single PT_LOAD segment, since there is no linker
// available to produce one. filesz bytes of segData are copied from
// the file image; the remaining memsz-filesz bytes must come out zero.
func buildMinimalElf32(t *testing.T, entry, paddr uint32, segData []byte, memsz uint32) string {
	t.Helper()

	const ehsize = 52
	const phentsize = 32
	dataOff := uint32(ehsize + phentsize)

	buf := make([]byte, dataOff+uint32(len(segData)))

	// e_ident
	copy(buf[0:4], []byte{0x7f, 'E', 'L', 'F'})
	buf[4] = 1 // ELFCLASS32
	buf[5] = 1 // ELFDATA2LSB
	buf[6] = 1 // EV_CURRENT

	le := binary.LittleEndian
	le.PutUint16(buf[16:], 2)              // e_type = ET_EXEC
	le.PutUint16(buf[18:], 0xf3)           // e_machine (RISC-V, informational only)
	le.PutUint32(buf[20:], 1)              // e_version
	le.PutUint32(buf[24:], entry)          // e_entry
	le.PutUint32(buf[28:], ehsize)         // e_phoff
	le.PutUint32(buf[32:], 0)              // e_shoff
	le.PutUint32(buf[36:], 0)              // e_flags
	le.PutUint16(buf[40:], ehsize)         // e_ehsize
	le.PutUint16(buf[42:], phentsize)      // e_phentsize
	le.PutUint16(buf[44:], 1)              // e_phnum
	le.PutUint16(buf[46:], 0)              // e_shentsize
	le.PutUint16(buf[48:], 0)              // e_shnum
	le.PutUint16(buf[50:], 0)              // e_shstrndx

	ph := buf[ehsize : ehsize+phentsize]
	le.PutUint32(ph[0:], 1)               // p_type = PT_LOAD
	le.PutUint32(ph[4:], dataOff)         // p_offset
	le.PutUint32(ph[8:], paddr)           // p_vaddr
	le.PutUint32(ph[12:], paddr)          // p_paddr
	le.PutUint32(ph[16:], uint32(len(segData))) // p_filesz
	le.PutUint32(ph[20:], memsz)          // p_memsz
	le.PutUint32(ph[24:], 7)              // p_flags = RWX
	le.PutUint32(ph[28:], 4)              // p_align

	copy(buf[dataOff:], segData)

	path := filepath.Join(t.TempDir(), "test.elf")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("writing test ELF: %v", err)
	}
	return path
}

func TestLoadCopiesSegmentAndZeroFillsRemainder(t *testing.T) {
	segData := []byte{0xef, 0xbe, 0xad, 0xde, 0x01, 0x02, 0x03, 0x04}
	path := buildMinimalElf32(t, 0x1000, 0x1000, segData, 16)

	storage := memory.NewStorage()
	storage.WriteWord(0x1008, 0xffffffff) // will be zero-filled
	storage.WriteWord(0x100c, 0xffffffff)

	entry, err := Load(path, storage)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if entry != 0x1000 {
		t.Fatalf("entry = %#x, want 0x1000", entry)
	}
	if got := storage.ReadWord(0x1000); got != 0xdeadbeef {
		t.Fatalf("got %#x, want 0xdeadbeef", got)
	}
	if got := storage.ReadWord(0x1008); got != 0 {
		t.Fatalf("memsz-filesz remainder not zero-filled: got %#x", got)
	}
	if got := storage.ReadWord(0x100c); got != 0 {
		t.Fatalf("memsz-filesz remainder not zero-filled: got %#x", got)
	}
}

func TestLoadRejectsSegmentOverflowingAddressSpace(t *testing.T) {
	segData := []byte{1, 2, 3, 4}
	path := buildMinimalElf32(t, 0, 0xffffffff, segData, 4)

	storage := memory.NewStorage()
	if _, err := Load(path, storage); err == nil {
		t.Fatalf("expected an error for a segment overflowing the address space")
	}
}
