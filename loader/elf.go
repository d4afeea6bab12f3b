// Package loader populates a memory.Storage from an ELF executable.
package loader

/*
 * Grounded on the original C++ MemoryStorage::LoadElf / LoadElfSpecific
 * (Sources/src/Memory.h): walk the program header table, copy each
 * PT_LOAD segment's file image to its physical address, and zero-fill
 * the remainder of p_memsz. debug/elf does the header parsing here;
 * it is the standard library's dedicated answer for exactly this
 * format, so reimplementing program-header parsing by hand would only
 * be reinventing what's already the idiomatic choice.
 */

import (
	"debug/elf"
	"fmt"

	"github.com/rv32sim/rv32sim/memory"
)

// Load reads the ELF executable at path and copies its PT_LOAD segments
// into storage. It returns the entry point recorded in the ELF header;
// callers that want the simulator's fixed 0x200 entry (see Reset) may
// ignore it.
func Load(path string, storage *memory.Storage) (uint32, error) {
	f, err := elf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("loader: open %s: %w", path, err)
	}
	defer f.Close()

	if f.Class != elf.ELFCLASS32 && f.Class != elf.ELFCLASS64 {
		return 0, fmt.Errorf("loader: %s: unsupported ELF class %v", path, f.Class)
	}
	if f.ByteOrder.String() != "LittleEndian" {
		return 0, fmt.Errorf("loader: %s: only little-endian images are supported", path)
	}

	limit := storage.Size()

	for _, prog := range f.Progs {
		if prog.Type != elf.PT_LOAD || prog.Memsz == 0 {
			continue
		}
		if prog.Memsz < prog.Filesz {
			return 0, fmt.Errorf("loader: %s: segment file size exceeds memory size", path)
		}
		if prog.Paddr+prog.Memsz > uint64(limit) {
			return 0, fmt.Errorf("loader: %s: segment at %#x (size %d) overflows %d-byte address space",
				path, prog.Paddr, prog.Memsz, limit)
		}

		if prog.Filesz > 0 {
			data := make([]byte, prog.Filesz)
			if _, err := prog.ReadAt(data, 0); err != nil {
				return 0, fmt.Errorf("loader: %s: reading segment: %w", path, err)
			}
			storage.WriteBytes(uint32(prog.Paddr), data)
		}
		if prog.Memsz > prog.Filesz {
			storage.Zero(uint32(prog.Paddr+prog.Filesz), uint32(prog.Memsz-prog.Filesz))
		}
	}

	return uint32(f.Entry), nil
}
