package memory

import "testing"

func TestStorageReadWriteRoundtrip(t *testing.T) {
	s := NewStorage()
	s.WriteWord(0x100, 0x12345678)
	if got := s.ReadWord(0x100); got != 0x12345678 {
		t.Fatalf("got %#x, want 0x12345678", got)
	}
}

func TestStorageWriteBytesUnaligned(t *testing.T) {
	s := NewStorage()
	s.WriteWord(0x200, 0)
	s.WriteBytes(0x201, []byte{0xaa, 0xbb})
	got := s.ReadWord(0x200)
	want := uint32(0x0000bbaa << 8)
	if got != want {
		t.Fatalf("got %#08x, want %#08x", got, want)
	}
}

func TestStorageZero(t *testing.T) {
	s := NewStorage()
	s.WriteWord(0x300, 0xffffffff)
	s.Zero(0x300, 4)
	if got := s.ReadWord(0x300); got != 0 {
		t.Fatalf("got %#x, want 0", got)
	}
}

func TestStorageOutOfBoundsPanics(t *testing.T) {
	s := NewStorage()
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic for out-of-bounds access")
		} else if _, ok := r.(OutOfBoundsError); !ok {
			t.Fatalf("expected OutOfBoundsError, got %T", r)
		}
	}()
	s.ReadWord(s.Size())
}
