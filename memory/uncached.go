package memory

/*
 * Uncached variant, included per design note 3: unused by the CLI's
 * default configuration but kept because it implements the same
 * Request/Poll contract as CachedMemory with a single flat reference
 * latency, grounded directly on the original UncachedMem.h.
 */

import "github.com/rv32sim/rv32sim/isa"

// UncachedLatency is the reference latency, in cycles, for every
// access through UncachedMemory.
const UncachedLatency = 120

// UncachedMemory services fetch and load/store requests with a single
// flat latency and no caching. It implements the same contract as
// CachedMemory and can be substituted for it wherever the CPU only
// needs a *Memory-shaped dependency.
type UncachedMemory struct {
	storage *Storage

	requested Word
	wait      int
	pending   bool

	dataRequested Word
	dataWait      int
	dataPending   bool
}

// NewUncachedMemory builds an uncached memory model over storage.
func NewUncachedMemory(storage *Storage) *UncachedMemory {
	return &UncachedMemory{storage: storage}
}

func (m *UncachedMemory) RequestFetch(addr Word) {
	m.requested = addr
	m.wait = UncachedLatency
	m.pending = true
}

func (m *UncachedMemory) PollFetch() (Word, bool) {
	if !m.pending || m.wait > 0 {
		return 0, false
	}
	m.pending = false
	return m.storage.ReadWord(m.requested), true
}

func (m *UncachedMemory) RequestData(instr *isa.Instruction) {
	if instr.Class != isa.Ld && instr.Class != isa.St {
		return
	}
	m.dataRequested = instr.Addr
	m.dataWait = UncachedLatency
	m.dataPending = true
}

func (m *UncachedMemory) PollData(instr *isa.Instruction) bool {
	if instr.Class != isa.Ld && instr.Class != isa.St {
		return true
	}
	if !m.dataPending || m.dataWait > 0 {
		return false
	}

	switch instr.Class {
	case isa.Ld:
		instr.Data = m.storage.ReadWord(m.dataRequested)
	case isa.St:
		m.storage.WriteWord(m.dataRequested, instr.Data)
	}

	m.dataPending = false
	return true
}

func (m *UncachedMemory) Tick() {
	if m.pending && m.wait > 0 {
		m.wait--
	}
	if m.dataPending && m.dataWait > 0 {
		m.dataWait--
	}
}
