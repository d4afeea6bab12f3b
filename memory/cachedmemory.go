package memory

/*
 * rv32sim - Two-level cached memory model.
 *
 * Grounded on the original C++ CachedMemory (Memory/CachedMemory.h):
 * same tag/line/wait-counter shape, reworked into S370's
 * Request/Poll-over-Tick idiom (compare emu/sys_channel's
 * StartIO/poll-driven status model) with an explicit state machine
 * instead of direct field mutation mid-call.
 */

import "github.com/rv32sim/rv32sim/isa"

const (
	// FetchMissLatency is the wait in cycles for a code-cache miss.
	FetchMissLatency = 152
	// FetchHitLatency is the wait in cycles for a code-cache hit.
	FetchHitLatency = 0
	// DataMissLatency is the wait in cycles for a data-cache miss.
	DataMissLatency = 152
	// DataHitLatency is the wait in cycles for a data-cache hit.
	DataHitLatency = 3
)

// CachedMemory is the façade the CPU talks to: it owns the code and
// data caches and exclusively references the backing Storage.
type CachedMemory struct {
	storage *Storage
	clock   seqClock

	code *codeCache
	data *dataCache

	// In-flight fetch request.
	fetchAddr    Word
	fetchTag     uint32
	fetchHit     bool
	fetchWait    int
	fetchPending bool

	// In-flight data request.
	dataAddr    Word
	dataTag     uint32
	dataHit     bool
	dataWait    int
	dataPending bool
}

type Word = isa.Word

// NewCachedMemory builds a cached memory model over storage with a
// fixed cache geometry: 8 code lines, 16 data lines.
func NewCachedMemory(storage *Storage) *CachedMemory {
	return &CachedMemory{
		storage: storage,
		code:    newCodeCache(CodeCacheLines),
		data:    newDataCache(DataCacheLines),
	}
}

// RequestFetch begins a code read at byte address addr, idempotently
// replacing any request already in flight.
func (m *CachedMemory) RequestFetch(addr Word) {
	tag := tagOf(addr)
	_, hit := m.code.lookup(tag)

	m.fetchAddr = addr
	m.fetchTag = tag
	m.fetchHit = hit
	m.fetchPending = true
	if hit {
		m.fetchWait = FetchHitLatency
	} else {
		m.fetchWait = FetchMissLatency
	}
}

// PollFetch returns the fetched word once the wait counter has reached
// zero, and an empty result otherwise.
func (m *CachedMemory) PollFetch() (Word, bool) {
	if !m.fetchPending || m.fetchWait > 0 {
		return 0, false
	}

	if m.fetchHit {
		line, _ := m.code.lookup(m.fetchTag)
		m.code.touch(m.fetchTag, m.clock.tick())
		m.fetchPending = false
		return line[lineOffset(m.fetchAddr)], true
	}

	word := m.storage.ReadWord(m.fetchAddr)

	var line Line
	base := lineAddr(m.fetchAddr)
	for i := range line {
		line[i] = m.storage.ReadWord(base + uint32(i)*4)
	}
	m.code.install(m.fetchTag, line, m.clock.tick())

	m.fetchPending = false
	return word, true
}

// RequestData begins a data access for Ld/St instructions; it is a
// no-op for any other instruction class.
func (m *CachedMemory) RequestData(instr *isa.Instruction) {
	if instr.Class != isa.Ld && instr.Class != isa.St {
		return
	}

	tag := tagOf(instr.Addr)
	_, hit := m.data.lookup(tag)

	m.dataAddr = instr.Addr
	m.dataTag = tag
	m.dataHit = hit
	m.dataPending = true
	if hit {
		m.dataWait = DataHitLatency
	} else {
		m.dataWait = DataMissLatency
	}
}

// PollData returns true immediately for non-memory instructions. For
// Ld/St it returns false until the wait counter reaches zero, then
// performs the access and returns true.
func (m *CachedMemory) PollData(instr *isa.Instruction) bool {
	if instr.Class != isa.Ld && instr.Class != isa.St {
		return true
	}
	if !m.dataPending || m.dataWait > 0 {
		return false
	}

	if !m.dataHit {
		m.fillDataLine(m.dataTag, m.dataAddr)
	}

	entry, _ := m.data.lookup(m.dataTag)
	offset := lineOffset(m.dataAddr)
	m.data.touch(m.dataTag, m.clock.tick())

	switch instr.Class {
	case isa.Ld:
		instr.Data = entry.line[offset]
	case isa.St:
		entry.line[offset] = instr.Data
		entry.clean = false
	}

	m.dataPending = false
	return true
}

// fillDataLine reads the line containing addr from storage and installs
// it in the data cache, writing back a dirty evicted line first.
//
// The original C++ source's code-cache miss path also erases the
// evicted tag from the data cache's map, as if the two caches shared a
// tag namespace. That has no sensible meaning here (see the open
// question in the design docs) and is deliberately not reproduced:
// the two caches are kept disjoint.
func (m *CachedMemory) fillDataLine(tag uint32, addr Word) {
	var line Line
	base := lineAddr(addr)
	for i := range line {
		line[i] = m.storage.ReadWord(base + uint32(i)*4)
	}

	evictedTag, evicted, didEvict := m.data.install(tag, line, m.clock.tick())
	if didEvict && !evicted.clean {
		m.writeBack(evictedTag, evicted.line)
	}
}

func (m *CachedMemory) writeBack(tag uint32, line Line) {
	base := tag * LineSizeBytes
	for i, w := range line {
		m.storage.WriteWord(base+uint32(i)*4, w)
	}
}

// Tick decrements the wait counters for any in-flight accesses.
func (m *CachedMemory) Tick() {
	if m.fetchPending && m.fetchWait > 0 {
		m.fetchWait--
	}
	if m.dataPending && m.dataWait > 0 {
		m.dataWait--
	}
}
