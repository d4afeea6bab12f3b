package memory

import "github.com/rv32sim/rv32sim/isa"

// Memory is the contract CpuCore drives: issue a fetch or data
// request, poll until it completes, and advance the wait counters one
// tick at a time. Both CachedMemory and UncachedMemory implement it.
type Memory interface {
	RequestFetch(addr Word)
	PollFetch() (Word, bool)
	RequestData(instr *isa.Instruction)
	PollData(instr *isa.Instruction) bool
	Tick()
}

var (
	_ Memory = (*CachedMemory)(nil)
	_ Memory = (*UncachedMemory)(nil)
)
