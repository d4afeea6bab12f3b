package cpu

/*
 * CpuCore is the tick-driven instruction state machine, grounded on the
 * original C++ Cpu::tick() (Sources/src/Cpu.h) but reworked from its
 * mid-function resumption (the original re-enters a single function at
 * different points depending on what it's waiting on) into an explicit
 * state enum, the way S370's sysCPU drives its instruction cycle off an
 * explicit phase field rather than goroutine suspension.
 */

import (
	"github.com/rv32sim/rv32sim/isa"
	"github.com/rv32sim/rv32sim/memory"
)

// State names where in an instruction's life the core currently is.
type State int

const (
	Ready State = iota
	AwaitingFetch
	AwaitingData
)

func (s State) String() string {
	switch s {
	case Ready:
		return "Ready"
	case AwaitingFetch:
		return "AwaitingFetch"
	case AwaitingData:
		return "AwaitingData"
	default:
		return "Unknown"
	}
}

// CpuCore is one RV32I hart: registers, CSRs, and the in-flight
// instruction being fetched, decoded and executed against a Memory.
type CpuCore struct {
	Regs RegisterFile
	Csrs *CsrFile

	decoder  Decoder
	executor Executor
	mem      memory.Memory

	state State
	ip     isa.Word
	instr  isa.Instruction
	halted bool
}

// NewCpuCore wires a core against a backing Memory. Registers and CSRs
// start zeroed; call Reset to set an entry point.
func NewCpuCore(mem memory.Memory) *CpuCore {
	return &CpuCore{
		Csrs: NewCsrFile(),
		mem:  mem,
	}
}

// Reset clears CPU state and sets the instruction pointer to entry.
func (c *CpuCore) Reset(entry isa.Word) {
	c.Regs.Reset()
	c.Csrs.Reset()
	c.state = Ready
	c.ip = entry
	c.instr = isa.Instruction{}
	c.halted = false
}

// IP returns the current instruction pointer.
func (c *CpuCore) IP() isa.Word { return c.ip }

// State returns the core's current state-machine state.
func (c *CpuCore) State() State { return c.state }

// Halted reports whether the core has executed an exit-code CSR write.
func (c *CpuCore) Halted() bool { return c.halted }

// Tick advances the core by exactly one cycle: the CSR file's free-running
// counters always advance, then the core falls through as many of its
// phases as complete on this cycle.
//
//  1. Ready: issue a fetch request and move to AwaitingFetch, then fall
//     through to the fetch poll below rather than waiting for the next
//     Tick — a cache hit completes on the same cycle it was requested.
//  2. AwaitingFetch: poll the fetch; if it hasn't completed, stop here for
//     this cycle. Once it completes, decode, read registers and CSRs,
//     execute, issue the data request (a no-op for non-memory
//     instructions), move to AwaitingData, and fall through to the data
//     poll below.
//  3. AwaitingData: poll the data access; if it hasn't completed, stop here
//     for this cycle. Once it completes, write back registers and CSRs,
//     bump instret, advance ip, and return to Ready.
//
// An all-hit instruction (zero-wait fetch and data) therefore retires in
// the single Tick that issued its fetch, matching the one-tick-per-retire
// accounting the cycle CSR exposes to the guest.
func (c *CpuCore) Tick() {
	c.Csrs.Clock()
	c.mem.Tick()

	if c.halted {
		return
	}

	if c.state == Ready {
		c.mem.RequestFetch(c.ip)
		c.state = AwaitingFetch
	}

	if c.state == AwaitingFetch {
		word, ok := c.mem.PollFetch()
		if !ok {
			return
		}
		c.instr = c.decoder.Decode(word)
		c.Regs.Read(&c.instr)
		c.Csrs.Read(&c.instr)
		c.executor.Execute(&c.instr, c.ip)
		c.mem.RequestData(&c.instr)
		c.state = AwaitingData
	}

	if c.state == AwaitingData {
		if !c.mem.PollData(&c.instr) {
			return
		}
		c.Regs.Write(&c.instr)
		c.Csrs.Write(&c.instr)
		c.Csrs.InstructionExecuted()

		Tracef(DebugInstr, "ip=%#08x class=%s data=%#08x next=%#08x", c.ip, c.instr.Class, c.instr.Data, c.instr.NextIP)

		if c.instr.HasCsr && c.instr.Class == isa.Csrw && c.instr.Csr == isa.CsrExitCode {
			c.halted = true
		}

		c.ip = c.instr.NextIP
		c.state = Ready
	}
}
