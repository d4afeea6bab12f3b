package cpu

/*
 * CsrFile plays the role S370 splits across its control registers
 * (sysCPU.cregs) and external-interrupt bookkeeping; the host-message
 * FIFO is new — S370 never needed a host-communication channel since
 * its console I/O runs over real channel devices (emu/sys_channel)
 * instead of CSR writes.
 */

import "github.com/rv32sim/rv32sim/isa"

// messageQueueCap bounds the host message FIFO; the host loop is
// expected to drain it every tick, so this is a generous safety
// margin rather than a working limit.
const messageQueueCap = 64

// CsrFile holds the CSR register file and the FIFO of host messages
// produced by writes to the host-communication CSRs.
type CsrFile struct {
	regs map[uint16]isa.Word

	cycle   isa.Word
	instret isa.Word

	messages []isa.HostMessage
}

// NewCsrFile returns a zeroed CSR file.
func NewCsrFile() *CsrFile {
	return &CsrFile{regs: make(map[uint16]isa.Word)}
}

// Read populates CsrVal from the instruction's CSR index.
func (c *CsrFile) Read(instr *isa.Instruction) {
	if !instr.HasCsr {
		return
	}
	instr.CsrVal = c.get(instr.Csr)
}

// Write commits instr.Data to the CSR index, enqueuing a host message
// if the CSR is one of the host-communication registers.
func (c *CsrFile) Write(instr *isa.Instruction) {
	if !instr.HasCsr {
		return
	}
	c.regs[instr.Csr] = instr.Data

	switch instr.Csr {
	case isa.CsrExitCode:
		c.enqueue(isa.HostMessage{Kind: isa.ExitCode, Data: instr.Data})
	case isa.CsrPrintChar:
		c.enqueue(isa.HostMessage{Kind: isa.PrintChar, Data: instr.Data})
	case isa.CsrPrintIntLow:
		c.enqueue(isa.HostMessage{Kind: isa.PrintIntLow, Data: instr.Data})
	case isa.CsrPrintIntHi:
		c.enqueue(isa.HostMessage{Kind: isa.PrintIntHigh, Data: instr.Data})
	}
}

func (c *CsrFile) get(index uint16) isa.Word {
	switch index {
	case isa.CsrCycle:
		return c.cycle
	case isa.CsrInstret:
		return c.instret
	default:
		return c.regs[index]
	}
}

func (c *CsrFile) enqueue(msg isa.HostMessage) {
	if len(c.messages) >= messageQueueCap {
		// Host loop has fallen behind; drop the oldest rather than
		// grow without bound.
		c.messages = c.messages[1:]
	}
	c.messages = append(c.messages, msg)
}

// GetMessage drains one pending host message, if any.
func (c *CsrFile) GetMessage() (isa.HostMessage, bool) {
	if len(c.messages) == 0 {
		return isa.HostMessage{}, false
	}
	msg := c.messages[0]
	c.messages = c.messages[1:]
	return msg, true
}

// InstructionExecuted bumps the retirement counter, backing the
// standard instret CSR.
func (c *CsrFile) InstructionExecuted() {
	c.instret++
}

// Clock advances the CSR file by one simulated cycle, backing the
// standard cycle CSR.
func (c *CsrFile) Clock() {
	c.cycle++
}

// Reset clears CSR state, timers and any pending host messages.
func (c *CsrFile) Reset() {
	c.regs = make(map[uint16]isa.Word)
	c.cycle = 0
	c.instret = 0
	c.messages = nil
}
