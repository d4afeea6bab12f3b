// Package core runs the hart-and-memory tick loop and drains host
// messages until the guest signals exit.
package core

/*
 * Adapted from S370's emu/core goroutine/channel loop (core.Start),
 * simplified down to this simulator's single-threaded synchronous
 * model: there is one hart, one memory model and no external event
 * queue, so S370's done-channel and packet dispatch collapse into a
 * plain for loop.
 */

import (
	"context"

	"github.com/rv32sim/rv32sim/cpu"
	"github.com/rv32sim/rv32sim/host"
	"github.com/rv32sim/rv32sim/memory"
)

// Machine wires a CpuCore to its Memory and a host.Dispatcher, and
// drives them one cycle at a time.
type Machine struct {
	CPU    *cpu.CpuCore
	Mem    memory.Memory
	Host   *host.Dispatcher
	Cycles uint64
}

// NewMachine builds a Machine ready to Run once the CPU has been reset.
func NewMachine(c *cpu.CpuCore, mem memory.Memory, h *host.Dispatcher) *Machine {
	return &Machine{CPU: c, Mem: mem, Host: h}
}

// Run ticks the machine until the guest writes the exit-code CSR or
// ctx is canceled, returning the guest's reported exit code.
func (m *Machine) Run(ctx context.Context) (int32, error) {
	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		m.CPU.Tick()
		m.Cycles++

		for {
			msg, ok := m.CPU.Csrs.GetMessage()
			if !ok {
				break
			}
			m.Host.Handle(msg)
		}

		if m.Host.Exited {
			return m.Host.ExitCode, nil
		}
	}
}
