// Package host drains a CPU's outbound CSR message queue and turns it
// into process-visible output: the exit code, and the two kinds of
// guest-initiated console printing.
package host

/*
 * Grounded on the original C++ main()'s message loop (Sources/src/main.cpp):
 * ExitCode writes PASSED/FAILED to stderr and ends the run; PrintChar
 * writes one character; PrintIntLow/PrintIntHigh assemble a 32-bit
 * value across two CSR writes and print it once the high half lands.
 * Re-expressed against S370's habit of a small stateful struct per
 * device (emu/sys_channel) rather than the original's loose local in
 * main().
 */

import (
	"fmt"
	"io"

	"github.com/rv32sim/rv32sim/isa"
)

// Dispatcher turns host messages into writes against an output stream,
// and reports whether the guest has asked the simulation to stop.
type Dispatcher struct {
	out      io.Writer
	printInt int32

	Exited   bool
	ExitCode int32
}

// NewDispatcher returns a Dispatcher writing to out.
func NewDispatcher(out io.Writer) *Dispatcher {
	return &Dispatcher{out: out}
}

// Handle processes one host message.
func (d *Dispatcher) Handle(msg isa.HostMessage) {
	switch msg.Kind {
	case isa.ExitCode:
		d.Exited = true
		d.ExitCode = int32(msg.Data)
		if d.ExitCode == 0 {
			fmt.Fprintln(d.out, "PASSED")
		} else {
			fmt.Fprintf(d.out, "FAILED: exit code = %d\n", d.ExitCode)
		}

	case isa.PrintChar:
		fmt.Fprintf(d.out, "%c", rune(msg.Data))

	case isa.PrintIntLow:
		d.printInt = int32(msg.Data)

	case isa.PrintIntHigh:
		d.printInt |= int32(msg.Data) << 16
		fmt.Fprintf(d.out, "%d", d.printInt)
	}
}
