// Package monitor provides interactive front ends onto a running
// Machine: a line-based REPL and a bubbletea TUI debugger.
package monitor

/*
 * Grounded on S370's bufio.NewReader(os.Stdin) command loop (its
 * main.go reads lines from stdin to drive the interactive S370
 * console) and its command/parser table-driven abbreviation matching,
 * simplified to this simulator's much smaller command set.
 */

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rv32sim/rv32sim/core"
	"github.com/rv32sim/rv32sim/cpu"
	"github.com/rv32sim/rv32sim/util/hex"
)

// REPL is a line-oriented debug console over a Machine.
type REPL struct {
	machine *core.Machine
	in      *bufio.Reader
	out     io.Writer
	quit    bool
}

// NewREPL builds a REPL reading commands from in and writing to out.
func NewREPL(m *core.Machine, in io.Reader, out io.Writer) *REPL {
	return &REPL{machine: m, in: bufio.NewReader(in), out: out}
}

// commands maps each accepted verb, including its shortest unambiguous
// abbreviation, to a handler.
var commands = map[string]func(*REPL, []string){
	"step":     (*REPL).cmdStep,
	"s":        (*REPL).cmdStep,
	"continue": (*REPL).cmdContinue,
	"c":        (*REPL).cmdContinue,
	"regs":     (*REPL).cmdRegs,
	"r":        (*REPL).cmdRegs,
	"quit":     (*REPL).cmdQuit,
	"q":        (*REPL).cmdQuit,
}

// Run reads and dispatches commands until EOF or "quit".
func (r *REPL) Run() {
	for !r.quit {
		fmt.Fprint(r.out, "(rv32sim) ")
		line, err := r.in.ReadString('\n')
		if err != nil {
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		handler, ok := commands[strings.ToLower(fields[0])]
		if !ok {
			fmt.Fprintf(r.out, "unknown command: %s\n", fields[0])
			continue
		}
		handler(r, fields[1:])
	}
}

func (r *REPL) cmdStep(args []string) {
	n := 1
	if len(args) > 0 {
		if v, err := strconv.Atoi(args[0]); err == nil {
			n = v
		}
	}
	for i := 0; i < n; i++ {
		r.machine.CPU.Tick()
		for {
			msg, ok := r.machine.CPU.Csrs.GetMessage()
			if !ok {
				break
			}
			r.machine.Host.Handle(msg)
		}
		if r.machine.Host.Exited {
			fmt.Fprintf(r.out, "exited with code %d\n", r.machine.Host.ExitCode)
			return
		}
	}
	fmt.Fprintf(r.out, "ip=%#08x state=%s\n", r.machine.CPU.IP(), r.machine.CPU.State())
}

func (r *REPL) cmdContinue(_ []string) {
	for !r.machine.Host.Exited {
		r.cmdStep(nil)
	}
}

func (r *REPL) cmdRegs(_ []string) {
	for i := 0; i < cpu.NumRegisters; i++ {
		var b strings.Builder
		hex.FormatWord(&b, []uint32{r.machine.CPU.Regs.Get(uint8(i))})
		fmt.Fprintf(r.out, "x%-2d=0x%s ", i, strings.TrimSpace(b.String()))
		if i%4 == 3 {
			fmt.Fprintln(r.out)
		}
	}
	var ip strings.Builder
	hex.FormatWord(&ip, []uint32{r.machine.CPU.IP()})
	fmt.Fprintf(r.out, "ip=0x%s\n", strings.TrimSpace(ip.String()))
}

func (r *REPL) cmdQuit(_ []string) {
	r.quit = true
}
