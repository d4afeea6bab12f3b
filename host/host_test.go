package host

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rv32sim/rv32sim/isa"
)

func TestDispatcherExitCodeZeroReportsPassed(t *testing.T) {
	var buf bytes.Buffer
	d := NewDispatcher(&buf)
	d.Handle(isa.HostMessage{Kind: isa.ExitCode, Data: 0})

	if !d.Exited || d.ExitCode != 0 {
		t.Fatalf("exited=%v exitCode=%d, want true/0", d.Exited, d.ExitCode)
	}
	if !strings.Contains(buf.String(), "PASSED") {
		t.Fatalf("output = %q, want it to contain PASSED", buf.String())
	}
}

func TestDispatcherExitCodeNonZeroReportsFailed(t *testing.T) {
	var buf bytes.Buffer
	d := NewDispatcher(&buf)
	d.Handle(isa.HostMessage{Kind: isa.ExitCode, Data: 3})

	if !d.Exited || d.ExitCode != 3 {
		t.Fatalf("exited=%v exitCode=%d, want true/3", d.Exited, d.ExitCode)
	}
	if !strings.Contains(buf.String(), "FAILED") {
		t.Fatalf("output = %q, want it to contain FAILED", buf.String())
	}
}

func TestDispatcherPrintChar(t *testing.T) {
	var buf bytes.Buffer
	d := NewDispatcher(&buf)
	d.Handle(isa.HostMessage{Kind: isa.PrintChar, Data: 'A'})
	if buf.String() != "A" {
		t.Fatalf("got %q, want %q", buf.String(), "A")
	}
}

func TestDispatcherPrintIntAssemblesHighAndLowHalves(t *testing.T) {
	var buf bytes.Buffer
	d := NewDispatcher(&buf)
	d.Handle(isa.HostMessage{Kind: isa.PrintIntLow, Data: 0x0002})
	if buf.String() != "" {
		t.Fatalf("low half alone should not print, got %q", buf.String())
	}
	d.Handle(isa.HostMessage{Kind: isa.PrintIntHigh, Data: 0x0001})
	if buf.String() != "65538" {
		t.Fatalf("got %q, want %q", buf.String(), "65538")
	}
}
