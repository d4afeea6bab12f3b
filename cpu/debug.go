package cpu

/*
 * Grounded on S370's per-package Debug(string) hook (emu/cpu/cpu.go's
 * debug option table) but backing a single package level mask instead
 * of a per-device one, since a hart has no device hierarchy to scope
 * it to.
 */

import (
	"fmt"
	"log/slog"
)

// Debug flag bits, set by name through Debug and consulted by Tracef.
const (
	DebugInstr = 1 << iota
	DebugCsr
	DebugMem
)

var debugMask int

var debugNames = map[string]int{
	"INSTR": DebugInstr,
	"CSR":   DebugCsr,
	"MEM":   DebugMem,
}

// Debug enables a named trace category ("INSTR", "CSR" or "MEM").
func Debug(name string) error {
	bit, ok := debugNames[name]
	if !ok {
		return fmt.Errorf("cpu: unknown debug option %q", name)
	}
	debugMask |= bit
	return nil
}

// Tracef logs at debug level if mask is currently enabled.
func Tracef(mask int, format string, args ...interface{}) {
	if debugMask&mask != 0 {
		slog.Debug(fmt.Sprintf(format, args...))
	}
}
