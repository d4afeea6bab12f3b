package isa

// Host-communication CSRs. These sit in the custom-0 CSR range
// (0x7C0-0x7FF) that the RISC-V privileged spec reserves for
// non-standard use, which is where a bare-metal test harness like this
// one's host channel belongs. CsrCycle/CsrInstret reuse the standard
// Zicsr read-only counter addresses so a guest program can observe
// timing the ordinary way.
const (
	CsrExitCode    uint16 = 0x7c0
	CsrPrintChar   uint16 = 0x7c1
	CsrPrintIntLow uint16 = 0x7c2
	CsrPrintIntHi  uint16 = 0x7c3

	CsrCycle   uint16 = 0xc00
	CsrInstret uint16 = 0xc02
)

// HostMsgKind tags the four message kinds a guest can send the host by
// writing a host-communication CSR.
type HostMsgKind int

const (
	ExitCode HostMsgKind = iota
	PrintChar
	PrintIntLow
	PrintIntHigh
)

// HostMessage is one entry in the CSR file's outbound FIFO.
type HostMessage struct {
	Kind HostMsgKind
	Data Word
}
