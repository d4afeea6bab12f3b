package monitor

/*
 * Grounded directly on hejops-gone's cpu/debugger.go: a bubbletea
 * model wrapping the running machine, lipgloss laying out register and
 * status panels side by side, go-spew dumping the CSR file's raw Go
 * value for inspection.
 */

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"github.com/rv32sim/rv32sim/core"
	"github.com/rv32sim/rv32sim/cpu"
	"github.com/rv32sim/rv32sim/util/hex"
)

type tuiModel struct {
	machine *core.Machine
	err     error
	message string
}

// Init performs no initial command; the machine arrives already reset.
func (m tuiModel) Init() tea.Cmd {
	return nil
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case " ", "j":
			if m.machine.Host.Exited {
				return m, nil
			}
			m.machine.CPU.Tick()
			for {
				hm, ok := m.machine.CPU.Csrs.GetMessage()
				if !ok {
					break
				}
				m.machine.Host.Handle(hm)
			}
			if m.machine.Host.Exited {
				m.message = fmt.Sprintf("exited with code %d", m.machine.Host.ExitCode)
			}
		}
	}
	return m, nil
}

func (m tuiModel) registers() string {
	var b strings.Builder
	for i := 0; i < cpu.NumRegisters; i++ {
		var word strings.Builder
		hex.FormatWord(&word, []uint32{m.machine.CPU.Regs.Get(uint8(i))})
		fmt.Fprintf(&b, "x%-2d 0x%s\n", i, strings.TrimSpace(word.String()))
	}
	return b.String()
}

func (m tuiModel) status() string {
	return fmt.Sprintf(
		"ip:    %#08x\nstate: %s\ncycle: %d\n\n%s",
		m.machine.CPU.IP(), m.machine.CPU.State(), m.machine.Cycles, m.message,
	)
}

func (m tuiModel) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.registers(), "   ", m.status()),
		"",
		spew.Sdump(m.machine.CPU.Csrs),
	)
}

// RunTUI starts the interactive bubbletea debugger over an already
// reset Machine. Space or j single-steps; q quits.
func RunTUI(mach *core.Machine) error {
	p := tea.NewProgram(tuiModel{machine: mach})
	_, err := p.Run()
	return err
}
