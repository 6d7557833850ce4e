// Package inspector implements an interactive terminal viewer for a
// running Cpu: step one pipeline phase at a time and watch registers,
// flags, IME and a page of bus memory update. The decoded instruction
// itself is not shown.
package inspector

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
	"golang.org/x/sync/errgroup"

	"dmgcore/cpu"
	"dmgcore/mem"
)

type model struct {
	cpu *cpu.Cpu
	bus *mem.Bus

	page   uint16 // start address of the memory page currently shown
	prevPC uint16
	err    error
	done   bool
}

// Init is the first function bubbletea calls. Nothing needs to run
// before the first keypress.
func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.done = true
			return m, tea.Quit

		case " ", "j":
			m.prevPC = m.cpu.PC
			if err := m.cpu.Step(m.bus); err != nil {
				m.err = err
				m.done = true
				return m, tea.Quit
			}

		case "p":
			m.page -= 0x10
		case "n":
			m.page += 0x10
		}
	}
	return m, nil
}

func (m model) renderPage(start uint16) string {
	s := fmt.Sprintf("%04x | ", start)
	for i := uint16(0); i < 16; i++ {
		b, ok := m.bus.Read(start + i)
		switch {
		case !ok:
			s += " --  "
		case start+i == m.cpu.PC:
			s += fmt.Sprintf("[%02x] ", b)
		default:
			s += fmt.Sprintf(" %02x  ", b)
		}
	}
	return s
}

func (m model) pageTable() string {
	header := "addr | "
	for b := range 16 {
		header += fmt.Sprintf("  %01x  ", b)
	}
	lines := []string{header}
	for row := uint16(0); row < 4; row++ {
		lines = append(lines, m.renderPage(m.page+row*16))
	}
	return strings.Join(lines, "\n")
}

func (m model) status() string {
	r := m.cpu.Registers
	flags := "znhc\n"
	for _, set := range []bool{r.Zero(), r.Subtract(), r.HalfCarry(), r.Carry()} {
		if set {
			flags += "1"
		} else {
			flags += "0"
		}
	}
	return fmt.Sprintf(`
PC: %04x (was %04x)
SP: %04x
A:%02x F:%02x
B:%02x C:%02x
D:%02x E:%02x
H:%02x L:%02x
IME: %v
`,
		m.cpu.PC, m.prevPC, m.cpu.SP,
		r.A, r.F, r.B, r.C, r.D, r.E, r.H, r.L,
		m.cpu.IME,
	) + flags
}

func (m model) View() string {
	if m.done && m.err != nil {
		return fmt.Sprintf("halted on error: %v\n", m.err)
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.pageTable(), m.status()),
		"",
		spew.Sdump(m.cpu.Registers),
	)
}

// Run starts the interactive TUI over cpu/bus, beginning at page 0 of
// the bus address space. It blocks until the user quits or the CPU hits
// a fatal decode fault.
func Run(ctx context.Context, c *cpu.Cpu, bus *mem.Bus) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)
	p := tea.NewProgram(model{cpu: c, bus: bus})

	g.Go(func() error {
		_, err := p.Run()
		cancel()
		return err
	})
	g.Go(func() error {
		<-ctx.Done()
		p.Quit()
		return ctx.Err()
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
