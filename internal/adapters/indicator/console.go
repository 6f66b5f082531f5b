package indicator

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/vinwatch/vinwatch/internal/domain"
	"github.com/vinwatch/vinwatch/internal/ports"
)

var (
	styleGreen  = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	styleYellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	styleRed    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	styleDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleFault  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Reverse(true)
)

// Console renders the lamp row and a 16-column display segment, the bench
// stand-in for the node's LED trio and 16x2 LCD. The last rendered line is
// cached so an unchanged state writes nothing.
type Console struct {
	out  io.Writer
	last string
}

func NewConsole(out io.Writer) *Console {
	if out == nil {
		out = os.Stdout
	}
	return &Console{out: out}
}

func (c *Console) Show(state domain.OperatingState, r domain.Reading) {
	line := fmt.Sprintf("%s  %-16s", c.lamps(state), fmt.Sprintf("%s %.1f C", state, r.Celsius))
	c.write(line)
}

func (c *Console) ShowFault() {
	c.write(styleFault.Render(" SENSOR FAULT ") + "  " + styleDim.Render("retrying"))
}

func (c *Console) write(line string) {
	if line == c.last {
		return
	}
	fmt.Fprintln(c.out, line)
	c.last = line
}

func (c *Console) lamps(state domain.OperatingState) string {
	green, yellow, red := styleDim, styleDim, styleDim
	switch state {
	case domain.StateNormal:
		green = styleGreen
	case domain.StateWarning:
		yellow = styleYellow
	case domain.StateCritical:
		red = styleRed
	}
	return green.Render("●") + " " + yellow.Render("●") + " " + red.Render("●")
}

var _ ports.Indicator = (*Console)(nil)
