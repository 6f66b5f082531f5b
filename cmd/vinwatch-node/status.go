package main

import (
	"bufio"
	"flag"
	"fmt"
	"net/http"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// statusCommand attaches a small dashboard to a running node's Prometheus
// endpoint so operators can watch temperature and state without a scraper.
func statusCommand(args []string) error {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	url := fs.String("url", "http://localhost:9100/metrics", "Prometheus metrics endpoint")
	interval := fs.Duration("interval", 2*time.Second, "Refresh interval")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p := tea.NewProgram(newStatusModel(*url, *interval))
	_, err := p.Run()
	return err
}

// ── Messages ─────────────────────────────────────────────────────────

type tickMsg time.Time

type snapshotMsg struct {
	metrics map[string]float64
	time    time.Time
}

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

// ── Model ────────────────────────────────────────────────────────────

var (
	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51"))
	styleLabel  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	styleDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleNormal = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("40"))
	styleWarn   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	styleCrit   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	styleErr    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

var statusMetrics = []string{
	"vinwatch_temperature_celsius",
	"vinwatch_operating_state",
	"vinwatch_readings_total",
	"vinwatch_messages_published_total",
	"vinwatch_sensor_faults_total",
	"vinwatch_publish_faults_total",
	"vinwatch_state_changes_total",
}

type statusModel struct {
	url      string
	interval time.Duration
	metrics  map[string]float64
	lastPoll time.Time
	err      error
}

func newStatusModel(url string, interval time.Duration) statusModel {
	return statusModel{url: url, interval: interval}
}

func (m statusModel) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m statusModel) pollCmd() tea.Cmd {
	url := m.url
	return func() tea.Msg {
		metrics, err := scrapeMetrics(url)
		if err != nil {
			return errMsg{err}
		}
		return snapshotMsg{metrics: metrics, time: time.Now()}
	}
}

func (m statusModel) Init() tea.Cmd {
	return tea.Batch(m.pollCmd(), m.tickCmd())
}

func (m statusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case tickMsg:
		return m, tea.Batch(m.pollCmd(), m.tickCmd())

	case snapshotMsg:
		m.metrics = msg.metrics
		m.lastPoll = msg.time
		m.err = nil

	case errMsg:
		m.err = msg.err
	}

	return m, nil
}

func (m statusModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("VinWatch node status"))
	b.WriteString(styleDim.Render("  " + m.url))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(styleErr.Render("scrape error: " + m.err.Error()))
		b.WriteString("\n\n")
		b.WriteString(styleDim.Render("q to quit"))
		b.WriteString("\n")
		return b.String()
	}
	if m.metrics == nil {
		b.WriteString(styleDim.Render("waiting for first scrape..."))
		b.WriteString("\n")
		return b.String()
	}

	state := stateLabel(m.metrics["vinwatch_operating_state"])
	fmt.Fprintf(&b, "  %s %s\n", styleLabel.Render("state      "), state)
	fmt.Fprintf(&b, "  %s %.2f °C\n", styleLabel.Render("temperature"), m.metrics["vinwatch_temperature_celsius"])
	fmt.Fprintf(&b, "  %s %.0f read / %.0f published\n",
		styleLabel.Render("throughput "),
		m.metrics["vinwatch_readings_total"],
		m.metrics["vinwatch_messages_published_total"])
	fmt.Fprintf(&b, "  %s %.0f sensor / %.0f publish\n",
		styleLabel.Render("faults     "),
		m.metrics["vinwatch_sensor_faults_total"],
		m.metrics["vinwatch_publish_faults_total"])
	fmt.Fprintf(&b, "  %s %.0f\n", styleLabel.Render("transitions"), m.metrics["vinwatch_state_changes_total"])

	b.WriteString("\n")
	b.WriteString(styleDim.Render(fmt.Sprintf("last scrape %s · q to quit", m.lastPoll.Format("15:04:05"))))
	b.WriteString("\n")
	return b.String()
}

func stateLabel(v float64) string {
	switch int(v) {
	case 0:
		return styleNormal.Render("NORMAL")
	case 1:
		return styleWarn.Render("WARNING")
	case 2:
		return styleCrit.Render("CRITICAL")
	default:
		return styleDim.Render("UNKNOWN")
	}
}

func scrapeMetrics(url string) (map[string]float64, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	out := make(map[string]float64, len(statusMetrics))
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		for _, key := range statusMetrics {
			if strings.HasPrefix(line, key+" ") {
				var value float64
				if _, err := fmt.Sscanf(line, key+" %f", &value); err == nil {
					out[key] = value
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
