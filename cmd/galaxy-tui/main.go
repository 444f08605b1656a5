package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stellarweave/galaxysim/pkg/galaxy"
	"github.com/stellarweave/galaxysim/pkg/stream"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFD75F")).
			MarginLeft(2).
			MarginTop(1)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 2).
			MarginLeft(2)

	settledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	unsettledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAA00"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true).
			MarginLeft(2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type keyMap struct {
	Up   key.Binding
	Down key.Binding
	Sort key.Binding
	Quit key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("up/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("down/j", "down"),
	),
	Sort: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "toggle sort"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Sort, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Sort, k.Quit},
	}
}

type sortOrder int

const (
	sortByCompatibility sortOrder = iota
	sortByDistance
)

type snapMsg galaxy.Snapshot

type streamErrMsg struct{ err error }

type localTickMsg time.Time

type model struct {
	sub    *stream.Subscriber
	driver *galaxy.Driver // embedded simulation when no stream address
	store  *galaxy.Store

	snap    galaxy.Snapshot
	sort    sortOrder
	nodeTab table.Model
	help    help.Model
	keys    keyMap
	width   int
	errMsg  string
}

func waitForSnapshot(sub *stream.Subscriber) tea.Cmd {
	return func() tea.Msg {
		snap, err := sub.Next()
		if err != nil {
			return streamErrMsg{err: err}
		}
		return snapMsg(snap)
	}
}

func localTickCmd() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg {
		return localTickMsg(t)
	})
}

func initialModel(sub *stream.Subscriber, store *galaxy.Store, driver *galaxy.Driver) model {
	columns := []table.Column{
		{Title: "Name", Width: 16},
		{Title: "Match", Width: 7},
		{Title: "Dist", Width: 8},
		{Title: "Position", Width: 26},
		{Title: "Traits", Width: 30},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(16),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#00FFFF")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#000000")).
		Background(lipgloss.Color("#FFD75F")).
		Bold(false)
	t.SetStyles(s)

	return model{
		sub:     sub,
		store:   store,
		driver:  driver,
		nodeTab: t,
		help:    help.New(),
		keys:    keys,
	}
}

func (m model) Init() tea.Cmd {
	if m.sub != nil {
		return waitForSnapshot(m.sub)
	}
	return localTickCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Sort):
			if m.sort == sortByCompatibility {
				m.sort = sortByDistance
			} else {
				m.sort = sortByCompatibility
			}
			m.refreshRows()
			return m, nil
		}

	case snapMsg:
		m.snap = galaxy.Snapshot(msg)
		m.errMsg = ""
		m.refreshRows()
		return m, waitForSnapshot(m.sub)

	case streamErrMsg:
		m.errMsg = msg.err.Error()
		return m, waitForSnapshot(m.sub)

	case localTickMsg:
		m.driver.Tick(time.Time(msg))
		snap := m.store.Snapshot()
		snap.Mode = m.driver.Mode()
		snap.Settled = m.driver.Settled()
		m.snap = snap
		m.refreshRows()
		return m, localTickCmd()
	}

	var cmd tea.Cmd
	m.nodeTab, cmd = m.nodeTab.Update(msg)
	return m, cmd
}

func (m *model) refreshRows() {
	nodes := make([]galaxy.NodeState, 0, len(m.snap.Nodes))
	nodes = append(nodes, m.snap.Nodes...)

	sort.SliceStable(nodes, func(i, j int) bool {
		// The central node always leads.
		if nodes[i].IsCentral != nodes[j].IsCentral {
			return nodes[i].IsCentral
		}
		if m.sort == sortByDistance {
			return nodes[i].Position.Length() < nodes[j].Position.Length()
		}
		return nodes[i].Compatibility > nodes[j].Compatibility
	})

	rows := make([]table.Row, len(nodes))
	for i, n := range nodes {
		name := n.Name
		if n.IsCentral {
			name = "* " + name
		}
		rows[i] = table.Row{
			name,
			fmt.Sprintf("%.0f%%", n.Compatibility*100),
			fmt.Sprintf("%.1f", n.Position.Length()),
			fmt.Sprintf("%6.1f %6.1f %6.1f", n.Position.X, n.Position.Y, n.Position.Z),
			formatTraits(n.Traits),
		}
	}
	m.nodeTab.SetRows(rows)
}

func formatTraits(traits []float64) string {
	out := ""
	for i, v := range traits {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%.0f", v)
		if i >= 7 {
			out += " ..."
			break
		}
	}
	return out
}

func (m model) View() string {
	title := titleStyle.Render("Galaxy Simulation")

	settled := unsettledStyle.Render("settling")
	if m.snap.Settled {
		settled = settledStyle.Render("settled")
	}
	stats := statsBoxStyle.Render(fmt.Sprintf(
		"tick %d   mode %s   %s   nodes %d",
		m.snap.Tick, m.snap.Mode, settled, len(m.snap.Nodes),
	))

	body := lipgloss.NewStyle().MarginLeft(2).MarginTop(1).Render(m.nodeTab.View())

	view := title + "\n" + stats + "\n" + body
	if m.errMsg != "" {
		view += "\n" + errorStyle.Render("stream: "+m.errMsg)
	}
	view += "\n" + helpStyle.Render(m.help.View(m.keys))
	return view
}

func main() {
	streamAddr := flag.String("stream", "", "Snapshot stream address, e.g. tcp://127.0.0.1:4800 (empty runs an embedded simulation)")
	count := flag.Int("nodes", 40, "Node count for the embedded simulation")
	attributes := flag.Int("attributes", 5, "Attribute count for the embedded simulation")
	seed := flag.Int64("seed", 1, "Seed for the embedded simulation")
	flag.Parse()

	var (
		sub    *stream.Subscriber
		store  *galaxy.Store
		driver *galaxy.Driver
	)

	if *streamAddr != "" {
		var err error
		sub, err = stream.NewSubscriber(*streamAddr)
		if err != nil {
			log.Fatalf("connecting to stream: %v", err)
		}
		defer sub.Close()
	} else {
		var err error
		store, err = galaxy.NewStore(galaxy.GenerateNodes(*count, *attributes, nil, *seed))
		if err != nil {
			log.Fatalf("creating simulation: %v", err)
		}
		driver = galaxy.NewDriver(store, galaxy.DefaultPhysicsConfig(),
			galaxy.ModeContinuous, galaxy.StrategyEquilibrium, nil, nil)
	}

	p := tea.NewProgram(initialModel(sub, store, driver), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error running tui: %v\n", err)
		os.Exit(1)
	}
}
