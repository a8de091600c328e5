package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"globegrid/config"
	"globegrid/geomath"
	"globegrid/graticule"
	"globegrid/logging"
	"globegrid/metrics"
	"globegrid/ui/footer"
	"globegrid/ui/header"
	mapview "globegrid/ui/map"
	"globegrid/ui/msgbar"
	"globegrid/ui/sidebar"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// --- Constants for Layout ---
const (
	sidebarWidth = 20
	msgbarHeight = 7
)

// model holds the application's state
type model struct {
	width  int
	height int

	headerModel  header.Model
	mapModel     mapview.Model
	msgbarModel  msgbar.Model
	footerModel  footer.Model
	sidebarModel sidebar.Model

	log *slog.Logger
	err error
}

// initialModel creates the starting model
func initialModel(conf config.Config, rec graticule.Recorder, logger *slog.Logger) model {
	if logger == nil {
		logger = slog.Default()
	}
	mapMod, err := mapview.New(conf, rec, logger)
	if err != nil {
		return model{err: err}
	}

	m := model{
		width:        80, // Default width
		height:       60, // Default height
		headerModel:  header.New(),
		mapModel:     mapMod,
		msgbarModel:  msgbar.New(),
		footerModel:  footer.New(),
		sidebarModel: sidebar.New(),
		log:          logger,
	}
	m.sync()
	return m
}

// sync copies the map and grid state into the other panels
func (m *model) sync() {
	m.msgbarModel.Add(m.mapModel.TakeEvents()...)

	e := m.mapModel.Engine()
	g := e.Grid()
	m.sidebarModel.SetStats(sidebar.Stats{
		Visible:    e.Visible(),
		Extent:     g.Extent,
		Spacing:    g.Spacing,
		Lines:      len(g.Lines),
		Labels:     len(g.Labels),
		Skips:      m.mapModel.Skips(),
		Reanchored: m.mapModel.Reanchored(),
	})

	m.footerModel.SetZoom(m.mapModel.GetZoomLevel(), m.mapModel.Height())
	m.footerModel.SetGrid(e.Visible())

	c := m.mapModel.Scene().Camera().LookAt()
	m.headerModel.SetPlace(geomath.DMS(c.Lat.Degrees(), true, 0) + " " + geomath.DMS(c.Lng.Degrees(), false, 0))
}

func (m model) Init() tea.Cmd {
	if m.err != nil {
		return nil
	}
	return m.mapModel.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.err != nil {
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, tea.Quit
		}
		return m, nil
	}

	var (
		headerCmd  tea.Cmd
		mapCmd     tea.Cmd
		msgbarCmd  tea.Cmd
		footerCmd  tea.Cmd
		sidebarCmd tea.Cmd
		cmds       []tea.Cmd
	)

	switch msg := msg.(type) {
	case mapview.TickMsg:
		m.mapModel, mapCmd = m.mapModel.Update(msg)
		cmds = append(cmds, mapCmd)

	case mapview.SnapshotMsg:
		if msg.Err == nil {
			m.footerModel.SetSnapshot(msg.Path)
		}

	case error:
		m.err = msg
		log.Printf("Error received in Update: %v", msg)
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 1
		footerHeight := 1
		mainHeight := max(1, m.height-headerHeight-msgbarHeight-footerHeight)
		mapWidth := m.width - sidebarWidth

		m.headerModel, headerCmd = m.headerModel.Update(tea.WindowSizeMsg{Width: m.width, Height: headerHeight})
		m.sidebarModel, sidebarCmd = m.sidebarModel.Update(tea.WindowSizeMsg{Width: sidebarWidth, Height: mainHeight})
		m.mapModel, mapCmd = m.mapModel.Update(tea.WindowSizeMsg{Width: mapWidth, Height: mainHeight})
		m.msgbarModel, msgbarCmd = m.msgbarModel.Update(tea.WindowSizeMsg{Width: m.width, Height: msgbarHeight})
		m.footerModel, footerCmd = m.footerModel.Update(tea.WindowSizeMsg{Width: m.width, Height: footerHeight})

		cmds = append(cmds, headerCmd, sidebarCmd, mapCmd, msgbarCmd, footerCmd)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if err := m.mapModel.Engine().Destroy(); err != nil {
				m.log.Error("destroying grid failed", "err", err)
			}
			return m, tea.Quit
		default:
			m.mapModel, mapCmd = m.mapModel.Update(msg)
			cmds = append(cmds, mapCmd)
		}
	}

	m.sync()
	return m, tea.Batch(cmds...)
}

func (m model) View() string {
	if m.err != nil {
		errorStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Border(lipgloss.DoubleBorder(), true).
			BorderForeground(lipgloss.Color("9")).
			Padding(1).
			Align(lipgloss.Center, lipgloss.Center)
		return errorStyle.Render(
			"Error:\n\n" + m.err.Error() +
				"\n\nPress any key to quit.",
		)
	}

	middleStack := lipgloss.JoinHorizontal(lipgloss.Top,
		m.sidebarModel.View(),
		m.mapModel.View(),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerModel.View(),
		middleStack,
		m.msgbarModel.View(),
		m.footerModel.View(),
	)
}

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to config.toml")
	flag.Parse()

	if err := run(*configPath); err != nil {
		log.Fatalf("Alas, there's been an error: %v", err)
	}
}

// run keeps the log file and metrics listener alive for the program and
// releases them before main exits.
func run(configPath string) error {
	conf, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", configPath, err)
	}

	logFile, err := logging.OpenFile(conf.Log.File)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()
	logger := logging.Setup(conf.Log.Level, conf.Log.Format, logFile)
	graticule.SetLogger(logger)

	var rec graticule.Recorder
	if conf.Metrics.Addr != "" {
		rec = metrics.NewRecorder(nil)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			if err := metrics.Serve(ctx, conf.Metrics.Addr, nil); err != nil {
				logger.Error("metrics listener stopped", "addr", conf.Metrics.Addr, "err", err)
			}
		}()
		logger.Info("serving metrics", "addr", conf.Metrics.Addr)
	}

	p := tea.NewProgram(initialModel(conf, rec, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running viewer: %w", err)
	}
	return nil
}
