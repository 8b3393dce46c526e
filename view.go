package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"flowcanvas/internal/interaction"
)

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236"))
	modeStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	helpTitle   = lipgloss.NewStyle().Bold(true).Underline(true)
	helpKey     = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Width(12)
)

func (m model) View() string {
	if m.mode == ModeHelp {
		return m.helpView()
	}

	w, h := m.canvasSize()
	scene := m.liveScene()
	f := frame{
		scene:      scene,
		view:       m.state.Viewport,
		cellWidth:  m.config.CellWidth,
		cellHeight: m.config.CellHeight,
		routes:     m.engine.Resolver().RouteScene(scene, m.config.style()),
		hoverEdge:  m.hoverEdge,
		suggestion: m.state.Preview,
	}
	if p, ok := m.engine.Draft(m.state, scene); ok {
		f.draft = &p
	}
	if g, ok := m.state.Gesture.(*interaction.BoxSelectGesture); ok {
		r := g.Rect()
		f.selection = &r
	}

	var b strings.Builder
	b.WriteString(strings.Join(f.render(w, h).styled(), "\n"))
	b.WriteString("\n")
	b.WriteString(m.statusLine(w))
	return b.String()
}

func (m model) statusLine(width int) string {
	left := modeStyle.Render(m.modeString())
	info := fmt.Sprintf(" %3.0f%% | %d selected | %s edges", m.state.Viewport.Zoom*100, len(m.scene.SelectedIDs()), m.config.style())
	if m.filename != "" {
		info = " " + m.filename + " |" + info
	}

	msg := " | ? for help | q to quit"
	if m.status != "" && time.Since(m.statusAt) < statusTTL {
		msg = " | " + m.status
		if m.statusErr {
			msg = " | " + errorStyle.Render("ERROR: "+m.status)
		}
	}

	line := left + statusStyle.Render(info) + msg
	if pad := width - lipgloss.Width(line); pad > 0 {
		line += statusStyle.Render(strings.Repeat(" ", pad))
	}
	return line
}

// modeString names what the pointer is doing right now.
func (m model) modeString() string {
	if m.mode == ModeHelp {
		return "HELP"
	}
	if m.state.Active() {
		return strings.ToUpper(m.state.Kind().String())
	}
	return "NORMAL"
}

func (m model) helpView() string {
	lines := []string{
		helpTitle.Render("flowcanvas"),
		"",
		"Mouse:",
		"  drag empty canvas      pan (box select with pan_on_drag: false)",
		"  shift+drag canvas      box select",
		"  middle drag            pan",
		"  drag node              move (moves the whole selection if grabbed node is selected)",
		"  drag o handle          connect to another node's handle",
		"  drag ◆ corner          resize selected node",
		"  double click ◆         fit node to its label",
		"  wheel                  zoom around the pointer",
		"",
		"Keys:",
	}
	for _, kb := range m.keys.bindings() {
		h := kb.Help()
		lines = append(lines, "  "+helpKey.Render(h.Key)+" "+h.Desc)
	}
	lines = append(lines, "", "config: "+configPath())

	visible := max(1, m.height-1)
	if len(lines) > visible {
		lines = lines[:visible]
	}
	return strings.Join(lines, "\n") + "\n" + statusStyle.Render("Help | ?/esc to close")
}
