package main

import (
	"time"

	"flowcanvas/internal/diagram"
	"flowcanvas/internal/interaction"
)

type model struct {
	width  int
	height int
	mode   Mode

	config   Config
	engine   *interaction.Engine
	state    *interaction.EngineState
	scene    diagram.Scene
	filename string

	// pending holds the latest uncommitted move/resize commands of the
	// active gesture. They are drawn but never folded into scene.
	pending []diagram.Command

	lastClick     time.Time
	lastClickCell cell

	hoverEdge string
	status    string
	statusErr bool
	statusAt  time.Time

	keys      keyMap
	clipboard clipboardIO
	watcher   *configWatcher
}

type cell struct {
	X, Y int
}

// statusMsg is sent by background work that wants to report on the status line.
type statusMsg struct {
	text string
	err  bool
}

type configReloadedMsg struct {
	config Config
	err    error
}
