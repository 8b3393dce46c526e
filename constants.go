package main

import "time"

type Mode int

const (
	ModeNormal Mode = iota
	ModeHelp
)

const (
	defaultCellWidth  = 8.0
	defaultCellHeight = 16.0

	doubleClickWindow = 400 * time.Millisecond

	panStep      = 4    // cells per arrow key press
	keyZoomDelta = 1.0  // wheel notches per +/- press
	wheelNotch   = 1.0  // wheel delta reported per scroll event
	edgeHitCells = 1.0  // edge pick tolerance, in cells
	statusTTL    = 3 * time.Second
)

const (
	fitPadding = 40.0 // world units around fitted and exported scenes
	fontSize   = 12.0
)
