package tui

import "github.com/MKhiriev/go-sticky-notes/models"

// Notes store geometry in pixels. The desk maps them onto terminal cells.
const (
	cellWidthPx  = 8
	cellHeightPx = 16

	moveStepPx   = 10
	resizeStepPx = 10
)

type cellRect struct {
	col    int
	row    int
	width  int
	height int
}

// cellsFor places a note on a desk of deskW x deskH cells. The window is
// clamped so it is always fully visible.
func cellsFor(pos models.Position, size models.Size, deskW, deskH int) cellRect {
	r := cellRect{
		col:    pos.X / cellWidthPx,
		row:    pos.Y / cellHeightPx,
		width:  max(size.Width, models.MinWidth) / cellWidthPx,
		height: max(size.Height, models.MinHeight) / cellHeightPx,
	}
	r.width = max(0, min(r.width, deskW))
	r.height = max(0, min(r.height, deskH))
	r.col = clamp(r.col, 0, deskW-r.width)
	r.row = clamp(r.row, 0, deskH-r.height)
	return r
}

// moved shifts pos by (dx, dy) pixels, keeping a window of size on a desk
// of deskW x deskH cells. Only the axes that move are clamped; the other
// coordinate is kept as stored even when it lies off this desk.
func moved(pos models.Position, size models.Size, dx, dy, deskW, deskH int) models.Position {
	r := cellsFor(pos, size, deskW, deskH)
	out := pos
	if dx != 0 {
		out.X = clamp(pos.X+dx, 0, max(0, (deskW-r.width)*cellWidthPx))
	}
	if dy != 0 {
		out.Y = clamp(pos.Y+dy, 0, max(0, (deskH-r.height)*cellHeightPx))
	}
	return out
}

// resized grows or shrinks size, never below the minimum window size.
func resized(size models.Size, dw, dh int) models.Size {
	return models.Size{
		Width:  max(models.MinWidth, size.Width+dw),
		Height: max(models.MinHeight, size.Height+dh),
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	return min(max(v, lo), hi)
}
