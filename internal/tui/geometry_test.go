package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-sticky-notes/models"
)

func TestCellsFor(t *testing.T) {
	tests := []struct {
		name  string
		pos   models.Position
		size  models.Size
		deskW int
		deskH int
		want  cellRect
	}{
		{
			name: "default note", pos: models.Position{X: 100, Y: 100}, size: models.Size{Width: 400, Height: 300},
			deskW: 84, deskH: 39,
			want: cellRect{col: 12, row: 6, width: 50, height: 18},
		},
		{
			name: "off desk is pulled back", pos: models.Position{X: 2000, Y: 2000}, size: models.Size{Width: 400, Height: 300},
			deskW: 84, deskH: 39,
			want: cellRect{col: 34, row: 21, width: 50, height: 18},
		},
		{
			name: "negative position", pos: models.Position{X: -50, Y: -50}, size: models.Size{Width: 400, Height: 300},
			deskW: 84, deskH: 39,
			want: cellRect{col: 0, row: 0, width: 50, height: 18},
		},
		{
			name: "below minimum size", pos: models.Position{}, size: models.Size{Width: 10, Height: 10},
			deskW: 84, deskH: 39,
			want: cellRect{col: 0, row: 0, width: 25, height: 9},
		},
		{
			name: "desk smaller than note", pos: models.Position{X: 100, Y: 100}, size: models.Size{Width: 400, Height: 300},
			deskW: 30, deskH: 10,
			want: cellRect{col: 0, row: 0, width: 30, height: 10},
		},
		{
			name: "no desk yet", pos: models.Position{X: 100, Y: 100}, size: models.Size{Width: 400, Height: 300},
			want: cellRect{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cellsFor(tt.pos, tt.size, tt.deskW, tt.deskH))
		})
	}
}

func TestMoved(t *testing.T) {
	size := models.Size{Width: 400, Height: 300}

	assert.Equal(t, models.Position{X: 0, Y: 100}, moved(models.Position{X: 5, Y: 100}, size, -10, 0, 84, 39))
	assert.Equal(t, models.Position{X: 272, Y: 336}, moved(models.Position{X: 270, Y: 330}, size, 10, 10, 84, 39))
	assert.Equal(t, models.Position{X: 110, Y: 100}, moved(models.Position{X: 100, Y: 100}, size, 10, 0, 84, 39))
}

func TestMoved_OtherAxisKeepsStoredValue(t *testing.T) {
	size := models.Size{Width: 400, Height: 300}

	assert.Equal(t, models.Position{X: 110, Y: 2000}, moved(models.Position{X: 100, Y: 2000}, size, 10, 0, 84, 39))
	assert.Equal(t, models.Position{X: -300, Y: 110}, moved(models.Position{X: -300, Y: 100}, size, 0, 10, 84, 39))
	assert.Equal(t, models.Position{X: 272, Y: 2000}, moved(models.Position{X: 2000, Y: 2000}, size, -10, 0, 84, 39))
}

func TestResized(t *testing.T) {
	assert.Equal(t, models.Size{Width: 410, Height: 290}, resized(models.Size{Width: 400, Height: 300}, 10, -10))
	assert.Equal(t, models.Size{Width: models.MinWidth, Height: models.MinHeight},
		resized(models.Size{Width: 205, Height: 155}, -10, -10))
}
