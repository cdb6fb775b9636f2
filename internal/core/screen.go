package core

import (
	"strings"
)

// Screen is a 2D character buffer that mimics the status display in a
// terminal. Front ends draw a Frame into it and print String().
type Screen struct {
	width  int
	height int
	cells  [][]rune
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  Max(width, 1),
		height: Max(height, 1),
	}
	s.cells = make([][]rune, s.height)
	for y := range s.cells {
		s.cells[y] = make([]rune, s.width)
	}
	s.Clear()
	return s
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Clear fills the entire screen with spaces.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = ' '
		}
	}
}

// Set places a rune at the given position.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y][x] = r
}

// Get returns the rune at the given position.
// Returns space for out-of-bounds coordinates.
func (s *Screen) Get(x, y int) rune {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return ' '
	}
	return s.cells[y][x]
}

// DrawText writes a string horizontally starting at (x, y).
// Characters that extend beyond screen bounds are clipped.
func (s *Screen) DrawText(x, y int, text string) {
	for i, r := range []rune(text) {
		s.Set(x+i, y, r)
	}
}

// DrawTextCentered draws text centered horizontally at the given y position.
func (s *Screen) DrawTextCentered(y int, text string) {
	x := (s.width - len([]rune(text))) / 2
	s.DrawText(x, y, text)
}

// DrawFrame clears the screen and lays out the three slots of f: the top
// label on the first row, the middle label on the centre row and the bottom
// label on the last row. Scaled labels are spread out with spaces.
func (s *Screen) DrawFrame(f Frame) {
	s.Clear()
	rows := [3]int{0, s.height / 2, s.height - 1}
	for i, line := range f.Lines {
		if line.Value == "" {
			continue
		}
		s.DrawTextCentered(rows[i], Spread(line.Value, line.Scale))
	}
}

// Spread inserts scale-1 spaces between runes to hint at a larger glyph size.
func Spread(text string, scale int) string {
	if scale <= 1 || text == "" {
		return text
	}
	gap := strings.Repeat(" ", scale-1)
	runes := []rune(text)
	var sb strings.Builder
	for i, r := range runes {
		if i > 0 {
			sb.WriteString(gap)
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// String converts the screen buffer to a renderable string.
// Each row is joined with newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			sb.WriteRune(s.cells[y][x])
		}
	}
	return sb.String()
}

// Row returns a copy of the specified row as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	return string(s.cells[y])
}
