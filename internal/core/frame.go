package core

import "strings"

// Slot is one of the three text positions of the display.
type Slot int

const (
	Top    Slot = iota // anchored to the top edge
	Middle             // centred vertically
	Bottom             // anchored to the bottom edge
)

// Text is a single centred label. Scale is the integer glyph magnification
// used by the OLED (1 = native font size).
type Text struct {
	Value string
	Scale int
}

// Frame is the full content of the 128x64 status display.
type Frame struct {
	Lines [3]Text
}

// NewFrame builds a frame from three labels with their scales.
func NewFrame(top, middle, bottom string, topScale, middleScale, bottomScale int) Frame {
	return Frame{Lines: [3]Text{
		{Value: top, Scale: normScale(topScale)},
		{Value: middle, Scale: normScale(middleScale)},
		{Value: bottom, Scale: normScale(bottomScale)},
	}}
}

// Line returns the label at slot s.
func (f Frame) Line(s Slot) Text {
	if s < Top || s > Bottom {
		return Text{}
	}
	return f.Lines[s]
}

// Empty reports whether no slot has text.
func (f Frame) Empty() bool {
	for _, l := range f.Lines {
		if l.Value != "" {
			return false
		}
	}
	return true
}

// String joins the non-empty labels with " / ", handy for logs.
func (f Frame) String() string {
	parts := make([]string, 0, len(f.Lines))
	for _, l := range f.Lines {
		if l.Value != "" {
			parts = append(parts, l.Value)
		}
	}
	return strings.Join(parts, " / ")
}

func normScale(s int) int {
	if s < 1 {
		return 1
	}
	return s
}
