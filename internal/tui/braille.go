package tui

import "strings"

// brailleDots maps a micro pixel (row, column) inside a cell to its dot bit.
var brailleDots = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// brailleBuf is a canvas of 2x4 micro pixels per terminal cell.
type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell dot mask
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	for i := range m {
		m[i] = make([]uint8, w)
	}
	return &brailleBuf{w: w, h: h, m: m}
}

func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 || b.w*2 <= mx || b.h*4 <= my {
		return
	}
	b.m[my/4][mx/2] |= brailleDots[my%4][mx%2]
}

// drawLineMicro draws a Bresenham line on the micro grid. Lines entirely on one side of the
// canvas are skipped.
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int) {
	if (x0 < 0 && x1 < 0) || (y0 < 0 && y1 < 0) || (b.w*2 <= x0 && b.w*2 <= x1) || (b.h*4 <= y0 && b.h*4 <= y1) {
		return
	}
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	var sb strings.Builder
	for y, row := range b.m {
		sb.Reset()
		for _, mask := range row {
			if mask == 0 {
				sb.WriteByte(' ')
			} else {
				sb.WriteRune(rune(0x2800 + int(mask)))
			}
		}
		out[y] = sb.String()
	}
	return out
}
