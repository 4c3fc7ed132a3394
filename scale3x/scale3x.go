// Package scale3x implements the Scale3x (AdvMAME3x) pixel-art
// upscaler, which replaces each source pixel by a 3×3 block while
// keeping diagonal edges sharp.
package scale3x

import "github.com/nf/rainbow/bitplane"

// Edge records which sides of a Window fall outside the source grid.
type Edge uint8

const (
	Left Edge = 1 << iota
	Top
	Right
	Bottom
)

// Window is the neighbourhood of one source pixel, row-major:
//
//	A B C
//	D E F
//	G H I
//
// Neighbours on a side named in Edges are absent. An absent neighbour
// compares unequal to everything, itself included.
type Window struct {
	A, B, C, D, E, F, G, H, I bitplane.Pixel
	Edges                     Edge
}

// Block is the 3×3 output for one source pixel, row-major (p1..p9).
type Block [9]bitplane.Pixel

// Source is a grid of pixels, such as a *bitplane.Surface.
type Source interface {
	Width() int
	Height() int
	At(x, y int) bitplane.Pixel
}

// Scale computes the output block for w.
func Scale(w *Window) (p Block) {
	var (
		e = w.E

		left   = w.Edges&Left == 0
		top    = w.Edges&Top == 0
		right  = w.Edges&Right == 0
		bottom = w.Edges&Bottom == 0

		// Equality tests between the edge neighbours;
		// false whenever either side is absent.
		db = left && top && w.D == w.B
		bf = top && right && w.B == w.F
		fh = right && bottom && w.F == w.H
		hd = bottom && left && w.H == w.D

		// e != corner; true when the corner is absent.
		ea = !(left && top) || e != w.A
		ec = !(top && right) || e != w.C
		eg = !(bottom && left) || e != w.G
		ei = !(bottom && right) || e != w.I
	)

	// Edge conditions, one per corner.
	var (
		nw = db && !hd && !bf // d==b && d!=h && b!=f
		ne = bf && !db && !fh // b==f && b!=d && f!=h
		sw = hd && !fh && !db // h==d && h!=f && d!=b
		se = fh && !bf && !hd // f==h && f!=b && h!=d
	)

	p = Block{e, e, e, e, e, e, e, e, e}
	if nw {
		p[0] = w.D
	}
	if ne {
		p[2] = w.F
	}
	if sw {
		p[6] = w.D
	}
	if se {
		p[8] = w.F
	}
	if (nw && ec) || (ne && ea) {
		p[1] = w.B
	}
	if (sw && ea) || (nw && eg) {
		p[3] = w.D
	}
	if (ne && ei) || (se && ec) {
		p[5] = w.F
	}
	if (se && eg) || (sw && ei) {
		p[7] = w.H
	}
	return p
}

// Gather reads the window around (x, y), marking the sides that fall
// outside src. Absent neighbours are never read.
func Gather(src Source, x, y int) Window {
	var (
		w    Window
		maxX = src.Width() - 1
		maxY = src.Height() - 1
	)
	if x == 0 {
		w.Edges |= Left
	}
	if y == 0 {
		w.Edges |= Top
	}
	if x == maxX {
		w.Edges |= Right
	}
	if y == maxY {
		w.Edges |= Bottom
	}
	left, top := w.Edges&Left == 0, w.Edges&Top == 0
	right, bottom := w.Edges&Right == 0, w.Edges&Bottom == 0

	if top {
		if left {
			w.A = src.At(x-1, y-1)
		}
		w.B = src.At(x, y-1)
		if right {
			w.C = src.At(x+1, y-1)
		}
	}
	if left {
		w.D = src.At(x-1, y)
	}
	w.E = src.At(x, y)
	if right {
		w.F = src.At(x+1, y)
	}
	if bottom {
		if left {
			w.G = src.At(x-1, y+1)
		}
		w.H = src.At(x, y+1)
		if right {
			w.I = src.At(x+1, y+1)
		}
	}
	return w
}

// Enlarge scales the w×h region at the origin of src, calling set once
// for each of the 9*w*h output pixels. Neighbours outside the region
// but inside src take part in the scaling.
func Enlarge(src Source, w, h int, set func(x, y int, p bitplane.Pixel)) {
	if w > src.Width() || h > src.Height() {
		panic("scale3x: region larger than source")
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			win := Gather(src, x, y)
			p := Scale(&win)
			for i, v := range p {
				set(x*3+i%3, y*3+i/3, v)
			}
		}
	}
}
