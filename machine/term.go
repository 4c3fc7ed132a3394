package machine

import (
	"image"

	"github.com/gdamore/tcell/v2"
)

// RunTerminal shows the display in the terminal, two pixels to a cell,
// until the runner exits or Escape, Ctrl-C or q is pressed.
func RunTerminal(r *Runner) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()
	s.HideCursor()

	go func() {
		for {
			switch ev := s.PollEvent().(type) {
			case nil:
				return // screen finalized
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					r.Exit()
					return
				}
			case *tcell.EventResize:
				s.Sync()
			}
		}
	}()

	img := image.NewRGBA(image.Rect(0, 0, ScreenSize, ScreenSize))
	r.tick(func() bool {
		if !r.Step() {
			return false
		}
		r.m.Render(img)
		drawCells(s, img)
		s.Show()
		return true
	})
	return nil
}

// drawCells draws img using upper half blocks, the top pixel of each
// pair as the foreground and the bottom as the background.
func drawCells(s tcell.Screen, img *image.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y+1 < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top, bottom := img.RGBAAt(x, y), img.RGBAAt(x, y+1)
			st := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			s.SetContent(x-b.Min.X, (y-b.Min.Y)/2, '▀', nil, st)
		}
	}
}
