package machine

import (
	"image"
	"image/color"
	"image/draw"
	"log"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
)

// RunGUI shows the display in a window until the window is closed
// or the runner exits. It must be called from the main goroutine.
func RunGUI(r *Runner, title string) (err error) {
	driver.Main(func(s screen.Screen) {
		w, werr := s.NewWindow(&screen.NewWindowOptions{
			Title:  title,
			Width:  ScreenSize * 3,
			Height: ScreenSize * 3,
		})
		if werr != nil {
			err = werr
			return
		}
		defer w.Release()

		g := new(gui)
		if err = g.alloc(s); err != nil {
			return
		}
		defer g.release()

		type update struct{}
		type exit struct{}
		go r.tick(func() bool {
			w.Send(update{})
			return true
		})
		go func() {
			<-r.Done()
			w.Send(exit{})
		}()

		var sz size.Event
		for {
			switch e := w.NextEvent().(type) {
			case exit:
				return

			case lifecycle.Event:
				if e.To == lifecycle.StageDead {
					r.Exit()
					return
				}

			case size.Event:
				sz = e
				if sz.WidthPx+sz.HeightPx == 0 {
					r.Exit()
					return
				}

			case paint.Event:
				g.publish(w, sz)

			case update:
				if !r.Step() {
					return
				}
				r.m.Render(g.buf.RGBA())
				g.tex.Upload(image.Point{}, g.buf, g.buf.Bounds())
				g.publish(w, sz)

			case error:
				log.Print(e)
			}
		}
	})
	return err
}

type gui struct {
	buf screen.Buffer
	tex screen.Texture
}

func (g *gui) alloc(s screen.Screen) (err error) {
	sz := image.Point{ScreenSize, ScreenSize}
	if g.buf, err = s.NewBuffer(sz); err != nil {
		return err
	}
	g.tex, err = s.NewTexture(sz)
	return err
}

func (g *gui) publish(w screen.Window, sz size.Event) {
	if sz.WidthPx == 0 || sz.HeightPx == 0 {
		return
	}
	w.Fill(sz.Bounds(), color.Black, draw.Src)
	w.Scale(fit(sz.WidthPx, sz.HeightPx), g.tex, g.tex.Bounds(), draw.Src, nil)
	w.Publish()
}

func (g *gui) release() {
	if g.tex != nil {
		g.tex.Release()
	}
	if g.buf != nil {
		g.buf.Release()
	}
}

// fit returns the largest square, a whole multiple of the screen
// size where possible, centred in a w×h window.
func fit(w, h int) image.Rectangle {
	n := w
	if h < n {
		n = h
	}
	if k := n / ScreenSize; k > 0 {
		n = k * ScreenSize
	}
	x, y := (w-n)/2, (h-n)/2
	return image.Rect(x, y, x+n, y+n)
}
