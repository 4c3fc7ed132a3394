package machine

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// RunHeadless runs up to n frames as fast as possible and returns
// the display as it stands afterwards.
func RunHeadless(r *Runner, n int) *image.RGBA {
	for i := 0; i < n && r.Step(); i++ {
	}
	return r.m.Image()
}

// WritePNG encodes img to w, enlarged by an integer scale factor.
func WritePNG(w io.Writer, img image.Image, scale int) error {
	if scale < 1 {
		return fmt.Errorf("invalid scale %d", scale)
	}
	sr := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, sr.Dx()*scale, sr.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, sr, draw.Src, nil)
	return png.Encode(w, dst)
}
