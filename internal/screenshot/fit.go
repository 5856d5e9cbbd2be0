package screenshot

import (
	"fmt"
	"image"
	"math"

	domain "github.com/inference-gateway/desktop-mcp/internal/domain"
	"golang.org/x/image/draw"
)

// DefaultFit is applied when a resize request names no fit
const DefaultFit = domain.FitContain

// layout describes how a source is placed on the output canvas
type layout struct {
	canvas image.Rectangle
	// dst is where the (possibly cropped) source lands on the canvas
	dst image.Rectangle
	// src is the part of the source that is used
	src image.Rectangle
}

func validFit(fit string) bool {
	switch fit {
	case "", domain.FitContain, domain.FitCover, domain.FitFill, domain.FitInside, domain.FitOutside:
		return true
	}
	return false
}

// computeLayout works out output geometry for resizing a w x h source
func computeLayout(w, h int, spec domain.ResizeSpec) (layout, error) {
	full := image.Rect(0, 0, w, h)
	if spec.Width <= 0 && spec.Height <= 0 {
		return layout{canvas: full, dst: full, src: full}, nil
	}

	// a single dimension keeps the aspect ratio regardless of fit
	if spec.Width <= 0 || spec.Height <= 0 {
		tw, th := spec.Width, spec.Height
		if tw <= 0 {
			tw = scaled(w, float64(th)/float64(h))
		} else {
			th = scaled(h, float64(tw)/float64(w))
		}
		out := image.Rect(0, 0, tw, th)
		return layout{canvas: out, dst: out, src: full}, nil
	}

	tw, th := spec.Width, spec.Height
	sx := float64(tw) / float64(w)
	sy := float64(th) / float64(h)

	fit := spec.Fit
	if fit == "" {
		fit = DefaultFit
	}

	switch fit {
	case domain.FitFill:
		out := image.Rect(0, 0, tw, th)
		return layout{canvas: out, dst: out, src: full}, nil

	case domain.FitInside, domain.FitOutside:
		s := math.Min(sx, sy)
		if fit == domain.FitOutside {
			s = math.Max(sx, sy)
		}
		out := image.Rect(0, 0, scaled(w, s), scaled(h, s))
		return layout{canvas: out, dst: out, src: full}, nil

	case domain.FitContain:
		s := math.Min(sx, sy)
		sw, sh := scaled(w, s), scaled(h, s)
		offX, offY := (tw-sw)/2, (th-sh)/2
		return layout{
			canvas: image.Rect(0, 0, tw, th),
			dst:    image.Rect(offX, offY, offX+sw, offY+sh),
			src:    full,
		}, nil

	case domain.FitCover:
		s := math.Max(sx, sy)
		// crop the source to the target aspect ratio, centred
		cw := min(w, int(math.Round(float64(tw)/s)))
		ch := min(h, int(math.Round(float64(th)/s)))
		cw, ch = max(cw, 1), max(ch, 1)
		offX, offY := (w-cw)/2, (h-ch)/2
		out := image.Rect(0, 0, tw, th)
		return layout{
			canvas: out,
			dst:    out,
			src:    image.Rect(offX, offY, offX+cw, offY+ch),
		}, nil
	}

	return layout{}, fmt.Errorf("unknown resize fit %q", spec.Fit)
}

// applyLayout renders src onto a new canvas of the same colour model family
func applyLayout(src image.Image, l layout) image.Image {
	b := src.Bounds()
	if l.canvas.Eq(b.Sub(b.Min)) && l.dst.Eq(l.canvas) && l.src.Eq(l.canvas) {
		return src
	}

	srcRect := l.src.Add(b.Min)

	if _, gray := src.(*image.Gray); gray {
		dst := image.NewGray(l.canvas)
		draw.CatmullRom.Scale(dst, l.dst, src, srcRect, draw.Src, nil)
		return dst
	}

	dst := image.NewRGBA(l.canvas)
	if !l.dst.Eq(l.canvas) {
		draw.Draw(dst, l.canvas, image.Black, image.Point{}, draw.Src)
	}
	draw.CatmullRom.Scale(dst, l.dst, src, srcRect, draw.Src, nil)
	return dst
}

func scaled(n int, s float64) int {
	return max(1, int(math.Round(float64(n)*s)))
}
