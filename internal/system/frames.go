package system

import (
	"image"

	"golang.org/x/image/draw"
)

// FitInto copies src into dst. Frames of a different size are scaled with
// Catmull-Rom to fill dst exactly.
func FitInto(dst *image.RGBA, src image.Image) {
	sb := src.Bounds()
	if sb.Dx() == dst.Rect.Dx() && sb.Dy() == dst.Rect.Dy() {
		draw.Draw(dst, dst.Rect, src, sb.Min, draw.Src)
		return
	}
	draw.CatmullRom.Scale(dst, dst.Rect, src, sb, draw.Src, nil)
}

// Thumbnail downsamples img so that it is at most maxWidth pixels wide,
// keeping the aspect ratio. Smaller images are returned unchanged.
func Thumbnail(img image.Image, maxWidth int) image.Image {
	b := img.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return img
	}

	h := b.Dy() * maxWidth / b.Dx()
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	draw.ApproxBiLinear.Scale(dst, dst.Rect, img, b, draw.Src, nil)
	return dst
}

// ToRGBA returns img as a tightly packed RGBA frame anchored at the origin,
// converting through the frame pool when needed.
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == b.Dx()*4 && b.Min == (image.Point{}) {
		return rgba
	}
	dst := GetImage(image.Rect(0, 0, b.Dx(), b.Dy()))
	FitInto(dst, img)
	return dst
}
