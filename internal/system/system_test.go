package system

import (
	"context"
	"image"
	"image/color"
	"testing"
)

func TestFramePoolReusesSize(t *testing.T) {
	pool := NewFramePool()
	rect := image.Rect(0, 0, 4, 2)

	img := pool.Get(rect)
	if img.Rect != rect {
		t.Fatalf("Expected bounds %v, got %v", rect, img.Rect)
	}
	pool.Put(img)

	// Unknown sizes are dropped rather than pooled.
	pool.Put(image.NewRGBA(image.Rect(0, 0, 9, 9)))
	if _, ok := pool.pools[image.Rect(0, 0, 9, 9)]; ok {
		t.Error("Put must not create pools for unseen sizes")
	}
	pool.Put(nil)
}

func TestFitIntoScales(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			src.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}

	same := image.NewRGBA(image.Rect(0, 0, 8, 8))
	FitInto(same, src)
	if same.RGBAAt(3, 3).R != 200 {
		t.Errorf("Expected copied pixel, got %v", same.RGBAAt(3, 3))
	}

	small := image.NewRGBA(image.Rect(0, 0, 4, 4))
	FitInto(small, src)
	if got := small.RGBAAt(2, 2); got.R < 190 || got.A != 255 {
		t.Errorf("Expected scaled red pixel, got %v", got)
	}
}

func TestThumbnail(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 640, 360))
	thumb := Thumbnail(img, 320)
	if b := thumb.Bounds(); b.Dx() != 320 || b.Dy() != 180 {
		t.Errorf("Expected 320x180, got %dx%d", b.Dx(), b.Dy())
	}

	if Thumbnail(img, 1000) != image.Image(img) {
		t.Error("Expected narrow images to be returned unchanged")
	}
}

func TestToRGBA(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if ToRGBA(rgba) != rgba {
		t.Error("Expected packed RGBA to pass through")
	}

	gray := image.NewGray(image.Rect(0, 0, 3, 2))
	gray.SetGray(1, 1, color.Gray{Y: 90})
	out := ToRGBA(gray)
	if out.Rect.Dx() != 3 || out.Rect.Dy() != 2 {
		t.Fatalf("Unexpected bounds %v", out.Rect)
	}
	if out.RGBAAt(1, 1).G != 90 {
		t.Errorf("Expected converted pixel, got %v", out.RGBAAt(1, 1))
	}
}

func TestCheckToolsMissing(t *testing.T) {
	err := CheckTools(context.Background(), "definitely-not-a-real-binary-xyz")
	if err == nil {
		t.Error("Expected error for missing tool, got nil")
	}
}

func TestCurrentProcessStats(t *testing.T) {
	stats, err := CurrentProcessStats()
	if err != nil {
		t.Skipf("process stats unavailable: %v", err)
	}
	if stats.RSSBytes == 0 {
		t.Error("Expected non-zero RSS")
	}
}
