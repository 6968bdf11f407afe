package ui

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ingyamilmolinar/swirl/core/model"
)

func TestCameraRoundTrip(t *testing.T) {
	cam := NewCamera()
	cam.Fit(1200, 600, 40)
	if cam.Scale != 50 || cam.OffsetX != 600 || cam.OffsetY != 340 {
		t.Fatalf("fit = %+v", cam)
	}
	p := model.Vec3{X: -1.8, Z: 0.9}
	sx, sy := cam.ScreenPos(p)
	back := cam.WorldPos(sx, sy)
	if math.Abs(back.X-p.X) > 1e-9 || math.Abs(back.Z-p.Z) > 1e-9 {
		t.Fatalf("round trip %v -> %v", p, back)
	}
}

func TestCameraZoomAnchorsCursor(t *testing.T) {
	cam := &Camera{Scale: 80, OffsetX: 10, OffsetY: 20}
	cursorX, cursorY := 100, 50
	restore := SetInputForTest(
		func() (int, int) { return cursorX, cursorY },
		func(ebiten.MouseButton) bool { return false },
		func(ebiten.Key) bool { return false },
		func(ebiten.Key) bool { return false },
		func() (float64, float64) { return 0, 1 },
	)
	defer restore()
	w := cam.WorldPos(float64(cursorX), float64(cursorY))
	if !cam.HandleWheel() {
		t.Fatalf("expected zoom")
	}
	sx, sy := cam.ScreenPos(w)
	if math.Abs(sx-float64(cursorX)) > 0.5 || math.Abs(sy-float64(cursorY)) > 0.5 {
		t.Fatalf("cursor moved after zoom: got (%f,%f) want (%d,%d)", sx, sy, cursorX, cursorY)
	}
	if math.Abs(cam.Scale-80*1.05) > 1e-9 {
		t.Fatalf("scale=%f want %f", cam.Scale, 80*1.05)
	}
}

func TestCameraScaleClamped(t *testing.T) {
	cam := NewCamera()
	cam.Fit(10, 10, 0)
	if cam.Scale != minScale {
		t.Fatalf("scale = %v, want %v", cam.Scale, minScale)
	}
	cam.OffsetX = 12.6
	cam.Snap()
	if cam.OffsetX != 13 {
		t.Fatalf("snap = %v", cam.OffsetX)
	}
}
