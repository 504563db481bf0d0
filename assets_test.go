package confetti

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestFSAssetsLoadImage(t *testing.T) {
	fsys := fstest.MapFS{
		"sprites/ConfettiForeground.png": {Data: encodePNG(t, 10, 4)},
	}
	a := FSAssets{FS: fsys, Dir: "sprites"}
	img, err := a.LoadImage(ForegroundImageName)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 10 || b.Dy() != 4 {
		t.Errorf("bounds = %v, want 10x4", b)
	}
}

func TestFSAssetsMissing(t *testing.T) {
	a := FSAssets{FS: fstest.MapFS{}}
	_, err := a.LoadImage(BackgroundImageName)
	if !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("err = %v, want ErrAssetNotFound", err)
	}
}

func TestFSAssetsCorrupt(t *testing.T) {
	fsys := fstest.MapFS{"ConfettiForeground.png": {Data: []byte("not a png")}}
	_, err := FSAssets{FS: fsys}.LoadImage(ForegroundImageName)
	if err == nil {
		t.Fatal("expected decode error")
	}
	if errors.Is(err, ErrAssetNotFound) {
		t.Error("decode failure should not be reported as not found")
	}
}

func TestGeneratedAssets(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{ForegroundImageName, 16, 8},
		{BackgroundImageName, 12, 6},
	}
	for _, tt := range tests {
		img, err := GeneratedAssets{}.LoadImage(tt.name)
		if err != nil {
			t.Fatalf("LoadImage(%q): %v", tt.name, err)
		}
		if b := img.Bounds(); b.Dx() != tt.w || b.Dy() != tt.h {
			t.Errorf("%s bounds = %v, want %dx%d", tt.name, b, tt.w, tt.h)
		}
	}
	if _, err := (GeneratedAssets{}).LoadImage("Streamer"); !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("unknown name err = %v, want ErrAssetNotFound", err)
	}
}

func TestConfettiStripFeather(t *testing.T) {
	img := confettiStrip(12, 6, 2)
	if a := img.NRGBAAt(0, 0).A; a != 85 {
		t.Errorf("corner alpha = %d, want 85", a)
	}
	if a := img.NRGBAAt(6, 3).A; a != 255 {
		t.Errorf("centre alpha = %d, want 255", a)
	}
	solid := confettiStrip(4, 2, 0)
	if a := solid.NRGBAAt(0, 0).A; a != 255 {
		t.Errorf("unfeathered corner alpha = %d, want 255", a)
	}
}

func TestCachedAssets(t *testing.T) {
	calls := 0
	base := AssetFunc(func(name string) (*ebiten.Image, error) {
		calls++
		if name == "missing" {
			return nil, ErrAssetNotFound
		}
		return ebiten.NewImage(2, 2), nil
	})
	c, err := NewCachedAssets(base, 4)
	if err != nil {
		t.Fatalf("NewCachedAssets: %v", err)
	}

	first, _ := c.LoadImage("a")
	second, _ := c.LoadImage("a")
	if first != second {
		t.Error("cached lookup returned a different image")
	}
	if calls != 1 {
		t.Errorf("loader calls = %d, want 1", calls)
	}

	for i := 0; i < 2; i++ {
		if _, err := c.LoadImage("missing"); err == nil {
			t.Fatal("expected error for missing sprite")
		}
	}
	if calls != 3 {
		t.Errorf("loader calls = %d, want 3 (failures are not cached)", calls)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestCachedAssetsEvicts(t *testing.T) {
	c, err := NewCachedAssets(GeneratedAssets{}, 1)
	if err != nil {
		t.Fatalf("NewCachedAssets: %v", err)
	}
	_, _ = c.LoadImage(ForegroundImageName)
	_, _ = c.LoadImage(BackgroundImageName)
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}
