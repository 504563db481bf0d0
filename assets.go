package confetti

import (
	"image"
	"image/color"
	_ "image/png" // register the PNG decoder for FSAssets
	"io/fs"
	"path"

	"github.com/hajimehoshi/ebiten/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
)

// Sprite asset names resolved when the Near and Far profiles are built.
const (
	ForegroundImageName = "ConfettiForeground"
	BackgroundImageName = "ConfettiBackground"
)

// AssetLoader resolves a sprite by name. Implementations return an error
// wrapping ErrAssetNotFound when the name is unknown.
type AssetLoader interface {
	LoadImage(name string) (*ebiten.Image, error)
}

// AssetFunc adapts a plain function to the AssetLoader interface.
type AssetFunc func(name string) (*ebiten.Image, error)

// LoadImage calls f(name).
func (f AssetFunc) LoadImage(name string) (*ebiten.Image, error) {
	return f(name)
}

// FSAssets loads "<name>.png" from a file system, optionally under Dir.
type FSAssets struct {
	FS  fs.FS
	Dir string
}

// LoadImage opens and decodes the named sprite.
func (a FSAssets) LoadImage(name string) (*ebiten.Image, error) {
	p := path.Join(a.Dir, name+".png")
	f, err := a.FS.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(ErrAssetNotFound, "open %s", p)
		}
		return nil, errors.Wrapf(err, "open %s", p)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", p)
	}
	return ebiten.NewImageFromImage(img), nil
}

// GeneratedAssets draws the two built-in confetti sprites in code. Sprites
// are white so the per-particle tint gives them their color.
type GeneratedAssets struct{}

// LoadImage returns a freshly drawn sprite for a known name.
func (GeneratedAssets) LoadImage(name string) (*ebiten.Image, error) {
	switch name {
	case ForegroundImageName:
		return ebiten.NewImageFromImage(confettiStrip(16, 8, 0)), nil
	case BackgroundImageName:
		// Soft edges stand in for the background sprite's baked-in blur.
		return ebiten.NewImageFromImage(confettiStrip(12, 6, 2)), nil
	default:
		return nil, errors.Wrapf(ErrAssetNotFound, "generated sprite %q", name)
	}
}

// confettiStrip returns a w×h white rectangle whose outer feather pixels
// fade linearly to transparent.
func confettiStrip(w, h, feather int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			edge := min(x, y, w-1-x, h-1-y)
			a := 255
			if feather > 0 && edge < feather {
				a = 255 * (edge + 1) / (feather + 1)
			}
			img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: uint8(a)})
		}
	}
	return img
}

// CachedAssets memoizes another loader's successful lookups in an LRU cache.
// Failed lookups are not cached.
type CachedAssets struct {
	loader AssetLoader
	cache  *lru.Cache[string, *ebiten.Image]
}

// NewCachedAssets wraps loader with a cache holding up to size sprites.
func NewCachedAssets(loader AssetLoader, size int) (*CachedAssets, error) {
	if size <= 0 {
		size = 16
	}
	cache, err := lru.New[string, *ebiten.Image](size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create asset cache")
	}
	return &CachedAssets{loader: loader, cache: cache}, nil
}

// LoadImage returns the cached sprite or loads and caches it.
func (c *CachedAssets) LoadImage(name string) (*ebiten.Image, error) {
	if img, ok := c.cache.Get(name); ok {
		return img, nil
	}
	img, err := c.loader.LoadImage(name)
	if err != nil {
		return nil, err
	}
	c.cache.Add(name, img)
	return img, nil
}

// Len returns the number of cached sprites.
func (c *CachedAssets) Len() int {
	return c.cache.Len()
}
