package confetti

import (
	"encoding/json"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
)

// atlasRegion describes a sprite's sub-rectangle within an atlas page.
type atlasRegion struct {
	page       int
	x, y, w, h int
	rotated    bool
}

// Atlas is an AssetLoader backed by TexturePacker JSON and its page images.
// Unlike a render atlas it never substitutes a placeholder: an unknown name
// is an error so that a missing confetti sprite fails at startup.
type Atlas struct {
	// Pages contains the atlas page images indexed by page number.
	Pages   []*ebiten.Image
	regions map[string]atlasRegion
}

// LoadAtlas parses TexturePacker JSON data and associates the given page images.
// Supports both the hash format (single "frames" object) and the array format
// ("textures" array with per-page frame lists).
func LoadAtlas(jsonData []byte, pages []*ebiten.Image) (*Atlas, error) {
	var probe struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, errors.Wrap(err, "failed to parse atlas JSON")
	}

	atlas := &Atlas{
		Pages:   pages,
		regions: make(map[string]atlasRegion),
	}

	switch {
	case probe.Textures != nil:
		if err := parseArrayFormat(probe.Textures, atlas); err != nil {
			return nil, err
		}
	case probe.Frames != nil:
		if err := parseHashFrames(probe.Frames, 0, atlas); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New("atlas JSON has neither \"frames\" nor \"textures\" key")
	}
	return atlas, nil
}

// Has reports whether the atlas defines a region called name.
func (a *Atlas) Has(name string) bool {
	_, ok := a.regions[name]
	return ok
}

// LoadImage returns the named region as a sub-image of its page.
func (a *Atlas) LoadImage(name string) (*ebiten.Image, error) {
	r, ok := a.regions[name]
	if !ok {
		return nil, errors.Wrapf(ErrAssetNotFound, "atlas region %q", name)
	}
	if r.page < 0 || r.page >= len(a.Pages) || a.Pages[r.page] == nil {
		return nil, errors.Errorf("atlas region %q references missing page %d", name, r.page)
	}
	if r.rotated {
		return nil, errors.Errorf("atlas region %q is rotated; particle sprites must be packed upright", name)
	}
	rect := image.Rect(r.x, r.y, r.x+r.w, r.y+r.h)
	return a.Pages[r.page].SubImage(rect).(*ebiten.Image), nil
}

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame   jsonRect `json:"frame"`
	Rotated bool     `json:"rotated"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Frames map[string]jsonFrame `json:"frames"`
}

// parseHashFrames parses the hash format: {"name": {frame...}, ...}
func parseHashFrames(raw json.RawMessage, page int, atlas *Atlas) error {
	var frames map[string]jsonFrame
	if err := json.Unmarshal(raw, &frames); err != nil {
		return errors.Wrap(err, "failed to parse atlas frames")
	}
	for name, f := range frames {
		atlas.regions[name] = frameToRegion(f, page)
	}
	return nil
}

// parseArrayFormat parses the array format: [{"image":"...", "frames":{...}}, ...]
func parseArrayFormat(raw json.RawMessage, atlas *Atlas) error {
	var textures []jsonTexturePage
	if err := json.Unmarshal(raw, &textures); err != nil {
		return errors.Wrap(err, "failed to parse atlas textures array")
	}
	for i, tex := range textures {
		for name, f := range tex.Frames {
			atlas.regions[name] = frameToRegion(f, i)
		}
	}
	return nil
}

func frameToRegion(f jsonFrame, page int) atlasRegion {
	return atlasRegion{
		page:    page,
		x:       f.Frame.X,
		y:       f.Frame.Y,
		w:       f.Frame.W,
		h:       f.Frame.H,
		rotated: f.Rotated,
	}
}
