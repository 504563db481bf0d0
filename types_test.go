package confetti

import (
	"math"
	"math/rand/v2"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}
	tests := []struct {
		x, y float64
		want bool
	}{
		{50, 40, true},
		{10, 20, true},   // top-left corner
		{110, 70, true},  // bottom-right corner
		{9.9, 40, false}, // left of rect
		{50, 70.1, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestParsePlacement(t *testing.T) {
	tests := []struct {
		in      string
		want    Placement
		wantErr bool
	}{
		{"near", PlacementNear, false},
		{"Foreground", PlacementNear, false},
		{" far ", PlacementFar, false},
		{"background", PlacementFar, false},
		{"BOTH", PlacementBoth, false},
		{"", 0, true},
		{"sideways", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePlacement(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParsePlacement(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPlacementStringRoundTrip(t *testing.T) {
	for _, p := range []Placement{PlacementNear, PlacementFar, PlacementBoth} {
		got, err := ParsePlacement(p.String())
		if err != nil || got != p {
			t.Errorf("ParsePlacement(%q) = %v, %v; want %v", p.String(), got, err, p)
		}
	}
	if s := Placement(9).String(); s != "unknown" {
		t.Errorf("Placement(9).String() = %q, want unknown", s)
	}
}

func TestPlacementVariants(t *testing.T) {
	tests := []struct {
		p    Placement
		want []Variant
	}{
		{PlacementNear, []Variant{VariantNear}},
		{PlacementFar, []Variant{VariantFar}},
		{PlacementBoth, []Variant{VariantNear, VariantFar}},
	}
	for _, tt := range tests {
		got := tt.p.Variants()
		if len(got) != len(tt.want) {
			t.Fatalf("%v.Variants() = %v, want %v", tt.p, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%v.Variants()[%d] = %v, want %v", tt.p, i, got[i], tt.want[i])
			}
		}
	}
}

func TestVariantString(t *testing.T) {
	if VariantNear.String() != "near" || VariantFar.String() != "far" {
		t.Errorf("variant names = %q, %q", VariantNear, VariantFar)
	}
}

func TestAround(t *testing.T) {
	r := Around(5, 10)
	if r.Min != 0 || r.Max != 10 {
		t.Errorf("Around(5, 10) = %+v, want {0 10}", r)
	}
	r = Around(180, 45)
	if r.Min != 157.5 || r.Max != 202.5 {
		t.Errorf("Around(180, 45) = %+v, want {157.5 202.5}", r)
	}
}

func TestRangeRandom(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	r := Range{Min: -3, Max: 4}
	for i := 0; i < 1000; i++ {
		v := r.Random(rng)
		if v < r.Min || v > r.Max {
			t.Fatalf("Random() = %v, outside %+v", v, r)
		}
	}
	if v := (Range{Min: 2, Max: 2}).Random(rng); v != 2 {
		t.Errorf("degenerate Random() = %v, want 2", v)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 0, 4}.Normalize()
	if !approxEqual(v.Len(), 1, epsilon) {
		t.Errorf("Len = %v, want 1", v.Len())
	}
	if !approxEqual(v.X, 0.6, epsilon) || !approxEqual(v.Z, 0.8, epsilon) {
		t.Errorf("Normalize = %+v, want {0.6 0 0.8}", v)
	}
}

func TestColorToRGBAPremultiplied(t *testing.T) {
	c := Color{R: 1, G: 0.5, B: 0, A: 0.5}.toRGBA()
	if c.A != 127 && c.A != 128 {
		t.Errorf("A = %d, want ~128", c.A)
	}
	if c.R != c.A {
		t.Errorf("R = %d, want premultiplied %d", c.R, c.A)
	}
	if c.B != 0 {
		t.Errorf("B = %d, want 0", c.B)
	}
}
