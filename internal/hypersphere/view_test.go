package hypersphere

import (
	"bytes"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const testRadius = 10.0

func TestLocalDirectionPointsAlongGeodesic(t *testing.T) {
	ahead := CoordinateFromPosition(mgl64.Vec3{0, 0, 5}, testRadius)
	if got := LocalDirection(Origin.Coord, ahead); !got.ApproxFuncEqual(mgl64.Vec4{0, 0, 1, 0}, Within(1e-9)) {
		t.Errorf("direction to object ahead = %v", got)
	}
	behind := CoordinateFromPosition(mgl64.Vec3{0, 0, -5}, testRadius)
	if got := LocalDirection(Origin.Coord, behind); !got.ApproxFuncEqual(mgl64.Vec4{0, 0, -1, 0}, Within(1e-9)) {
		t.Errorf("direction to object behind = %v", got)
	}
}

func TestLocalDirectionIsTangent(t *testing.T) {
	from := mgl64.Vec4{0.2, 0.1, -0.3, 0.9}.Normalize()
	to := mgl64.Vec4{-0.4, 0.5, 0.2, 0.6}.Normalize()
	dir := LocalDirection(from, to)
	if math.Abs(dir.Dot(from)) > 1e-9 {
		t.Fatalf("direction not tangent at from: dot = %v", dir.Dot(from))
	}
	if dir.Dot(to) <= 0 {
		t.Fatalf("direction points away from target: %v", dir)
	}
}

func TestViewAnglesStraightAhead(t *testing.T) {
	object := CoordinateFromPosition(mgl64.Vec3{0, 0, 5}, testRadius)
	a := ViewAngles(mgl64.Ident3(), Origin, object, testRadius)
	if math.Abs(a.Horizontal) > 1e-6 || math.Abs(a.Vertical) > 1e-6 {
		t.Fatalf("expected centred object, got %+v", a)
	}
	if math.Abs(a.Distance-5) > 1e-9 {
		t.Fatalf("distance = %v, want 5", a.Distance)
	}
}

func TestViewAnglesDiagonal(t *testing.T) {
	object := CoordinateFromPosition(mgl64.Vec3{5 / math.Sqrt2, 0, 5 / math.Sqrt2}, testRadius)
	a := ViewAngles(mgl64.Ident3(), Origin, object, testRadius)
	if math.Abs(a.Horizontal-math.Pi/4) > 1e-6 {
		t.Errorf("horizontal = %v, want π/4", a.Horizontal)
	}
	if math.Abs(a.Vertical) > 1e-6 {
		t.Errorf("vertical = %v, want 0", a.Vertical)
	}
	if math.Abs(a.Distance-5) > 1e-9 {
		t.Errorf("distance = %v, want 5", a.Distance)
	}
}

func TestViewAnglesAbove(t *testing.T) {
	object := CoordinateFromPosition(mgl64.Vec3{0, 2, 2}, testRadius)
	a := ViewAngles(mgl64.Ident3(), Origin, object, testRadius)
	if math.Abs(a.Vertical-math.Pi/4) > 1e-6 {
		t.Errorf("vertical = %v, want π/4", a.Vertical)
	}
	if math.Abs(a.Horizontal) > 1e-6 {
		t.Errorf("horizontal = %v, want 0", a.Horizontal)
	}
}

func TestViewAnglesFollowCameraSpin(t *testing.T) {
	// Turning the camera a quarter turn about y brings an object on -x to the front.
	object := CoordinateFromPosition(mgl64.Vec3{-5, 0, 0}, testRadius)
	a := ViewAngles(mgl64.Rotate3DY(-math.Pi/2), Origin, object, testRadius)
	if math.Abs(a.Horizontal) > 1e-6 || math.Abs(a.Vertical) > 1e-6 {
		t.Fatalf("expected centred object after turning, got %+v", a)
	}
}

func TestViewAnglesBehindCamera(t *testing.T) {
	object := CoordinateFromPosition(mgl64.Vec3{0, 0, -5}, testRadius)
	a := ViewAngles(mgl64.Ident3(), Origin, object, testRadius)
	want := 2*math.Pi*testRadius - 5
	if math.Abs(a.Distance-want) > 1e-9 {
		t.Fatalf("distance = %v, want %v (the long way round)", a.Distance, want)
	}
	if math.Abs(a.Horizontal) > 1e-6 || math.Abs(a.Vertical) > 1e-6 {
		t.Fatalf("object behind should fold to the centre, got %+v", a)
	}
}

func TestViewAnglesAntipode(t *testing.T) {
	a := ViewAngles(mgl64.Ident3(), Origin, mgl64.Vec4{0, 0, 0, -1}, testRadius)
	if math.Abs(a.Distance-math.Pi*testRadius) > 1e-6 {
		t.Fatalf("distance = %v, want half circumference %v", a.Distance, math.Pi*testRadius)
	}
}

func TestViewSpaceCoords(t *testing.T) {
	v, ok := ViewSpaceCoords(Angles{Horizontal: 0.2, Vertical: 0.1, Distance: 5}, 1, 2, 50)
	if !ok {
		t.Fatal("expected finite result")
	}
	want := mgl64.Vec3{-0.2, 0.2, 0.1}
	if !v.ApproxFuncEqual(want, Within(1e-12)) {
		t.Fatalf("got %v, want %v", v, want)
	}
}

func TestProjectorReportsNonFinite(t *testing.T) {
	var buf bytes.Buffer
	p := Projector{
		FieldOfView: 1,
		AspectRatio: 1,
		FarPlane:    10,
		Logger:      slog.New(slog.NewTextHandler(&buf, nil)),
	}
	v := p.Project(Angles{Horizontal: math.NaN()})
	if !math.IsNaN(v.X()) {
		t.Fatalf("expected NaN to pass through, got %v", v)
	}
	if !strings.Contains(buf.String(), "non-finite") {
		t.Fatalf("expected a diagnostic, log was %q", buf.String())
	}

	buf.Reset()
	p.Project(Angles{Horizontal: 0.1, Vertical: 0.1, Distance: 1})
	if buf.Len() != 0 {
		t.Fatalf("unexpected diagnostic for finite input: %q", buf.String())
	}
}
