package hypersphere

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// checkFrame fails unless o is an orthonormal frame whose axes are tangent at o.Coord.
func checkFrame(t *testing.T, o Orientation) {
	t.Helper()
	cols := []mgl64.Vec4{o.Frame[0], o.Frame[1], o.Frame[2], o.Coord}
	for i := range cols {
		if math.Abs(cols[i].Len()-1) > 1e-9 {
			t.Fatalf("column %d not unit length: %v", i, cols[i])
		}
		for j := i + 1; j < len(cols); j++ {
			if d := cols[i].Dot(cols[j]); math.Abs(d) > 1e-9 {
				t.Fatalf("columns %d and %d not orthogonal: dot = %v", i, j, d)
			}
		}
	}
}

func TestDistanceSymmetric(t *testing.T) {
	a := mgl64.Vec4{0.2, 0.4, -0.1, 0.9}.Normalize()
	b := mgl64.Vec4{-0.7, 0.1, 0.3, 0.2}.Normalize()
	if Distance(a, b, 7) != Distance(b, a, 7) {
		t.Fatalf("distance not symmetric: %v vs %v", Distance(a, b, 7), Distance(b, a, 7))
	}
}

func TestDistanceToSelfIsZero(t *testing.T) {
	c := mgl64.Vec4{1, 2, 3, 4}.Normalize()
	if d := Distance(c, c, 10); d != 0 {
		t.Fatalf("expected 0, got %v", d)
	}
}

func TestArcRoundTrip(t *testing.T) {
	for _, r := range []float64{0.5, 1, 10, 250} {
		for i := 0; i <= 16; i++ {
			theta := math.Pi * float64(i) / 16
			if got := ArcAngle(r, ArcLength(r, theta)); math.Abs(got-theta) > 1e-5 {
				t.Errorf("r=%v θ=%v: round trip gave %v", r, theta, got)
			}
		}
	}
}

func TestArcLengthIsFractionOfCircumference(t *testing.T) {
	// A quarter turn covers a quarter of 2πr.
	if got, want := ArcLength(10, math.Pi/2), 2*math.Pi*10/4; math.Abs(got-want) > 1e-12 {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestOrientationTowardSameCoordIsIdentity(t *testing.T) {
	o := Transport(Origin, mgl64.Ident3(), mgl64.Vec3{1, 2, 3}, 10)
	if got := OrientationToward(o, o.Coord); got != o {
		t.Fatalf("expected unchanged orientation, got %+v", got)
	}
}

func TestOrientationTowardReachesTarget(t *testing.T) {
	target := mgl64.Vec4{0.3, -0.2, 0.5, 0.6}.Normalize()
	got := OrientationToward(Origin, target)
	if !got.Coord.ApproxFuncEqual(target, Within(1e-9)) {
		t.Fatalf("coord = %v, want %v", got.Coord, target)
	}
	checkFrame(t, got)
}

func TestOrientationTowardAntipode(t *testing.T) {
	south := mgl64.Vec4{0, 0, 0, -1}
	got := OrientationToward(Origin, south)
	if !got.Coord.ApproxFuncEqual(south, Within(1e-9)) {
		t.Fatalf("coord = %v, want %v", got.Coord, south)
	}
	checkFrame(t, got)
}

func TestOrientationTowardNearbyCoordLandsOnTarget(t *testing.T) {
	// Close enough that the dot product rounds to 1.
	to := mgl64.Vec4{1e-9, 0, 0, 1}
	got := OrientationToward(Origin, to)
	if got.Coord != to.Normalize() {
		t.Fatalf("coord = %v, want %v", got.Coord, to.Normalize())
	}
	if got.Frame != Origin.Frame {
		t.Fatalf("frame changed: %v", got.Frame)
	}
}

func TestWithinIsAbsolute(t *testing.T) {
	cases := []struct {
		got, want mgl64.Vec4
		eps       float64
		equal     bool
	}{
		{mgl64.Vec4{1.1e-16, 1, 0, 0}, mgl64.Vec4{0, 1, 0, 0}, 1e-9, true},
		{mgl64.Vec4{1, 0, 0, 1.8e-15}, mgl64.Vec4{1, 0, 0, 0}, 1e-9, true},
		{mgl64.Vec4{1e-6, 1, 0, 0}, mgl64.Vec4{0, 1, 0, 0}, 1e-9, false},
		{mgl64.Vec4{0, 1 + 1e-6, 0, 0}, mgl64.Vec4{0, 1, 0, 0}, 1e-9, false},
	}
	for _, tc := range cases {
		if eq := tc.got.ApproxFuncEqual(tc.want, Within(tc.eps)); eq != tc.equal {
			t.Errorf("Within(%g): %v vs %v = %v, want %v", tc.eps, tc.got, tc.want, eq, tc.equal)
		}
	}
}

func TestOrientationApproxEqualToleratesDriftAtZero(t *testing.T) {
	drifted := Origin
	drifted.Frame[0][1] = 1e-15
	if !Origin.ApproxEqual(drifted, 1e-9) {
		t.Fatal("1e-15 drift in a zero entry should be within 1e-9")
	}
	drifted.Frame[0][1] = 1e-6
	if Origin.ApproxEqual(drifted, 1e-9) {
		t.Fatal("1e-6 drift should exceed 1e-9")
	}
}

func TestTransportZeroOffsetIsIdentity(t *testing.T) {
	o := OrientationToward(Origin, mgl64.Vec4{0.5, 0.5, 0.5, 0.5})
	if got := Transport(o, mgl64.Ident3(), mgl64.Vec3{}, 10); got != o {
		t.Fatalf("zero offset moved the frame: %+v", got)
	}
	if got := Coord(o, mgl64.Ident3(), mgl64.Vec3{}, 10); got != o.Coord {
		t.Fatalf("zero offset moved the coordinate: %v", got)
	}
}

func TestCoordQuarterCircumference(t *testing.T) {
	const radius = 10.0
	quarter := math.Pi * radius / 2
	got := Coord(Origin, mgl64.Ident3(), mgl64.Vec3{quarter, 0, 0}, radius)
	if d := Distance(Origin.Coord, got, radius); math.Abs(d-quarter) > 1e-6 {
		t.Fatalf("geodesic distance = %v, want %v", d, quarter)
	}
	if !got.ApproxFuncEqual(mgl64.Vec4{1, 0, 0, 0}, Within(1e-9)) {
		t.Fatalf("expected to reach the x axis, got %v", got)
	}
}

func TestTransportKeepsFrameOrthonormal(t *testing.T) {
	o := Origin
	for i := 0; i < 50; i++ {
		o = Transport(o, mgl64.Rotate3DY(0.1*float64(i)), mgl64.Vec3{0.3, -0.4, 0.5}, 10)
	}
	checkFrame(t, o)
}

func TestTransportAgreesWithCoord(t *testing.T) {
	o := OrientationToward(Origin, mgl64.Vec4{0.1, 0.2, 0.3, 0.9}.Normalize())
	offset := mgl64.Vec3{2, -1, 0.5}
	want := Coord(o, mgl64.Ident3(), offset, 5)
	if got := Transport(o, mgl64.Ident3(), offset, 5).Coord; !got.ApproxFuncEqual(want, Within(1e-9)) {
		t.Fatalf("transported coord %v != %v", got, want)
	}
}

func TestCoordRespectsLocalRotation(t *testing.T) {
	const d = 3.0
	// A quarter turn about y takes +x to -z.
	rotated := Coord(Origin, mgl64.Rotate3DY(math.Pi/2), mgl64.Vec3{d, 0, 0}, 10)
	direct := Coord(Origin, mgl64.Ident3(), mgl64.Vec3{0, 0, -d}, 10)
	if !rotated.ApproxFuncEqual(direct, Within(1e-9)) {
		t.Fatalf("rotated offset %v != direct offset %v", rotated, direct)
	}
}

func TestCoordinateFromPosition(t *testing.T) {
	const radius = 20.0
	pos := mgl64.Vec3{3, 4, 12}
	c := CoordinateFromPosition(pos, radius)
	if math.Abs(c.Len()-1) > 1e-12 {
		t.Fatalf("coordinate not on the unit sphere: %v", c)
	}
	if d := Distance(Origin.Coord, c, radius); math.Abs(d-pos.Len()) > 1e-9 {
		t.Fatalf("distance from north pole = %v, want %v", d, pos.Len())
	}
}

func TestOrientationMat4RoundTrip(t *testing.T) {
	o := OrientationToward(Origin, mgl64.Vec4{0.5, -0.5, 0.5, 0.5})
	if got := OrientationFromMat4(o.Mat4()); got != o {
		t.Fatalf("round trip changed orientation: %+v", got)
	}
}
