package component

import (
	"math"
	"testing"
	"time"

	"glome/internal/hypersphere"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNewOrientation3DQuarterTurn(t *testing.T) {
	o := NewOrientation3D(math.Pi/2, mgl64.Vec3{0, 2, 0})
	if got := o.Axis(0); !got.ApproxFuncEqual(mgl64.Vec3{0, 0, -1}, hypersphere.Within(1e-12)) {
		t.Fatalf("right axis = %v, want (0,0,-1)", got)
	}
	if got := o.Axis(1); !got.ApproxFuncEqual(mgl64.Vec3{0, 1, 0}, hypersphere.Within(1e-12)) {
		t.Fatalf("up axis = %v, want (0,1,0)", got)
	}
}

func TestNewOrientation3DDegenerateAxis(t *testing.T) {
	if o := NewOrientation3D(1, mgl64.Vec3{}); o.Value() != mgl64.Ident3() {
		t.Fatalf("zero axis should give identity, got %v", o.Value())
	}
}

func TestRotatedComposes(t *testing.T) {
	o := NewOrientation3D(math.Pi/4, mgl64.Vec3{0, 0, 1}).Rotated(math.Pi/4, mgl64.Vec3{0, 0, 1})
	want := NewOrientation3D(math.Pi/2, mgl64.Vec3{0, 0, 1})
	if !o.Value().ApproxFuncEqual(want.Value(), hypersphere.Within(1e-12)) {
		t.Fatalf("two eighth turns != quarter turn: %v", o.Value())
	}
}

func TestVelocityDisplacement(t *testing.T) {
	v := Velocity3D{2, 0, -4}
	got := v.Displacement(500 * time.Millisecond)
	if !got.ApproxFuncEqual(mgl64.Vec3{1, 0, -2}, hypersphere.Within(1e-12)) {
		t.Fatalf("got %v", got)
	}
}

func TestAngularVelocityAngle(t *testing.T) {
	w := AngularVelocity3D{0, 3, 4}
	if got := w.Angle(2 * time.Second); math.Abs(got-10) > 1e-12 {
		t.Fatalf("angle = %v, want 10", got)
	}
	if got := w.Axis(); !got.ApproxFuncEqual(mgl64.Vec3{0, 0.6, 0.8}, hypersphere.Within(1e-12)) {
		t.Fatalf("axis = %v", got)
	}
}
