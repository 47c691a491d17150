package coord

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestVec3(t *testing.T) {
	got := Vec3(mgl32.Vec3{1, 2, 3})
	want := mgl32.Vec3{-1, 2, 3}
	if got != want {
		t.Errorf("Vec3 = %v, want %v", got, want)
	}
}

func TestVec4KeepsW(t *testing.T) {
	got := Vec4(mgl32.Vec4{1, 2, 3, -1})
	want := mgl32.Vec4{-1, 2, 3, -1}
	if got != want {
		t.Errorf("Vec4 = %v, want %v", got, want)
	}
}

func TestSlicesInPlace(t *testing.T) {
	v3 := []mgl32.Vec3{{1, 0, 0}, {-2, 1, 1}}
	Vec3s(v3)
	if v3[0][0] != -1 || v3[1][0] != 2 {
		t.Errorf("Vec3s = %v", v3)
	}
	v4 := []mgl32.Vec4{{3, 0, 0, 1}}
	Vec4s(v4)
	if v4[0][0] != -3 || v4[0][3] != 1 {
		t.Errorf("Vec4s = %v", v4)
	}
}

func TestQuat(t *testing.T) {
	q := mgl32.Quat{W: 0.5, V: mgl32.Vec3{0.1, 0.2, 0.3}}
	got := Quat(q)
	want := mgl32.Quat{W: 0.5, V: mgl32.Vec3{0.1, -0.2, -0.3}}
	if got != want {
		t.Errorf("Quat = %v, want %v", got, want)
	}
}

// Rotating a converted point by a converted rotation must equal
// converting the rotated point.
func TestQuatMatchesMatrix(t *testing.T) {
	q := mgl32.QuatRotate(mgl32.DegToRad(40), mgl32.Vec3{0.3, 0.8, 0.2}.Normalize())
	p := mgl32.Vec3{1, 2, 3}

	want := Vec3(q.Rotate(p))
	got := Quat(q).Rotate(Vec3(p))
	if !got.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("rotated = %v, want %v", got, want)
	}
}

func TestMat4(t *testing.T) {
	m := mgl32.Translate3D(1, 2, 3)
	got := Mat4(m)
	want := mgl32.Translate3D(-1, 2, 3)
	if !got.ApproxEqual(want) {
		t.Errorf("Mat4 = %v, want %v", got, want)
	}

	// Converting twice is the identity.
	r := mgl32.HomogRotate3DY(0.7).Mul4(mgl32.Translate3D(4, 5, 6))
	if back := Mat4(Mat4(r)); !back.ApproxEqual(r) {
		t.Errorf("Mat4(Mat4(m)) = %v, want %v", back, r)
	}
}

func TestFlipWinding(t *testing.T) {
	tests := []struct {
		name string
		in   []uint32
		want []uint32
	}{
		{"empty", nil, nil},
		{"one", []uint32{0, 1, 2}, []uint32{2, 1, 0}},
		{"two", []uint32{0, 1, 2, 3, 4, 5}, []uint32{2, 1, 0, 5, 4, 3}},
		{"partial", []uint32{0, 1, 2, 7, 8}, []uint32{2, 1, 0, 7, 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			FlipWinding(tt.in)
			if len(tt.in) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(tt.in), len(tt.want))
			}
			for i := range tt.want {
				if tt.in[i] != tt.want[i] {
					t.Errorf("index %d = %d, want %d", i, tt.in[i], tt.want[i])
				}
			}
		})
	}
}
