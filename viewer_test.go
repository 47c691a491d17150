package sgexport

import (
	"os/exec"
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/sgexport/host"
)

func TestViewerArgs(t *testing.T) {
	if got := ViewerArgs("a.sgxb", nil); !reflect.DeepEqual(got, []string{"a.sgxb"}) {
		t.Errorf("ViewerArgs(nil camera) = %v, want [a.sgxb]", got)
	}

	camera := &host.Camera{
		Position: mgl32.Vec3{1, 2, -5},
		LookAt:   mgl32.Vec3{0, 0.5, 0},
		Up:       mgl32.Vec3{0, 1, 0},
		FOV:      60,
		Near:     0.1,
		Far:      1000,
	}
	want := []string{
		"a.sgxb",
		"--eye", "-1,2,-5",
		"--center", "0,0.5,0",
		"--up", "0,1,0",
		"--fov", "60",
		"--near", "0.1",
		"--far", "1000",
	}
	if got := ViewerArgs("a.sgxb", camera); !reflect.DeepEqual(got, want) {
		t.Errorf("ViewerArgs() = %v, want %v", got, want)
	}
}

func TestLaunchViewerDisabled(t *testing.T) {
	if err := LaunchViewer("", "a.sgxb", nil, true); err != nil {
		t.Errorf("LaunchViewer() with no viewer = %v, want nil", err)
	}
}

func TestLaunchViewer(t *testing.T) {
	truePath, err := exec.LookPath("true")
	if err != nil {
		t.Skip("no 'true' executable")
	}
	if err := LaunchViewer(truePath, "a.sgxb", &host.Camera{FOV: 60}, true); err != nil {
		t.Errorf("LaunchViewer() = %v", err)
	}
	falsePath, err := exec.LookPath("false")
	if err != nil {
		t.Skip("no 'false' executable")
	}
	if err := LaunchViewer(falsePath, "a.sgxb", nil, false); err == nil {
		t.Error("LaunchViewer() should report a failing viewer")
	}
}
