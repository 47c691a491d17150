package sgexport

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/sgexport/host"
	"github.com/gogpu/sgexport/internal/coord"
)

// LaunchViewer opens path in the viewer executable and blocks until the
// viewer exits. It does nothing when viewer is empty.
//
// With useCamera set and a non-nil camera, the viewer starts from the
// camera's view instead of its own default.
func LaunchViewer(viewer, path string, camera *host.Camera, useCamera bool) error {
	if viewer == "" {
		return nil
	}
	if !useCamera {
		camera = nil
	}
	cmd := exec.Command(viewer, ViewerArgs(path, camera)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	Logger().Info("viewer launched", "viewer", viewer, "path", path, "camera", camera != nil)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("sgexport: viewer: %w", err)
	}
	return nil
}

// ViewerArgs returns the viewer command line for path. Camera vectors
// are converted to document coordinates.
//
//	scene.sgxb --eye x,y,z --center x,y,z --up x,y,z --fov f --near n --far f
func ViewerArgs(path string, camera *host.Camera) []string {
	args := []string{path}
	if camera == nil {
		return args
	}
	return append(args,
		"--eye", vec(coord.Vec3(camera.Position)),
		"--center", vec(coord.Vec3(camera.LookAt)),
		"--up", vec(coord.Vec3(camera.Up)),
		"--fov", num(camera.FOV),
		"--near", num(camera.Near),
		"--far", num(camera.Far),
	)
}

func vec(v mgl32.Vec3) string {
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = num(f)
	}
	return strings.Join(parts, ",")
}

func num(f float32) string {
	if f == 0 {
		f = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
