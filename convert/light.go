package convert

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/sgexport/graph"
	"github.com/gogpu/sgexport/host"
)

// Light converts a light source. The light shines along its node's
// forward axis from the node origin. Area and disc lights are reported
// and yield nil.
func (c *ExportContext) Light(l host.Light) *graph.LightData {
	if l == nil {
		return nil
	}
	d := &graph.LightData{
		Direction: mgl32.Vec3{0, 0, 1},
		Color:     l.Color(),
		Intensity: l.Intensity(),
	}
	switch l.Kind() {
	case host.LightPoint:
		d.Type = graph.LightPoint
	case host.LightDirectional:
		d.Type = graph.LightDirectional
	case host.LightSpot:
		d.Type = graph.LightSpot
		d.InnerAngle = l.InnerSpotAngle() * 0.5
		d.OuterAngle = l.SpotAngle() * 0.5
	default:
		c.Report.Add("Unsupported light type: %s", l.Kind())
		return nil
	}
	return d
}

// AmbientLight converts the scene ambient state to an eye-space ambient
// light. Only flat ambient lighting is supported; other modes are
// reported and yield nil.
func (c *ExportContext) AmbientLight(env host.Environment) *graph.LightData {
	if env == nil {
		return nil
	}
	if env.AmbientMode() != host.AmbientFlat {
		c.Report.Add("Unsupported ambient light mode: %s", env.AmbientMode())
		return nil
	}
	return &graph.LightData{
		Type:               graph.LightAmbient,
		EyeCoordinateFrame: true,
		Color:              env.AmbientColor(),
		Intensity:          env.AmbientIntensity(),
	}
}
