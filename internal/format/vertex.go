package format

import "github.com/gogpu/gputypes"

// VertexAttribute identifies one vertex stream of an exported mesh.
type VertexAttribute int

// Vertex streams in binding order.
const (
	AttributePosition VertexAttribute = iota
	AttributeNormal
	AttributeTangent
	AttributeColor
	AttributeUV0
	AttributeUV1

	attributeCount
)

var attributeNames = [attributeCount]string{
	AttributePosition: "VERTEX",
	AttributeNormal:   "NORMAL",
	AttributeTangent:  "TANGENT",
	AttributeColor:    "COLOR",
	AttributeUV0:      "TEXCOORD0",
	AttributeUV1:      "TEXCOORD1",
}

// String returns the attribute name used in shader mappings.
func (a VertexAttribute) String() string {
	if a < 0 || a >= attributeCount {
		return "Unknown"
	}
	return attributeNames[a]
}

// ParseVertexAttribute returns the attribute with the given mapping name.
func ParseVertexAttribute(s string) (VertexAttribute, bool) {
	for i, name := range attributeNames {
		if name == s {
			return VertexAttribute(i), true
		}
	}
	return 0, false
}

// Each stream is a separate buffer with a fixed shader location.
var vertexLayoutTable = [attributeCount]gputypes.VertexBufferLayout{
	AttributePosition: {
		ArrayStride: 12,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes:  []gputypes.VertexAttribute{{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0}},
	},
	AttributeNormal: {
		ArrayStride: 12,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes:  []gputypes.VertexAttribute{{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 1}},
	},
	AttributeTangent: {
		ArrayStride: 16,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes:  []gputypes.VertexAttribute{{Format: gputypes.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 2}},
	},
	AttributeColor: {
		ArrayStride: 16,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes:  []gputypes.VertexAttribute{{Format: gputypes.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 3}},
	},
	AttributeUV0: {
		ArrayStride: 8,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes:  []gputypes.VertexAttribute{{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 4}},
	},
	AttributeUV1: {
		ArrayStride: 8,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes:  []gputypes.VertexAttribute{{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 5}},
	},
}

// VertexLayout returns the WebGPU buffer layout for one stream.
func VertexLayout(a VertexAttribute) gputypes.VertexBufferLayout {
	if a < 0 || a >= attributeCount {
		return gputypes.VertexBufferLayout{}
	}
	return vertexLayoutTable[a]
}
