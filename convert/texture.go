package convert

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/gogpu/sgexport/graph"
	"github.com/gogpu/sgexport/host"
	"github.com/gogpu/sgexport/internal/format"
)

// PlaceholderID is the id of the 1x1 white image that stands in for
// textures that cannot be exported.
const PlaceholderID = "placeholder"

// textureIssues is the set of reasons a texture cannot be exported as is.
type textureIssues uint8

const (
	issueReadWrite textureIssues = 1 << iota
	issueFormat
	issueDimensions
)

func checkTexture(t host.Texture) textureIssues {
	var iss textureIssues
	if !t.Readable() {
		iss |= issueReadWrite
	}
	if !format.Supported(t.Format()) {
		iss |= issueFormat
	}
	switch t.Dimension() {
	case host.Texture2D, host.Texture2DArray, host.TextureCube:
	default:
		iss |= issueDimensions
	}
	return iss
}

// reportIssues adds one entry listing every issue of t.
func (c *ExportContext) reportIssues(t host.Texture, iss textureIssues) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s has the following issues:", t.Name())
	if iss&issueReadWrite != 0 {
		b.WriteString("\n    Read/Write not enabled")
	}
	if iss&issueFormat != 0 {
		fmt.Fprintf(&b, "\n    Format '%s' unsupported", t.Format())
	}
	if iss&issueDimensions != 0 {
		fmt.Fprintf(&b, "\n    Unsupported Texture dimension '%s'", t.Dimension())
	}
	c.Report.Add("%s", b.String())
}

// Placeholder returns the 1x1 white image of the current pass. Every
// texture that cannot be exported resolves to this same record.
func (c *ExportContext) Placeholder() *graph.ImageData {
	if c.placeholder == nil {
		c.placeholder = &graph.ImageData{
			ID:         PlaceholderID,
			Pixels:     c.solidRGBA(1, 1, color.RGBA{255, 255, 255, 255}),
			Format:     format.R8G8B8A8UNorm,
			Width:      1,
			Height:     1,
			Depth:      1,
			ViewType:   format.ViewTypeDefault,
			AnisoLevel: 1,
			WrapMode:   format.AddressRepeat,
			FilterMode: format.FilterLinear,
			MipmapMode: format.MipmapNearest,
			MipCount:   1,
		}
	}
	return c.placeholder
}

func textureID(t host.Texture) string {
	return strconv.FormatInt(int64(t.InstanceID()), 10)
}

// baseImage fills the fields every image of t shares.
func baseImage(t host.Texture) *graph.ImageData {
	return &graph.ImageData{
		ID:         textureID(t),
		Format:     format.FromHost(t.Format()),
		Width:      t.Width(),
		Height:     t.Height(),
		Depth:      1,
		ViewType:   format.ViewTypeDefault,
		AnisoLevel: t.AnisoLevel(),
		WrapMode:   format.AddressModeFor(t.WrapMode()),
		FilterMode: format.FilterFor(t.FilterMode()),
		MipmapMode: format.MipmapModeFor(t.FilterMode()),
		MipCount:   max(t.MipCount(), 1),
	}
}

// Texture converts a texture to one image. Cubemaps become a vertical
// atlas of their six faces and arrays yield their first layer. Textures
// that cannot be exported resolve to the placeholder and are reported
// once per pass.
func (c *ExportContext) Texture(t host.Texture) *graph.ImageData {
	if t == nil {
		return nil
	}
	return c.images.GetOrCreate(imageKey{t.InstanceID(), -1}, func() *graph.ImageData {
		return c.texture(t)
	})
}

func (c *ExportContext) texture(t host.Texture) *graph.ImageData {
	if iss := checkTexture(t); iss != 0 {
		c.reportIssues(t, iss)
		return c.Placeholder()
	}

	switch t.Dimension() {
	case host.TextureCube:
		return c.cubemap(t)
	case host.Texture2DArray:
		return c.TextureArray(t)[0]
	}

	d := baseImage(t)
	pix := t.Pixels()
	if need := d.Format.ImageBytes(d.Width, d.Height, 1); len(pix) < need {
		c.Report.Add("%s: pixel data too short (%d of %d bytes)", t.Name(), len(pix), need)
		return c.Placeholder()
	}
	d.Pixels = pix
	return d
}

// Cubemap converts a cube texture to a vertical atlas of its six faces,
// width x 6*width, viewed as a cube. Non-cube textures convert as with
// Texture.
func (c *ExportContext) Cubemap(t host.Texture) *graph.ImageData {
	return c.Texture(t)
}

func (c *ExportContext) cubemap(t host.Texture) *graph.ImageData {
	w := t.Width()
	faces := make([]image.Image, 6)
	for i := range faces {
		if faces[i] = t.Render(i); faces[i] == nil {
			c.Report.Add("%s: cubemap face %d cannot be rendered", t.Name(), i)
			return c.Placeholder()
		}
	}
	d := baseImage(t)
	d.Format = format.R8G8B8A8UNorm
	d.Height = w
	d.Depth = 6
	d.ViewType = format.ViewTypeCube
	d.MipCount = 1
	d.Pixels = c.withScratch(w, w*6, func(dst *image.RGBA) {
		for i, face := range faces {
			blit(dst, image.Rect(0, i*w, w, (i+1)*w), face)
		}
	})
	return d
}

// TextureArray converts every layer of an array texture to an RGBA8
// image keyed by (texture, layer). A plain 2D texture yields one layer.
// Textures that cannot be exported yield the placeholder alone.
func (c *ExportContext) TextureArray(t host.Texture) []*graph.ImageData {
	if t == nil {
		return nil
	}
	return c.arrays.GetOrCreate(t.InstanceID(), func() []*graph.ImageData {
		iss := checkTexture(t) &^ issueFormat
		if t.Dimension() == host.TextureCube {
			iss |= issueDimensions
		}
		if iss != 0 {
			c.reportIssues(t, iss)
			return []*graph.ImageData{c.Placeholder()}
		}
		layers := make([]*graph.ImageData, max(t.Depth(), 1))
		for i := range layers {
			layers[i] = c.images.GetOrCreate(imageKey{t.InstanceID(), i}, func() *graph.ImageData {
				return c.layer(t, i)
			})
		}
		return layers
	})
}

func (c *ExportContext) layer(t host.Texture, i int) *graph.ImageData {
	var pix []byte
	switch raw := t.Layer(i); {
	case isRGBA8(t.Format()) && len(raw) >= t.Width()*t.Height()*4:
		pix = raw[:t.Width()*t.Height()*4]
	default:
		pix = c.renderRGBA(t, i)
	}
	if pix == nil {
		c.Report.Add("%s: layer %d cannot be converted to RGBA", t.Name(), i)
		return c.Placeholder()
	}
	d := baseImage(t)
	d.ID = textureID(t) + ":" + strconv.Itoa(i)
	d.Format = format.R8G8B8A8UNorm
	d.Pixels = pix
	d.MipCount = 1
	return d
}

func isRGBA8(f host.PixelFormat) bool {
	return f == host.FormatR8G8B8A8UNorm || f == host.FormatR8G8B8A8SRGB
}

// DescriptorImage binds the image of t at binding. Records are keyed by
// "<binding>:<texture id>".
func (c *ExportContext) DescriptorImage(binding uint32, t host.Texture) *graph.DescriptorImageData {
	if t == nil {
		return nil
	}
	key := fmt.Sprintf("%d:%s", binding, textureID(t))
	return c.descriptorImages.GetOrCreate(key, func() *graph.DescriptorImageData {
		img := c.Texture(t)
		return &graph.DescriptorImageData{
			ID:      fmt.Sprintf("%d:%s", binding, img.ID),
			Binding: binding,
			Images:  []*graph.ImageData{img},
		}
	})
}

// DescriptorImageArray binds the layers of all textures, in order, as one
// image array at binding. Requests for the same binding and the same
// texture sequence share one record, keyed by its id
// "<binding>:[<id>,<id>...]".
func (c *ExportContext) DescriptorImageArray(binding uint32, textures ...host.Texture) *graph.DescriptorImageData {
	present := make([]host.Texture, 0, len(textures))
	names := make([]string, 0, len(textures))
	for _, t := range textures {
		if t != nil {
			present = append(present, t)
			names = append(names, textureID(t))
		}
	}
	if len(present) == 0 {
		return nil
	}
	key := fmt.Sprintf("%d:[%s]", binding, strings.Join(names, ","))
	return c.descriptorImages.GetOrCreate(key, func() *graph.DescriptorImageData {
		d := &graph.DescriptorImageData{ID: key, Binding: binding}
		for _, t := range present {
			d.Images = append(d.Images, c.TextureArray(t)...)
		}
		return d
	})
}
