package convert

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/sgexport/host"
	"github.com/gogpu/sgexport/host/inmem"
	"github.com/gogpu/sgexport/internal/format"
)

var red = color.RGBA{255, 0, 0, 255}

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestTexture2D(t *testing.T) {
	c := newTestContext(t)
	src := inmem.SolidTexture(5, "Bricks", 2, 2, red)
	src.Wrap = host.WrapClamp
	src.Filter = host.FilterTrilinear
	src.Aniso = 4

	d := c.Texture(src)
	require.NotNil(t, d)
	assert.Equal(t, "5", d.ID)
	assert.Equal(t, format.R8G8B8A8UNorm, d.Format)
	assert.Equal(t, src.Layers[0], d.Pixels)
	assert.Equal(t, 2, d.Width)
	assert.Equal(t, 2, d.Height)
	assert.Equal(t, 1, d.Depth)
	assert.Equal(t, format.ViewTypeDefault, d.ViewType)
	assert.Equal(t, format.AddressClampToEdge, d.WrapMode)
	assert.Equal(t, format.FilterLinear, d.FilterMode)
	assert.Equal(t, format.MipmapLinear, d.MipmapMode)
	assert.True(t, d.AnisotropyEnabled())
	assert.Same(t, d, c.Texture(src))
	assert.Zero(t, c.Report.Len())
}

func TestTexturePlaceholder(t *testing.T) {
	tests := []struct {
		name string
		tex  *inmem.Texture
		want string
	}{
		{
			name: "1D texture",
			tex:  &inmem.Texture{ID: 1, Label: "Gradient", Dim: host.Texture1D, PixelFormat: host.FormatR8G8B8A8UNorm, W: 4, H: 1},
			want: "    Unsupported Texture dimension 'Tex1D'",
		},
		{
			name: "unreadable",
			tex:  &inmem.Texture{ID: 2, Label: "Locked", Dim: host.Texture2D, PixelFormat: host.FormatR8G8B8A8UNorm, W: 1, H: 1, Unreadable: true},
			want: "    Read/Write not enabled",
		},
		{
			name: "unrenderable format",
			tex:  &inmem.Texture{ID: 3, Label: "Packed", Dim: host.Texture2D, PixelFormat: host.FormatR8G8B8UNorm, W: 1, H: 1, Layers: [][]byte{{1, 2, 3}}},
			want: "    Format 'R8G8B8_UNorm' unsupported",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContext(t)
			d := c.Texture(tt.tex)
			assert.Same(t, c.Placeholder(), d)
			assert.Same(t, d, c.Texture(tt.tex))

			require.Equal(t, 1, c.Report.Len(), "one entry per texture and pass")
			entry := c.Report.Lines()[0]
			assert.Contains(t, entry, tt.tex.Label+" has the following issues:")
			assert.Contains(t, entry, tt.want)
		})
	}
}

func TestPlaceholder(t *testing.T) {
	c := newTestContext(t)
	p := c.Placeholder()
	assert.Equal(t, PlaceholderID, p.ID)
	assert.Equal(t, []byte{255, 255, 255, 255}, p.Pixels)
	assert.Equal(t, 1, p.Width)
	assert.Equal(t, 1, p.Height)
	assert.Same(t, p, c.Placeholder())
}

func TestTextureUnsupportedFormat(t *testing.T) {
	c := newTestContext(t)
	src := &inmem.Texture{
		ID:          6,
		Label:       "Packed",
		Dim:         host.Texture2D,
		PixelFormat: host.FormatR8G8B8UNorm,
		W:           2,
		H:           2,
		Mips:        5,
		Images:      []image.Image{solidImage(2, 2, red)},
	}
	assert.Same(t, c.Placeholder(), c.Texture(src))
	assert.Same(t, c.Placeholder(), c.Texture(src))
	assert.Equal(t, []string{"Packed has the following issues:\n    Format 'R8G8B8_UNorm' unsupported"}, c.Report.Lines())
}

func TestTextureShortPixels(t *testing.T) {
	c := newTestContext(t)
	src := inmem.SolidTexture(7, "Truncated", 4, 4, red)
	src.Layers[0] = src.Layers[0][:8]

	assert.Same(t, c.Placeholder(), c.Texture(src))
	require.Equal(t, 1, c.Report.Len())
	assert.Contains(t, c.Report.Lines()[0], "Truncated: pixel data too short (8 of 64 bytes)")
}

func TestCubemap(t *testing.T) {
	c := newTestContext(t)
	colors := []color.RGBA{red, {0, 255, 0, 255}, {0, 0, 255, 255}, {1, 1, 1, 255}, {2, 2, 2, 255}, {3, 3, 3, 255}}
	src := &inmem.Texture{ID: 8, Label: "Sky", Dim: host.TextureCube, PixelFormat: host.FormatR8G8B8A8UNorm, W: 2, H: 2}
	for _, col := range colors {
		src.Images = append(src.Images, solidImage(2, 2, col))
	}

	d := c.Cubemap(src)
	require.NotSame(t, c.Placeholder(), d)
	assert.Equal(t, 2, d.Width)
	assert.Equal(t, 2, d.Height)
	assert.Equal(t, 6, d.Depth)
	assert.Equal(t, format.ViewTypeCube, d.ViewType)
	require.Len(t, d.Pixels, 2*2*6*4)

	faceBytes := 2 * 2 * 4
	for i, col := range colors {
		px := d.Pixels[i*faceBytes : i*faceBytes+4]
		assert.Equal(t, []byte{col.R, col.G, col.B, col.A}, px, "face %d", i)
	}
}

func TestCubemapMissingFace(t *testing.T) {
	c := newTestContext(t)
	src := &inmem.Texture{ID: 8, Label: "Sky", Dim: host.TextureCube, PixelFormat: host.FormatR8G8B8A8UNorm, W: 2, H: 2}
	assert.Same(t, c.Placeholder(), c.Cubemap(src))
	assert.Equal(t, 1, c.Report.Len())
}

func TestTextureArray(t *testing.T) {
	c := newTestContext(t)
	layer := solidImage(2, 2, red).Pix
	src := &inmem.Texture{
		ID:          9,
		Label:       "Layers",
		Dim:         host.Texture2DArray,
		PixelFormat: host.FormatR8G8B8A8SRGB,
		W:           2,
		H:           2,
		D:           3,
		Layers:      [][]byte{layer, layer, layer},
	}

	images := c.TextureArray(src)
	require.Len(t, images, 3)
	for i, img := range images {
		assert.Equal(t, []string{"9:0", "9:1", "9:2"}[i], img.ID)
		assert.Equal(t, format.R8G8B8A8UNorm, img.Format)
		assert.Equal(t, 1, img.MipCount)
		assert.Equal(t, layer, img.Pixels)
	}
	again := c.TextureArray(src)
	for i := range images {
		assert.Same(t, images[i], again[i])
	}
	assert.Same(t, images[0], c.Texture(src), "Texture of an array is its first layer")
}

func TestTextureArrayOfPlainTexture(t *testing.T) {
	c := newTestContext(t)
	images := c.TextureArray(inmem.SolidTexture(10, "Mask", 2, 2, red))
	require.Len(t, images, 1)
	assert.Equal(t, "10:0", images[0].ID)
}

func TestDescriptorImageDedup(t *testing.T) {
	c := newTestContext(t)
	a := inmem.SolidTexture(11, "A", 1, 1, red)
	b := inmem.SolidTexture(12, "B", 1, 1, red)

	d := c.DescriptorImage(0, a)
	require.NotNil(t, d)
	assert.Equal(t, uint32(0), d.Binding)
	assert.Same(t, c.Texture(a), d.Images[0])
	assert.Equal(t, "0:11", d.ID)
	assert.Same(t, d, c.DescriptorImage(0, a))
	assert.NotSame(t, d, c.DescriptorImage(1, a))
	assert.NotSame(t, c.DescriptorImage(1, a), c.DescriptorImageArray(1, a))

	arr := c.DescriptorImageArray(2, a, b)
	require.NotNil(t, arr)
	assert.Equal(t, "2:[11,12]", arr.ID)
	assert.Len(t, arr.Images, 2)
	assert.Same(t, arr, c.DescriptorImageArray(2, a, b))
	assert.NotSame(t, arr, c.DescriptorImageArray(2, b, a))
	assert.Nil(t, c.DescriptorImageArray(2))
}
