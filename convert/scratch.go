package convert

import (
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/draw"

	"github.com/gogpu/sgexport/host"
)

// scratchPool lends RGBA render targets used to convert textures whose
// native format cannot be exported. Targets are grouped by size.
type scratchPool struct {
	mu      sync.Mutex
	buckets map[image.Point][]*image.RGBA
	maxSize int // max targets per bucket
}

func newScratchPool(maxPerBucket int) *scratchPool {
	return &scratchPool{
		buckets: make(map[image.Point][]*image.RGBA),
		maxSize: maxPerBucket,
	}
}

// get returns a cleared w x h target.
func (p *scratchPool) get(w, h int) *image.RGBA {
	key := image.Point{X: w, Y: h}

	p.mu.Lock()
	bucket := p.buckets[key]
	if len(bucket) > 0 {
		img := bucket[len(bucket)-1]
		p.buckets[key] = bucket[:len(bucket)-1]
		p.mu.Unlock()
		clear(img.Pix)
		return img
	}
	p.mu.Unlock()

	return image.NewRGBA(image.Rect(0, 0, w, h))
}

// put returns a target. Targets beyond the bucket limit are dropped.
func (p *scratchPool) put(img *image.RGBA) {
	if img == nil {
		return
	}
	key := img.Rect.Size()

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, img)
}

// withScratch runs fn on a w x h target and returns a copy of its pixels.
// The target goes back to the pool even when fn panics.
func (c *ExportContext) withScratch(w, h int, fn func(dst *image.RGBA)) []byte {
	dst := c.scratch.get(w, h)
	defer c.scratch.put(dst)

	fn(dst)
	out := make([]byte, len(dst.Pix))
	copy(out, dst.Pix)
	return out
}

// blit draws src into r of dst, scaling when the sizes differ.
func blit(dst *image.RGBA, r image.Rectangle, src host.Renderable) {
	sb := src.Bounds()
	if sb.Size() == r.Size() {
		draw.Draw(dst, r, src, sb.Min, draw.Src)
		return
	}
	draw.ApproxBiLinear.Scale(dst, r, src, sb, draw.Src, nil)
}

// renderRGBA renders one layer of t to tightly packed RGBA8 pixels of the
// texture's size. It returns nil when the host cannot render the layer.
func (c *ExportContext) renderRGBA(t host.Texture, layer int) []byte {
	w, h := t.Width(), t.Height()
	if w <= 0 || h <= 0 {
		return nil
	}
	src := t.Render(layer)
	if src == nil {
		return nil
	}
	return c.withScratch(w, h, func(dst *image.RGBA) {
		blit(dst, dst.Rect, src)
	})
}

// solidRGBA returns w x h pixels of one color.
func (c *ExportContext) solidRGBA(w, h int, col color.RGBA) []byte {
	return c.withScratch(w, h, func(dst *image.RGBA) {
		draw.Draw(dst, dst.Rect, image.NewUniform(col), image.Point{}, draw.Src)
	})
}
