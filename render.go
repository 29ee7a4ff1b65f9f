package spruce

import (
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// whitePixel is a 1x1 white image used as the source for all solid-color
// triangles. Created lazily so importing the package never touches the GPU.
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.toRGBA())
	}
	return whitePixel
}

func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// colorRGBA satisfies image/color.Color without importing the package name
// into every call site.
type colorRGBA struct{ R, G, B, A uint8 }

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	return uint32(c.R) * 0x101, uint32(c.G) * 0x101, uint32(c.B) * 0x101, uint32(c.A) * 0x101
}

// Renderer is the built-in sink: it flattens a scene's per-frame buffers into
// billboarded triangles and submits them to an ebiten image. Foliage draws as
// additive point sprites sized by the driver's size buffer; ornaments draw as
// quads whose corners run through each instance's 4x4 transform, painter-
// sorted back to front.
//
// The camera is a fixed orbit around the origin — presentation glue, not a
// camera system. Hosts wanting real camera control should consume the buffers
// directly instead.
type Renderer struct {
	// Yaw and Pitch orient the orbit camera, in radians.
	Yaw, Pitch float64
	// Distance is the camera's distance from the origin.
	Distance float64
	// FOV is the vertical field of view in radians.
	FOV float64
	// ScatterColor is the tint foliage blends from: each group's point color
	// lerps from ScatterColor to the group color by the driver's blend value,
	// so the cloud visibly shifts hue as the tree forms.
	ScatterColor Color

	verts []ebiten.Vertex
	inds  []uint32
	order []int // ornament depth-sort scratch
}

// NewRenderer creates a renderer with a default orbit camera.
func NewRenderer() *Renderer {
	return &Renderer{
		Distance:     26,
		Pitch:        0.25,
		FOV:          50 * math.Pi / 180,
		ScatterColor: Color{0.45, 0.6, 0.95, 1},
	}
}

// viewPoint transforms a world-space point into view space: yaw about Y,
// pitch about X, camera Distance along +Z looking at the origin. Positive
// view z is in front of the camera.
func (r *Renderer) viewPoint(v Vec3) Vec3 {
	sy, cy := math.Sincos(r.Yaw)
	sp, cp := math.Sincos(r.Pitch)

	x := v.X*cy - v.Z*sy
	z := v.X*sy + v.Z*cy
	y := v.Y*cp - z*sp
	z = v.Y*sp + z*cp

	return Vec3{x, y, r.Distance - z}
}

const nearPlane = 0.5

// Draw renders every group in the scene onto screen. Call after
// Scene.Update each frame.
func (r *Renderer) Draw(screen *ebiten.Image, scene *Scene) {
	b := screen.Bounds()
	w := float64(b.Dx())
	h := float64(b.Dy())
	focal := h / (2 * math.Tan(r.FOV/2))
	cx := float64(b.Min.X) + w/2
	cy := float64(b.Min.Y) + h/2

	for _, g := range scene.Groups() {
		if g.Kind.IsOrnament() {
			r.drawOrnaments(screen, g, focal, cx, cy)
		} else {
			r.drawFoliage(screen, g, focal, cx, cy)
		}
	}
}

// drawFoliage submits one point-sprite quad per particle in a single
// additive DrawTriangles32 call.
func (r *Renderer) drawFoliage(screen *ebiten.Image, g *Group, focal, cx, cy float64) {
	d := g.Driver()
	pos := d.Positions()
	sizes := d.Sizes()
	blend := d.Blend()

	tint := r.ScatterColor.lerp(g.Color, blend)
	cr := float32(tint.R * tint.A)
	cg := float32(tint.G * tint.A)
	cb := float32(tint.B * tint.A)
	ca := float32(tint.A)

	r.verts = r.verts[:0]
	r.inds = r.inds[:0]

	for i := 0; i < len(sizes); i++ {
		v := r.viewPoint(Vec3{
			float64(pos[i*3]),
			float64(pos[i*3+1]),
			float64(pos[i*3+2]),
		})
		if v.Z < nearPlane {
			continue
		}
		inv := focal / v.Z
		sx := float32(cx + v.X*inv)
		sy := float32(cy - v.Y*inv)
		half := float32(g.Size * float64(sizes[i]) * inv * 0.1)
		if half <= 0 {
			continue
		}

		r.appendQuad(
			[4]float32{sx - half, sx + half, sx - half, sx + half},
			[4]float32{sy - half, sy - half, sy + half, sy + half},
			cr, cg, cb, ca,
		)
	}

	r.flush(screen, ebiten.BlendLighter)
}

// drawOrnaments transforms each instance's unit quad by its 4x4, projects,
// depth-sorts, and submits one alpha-blended DrawTriangles32 call.
func (r *Renderer) drawOrnaments(screen *ebiten.Image, g *Group, focal, cx, cy float64) {
	d := g.Driver()
	transforms := d.Transforms()
	n := len(transforms) / 16

	// Unit quad in object space; the instance transform supplies rotation
	// and scale, so the spin is visible on screen.
	corners := [4]Vec3{
		{-0.5, -0.5, 0}, {0.5, -0.5, 0}, {-0.5, 0.5, 0}, {0.5, 0.5, 0},
	}

	r.order = r.order[:0]
	for i := 0; i < n; i++ {
		r.order = append(r.order, i)
	}
	sort.Slice(r.order, func(a, b int) bool {
		za := r.viewPoint(transformPoint3(transforms[r.order[a]*16:r.order[a]*16+16], Vec3{})).Z
		zb := r.viewPoint(transformPoint3(transforms[r.order[b]*16:r.order[b]*16+16], Vec3{})).Z
		return za > zb
	})

	cr := float32(g.Color.R * g.Color.A)
	cg := float32(g.Color.G * g.Color.A)
	cb := float32(g.Color.B * g.Color.A)
	ca := float32(g.Color.A)

	r.verts = r.verts[:0]
	r.inds = r.inds[:0]

	for _, i := range r.order {
		m := transforms[i*16 : i*16+16]

		var xs, ys [4]float32
		visible := true
		for j, c := range corners {
			v := r.viewPoint(transformPoint3(m, c.Scale(g.Size)))
			if v.Z < nearPlane {
				visible = false
				break
			}
			inv := focal / v.Z
			xs[j] = float32(cx + v.X*inv)
			ys[j] = float32(cy - v.Y*inv)
		}
		if !visible {
			continue
		}
		r.appendQuad(xs, ys, cr, cg, cb, ca)
	}

	r.flush(screen, ebiten.BlendSourceOver)
}

// appendQuad appends 4 vertices and 6 indices for one screen-space quad.
func (r *Renderer) appendQuad(xs, ys [4]float32, cr, cg, cb, ca float32) {
	base := uint32(len(r.verts))
	for j := 0; j < 4; j++ {
		r.verts = append(r.verts, ebiten.Vertex{
			DstX:   xs[j],
			DstY:   ys[j],
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		})
	}
	r.inds = append(r.inds,
		base+0, base+1, base+2,
		base+1, base+3, base+2,
	)
}

// flush submits accumulated vertices as a single DrawTriangles32 call.
func (r *Renderer) flush(screen *ebiten.Image, blend ebiten.Blend) {
	if len(r.verts) == 0 {
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.Blend = blend
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	screen.DrawTriangles32(r.verts, r.inds, ensureWhitePixel(), &op)
}

// lerp blends two colors component-wise by t.
func (c Color) lerp(o Color, t float64) Color {
	return Color{
		R: lerp(c.R, o.R, t),
		G: lerp(c.G, o.G, t),
		B: lerp(c.B, o.B, t),
		A: lerp(c.A, o.A, t),
	}
}
