package render

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/arcpong/common"
	"github.com/milk9111/arcpong/ecs"
	"github.com/milk9111/arcpong/ecs/component"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const (
	basicFontHeight = 13
	arcSamples      = 48
)

// RenderSystem draws the arena in a Y-up world fitted to the screen.
type RenderSystem struct {
	pixel *ebiten.Image
	face  *text.GoXFace
	Debug bool
}

func NewRenderSystem() *RenderSystem {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &RenderSystem{
		pixel: pixel,
		face:  text.NewGoXFace(basicfont.Face7x13),
	}
}

type viewport struct {
	scale   float64
	offsetX float64
	offsetY float64
	height  float64
}

func newViewport(arena component.Arena, screenW, screenH int) viewport {
	scale := math.Min(float64(screenW)/arena.Width, float64(screenH)/arena.Height)
	return viewport{
		scale:   scale,
		offsetX: (float64(screenW) - arena.Width*scale) / 2,
		offsetY: (float64(screenH) - arena.Height*scale) / 2,
		height:  arena.Height,
	}
}

func (v viewport) toScreen(x, y float64) (float64, float64) {
	return v.offsetX + x*v.scale, v.offsetY + (v.height-y)*v.scale
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	screen.Fill(color.Black)

	arena := component.DefaultArena()
	if e, ok := w.First(component.ArenaComponent.Kind()); ok {
		if a, ok := ecs.Get(w, e, component.ArenaComponent.Kind()); ok {
			arena = *a
		}
	}
	bounds := screen.Bounds()
	view := newViewport(arena, bounds.Dx(), bounds.Dy())

	entities := w.Query(component.TransformComponent.Kind(), component.ShapeComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		li := 0
		if layer, ok := ecs.Get(w, entities[i], component.RenderLayerComponent.Kind()); ok {
			li = layer.Index
		}
		lj := 0
		if layer, ok := ecs.Get(w, entities[j], component.RenderLayerComponent.Kind()); ok {
			lj = layer.Index
		}
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		s, ok := ecs.Get(w, e, component.ShapeComponent.Kind())
		if !ok {
			continue
		}
		r.drawShape(screen, view, t, s)
	}

	r.drawScores(w, screen)

	if r.Debug {
		r.drawArcs(w, screen, view, arena)
		ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS: %.1f  FPS: %.1f", ebiten.ActualTPS(), ebiten.ActualFPS()))
	}
}

func (r *RenderSystem) drawShape(screen *ebiten.Image, view viewport, t *component.Transform, s *component.Shape) {
	sx, sy := view.toScreen(t.X, t.Y)
	scaleX := t.ScaleX
	if scaleX == 0 {
		scaleX = 1
	}
	scaleY := t.ScaleY
	if scaleY == 0 {
		scaleY = 1
	}

	switch s.Kind {
	case component.ShapeCircle:
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(s.Radius*scaleX*view.scale), s.Color, true)
	case component.ShapeRing:
		stroke := s.Width
		if stroke <= 0 {
			stroke = 1
		}
		radius := (s.Radius - stroke/2) * scaleX * view.scale
		vector.StrokeCircle(screen, float32(sx), float32(sy), float32(radius), float32(stroke*view.scale), s.Color, true)
	default:
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-0.5, -0.5)
		op.GeoM.Scale(s.Width*scaleX*view.scale, s.Height*scaleY*view.scale)
		// the screen is Y-down, so world rotations flip sign
		op.GeoM.Rotate(-t.Rotation)
		op.GeoM.Translate(sx, sy)
		op.ColorScale.ScaleWithColor(s.Color)
		screen.DrawImage(r.pixel, op)
	}
}

func (r *RenderSystem) drawScores(w *ecs.World, screen *ebiten.Image) {
	boardEnt, ok := w.First(component.ScoreBoardComponent.Kind())
	if !ok {
		return
	}
	board, ok := ecs.Get(w, boardEnt, component.ScoreBoardComponent.Kind())
	if !ok {
		return
	}

	midX := float64(screen.Bounds().Dx()) / 2
	ecs.ForEach(w, component.ScoreTextComponent.Kind(), func(_ ecs.Entity, st *component.ScoreText) {
		score := board.Left
		if st.Side == component.SideRight {
			score = board.Right
		}
		size := st.Size
		if size <= 0 {
			size = basicFontHeight
		}

		op := &text.DrawOptions{}
		op.PrimaryAlign = text.AlignCenter
		op.GeoM.Scale(size/basicFontHeight, size/basicFontHeight)
		op.GeoM.Translate(midX+st.OffsetX, st.OffsetY)
		op.ColorScale.ScaleWithColor(color.White)
		text.Draw(screen, strconv.Itoa(score), r.face, op)
	})
}

// drawArcs outlines each paddle's allowed arc just inside the arena ring.
func (r *RenderSystem) drawArcs(w *ecs.World, screen *ebiten.Image, view viewport, arena component.Arena) {
	inner := arena
	inner.Width -= 6
	inner.Height -= 6
	shift := 3.0

	ecs.ForEach(w, component.PaddleComponent.Kind(), func(_ ecs.Entity, p *component.Paddle) {
		span := common.NormalizeAngle(p.MaxAngle - p.MinAngle)
		if span < 0 {
			span += common.TwoPi
		}
		clr := colornames.Lime
		if p.Side == component.SideRight {
			clr = colornames.Orange
		}

		px, py := inner.PointAt(p.MinAngle)
		for i := 1; i <= arcSamples; i++ {
			x, y := inner.PointAt(common.Lerp(p.MinAngle, p.MinAngle+span, float64(i)/arcSamples))
			x0, y0 := view.toScreen(px+shift, py+shift)
			x1, y1 := view.toScreen(x+shift, y+shift)
			vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, clr, true)
			px, py = x, y
		}
	})
}
