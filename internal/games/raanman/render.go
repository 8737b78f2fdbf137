package raanman

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/vovakirdan/raanman3d/internal/core"
	"github.com/vovakirdan/raanman3d/internal/sim"
	"github.com/vovakirdan/raanman3d/internal/vecmath"
)

const (
	fieldOfView = 70 * math.Pi / 180
	nearPlane   = 0.3
	farPlane    = 90.0
	cellAspect  = 2.0 // terminal cells are about twice as tall as wide
	playerEye   = 1.0 // height above the feet where the player glyph sits
)

// projector maps world points to cell coordinates for one camera pose.
type projector struct {
	eye            vecmath.Vec3
	fwd, right, up vecmath.Vec3
	cx, cy, focal  float64
	view           core.Rect
}

func newProjector(cam sim.CameraTransform, view core.Rect) projector {
	fwd := cam.Target.Sub(cam.Position)
	if fwd.Len() < 1e-9 {
		fwd = vecmath.V3(0, 0, -1)
	}
	fwd = fwd.Normalize()

	right := fwd.Cross(vecmath.V3(0, 1, 0))
	if right.Len() < 1e-9 {
		right = vecmath.V3(1, 0, 0)
	}
	right = right.Normalize()

	return projector{
		eye:   cam.Position,
		fwd:   fwd,
		right: right,
		up:    right.Cross(fwd),
		cx:    float64(view.X) + float64(view.W)/2,
		cy:    float64(view.Y) + float64(view.H)/2,
		focal: float64(view.H) / 2 / math.Tan(fieldOfView/2),
		view:  view,
	}
}

// project returns the cell position and view depth of v. ok is false when
// the point lies behind the near plane or past the far plane.
func (p projector) project(v vecmath.Vec3) (pt core.PointF, depth float64, ok bool) {
	d := v.Sub(p.eye)
	depth = d.Dot(p.fwd)
	if depth < nearPlane || depth > farPlane {
		return core.PointF{}, depth, false
	}
	x := d.Dot(p.right) / depth
	y := d.Dot(p.up) / depth
	return core.PointF{
		X: p.cx + x*p.focal*cellAspect,
		Y: p.cy - y*p.focal,
	}, depth, true
}

// quad projects a horizontal rectangle at height y. Corners behind the
// camera drop the whole face; partially visible faces are rare at the chase
// distance and simply pop in.
func (p projector) quad(center, size vecmath.Vec3, y float64) ([]core.PointF, float64, bool) {
	hx, hz := size.X()/2, size.Z()/2
	corners := [4]vecmath.Vec3{
		vecmath.V3(center.X()-hx, y, center.Z()-hz),
		vecmath.V3(center.X()+hx, y, center.Z()-hz),
		vecmath.V3(center.X()+hx, y, center.Z()+hz),
		vecmath.V3(center.X()-hx, y, center.Z()+hz),
	}
	pts := make([]core.PointF, 0, 4)
	var sum float64
	for _, c := range corners {
		pt, depth, ok := p.project(c)
		if !ok {
			return nil, 0, false
		}
		pts = append(pts, pt)
		sum += depth
	}
	return pts, sum / 4, true
}

// inView reports whether a projected point lands on a viewport cell.
func (p projector) inView(pt core.PointF) bool {
	return p.view.Contains(int(math.Floor(pt.X)), int(math.Floor(pt.Y)))
}

type drawable struct {
	depth float64
	draw  func(dst *core.Screen)
}

// Render draws the world from the chase camera, then the HUD and overlays.
func (g *Game) Render(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()
	if g.sim == nil {
		dst.DrawTextCentered(h/2-1, "Level unavailable")
		if g.err != nil {
			dst.DrawTextCentered(h/2+1, g.err.Error())
		}
		return
	}
	if w < 20 || h < 8 {
		dst.DrawTextCentered(h/2, "Terminal too small")
		return
	}

	view := core.NewRect(0, 1, w, h-2)
	g.renderWorld(dst, view)
	g.renderHUD(dst)
	g.renderHelp(dst)

	switch {
	case g.last.GameOver:
		drawCenteredMessage(dst, []string{
			"GAME OVER",
			fmt.Sprintf("Score: %d", g.last.HUD.Score),
			"",
			"R restart  B menu",
		})
	case g.paused:
		drawCenteredMessage(dst, []string{"PAUSED", "", "P resume"})
	}
}

func (g *Game) renderWorld(dst *core.Screen, view core.Rect) {
	proj := newProjector(g.last.Camera, view)
	lay := g.sim.Layout()
	var items []drawable

	for _, p := range lay.Platforms {
		pts, depth, ok := proj.quad(p.Center, p.Size, p.Top())
		if !ok {
			continue
		}
		shade := core.DepthShade(depth)
		glyph := '▒'
		if p.Fixed {
			glyph = '▓'
		}
		items = append(items, drawable{depth: depth, draw: func(dst *core.Screen) {
			dst.FillPolygon(clipRows(pts, view), glyph, shade)
		}})
	}

	if !g.last.HUD.HackActive {
		for _, hz := range lay.Hazards {
			top := hz.Center.Y() - hz.Size.Y()/2 + 0.05
			pts, depth, ok := proj.quad(hz.Center, hz.Size, top)
			if !ok {
				continue
			}
			// Just in front of the platform it sits on.
			items = append(items, drawable{depth: depth - 0.01, draw: func(dst *core.Screen) {
				dst.FillPolygon(clipRows(pts, view), '≈', core.ColorMagenta)
			}})
		}
	}

	for _, e := range g.last.Entities {
		if !e.Visible {
			continue
		}
		var (
			glyph rune
			color core.Color
			pos   = e.Position
		)
		switch e.Kind {
		case sim.EntityCollectible:
			glyph, color = '◆', core.ColorBrightYellow
		case sim.EntityEnemy:
			glyph, color = 'M', core.ColorBrightRed
			pos = pos.Add(vecmath.V3(0, 0.6, 0))
		default:
			continue
		}
		items = append(items, glyphAt(proj, pos, glyph, color)...)
	}

	for _, pt := range g.sim.Particles() {
		items = append(items, glyphAt(proj, pt.Position, '·', core.ColorGray)...)
	}

	playerColor := core.ColorBrightGreen
	if g.last.HUD.HackActive {
		playerColor = core.ColorBrightMagenta
	}
	if g.last.HUD.Invulnerable && (g.last.Frame/4)%2 == 1 {
		playerColor = core.ColorGray
	}
	head := g.last.Player.Position.Add(vecmath.V3(0, playerEye, 0))
	items = append(items, glyphAt(proj, head, '@', playerColor)...)

	sort.SliceStable(items, func(i, j int) bool { return items[i].depth > items[j].depth })
	for _, it := range items {
		it.draw(dst)
	}
}

// glyphAt returns a single-cell drawable, or nothing when off screen.
func glyphAt(proj projector, pos vecmath.Vec3, glyph rune, color core.Color) []drawable {
	pt, depth, ok := proj.project(pos)
	if !ok || !proj.inView(pt) {
		return nil
	}
	x, y := int(math.Floor(pt.X)), int(math.Floor(pt.Y))
	return []drawable{{depth: depth, draw: func(dst *core.Screen) {
		dst.SetColored(x, y, glyph, color)
	}}}
}

// clipRows clamps polygon rows to the viewport so faces never paint over
// the HUD or help lines. Clamping keeps the polygon convex.
func clipRows(pts []core.PointF, view core.Rect) []core.PointF {
	top, bottom := float64(view.Y), float64(view.Bottom())
	out := make([]core.PointF, len(pts))
	for i, p := range pts {
		p.Y = math.Max(top, math.Min(bottom, p.Y))
		out[i] = p
	}
	return out
}

func (g *Game) renderHUD(dst *core.Screen) {
	hud := g.last.HUD
	x := 0
	put := func(text string, c core.Color) {
		dst.DrawTextColored(x, 0, text, c)
		x += len([]rune(text))
	}

	bars := core.Clamp(hud.HealthBars, 0, 10)
	healthColor := core.ColorBrightGreen
	switch {
	case bars <= 2:
		healthColor = core.ColorBrightRed
	case bars <= 5:
		healthColor = core.ColorYellow
	}
	put("HP ", core.ColorWhite)
	put(strings.Repeat("█", bars), healthColor)
	put(strings.Repeat("░", 10-bars), core.ColorDarkGray)

	put(fmt.Sprintf("  SCORE %d", hud.Score), core.ColorBrightWhite)
	if hud.Combo > 1 {
		put(fmt.Sprintf(" x%d", hud.Combo), core.ColorOrange)
	}

	hack := fmt.Sprintf("  HACK %3.0f%%", hud.HackPercent)
	hackColor := core.ColorCyan
	if hud.HackActive {
		hack = "  HACK ACTIVE"
		hackColor = core.ColorBrightMagenta
	} else if hud.HackPercent >= 100 {
		hackColor = core.ColorBrightCyan
	}
	put(hack, hackColor)

	put(fmt.Sprintf("  LIVES %d", hud.Lives), core.ColorBrightRed)
}

func (g *Game) renderHelp(dst *core.Screen) {
	help := "WASD move  ←→ turn  I/K camera  Space jump  H hack  P pause  B menu"
	if g.flat {
		help = "A/D ←→ move  Space jump  H hack  P pause  B menu"
	}
	dst.DrawTextColored(0, dst.Height()-1, help, core.ColorGray)
}

// drawCenteredMessage draws a boxed message in the middle of the screen.
func drawCenteredMessage(dst *core.Screen, lines []string) {
	maxLen := 0
	for _, l := range lines {
		if n := len([]rune(l)); n > maxLen {
			maxLen = n
		}
	}

	box := dst.Bounds().Centered(maxLen+4, len(lines)+2)
	dst.DrawRect(core.NewRect(box.X+1, box.Y+1, box.W-2, box.H-2), ' ')
	dst.DrawBox(box)

	for i, l := range lines {
		dst.DrawTextCentered(box.Y+1+i, l)
	}
}
