package main

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/robothead/common"
	"github.com/milk9111/robothead/ecs/component"
	"github.com/milk9111/robothead/ecs/render"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	screenWidth  = 960
	screenHeight = 640
	discSegments = 48
	margin       = 40
)

// swatch is one eye in the grid with its own blink and tracking values.
type swatch struct {
	cell     *component.BlinkCell
	material *component.Material
	center   mgl64.Vec2
	radius   float64
}

type Game struct {
	swatches []swatch
	faces    []render.Face
	shader   *ebiten.Shader
	cols     int
	rows     int
}

func NewGame(cols, rows int, transparent bool) *Game {
	g := newGrid(cols, rows, transparent)
	g.loadShader(false)
	return g
}

func newGrid(cols, rows int, transparent bool) *Game {
	g := &Game{cols: cols, rows: rows}
	cellW := float64(screenWidth-2*margin) / float64(cols)
	cellH := float64(screenHeight-2*margin) / float64(rows)
	radius := 0.4 * math.Min(cellW, cellH)

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cell := &component.BlinkCell{}
			cell.Set(fraction(c, cols))
			mat := &component.Material{
				Shading:           component.ShadingEye,
				Color:             mgl64.Vec3{1, 1, 1},
				Emissive:          mgl64.Vec3{0, 1, 1},
				EmissiveIntensity: 1,
				Transparent:       transparent,
				Eye: &component.Eye{
					Blink: cell,
					// top row tracks fully
					TrackingIntensity: 1 - fraction(r, rows),
				},
			}
			g.swatches = append(g.swatches, swatch{
				cell:     cell,
				material: mat,
				center:   mgl64.Vec2{margin + (float64(c)+0.5)*cellW, margin + (float64(r)+0.5)*cellH},
				radius:   radius,
			})
		}
	}
	return g
}

func (g *Game) loadShader(reload bool) {
	var s *ebiten.Shader
	var err error
	if reload {
		var shaders map[string]*ebiten.Shader
		shaders, err = render.ReloadShaders()
		s = shaders[render.EyeShaderName]
		zap.L().Info("eyepreview: shaders reloaded", zap.Int("compiled", len(shaders)))
	} else {
		s, err = render.LoadShader(render.EyeShaderName)
	}
	if err != nil {
		zap.L().Warn("eyepreview: eye shader unavailable, drawing the cpu model", zap.Error(err))
		if g.shader == nil {
			return
		}
	}
	if s != nil {
		g.shader = s
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.loadShader(true)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0x10, G: 0x12, B: 0x18, A: 0xff})

	g.faces = g.faces[:0]
	for i := range g.swatches {
		g.faces = appendDisc(g.faces, &g.swatches[i])
	}
	render.DrawBatches(screen, render.BuildBatches(g.faces), g.shader)

	for _, s := range g.swatches {
		label := fmt.Sprintf("b %.2f t %.2f", s.cell.Value(), s.material.Eye.TrackingIntensity)
		ebitenutil.DebugPrintAt(screen, label, int(s.center.X()-s.radius), int(s.center.Y()+s.radius))
	}
	mode := "kage"
	if g.shader == nil {
		mode = "cpu fallback"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("blink along x, tracking along y (%s)   R reload shader", mode))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// appendDisc fans a disc of faces around the swatch center. Local coordinates
// span [-0.5, 0.5] so the eye rim lands at distance 1.
func appendDisc(out []render.Face, s *swatch) []render.Face {
	for k := 0; k < discSegments; k++ {
		a0 := 2 * math.Pi * float64(k) / discSegments
		a1 := 2 * math.Pi * float64(k+1) / discSegments
		local := [3]mgl64.Vec2{
			{0, 0},
			{0.5 * math.Cos(a0), 0.5 * math.Sin(a0)},
			{0.5 * math.Cos(a1), 0.5 * math.Sin(a1)},
		}
		var face render.Face
		for i, l := range local {
			face.Local[i] = l
			// screen y grows downward
			face.Screen[i] = mgl64.Vec2{s.center.X() + l.X()*2*s.radius, s.center.Y() - l.Y()*2*s.radius}
		}
		face.Shade = 1
		face.Color = s.material.Color
		face.Material = s.material
		out = append(out, face)
	}
	return out
}

// fraction spreads i over [0,1] across n steps.
func fraction(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}

func main() {
	var (
		cols, rows  int
		transparent bool
		debug       bool
	)
	cmd := &cobra.Command{
		Use:          "eyepreview",
		Short:        "Grid of eye swatches across blink and tracking values",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := common.NewLogger(debug)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			if cols < 1 || rows < 1 {
				return fmt.Errorf("eyepreview: grid must be at least 1x1, got %dx%d", cols, rows)
			}

			ebiten.SetWindowSize(screenWidth, screenHeight)
			ebiten.SetWindowTitle("Eye Preview")
			return ebiten.RunGame(NewGame(cols, rows, transparent))
		},
	}
	cmd.Flags().IntVar(&cols, "cols", 9, "blink steps along x")
	cmd.Flags().IntVar(&rows, "rows", 5, "tracking steps along y")
	cmd.Flags().BoolVar(&transparent, "transparent", false, "let the eyelid alpha through")
	cmd.Flags().BoolVar(&debug, "debug", false, "debug logging")
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
