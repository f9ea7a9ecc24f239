package system

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/robothead/common"
	"github.com/milk9111/robothead/ecs"
	"github.com/milk9111/robothead/ecs/component"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	HudHelpText = "move the pointer to look around, drag to orbit, wheel to zoom\nP pause   H hide   C copy state"
	ToastMS     = 2000.0
)

var hudTextColor = color.NRGBA{R: 0xe6, G: 0xf0, B: 0xff, A: 0xff}

// HudSystem owns the ebitenui overlay: help text, debug readouts, a toast
// line and the pause panel.
type HudSystem struct {
	ui      *ebitenui.UI
	help    *widget.Text
	readout *widget.Text
	toast   *widget.Text
	pause   *widget.Container

	pressed func(ebiten.Key) bool
	world   *ecs.World
}

func NewHudSystem() *HudSystem {
	h := &HudSystem{pressed: inpututil.IsKeyJustPressed}
	h.ui = h.build()
	return h
}

func (h *HudSystem) build() *ebitenui.UI {
	var titleFace ebtext.Face
	if src, err := ebtext.NewGoTextFaceSource(bytes.NewReader(goregular.TTF)); err == nil {
		titleFace = &ebtext.GoTextFace{Source: src, Size: 20}
	} else {
		titleFace = ebtext.NewGoXFace(basicfont.Face7x13)
	}
	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x44, G: 0x44, B: 0x44, A: 255})

	h.help = widget.NewText(widget.TextOpts.Text(HudHelpText, &face, hudTextColor))
	h.readout = widget.NewText(widget.TextOpts.Text("", &face, hudTextColor))
	h.toast = widget.NewText(widget.TextOpts.Text("", &face, color.NRGBA{R: 0x00, G: 0xff, B: 0xb3, A: 0xff}))

	info := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 12, Left: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	info.AddChild(h.help)
	info.AddChild(h.readout)
	info.AddChild(h.toast)

	title := widget.NewText(
		widget.TextOpts.Text("Paused", &titleFace, hudTextColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
	resume := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnHover, Pressed: btnImg}),
		widget.ButtonOpts.Text("Resume", &face, &widget.ButtonTextColor{Idle: hudTextColor}),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if clock, ok := ecs.Singleton(h.world, component.ClockComponent.Kind()); ok {
				clock.Paused = false
			}
		}),
	)
	h.pause = widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/4, common.BaseHeight/5),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)
	h.pause.AddChild(title)
	h.pause.AddChild(resume)
	h.pause.GetWidget().Visibility = widget.Visibility_Hide

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(info)
	root.AddChild(h.pause)
	return &ebitenui.UI{Container: root}
}

func (h *HudSystem) Update(w *ecs.World) {
	if h == nil || w == nil {
		return
	}
	h.world = w
	hud, ok := ecs.Singleton(w, component.HudComponent.Kind())
	if !ok {
		return
	}
	HandleHudKeys(w, h.pressed)
	ApplyHudEvents(w, w.Events().Drain())

	if hud.ToastMS > 0 {
		hud.ToastMS -= 1000 / float64(ebiten.TPS())
		if hud.ToastMS <= 0 {
			hud.ToastMS = 0
			hud.Toast = ""
		}
	}

	if h.ui == nil {
		return
	}
	paused := false
	if clock, ok := ecs.Singleton(w, component.ClockComponent.Kind()); ok {
		paused = clock.Paused
	}
	if paused {
		h.pause.GetWidget().Visibility = widget.Visibility_Show
	} else {
		h.pause.GetWidget().Visibility = widget.Visibility_Hide
	}
	h.toast.Label = hud.Toast
	h.readout.Label = ""
	if hud.Debug {
		h.readout.Label = fmt.Sprintf("fps %.0f\n%s", ebiten.ActualFPS(), HudReadout(w))
	}
	h.ui.Update()
}

func (h *HudSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if h == nil || h.ui == nil || w == nil || screen == nil {
		return
	}
	hud, ok := ecs.Singleton(w, component.HudComponent.Kind())
	if !ok || !hud.Visible {
		return
	}
	h.ui.Draw(screen)
}

// HandleHudKeys applies the H (hud) and P (pause) toggles.
func HandleHudKeys(w *ecs.World, pressed func(ebiten.Key) bool) {
	if w == nil || pressed == nil {
		return
	}
	if hud, ok := ecs.Singleton(w, component.HudComponent.Kind()); ok && pressed(ebiten.KeyH) {
		hud.Visible = !hud.Visible
	}
	if clock, ok := ecs.Singleton(w, component.ClockComponent.Kind()); ok && pressed(ebiten.KeyP) {
		clock.Paused = !clock.Paused
	}
}

// ShowToast sets a short-lived status line.
func ShowToast(w *ecs.World, msg string) {
	if hud, ok := ecs.Singleton(w, component.HudComponent.Kind()); ok {
		hud.Toast = msg
		hud.ToastMS = ToastMS
	}
}

// ApplyHudEvents turns reload and snapshot events into toasts. The hud runs
// last in the tick, so it sees everything raised this frame.
func ApplyHudEvents(w *ecs.World, events []ecs.Event) {
	for _, evt := range events {
		switch evt.Type {
		case ecs.EventPrefabReloaded:
			if name, ok := evt.Data.(string); ok && name != "" {
				ShowToast(w, "reloaded "+name)
			}
		case ecs.EventSnapshotTaken:
			taken, ok := evt.Data.(SnapshotTaken)
			if !ok {
				continue
			}
			if taken.Copied {
				ShowToast(w, "state copied to clipboard")
			} else {
				ShowToast(w, "clipboard unavailable, state logged")
			}
		}
	}
}

// HudReadout formats the live animation state for the debug overlay.
func HudReadout(w *ecs.World) string {
	var b strings.Builder
	if clock, ok := ecs.Singleton(w, component.ClockComponent.Kind()); ok {
		fmt.Fprintf(&b, "t %.1fs", clock.ElapsedMS/1000)
		if clock.Paused {
			b.WriteString(" (paused)")
		}
		b.WriteString("\n")
	}
	if blink, ok := ecs.Singleton(w, component.BlinkComponent.Kind()); ok {
		fmt.Fprintf(&b, "blink %.2f %s\n", blink.Cell.Value(), blink.Phase)
	}
	ecs.ForEach(w, component.EyeComponent.Kind(), func(_ ecs.Entity, eye *component.Eye) {
		yaw := 0.0
		if eye.Node != nil {
			yaw = eye.Node.Rotation[1]
		}
		fmt.Fprintf(&b, "eye %-5s yaw %+.3f track %.2f\n", eye.Side, yaw, eye.TrackingIntensity)
	})
	if a, ok := ecs.Singleton(w, component.AntennaComponent.Kind()); ok {
		fmt.Fprintf(&b, "antenna %+.3f %+.3f\n", a.Position.X, a.Position.Y)
	}
	ecs.ForEach(w, component.EarComponent.Kind(), func(_ ecs.Entity, ear *component.Ear) {
		fmt.Fprintf(&b, "ear %-5s retract %.2f\n", ear.Side, ear.Retraction)
	})
	return strings.TrimRight(b.String(), "\n")
}
