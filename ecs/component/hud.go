package component

type Hud struct {
	Visible bool
	Debug   bool
	Toast   string
	ToastMS float64
}

var HudComponent = NewComponent[Hud]()
