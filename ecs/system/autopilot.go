package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/robothead/ecs"
	"github.com/milk9111/robothead/ecs/component"
	"github.com/milk9111/robothead/prefabs"
	"go.uber.org/zap"
)

const DefaultAutopilotScript = "orbit.tengo"

const autopilotDispatchScript = `
if __phase == "update" {
	update(__engine, __state)
}
`

// AutopilotSystem runs a tengo script each tick that may steer the orbit
// goal and the pointer. A script error disables it.
type AutopilotSystem struct {
	scriptName string
	compiled   *tengo.Compiled
	stateData  *tengo.Map
	disabled   bool
}

func NewAutopilotSystem(scriptName string) *AutopilotSystem {
	if scriptName == "" {
		scriptName = DefaultAutopilotScript
	}
	return &AutopilotSystem{scriptName: scriptName}
}

// Disabled reports whether a load or run error switched the autopilot off.
func (a *AutopilotSystem) Disabled() bool {
	return a == nil || a.disabled
}

// Reload drops the compiled script so the next tick recompiles it.
func (a *AutopilotSystem) Reload() {
	if a == nil {
		return
	}
	a.compiled = nil
	a.disabled = false
}

func (a *AutopilotSystem) Update(w *ecs.World) {
	if a == nil || w == nil || a.disabled {
		return
	}

	if a.compiled == nil {
		if err := a.load(); err != nil {
			a.fail("load", err)
			return
		}
	}

	engine := a.buildEngine(w)
	if err := a.run("update", engine); err != nil {
		a.fail("run", err)
	}
}

func (a *AutopilotSystem) fail(stage string, err error) {
	a.disabled = true
	zap.L().Warn("autopilot disabled",
		zap.String("script", a.scriptName),
		zap.String("stage", stage),
		zap.Error(err))
}

func (a *AutopilotSystem) load() error {
	src, err := prefabs.LoadScript(a.scriptName)
	if err != nil {
		return err
	}

	script := tengo.NewScript(append(append([]byte{}, src...), []byte("\n"+autopilotDispatchScript)...))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return fmt.Errorf("autopilot: compile %s: %w", a.scriptName, err)
	}
	a.compiled = compiled
	if a.stateData == nil {
		a.stateData = &tengo.Map{Value: map[string]tengo.Object{}}
	}

	// A first pass with no phase defines update and validates the script.
	if err := a.run("noop", &tengo.ImmutableMap{Value: map[string]tengo.Object{}}); err != nil {
		a.compiled = nil
		return err
	}
	if !compiled.IsDefined("update") {
		a.compiled = nil
		return fmt.Errorf("autopilot: %s does not define update", a.scriptName)
	}
	return nil
}

func (a *AutopilotSystem) run(phase string, engine *tengo.ImmutableMap) error {
	if a.compiled == nil {
		return fmt.Errorf("autopilot: script not loaded")
	}
	if err := a.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := a.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := a.compiled.Set("__state", a.stateData); err != nil {
		return err
	}
	return a.compiled.Run()
}

func (a *AutopilotSystem) buildEngine(w *ecs.World) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	elapsed := 0.0
	if clock, ok := ecs.Singleton(w, component.ClockComponent.Kind()); ok {
		elapsed = clock.ElapsedMS
	}
	values["elapsed_ms"] = &tengo.Float{Value: elapsed}

	values["set_orbit"] = &tengo.UserFunction{Name: "set_orbit", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 3 {
			return tengo.FalseValue, tengo.ErrWrongNumArguments
		}
		az, ok1 := objectAsFloat(args[0])
		polar, ok2 := objectAsFloat(args[1])
		radius, ok3 := objectAsFloat(args[2])
		if !ok1 || !ok2 || !ok3 {
			return tengo.FalseValue, nil
		}
		ctrl, ok := ecs.Singleton(w, component.OrbitControlsComponent.Kind())
		if !ok {
			return tengo.FalseValue, nil
		}
		SetOrbitGoal(ctrl, az, polar, radius)
		return tengo.TrueValue, nil
	}}

	values["set_pointer"] = &tengo.UserFunction{Name: "set_pointer", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, tengo.ErrWrongNumArguments
		}
		x, ok1 := objectAsFloat(args[0])
		y, ok2 := objectAsFloat(args[1])
		if !ok1 || !ok2 {
			return tengo.FalseValue, nil
		}
		ptr, ok := ecs.Singleton(w, component.PointerComponent.Kind())
		if !ok {
			return tengo.FalseValue, nil
		}
		ptr.X, ptr.Y = x, y
		ptr.Moved = true
		return tengo.TrueValue, nil
	}}

	values["get_orbit"] = &tengo.UserFunction{Name: "get_orbit", Value: func(args ...tengo.Object) (tengo.Object, error) {
		ctrl, ok := ecs.Singleton(w, component.OrbitControlsComponent.Kind())
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return &tengo.Array{Value: []tengo.Object{
			&tengo.Float{Value: ctrl.Azimuth},
			&tengo.Float{Value: ctrl.Polar},
			&tengo.Float{Value: ctrl.Radius},
		}}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsFloat(obj tengo.Object) (float64, bool) {
	switch v := obj.(type) {
	case *tengo.Float:
		return v.Value, true
	case *tengo.Int:
		return float64(v.Value), true
	default:
		return 0, false
	}
}
