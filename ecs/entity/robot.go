package entity

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/robothead/ecs"
	"github.com/milk9111/robothead/ecs/component"
	"github.com/milk9111/robothead/prefabs"
	"github.com/milk9111/robothead/scene"
)

// Part names, also used as scene node names.
const (
	PartHead        = "head"
	PartEyeLeft     = "eye_left"
	PartEyeRight    = "eye_right"
	PartAntennaBase = "antenna_base"
	PartAntennaTop  = "antenna_top"
	PartAntennaRod  = "antenna_rod"
	PartAntennaTip  = "antenna_tip"
	PartEarLeft     = "ear_left"
	PartEarRight    = "ear_right"
)

// BuildRobot assembles the head, eyes, antenna and ears described by spec and
// returns the robot entity. Both eyes read the same blink cell, which the
// robot entity's Blink component owns.
func BuildRobot(w *ecs.World, spec *prefabs.RobotSpec) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("entity: nil world")
	}
	if err := ValidateRobotSpec(spec); err != nil {
		return 0, err
	}

	root := scene.NewNode(spec.Name)
	root.Position = spec.Position.Vec3()
	head := scene.NewNode(PartHead)
	root.Add(head)

	robot := ecs.CreateEntity(w)
	cell := &component.BlinkCell{}
	if err := addAll(w, robot,
		func() error {
			return ecs.Add(w, robot, component.RobotComponent.Kind(), &component.Robot{Name: spec.Name, Root: root, Head: head})
		},
		func() error {
			return ecs.Add(w, robot, component.TransformComponent.Kind(), &component.Transform{Node: root})
		},
		func() error {
			return ecs.Add(w, robot, component.BlinkComponent.Kind(), &component.Blink{Cell: cell})
		},
		func() error { return ecs.Add(w, robot, component.GazeComponent.Kind(), &component.Gaze{}) },
		func() error {
			return ecs.Add(w, robot, component.IdleMotionComponent.Kind(), &component.IdleMotion{Node: head})
		},
	); err != nil {
		return 0, err
	}

	parts := robotParts(spec)
	if _, err := addMesh(w, head, PartHead, parts[PartHead], component.ShadingStandard); err != nil {
		return 0, err
	}

	for _, side := range []component.Side{component.SideLeft, component.SideRight} {
		name := eyePart(side)
		node := scene.NewNode(name)
		head.Add(node)
		e, err := addMesh(w, node, name, parts[name], component.ShadingEye)
		if err != nil {
			return 0, err
		}
		eye := &component.Eye{Node: node, Side: side, Blink: cell}
		mesh, _ := ecs.Get(w, e, component.MeshComponent.Kind())
		mesh.Material.Eye = eye
		if err := ecs.Add(w, e, component.EyeComponent.Kind(), eye); err != nil {
			return 0, fmt.Errorf("entity: add eye: %w", err)
		}
	}

	if err := buildAntenna(w, head, parts); err != nil {
		return 0, err
	}

	for _, side := range []component.Side{component.SideLeft, component.SideRight} {
		name := earPart(side)
		node := scene.NewNode(name)
		head.Add(node)
		e, err := addMesh(w, node, name, parts[name], component.ShadingStandard)
		if err != nil {
			return 0, err
		}
		ear := &component.Ear{Node: node, Head: head, Side: side, Outward: outward(side)}
		if err := ecs.Add(w, e, component.EarComponent.Kind(), ear); err != nil {
			return 0, fmt.Errorf("entity: add ear: %w", err)
		}
	}

	ApplyRobotLayout(w, spec)
	return robot, nil
}

func buildAntenna(w *ecs.World, head *scene.Node, parts map[string]part) error {
	base := scene.NewNode(PartAntennaBase)
	head.Add(base)
	if _, err := addMesh(w, base, PartAntennaBase, parts[PartAntennaBase], component.ShadingStandard); err != nil {
		return err
	}

	// rod and tip swing together about the pivot at the top of the base
	top := scene.NewNode(PartAntennaTop)
	head.Add(top)
	rod := scene.NewNode(PartAntennaRod)
	top.Add(rod)
	if _, err := addMesh(w, rod, PartAntennaRod, parts[PartAntennaRod], component.ShadingStandard); err != nil {
		return err
	}
	tip := scene.NewNode(PartAntennaTip)
	top.Add(tip)
	tipEnt, err := addMesh(w, tip, PartAntennaTip, parts[PartAntennaTip], component.ShadingStandard)
	if err != nil {
		return err
	}
	tipMesh, _ := ecs.Get(w, tipEnt, component.MeshComponent.Kind())
	if err := ecs.Add(w, tipEnt, component.TipGlowComponent.Kind(), &component.TipGlow{Material: tipMesh.Material}); err != nil {
		return fmt.Errorf("entity: add tip glow: %w", err)
	}
	if err := ecs.Add(w, tipEnt, component.AntennaComponent.Kind(), &component.Antenna{Top: top}); err != nil {
		return fmt.Errorf("entity: add antenna: %w", err)
	}
	return nil
}

// ApplyRobotSpec updates geometry, colors and layout of an already built
// robot in place. Animation state (blink, spring, retraction, gaze) is kept.
func ApplyRobotSpec(w *ecs.World, spec *prefabs.RobotSpec) error {
	if err := ValidateRobotSpec(spec); err != nil {
		return err
	}
	parts := robotParts(spec)
	ecs.ForEach(w, component.MeshComponent.Kind(), func(_ ecs.Entity, m *component.Mesh) {
		p, ok := parts[m.Part]
		if !ok {
			return
		}
		m.Geometry = p.geometry
		applyMaterial(m.Material, p.material)
	})
	if r, ok := ecs.Singleton(w, component.RobotComponent.Kind()); ok && r.Root != nil {
		r.Name = spec.Name
		r.Root.Position = spec.Position.Vec3()
	}
	ApplyRobotLayout(w, spec)
	return nil
}

// ApplyRobotLayout places the static nodes and the ear slide range.
func ApplyRobotLayout(w *ecs.World, spec *prefabs.RobotSpec) {
	ecs.ForEach(w, component.EyeComponent.Kind(), func(_ ecs.Entity, eye *component.Eye) {
		if eye.Node == nil {
			return
		}
		x := spec.Eyes.Spacing
		if eye.Side == component.SideLeft {
			x = -x
		}
		eye.Node.Position = mgl64.Vec3{x, spec.Eyes.Y, spec.Eyes.Z}
	})

	ecs.ForEach(w, component.AntennaComponent.Kind(), func(_ ecs.Entity, a *component.Antenna) {
		if a.Top == nil {
			return
		}
		baseAt := spec.Antenna.Base.Vec3()
		a.Top.Position = baseAt.Add(mgl64.Vec3{0, spec.Antenna.BaseHeight, 0})
		if head := a.Top.Parent(); head != nil {
			if base := head.Find(PartAntennaBase); base != nil {
				base.Position = baseAt
			}
		}
		if tip := a.Top.Find(PartAntennaTip); tip != nil {
			tip.Position = mgl64.Vec3{0, spec.Antenna.RodHeight + spec.Antenna.TipRadius*0.8, 0}
		}
	})

	ecs.ForEach(w, component.EarComponent.Kind(), func(_ ecs.Entity, ear *component.Ear) {
		sign := 1.0
		if ear.Side == component.SideLeft {
			sign = -1
		}
		ear.ExtendedX = sign * spec.Ears.ExtendedX
		ear.RetractedX = sign * spec.Ears.RetractedX
		if ear.Node == nil {
			return
		}
		ear.Node.Position[1] = spec.Ears.Y
		ear.Node.Position[2] = spec.Ears.Z
		ear.Node.Position[0] = ear.ExtendedX + (ear.RetractedX-ear.ExtendedX)*ear.Retraction
	})
}

// ValidateRobotSpec rejects specs that would produce empty or inverted
// geometry.
func ValidateRobotSpec(spec *prefabs.RobotSpec) error {
	if spec == nil {
		return fmt.Errorf("entity: nil robot spec")
	}
	for i, v := range spec.Head.Size {
		if v <= 0 || math.IsNaN(v) {
			return fmt.Errorf("entity: robot spec: head size[%d] must be positive, got %v", i, v)
		}
	}
	checks := []struct {
		name string
		v    float64
	}{
		{"eyes.radius", spec.Eyes.Radius},
		{"eyes.thickness", spec.Eyes.Thickness},
		{"antenna.rod_radius", spec.Antenna.RodRadius},
		{"antenna.rod_height", spec.Antenna.RodHeight},
		{"antenna.tip_radius", spec.Antenna.TipRadius},
		{"ears.radius", spec.Ears.Radius},
		{"ears.depth", spec.Ears.Depth},
	}
	for _, c := range checks {
		if c.v <= 0 || math.IsNaN(c.v) {
			return fmt.Errorf("entity: robot spec: %s must be positive, got %v", c.name, c.v)
		}
	}
	return nil
}

type part struct {
	geometry *scene.Geometry
	material prefabs.MaterialSpec
}

func robotParts(spec *prefabs.RobotSpec) map[string]part {
	eye := scene.NewDisc(spec.Eyes.Radius, spec.Eyes.Thickness, spec.Eyes.Segments)
	// ear axis runs along X
	ear := scene.NewCylinder(spec.Ears.Radius, spec.Ears.Radius, spec.Ears.Depth, spec.Ears.Segments).
		Transformed(mgl64.HomogRotate3DZ(math.Pi / 2))
	a := spec.Antenna
	return map[string]part{
		PartHead:     {scene.NewBox(spec.Head.Size[0], spec.Head.Size[1], spec.Head.Size[2]), spec.Head.Material},
		PartEyeLeft:  {eye, spec.Eyes.Material},
		PartEyeRight: {eye, spec.Eyes.Material},
		PartAntennaBase: {
			scene.NewCylinder(a.BaseRadius, a.BaseRadius, a.BaseHeight, a.RodSegments).
				Transformed(mgl64.Translate3D(0, a.BaseHeight/2, 0)),
			a.Material,
		},
		PartAntennaRod: {
			scene.NewCylinder(a.RodRadius, a.RodRadius, a.RodHeight, a.RodSegments).
				Transformed(mgl64.Translate3D(0, a.RodHeight/2, 0)),
			a.Material,
		},
		PartAntennaTip: {scene.NewSphere(a.TipRadius, a.TipSegments, a.TipSegments/2+1), a.TipMaterial},
		PartEarLeft:    {ear, spec.Ears.Material},
		PartEarRight:   {ear, spec.Ears.Material},
	}
}

func addMesh(w *ecs.World, node *scene.Node, name string, p part, shading component.Shading) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	mat := &component.Material{Shading: shading}
	applyMaterial(mat, p.material)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Node: node}); err != nil {
		return 0, fmt.Errorf("entity: add %s transform: %w", name, err)
	}
	if err := ecs.Add(w, e, component.MeshComponent.Kind(), &component.Mesh{
		Node:     node,
		Geometry: p.geometry,
		Material: mat,
		Part:     name,
	}); err != nil {
		return 0, fmt.Errorf("entity: add %s mesh: %w", name, err)
	}
	return e, nil
}

func applyMaterial(dst *component.Material, ms prefabs.MaterialSpec) {
	if dst == nil {
		return
	}
	dst.Color = ms.Color.Vec3()
	dst.Emissive = mgl64.Vec3{}
	dst.EmissiveIntensity = 0
	if ms.Emissive != nil {
		dst.Emissive = ms.Emissive.Vec3()
		dst.EmissiveIntensity = ms.EmissiveIntensity
	}
	dst.Transparent = ms.Transparent
}

func addAll(w *ecs.World, e ecs.Entity, adds ...func() error) error {
	for _, add := range adds {
		if err := add(); err != nil {
			ecs.DestroyEntity(w, e)
			return fmt.Errorf("entity: build robot: %w", err)
		}
	}
	return nil
}

func eyePart(side component.Side) string {
	if side == component.SideRight {
		return PartEyeRight
	}
	return PartEyeLeft
}

func earPart(side component.Side) string {
	if side == component.SideRight {
		return PartEarRight
	}
	return PartEarLeft
}

func outward(side component.Side) mgl64.Vec3 {
	if side == component.SideRight {
		return mgl64.Vec3{1, 0, 0}
	}
	return mgl64.Vec3{-1, 0, 0}
}
