// Package scene holds the minimal scene graph the robot is assembled from:
// transform nodes, a perspective camera, rays and procedural geometry.
package scene

import "github.com/go-gl/mathgl/mgl64"

// Node is a transform in a parent/child hierarchy. Rotation is Euler XYZ in
// radians, applied as Rx*Ry*Rz.
type Node struct {
	Name     string
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Scale    mgl64.Vec3
	Visible  bool

	parent   *Node
	children []*Node
}

func NewNode(name string) *Node {
	return &Node{Name: name, Scale: mgl64.Vec3{1, 1, 1}, Visible: true}
}

// Add reparents child under n.
func (n *Node) Add(child *Node) {
	if n == nil || child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

func (n *Node) remove(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	return n.children
}

// RotationMatrix returns the local rotation only.
func (n *Node) RotationMatrix() mgl64.Mat4 {
	return mgl64.HomogRotate3DX(n.Rotation.X()).
		Mul4(mgl64.HomogRotate3DY(n.Rotation.Y())).
		Mul4(mgl64.HomogRotate3DZ(n.Rotation.Z()))
}

// LocalMatrix composes translation, rotation and scale.
func (n *Node) LocalMatrix() mgl64.Mat4 {
	if n == nil {
		return mgl64.Ident4()
	}
	t := mgl64.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z())
	s := mgl64.Scale3D(n.Scale.X(), n.Scale.Y(), n.Scale.Z())
	return t.Mul4(n.RotationMatrix()).Mul4(s)
}

// WorldMatrix walks up to the root.
func (n *Node) WorldMatrix() mgl64.Mat4 {
	if n == nil {
		return mgl64.Ident4()
	}
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

func (n *Node) WorldPosition() mgl64.Vec3 {
	return mgl64.TransformCoordinate(mgl64.Vec3{}, n.WorldMatrix())
}

func (n *Node) LocalToWorld(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(p, n.WorldMatrix())
}

// WorldToLocal converts a world point into this node's local frame. ok is
// false when the world matrix is singular (a zero scale somewhere up the chain).
func (n *Node) WorldToLocal(p mgl64.Vec3) (mgl64.Vec3, bool) {
	m := n.WorldMatrix()
	if m.Det() == 0 {
		return mgl64.Vec3{}, false
	}
	return mgl64.TransformCoordinate(p, m.Inv()), true
}

// WorldVisible is false if this node or any ancestor is hidden.
func (n *Node) WorldVisible() bool {
	for c := n; c != nil; c = c.parent {
		if !c.Visible {
			return false
		}
	}
	return true
}

// Find returns the first node named name in the subtree, depth first.
func (n *Node) Find(name string) *Node {
	if n == nil {
		return nil
	}
	if n.Name == name {
		return n
	}
	for _, c := range n.children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

func (n *Node) Traverse(fn func(*Node)) {
	if n == nil || fn == nil {
		return
	}
	fn(n)
	for _, c := range n.children {
		c.Traverse(fn)
	}
}
