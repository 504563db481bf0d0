package confetti

// NodeType distinguishes the role of a Node in the scene graph.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no output of its own
	NodeTypeCamera                    // carries the scene's fixed Camera
	NodeTypeLight                     // carries the scene's DirectionalLight
	NodeTypeAnchor                    // dispense point hosting particle emitters
)

// nodeIDCounter is a plain counter (no atomic; the engine is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is a scene graph element. Position and orientation are fixed at
// construction; only an anchor's emitter set changes afterwards.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	parent   *Node
	children []*Node

	position    Vec3
	eulerAngles Vec3 // degrees

	camera *Camera
	light  *DirectionalLight

	// Anchor fields (NodeTypeAnchor)
	profile  *EmitterProfile
	emitters []*ParticleEmitter

	disposed bool
}

func newNode(name string, typ NodeType, pos Vec3) *Node {
	return &Node{ID: nextNodeID(), Name: name, Type: typ, position: pos}
}

// newContainer creates a node with no visual output.
func newContainer(name string) *Node {
	return newNode(name, NodeTypeContainer, Vec3{})
}

// newCameraNode creates the node that carries cam.
func newCameraNode(name string, pos Vec3, cam *Camera) *Node {
	n := newNode(name, NodeTypeCamera, pos)
	n.camera = cam
	return n
}

// newLightNode creates the node that carries light, oriented by euler degrees.
func newLightNode(name string, pos, euler Vec3, light *DirectionalLight) *Node {
	n := newNode(name, NodeTypeLight, pos)
	n.eulerAngles = euler
	n.light = light
	return n
}

// newAnchor creates a dispense point bound to profile. The binding cannot be
// changed: every emitter attached here must be created from profile.
func newAnchor(name string, pos Vec3, profile *EmitterProfile) *Node {
	n := newNode(name, NodeTypeAnchor, pos)
	n.profile = profile
	return n
}

// Position returns the node's position in its parent's space.
func (n *Node) Position() Vec3 { return n.position }

// EulerAngles returns the node's orientation in degrees.
func (n *Node) EulerAngles() Vec3 { return n.eulerAngles }

// Parent returns the parent node, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Camera returns the camera carried by this node, or nil.
func (n *Node) Camera() *Camera { return n.camera }

// Light returns the light carried by this node, or nil.
func (n *Node) Light() *DirectionalLight { return n.light }

// Profile returns a pointer to the anchor's bound profile, or nil for
// non-anchor nodes. The profile must not be modified.
func (n *Node) Profile() *EmitterProfile { return n.profile }

// Variant returns the anchor's profile variant.
func (n *Node) Variant() Variant {
	if n.profile == nil {
		return VariantNear
	}
	return n.profile.Variant
}

// Emitters returns the emitters attached to this anchor, oldest first. The
// returned slice MUST NOT be mutated by the caller.
func (n *Node) Emitters() []*ParticleEmitter { return n.emitters }

// NumEmitters returns the number of attached emitters.
func (n *Node) NumEmitters() int { return len(n.emitters) }

// HasEmitter reports whether e is attached to this node.
func (n *Node) HasEmitter(e *ParticleEmitter) bool {
	for _, x := range n.emitters {
		if x == e {
			return true
		}
	}
	return false
}

// --- Tree manipulation ---

// addChild appends child to this node's children.
// Panics if child is nil or already parented.
func (n *Node) addChild(child *Node) {
	if child == nil {
		panic("confetti: cannot add nil child")
	}
	if child.parent != nil {
		panic("confetti: child already has a parent")
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildByName returns the first node named name in this subtree (depth
// first, excluding n itself), or nil.
func (n *Node) ChildByName(name string) *Node {
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
		if found := c.ChildByName(name); found != nil {
			return found
		}
	}
	return nil
}

// WorldPosition returns the node's position in scene space.
func (n *Node) WorldPosition() Vec3 {
	p := n.position
	for a := n.parent; a != nil; a = a.parent {
		p = p.Add(a.position)
	}
	return p
}

// --- Emitter set ---

func (n *Node) addEmitter(e *ParticleEmitter) {
	n.emitters = append(n.emitters, e)
}

// removeEmitter removes e and reports whether it was present.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeEmitter(e *ParticleEmitter) bool {
	for i, x := range n.emitters {
		if x == e {
			copy(n.emitters[i:], n.emitters[i+1:])
			n.emitters[len(n.emitters)-1] = nil
			n.emitters = n.emitters[:len(n.emitters)-1]
			return true
		}
	}
	return false
}

// --- Disposal ---

// dispose marks this subtree disposed and drops every attached emitter.
func (n *Node) dispose() {
	n.disposed = true
	for _, e := range n.emitters {
		e.detach()
	}
	n.emitters = nil
	for _, child := range n.children {
		child.dispose()
	}
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}
