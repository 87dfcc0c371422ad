package scene

import "errors"

// Errors returned by Node implementations.
var (
	ErrNoSuchProperty = errors.New("scene: no such property")
	ErrNoSuchMethod   = errors.New("scene: no such method")
	ErrNodeNotFound   = errors.New("scene: node not found")
)

// Node is the capability interface over one live node of the host's object
// graph. Handlers receive Nodes from a Resolver and never see the host's own
// node representation.
//
// Contract:
// - Get/Set/Call run on the host's script scheduler thread; they must not be
//   retained past the current dispatch.
// - Set receives values already marshalled to the types in this package.
type Node interface {
	// Kind returns the node's class name (e.g. "Part", "Frame",
	// "Vector3Value"). Kind drives context-sensitive marshalling.
	Kind() string

	// Get reads a property by name.
	Get(name string) (any, error)

	// Set writes a property by name.
	Set(name string, value any) error

	// Call invokes a method by name.
	Call(method string, args ...any) (any, error)
}

// Resolver finds a live node by its path in the graph (e.g.
// "Workspace.Model.Part"). Implementations return ErrNodeNotFound when no
// node exists at the path.
type Resolver func(path string) (Node, error)

// layoutKinds are the 2D-layout classes whose Position and Size are
// scale/offset pairs rather than 3-axis vectors.
var layoutKinds = map[string]bool{
	"ScreenGui":      true,
	"BillboardGui":   true,
	"SurfaceGui":     true,
	"Frame":          true,
	"ScrollingFrame": true,
	"CanvasGroup":    true,
	"ViewportFrame":  true,
	"VideoFrame":     true,
	"TextLabel":      true,
	"TextButton":     true,
	"TextBox":        true,
	"ImageLabel":     true,
	"ImageButton":    true,
}

// IsLayoutKind reports whether kind is a 2D-layout class.
func IsLayoutKind(kind string) bool {
	return layoutKinds[kind]
}

// ValueContainerKind identifies typed value-container classes whose "Value"
// property has a fixed composite type.
type ValueContainerKind int

// Value-container classifications.
const (
	NotValueContainer ValueContainerKind = iota
	Vector3Container
	Color3Container
	BrickColorContainer
)

// ContainerKind classifies a node class as a typed value container.
func ContainerKind(kind string) ValueContainerKind {
	switch kind {
	case "Vector3Value":
		return Vector3Container
	case "Color3Value":
		return Color3Container
	case "BrickColorValue":
		return BrickColorContainer
	default:
		return NotValueContainer
	}
}
