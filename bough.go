package bough

import "github.com/go-gl/mathgl/mgl32"

// TransformID is the stable identity of a transform component. It does not
// change when the component moves between storage slots.
type TransformID uint32

// InvalidTransformID marks a missing parent (root node).
const InvalidTransformID = ^TransformID(0)

// InheritanceMode selects which channels a node composes from its parent's
// world transform.
type InheritanceMode uint8

const (
	DontInheritTransform InheritanceMode = 0 // world transform ignores the parent entirely
	InheritPosition      InheritanceMode = 1 << (iota - 1)
	InheritScale
	InheritOrientation

	InheritAll = InheritPosition | InheritScale | InheritOrientation
)

// TransformProperty names a 3D channel of a transform component.
type TransformProperty uint8

const (
	PropertyPosition     TransformProperty = iota // animatable, base-tracked
	PropertyScale                                 // animatable, base-tracked
	PropertyAnchorPoint                           // static
	PropertyParentOrigin                          // static
	PropertySize                                  // animatable, base-tracked
)

// String returns the property name.
func (p TransformProperty) String() string {
	switch p {
	case PropertyPosition:
		return "position"
	case PropertyScale:
		return "scale"
	case PropertyAnchorPoint:
		return "anchor-point"
	case PropertyParentOrigin:
		return "parent-origin"
	case PropertySize:
		return "size"
	default:
		return "unknown"
	}
}

// Axis selects one component of a 3D channel.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

var (
	// AnchorCenter is the default anchor point.
	AnchorCenter = mgl32.Vec3{0.5, 0.5, 0.5}
	// AnchorTopLeft places the anchor at the content box's top-left corner.
	AnchorTopLeft = mgl32.Vec3{0, 0, 0.5}
	// ParentOriginTopLeft is the default parent origin.
	ParentOriginTopLeft = mgl32.Vec3{0, 0, 0.5}
	// ParentOriginCenter places the origin at the centre of the parent.
	ParentOriginCenter = mgl32.Vec3{0.5, 0.5, 0.5}
)

var (
	unitScale = mgl32.Vec3{1, 1, 1}
	half      = mgl32.Vec3{0.5, 0.5, 0.5}
	topLeft   = mgl32.Vec3{0, 0, 0.5}
)
