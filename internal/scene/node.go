// Package scene implements the canonical scene graph store: the node
// records and the parent/child invariants that every other component in
// this module builds on.
package scene

import "github.com/canvasengine/canvascore/internal/geom"

// NodeType is the kind of a scene node.
type NodeType string

const (
	TypeFrame NodeType = "FRAME"
	TypeGroup NodeType = "GROUP"
	TypeShape NodeType = "SHAPE"
	TypeText  NodeType = "TEXT"
)

// LayoutMode selects which of the three layout algorithms a frame uses.
type LayoutMode string

const (
	ModeAbsolute  LayoutMode = "ABSOLUTE"
	ModeAutoLayout LayoutMode = "AUTO_LAYOUT"
	ModeFlex      LayoutMode = "FLEX"
)

// Direction is the primary axis of a flow container.
type Direction string

const (
	DirectionRow    Direction = "ROW"
	DirectionColumn Direction = "COLUMN"
)

// Align is a primary or counter axis alignment value. Not every value is
// meaningful on both axes; see spec for which apply where.
type Align string

const (
	AlignStart         Align = "START"
	AlignCenter        Align = "CENTER"
	AlignEnd           Align = "END"
	AlignSpaceBetween  Align = "SPACE_BETWEEN"
	AlignSpaceAround   Align = "SPACE_AROUND"
	AlignSpaceEvenly   Align = "SPACE_EVENLY"
	AlignStretch       Align = "STRETCH"
	AlignBaseline      Align = "BASELINE"
	AlignSelfAuto      Align = "AUTO"
)

// SizingMode is the per-axis sizing resolution mode.
type SizingMode string

const (
	SizingFixed SizingMode = "FIXED"
	SizingHug   SizingMode = "HUG"
	SizingFill  SizingMode = "FILL"
)

// Size is an intrinsic width/height pair.
type Size struct {
	Width, Height float64
}

// Padding is inset distances from a container's edges.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// AxisSizing carries a sizing mode with optional min/max clamps.
type AxisSizing struct {
	Mode SizingMode
	Min  *float64
	Max  *float64
}

// FlexItem is the flex-item sub-record a child carries inside a FLEX parent.
type FlexItem struct {
	Grow      float64
	Shrink    float64
	BasisAuto bool
	Basis     float64
	AlignSelf Align
	Order     int
}

// LayoutConfig is a node's layout participation: both how it arranges its
// own children (if it is a flow container) and how it behaves as a child of
// one (AbsolutePosition, FlexItem).
type LayoutConfig struct {
	Mode             LayoutMode
	Direction        Direction
	Gap              float64
	RowGap           *float64
	Padding          Padding
	PrimaryAlign     Align
	CounterAlign     Align
	Wrap             bool
	Reverse          bool
	Sizing           struct{ Horizontal, Vertical AxisSizing }
	AbsolutePosition bool
	FlexItem         FlexItem
}

// ConstraintValue is an ABSOLUTE-mode resize constraint.
type ConstraintValue string

const (
	ConstraintLeft      ConstraintValue = "LEFT"
	ConstraintRight     ConstraintValue = "RIGHT"
	ConstraintLeftRight ConstraintValue = "LEFT_RIGHT"
	ConstraintCenter    ConstraintValue = "CENTER"
	ConstraintScale     ConstraintValue = "SCALE"
)

// Constraints pins a node's behavior under ABSOLUTE-mode parent resize.
type Constraints struct {
	Horizontal ConstraintValue
	Vertical   ConstraintValue
}

// FillKind discriminates the Fill tagged union.
type FillKind string

const (
	FillSolid           FillKind = "SOLID"
	FillLinearGradient  FillKind = "LINEAR_GRADIENT"
	FillRadialGradient  FillKind = "RADIAL_GRADIENT"
	FillImage           FillKind = "IMAGE"
)

// GradientStop is one color stop of a gradient fill.
type GradientStop struct {
	Position float64
	Color    string
}

// Fill is a tagged union over the four fill kinds; only the fields
// matching Kind are meaningful.
type Fill struct {
	Kind      FillKind
	Color     string
	Stops     []GradientStop
	ImageRef  string
	Opacity   float64
}

// Stroke is an ordered stroke layer.
type Stroke struct {
	Fill   Fill
	Weight float64
	Align  string
	Dash   []float64
}

// CornerRadius carries a per-corner radius.
type CornerRadius struct {
	TopLeft, TopRight, BottomRight, BottomLeft float64
}

// EffectKind discriminates the Effect tagged union.
type EffectKind string

const (
	EffectDropShadow      EffectKind = "DROP_SHADOW"
	EffectInnerShadow     EffectKind = "INNER_SHADOW"
	EffectLayerBlur       EffectKind = "LAYER_BLUR"
	EffectBackgroundBlur  EffectKind = "BACKGROUND_BLUR"
)

// Effect is a tagged union over the four effect kinds.
type Effect struct {
	Kind    EffectKind
	Color   string
	OffsetX float64
	OffsetY float64
	Blur    float64
	Spread  float64
	Radius  float64
}

// TextStyle is the optional text sub-style for TEXT nodes.
type TextStyle struct {
	FontFamily string
	FontSize   float64
	FontWeight int
	LineHeight float64
	LetterSpacing float64
	Align      string
}

// Styles is a node's paint styling record.
type Styles struct {
	Fills        []Fill
	Strokes      []Stroke
	CornerRadius CornerRadius
	Effects      []Effect
	Opacity      float64
	BlendMode    string
	Text         *TextStyle
}

// Node is a single scene graph record.
//
// Children is the sole source of paint and hit-test z-order: earlier
// children paint behind later ones. WorldTransform is a cache of the
// transform engine's result, copied in by the geometry service when it
// builds a node's geometry; it is not recomputed here.
type Node struct {
	ID       string
	ParentID string
	Children []string

	Name string
	Type NodeType

	LocalTransform geom.Matrix
	WorldTransform geom.Matrix

	Size Size

	Layout      LayoutConfig
	Constraints Constraints
	Styles      Styles

	Visible      bool
	Locked       bool
	ClipsContent bool

	TextContent *string
}

// Clone returns a deep copy of n, safe to mutate independently.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	c.Children = append([]string(nil), n.Children...)
	c.Styles.Fills = append([]Fill(nil), n.Styles.Fills...)
	for i := range c.Styles.Fills {
		c.Styles.Fills[i].Stops = append([]GradientStop(nil), n.Styles.Fills[i].Stops...)
	}
	c.Styles.Strokes = append([]Stroke(nil), n.Styles.Strokes...)
	for i := range c.Styles.Strokes {
		c.Styles.Strokes[i].Dash = append([]float64(nil), n.Styles.Strokes[i].Dash...)
	}
	c.Styles.Effects = append([]Effect(nil), n.Styles.Effects...)
	if n.Styles.Text != nil {
		t := *n.Styles.Text
		c.Styles.Text = &t
	}
	if n.TextContent != nil {
		s := *n.TextContent
		c.TextContent = &s
	}
	if n.Layout.Sizing.Horizontal.Min != nil {
		v := *n.Layout.Sizing.Horizontal.Min
		c.Layout.Sizing.Horizontal.Min = &v
	}
	if n.Layout.Sizing.Horizontal.Max != nil {
		v := *n.Layout.Sizing.Horizontal.Max
		c.Layout.Sizing.Horizontal.Max = &v
	}
	if n.Layout.Sizing.Vertical.Min != nil {
		v := *n.Layout.Sizing.Vertical.Min
		c.Layout.Sizing.Vertical.Min = &v
	}
	if n.Layout.Sizing.Vertical.Max != nil {
		v := *n.Layout.Sizing.Vertical.Max
		c.Layout.Sizing.Vertical.Max = &v
	}
	if n.Layout.RowGap != nil {
		v := *n.Layout.RowGap
		c.Layout.RowGap = &v
	}
	return &c
}
