package arbor

import "image/color"

// BlendMode selects how drawn pixels combine with the surface.
type BlendMode uint8

const (
	// BlendInherit uses the blend mode of the nearest ancestor that sets one,
	// falling back to BlendSourceOver.
	BlendInherit BlendMode = iota
	// BlendSourceOver composites source over destination.
	BlendSourceOver
	// BlendCopy replaces the destination with the source.
	BlendCopy
	// BlendDestinationOut erases the destination where the source is opaque.
	BlendDestinationOut
)

func (b BlendMode) String() string {
	switch b {
	case BlendInherit:
		return "inherit"
	case BlendSourceOver:
		return "source-over"
	case BlendCopy:
		return "copy"
	case BlendDestinationOut:
		return "destination-out"
	}
	return "unknown"
}

// Shadow describes a drop shadow. Blur is carried for leaves that honour it;
// the Canvas draws the offset copy without blurring.
type Shadow struct {
	Color            color.Color
	OffsetX, OffsetY float64
	Blur             float64
}

// DisplayProps is the visual state accumulated along an ancestor chain.
type DisplayProps struct {
	Visible   bool
	Alpha     float64
	Shadow    *Shadow
	BlendMode BlendMode
	Matrix    Matrix2D
}

// NewDisplayProps returns the neutral props: visible, opaque, identity.
func NewDisplayProps() DisplayProps {
	return DisplayProps{Visible: true, Alpha: 1, Matrix: IdentityMatrix()}
}

// Append combines p with the state of a descendant. The descendant's shadow
// and blend mode win when set. The matrix is appended.
func (p DisplayProps) Append(visible bool, alpha float64, shadow *Shadow, blend BlendMode, m Matrix2D) DisplayProps {
	p.Alpha *= alpha
	if shadow != nil {
		p.Shadow = shadow
	}
	if blend != BlendInherit {
		p.BlendMode = blend
	}
	p.Visible = p.Visible && visible
	p.Matrix = p.Matrix.Append(m)
	return p
}

// Prepend combines p with the state of an ancestor. Values already held by p
// came from nearer the leaf and win over the ancestor's. The matrix is
// prepended.
func (p DisplayProps) Prepend(visible bool, alpha float64, shadow *Shadow, blend BlendMode, m Matrix2D) DisplayProps {
	p.Alpha *= alpha
	if p.Shadow == nil {
		p.Shadow = shadow
	}
	if p.BlendMode == BlendInherit {
		p.BlendMode = blend
	}
	p.Visible = p.Visible && visible
	p.Matrix = p.Matrix.Prepend(m)
	return p
}
