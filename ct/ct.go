// Package ct derives coordinate transforms from relative poses.
//
// The transform of the pose of frame B relative to frame A maps B
// coordinates to A coordinates, A_X_B, or the other way around,
// B_X_A, depending on its Polarity. A transform is an ordered product
// of primitive transforms, one per motion step, whose matrices are
// computed by package repr.
package ct

import (
	"errors"
	"fmt"

	"zappem.net/pub/math/poses/motions"
	"zappem.net/pub/math/poses/values"
)

// Polarity selects which frame's coordinates a transform maps from.
type Polarity int

const (
	// MovedFrameOnTheRight transforms target coordinates into
	// reference coordinates: reference_X_target.
	MovedFrameOnTheRight Polarity = iota
	// MovedFrameOnTheLeft transforms reference coordinates into
	// target coordinates: target_X_reference.
	MovedFrameOnTheLeft
)

func (p Polarity) String() string {
	switch p {
	case MovedFrameOnTheRight:
		return "movedFrameOnTheRight"
	case MovedFrameOnTheLeft:
		return "movedFrameOnTheLeft"
	}
	return fmt.Sprintf("Polarity(%d)", int(p))
}

// PrimitiveCTransform is the elementary transform of one motion step.
// Amount is the amount of the step. With MovedFrameOnTheLeft the
// primitive stands for the inverse of the step's transform.
type PrimitiveCTransform struct {
	Kind     motions.Kind
	Axis     motions.Axis
	Amount   values.Amount
	Polarity Polarity
}

func (p PrimitiveCTransform) String() string {
	s := motions.Step(p.Kind, p.Axis, p.Amount).String()
	if p.Polarity == MovedFrameOnTheLeft {
		s += "^-1"
	}
	return s
}

// CoordinateTransform maps Right coordinates to Left coordinates. Its
// matrix is the product of the matrices of Primitives, in order.
type CoordinateTransform struct {
	Left, Right motions.Frame
	Primitives  []PrimitiveCTransform
	Polarity    Polarity
}

// Equal compares all the fields of two transforms.
func (t CoordinateTransform) Equal(o CoordinateTransform) bool {
	if t.Left != o.Left || t.Right != o.Right || t.Polarity != o.Polarity || len(t.Primitives) != len(o.Primitives) {
		return false
	}
	for i, p := range t.Primitives {
		if p != o.Primitives[i] {
			return false
		}
	}
	return true
}

// String names the transform left_X_right.
func (t CoordinateTransform) String() string {
	return fmt.Sprintf("%s_X_%s", t.Left, t.Right)
}

// ErrInconsistentPolarity indicates a right frame that does not
// belong to the pose, or contradicts an explicit polarity.
var ErrInconsistentPolarity = errors.New("inconsistent transform polarity")

type options struct {
	polarity     *Polarity
	rightFrame   *motions.Frame
	primPolarity *Polarity
}

// Option configures ToCoordinateTransform.
type Option func(*options)

// WithPolarity selects the polarity of the transform. The default is
// MovedFrameOnTheRight.
func WithPolarity(p Polarity) Option {
	return func(o *options) { o.polarity = &p }
}

// WithRightFrame selects the polarity by naming the frame whose
// coordinates the transform maps from.
func WithRightFrame(f motions.Frame) Option {
	return func(o *options) { o.rightFrame = &f }
}

// WithPrimitivesPolarity expresses every primitive with polarity p,
// whatever the polarity of the transform. A primitive of the other
// polarity is replaced by one of the opposite amount, which has the
// same matrix.
func WithPrimitivesPolarity(p Polarity) Option {
	return func(o *options) { o.primPolarity = &p }
}

func polarityOf(pose motions.Pose, o options) (Polarity, error) {
	p := MovedFrameOnTheRight
	if o.polarity != nil {
		p = *o.polarity
	}
	if o.rightFrame == nil {
		return p, nil
	}
	var fromFrame Polarity
	switch *o.rightFrame {
	case pose.Target:
		fromFrame = MovedFrameOnTheRight
	case pose.Reference:
		fromFrame = MovedFrameOnTheLeft
	default:
		return 0, fmt.Errorf("%w: %s is not a frame of %v", ErrInconsistentPolarity, *o.rightFrame, pose)
	}
	if pose.Target == pose.Reference {
		return p, nil
	}
	if o.polarity != nil && *o.polarity != fromFrame {
		return 0, fmt.Errorf("%w: right frame %s with %v", ErrInconsistentPolarity, *o.rightFrame, *o.polarity)
	}
	return fromFrame, nil
}

// ToCoordinateTransform derives the transform of the pose ps.
//
// Within a CurrentFrame sequence each step is taken about the axes
// resulting from the previous steps, so its primitive multiplies on
// the right of theirs. FixedFrame steps are about the initial axes
// and their primitives are stored in reverse order. Sequences follow
// each other in order. A MovedFrameOnTheLeft transform is the inverse
// product: the primitives are reversed and each stands for the
// inverse of its step.
func ToCoordinateTransform(ps motions.PoseSpec, opts ...Option) (CoordinateTransform, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	pol, err := polarityOf(ps.Pose, o)
	if err != nil {
		return CoordinateTransform{}, err
	}
	var prims []PrimitiveCTransform
	for _, seq := range ps.Motion.Sequences {
		n := len(seq.Steps)
		for i := range seq.Steps {
			st := seq.Steps[i]
			if seq.Mode == motions.FixedFrame {
				st = seq.Steps[n-1-i]
			}
			prims = append(prims, PrimitiveCTransform{Kind: st.Kind, Axis: st.Axis, Amount: st.Amount})
		}
	}
	t := CoordinateTransform{
		Left:       ps.Pose.Reference,
		Right:      ps.Pose.Target,
		Primitives: prims,
		Polarity:   pol,
	}
	if pol == MovedFrameOnTheLeft {
		t.Left, t.Right = t.Right, t.Left
		n := len(prims)
		t.Primitives = make([]PrimitiveCTransform, n)
		for i, p := range prims {
			p.Polarity = MovedFrameOnTheLeft
			t.Primitives[n-1-i] = p
		}
	}
	if o.primPolarity != nil {
		for i, p := range t.Primitives {
			if p.Polarity != *o.primPolarity {
				p.Amount = p.Amount.Neg()
				p.Polarity = *o.primPolarity
				t.Primitives[i] = p
			}
		}
	}
	return t, nil
}

// Model is a named set of transforms.
type Model struct {
	Name       string
	Transforms []CoordinateTransform
}

// MotionsToCoordinateTransforms derives the transform of every pose of
// ps, in order.
func MotionsToCoordinateTransforms(ps motions.PosesSpec, opts ...Option) (Model, error) {
	m := Model{Name: ps.Name}
	for _, p := range ps.Poses {
		t, err := ToCoordinateTransform(p, opts...)
		if err != nil {
			return Model{}, fmt.Errorf("pose %v: %w", p.Pose, err)
		}
		m.Transforms = append(m.Transforms, t)
	}
	return m, nil
}
