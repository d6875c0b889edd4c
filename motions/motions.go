// Package motions models rigid motions: the rotations and
// translations that carry one reference frame into another.
package motions

import (
	"fmt"
	"strings"

	"zappem.net/pub/math/poses/values"
)

// Frame is a named rigid-body reference frame.
type Frame struct {
	Name string
}

func (f Frame) String() string { return f.Name }

// Pose is the pose of Target relative to Reference.
type Pose struct {
	Reference, Target Frame
}

func (p Pose) String() string {
	return fmt.Sprintf("%s -> %s", p.Reference, p.Target)
}

// Axis is one of the three Cartesian axes.
type Axis int

const (
	X Axis = iota
	Y
	Z
)

func (a Axis) String() string {
	switch a {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// Kind distinguishes rotations from translations.
type Kind int

const (
	Rotation Kind = iota
	Translation
)

func (k Kind) String() string {
	switch k {
	case Rotation:
		return "rot"
	case Translation:
		return "tr"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MotionStep is an elementary rotation about, or translation along,
// an axis. Steps compare equal with == when their kind, axis and
// amount are equal.
type MotionStep struct {
	Kind   Kind
	Axis   Axis
	Amount values.Amount
}

// Step is shorthand for a MotionStep.
func Step(k Kind, a Axis, amount values.Amount) MotionStep {
	return MotionStep{Kind: k, Axis: a, Amount: amount}
}

// Inverse returns the step undoing s.
func (s MotionStep) Inverse() MotionStep {
	s.Amount = s.Amount.Neg()
	return s
}

// String renders s as "rotx(q0)" or "try(3.1)".
func (s MotionStep) String() string {
	return fmt.Sprintf("%s%s(%v)", s.Kind, s.Axis, s.Amount)
}

// Mode is the convention the steps of a sequence compose with.
type Mode int

const (
	// CurrentFrame steps are about the axes of the frame resulting
	// from the previous steps (intrinsic).
	CurrentFrame Mode = iota
	// FixedFrame steps are about the axes of the initial frame
	// (extrinsic).
	FixedFrame
)

func (m Mode) String() string {
	switch m {
	case CurrentFrame:
		return "currentFrame"
	case FixedFrame:
		return "fixedFrame"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode converts the name of a convention to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "currentFrame":
		return CurrentFrame, nil
	case "fixedFrame":
		return FixedFrame, nil
	}
	return 0, fmt.Errorf("unknown convention %q", s)
}

// MotionSequence is a list of steps and the convention they compose
// with.
type MotionSequence struct {
	Steps []MotionStep
	Mode  Mode
}

// Sequence returns a MotionSequence of steps.
func Sequence(mode Mode, steps ...MotionStep) MotionSequence {
	return MotionSequence{Steps: steps, Mode: mode}
}

// Inverse returns the sequence undoing s: the steps are reversed and
// inverted, the convention is kept.
func (s MotionSequence) Inverse() MotionSequence {
	inv := MotionSequence{Mode: s.Mode, Steps: make([]MotionStep, len(s.Steps))}
	for i, st := range s.Steps {
		inv.Steps[len(s.Steps)-1-i] = st.Inverse()
	}
	return inv
}

// Motion is a series of sequences composed in order, allowing
// conventions to be mixed within one relative pose.
type Motion struct {
	Sequences []MotionSequence
}

// NewMotion returns the motion made of seqs.
func NewMotion(seqs ...MotionSequence) Motion {
	return Motion{Sequences: seqs}
}

// Steps returns every step of m in declaration order.
func (m Motion) Steps() []MotionStep {
	var steps []MotionStep
	for _, s := range m.Sequences {
		steps = append(steps, s.Steps...)
	}
	return steps
}

// Inverse returns the motion undoing m.
func (m Motion) Inverse() Motion {
	inv := Motion{Sequences: make([]MotionSequence, len(m.Sequences))}
	for i, s := range m.Sequences {
		inv.Sequences[len(m.Sequences)-1-i] = s.Inverse()
	}
	return inv
}

// Then returns the motion m followed by n.
func (m Motion) Then(n Motion) Motion {
	seqs := make([]MotionSequence, 0, len(m.Sequences)+len(n.Sequences))
	return Motion{Sequences: append(append(seqs, m.Sequences...), n.Sequences...)}
}

// PoseSpec is a pose and the motion realizing it: moving a frame
// coincident with Pose.Reference by Motion makes it coincide with
// Pose.Target.
type PoseSpec struct {
	Pose   Pose
	Motion Motion
}

// InversePoseSpec returns the specification of the opposite pose,
// whose motion is the inverse of that of ps.
func InversePoseSpec(ps PoseSpec) PoseSpec {
	return PoseSpec{
		Pose:   Pose{Reference: ps.Pose.Target, Target: ps.Pose.Reference},
		Motion: ps.Motion.Inverse(),
	}
}

// Snippet renders ps on a single line, "fA -> fB : rotx(q0) try(3.1)".
func Snippet(ps PoseSpec) string {
	var b strings.Builder
	b.WriteString(ps.Pose.String())
	b.WriteString(" :")
	for _, st := range ps.Motion.Steps() {
		b.WriteString(" ")
		b.WriteString(st.String())
	}
	return b.String()
}

// PosesSpec is a named collection of known relative poses.
type PosesSpec struct {
	Name  string
	Poses []PoseSpec
}
