package motions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zappem.net/pub/math/poses/values"
)

var (
	fA = Frame{Name: "A"}
	fB = Frame{Name: "B"}
	fC = Frame{Name: "C"}
	fD = Frame{Name: "D"}
	fZ = Frame{Name: "Z"}
)

func TestStepEquality(t *testing.T) {
	q := values.NewVariable("q")
	s1 := Step(Rotation, X, values.NewExpression(q).Scaled(2, 1))
	s2 := Step(Rotation, X, values.NewExpression(q).Scaled(4, 2))
	assert.True(t, s1 == s2)
	assert.False(t, s1 == Step(Rotation, Y, s1.Amount))
	assert.False(t, s1 == Step(Translation, X, s1.Amount))
	assert.True(t, Step(Translation, Z, values.Literal(1.5)) == Step(Translation, Z, values.Literal(1.5)))

	set := map[MotionStep]bool{s1: true}
	assert.True(t, set[s2])
}

func TestStepString(t *testing.T) {
	p := values.NewParameter("p1")
	assert.Equal(t, "rotx(0.2)", Step(Rotation, X, values.Literal(0.2)).String())
	assert.Equal(t, "try(-2*p1)", Step(Translation, Y, values.NewExpression(p).Scaled(-2, 1)).String())
}

func TestInverse(t *testing.T) {
	q := values.NewExpression(values.NewVariable("q"))
	seq := Sequence(FixedFrame,
		Step(Rotation, X, q),
		Step(Translation, Y, values.Literal(1.1)),
	)
	inv := seq.Inverse()
	assert.Equal(t, FixedFrame, inv.Mode)
	require.Len(t, inv.Steps, 2)
	assert.Equal(t, Step(Translation, Y, values.Literal(-1.1)), inv.Steps[0])
	assert.Equal(t, Step(Rotation, X, q.Neg()), inv.Steps[1])

	m := NewMotion(seq, Sequence(CurrentFrame, Step(Rotation, Z, values.Literal(0.5))))
	mi := m.Inverse()
	require.Len(t, mi.Sequences, 2)
	assert.Equal(t, CurrentFrame, mi.Sequences[0].Mode)
	assert.Equal(t, Step(Rotation, Z, values.Literal(-0.5)), mi.Sequences[0].Steps[0])
	assert.Equal(t, m, mi.Inverse())

	ps := PoseSpec{Pose: Pose{Reference: fA, Target: fB}, Motion: m}
	ips := InversePoseSpec(ps)
	assert.Equal(t, Pose{Reference: fB, Target: fA}, ips.Pose)
	assert.Equal(t, mi, ips.Motion)
}

func TestSnippet(t *testing.T) {
	q := values.NewExpression(values.NewVariable("q0"))
	ps := PoseSpec{
		Pose: Pose{Reference: fA, Target: fB},
		Motion: NewMotion(
			Sequence(CurrentFrame, Step(Rotation, X, q), Step(Translation, Y, values.Literal(3.1))),
			Sequence(FixedFrame, Step(Rotation, Z, q.Neg())),
		),
	}
	assert.Equal(t, "A -> B : rotx(q0) try(3.1) rotz(-q0)", Snippet(ps))
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{CurrentFrame, FixedFrame} {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseMode("movingFrame")
	assert.Error(t, err)
}

func step(f float64) MotionSequence {
	return Sequence(CurrentFrame, Step(Translation, X, values.Literal(f)))
}

func TestInspector(t *testing.T) {
	ab := PoseSpec{Pose: Pose{Reference: fA, Target: fB}, Motion: NewMotion(step(1))}
	bc := PoseSpec{Pose: Pose{Reference: fB, Target: fC}, Motion: NewMotion(step(2))}
	dc := PoseSpec{Pose: Pose{Reference: fD, Target: fC}, Motion: NewMotion(step(3))}
	zz := PoseSpec{Pose: Pose{Reference: fZ, Target: fZ}, Motion: NewMotion(step(4))}
	in := NewConnectedFramesInspector(PosesSpec{Name: "test", Poses: []PoseSpec{ab, bc, dc, zz}})

	assert.Equal(t, []Frame{fA, fB, fC, fD, fZ}, in.Frames())
	assert.True(t, in.HasRelativePose(fC, fA))
	assert.True(t, in.HasRelativePose(fA, fC))
	assert.True(t, in.HasRelativePose(fD, fA))
	assert.False(t, in.HasRelativePose(fZ, fA))
	assert.False(t, in.HasRelativePose(Frame{Name: "nope"}, fA))

	ac, err := in.PoseSpec(fC, fA)
	require.NoError(t, err)
	assert.Equal(t, Pose{Reference: fA, Target: fC}, ac.Pose)
	assert.Equal(t, NewMotion(step(1), step(2)), ac.Motion)

	ad, err := in.PoseSpec(fD, fA)
	require.NoError(t, err)
	assert.Equal(t, NewMotion(step(1), step(2), step(-3)), ad.Motion)

	ba, err := in.PoseSpec(fA, fB)
	require.NoError(t, err)
	assert.Equal(t, NewMotion(step(-1)), ba.Motion)

	aa, err := in.PoseSpec(fA, fA)
	require.NoError(t, err)
	assert.Empty(t, aa.Motion.Steps())

	_, err = in.PoseSpec(fZ, fA)
	assert.ErrorIs(t, err, ErrNotConnected)
}
