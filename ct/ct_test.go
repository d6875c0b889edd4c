package ct

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zappem.net/pub/math/poses/motions"
	"zappem.net/pub/math/poses/values"
)

var (
	fA = motions.Frame{Name: "A"}
	fB = motions.Frame{Name: "B"}
)

func prim(k motions.Kind, a motions.Axis, amount values.Amount, p Polarity) PrimitiveCTransform {
	return PrimitiveCTransform{Kind: k, Axis: a, Amount: amount, Polarity: p}
}

func TestToCoordinateTransform(t *testing.T) {
	q := values.NewExpression(values.NewVariable("q"))
	ps := motions.PoseSpec{
		Pose: motions.Pose{Reference: fA, Target: fB},
		Motion: motions.NewMotion(
			motions.Sequence(motions.CurrentFrame,
				motions.Step(motions.Rotation, motions.X, q),
				motions.Step(motions.Translation, motions.Y, values.Literal(1.1))),
			motions.Sequence(motions.FixedFrame,
				motions.Step(motions.Rotation, motions.Z, values.Literal(0.5)),
				motions.Step(motions.Translation, motions.Z, values.Literal(2))),
		),
	}

	right := []PrimitiveCTransform{
		prim(motions.Rotation, motions.X, q, MovedFrameOnTheRight),
		prim(motions.Translation, motions.Y, values.Literal(1.1), MovedFrameOnTheRight),
		prim(motions.Translation, motions.Z, values.Literal(2), MovedFrameOnTheRight),
		prim(motions.Rotation, motions.Z, values.Literal(0.5), MovedFrameOnTheRight),
	}
	left := []PrimitiveCTransform{
		prim(motions.Rotation, motions.Z, values.Literal(0.5), MovedFrameOnTheLeft),
		prim(motions.Translation, motions.Z, values.Literal(2), MovedFrameOnTheLeft),
		prim(motions.Translation, motions.Y, values.Literal(1.1), MovedFrameOnTheLeft),
		prim(motions.Rotation, motions.X, q, MovedFrameOnTheLeft),
	}

	tests := []struct {
		name string
		opts []Option
		want CoordinateTransform
		str  string
	}{
		{"default", nil, CoordinateTransform{Left: fA, Right: fB, Primitives: right}, "A_X_B"},
		{"right polarity", []Option{WithPolarity(MovedFrameOnTheRight)}, CoordinateTransform{Left: fA, Right: fB, Primitives: right}, "A_X_B"},
		{"left polarity", []Option{WithPolarity(MovedFrameOnTheLeft)}, CoordinateTransform{Left: fB, Right: fA, Primitives: left, Polarity: MovedFrameOnTheLeft}, "B_X_A"},
		{"right frame B", []Option{WithRightFrame(fB)}, CoordinateTransform{Left: fA, Right: fB, Primitives: right}, "A_X_B"},
		{"right frame A", []Option{WithRightFrame(fA)}, CoordinateTransform{Left: fB, Right: fA, Primitives: left, Polarity: MovedFrameOnTheLeft}, "B_X_A"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ToCoordinateTransform(ps, tc.opts...)
			require.NoError(t, err)
			assert.True(t, got.Equal(tc.want), "got %v %v", got, got.Primitives)
			assert.Equal(t, tc.str, got.String())
		})
	}
}

func TestPolarityErrors(t *testing.T) {
	ps := motions.PoseSpec{Pose: motions.Pose{Reference: fA, Target: fB}}
	_, err := ToCoordinateTransform(ps, WithRightFrame(motions.Frame{Name: "C"}))
	assert.ErrorIs(t, err, ErrInconsistentPolarity)
	_, err = ToCoordinateTransform(ps, WithRightFrame(fB), WithPolarity(MovedFrameOnTheLeft))
	assert.ErrorIs(t, err, ErrInconsistentPolarity)

	self := motions.PoseSpec{Pose: motions.Pose{Reference: fA, Target: fA}}
	got, err := ToCoordinateTransform(self, WithRightFrame(fA), WithPolarity(MovedFrameOnTheLeft))
	require.NoError(t, err)
	assert.Equal(t, MovedFrameOnTheLeft, got.Polarity)
}

func TestEqual(t *testing.T) {
	a := CoordinateTransform{Left: fA, Right: fB, Primitives: []PrimitiveCTransform{
		prim(motions.Rotation, motions.X, values.Literal(1), MovedFrameOnTheRight),
	}}
	b := a
	b.Primitives = []PrimitiveCTransform{prim(motions.Rotation, motions.X, values.Literal(1), MovedFrameOnTheRight)}
	assert.True(t, a.Equal(b))
	b.Primitives[0].Axis = motions.Y
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(CoordinateTransform{Left: fA, Right: fB}))
}

func TestPrimitiveString(t *testing.T) {
	assert.Equal(t, "rotx(0.5)", prim(motions.Rotation, motions.X, values.Literal(0.5), MovedFrameOnTheRight).String())
	assert.Equal(t, "trz(2)^-1", prim(motions.Translation, motions.Z, values.Literal(2), MovedFrameOnTheLeft).String())
}

func TestMotionsToCoordinateTransforms(t *testing.T) {
	spec := motions.PosesSpec{Name: "arm", Poses: []motions.PoseSpec{
		{Pose: motions.Pose{Reference: fA, Target: fB}},
		{Pose: motions.Pose{Reference: fB, Target: motions.Frame{Name: "C"}}},
	}}
	m, err := MotionsToCoordinateTransforms(spec)
	require.NoError(t, err)
	assert.Equal(t, "arm", m.Name)
	require.Len(t, m.Transforms, 2)
	assert.Equal(t, "B_X_C", m.Transforms[1].String())

	m, err = MotionsToCoordinateTransforms(spec, WithRightFrame(fB))
	require.NoError(t, err)
	assert.Equal(t, "A_X_B", m.Transforms[0].String())
	assert.Equal(t, "C_X_B", m.Transforms[1].String())

	_, err = MotionsToCoordinateTransforms(spec, WithRightFrame(fA))
	assert.ErrorIs(t, err, ErrInconsistentPolarity)
}

func TestPrimitivesPolarity(t *testing.T) {
	q := values.NewExpression(values.NewVariable("q"))
	ps := motions.PoseSpec{
		Pose: motions.Pose{Reference: fA, Target: fB},
		Motion: motions.NewMotion(motions.Sequence(motions.CurrentFrame,
			motions.Step(motions.Rotation, motions.X, q),
			motions.Step(motions.Translation, motions.Z, values.Literal(2)),
		)),
	}
	tests := []struct {
		name string
		opts []Option
		want []string
	}{
		{"right", []Option{WithPrimitivesPolarity(MovedFrameOnTheLeft)}, []string{"rotx(-q)^-1", "trz(-2)^-1"}},
		{"right unchanged", []Option{WithPrimitivesPolarity(MovedFrameOnTheRight)}, []string{"rotx(q)", "trz(2)"}},
		{"left", []Option{WithPolarity(MovedFrameOnTheLeft), WithPrimitivesPolarity(MovedFrameOnTheRight)}, []string{"trz(-2)", "rotx(-q)"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr, err := ToCoordinateTransform(ps, tc.opts...)
			require.NoError(t, err)
			var got []string
			for _, p := range tr.Primitives {
				got = append(got, p.String())
			}
			assert.Equal(t, tc.want, got)
		})
	}
}
