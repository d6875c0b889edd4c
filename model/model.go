// Package model loads relative pose models from YAML or HCL documents.
//
// Both formats describe the same thing: a named list of poses, each a
// pair of frames and the motion steps carrying the first onto the
// second. Every document is read into a common intermediate form
// before motion values are built, so that arguments are shared by name
// across the whole model.
package model

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"zappem.net/pub/math/poses/motions"
	"zappem.net/pub/math/poses/values"
)

// ErrSyntax indicates an invalid model document.
var ErrSyntax = errors.New("invalid model document")

// document is a model file in either format.
type document struct {
	Name       string    `yaml:"name"`
	Convention string    `yaml:"convention"`
	Poses      []poseDoc `yaml:"poses"`
}

type poseDoc struct {
	From       string        `yaml:"from"`
	To         string        `yaml:"to"`
	Convention string        `yaml:"convention"`
	Steps      []stepDoc     `yaml:"steps"`
	Sequences  []sequenceDoc `yaml:"sequences"`
}

type sequenceDoc struct {
	Convention string    `yaml:"convention"`
	Steps      []stepDoc `yaml:"steps"`
}

// stepDoc is one step, "rotx" with its amount.
type stepDoc struct {
	Op     string
	Amount amountDoc
	Line   int
}

// amountDoc holds exactly one of a literal or an argument name.
type amountDoc struct {
	Literal *float64 `yaml:"literal"`
	Var     string   `yaml:"var"`
	Param   string   `yaml:"param"`
	Const   string   `yaml:"const"`
	Coeff   string   `yaml:"coeff"`
	Default *float64 `yaml:"default"`
	Value   *float64 `yaml:"value"`
}

var ops = map[string]struct {
	kind motions.Kind
	axis motions.Axis
}{
	"rotx": {motions.Rotation, motions.X},
	"roty": {motions.Rotation, motions.Y},
	"rotz": {motions.Rotation, motions.Z},
	"trx":  {motions.Translation, motions.X},
	"try":  {motions.Translation, motions.Y},
	"trz":  {motions.Translation, motions.Z},
}

// builder turns a document into motion values. Its registry makes
// every use of an argument name denote the same argument.
type builder struct {
	reg *values.Registry
	log logrus.FieldLogger
}

func mode(name string, inherited motions.Mode) (motions.Mode, error) {
	if name == "" {
		return inherited, nil
	}
	m, err := motions.ParseMode(name)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return m, nil
}

func (b *builder) build(doc *document) (motions.PosesSpec, error) {
	ps := motions.PosesSpec{Name: doc.Name}
	def, err := mode(doc.Convention, motions.CurrentFrame)
	if err != nil {
		return ps, err
	}
	for i, pd := range doc.Poses {
		p, err := b.pose(pd, def)
		if err != nil {
			return ps, fmt.Errorf("pose %d (%s -> %s): %w", i, pd.From, pd.To, err)
		}
		b.log.WithField("pose", p.Pose.String()).Debugf("%d steps", len(p.Motion.Steps()))
		ps.Poses = append(ps.Poses, p)
	}
	return ps, nil
}

func (b *builder) pose(pd poseDoc, def motions.Mode) (motions.PoseSpec, error) {
	var ps motions.PoseSpec
	if pd.From == "" || pd.To == "" {
		return ps, fmt.Errorf("%w: a pose needs both frames", ErrSyntax)
	}
	ps.Pose = motions.Pose{Reference: motions.Frame{Name: pd.From}, Target: motions.Frame{Name: pd.To}}
	m, err := mode(pd.Convention, def)
	if err != nil {
		return ps, err
	}
	seqs := pd.Sequences
	switch {
	case len(pd.Steps) != 0 && len(seqs) != 0:
		return ps, fmt.Errorf("%w: steps and sequences are mutually exclusive", ErrSyntax)
	case len(pd.Steps) != 0:
		seqs = []sequenceDoc{{Steps: pd.Steps}}
	}
	for _, sd := range seqs {
		sm, err := mode(sd.Convention, m)
		if err != nil {
			return ps, err
		}
		seq := motions.MotionSequence{Mode: sm}
		for _, st := range sd.Steps {
			step, err := b.step(st)
			if err != nil {
				return ps, err
			}
			seq.Steps = append(seq.Steps, step)
		}
		ps.Motion.Sequences = append(ps.Motion.Sequences, seq)
	}
	return ps, nil
}

func (b *builder) step(sd stepDoc) (motions.MotionStep, error) {
	op, ok := ops[sd.Op]
	if !ok {
		return motions.MotionStep{}, fmt.Errorf("%w: line %d: unknown step %q", ErrSyntax, sd.Line, sd.Op)
	}
	a, err := b.amount(sd.Amount)
	if err != nil {
		return motions.MotionStep{}, fmt.Errorf("line %d: %s: %w", sd.Line, sd.Op, err)
	}
	return motions.Step(op.kind, op.axis, a), nil
}

func (b *builder) amount(ad amountDoc) (values.Amount, error) {
	set := 0
	for _, name := range []string{ad.Var, ad.Param, ad.Const} {
		if name != "" {
			set++
		}
	}
	if ad.Literal != nil {
		set++
	}
	if set != 1 {
		return nil, fmt.Errorf("%w: an amount is exactly one of a literal, var, param or const", ErrSyntax)
	}
	for _, f := range []*float64{ad.Literal, ad.Default, ad.Value} {
		if f != nil && (math.IsInf(*f, 0) || math.IsNaN(*f)) {
			return nil, fmt.Errorf("%w: %v is not a finite number", ErrSyntax, *f)
		}
	}
	switch {
	case ad.Default != nil && ad.Param == "":
		return nil, fmt.Errorf("%w: only a param takes a default", ErrSyntax)
	case ad.Value != nil && ad.Const == "":
		return nil, fmt.Errorf("%w: only a const takes a value", ErrSyntax)
	case ad.Coeff != "" && ad.Literal != nil:
		return nil, fmt.Errorf("%w: a literal takes no coeff", ErrSyntax)
	}
	if ad.Literal != nil {
		return values.Literal(*ad.Literal), nil
	}

	coeff := big.NewRat(1, 1)
	if ad.Coeff != "" {
		if _, ok := coeff.SetString(strings.TrimSpace(ad.Coeff)); !ok || coeff.Sign() == 0 {
			return nil, fmt.Errorf("%w: bad coefficient %q", ErrSyntax, ad.Coeff)
		}
	}

	var arg values.Argument
	switch {
	case ad.Var != "":
		v, err := b.reg.Variable(ad.Var)
		if err != nil {
			return nil, err
		}
		arg = v
	case ad.Param != "":
		p, err := b.reg.Parameter(ad.Param, ad.Default)
		if err != nil {
			return nil, err
		}
		if def, _ := p.Default(); ad.Default != nil && *ad.Default != def {
			b.log.WithFields(logrus.Fields{
				"parameter": p.Name(),
				"default":   def,
				"ignored":   *ad.Default,
			}).Warn("conflicting parameter default ignored")
		}
		arg = p
	default:
		c, err := b.reg.Constant(ad.Const, ad.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
		}
		if ad.Value != nil && *ad.Value != c.Value() {
			b.log.WithFields(logrus.Fields{
				"constant": c.Name(),
				"value":    c.Value(),
				"ignored":  *ad.Value,
			}).Warn("conflicting constant value ignored")
		}
		arg = c
	}
	if !coeff.Num().IsInt64() || !coeff.Denom().IsInt64() {
		return nil, fmt.Errorf("%w: coefficient %q out of range", ErrSyntax, ad.Coeff)
	}
	return values.NewExpression(arg).WithCoeff(coeff), nil
}

func newBuilder(log logrus.FieldLogger) *builder {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &builder{reg: values.NewRegistry(), log: log}
}

// Load reads the model in the file at path. Files ending in ".hcl" are
// HCL, all others YAML. A model without a name is named after the
// file.
func Load(path string, log logrus.FieldLogger) (motions.PosesSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return motions.PosesSpec{}, err
	}
	if log != nil {
		log = log.WithField("file", path)
	}
	var ps motions.PosesSpec
	if filepath.Ext(path) == ".hcl" {
		ps, err = DecodeHCL(data, path, log)
	} else {
		ps, err = DecodeYAML(data, log)
	}
	if err != nil {
		return ps, fmt.Errorf("%s: %w", path, err)
	}
	if ps.Name == "" {
		ps.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return ps, nil
}
