package model

import (
	"fmt"
	"math"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/sirupsen/logrus"
	"github.com/zclconf/go-cty/cty"

	"zappem.net/pub/math/poses/motions"
)

type hclFile struct {
	Name       string    `hcl:"name,optional"`
	Convention string    `hcl:"convention,optional"`
	Poses      []hclPose `hcl:"pose,block"`
}

type hclPose struct {
	From       string        `hcl:"from,label"`
	To         string        `hcl:"to,label"`
	Convention string        `hcl:"convention,optional"`
	Steps      []hclStep     `hcl:"step,block"`
	Sequences  []hclSequence `hcl:"sequence,block"`
}

type hclSequence struct {
	Convention string    `hcl:"convention,optional"`
	Steps      []hclStep `hcl:"step,block"`
}

type hclStep struct {
	Op      string   `hcl:"op,label"`
	Literal *float64 `hcl:"literal,optional"`
	Var     string   `hcl:"var,optional"`
	Param   string   `hcl:"param,optional"`
	Const   string   `hcl:"const,optional"`
	Coeff   string   `hcl:"coeff,optional"`
	Default *float64 `hcl:"default,optional"`
	Value   *float64 `hcl:"value,optional"`

	Range hcl.Range `hcl:",def_range"`
}

// evalContext lets literals be written in terms of pi.
var evalContext = &hcl.EvalContext{
	Variables: map[string]cty.Value{
		"pi": cty.NumberFloatVal(math.Pi),
	},
}

func (s hclStep) doc() stepDoc {
	return stepDoc{
		Op:   s.Op,
		Line: s.Range.Start.Line,
		Amount: amountDoc{
			Literal: s.Literal,
			Var:     s.Var,
			Param:   s.Param,
			Const:   s.Const,
			Coeff:   s.Coeff,
			Default: s.Default,
			Value:   s.Value,
		},
	}
}

func hclSteps(ss []hclStep) []stepDoc {
	var ds []stepDoc
	for _, s := range ss {
		ds = append(ds, s.doc())
	}
	return ds
}

// DecodeHCL builds the model described by an HCL document:
//
//	name = "arm"
//	pose "base" "shoulder" {
//	  step "trz" {
//	    param   = "h"
//	    default = 0.4
//	  }
//	  step "rotz" { var = "q0" }
//	}
//
// Sequences with their own convention are written as sequence blocks
// holding steps. The variable pi may be used in numerical attributes.
func DecodeHCL(data []byte, filename string, log logrus.FieldLogger) (motions.PosesSpec, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return motions.PosesSpec{}, fmt.Errorf("%w: %s", ErrSyntax, diags.Error())
	}
	var f hclFile
	if diags := gohcl.DecodeBody(file.Body, evalContext, &f); diags.HasErrors() {
		return motions.PosesSpec{}, fmt.Errorf("%w: %s", ErrSyntax, diags.Error())
	}

	doc := &document{Name: f.Name, Convention: f.Convention}
	for _, p := range f.Poses {
		pd := poseDoc{From: p.From, To: p.To, Convention: p.Convention, Steps: hclSteps(p.Steps)}
		for _, s := range p.Sequences {
			pd.Sequences = append(pd.Sequences, sequenceDoc{Convention: s.Convention, Steps: hclSteps(s.Steps)})
		}
		doc.Poses = append(doc.Poses, pd)
	}
	b := newBuilder(log)
	b.log.WithField("poses", len(doc.Poses)).Debug("decoded HCL model")
	return b.build(doc)
}
