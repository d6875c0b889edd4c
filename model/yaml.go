package model

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"zappem.net/pub/math/poses/motions"
)

// amountFields are the keys of an amount mapping. Node.Decode does not
// honor the decoder's KnownFields.
var amountFields = map[string]bool{
	"literal": true,
	"var":     true,
	"param":   true,
	"const":   true,
	"coeff":   true,
	"default": true,
	"value":   true,
}

// UnmarshalYAML reads a step written as a single pair, either
// "rotx: 0.5" or "rotx: {var: q0, coeff: 2}".
func (s *stepDoc) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return fmt.Errorf("%w: line %d: a step is a single op: amount pair", ErrSyntax, n.Line)
	}
	s.Op, s.Line = n.Content[0].Value, n.Line
	v := n.Content[1]
	switch v.Kind {
	case yaml.ScalarNode:
		var f float64
		if err := v.Decode(&f); err != nil {
			return fmt.Errorf("%w: line %d: amount %q is not a number", ErrSyntax, v.Line, v.Value)
		}
		s.Amount.Literal = &f
	case yaml.MappingNode:
		for i := 0; i < len(v.Content); i += 2 {
			if k := v.Content[i]; !amountFields[k.Value] {
				return fmt.Errorf("%w: line %d: unknown amount field %q", ErrSyntax, k.Line, k.Value)
			}
		}
		if err := v.Decode(&s.Amount); err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrSyntax, v.Line, err)
		}
	default:
		return fmt.Errorf("%w: line %d: bad amount", ErrSyntax, v.Line)
	}
	return nil
}

// DecodeYAML builds the model described by a YAML document:
//
//	name: arm
//	convention: currentFrame
//	poses:
//	  - from: base
//	    to: shoulder
//	    steps:
//	      - trz: {param: h, default: 0.4}
//	      - rotz: {var: q0}
func DecodeYAML(data []byte, log logrus.FieldLogger) (motions.PosesSpec, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return motions.PosesSpec{}, fmt.Errorf("%w: empty document", ErrSyntax)
		}
		if errors.Is(err, ErrSyntax) {
			return motions.PosesSpec{}, err
		}
		return motions.PosesSpec{}, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	b := newBuilder(log)
	b.log.WithField("poses", len(doc.Poses)).Debug("decoded YAML model")
	return b.build(&doc)
}
