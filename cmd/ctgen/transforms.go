package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"zappem.net/pub/math/poses/ct"
	"zappem.net/pub/math/poses/ct/metadata"
)

var transformsLeft bool

var transformsCmd = &cobra.Command{
	Use:   "transforms FILE",
	Short: "List the transforms of a model and their arguments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransforms(cmd.OutOrStdout(), args[0], transformsLeft)
	},
}

func init() {
	transformsCmd.Flags().BoolVar(&transformsLeft, "left", false, "Map reference frame coordinates to target frame coordinates")
	rootCmd.AddCommand(transformsCmd)
}

func runTransforms(w io.Writer, path string, left bool) error {
	ps, err := loadModel(path)
	if err != nil {
		return err
	}
	pol := ct.MovedFrameOnTheRight
	if left {
		pol = ct.MovedFrameOnTheLeft
	}
	m, err := ct.MotionsToCoordinateTransforms(ps, ct.WithPolarity(pol))
	if err != nil {
		return err
	}
	md, err := metadata.NewTransformsModelMetadata(m)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "model %s\n", m.Name)
	for _, tm := range md.Transforms {
		var prims []string
		for _, p := range tm.Transform.Primitives {
			prims = append(prims, p.String())
		}
		fmt.Fprintf(w, "%s = %s\n", tm.Name(), strings.Join(prims, " "))
		printArguments(w, "  ", tm.Variables, tm.Parameters, tm.Constants)
		switch {
		case tm.Constant:
			fmt.Fprintln(w, "  constant")
		case tm.Parametric:
			fmt.Fprintln(w, "  parametric")
		}
	}
	fmt.Fprintln(w, "all transforms:")
	printArguments(w, "  ", md.Variables, md.Parameters, md.Constants)
	return nil
}

func printArguments(w io.Writer, indent string, vars, pars, consts *metadata.ArgumentMap) {
	for _, x := range []struct {
		title string
		m     *metadata.ArgumentMap
	}{{"variables", vars}, {"parameters", pars}, {"constants", consts}} {
		if !x.m.IsEmpty() {
			fmt.Fprintf(w, "%s%s: %s\n", indent, x.title, x.m)
		}
	}
}
