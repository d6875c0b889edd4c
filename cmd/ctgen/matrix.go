package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"zappem.net/pub/math/poses/ct"
	"zappem.net/pub/math/poses/motions"
	"zappem.net/pub/math/poses/repr"
	"zappem.net/pub/math/poses/rotation"
)

type matrixOptions struct {
	from, to      string
	shape, domain string
	left          bool
	set           map[string]string
	strict        bool
	constants     bool
	normalize     bool
}

var matrixOpts matrixOptions

var matrixCmd = &cobra.Command{
	Use:   "matrix FILE",
	Short: "Print the matrix of the transform between two frames",
	Long: `Print the matrix of the transform mapping coordinates of the --to frame
into coordinates of the --from frame, or the reverse with --left. The
frames need not be linked by a single pose: poses are chained along a
path between them.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMatrix(cmd.OutOrStdout(), args[0], matrixOpts)
	},
}

func init() {
	f := matrixCmd.Flags()
	f.StringVar(&matrixOpts.from, "from", "", "Reference frame")
	f.StringVar(&matrixOpts.to, "to", "", "Target frame")
	f.StringVar(&matrixOpts.shape, "shape", repr.Homogeneous.Name(), "Matrix shape: homogeneous, rotation, motion or force")
	f.StringVar(&matrixOpts.domain, "domain", "symbolic", "Value domain: numeric or symbolic")
	f.BoolVar(&matrixOpts.left, "left", false, "Map reference frame coordinates to target frame coordinates")
	f.StringToStringVar(&matrixOpts.set, "set", nil, "Numeric values of variables and parameters, name=value")
	f.BoolVar(&matrixOpts.strict, "strict", false, "Ignore parameter defaults in the numeric domain")
	f.BoolVar(&matrixOpts.constants, "constants", false, "Substitute constant values in the symbolic domain")
	f.BoolVar(&matrixOpts.normalize, "normalize", false, "Rewrite cos(a)^2 as 1-sin(a)^2 in symbolic output")
	matrixCmd.MarkFlagRequired("from")
	matrixCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(matrixCmd)
}

// transformBetween derives the transform between two frames of ps.
func transformBetween(ps motions.PosesSpec, from, to string, left bool) (ct.CoordinateTransform, error) {
	in := motions.NewConnectedFramesInspector(ps)
	spec, err := in.PoseSpec(motions.Frame{Name: to}, motions.Frame{Name: from})
	if err != nil {
		return ct.CoordinateTransform{}, err
	}
	log.WithField("pose", spec.Pose.String()).Debug(motions.Snippet(spec))
	pol := ct.MovedFrameOnTheRight
	if left {
		pol = ct.MovedFrameOnTheLeft
	}
	return ct.ToCoordinateTransform(spec, ct.WithPolarity(pol))
}

func bindings(set map[string]string) (map[string]float64, error) {
	b := make(map[string]float64, len(set))
	for name, v := range set {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("--set %s: %w", name, err)
		}
		b[name] = f
	}
	return b, nil
}

func runMatrix(w io.Writer, path string, opts matrixOptions) error {
	shape, err := repr.ParseShape(opts.shape)
	if err != nil {
		return err
	}
	ps, err := loadModel(path)
	if err != nil {
		return err
	}
	t, err := transformBetween(ps, opts.from, opts.to, opts.left)
	if err != nil {
		return err
	}

	switch opts.domain {
	case "numeric":
		b, err := bindings(opts.set)
		if err != nil {
			return err
		}
		m, err := repr.NewNumeric(shape, repr.Numeric{Bindings: b, StrictParameters: opts.strict}).Matrix(t)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s =\n  %v\n", t, mat.Formatted(m, mat.Prefix("  "), mat.Squeeze()))
	case "symbolic":
		m, err := repr.NewSymbolic(shape, repr.Symbolic{SubstituteConstants: opts.constants}).Matrix(t)
		if err != nil {
			return err
		}
		if opts.normalize {
			m = rotation.Normalize(m)
		}
		fmt.Fprintf(w, "%s =\n%s", t, m.Format("  "))
	default:
		return fmt.Errorf("unknown value domain %q", opts.domain)
	}
	return nil
}
