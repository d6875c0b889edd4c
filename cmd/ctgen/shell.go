package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"zappem.net/pub/io/lined"

	"zappem.net/pub/math/poses/ct"
	"zappem.net/pub/math/poses/matrix"
	"zappem.net/pub/math/poses/motions"
	"zappem.net/pub/math/poses/repr"
	"zappem.net/pub/math/poses/rotation"
)

var shellCmd = &cobra.Command{
	Use:   "shell FILE",
	Short: "Explore the transforms of a model interactively",
	Long: `Read lines naming two frames, "A B", and print the symbolic homogeneous
transform A_X_B. The command "frames" lists the frames of the model,
"left" and "right" switch the polarity and "exit" quits.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ps, err := loadModel(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("ctgen shell: model %s\n\n", ps.Name)
		sh := newShell(ps)
		t := lined.NewReader()
		for {
			fmt.Print("> ")
			line, err := t.ReadString()
			if errors.Is(err, io.EOF) {
				fmt.Println()
				return nil
			}
			if err != nil {
				return err
			}
			if sh.do(os.Stdout, line) {
				return nil
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

type shell struct {
	in     *motions.ConnectedFramesInspector
	pol    ct.Polarity
	render repr.Representation[*matrix.Matrix]
}

func newShell(ps motions.PosesSpec) *shell {
	return &shell{
		in:     motions.NewConnectedFramesInspector(ps),
		render: repr.NewSymbolic(repr.Homogeneous, repr.Symbolic{}),
	}
}

// do executes one line and reports whether the shell should exit.
func (s *shell) do(w io.Writer, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return false
	}
	switch {
	case len(fields) == 1 && fields[0] == "exit":
		fmt.Fprintln(w, "exiting")
		return true
	case len(fields) == 1 && fields[0] == "frames":
		var names []string
		for _, f := range s.in.Frames() {
			names = append(names, f.Name)
		}
		fmt.Fprintf(w, " %s\n", strings.Join(names, " "))
	case len(fields) == 1 && fields[0] == "left":
		s.pol = ct.MovedFrameOnTheLeft
	case len(fields) == 1 && fields[0] == "right":
		s.pol = ct.MovedFrameOnTheRight
	case len(fields) == 2:
		ref, target := motions.Frame{Name: fields[0]}, motions.Frame{Name: fields[1]}
		spec, err := s.in.PoseSpec(target, ref)
		if err != nil {
			fmt.Fprintf(w, " %v\n", err)
			return false
		}
		t, err := ct.ToCoordinateTransform(spec, ct.WithPolarity(s.pol))
		if err != nil {
			fmt.Fprintf(w, " %v\n", err)
			return false
		}
		m, err := s.render.Matrix(t)
		if err != nil {
			fmt.Fprintf(w, " %v\n", err)
			return false
		}
		fmt.Fprintf(w, " %s\n %s =\n%s", motions.Snippet(spec), t, rotation.Normalize(m).Format("  "))
	default:
		fmt.Fprintf(w, " usage: FROM TO | frames | left | right | exit\n")
	}
	return false
}
