package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"zappem.net/pub/math/poses/model"
	"zappem.net/pub/math/poses/motions"
)

var log = &logrus.Logger{
	Out:       os.Stderr,
	Formatter: &logrus.TextFormatter{FullTimestamp: true},
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.WarnLevel,
	ExitFunc:  os.Exit,
}

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "ctgen",
	Short: "ctgen derives coordinate transforms from relative poses",
	Long: `ctgen reads a model of relative poses between reference frames, written
in YAML or HCL, and computes the coordinate transforms between frames as
numeric or symbolic matrices.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		lvl, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		log.SetLevel(lvl)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warning", "Logging level (debug, info, warning, error)")
}

func loadModel(path string) (motions.PosesSpec, error) {
	ps, err := model.Load(path, log)
	if err != nil {
		return ps, err
	}
	log.WithFields(logrus.Fields{"model": ps.Name, "poses": len(ps.Poses)}).Info("loaded model")
	return ps, nil
}
