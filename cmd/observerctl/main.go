package main

import (
	"context"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/comalice/observerx"
	"github.com/comalice/observerx/internal/production"
	"github.com/comalice/observerx/internal/scenario"
)

// NewRootCommand builds the observerctl command tree writing to out.
func NewRootCommand(out io.Writer) *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "observerctl",
		Short:         "Run scripted subject/observer scenarios",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(level)
			log.SetOutput(c.ErrOrStderr())
			return nil
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level")

	root.AddCommand(newRunCommand(), newDotCommand())
	return root
}

func newRunCommand() *cobra.Command {
	var saveDir string

	cmd := &cobra.Command{
		Use:   "run [script.yaml]",
		Short: "Run a scenario script, or the built-in turbulent script",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			res, err := runScript(c.OutOrStdout(), args)
			if err != nil {
				return err
			}
			if saveDir == "" {
				return nil
			}
			store, err := production.NewYAMLStore(saveDir)
			if err != nil {
				return err
			}
			snap := res.Subject.Snapshot()
			if err := store.Save(c.Context(), snap); err != nil {
				return err
			}
			log.WithFields(log.Fields{"dir": saveDir, "subject": snap.Name}).Info("snapshot saved")
			return nil
		},
	}
	cmd.Flags().StringVar(&saveDir, "save", "", "directory to store the final snapshot in")
	return cmd
}

func newDotCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dot [script.yaml]",
		Short: "Print the Graphviz graph of a scenario's final state",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			res, err := runScript(io.Discard, args)
			if err != nil {
				return err
			}
			v := &production.DefaultVisualizer{}
			fmt.Fprint(c.OutOrStdout(), v.ExportDOT(res.Subject.Snapshot()))
			return nil
		},
	}
}

func runScript(w io.Writer, args []string) (*scenario.Result, error) {
	var (
		s   *scenario.Script
		err error
	)
	if len(args) == 0 {
		s, err = scenario.Parse(scenario.Turbulent)
	} else {
		s, err = scenario.Load(args[0])
	}
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"script": s.Name, "steps": len(s.Steps)}).Debug("running scenario")
	return s.Run(w, observerx.WithLogger(log.StandardLogger()))
}

func main() {
	if err := NewRootCommand(os.Stdout).ExecuteContext(context.Background()); err != nil {
		log.Fatalf("%+v", err)
	}
}
