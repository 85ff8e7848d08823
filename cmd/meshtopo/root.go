package main

import (
	"log/slog"

	"github.com/gogpu/meshtopo"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// app carries the state shared by the subcommands of one invocation.
type app struct {
	cfg  Config
	opts []meshtopo.Option
	p    *message.Printer
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: defaultConfig(), p: message.NewPrinter(language.English)}

	var (
		configPath string
		verbose    bool
	)
	root := &cobra.Command{
		Use:           "meshtopo",
		Short:         "Rebuild, weld and cut polygon meshes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			meshtopo.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(),
				&slog.HandlerOptions{Level: level})))

			if configPath != "" {
				if err := loadConfig(configPath, &a.cfg); err != nil {
					return err
				}
			}
			if err := applyFlags(cmd, &a.cfg); err != nil {
				return err
			}
			opts, err := a.cfg.options()
			if err != nil {
				return err
			}
			a.opts = opts
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML file with default settings")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log debug details to stderr")
	pf.Int("precision", meshtopo.DefaultPrecision, "decimal digits used to weld coordinates")
	pf.String("policy", "", "face policy: TriQuad, PositiveArea or All")
	pf.Int("workers", 0, "parallel jobs (0 = GOMAXPROCS)")
	pf.Bool("preview", false, "also write a PNG preview of every mesh")

	root.AddCommand(
		a.newTraceCmd(),
		a.newWeldCmd(),
		a.newJoinCmd(),
		a.newCutCmd(),
		a.newCurveCmd(),
	)
	return root
}
