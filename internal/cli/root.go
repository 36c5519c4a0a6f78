// Package cli implements the progressive command line.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/progressive/config"
	"github.com/kbukum/progressive/errors"
	"github.com/kbukum/progressive/logger"
	"github.com/kbukum/progressive/version"
)

// ServiceName locates config files and tags log lines.
const ServiceName = "progressive"

// app is shared state between the root command and its subcommands.
type app struct {
	configPath string
	cfg        config.ServiceConfig
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   ServiceName,
		Short: "Run long jobs in bounded time slices",
		Long: `progressive drives element-by-element work in time slices, the way an
event loop or UI frame handler would, and reports progress between slices.`,
		Version:           version.Get().Short(),
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return a.load() },
	}
	root.SetVersionTemplate(ServiceName + " version {{.Version}}\n")
	root.PersistentFlags().StringVar(&a.configPath, "config", "",
		"config file (default: search ./cmd/progressive, ../cmd/progressive and the working directory)")

	root.AddCommand(newWordcountCmd(a))
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the root command. Every returned error is an
// *errors.AppError; panics escaping a command surface as INTERNAL.
func Execute() error {
	return executeRoot(NewRootCmd())
}

func executeRoot(root *cobra.Command) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.FromPanic(r)
		}
	}()
	if err := root.Execute(); err != nil {
		return errors.Wrap(err)
	}
	return nil
}

// load reads the config file and environment, then sets up logging.
func (a *app) load() error {
	cfg := config.ServiceConfig{Name: ServiceName}

	var opts []config.LoaderOption
	if a.configPath != "" {
		opts = append(opts, config.WithConfigFile(a.configPath))
	}
	if err := config.LoadConfig(ServiceName, &cfg, opts...); err != nil {
		return err
	}
	if cfg.Name == "" {
		cfg.Name = ServiceName
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Init(cfg.Logging)
	logger.Get(componentCLI).Debug("config loaded", logger.Fields(
		"environment", cfg.Environment,
		logger.FieldBudget, cfg.Slicing.Budget.Milliseconds(),
		"frame_ms", cfg.Slicing.Frame.Milliseconds(),
	))

	a.cfg = cfg
	return nil
}

// Component logger names.
const (
	componentCLI    = "cli"
	componentWaiter = "waiter"
)
