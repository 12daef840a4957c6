package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-netcdf/netcdf"
)

// app holds the settings shared by every subcommand.
type app struct {
	configFile string
	verbose    bool

	log  *logrus.Logger
	opts []netcdf.Option // Create options from the config file
}

func newRootCmd() *cobra.Command {
	a := &app{log: logrus.New()}
	root := &cobra.Command{
		Use:          "ncdump",
		Short:        "Inspect and convert typed array files",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.log.SetOutput(cmd.ErrOrStderr())
			return a.startup()
		},
	}
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "TOML configuration file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(newTreeCmd(a), newExportCmd(a), newImportCmd(a))
	return root
}

// startup reads the configuration file, if any, and sets the log level.
func (a *app) startup() error {
	level := logrus.InfoLevel
	if a.configFile != "" {
		cfg, err := netcdf.LoadConfig(a.configFile)
		if err != nil {
			return err
		}
		if level, err = cfg.ParseLogLevel(); err != nil {
			return err
		}
		if a.opts, err = cfg.Options(); err != nil {
			return err
		}
	}
	if a.verbose {
		level = logrus.DebugLevel
	}
	a.log.SetLevel(level)
	a.log.WithField("config", a.configFile).Debug("started")
	return nil
}

// options returns the options for opening files, or for creating them when
// create is set.
func (a *app) options(create bool) []netcdf.Option {
	opts := []netcdf.Option{netcdf.WithLogger(a.log)}
	if create {
		opts = append(opts, a.opts...)
	}
	return opts
}
