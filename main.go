package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tomberek/fieldstore/fieldstore"
)

// app carries what every subcommand needs: the store configuration and the
// logger built from the persistent flags.
type app struct {
	cfg      fieldstore.Config
	logLevel string
	logOut   io.Writer
}

func newApp() *app {
	return &app{
		cfg:      fieldstore.ConfigFromEnv(),
		logLevel: fieldstore.GetEnvOrDefault(fieldstore.EnvLogLevel, "info"),
		logOut:   os.Stderr,
	}
}

func (a *app) logger() zerolog.Logger {
	lvl, err := zerolog.ParseLevel(a.logLevel)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: a.logOut, NoColor: true}).
		Level(lvl).With().Timestamp().Logger()
}

func (a *app) open(ctx context.Context) (*fieldstore.Store, error) {
	cfg := a.cfg
	cfg.Logger = a.logger()
	return fieldstore.Open(ctx, cfg)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "fieldstore",
		Short:         "Manage content type fields stored in fixed, numbered columns",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&a.cfg.DSN, "db", a.cfg.DSN, "SQLite database file")
	root.PersistentFlags().IntVar(&a.cfg.ColumnsPerDataType, "columns", a.cfg.ColumnsPerDataType,
		"Numbered columns per data type and content type")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", a.logLevel, "Log level (debug, info, warn, error)")

	root.AddCommand(
		newInitDbCmd(a),
		newRegisterTypeCmd(a),
		newAddFieldCmd(a),
		newFieldsCmd(a),
		newGetFieldCmd(a),
		newDeleteFieldCmd(a),
		newDropTypeCmd(a),
		newSetVarCmd(a),
		newVarsCmd(a),
		newDeleteVarCmd(a),
		newAnalyzeCmd(a),
		newLoadCmd(a),
		newImportCmd(a),
	)
	return root
}

func main() {
	a := newApp()
	if err := newRootCmd(a).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
