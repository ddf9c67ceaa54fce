package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vik-ma/local-lift-log-sub002/internal/logging"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultDBPath = "$HOME/.local/share/sumcalc/presets.db"

type app struct {
	v       *viper.Viper
	cfgFile string
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "sumcalc",
		Short: "Sum calculator for weights, distances and measurements",
		Long: `sumcalc evaluates calculations, restores and encodes calculation strings
and manages the equipment weight and distance presets they refer to.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.initConfig,
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.config/sumcalc/config.yaml)")
	rootCmd.PersistentFlags().String("db", defaultDBPath, "path of the sqlite preset database")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (trace, debug, info, warn, error)")
	_ = a.v.BindPFlag("database.path", rootCmd.PersistentFlags().Lookup("db"))
	_ = a.v.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(a.evalCmd())
	rootCmd.AddCommand(a.decodeCmd())
	rootCmd.AddCommand(a.presetsCmd())
	rootCmd.AddCommand(a.keypadCmd())

	return rootCmd
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Debug("interrupt received, shutting down ...")
		cancel()
	}()

	err := newRootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) initConfig(_ *cobra.Command, _ []string) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			a.v.AddConfigPath(home + "/.config/sumcalc")
		}
		a.v.AddConfigPath(".")
		a.v.SetConfigName("sumcalc")
		a.v.SetConfigType("yaml")
	}

	a.v.SetEnvPrefix("SUMCALC")
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	logging.Setup(logging.LoggerSetupParams{
		LogToStdout: true,
		LogLevel:    a.v.GetString("logging.level"),
	})
	// stdout carries the command output
	log.SetOutput(os.Stderr)

	return nil
}
