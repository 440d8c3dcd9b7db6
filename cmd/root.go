package cmd

import (
	"errors"
	"io"
	"os"

	"github.com/alexei38/disk-cpu-load/internal/config"
	"github.com/alexei38/disk-cpu-load/pkg/cli/diskload"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var newTester = diskload.NewTester

func newRootCmd(v *viper.Viper, out io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "disk-cpu-load [flags] [device]",
		Short:         "Test CPU load imposed by a raw sequential disk read",
		Version:       GetVersion(),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				v.Set("device", args[0])
			}
			cfg, err := config.NewConfig(v)
			if err != nil {
				return err
			}
			logger := newLogger(cfg)
			_, err = newTester(*cfg, out, logger).Run()
			return err
		},
	}
	rootCmd.SetOut(out)

	rootCmd.Flags().Int(
		"max-load",
		30,
		"max CPU load percentage",
	)
	v.BindPFlag("maxLoad", rootCmd.Flags().Lookup("max-load"))
	rootCmd.Flags().Int(
		"xfer",
		4096,
		"amount of data to read from disk, in MiB",
	)
	v.BindPFlag("xfer", rootCmd.Flags().Lookup("xfer"))
	rootCmd.Flags().Bool(
		"verbose",
		false,
		"verbose output",
	)
	v.BindPFlag("verbose", rootCmd.Flags().Lookup("verbose"))
	rootCmd.Flags().String(
		"config",
		"",
		"config file (default is $HOME/.disk-cpu-load/config.yaml, /etc/disk-cpu-load/config.yaml)",
	)
	v.BindPFlag("config", rootCmd.Flags().Lookup("config"))
	return rootCmd
}

func newLogger(cfg *config.Config) *log.Entry {
	logger := log.New()
	logger.SetOutput(os.Stderr)
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		logger.Warnf("unknown log level %q, using info", cfg.Logger.Level)
		level = log.InfoLevel
	}
	if cfg.Verbose {
		level = log.DebugLevel
	}
	logger.SetLevel(level)
	return log.NewEntry(logger).WithField("device", cfg.Device)
}

// run выполняет команду и возвращает код выхода процесса:
// 0 загрузка в пределах порога, 1 порог превышен или любая ошибка.
func run(args []string, out io.Writer) int {
	rootCmd := newRootCmd(viper.New(), out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, diskload.ErrThresholdExceeded):
		// результат уже выведен
		return 1
	default:
		log.Error(err)
		return 1
	}
}

func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout))
}
