package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"sapcli/internal/adt"
	"sapcli/internal/config"
	sapclilog "sapcli/internal/log"
)

var (
	cfgFile  string
	profile  string
	logLevel string
	cfg      *config.Config
	logFile  *os.File
)

var rootCmd = &cobra.Command{
	Use:           "sapcli",
	Short:         "SAP ABAP Development Tools CLI",
	Long:          `sapcli creates, edits and activates ABAP programs, classes and packages over ADT.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "setup" {
			return nil
		}

		var err error
		cfg, err = loadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if profile != "" {
			cfg.DefaultProfile = profile
		}
		if logLevel != "" {
			cfg.Log.Level = logLevel
		}

		logger, f, err := sapclilog.NewLogger(cfg.Log)
		if err != nil {
			return err
		}
		log.SetDefault(logger)
		logFile = f

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.sapcliconfig)")
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "profile to use (overrides default)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

// loadConfig falls back to SAP_* environment variables when there is no
// config file.
func loadConfig(path string) (*config.Config, error) {
	c, err := config.Load(path)
	if errors.Is(err, config.ErrNotFound) && os.Getenv(config.EnvPrefix+"ASHOST") != "" {
		return config.FromEnv()
	}
	return c, err
}

func GetConfig() *config.Config {
	return cfg
}

func GetCurrentProfile() (*config.Profile, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config not loaded")
	}
	return cfg.GetProfile(cfg.DefaultProfile)
}

func openConnection() (*adt.Connection, error) {
	p, err := GetCurrentProfile()
	if err != nil {
		return nil, err
	}
	if err := p.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	return adt.NewConnection(p.Host, p.Client, p.User, p.Password, adt.Options{
		Port:       strconv.Itoa(p.Port),
		NoSSL:      !p.UseSSL(),
		SkipVerify: !p.VerifySSL(),
		Logger:     log.Default().WithPrefix("adt"),
	}), nil
}
