package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iudanet/edukeeper/internal/config"
	"github.com/iudanet/edukeeper/internal/server"
	"github.com/iudanet/edukeeper/internal/server/handlers"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configFile, envFile string

	root := &cobra.Command{
		Use:           "edukeeper-server",
		Short:         "Edukeeper document server",
		Version:       fmt.Sprintf("%s (built %s, commit %s)", Version, BuildDate, GitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env необязателен
			if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("failed to load %s: %w", envFile, err)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "Config file path")
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Dotenv file with EDUKEEPER_* variables")

	load := func(cmd *cobra.Command, bind map[string]string) (*config.ServerConfig, error) {
		v := config.NewViper("edukeeper-server", configFile)
		if err := bindFlags(v, cmd, bind); err != nil {
			return nil, err
		}
		return config.LoadServer(v)
	}

	root.AddCommand(serveCommand(load), tokenCommand(load))
	return root
}

type loader func(cmd *cobra.Command, bind map[string]string) (*config.ServerConfig, error)

func bindFlags(v *viper.Viper, cmd *cobra.Command, bind map[string]string) error {
	for key, flag := range bind {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return err
		}
	}
	return nil
}

func serveCommand(load loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP document server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(cmd, map[string]string{
				"addr":           "addr",
				"storage.driver": "storage-driver",
				"storage.dsn":    "storage-dsn",
				"log.level":      "log-level",
				"log.format":     "log-format",
			})
			if err != nil {
				return err
			}

			logger, err := cfg.Log.NewLogger(os.Stderr)
			if err != nil {
				return err
			}
			logger.Info("Edukeeper server starting",
				"version", Version,
				"storage", cfg.Storage.Driver,
				"addr", cfg.Addr)

			srv, err := server.New(cmd.Context(), cfg, logger, Version)
			if err != nil {
				return err
			}
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().String("addr", "", "Listen address")
	cmd.Flags().String("storage-driver", "", "Storage driver (sqlite|postgres)")
	cmd.Flags().String("storage-dsn", "", "SQLite file path or PostgreSQL URL")
	cmd.Flags().String("log-level", "", "Log level (debug|info|warn|error)")
	cmd.Flags().String("log-format", "", "Log format (text|json)")
	return cmd
}

func tokenCommand(load loader) *cobra.Command {
	var userID, username string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for a content author",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(cmd, nil)
			if err != nil {
				return err
			}

			if userID == "" {
				userID = uuid.NewString()
			}
			tokenTTL := cfg.JWT.TokenTTL
			if ttl > 0 {
				tokenTTL = ttl
			}

			token, expiresIn, err := handlers.GenerateAccessToken(handlers.JWTConfig{
				Issuer:         cfg.JWT.Issuer,
				Secret:         []byte(cfg.JWT.Secret),
				AccessTokenTTL: tokenTTL,
			}, userID, username)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, token)
			fmt.Fprintf(cmd.ErrOrStderr(), "user %s, expires in %ds\n", userID, expiresIn)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User id (generated when empty)")
	cmd.Flags().StringVar(&username, "username", "", "Username")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime, config jwt.token_ttl when zero")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}
