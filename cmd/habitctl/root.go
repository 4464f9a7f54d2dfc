package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/habitflow/backend/internal/config"
	"github.com/habitflow/backend/internal/datekey"
	"github.com/habitflow/backend/internal/db"
	"github.com/habitflow/backend/internal/habits"
	"github.com/habitflow/backend/internal/logging"
	"github.com/habitflow/backend/internal/telemetry/metrics"
	"github.com/habitflow/backend/pkg"
)

const cmdTimeout = 5 * time.Minute

type rootFlags struct {
	env        string
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "habitctl",
		Short:         "HabitFlow admin tasks",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(logging.LoggerSetupParams{
				LogLevel: flags.logLevel,
			})
		},
	}

	cmd.PersistentFlags().StringVar(&flags.env, "env", "development", "config environment [development | production]")
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "./config.toml", "path for the TOML config file")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "log level")

	cmd.AddCommand(newHashPasswordCmd())
	cmd.AddCommand(newMigrateCmd(flags))
	cmd.AddCommand(newRecomputeStreaksCmd(flags))

	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print the bcrypt hash of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password := strings.TrimSpace(args[0])
			if password == "" {
				return errors.New("empty password")
			}
			hash, err := pkg.HashPassword(password)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}
}

func newMigrateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), cmdTimeout)
			defer cancel()

			_, pool, err := openDB(ctx, flags)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := db.Migrate(ctx, pool); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "schema applied")
			return err
		},
	}
}

func newRecomputeStreaksCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "recompute-streaks",
		Short: "Rewrite stored streaks that drifted from the completion history",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), cmdTimeout)
			defer cancel()

			cfg, pool, err := openDB(ctx, flags)
			if err != nil {
				return err
			}
			defer pool.Close()

			loc, err := time.LoadLocation(cfg.Timezone)
			if err != nil {
				return fmt.Errorf("load timezone: %w", err)
			}

			service := habits.NewService(
				habits.NewRepo(pool),
				habits.NewOwnerCache(cfg.HabitsCacheSizeMB<<20, cfg.HabitsCacheTTL),
				datekey.NewSystemClock(loc),
				metrics.NewManager("habitflow", "habitctl", prometheus.NewRegistry()),
			)

			changed, err := service.RecomputeStreaks(ctx)
			if err != nil {
				return fmt.Errorf("recompute streaks (changed %d before failing): %w", changed, err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "streaks updated: %d\n", changed)
			return err
		},
	}
}

func openDB(ctx context.Context, flags *rootFlags) (*config.Config, *pgxpool.Pool, error) {
	cfg, err := config.Load(flags.env, flags.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	pool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: os.Getenv("HABITFLOW_DB_PASS"),
		MaxConns:   cfg.PostgresMaxConns,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping db: %w", err)
	}
	log.Debugf("connected to db [%s] at %s", cfg.PostgresDBName, cfg.PostgresHost)

	return cfg, pool, nil
}
