package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/wuzfei/cfgstruct/cfgstruct"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"taskhub/app/api"
	"taskhub/app/global"
	"taskhub/app/migration"
	"taskhub/app/pkg/jwt"
	"taskhub/app/workflow"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "taskhub",
		Short: "workspace and project task management service",
	}
	rootCmd.AddCommand(
		serverCmd(),
		migrateCmd(),
		tokenCmd(),
	)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func bindConfig(cmd *cobra.Command) *global.Config {
	cfg := &global.Config{}
	cfgstruct.Bind(cmd.Flags(), cfg)
	return cfg
}

func serverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "run the http api and the background workflow engine",
	}
	cfg := bindConfig(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg.Init()
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		engine := workflow.NewEngine(global.Log, global.DB, cfg.Workflow)
		workflow.RegisterAll(engine, global.Log, global.DB, global.Mailer)
		server := api.NewServer(cfg, engine)

		global.Log.Info("starting", zap.String("address", cfg.Api.Address))
		group, ctx := errgroup.WithContext(ctx)
		group.Go(func() error {
			return engine.Run(ctx)
		})
		group.Go(func() error {
			return server.Run(ctx)
		})
		return group.Wait()
	}
	return cmd
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "create or upgrade the database schema",
	}
	cfg := bindConfig(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg.Init()
		return migration.NewMigration(global.Log, global.DB).Setup()
	}
	return cmd
}

// tokenCmd issues a signed token for a known user id, for local testing
// against the authenticated routes.
func tokenCmd() *cobra.Command {
	var userId, email string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "issue an access token for a user",
	}
	cfg := bindConfig(cmd)
	cmd.Flags().StringVar(&userId, "user", "", "user id to issue the token for")
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg.Init()
		token, expireAt, err := global.Jwt.CreateToken(jwt.TokenPayload{UserID: userId, Email: email})
		if err != nil {
			return err
		}
		fmt.Printf("token: %s\nexpires: %s\n", token, expireAt)
		return nil
	}
	return cmd
}
