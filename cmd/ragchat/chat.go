package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ferndev/ragchat/internal/auth"
	"github.com/ferndev/ragchat/internal/config"
	"github.com/ferndev/ragchat/internal/providers/backend"
	"github.com/ferndev/ragchat/internal/service/sync"
	"github.com/ferndev/ragchat/internal/service/view"
	"github.com/ferndev/ragchat/internal/session"
	"github.com/ferndev/ragchat/internal/transport/cli"
	"github.com/ferndev/ragchat/pkg/log"
	"github.com/ferndev/ragchat/pkg/srv"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat",
	Long:  `Opens the chat surface. Requires a signed-in user (see 'ragchat login').`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)

		db, kv, appCfg, err := initStorage(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("failed to initialize storage")
			return err
		}
		services := []srv.Service{srv.NewCleanup(db.Close)}

		authSvc := auth.NewService(kv)
		authSvc.Load(ctx)
		user, ok := authSvc.CurrentUser()
		if !ok || !authSvc.IsAuthenticated() {
			fmt.Println("You are not signed in. Run 'ragchat login' first.")
			return nil
		}
		logger.Info().Str("user", user.Name).Msg("signed in")

		backendCfg := config.NewBackendConfig(ctx)
		client := backend.NewClient(backendCfg.BaseURL, backendCfg.Timeout)

		// One-shot probe; a sick backend is logged and ignored.
		if err := client.Health(ctx); err != nil {
			logger.Warn().Err(err).Msg("backend health check failed")
		} else {
			logger.Debug().Msg("backend is healthy")
		}

		store := session.NewStore(kv)
		resolver := session.NewResolver(store)
		engine := sync.NewEngine(client, store)
		coor := view.NewCoordinator(store, resolver, engine)
		coor.Startup(ctx)

		term, err := cli.NewReadLine(coor, appCfg)
		if err != nil {
			logger.Error().Err(err).Msg("failed to open terminal")
			return err
		}
		services = append(services, term)

		// Background services; the terminal runs in the foreground below.
		srv.StartServices(ctx, services[:1])

		if err := term.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("chat loop failed")
		}

		stop()
		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("ragchat has been shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
