package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ferndev/ragchat/internal/auth"
	"github.com/ferndev/ragchat/internal/service/loginui"
	"github.com/ferndev/ragchat/pkg/log"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to ragchat",
	Long:  `Signs in against the demo credential set and stores the auth state locally.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()
		logger := log.FromCtx(ctx)

		db, kv, _, err := initStorage(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("failed to initialize storage")
			return err
		}
		defer db.Close()

		email, password := loginEmail, loginPassword
		if email == "" {
			creds, ok, err := loginui.Run()
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("login aborted")
				return nil
			}
			email, password = creds.Email, creds.Password
		}

		authSvc := auth.NewService(kv)
		authSvc.Load(ctx)
		if err := authSvc.Login(ctx, email, password); err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				fmt.Println("Invalid email or password")
				return nil
			}
			return err
		}

		user, _ := authSvc.CurrentUser()
		fmt.Printf("Signed in as %s <%s>\n", user.Name, user.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()
		logger := log.FromCtx(ctx)

		db, kv, _, err := initStorage(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("failed to initialize storage")
			return err
		}
		defer db.Close()

		authSvc := auth.NewService(kv)
		authSvc.Load(ctx)
		authSvc.Logout(ctx)
		fmt.Println("Signed out")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "sign in without the interactive form")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "password for --email")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
