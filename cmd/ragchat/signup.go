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
	signupEmail    string
	signupPassword string
	signupName     string
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	Long:  `Registers and signs in. Registration is currently limited to the demo account email.`,
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

		email, password, name := signupEmail, signupPassword, signupName
		if email == "" {
			creds, ok, err := loginui.RunSignup()
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("signup aborted")
				return nil
			}
			email, password, name = creds.Email, creds.Password, creds.Name
		}

		authSvc := auth.NewService(kv)
		authSvc.Load(ctx)
		if err := authSvc.Signup(ctx, email, password, name); err != nil {
			if errors.Is(err, auth.ErrSignupRestricted) {
				fmt.Println("Registration currently limited to demo account")
				return nil
			}
			return err
		}

		user, _ := authSvc.CurrentUser()
		fmt.Printf("Welcome, %s! You are signed in as <%s>\n", user.Name, user.Email)
		return nil
	},
}

func init() {
	signupCmd.Flags().StringVar(&signupEmail, "email", "", "sign up without the interactive form")
	signupCmd.Flags().StringVar(&signupPassword, "password", "", "password for --email")
	signupCmd.Flags().StringVar(&signupName, "name", "", "display name for --email")
	rootCmd.AddCommand(signupCmd)
}
