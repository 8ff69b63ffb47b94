package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ferndev/ragchat/internal/session"
	"github.com/ferndev/ragchat/pkg/log"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Discard ALL chat history",
	Long:  `Empties the whole session collection. There is no per-session deletion; this cannot be undone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()
		logger := log.FromCtx(ctx)

		if !clearYes {
			fmt.Print("This discards ALL chat history. Type 'yes' to confirm: ")
			answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if strings.TrimSpace(answer) != "yes" {
				fmt.Println("aborted")
				return nil
			}
		}

		db, kv, _, err := initStorage(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("failed to initialize storage")
			return err
		}
		defer db.Close()

		store := session.NewStore(kv)
		store.Load(ctx)
		store.Clear(ctx)
		fmt.Println("history cleared")
		return nil
	},
}

func init() {
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(clearCmd)
}
