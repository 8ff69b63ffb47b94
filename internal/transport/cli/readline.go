package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/ferndev/ragchat/internal/config"
	"github.com/ferndev/ragchat/internal/service/ui"
	"github.com/ferndev/ragchat/internal/service/view"
	"github.com/ferndev/ragchat/pkg/conv"
	"github.com/ferndev/ragchat/pkg/log"
)

// ReadLine is the interactive chat surface. It is also the concurrency
// guard the engine relies on: the loop blocks on each send, so a
// second message cannot go out while one is pending.
type ReadLine struct {
	cfg  *config.AppConfig
	coor *view.Coordinator
	rl   *readline.Instance
}

func NewReadLine(coor *view.Coordinator, cfg *config.AppConfig) (*ReadLine, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     cfg.GetInputHistoryPath(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		cfg:  cfg,
		coor: coor,
		rl:   rl,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("chat started; type /help for commands, 'exit' to quit")

	r.printCurrent()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if len(line) == 0 {
					return nil
				}
				continue
			} else if err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if quit := r.handleCommand(ctx, line); quit {
				return nil
			}
			continue
		}

		result, err := r.coor.Send(ctx, line)
		if err != nil {
			logger.Error().Err(err).Msg("send failed")
			fmt.Fprintf(r.rl.Stdout(), "%s\n", ui.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
			fmt.Fprintf(r.rl.Stdout(), "Your message was not delivered; press up-arrow to recall it.\n")
			continue
		}

		fmt.Fprintf(r.rl.Stdout(), "%s\n", ui.BotStyle.Render(conv.MarkdownToTerminal([]byte(result.BotMessage.Content))))
		if result.BotMessage.Context != "" {
			fmt.Fprintf(r.rl.Stdout(), "%s\n", ui.ContextStyle.Render("context: "+result.BotMessage.Context))
		}
	}
}

func (r *ReadLine) handleCommand(ctx context.Context, line string) bool {
	out := r.rl.Stdout()
	fields := strings.Fields(line)

	switch fields[0] {
	case "/help":
		fmt.Fprint(out, "/sessions      list stored sessions\n")
		fmt.Fprint(out, "/select <n>    display session n from the list\n")
		fmt.Fprint(out, "/new           start over (discards ALL history)\n")
		fmt.Fprint(out, "exit           quit\n")
	case "/sessions":
		sessions := r.coor.Sessions()
		if len(sessions) == 0 {
			fmt.Fprint(out, "no sessions yet\n")
			return false
		}
		for i, sess := range sessions {
			marker := " "
			if sess.ID == r.coor.CurrentID() {
				marker = "*"
			}
			fmt.Fprintf(out, "%s %d. %s (%d messages)\n", marker, i+1, sess.Title, len(sess.Messages))
		}
	case "/select":
		if len(fields) < 2 {
			fmt.Fprint(out, "usage: /select <n>\n")
			return false
		}
		n, err := strconv.Atoi(fields[1])
		sessions := r.coor.Sessions()
		if err != nil || n < 1 || n > len(sessions) {
			fmt.Fprintf(out, "no such session: %s\n", fields[1])
			return false
		}
		r.coor.Select(sessions[n-1].ID)
		r.printCurrent()
	case "/new", "/clear":
		// Destructive: wipes every session, not just the current one.
		fmt.Fprint(out, "This discards ALL chat history. Type 'yes' to confirm: ")
		answer, err := r.rl.Readline()
		if err != nil {
			return err == io.EOF
		}
		if strings.TrimSpace(answer) != "yes" {
			fmt.Fprint(out, "aborted\n")
			return false
		}
		r.coor.NewChat(ctx)
		fmt.Fprint(out, "history cleared; starting fresh\n")
	default:
		fmt.Fprintf(out, "unknown command %s (try /help)\n", fields[0])
	}
	return false
}

func (r *ReadLine) printCurrent() {
	out := r.rl.Stdout()
	sess, ok := r.coor.Current()
	if !ok {
		fmt.Fprint(out, "No conversation yet. Say something to start one.\n")
		return
	}

	fmt.Fprintf(out, "%s\n", ui.TitleStyle.Render(sess.Title))
	for _, msg := range sess.Messages {
		if msg.IsUser {
			fmt.Fprintf(out, ">>> %s\n", msg.Content)
			continue
		}
		fmt.Fprintf(out, "%s\n", ui.BotStyle.Render(conv.MarkdownToTerminal([]byte(msg.Content))))
	}
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}
