// Command assist answers a single support request from the command line.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/spec-kit/support-agent/internal/app"
	"github.com/spec-kit/support-agent/internal/config"
	"github.com/spec-kit/support-agent/internal/observability"
	"github.com/spec-kit/support-agent/internal/service"
)

const separatorWidth = 60

// errRequestFailed marks a run where the agent could not answer.
var errRequestFailed = errors.New("request failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errRequestFailed) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var userFlag, providerFlag, modelFlag string

	flagSet := pflag.NewFlagSet("assist", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVarP(&userFlag, "user", "u", "", "user ID the request is made for (default from AGENT_DEFAULT_USER_ID)")
	flagSet.StringVar(&providerFlag, "provider", "", "LLM provider: openai, anthropic or offline (default from LLM_PROVIDER)")
	flagSet.StringVar(&modelFlag, "model", "", "model name (default depends on provider)")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printUsage(stdout, flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printUsage(stdout, flagSet)
		return nil
	}

	positional := flagSet.Args()
	if len(positional) == 0 {
		printUsage(stdout, flagSet)
		return nil
	}
	if len(positional) > 2 {
		return fmt.Errorf("unexpected argument: %s", positional[2])
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if os.Getenv("LOG_OUTPUT") == "" {
		cfg.Logger.Output = "stderr"
	}
	if providerFlag != "" {
		cfg.LLM.SetProvider(providerFlag)
	}
	if modelFlag != "" {
		cfg.LLM.Model = modelFlag
	}

	userID := cfg.Agent.DefaultUserID
	if len(positional) == 2 {
		userID = positional[1]
	}
	if userFlag != "" {
		userID = userFlag
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	components, err := app.Build(cfg, logger)
	if err != nil {
		return err
	}
	service.NewNotificationService(components.Dispatcher, logger.Named("notify"), cfg.Notification).RegisterHandlers()

	separator := strings.Repeat("=", separatorWidth)
	fmt.Fprintln(stdout, "\nAI Support Agent")
	fmt.Fprintln(stdout, separator)

	result := components.Agent.Execute(ctx, positional[0], userID)
	if result.Success {
		fmt.Fprintf(stdout, "\n%s\n\n", result.Response)
	} else {
		fmt.Fprintf(stderr, "\nError: %s\n\n", result.Error)
		fmt.Fprintf(stdout, "\n%s\n\n", result.Response)
	}
	fmt.Fprintln(stdout, separator)

	if !result.Success {
		logger.Debug("request failed", zap.String("error", result.Error))
		return errRequestFailed
	}
	return nil
}

func printUsage(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `Usage: assist "<your question>" [userId] [flags]

Examples:
  assist "How do I reset my password?" user-pro
  assist "The app is crashing" user-1
  assist --provider offline --user user-free "I cannot access my account"

Flags:
%s`, flagSet.FlagUsages())
}
