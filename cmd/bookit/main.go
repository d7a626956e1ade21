package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"bookit/internal/gateway"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "dev"

var (
	apiURL  string
	verbose bool
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, RenderError(err.Error()))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bookit",
	Short: "BookIt CLI - browse and book travel experiences",
	Long: `BookIt CLI talks to a BookIt API server.

  bookit experiences            List the catalog
  bookit show <id>              Show an experience and its slots
  bookit book <id>              Book an experience interactively
  bookit booking <id>           Show a confirmed booking

The server defaults to $BOOKIT_API_URL, or http://localhost:8080/api.
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	defaultURL := os.Getenv("BOOKIT_API_URL")
	if defaultURL == "" {
		defaultURL = gateway.DefaultBaseURL
	}

	rootCmd.PersistentFlags().StringVar(&apiURL, "api", defaultURL, "Base URL of the BookIt API")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log requests and state changes")

	rootCmd.AddCommand(experiencesCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(bookCmd)
	rootCmd.AddCommand(bookingCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "bookit %s\n", version)
	},
}

func newGateway() gateway.Gateway {
	return gateway.NewClient(apiURL)
}

// newLogger writes to stderr so it never interleaves with command output.
func newLogger() *zap.SugaredLogger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.Lock(os.Stderr), level)

	return zap.New(core).Sugar()
}
