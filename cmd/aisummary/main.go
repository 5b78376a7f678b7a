// Command aisummary serves the AI summary step API and runs one-off summaries.
package main

import (
	"context"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:                  "aisummary",
		Usage:                 "Execute AI summary workflow steps",
		EnableShellCompletion: true,
		Commands: []*cli.Command{
			ServeCommand(),
			RunCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openAIFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "openai-api-key",
			Usage:   "API key for the completion endpoint",
			Sources: cli.EnvVars("OPENAI_API_KEY"),
		},
		&cli.StringFlag{
			Name:    "openai-base-url",
			Usage:   "Base URL of an OpenAI compatible endpoint",
			Sources: cli.EnvVars("OPENAI_BASE_URL"),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "Log level (debug, info, warn, error)",
			Value:   "info",
			Sources: cli.EnvVars("LOG_LEVEL"),
		},
	}
}
