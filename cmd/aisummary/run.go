package main

import (
	"context"
	"encoding/json"
	"fmt"

	cli "github.com/urfave/cli/v3"

	"github.com/flowcrm/aisummary/pkg/actions/aisummary"
	"github.com/flowcrm/aisummary/pkg/log"
	"github.com/flowcrm/aisummary/pkg/models"
)

func RunCommand() *cli.Command {
	flags := append(openAIFlags(),
		&cli.StringFlag{
			Name:     "prompt",
			Usage:    "Prompt sent to the model",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "model",
			Usage: "Model identifier (default " + models.DefaultAiSummaryModel + ")",
		},
		&cli.IntFlag{
			Name:  "max-tokens",
			Usage: "Maximum number of tokens to generate",
		},
		&cli.FloatFlag{
			Name:  "temperature",
			Usage: "Sampling temperature between 0 and 2",
		},
	)

	return &cli.Command{
		Name:    "run",
		Aliases: []string{"r"},
		Usage:   "Summarize one prompt and print the result as JSON",
		Flags:   flags,
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			summary := aisummary.NewService(log.WithModule("run"),
				aisummary.WithAPIKey(command.String("openai-api-key")),
				aisummary.WithBaseURL(command.String("openai-base-url")),
			)

			result, err := summary.Execute(ctx, runInput(command))
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(command.Root().Writer)
			encoder.SetIndent("", "  ")

			if err := encoder.Encode(result); err != nil {
				return fmt.Errorf("writing result: %w", err)
			}

			return nil
		},
	}
}

func runInput(command *cli.Command) models.AiSummaryInput {
	input := models.AiSummaryInput{Prompt: command.String("prompt")}

	if command.IsSet("model") {
		input.Model = models.Ptr(command.String("model"))
	}

	if command.IsSet("max-tokens") {
		input.MaxTokens = models.Ptr(command.Int("max-tokens"))
	}

	if command.IsSet("temperature") {
		input.Temperature = models.Ptr(command.Float("temperature"))
	}

	return input
}
