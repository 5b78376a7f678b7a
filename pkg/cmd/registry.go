package cmd

import (
	"log/slog"

	"github.com/flowcrm/aisummary/pkg/actions/aisummary"
	"github.com/flowcrm/aisummary/pkg/registry"
)

func NewRegistry(log *slog.Logger, summarizer aisummary.Summarizer) *registry.Registry {
	reg := registry.NewRegistry(log)
	reg.RegisterDefaultActions(summarizer)

	return reg
}
