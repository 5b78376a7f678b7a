package editor

import "github.com/flowcrm/aisummary/pkg/models"

// ActionOptions is the capability handed to a Panel. Only ReadOnly and
// Editable satisfy it.
type ActionOptions interface {
	actionOptions()
}

// ReadOnly disables every edit.
type ReadOnly struct{}

// Editable carries the callback that receives updated actions.
type Editable struct {
	OnActionUpdate func(models.AiSummaryAction)
}

func (ReadOnly) actionOptions() {}
func (Editable) actionOptions() {}
