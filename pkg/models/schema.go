package models

// OutputField describes one field a step exposes to later steps.
type OutputField struct {
	IsLeaf bool   `json:"isLeaf"`
	Type   string `json:"type"`
	Label  string `json:"label"`
	Value  any    `json:"value,omitempty"`
	Icon   string `json:"icon,omitempty"`
}

// OutputSchema maps output keys to their description.
type OutputSchema map[string]OutputField

// DefaultAiSummaryOutputSchema describes the fields of an AiSummaryResult.
func DefaultAiSummaryOutputSchema() OutputSchema {
	return OutputSchema{
		"summary":    {IsLeaf: true, Type: "TEXT", Label: "Summary", Icon: "IconAlignLeft"},
		"model":      {IsLeaf: true, Type: "TEXT", Label: "Model", Icon: "IconBrain"},
		"tokensUsed": {IsLeaf: true, Type: "NUMBER", Label: "Tokens Used", Icon: "IconHash"},
	}
}

// Clone returns a shallow copy of s.
func (s OutputSchema) Clone() OutputSchema {
	if s == nil {
		return nil
	}

	out := make(OutputSchema, len(s))
	for k, v := range s {
		out[k] = v
	}

	return out
}
