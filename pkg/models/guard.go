package models

// AsAiSummaryAction narrows action to the AI summary variant.
func AsAiSummaryAction(action WorkflowAction) (*AiSummaryAction, bool) {
	switch a := action.(type) {
	case *AiSummaryAction:
		return a, a != nil
	case AiSummaryAction:
		return &a, true
	case *AiAgentAction, AiAgentAction, *GenericAction, GenericAction:
		return nil, false
	default:
		return nil, false
	}
}

// IsAiSummaryAction reports whether action is an AI summary step.
func IsAiSummaryAction(action WorkflowAction) bool {
	_, ok := AsAiSummaryAction(action)

	return ok
}
