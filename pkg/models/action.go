// Package models defines the workflow actions exchanged between the step editor and the executors.
package models

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ActionType is the discriminant carried by every workflow step.
type ActionType string

const (
	ActionTypeCode         ActionType = "CODE"
	ActionTypeSendEmail    ActionType = "SEND_EMAIL"
	ActionTypeCreateRecord ActionType = "CREATE_RECORD"
	ActionTypeUpdateRecord ActionType = "UPDATE_RECORD"
	ActionTypeDeleteRecord ActionType = "DELETE_RECORD"
	ActionTypeFindRecords  ActionType = "FIND_RECORDS"
	ActionTypeForm         ActionType = "FORM"
	ActionTypeHTTPRequest  ActionType = "HTTP_REQUEST"
	ActionTypeAiAgent      ActionType = "AI_AGENT"
	ActionTypeAiSummary    ActionType = "AI_SUMMARY"
)

var knownActionTypes = map[ActionType]struct{}{
	ActionTypeCode:         {},
	ActionTypeSendEmail:    {},
	ActionTypeCreateRecord: {},
	ActionTypeUpdateRecord: {},
	ActionTypeDeleteRecord: {},
	ActionTypeFindRecords:  {},
	ActionTypeForm:         {},
	ActionTypeHTTPRequest:  {},
	ActionTypeAiAgent:      {},
	ActionTypeAiSummary:    {},
}

// Valid reports whether t is one of the known action types.
func (t ActionType) Valid() bool {
	_, ok := knownActionTypes[t]

	return ok
}

var (
	ErrInvalidAction     = errors.New("invalid workflow action")
	ErrUnknownActionType = errors.New("unknown workflow action type")
)

// WorkflowAction is one configured step of a workflow.
// The set of implementations is closed: AiSummaryAction, AiAgentAction and GenericAction.
type WorkflowAction interface {
	GetID() string
	GetName() string
	GetType() ActionType
	workflowAction()
}

// BaseAction holds the fields shared by every action variant.
type BaseAction struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Valid bool   `json:"valid"`
}

func (b BaseAction) GetID() string   { return b.ID }
func (b BaseAction) GetName() string { return b.Name }

// AiSummaryAction summarizes a prompt through a completion API.
type AiSummaryAction struct {
	BaseAction

	Settings AiSummarySettings `json:"settings"`
}

func (AiSummaryAction) GetType() ActionType { return ActionTypeAiSummary }
func (AiSummaryAction) workflowAction()     {}

func (a AiSummaryAction) MarshalJSON() ([]byte, error) {
	type alias AiSummaryAction

	return json.Marshal(struct {
		Type ActionType `json:"type"`
		alias
	}{ActionTypeAiSummary, alias(a)})
}

// AiAgentAction runs a configured agent against a prompt.
type AiAgentAction struct {
	BaseAction

	Settings AiAgentSettings `json:"settings"`
}

// AiAgentSettings configures an AI agent step.
type AiAgentSettings struct {
	Input struct {
		AgentID string `json:"agentId"`
		Prompt  string `json:"prompt"`
	} `json:"input"`
	OutputSchema OutputSchema `json:"outputSchema,omitempty"`
}

func (AiAgentAction) GetType() ActionType { return ActionTypeAiAgent }
func (AiAgentAction) workflowAction()     {}

func (a AiAgentAction) MarshalJSON() ([]byte, error) {
	type alias AiAgentAction

	return json.Marshal(struct {
		Type ActionType `json:"type"`
		alias
	}{ActionTypeAiAgent, alias(a)})
}

// GenericAction carries any other known action type with its settings left undecoded.
type GenericAction struct {
	BaseAction

	Kind     ActionType      `json:"-"`
	Settings json.RawMessage `json:"settings,omitempty"`
}

func (a GenericAction) GetType() ActionType { return a.Kind }
func (GenericAction) workflowAction()       {}

func (a GenericAction) MarshalJSON() ([]byte, error) {
	type alias GenericAction

	return json.Marshal(struct {
		Type ActionType `json:"type"`
		alias
	}{a.Kind, alias(a)})
}

// DecodeWorkflowAction decodes one step, choosing the variant from its "type" field.
//
//nolint:ireturn // the union is the point
func DecodeWorkflowAction(data []byte) (WorkflowAction, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidAction)
	}

	discriminant := gjson.GetBytes(data, "type")
	if !discriminant.Exists() || discriminant.Type != gjson.String {
		return nil, fmt.Errorf("%w: missing type", ErrInvalidAction)
	}

	actionType := ActionType(discriminant.String())

	switch actionType {
	case ActionTypeAiSummary:
		action := &AiSummaryAction{}
		if err := json.Unmarshal(data, action); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidAction, err)
		}

		return action, nil
	case ActionTypeAiAgent:
		action := &AiAgentAction{}
		if err := json.Unmarshal(data, action); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidAction, err)
		}

		return action, nil
	default:
		if !actionType.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownActionType, actionType)
		}

		action := &GenericAction{Kind: actionType}
		if err := json.Unmarshal(data, action); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidAction, err)
		}

		return action, nil
	}
}

// Steps is an ordered list of workflow actions that decodes each element by its discriminant.
type Steps []WorkflowAction

func (s *Steps) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAction, err)
	}

	steps := make(Steps, 0, len(raw))

	for i, item := range raw {
		action, err := DecodeWorkflowAction(item)
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}

		steps = append(steps, action)
	}

	*s = steps

	return nil
}

// Find returns the step with the given id.
//
//nolint:ireturn // the union is the point
func (s Steps) Find(id string) (WorkflowAction, bool) {
	for _, step := range s {
		if step != nil && step.GetID() == id {
			return step, true
		}
	}

	return nil, false
}
