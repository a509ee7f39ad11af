package server

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/practice-sem-2/messenger-service/internal/models"
	usecase "github.com/practice-sem-2/messenger-service/internal/usecases"
)

const (
	FrameInvocation = 1
	FrameCompletion = 3
	FramePing       = 6
)

// Completion error codes. Failure details never reach the client.
const (
	CompletionFailed      = "500"
	CompletionRateLimited = "429"
)

type invocationFrame struct {
	Type         int               `json:"type"`
	InvocationID string            `json:"invocationId,omitempty"`
	Hub          models.Hub        `json:"hub"`
	Target       string            `json:"target"`
	Arguments    []json.RawMessage `json:"arguments"`
}

type eventFrame struct {
	Type      int           `json:"type"`
	Hub       models.Hub    `json:"hub"`
	Target    string        `json:"target"`
	Arguments []interface{} `json:"arguments"`
}

type completionFrame struct {
	Type         int    `json:"type"`
	InvocationID string `json:"invocationId"`
	Error        string `json:"error,omitempty"`
}

func encodeEvent(hub models.Hub, event models.Event) ([]byte, error) {
	return json.Marshal(eventFrame{
		Type:      FrameInvocation,
		Hub:       hub,
		Target:    event.Target,
		Arguments: event.Arguments,
	})
}

func encodeCompletion(invocationID, code string) []byte {
	// marshalling two strings and an int can not fail
	payload, _ := json.Marshal(completionFrame{
		Type:         FrameCompletion,
		InvocationID: invocationID,
		Error:        code,
	})
	return payload
}

type arguments []json.RawMessage

func (a arguments) decode(i int, v interface{}) error {
	if i >= len(a) {
		return fmt.Errorf("%w: missing argument %d", usecase.ErrInvalidRequest, i)
	}
	if err := json.Unmarshal(a[i], v); err != nil {
		return fmt.Errorf("%w: argument %d: %s", usecase.ErrInvalidRequest, i, err.Error())
	}
	return nil
}

func (a arguments) string(i int) (string, error) {
	var s string
	err := a.decode(i, &s)
	return s, err
}

func (a arguments) uuid(i int) (uuid.UUID, error) {
	s, err := a.string(i)
	if err != nil {
		return uuid.Nil, err
	}
	if !usecase.ValidateUUID(s) {
		return uuid.Nil, fmt.Errorf("%w: argument %d is not a uuid", usecase.ErrInvalidRequest, i)
	}
	return uuid.MustParse(s), nil
}
