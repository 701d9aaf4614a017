package messages

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxTextLength = 4096

var (
	e164Pattern = regexp.MustCompile(`^\+\d+$`)
	tsPattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z$`)
)

type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError carries every constraint violated by a payload.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type webhookPayload struct {
	MessageID string  `json:"message_id"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	TS        string  `json:"ts"`
	Text      *string `json:"text"`
}

// ParsePayload decodes and validates an inbound webhook body. All failure
// modes (malformed JSON, wrong types, missing fields, format violations)
// come back as a *ValidationError.
func ParsePayload(raw []byte) (*Message, *ValidationError) {
	var payload webhookPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &ValidationError{Fields: []FieldError{
			{Field: "body", Reason: "invalid JSON: " + err.Error()},
		}}
	}

	var fields []FieldError

	if payload.MessageID == "" {
		fields = append(fields, FieldError{"message_id", "must be a non-empty string"})
	}
	if !e164Pattern.MatchString(payload.From) {
		fields = append(fields, FieldError{"from", "must be E.164 format: + followed by digits"})
	}
	if !e164Pattern.MatchString(payload.To) {
		fields = append(fields, FieldError{"to", "must be E.164 format: + followed by digits"})
	}
	if !tsPattern.MatchString(payload.TS) {
		fields = append(fields, FieldError{"ts", "must be ISO-8601 UTC: YYYY-MM-DDTHH:MM:SSZ"})
	}
	if payload.Text != nil && utf8.RuneCountInString(*payload.Text) > maxTextLength {
		fields = append(fields, FieldError{"text", fmt.Sprintf("must be at most %d characters", maxTextLength)})
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	return &Message{
		MessageID: payload.MessageID,
		From:      payload.From,
		To:        payload.To,
		TS:        payload.TS,
		Text:      payload.Text,
	}, nil
}
