// Package event extracts and filters CloudTrail account-management events
// delivered through EventBridge.
package event

import (
	"encoding/json"
	"fmt"

	"github.com/qri-io/jsonpointer"
)

// JSON Pointer paths for the fields the notifier needs from a CloudTrail record.
const (
	eventNamePath   = "/eventName"
	eventTimePath   = "/eventTime"
	accountIDPath   = "/requestParameters/accountId"
	principalIDPath = "/userIdentity/principalId"
)

// closureActions is the exact-match allow-list of account-closure API calls.
// Extend the set to cover new APIs; never substring-match, which would fire
// on unrelated calls.
var closureActions = map[string]struct{}{
	"CloseAccount":                  {},
	"RemoveAccountFromOrganization": {},
}

// Detail holds the CloudTrail fields the notifier acts on, extracted and
// validated at one boundary so downstream code never touches the raw payload.
type Detail struct {
	EventName   string
	EventTime   string
	AccountID   string
	PrincipalID string
}

// FieldError reports a required field that is missing or not a string in the
// event detail.
type FieldError struct {
	Pointer string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("event detail field %s is missing or not a string", e.Pointer)
}

// Extract decodes the EventBridge detail payload and pulls out the fields a
// notification is built from. Any missing or mistyped field is a fatal
// malformed-input error; no partial notification is attempted.
func Extract(detail json.RawMessage) (Detail, error) {
	if len(detail) == 0 {
		return Detail{}, fmt.Errorf("event has no detail payload")
	}

	var doc any
	if err := json.Unmarshal(detail, &doc); err != nil {
		return Detail{}, fmt.Errorf("failed to decode event detail: %w", err)
	}

	d := Detail{}
	for _, f := range []struct {
		path string
		dst  *string
	}{
		{eventNamePath, &d.EventName},
		{eventTimePath, &d.EventTime},
		{accountIDPath, &d.AccountID},
		{principalIDPath, &d.PrincipalID},
	} {
		value, err := stringAt(doc, f.path)
		if err != nil {
			return Detail{}, err
		}
		*f.dst = value
	}

	return d, nil
}

// IsClosureAction reports whether the API call name is on the allow-list of
// account-closure actions.
func IsClosureAction(name string) bool {
	_, ok := closureActions[name]
	return ok
}

// stringAt evaluates a JSON Pointer against the decoded detail document and
// requires a non-empty string at the target.
func stringAt(doc any, path string) (string, error) {
	ptr, err := jsonpointer.Parse(path)
	if err != nil {
		return "", fmt.Errorf("invalid JSON Pointer %s: %w", path, err)
	}

	result, err := ptr.Eval(doc)
	if err != nil || result == nil {
		return "", &FieldError{Pointer: path}
	}

	value, ok := result.(string)
	if !ok || value == "" {
		return "", &FieldError{Pointer: path}
	}

	return value, nil
}
