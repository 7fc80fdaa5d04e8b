// Package notify formats account-closure notifications and fans them out to
// the configured channels on a best-effort basis.
package notify

import (
	"fmt"
	"strings"

	"github.com/orgwatch/account-closure-notifier/internal/event"
)

// Message is the notification derived from a single event. All four fields
// come verbatim from the same source detail.
type Message struct {
	Action    string
	AccountID string
	Principal string
	Timestamp string
}

// NewMessage builds a Message from an extracted detail. The principal id is
// colon-delimited with the human-readable session name in the second segment;
// any other shape is an error, not an empty principal.
func NewMessage(d event.Detail) (Message, error) {
	segments := strings.Split(d.PrincipalID, ":")
	if len(segments) < 2 || segments[1] == "" {
		return Message{}, fmt.Errorf("principal id %q has no session name segment", d.PrincipalID)
	}

	return Message{
		Action:    d.EventName,
		AccountID: d.AccountID,
		Principal: segments[1],
		Timestamp: d.EventTime,
	}, nil
}

// Subject is the pub/sub subject line, also reused as the chat header.
func (m Message) Subject() string {
	return fmt.Sprintf("AWS %s Notification", m.Action)
}

// Body is the plain-text pub/sub message: a lead sentence followed by the
// field list.
func (m Message) Body() string {
	return fmt.Sprintf("%s action has been made for Account %s\n\n"+
		"Action: %s \n"+
		"   Target Account: %s\n"+
		"   Calling Principal: %s \n"+
		"   TimeStamp: %s",
		m.Action, m.AccountID, m.Action, m.AccountID, m.Principal, m.Timestamp)
}

// BlockMessage is a Slack Block Kit payload.
type BlockMessage struct {
	Blocks []Block `json:"blocks"`
}

// Block is a single Block Kit layout block.
type Block struct {
	Type   string `json:"type"`
	Text   *Text  `json:"text,omitempty"`
	Fields []Text `json:"fields,omitempty"`
}

// Text is a Block Kit text object.
type Text struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Blocks is the structured chat rendering: a header block plus one section
// with the four labeled fields.
func (m Message) Blocks() BlockMessage {
	return BlockMessage{
		Blocks: []Block{
			{
				Type: "header",
				Text: &Text{Type: "plain_text", Text: m.Subject()},
			},
			{
				Type: "section",
				Fields: []Text{
					{Type: "mrkdwn", Text: "*Action:*\n" + m.Action},
					{Type: "mrkdwn", Text: "*Target Account:*\n" + m.AccountID},
					{Type: "mrkdwn", Text: "*Calling Principal:*\n" + m.Principal},
					{Type: "mrkdwn", Text: "*TimeStamp:*\n" + m.Timestamp},
				},
			},
		},
	}
}
