// Package prompt assembles the bounded, ordered message sequence sent to the
// inference backend from a new user message and prior conversation history.
package prompt

import "aitoolkit-web/internal/backend"

// DefaultWindow is the number of most-recent history turns retained when the
// caller does not supply a positive window size.
const DefaultWindow = 20

// Roles a history turn may carry. Turns tagged with anything else are
// dropped during assembly.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one caller-supplied history entry. Type is the speaker role as the
// caller tags it; Content is the message text. Insertion order is the literal
// chat order.
type Turn struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// Build converts a new user message plus optional history into the ordered
// message sequence for the backend. The last windowSize turns of history are
// retained (oldest dropped first), turns with unknown roles are filtered out,
// and the new message is appended last with the user role. Pure function;
// output length is between 1 and windowSize+1.
func Build(message string, history []Turn, windowSize int) []backend.Message {
	if windowSize <= 0 {
		windowSize = DefaultWindow
	}

	if len(history) > windowSize {
		history = history[len(history)-windowSize:]
	}

	messages := make([]backend.Message, 0, len(history)+1)
	for _, turn := range history {
		switch turn.Type {
		case RoleUser, RoleAssistant:
			messages = append(messages, backend.Message{
				Role:    turn.Type,
				Content: turn.Content,
			})
		default:
			// Unknown roles are not forwarded. Valid neighbors keep
			// their relative order.
		}
	}

	return append(messages, backend.Message{
		Role:    RoleUser,
		Content: message,
	})
}
