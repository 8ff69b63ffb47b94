package session

import "strings"

// Title derives a session title from its first message: the first four
// words, with an ellipsis when the message is longer.
func Title(firstMessage string) string {
	words := strings.Fields(firstMessage)
	if len(words) <= 4 {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:4], " ") + "..."
}
