package llm

// TruncateMessages returns the newest suffix of messages that fits within maxTokens.
//
// A leading system message is always kept, even when it alone exceeds the
// budget. The remaining messages are walked from newest to oldest and the walk
// stops at the first message that would overflow the budget. The result keeps
// chronological order. When everything fits, messages is returned unchanged.
func TruncateMessages(messages []ChatMessage, maxTokens int) []ChatMessage {
	if len(messages) == 0 {
		return messages
	}

	costs := make([]int, len(messages))
	total := 0
	for i, msg := range messages {
		costs[i] = EstimateTokens(msg.Content)
		total += costs[i]
	}
	if total <= maxTokens {
		return messages
	}

	start := 0
	used := 0
	if messages[0].Role == RoleSystem {
		start = 1
		used = costs[0]
	}

	keepFrom := len(messages)
	for i := len(messages) - 1; i >= start; i-- {
		if used+costs[i] > maxTokens {
			break
		}
		used += costs[i]
		keepFrom = i
	}

	result := make([]ChatMessage, 0, start+len(messages)-keepFrom)
	result = append(result, messages[:start]...)
	result = append(result, messages[keepFrom:]...)
	return result
}
