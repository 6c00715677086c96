package models

import (
	"sort"
	"strings"
)

// LastMessage is the summary stored on a conversation for list rendering.
type LastMessage struct {
	Text     string `dynamodbav:"text,omitempty" json:"text,omitempty"`
	SenderID string `dynamodbav:"senderId,omitempty" json:"senderId,omitempty"`
	SentAt   string `dynamodbav:"sentAt,omitempty" json:"sentAt,omitempty"`
}

// Conversation is the chat channel between two friends, created exactly once
// when a friend request is accepted.
type Conversation struct {
	ConversationID string      `dynamodbav:"conversationId" json:"conversationId"` // Partition Key
	Participants   []string    `dynamodbav:"participants" json:"participants"`
	LastMessage    LastMessage `dynamodbav:"lastMessage" json:"lastMessage"`
	CreatedAt      string      `dynamodbav:"createdAt" json:"createdAt"`
}

// ConversationID derives the conversation identity for a pair of users. Both
// participants compute it independently, so the same unordered pair must
// always produce the same id: sort the two ids and join with "_".
func ConversationID(userA, userB string) string {
	pair := []string{userA, userB}
	sort.Strings(pair)
	return strings.Join(pair, "_")
}

// ConversationsTable is the DynamoDB table name for conversations
const ConversationsTable = "Conversations"
