package models

type Message struct {
	ConversationID string `dynamodbav:"conversationId" json:"conversationId"` // Partition Key
	MessageID      string `dynamodbav:"messageId" json:"messageId"`           // Sort Key
	SenderID       string `dynamodbav:"senderId" json:"senderId"`
	Text           string `dynamodbav:"text" json:"text"`
	CreatedAt      string `dynamodbav:"createdAt" json:"createdAt"`
}

// MessagesTable is the DynamoDB table name for chat messages
const MessagesTable = "Messages"
