package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"alumnilink_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// ChatService reads and writes conversations and messages. Conversations are
// created by friend-request acceptance, never here.
type ChatService struct {
	Dynamo    DynamoAPI
	Discovery *DiscoveryService
	Events    *EdgeEventBus
}

// ConversationEntry pairs a conversation with the friend it belongs to, as
// the chat list renders it.
type ConversationEntry struct {
	models.Conversation
	Friend models.FriendEdge `json:"friend"`
}

// GetConversations returns the chat list for userID: one entry per visible
// friend, skipping friends whose conversation record is missing. Blocked
// pairs are already filtered out of the friend list.
func (s *ChatService) GetConversations(ctx context.Context, userID string) ([]ConversationEntry, error) {
	friends, err := s.Discovery.FriendList(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries := make([]ConversationEntry, 0, len(friends))
	for _, friend := range friends {
		conversationID := models.ConversationID(userID, friend.FriendID)
		conversation, err := s.getConversation(ctx, conversationID)
		if err != nil {
			if errors.Is(err, ErrItemNotFound) {
				log.Printf("⚠️ No conversation %s for friend pair, skipping", conversationID)
				continue
			}
			return nil, err
		}
		entries = append(entries, ConversationEntry{Conversation: *conversation, Friend: friend})
	}
	return entries, nil
}

// SendMessage appends a message to a conversation the sender participates in
// and refreshes the lastMessage summary.
func (s *ChatService) SendMessage(ctx context.Context, conversationID, senderID, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("message text is required")
	}

	conversation, err := s.getConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !containsParticipant(conversation.Participants, senderID) {
		return nil, fmt.Errorf("sender %s is not a participant of %s", senderID, conversationID)
	}

	message := models.Message{
		ConversationID: conversationID,
		MessageID:      uuid.NewString(),
		SenderID:       senderID,
		Text:           text,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339Nano),
	}
	if err := s.Dynamo.PutItem(ctx, models.MessagesTable, message); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	if err := s.updateLastMessage(ctx, conversationID, message); err != nil {
		return nil, err
	}

	for _, participant := range conversation.Participants {
		s.Events.Publish(EdgeEvent{UserID: participant, Kind: EdgeKindConversations, Action: EdgeActionUpdated, TargetID: conversationID})
	}
	return &message, nil
}

// GetMessages returns the messages of a conversation, oldest first. A
// positive limit keeps only the most recent messages. The query itself is
// never bounded by limit: the store pages in sort-key order and the sort key
// is a uuid, so cutting there would drop an arbitrary slice of the
// conversation. The cut happens after ordering by timestamp.
func (s *ChatService) GetMessages(ctx context.Context, conversationID string, limit int) ([]models.Message, error) {
	keyCondition := "conversationId = :conversationId"
	values := map[string]types.AttributeValue{
		":conversationId": &types.AttributeValueMemberS{Value: conversationID},
	}

	items, err := s.Dynamo.QueryItems(ctx, models.MessagesTable, keyCondition, values, nil, edgeQueryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	var messages []models.Message
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt < messages[j].CreatedAt
	})
	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}
	return messages, nil
}

func (s *ChatService) getConversation(ctx context.Context, conversationID string) (*models.Conversation, error) {
	item, err := s.Dynamo.GetItem(ctx, models.ConversationsTable, stringKey(map[string]string{"conversationId": conversationID}))
	if err != nil {
		return nil, err
	}
	var conversation models.Conversation
	if err := attributevalue.UnmarshalMap(item, &conversation); err != nil {
		return nil, fmt.Errorf("failed to unmarshal conversation: %w", err)
	}
	return &conversation, nil
}

func (s *ChatService) updateLastMessage(ctx context.Context, conversationID string, message models.Message) error {
	summary := models.LastMessage{
		Text:     message.Text,
		SenderID: message.SenderID,
		SentAt:   message.CreatedAt,
	}
	summaryAttr, err := attributevalue.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal lastMessage: %w", err)
	}

	key := stringKey(map[string]string{"conversationId": conversationID})
	values := map[string]types.AttributeValue{":lastMessage": summaryAttr}
	names := map[string]string{"#lastMessage": "lastMessage"}
	if _, err := s.Dynamo.UpdateItem(ctx, models.ConversationsTable, "SET #lastMessage = :lastMessage", key, values, names); err != nil {
		return fmt.Errorf("failed to update lastMessage: %w", err)
	}
	return nil
}

func containsParticipant(participants []string, userID string) bool {
	for _, p := range participants {
		if p == userID {
			return true
		}
	}
	return false
}
