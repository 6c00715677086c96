package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"alumnilink_server/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// FriendRequestService runs the request lifecycle: none -> pending ->
// accepted or rejected. Acceptance creates the mutual friendship and the
// conversation in a single transaction.
type FriendRequestService struct {
	Dynamo DynamoAPI
	Events *EdgeEventBus
}

// SendRequest creates a pending request from requesterID to targetID. The
// request is stored under the target, carrying a snapshot of the requester's
// name and photo.
func (fs *FriendRequestService) SendRequest(ctx context.Context, requesterID, targetID string) (*models.FriendRequest, error) {
	if requesterID == "" || targetID == "" || requesterID == targetID {
		return nil, fmt.Errorf("invalid requester/target pair")
	}

	alreadyFriends, err := fs.friendEdgeExists(ctx, requesterID, targetID)
	if err != nil {
		return nil, err
	}
	if alreadyFriends {
		return nil, ErrAlreadyFriends
	}

	pending, err := fs.getRequest(ctx, targetID, requesterID)
	if err != nil && !errors.Is(err, ErrRequestNotFound) {
		return nil, err
	}
	if pending != nil {
		return nil, ErrAlreadyPending
	}

	requester, err := fs.getProfile(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	request := models.FriendRequest{
		TargetID:          targetID,
		RequesterID:       requesterID,
		RequesterName:     requester.DisplayName,
		RequesterPhotoURL: requester.PhotoURL,
		Status:            models.RequestStatusPending,
		CreatedAt:         time.Now().UTC().Format(time.RFC3339),
	}
	if err := fs.Dynamo.PutItem(ctx, models.FriendRequestsTable, request); err != nil {
		return nil, fmt.Errorf("failed to store friend request: %w", err)
	}

	log.Printf("✅ Friend request sent: %s -> %s", requesterID, targetID)
	fs.Events.Publish(EdgeEvent{UserID: targetID, Kind: EdgeKindFriendRequests, Action: EdgeActionCreated, TargetID: requesterID})
	fs.Events.Publish(EdgeEvent{UserID: requesterID, Kind: EdgeKindFriendRequests, Action: EdgeActionCreated, TargetID: targetID})
	return &request, nil
}

// AcceptRequest is performed by the target. In one transaction it writes the
// friend edge under each participant, creates the conversation at its
// deterministic id, and deletes the originating request. Either all four
// writes commit or none do.
func (fs *FriendRequestService) AcceptRequest(ctx context.Context, targetID, requesterID string) (*models.Conversation, error) {
	if _, err := fs.getRequest(ctx, targetID, requesterID); err != nil {
		return nil, err
	}

	requester, err := fs.getProfile(ctx, requesterID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return nil, ErrRequesterNotFound
		}
		return nil, err
	}
	target, err := fs.getProfile(ctx, targetID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	conversation := models.Conversation{
		ConversationID: models.ConversationID(requesterID, targetID),
		Participants:   []string{requesterID, targetID},
		LastMessage:    models.LastMessage{},
		CreatedAt:      now,
	}

	targetEdge := models.FriendEdge{
		OwnerID:     targetID,
		FriendID:    requesterID,
		DisplayName: requester.DisplayName,
		PhotoURL:    requester.PhotoURL,
		CreatedAt:   now,
	}
	requesterEdge := models.FriendEdge{
		OwnerID:     requesterID,
		FriendID:    targetID,
		DisplayName: target.DisplayName,
		PhotoURL:    target.PhotoURL,
		CreatedAt:   now,
	}

	items, err := buildAcceptTransaction(targetEdge, requesterEdge, conversation)
	if err != nil {
		return nil, err
	}
	if err := fs.Dynamo.TransactWriteItems(ctx, items); err != nil {
		return nil, fmt.Errorf("failed to accept friend request: %w", err)
	}

	log.Printf("✅ Friend request accepted: %s ↔ %s (conversation %s)", targetID, requesterID, conversation.ConversationID)
	for _, userID := range []string{targetID, requesterID} {
		fs.Events.Publish(EdgeEvent{UserID: userID, Kind: EdgeKindFriends, Action: EdgeActionCreated})
		fs.Events.Publish(EdgeEvent{UserID: userID, Kind: EdgeKindFriendRequests, Action: EdgeActionDeleted})
		fs.Events.Publish(EdgeEvent{UserID: userID, Kind: EdgeKindConversations, Action: EdgeActionCreated, TargetID: conversation.ConversationID})
	}
	return &conversation, nil
}

// RejectRequest deletes the pending request and nothing else. Rejecting a
// request that is already gone is a no-op success.
func (fs *FriendRequestService) RejectRequest(ctx context.Context, targetID, requesterID string) error {
	key := stringKey(map[string]string{"targetId": targetID, "requesterId": requesterID})
	if err := fs.Dynamo.DeleteItem(ctx, models.FriendRequestsTable, key); err != nil {
		return fmt.Errorf("failed to reject friend request: %w", err)
	}

	fs.Events.Publish(EdgeEvent{UserID: targetID, Kind: EdgeKindFriendRequests, Action: EdgeActionDeleted, TargetID: requesterID})
	fs.Events.Publish(EdgeEvent{UserID: requesterID, Kind: EdgeKindFriendRequests, Action: EdgeActionDeleted, TargetID: targetID})
	return nil
}

// ListRequests returns the pending requests waiting on targetID.
func (fs *FriendRequestService) ListRequests(ctx context.Context, targetID string) ([]models.FriendRequest, error) {
	keyCondition := "targetId = :targetId"
	values := map[string]types.AttributeValue{
		":targetId": &types.AttributeValueMemberS{Value: targetID},
	}
	items, err := fs.Dynamo.QueryItems(ctx, models.FriendRequestsTable, keyCondition, values, nil, edgeQueryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list friend requests: %w", err)
	}
	var requests []models.FriendRequest
	if err := attributevalue.UnmarshalListOfMaps(items, &requests); err != nil {
		return nil, fmt.Errorf("failed to unmarshal friend requests: %w", err)
	}
	return requests, nil
}

func (fs *FriendRequestService) getRequest(ctx context.Context, targetID, requesterID string) (*models.FriendRequest, error) {
	key := stringKey(map[string]string{"targetId": targetID, "requesterId": requesterID})
	item, err := fs.Dynamo.GetItem(ctx, models.FriendRequestsTable, key)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	var request models.FriendRequest
	if err := attributevalue.UnmarshalMap(item, &request); err != nil {
		return nil, fmt.Errorf("failed to unmarshal friend request: %w", err)
	}
	return &request, nil
}

func (fs *FriendRequestService) friendEdgeExists(ctx context.Context, ownerID, friendID string) (bool, error) {
	key := stringKey(map[string]string{"ownerId": ownerID, "friendId": friendID})
	_, err := fs.Dynamo.GetItem(ctx, models.FriendsTable, key)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (fs *FriendRequestService) getProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	item, err := fs.Dynamo.GetItem(ctx, models.UserProfilesTable, stringKey(map[string]string{"userId": userID}))
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

func buildAcceptTransaction(targetEdge, requesterEdge models.FriendEdge, conversation models.Conversation) ([]types.TransactWriteItem, error) {
	targetItem, err := attributevalue.MarshalMap(targetEdge)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal friend edge: %w", err)
	}
	requesterItem, err := attributevalue.MarshalMap(requesterEdge)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal friend edge: %w", err)
	}
	conversationItem, err := attributevalue.MarshalMap(conversation)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal conversation: %w", err)
	}

	return []types.TransactWriteItem{
		{Put: &types.Put{TableName: aws.String(models.FriendsTable), Item: targetItem}},
		{Put: &types.Put{TableName: aws.String(models.FriendsTable), Item: requesterItem}},
		{Put: &types.Put{TableName: aws.String(models.ConversationsTable), Item: conversationItem}},
		{Delete: &types.Delete{
			TableName: aws.String(models.FriendRequestsTable),
			Key:       stringKey(map[string]string{"targetId": targetEdge.OwnerID, "requesterId": targetEdge.FriendID}),
		}},
	}, nil
}
