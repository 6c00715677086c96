package services

import (
	"context"
	"fmt"

	"alumnilink_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// edgeQueryLimit bounds a single relationship query. Well above anything the
// app produces per user.
const edgeQueryLimit = 1000

// RelationshipService derives the viewer's relationship sets from the raw
// edge tables. The sets are always rebuilt wholesale from the latest store
// state; nothing is patched incrementally, so interleaved updates across
// collections can never leave a stale combined view.
type RelationshipService struct {
	Dynamo DynamoAPI
}

// GetRelationshipSets returns the four identity sets for viewerID: friends,
// users the viewer blocked, users who blocked the viewer, and targets of the
// viewer's own pending requests.
func (rs *RelationshipService) GetRelationshipSets(ctx context.Context, viewerID string) (models.RelationshipSets, error) {
	sets := models.RelationshipSets{
		Friends:         make(map[string]bool),
		BlockedByMe:     make(map[string]bool),
		BlockedOfMe:     make(map[string]bool),
		PendingOutgoing: make(map[string]bool),
	}

	friends, err := rs.ListFriends(ctx, viewerID)
	if err != nil {
		return sets, err
	}
	for _, edge := range friends {
		sets.Friends[edge.FriendID] = true
	}

	blocked, err := rs.ListBlocked(ctx, viewerID)
	if err != nil {
		return sets, err
	}
	for _, edge := range blocked {
		sets.BlockedByMe[edge.TargetID] = true
	}

	blockedBy, err := rs.ListBlockedBy(ctx, viewerID)
	if err != nil {
		return sets, err
	}
	for _, edge := range blockedBy {
		sets.BlockedOfMe[edge.TargetID] = true
	}

	outgoing, err := rs.listOutgoingRequests(ctx, viewerID)
	if err != nil {
		return sets, err
	}
	for _, request := range outgoing {
		sets.PendingOutgoing[request.TargetID] = true
	}

	return sets, nil
}

// ListFriends returns the viewer's friend edges with their denormalized
// name/photo snapshots.
func (rs *RelationshipService) ListFriends(ctx context.Context, ownerID string) ([]models.FriendEdge, error) {
	items, err := rs.queryByOwner(ctx, models.FriendsTable, ownerID)
	if err != nil {
		return nil, err
	}
	var edges []models.FriendEdge
	if err := attributevalue.UnmarshalListOfMaps(items, &edges); err != nil {
		return nil, fmt.Errorf("failed to unmarshal friend edges: %w", err)
	}
	return edges, nil
}

// ListBlocked returns the users ownerID has blocked.
func (rs *RelationshipService) ListBlocked(ctx context.Context, ownerID string) ([]models.BlockEdge, error) {
	items, err := rs.queryByOwner(ctx, models.BlockedUsersTable, ownerID)
	if err != nil {
		return nil, err
	}
	var edges []models.BlockEdge
	if err := attributevalue.UnmarshalListOfMaps(items, &edges); err != nil {
		return nil, fmt.Errorf("failed to unmarshal block edges: %w", err)
	}
	return edges, nil
}

// ListBlockedBy returns the users that have blocked ownerID.
func (rs *RelationshipService) ListBlockedBy(ctx context.Context, ownerID string) ([]models.BlockEdge, error) {
	items, err := rs.queryByOwner(ctx, models.BlockedByUsersTable, ownerID)
	if err != nil {
		return nil, err
	}
	var edges []models.BlockEdge
	if err := attributevalue.UnmarshalListOfMaps(items, &edges); err != nil {
		return nil, fmt.Errorf("failed to unmarshal blockedBy edges: %w", err)
	}
	return edges, nil
}

// listOutgoingRequests finds the viewer's own pending requests through the
// requester GSI, since requests are partitioned under the target.
func (rs *RelationshipService) listOutgoingRequests(ctx context.Context, requesterID string) ([]models.FriendRequest, error) {
	keyCondition := "requesterId = :requesterId"
	values := map[string]types.AttributeValue{
		":requesterId": &types.AttributeValueMemberS{Value: requesterID},
	}
	items, err := rs.Dynamo.QueryItemsWithIndex(ctx, models.FriendRequestsTable, models.RequesterIndex, keyCondition, values, nil, edgeQueryLimit)
	if err != nil {
		return nil, err
	}
	var requests []models.FriendRequest
	if err := attributevalue.UnmarshalListOfMaps(items, &requests); err != nil {
		return nil, fmt.Errorf("failed to unmarshal outgoing requests: %w", err)
	}
	return requests, nil
}

func (rs *RelationshipService) queryByOwner(ctx context.Context, tableName, ownerID string) ([]map[string]types.AttributeValue, error) {
	keyCondition := "ownerId = :ownerId"
	values := map[string]types.AttributeValue{
		":ownerId": &types.AttributeValueMemberS{Value: ownerID},
	}
	items, err := rs.Dynamo.QueryItems(ctx, tableName, keyCondition, values, nil, edgeQueryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s for %s: %w", tableName, ownerID, err)
	}
	return items, nil
}
