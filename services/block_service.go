package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"alumnilink_server/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// BlockTarget carries the denormalized info required to block a user. The
// blocked-users screen renders from these fields alone, so all of them must
// be present before any write happens.
type BlockTarget struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
}

// BlockService runs the block/unblock workflow. Blocking hides the pair from
// discovery and chat lists in both directions but does not delete an existing
// friendship or conversation; that history stays in place.
type BlockService struct {
	Dynamo        DynamoAPI
	Relationships *RelationshipService
	Events        *EdgeEventBus
}

// BlockUser writes the blocked edge under the blocker and its mirror under
// the target, timestamped, in one transaction so the mirror can never be
// half-present.
func (bs *BlockService) BlockUser(ctx context.Context, blockerID string, target BlockTarget) error {
	if blockerID == "" || blockerID == target.UserID {
		return fmt.Errorf("invalid blocker/target pair")
	}
	if target.UserID == "" || target.DisplayName == "" || target.PhotoURL == "" {
		return ErrIncompleteTargetInfo
	}

	now := time.Now().UTC().Format(time.RFC3339)
	blockedEdge := models.BlockEdge{
		OwnerID:     blockerID,
		TargetID:    target.UserID,
		DisplayName: target.DisplayName,
		PhotoURL:    target.PhotoURL,
		BlockedAt:   now,
	}
	// The mirror lives under the blocked party and points back at the blocker.
	mirrorEdge := models.BlockEdge{
		OwnerID:   target.UserID,
		TargetID:  blockerID,
		BlockedAt: now,
	}

	blockedItem, err := attributevalue.MarshalMap(blockedEdge)
	if err != nil {
		return fmt.Errorf("failed to marshal block edge: %w", err)
	}
	mirrorItem, err := attributevalue.MarshalMap(mirrorEdge)
	if err != nil {
		return fmt.Errorf("failed to marshal blockedBy edge: %w", err)
	}

	items := []types.TransactWriteItem{
		{Put: &types.Put{TableName: aws.String(models.BlockedUsersTable), Item: blockedItem}},
		{Put: &types.Put{TableName: aws.String(models.BlockedByUsersTable), Item: mirrorItem}},
	}
	if err := bs.Dynamo.TransactWriteItems(ctx, items); err != nil {
		return fmt.Errorf("failed to block user: %w", err)
	}

	log.Printf("✅ User %s blocked %s", blockerID, target.UserID)
	bs.Events.Publish(EdgeEvent{UserID: blockerID, Kind: EdgeKindBlocked, Action: EdgeActionCreated, TargetID: target.UserID})
	bs.Events.Publish(EdgeEvent{UserID: target.UserID, Kind: EdgeKindBlockedBy, Action: EdgeActionCreated, TargetID: blockerID})
	return nil
}

// UnblockUser removes the blocked edge and its mirror. Each deletion is
// idempotent on its own, so unblocking succeeds even when one side is
// already gone.
func (bs *BlockService) UnblockUser(ctx context.Context, blockerID, targetID string) error {
	blockedKey := stringKey(map[string]string{"ownerId": blockerID, "targetId": targetID})
	if err := bs.Dynamo.DeleteItem(ctx, models.BlockedUsersTable, blockedKey); err != nil {
		return fmt.Errorf("failed to remove blocked edge: %w", err)
	}

	mirrorKey := stringKey(map[string]string{"ownerId": targetID, "targetId": blockerID})
	if err := bs.Dynamo.DeleteItem(ctx, models.BlockedByUsersTable, mirrorKey); err != nil {
		return fmt.Errorf("failed to remove blockedBy edge: %w", err)
	}

	bs.Events.Publish(EdgeEvent{UserID: blockerID, Kind: EdgeKindBlocked, Action: EdgeActionDeleted, TargetID: targetID})
	bs.Events.Publish(EdgeEvent{UserID: targetID, Kind: EdgeKindBlockedBy, Action: EdgeActionDeleted, TargetID: blockerID})
	return nil
}

// ListBlockedUsers returns the users ownerID has blocked, with the snapshots
// captured at block time.
func (bs *BlockService) ListBlockedUsers(ctx context.Context, ownerID string) ([]models.BlockEdge, error) {
	return bs.Relationships.ListBlocked(ctx, ownerID)
}
