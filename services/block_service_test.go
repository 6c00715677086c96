package services

import (
	"context"
	"errors"
	"testing"

	"alumnilink_server/models"
)

func newBlockFixture() (*BlockService, *fakeDynamo) {
	db := newFakeDynamo()
	relationships := &RelationshipService{Dynamo: db}
	return &BlockService{Dynamo: db, Relationships: relationships, Events: NewEdgeEventBus()}, db
}

func beaTarget() BlockTarget {
	return BlockTarget{UserID: "bea", DisplayName: "Bea", PhotoURL: "https://cdn/bea.jpg"}
}

func TestBlockUserWritesMirrorPair(t *testing.T) {
	bs, db := newBlockFixture()
	ctx := context.Background()

	blockerEvents, cancelBlocker := bs.Events.Subscribe("alice")
	defer cancelBlocker()
	targetEvents, cancelTarget := bs.Events.Subscribe("bea")
	defer cancelTarget()

	if err := bs.BlockUser(ctx, "alice", beaTarget()); err != nil {
		t.Fatalf("BlockUser: %v", err)
	}

	rs := &RelationshipService{Dynamo: db}
	blocked, err := rs.ListBlocked(ctx, "alice")
	if err != nil {
		t.Fatalf("ListBlocked: %v", err)
	}
	if len(blocked) != 1 || blocked[0].TargetID != "bea" || blocked[0].DisplayName != "Bea" {
		t.Fatalf("blocked edges = %+v", blocked)
	}
	if blocked[0].BlockedAt == "" {
		t.Error("blockedAt not set")
	}

	mirror, err := rs.ListBlockedBy(ctx, "bea")
	if err != nil {
		t.Fatalf("ListBlockedBy: %v", err)
	}
	if len(mirror) != 1 || mirror[0].TargetID != "alice" {
		t.Fatalf("mirror edges = %+v", mirror)
	}
	if mirror[0].BlockedAt != blocked[0].BlockedAt {
		t.Error("mirror edge carries a different timestamp")
	}
	// Mirror edges are id-only; no snapshot of the blocker is taken.
	if mirror[0].DisplayName != "" || mirror[0].PhotoURL != "" {
		t.Errorf("mirror edge carries snapshot fields: %+v", mirror[0])
	}

	select {
	case event := <-blockerEvents:
		if event.Kind != EdgeKindBlocked || event.Action != EdgeActionCreated || event.TargetID != "bea" {
			t.Errorf("blocker event = %+v", event)
		}
	default:
		t.Error("no event published to the blocker")
	}
	select {
	case event := <-targetEvents:
		if event.Kind != EdgeKindBlockedBy || event.Action != EdgeActionCreated || event.TargetID != "alice" {
			t.Errorf("target event = %+v", event)
		}
	default:
		t.Error("no event published to the blocked user")
	}
}

func TestBlockUserValidation(t *testing.T) {
	bs, db := newBlockFixture()
	ctx := context.Background()

	if err := bs.BlockUser(ctx, "alice", BlockTarget{UserID: "alice", DisplayName: "Alice", PhotoURL: "x"}); err == nil {
		t.Error("self-block accepted")
	}

	incomplete := []BlockTarget{
		{DisplayName: "Bea", PhotoURL: "x"},
		{UserID: "bea", PhotoURL: "x"},
		{UserID: "bea", DisplayName: "Bea"},
	}
	for _, target := range incomplete {
		if err := bs.BlockUser(ctx, "alice", target); !errors.Is(err, ErrIncompleteTargetInfo) {
			t.Errorf("BlockUser(%+v) = %v, want ErrIncompleteTargetInfo", target, err)
		}
	}

	if db.count(models.BlockedUsersTable) != 0 || db.count(models.BlockedByUsersTable) != 0 {
		t.Error("rejected blocks left edges behind")
	}
}

func TestBlockUserAllOrNothing(t *testing.T) {
	bs, db := newBlockFixture()
	db.failTables[models.BlockedByUsersTable] = true

	if err := bs.BlockUser(context.Background(), "alice", beaTarget()); err == nil {
		t.Fatal("BlockUser succeeded with a failing mirror table")
	}
	if db.count(models.BlockedUsersTable) != 0 {
		t.Error("blocked edge written despite aborted transaction")
	}
}

func TestBlockPreservesFriendshipRecords(t *testing.T) {
	bs, db := newBlockFixture()
	ctx := context.Background()

	// alice and bea are friends with a conversation; blocking hides but
	// does not delete either.
	if err := db.PutItem(ctx, models.FriendsTable, models.FriendEdge{
		OwnerID: "alice", FriendID: "bea", DisplayName: "Bea", CreatedAt: "2026-01-01T00:00:00Z",
	}); err != nil {
		t.Fatalf("seed friend edge: %v", err)
	}
	if err := db.PutItem(ctx, models.ConversationsTable, models.Conversation{
		ConversationID: models.ConversationID("alice", "bea"),
		Participants:   []string{"alice", "bea"},
		CreatedAt:      "2026-01-01T00:00:00Z",
	}); err != nil {
		t.Fatalf("seed conversation: %v", err)
	}

	if err := bs.BlockUser(ctx, "alice", beaTarget()); err != nil {
		t.Fatalf("BlockUser: %v", err)
	}

	if db.count(models.FriendsTable) != 1 {
		t.Error("block deleted the friendship edge")
	}
	if db.count(models.ConversationsTable) != 1 {
		t.Error("block deleted the conversation")
	}

	// The pair is still hidden from the rendered friend list.
	ds := &DiscoveryService{Profiles: &UserProfileService{Dynamo: db}, Relationships: bs.Relationships}
	friends, err := ds.FriendList(ctx, "alice")
	if err != nil {
		t.Fatalf("FriendList: %v", err)
	}
	if len(friends) != 0 {
		t.Errorf("blocked friend still listed: %+v", friends)
	}
}

func TestUnblockUser(t *testing.T) {
	bs, db := newBlockFixture()
	ctx := context.Background()

	if err := bs.BlockUser(ctx, "alice", beaTarget()); err != nil {
		t.Fatalf("BlockUser: %v", err)
	}
	if err := bs.UnblockUser(ctx, "alice", "bea"); err != nil {
		t.Fatalf("UnblockUser: %v", err)
	}

	if db.count(models.BlockedUsersTable) != 0 || db.count(models.BlockedByUsersTable) != 0 {
		t.Error("unblock left edges behind")
	}

	// Unblocking an already-unblocked pair succeeds.
	if err := bs.UnblockUser(ctx, "alice", "bea"); err != nil {
		t.Errorf("second UnblockUser: %v", err)
	}
}

func TestListBlockedUsers(t *testing.T) {
	bs, _ := newBlockFixture()
	ctx := context.Background()

	if err := bs.BlockUser(ctx, "alice", beaTarget()); err != nil {
		t.Fatalf("BlockUser: %v", err)
	}

	blocked, err := bs.ListBlockedUsers(ctx, "alice")
	if err != nil {
		t.Fatalf("ListBlockedUsers: %v", err)
	}
	if len(blocked) != 1 || blocked[0].TargetID != "bea" || blocked[0].PhotoURL != "https://cdn/bea.jpg" {
		t.Fatalf("ListBlockedUsers = %+v", blocked)
	}
}
