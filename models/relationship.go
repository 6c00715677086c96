package models

// FriendEdge is one direction of a friendship. Edges are always written in
// pairs, one under each participant, each carrying a snapshot of the other
// party's name and photo taken at acceptance time.
type FriendEdge struct {
	OwnerID     string `dynamodbav:"ownerId" json:"ownerId"`   // Partition Key
	FriendID    string `dynamodbav:"friendId" json:"friendId"` // Sort Key
	DisplayName string `dynamodbav:"displayName" json:"displayName"`
	PhotoURL    string `dynamodbav:"photoURL,omitempty" json:"photoURL,omitempty"`
	CreatedAt   string `dynamodbav:"createdAt" json:"createdAt"`
}

// BlockEdge records that ownerId blocked targetId. The same shape is stored
// mirrored in the BlockedByUsers table, where ownerId is the blocked party.
// Mirror edges carry ids and timestamp only: they feed set derivation and
// are never rendered, so no snapshot is taken of the blocker.
type BlockEdge struct {
	OwnerID     string `dynamodbav:"ownerId" json:"ownerId"`   // Partition Key
	TargetID    string `dynamodbav:"targetId" json:"targetId"` // Sort Key
	DisplayName string `dynamodbav:"displayName" json:"displayName"`
	PhotoURL    string `dynamodbav:"photoURL,omitempty" json:"photoURL,omitempty"`
	BlockedAt   string `dynamodbav:"blockedAt" json:"blockedAt"`
}

// FriendRequest lives under the target's identity, keyed by the requester.
// Requester name and photo are denormalized so the target's request list
// never has to join against the requester's profile.
type FriendRequest struct {
	TargetID          string `dynamodbav:"targetId" json:"targetId"`       // Partition Key
	RequesterID       string `dynamodbav:"requesterId" json:"requesterId"` // Sort Key, also GSI partition key
	RequesterName     string `dynamodbav:"requesterName" json:"requesterName"`
	RequesterPhotoURL string `dynamodbav:"requesterPhotoURL,omitempty" json:"requesterPhotoURL,omitempty"`
	Status            string `dynamodbav:"status" json:"status"`
	CreatedAt         string `dynamodbav:"createdAt" json:"createdAt"`
}

// Request statuses
const (
	RequestStatusPending = "pending"
)

// RelationshipSets are the four identity sets derived for one viewer from the
// raw edge collections. Every list the viewer sees is filtered through these.
type RelationshipSets struct {
	Friends         map[string]bool
	BlockedByMe     map[string]bool // users the viewer blocked
	BlockedOfMe     map[string]bool // users who blocked the viewer
	PendingOutgoing map[string]bool // targets of the viewer's pending requests
}

// Blocked reports whether a block exists in either direction between the
// viewer and userID. A block always hides the pair from each other.
func (s RelationshipSets) Blocked(userID string) bool {
	return s.BlockedByMe[userID] || s.BlockedOfMe[userID]
}

// DynamoDB table names for relationship edges
const (
	FriendsTable        = "Friends"
	BlockedUsersTable   = "BlockedUsers"
	BlockedByUsersTable = "BlockedByUsers"
	FriendRequestsTable = "FriendRequests"
)

// RequesterIndex is the GSI on FriendRequests used to find a user's own
// outgoing requests (requests are partitioned by target).
const RequesterIndex = "requesterId-index"
