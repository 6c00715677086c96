package services

import "errors"

// Workflow errors surfaced to callers before any write happens. Controllers
// map these onto HTTP statuses; everything else is treated as a transient
// store failure.
var (
	// ErrItemNotFound is returned by the store layer for a missing key.
	ErrItemNotFound = errors.New("item not found")

	// ErrProfileNotFound means a referenced user profile does not exist.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrRequesterNotFound means the requester's profile vanished between
	// sending a request and its acceptance. Acceptance commits nothing.
	ErrRequesterNotFound = errors.New("requester profile not found")

	// ErrRequestNotFound means the friend request being acted on no longer
	// exists.
	ErrRequestNotFound = errors.New("friend request not found")

	// ErrAlreadyFriends rejects a friend request between existing friends.
	ErrAlreadyFriends = errors.New("users are already friends")

	// ErrAlreadyPending rejects a duplicate request for the same ordered pair.
	ErrAlreadyPending = errors.New("a pending friend request already exists")

	// ErrIncompleteTargetInfo rejects a block when the target's denormalized
	// name or photo is unavailable.
	ErrIncompleteTargetInfo = errors.New("target user info is incomplete")
)
