package services

import "sync"

// Edge collections an event can refer to.
const (
	EdgeKindFriends        = "friends"
	EdgeKindBlocked        = "blocked"
	EdgeKindBlockedBy      = "blockedBy"
	EdgeKindFriendRequests = "friendRequests"
	EdgeKindConversations  = "conversations"
)

// Event actions.
const (
	EdgeActionCreated = "created"
	EdgeActionDeleted = "deleted"
	EdgeActionUpdated = "updated"
)

// EdgeEvent notifies a subscriber that one of its owner's relationship
// collections changed. Events carry no edge payload: consumers re-derive
// their view from the latest store snapshot, because no ordering is
// guaranteed across collections.
type EdgeEvent struct {
	UserID   string `json:"userId"`
	Kind     string `json:"kind"`
	Action   string `json:"action"`
	TargetID string `json:"targetId,omitempty"`
}

// EdgeEventBus fans relationship-edge changes out to per-user subscribers.
// Workflows publish after their writes commit; the websocket layer and any
// in-process watcher subscribe.
type EdgeEventBus struct {
	mu   sync.RWMutex
	subs map[string]map[chan EdgeEvent]bool
}

func NewEdgeEventBus() *EdgeEventBus {
	return &EdgeEventBus{subs: make(map[string]map[chan EdgeEvent]bool)}
}

// Subscribe returns a channel of events for userID and a cancel func. The
// cancel func must be called when the owning context is torn down, so stale
// callbacks never fire for the wrong user.
func (b *EdgeEventBus) Subscribe(userID string) (<-chan EdgeEvent, func()) {
	ch := make(chan EdgeEvent, 16)

	b.mu.Lock()
	if b.subs[userID] == nil {
		b.subs[userID] = make(map[chan EdgeEvent]bool)
	}
	b.subs[userID][ch] = true
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[userID], ch)
			if len(b.subs[userID]) == 0 {
				delete(b.subs, userID)
			}
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers an event to every subscriber of event.UserID without
// blocking; a subscriber that has fallen behind misses the event and catches
// up on its next recompute.
func (b *EdgeEventBus) Publish(event EdgeEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subs[event.UserID] {
		select {
		case ch <- event:
		default:
		}
	}
}
