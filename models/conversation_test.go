package models

import "testing"

func TestConversationID(t *testing.T) {
	tests := []struct {
		name  string
		userA string
		userB string
		want  string
	}{
		{"already ordered", "alice", "bob", "alice_bob"},
		{"reversed", "bob", "alice", "alice_bob"},
		{"numeric ids", "user42", "user7", "user42_user7"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ConversationID(tc.userA, tc.userB); got != tc.want {
				t.Errorf("ConversationID(%q, %q) = %q, want %q", tc.userA, tc.userB, got, tc.want)
			}
		})
	}
}

func TestConversationIDSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"alice", "bob"},
		{"u_1", "u_2"},
		{"zed", "amy"},
	}
	for _, pair := range pairs {
		forward := ConversationID(pair[0], pair[1])
		reverse := ConversationID(pair[1], pair[0])
		if forward != reverse {
			t.Errorf("ConversationID not symmetric for %v: %q vs %q", pair, forward, reverse)
		}
	}
}
