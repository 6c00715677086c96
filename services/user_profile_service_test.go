package services

import (
	"context"
	"errors"
	"testing"

	"alumnilink_server/models"
)

func TestAddAndGetUserProfile(t *testing.T) {
	db := newFakeDynamo()
	ups := &UserProfileService{Dynamo: db}
	ctx := context.Background()

	saved, err := ups.AddUserProfile(ctx, models.UserProfile{
		UserID:         "alice",
		DisplayName:    "Alice",
		Course:         "Computer Science",
		GraduationYear: "2020",
		Campus:         "North",
		Location:       &models.Location{Latitude: -23.55, Longitude: -46.63},
	})
	if err != nil {
		t.Fatalf("AddUserProfile: %v", err)
	}
	if saved.UpdatedAt == "" {
		t.Error("updatedAt not stamped")
	}

	got, err := ups.GetUserProfile(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserProfile: %v", err)
	}
	if got.DisplayName != "Alice" || got.GraduationYear != "2020" {
		t.Errorf("profile = %+v", got)
	}
	if got.Location == nil || got.Location.Latitude != -23.55 {
		t.Errorf("location = %+v", got.Location)
	}
}

func TestAddUserProfileValidation(t *testing.T) {
	ups := &UserProfileService{Dynamo: newFakeDynamo()}
	ctx := context.Background()

	if _, err := ups.AddUserProfile(ctx, models.UserProfile{DisplayName: "No ID"}); err == nil {
		t.Error("profile without userId accepted")
	}
	if _, err := ups.AddUserProfile(ctx, models.UserProfile{UserID: "x"}); err == nil {
		t.Error("profile without displayName accepted")
	}
}

func TestGetUserProfileNotFound(t *testing.T) {
	ups := &UserProfileService{Dynamo: newFakeDynamo()}

	if _, err := ups.GetUserProfile(context.Background(), "ghost"); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("got %v, want ErrProfileNotFound", err)
	}
}

func TestGetAllProfiles(t *testing.T) {
	db := newFakeDynamo()
	ups := &UserProfileService{Dynamo: db}
	ctx := context.Background()

	for _, id := range []string{"alice", "bob", "carol"} {
		if _, err := ups.AddUserProfile(ctx, models.UserProfile{UserID: id, DisplayName: id}); err != nil {
			t.Fatalf("AddUserProfile(%s): %v", id, err)
		}
	}

	profiles, err := ups.GetAllProfiles(ctx)
	if err != nil {
		t.Fatalf("GetAllProfiles: %v", err)
	}
	if len(profiles) != 3 {
		t.Fatalf("got %d profiles, want 3", len(profiles))
	}
}

func TestUpdateLocation(t *testing.T) {
	db := newFakeDynamo()
	ups := &UserProfileService{Dynamo: db}
	ctx := context.Background()

	if _, err := ups.AddUserProfile(ctx, models.UserProfile{UserID: "alice", DisplayName: "Alice"}); err != nil {
		t.Fatalf("AddUserProfile: %v", err)
	}

	if err := ups.UpdateLocation(ctx, "alice", &models.Location{Latitude: 1.5, Longitude: 2.5}); err != nil {
		t.Fatalf("UpdateLocation: %v", err)
	}
	got, err := ups.GetUserProfile(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserProfile: %v", err)
	}
	if got.Location == nil || got.Location.Latitude != 1.5 || got.Location.Longitude != 2.5 {
		t.Fatalf("location = %+v", got.Location)
	}

	// Stop sharing.
	if err := ups.UpdateLocation(ctx, "alice", nil); err != nil {
		t.Fatalf("UpdateLocation(nil): %v", err)
	}
	got, err = ups.GetUserProfile(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserProfile: %v", err)
	}
	if got.Location != nil {
		t.Errorf("location still present after clearing: %+v", got.Location)
	}
}

func TestRegisterPushToken(t *testing.T) {
	db := newFakeDynamo()
	ups := &UserProfileService{Dynamo: db}
	ctx := context.Background()

	if _, err := ups.AddUserProfile(ctx, models.UserProfile{UserID: "alice", DisplayName: "Alice"}); err != nil {
		t.Fatalf("AddUserProfile: %v", err)
	}

	if err := ups.RegisterPushToken(ctx, "alice", ""); err == nil {
		t.Error("empty push token accepted")
	}
	if err := ups.RegisterPushToken(ctx, "alice", "expo-token-123"); err != nil {
		t.Fatalf("RegisterPushToken: %v", err)
	}

	got, err := ups.GetUserProfile(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserProfile: %v", err)
	}
	if got.PushToken != "expo-token-123" {
		t.Errorf("pushToken = %q", got.PushToken)
	}
}
