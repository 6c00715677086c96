package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"alumnilink_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type UserProfileService struct {
	Dynamo DynamoAPI
}

// AddUserProfile creates or replaces a user profile wholesale. Profile
// edits from the app always send the full document.
func (ups *UserProfileService) AddUserProfile(ctx context.Context, profile models.UserProfile) (*models.UserProfile, error) {
	if profile.UserID == "" || profile.DisplayName == "" {
		return nil, fmt.Errorf("userId and displayName are required")
	}
	profile.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	if err := ups.Dynamo.PutItem(ctx, models.UserProfilesTable, profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetUserProfile retrieves a user profile by ID
func (ups *UserProfileService) GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	item, err := ups.Dynamo.GetItem(ctx, models.UserProfilesTable, stringKey(map[string]string{"userId": userID}))
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

// GetAllProfiles returns a one-shot snapshot of the whole catalog, used by
// discovery. The store does not guarantee any particular order.
func (ups *UserProfileService) GetAllProfiles(ctx context.Context) ([]models.UserProfile, error) {
	var profiles []models.UserProfile
	if err := ups.Dynamo.ScanWithFilter(ctx, models.UserProfilesTable, nil, nil, &profiles); err != nil {
		return nil, fmt.Errorf("failed to scan profiles: %w", err)
	}
	return profiles, nil
}

// UpdateLocation overwrites the user's location sample wholesale; there is no
// location history. A nil location stops sharing.
func (ups *UserProfileService) UpdateLocation(ctx context.Context, userID string, location *models.Location) error {
	key := stringKey(map[string]string{"userId": userID})
	names := map[string]string{"#location": "location"}

	if location == nil {
		_, err := ups.Dynamo.UpdateItem(ctx, models.UserProfilesTable, "REMOVE #location", key, nil, names)
		if err != nil {
			return fmt.Errorf("failed to clear location for %s: %w", userID, err)
		}
		log.Printf("Location cleared for user %s", userID)
		return nil
	}

	locAttr, err := attributevalue.Marshal(location)
	if err != nil {
		return fmt.Errorf("failed to marshal location: %w", err)
	}
	values := map[string]types.AttributeValue{":location": locAttr}
	if _, err := ups.Dynamo.UpdateItem(ctx, models.UserProfilesTable, "SET #location = :location", key, values, names); err != nil {
		return fmt.Errorf("failed to update location for %s: %w", userID, err)
	}
	return nil
}

// RegisterPushToken stores the device push token on the profile. Delivery of
// pushes is handled outside this service.
func (ups *UserProfileService) RegisterPushToken(ctx context.Context, userID, token string) error {
	if token == "" {
		return fmt.Errorf("push token is required")
	}
	key := stringKey(map[string]string{"userId": userID})
	values := map[string]types.AttributeValue{":token": &types.AttributeValueMemberS{Value: token}}
	names := map[string]string{"#pushToken": "pushToken"}

	if _, err := ups.Dynamo.UpdateItem(ctx, models.UserProfilesTable, "SET #pushToken = :token", key, values, names); err != nil {
		return fmt.Errorf("failed to register push token for %s: %w", userID, err)
	}
	return nil
}
