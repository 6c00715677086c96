package models

// Location holds the coordinates a user chose to share. A profile without a
// location (nil pointer) is not sharing one.
type Location struct {
	Latitude  float64 `dynamodbav:"latitude" json:"latitude"`
	Longitude float64 `dynamodbav:"longitude" json:"longitude"`
}

// UserProfile defines the structure for alumni profiles
type UserProfile struct {
	UserID         string    `dynamodbav:"userId" json:"userId"`
	DisplayName    string    `dynamodbav:"displayName" json:"displayName"`
	PhotoURL       string    `dynamodbav:"photoURL,omitempty" json:"photoURL,omitempty"`
	Course         string    `dynamodbav:"course,omitempty" json:"course,omitempty"`
	GraduationYear string    `dynamodbav:"graduationYear,omitempty" json:"graduationYear,omitempty"`
	Campus         string    `dynamodbav:"campus,omitempty" json:"campus,omitempty"`
	University     string    `dynamodbav:"university,omitempty" json:"university,omitempty"`
	Location       *Location `dynamodbav:"location,omitempty" json:"location,omitempty"`
	PushToken      string    `dynamodbav:"pushToken,omitempty" json:"pushToken,omitempty"`
	UpdatedAt      string    `dynamodbav:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// UserProfilesTable is the DynamoDB table name for user profiles
const UserProfilesTable = "UserProfiles"
