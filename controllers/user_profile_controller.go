package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"alumnilink_server/models"
	"alumnilink_server/services"

	"github.com/gorilla/mux"
)

// UserProfileController handles requests related to user profiles
type UserProfileController struct {
	UserProfileService *services.UserProfileService
}

// NewUserProfileController creates a new instance of UserProfileController
func NewUserProfileController(userProfileService *services.UserProfileService) *UserProfileController {
	return &UserProfileController{UserProfileService: userProfileService}
}

// UpsertUserProfile creates or replaces a profile
func (c *UserProfileController) UpsertUserProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		log.Printf("Failed to decode profile payload: %v", err)
		writeJSONError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	savedProfile, err := c.UserProfileService.AddUserProfile(r.Context(), profile)
	if err != nil {
		log.Printf("Failed to save profile: %v", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, map[string]interface{}{
		"message": "Profile saved successfully",
		"profile": savedProfile,
	})
}

// GetUserProfileByID handles fetching a user profile by ID
func (c *UserProfileController) GetUserProfileByID(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	profile, err := c.UserProfileService.GetUserProfile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, profile)
}

// UpdateLocation overwrites the caller's shared location; a null location in
// the payload stops sharing.
func (c *UserProfileController) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var payload struct {
		Location *models.Location `json:"location"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := c.UserProfileService.UpdateLocation(r.Context(), userID, payload.Location); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, map[string]string{"message": "Location updated successfully"})
}

// RegisterPushToken stores the device push token for the user
func (c *UserProfileController) RegisterPushToken(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Token == "" {
		writeJSONError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := c.UserProfileService.RegisterPushToken(r.Context(), userID, payload.Token); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, map[string]string{"message": "Push token registered successfully"})
}
