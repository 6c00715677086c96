package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"alumnilink_server/services"

	"github.com/gorilla/mux"
)

// FriendRequestController handles the friend-request lifecycle endpoints
type FriendRequestController struct {
	FriendRequestService *services.FriendRequestService
}

func NewFriendRequestController(friendRequestService *services.FriendRequestService) *FriendRequestController {
	return &FriendRequestController{FriendRequestService: friendRequestService}
}

// SendRequest handles POST /api/requests
func (c *FriendRequestController) SendRequest(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		RequesterID string `json:"requesterId"`
		TargetID    string `json:"targetId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.RequesterID == "" || payload.TargetID == "" {
		writeJSONError(w, http.StatusBadRequest, "requesterId and targetId are required")
		return
	}

	request, err := c.FriendRequestService.SendRequest(r.Context(), payload.RequesterID, payload.TargetID)
	if err != nil {
		log.Printf("❌ Failed to send friend request %s -> %s: %v", payload.RequesterID, payload.TargetID, err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, map[string]interface{}{
		"message": "Friend request sent successfully",
		"request": request,
	})
}

// ListRequests handles GET /api/requests/{userId} — the pending requests
// waiting on the user.
func (c *FriendRequestController) ListRequests(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	requests, err := c.FriendRequestService.ListRequests(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, requests)
}

// AcceptRequest handles POST /api/requests/{userId}/accept
func (c *FriendRequestController) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	targetID := mux.Vars(r)["userId"]

	var payload struct {
		RequesterID string `json:"requesterId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.RequesterID == "" {
		writeJSONError(w, http.StatusBadRequest, "requesterId is required")
		return
	}

	conversation, err := c.FriendRequestService.AcceptRequest(r.Context(), targetID, payload.RequesterID)
	if err != nil {
		log.Printf("❌ Failed to accept friend request %s -> %s: %v", payload.RequesterID, targetID, err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, map[string]interface{}{
		"message":      "Friend request accepted",
		"conversation": conversation,
	})
}

// RejectRequest handles POST /api/requests/{userId}/reject
func (c *FriendRequestController) RejectRequest(w http.ResponseWriter, r *http.Request) {
	targetID := mux.Vars(r)["userId"]

	var payload struct {
		RequesterID string `json:"requesterId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.RequesterID == "" {
		writeJSONError(w, http.StatusBadRequest, "requesterId is required")
		return
	}

	if err := c.FriendRequestService.RejectRequest(r.Context(), targetID, payload.RequesterID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, map[string]string{"message": "Friend request rejected"})
}
