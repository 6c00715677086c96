package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"alumnilink_server/services"

	"github.com/gorilla/mux"
)

// BlockController handles the block/unblock endpoints
type BlockController struct {
	BlockService *services.BlockService
}

func NewBlockController(blockService *services.BlockService) *BlockController {
	return &BlockController{BlockService: blockService}
}

// BlockUser handles POST /api/blocks
func (c *BlockController) BlockUser(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		BlockerID string               `json:"blockerId"`
		Target    services.BlockTarget `json:"target"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.BlockerID == "" {
		writeJSONError(w, http.StatusBadRequest, "blockerId is required")
		return
	}

	if err := c.BlockService.BlockUser(r.Context(), payload.BlockerID, payload.Target); err != nil {
		log.Printf("❌ Failed to block %s -> %s: %v", payload.BlockerID, payload.Target.UserID, err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, map[string]string{"message": "User blocked successfully"})
}

// UnblockUser handles DELETE /api/blocks/{ownerId}/{targetId}
func (c *BlockController) UnblockUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ownerID := vars["ownerId"]
	targetID := vars["targetId"]

	if err := c.BlockService.UnblockUser(r.Context(), ownerID, targetID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, map[string]string{"message": "User unblocked successfully"})
}

// ListBlockedUsers handles GET /api/blocks/{ownerId}
func (c *BlockController) ListBlockedUsers(w http.ResponseWriter, r *http.Request) {
	ownerID := mux.Vars(r)["ownerId"]

	blocked, err := c.BlockService.ListBlockedUsers(r.Context(), ownerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, blocked)
}
