package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"alumnilink_server/services"

	"github.com/gorilla/mux"
)

// ChatController handles conversation and message endpoints
type ChatController struct {
	ChatService *services.ChatService
}

func NewChatController(chatService *services.ChatService) *ChatController {
	return &ChatController{ChatService: chatService}
}

// GetConversations handles GET /api/conversations/{userId}
func (c *ChatController) GetConversations(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	conversations, err := c.ChatService.GetConversations(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, conversations)
}

// GetMessages handles GET /api/conversations/{conversationId}/messages
func (c *ChatController) GetMessages(w http.ResponseWriter, r *http.Request) {
	conversationID := mux.Vars(r)["conversationId"]

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "Invalid limit value")
			return
		}
		limit = parsed
	}

	messages, err := c.ChatService.GetMessages(r.Context(), conversationID, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, messages)
}

// SendMessage handles POST /api/conversations/{conversationId}/messages
func (c *ChatController) SendMessage(w http.ResponseWriter, r *http.Request) {
	conversationID := mux.Vars(r)["conversationId"]

	var payload struct {
		SenderID string `json:"senderId"`
		Text     string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.SenderID == "" || payload.Text == "" {
		writeJSONError(w, http.StatusBadRequest, "senderId and text are required")
		return
	}

	message, err := c.ChatService.SendMessage(r.Context(), conversationID, payload.SenderID, payload.Text)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, map[string]interface{}{
		"message": "Message sent successfully",
		"data":    message,
	})
}
