package routes

import (
	"alumnilink_server/controllers"
	"alumnilink_server/services"

	"github.com/gorilla/mux"
)

// RegisterChatRoutes sets up routes for conversations under /api/conversations
func RegisterChatRoutes(r *mux.Router, chatService *services.ChatService) {
	controller := controllers.NewChatController(chatService)

	chatRouter := r.PathPrefix("/api/conversations").Subrouter()
	chatRouter.HandleFunc("/{userId}", controller.GetConversations).Methods("GET")
	chatRouter.HandleFunc("/{conversationId}/messages", controller.GetMessages).Methods("GET")
	chatRouter.HandleFunc("/{conversationId}/messages", controller.SendMessage).Methods("POST")
}
