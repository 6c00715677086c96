package routes

import (
	"alumnilink_server/controllers"
	"alumnilink_server/services"

	"github.com/gorilla/mux"
)

// RegisterFriendRequestRoutes sets up routes for the request lifecycle under /api/requests
func RegisterFriendRequestRoutes(r *mux.Router, friendRequestService *services.FriendRequestService) {
	controller := controllers.NewFriendRequestController(friendRequestService)

	requestRouter := r.PathPrefix("/api/requests").Subrouter()
	requestRouter.HandleFunc("", controller.SendRequest).Methods("POST")
	requestRouter.HandleFunc("/{userId}", controller.ListRequests).Methods("GET")
	requestRouter.HandleFunc("/{userId}/accept", controller.AcceptRequest).Methods("POST")
	requestRouter.HandleFunc("/{userId}/reject", controller.RejectRequest).Methods("POST")
}
