package routes

import (
	"alumnilink_server/controllers"
	"alumnilink_server/services"

	"github.com/gorilla/mux"
)

// RegisterDiscoveryRoutes sets up the discovery and friend-list routes
func RegisterDiscoveryRoutes(r *mux.Router, discoveryService *services.DiscoveryService) {
	controller := controllers.NewDiscoveryController(discoveryService)

	r.HandleFunc("/api/discovery/{userId}", controller.Discover).Methods("GET")
	r.HandleFunc("/api/friends/{userId}", controller.FriendList).Methods("GET")
}
