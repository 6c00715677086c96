package routes

import (
	"alumnilink_server/controllers"
	"alumnilink_server/services"

	"github.com/gorilla/mux"
)

// RegisterBlockRoutes sets up routes for blocking operations under /api/blocks
func RegisterBlockRoutes(r *mux.Router, blockService *services.BlockService) {
	controller := controllers.NewBlockController(blockService)

	blockRouter := r.PathPrefix("/api/blocks").Subrouter()
	blockRouter.HandleFunc("", controller.BlockUser).Methods("POST")
	blockRouter.HandleFunc("/{ownerId}", controller.ListBlockedUsers).Methods("GET")
	blockRouter.HandleFunc("/{ownerId}/{targetId}", controller.UnblockUser).Methods("DELETE")
}
