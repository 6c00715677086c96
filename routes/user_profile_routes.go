package routes

import (
	"alumnilink_server/controllers"
	"alumnilink_server/services"

	"github.com/gorilla/mux"
)

// RegisterUserProfileRoutes sets up routes for profile operations under /api/profiles
func RegisterUserProfileRoutes(r *mux.Router, userProfileService *services.UserProfileService) {
	controller := controllers.NewUserProfileController(userProfileService)

	profileRouter := r.PathPrefix("/api/profiles").Subrouter()
	profileRouter.HandleFunc("", controller.UpsertUserProfile).Methods("POST")
	profileRouter.HandleFunc("/{userId}", controller.GetUserProfileByID).Methods("GET")
	profileRouter.HandleFunc("/{userId}/location", controller.UpdateLocation).Methods("PATCH")
	profileRouter.HandleFunc("/{userId}/pushToken", controller.RegisterPushToken).Methods("POST")
}
