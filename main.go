package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"alumnilink_server/routes"
	"alumnilink_server/services"
	"alumnilink_server/socket"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Event bus carries relationship/conversation updates to subscribers
	eventBus := services.NewEdgeEventBus()

	// Initialize Services
	userProfileService := &services.UserProfileService{Dynamo: dynamoService}
	relationshipService := &services.RelationshipService{Dynamo: dynamoService}
	discoveryService := &services.DiscoveryService{
		Profiles:      userProfileService,
		Relationships: relationshipService,
	}
	friendRequestService := &services.FriendRequestService{Dynamo: dynamoService, Events: eventBus}
	blockService := &services.BlockService{
		Dynamo:        dynamoService,
		Relationships: relationshipService,
		Events:        eventBus,
	}
	chatService := &services.ChatService{
		Dynamo:    dynamoService,
		Discovery: discoveryService,
		Events:    eventBus,
	}

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Using server port: %s\n", port)

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to AlumniLink")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods("GET")

	// Register routes
	routes.RegisterUserProfileRoutes(r, userProfileService)
	routes.RegisterDiscoveryRoutes(r, discoveryService)
	routes.RegisterFriendRequestRoutes(r, friendRequestService)
	routes.RegisterBlockRoutes(r, blockService)
	routes.RegisterChatRoutes(r, chatService)
	routes.RegisterS3Routes(r)

	// Websocket endpoint for live relationship/conversation updates
	hub := socket.NewHub(eventBus)
	r.HandleFunc("/ws/{userId}", socket.ServeWS(hub)).Methods("GET")

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
