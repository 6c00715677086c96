package controllers

import (
	"net/http"
	"strconv"

	"alumnilink_server/services"

	"github.com/gorilla/mux"
)

// defaultSliderValue mirrors the app's initial distance slider position.
const defaultSliderValue = 200

// DiscoveryController serves the discovery candidates and the filtered
// friend list.
type DiscoveryController struct {
	DiscoveryService *services.DiscoveryService
}

func NewDiscoveryController(discoveryService *services.DiscoveryService) *DiscoveryController {
	return &DiscoveryController{DiscoveryService: discoveryService}
}

// Discover handles GET /api/discovery/{userId}. Query params: maxDistance
// (slider value, values past 500 mean unlimited), search, graduationYear.
func (c *DiscoveryController) Discover(w http.ResponseWriter, r *http.Request) {
	viewerID := mux.Vars(r)["userId"]
	query := r.URL.Query()

	sliderValue := float64(defaultSliderValue)
	if raw := query.Get("maxDistance"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "Invalid maxDistance value")
			return
		}
		sliderValue = parsed
	}

	filter := services.DiscoveryFilter{
		Distance:       services.DistanceLimitFromSlider(sliderValue),
		Search:         query.Get("search"),
		GraduationYear: query.Get("graduationYear"),
	}

	results, err := c.DiscoveryService.Discover(r.Context(), viewerID, filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, results)
}

// FriendList handles GET /api/friends/{userId}
func (c *DiscoveryController) FriendList(w http.ResponseWriter, r *http.Request) {
	viewerID := mux.Vars(r)["userId"]

	friends, err := c.DiscoveryService.FriendList(r.Context(), viewerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, friends)
}
