package services

import (
	"context"
	"strings"

	"alumnilink_server/models"
	"alumnilink_server/utils"
)

// maxBoundedRadiusKm is the largest radius the distance slider expresses.
// The client slider runs 10..501; any value past 500 means "unlimited".
const maxBoundedRadiusKm = 500

// DistanceLimit is an explicit bounded/unbounded radius. The app's slider
// sentinel (501) is translated at the boundary by DistanceLimitFromSlider and
// never leaks into the filtering logic.
type DistanceLimit struct {
	Unlimited bool
	Km        float64
}

// DistanceLimitFromSlider maps a raw slider value onto a DistanceLimit.
func DistanceLimitFromSlider(value float64) DistanceLimit {
	if value > maxBoundedRadiusKm {
		return DistanceLimit{Unlimited: true}
	}
	return DistanceLimit{Km: value}
}

// DiscoveryFilter carries the viewer's active discovery filters.
type DiscoveryFilter struct {
	Distance       DistanceLimit
	Search         string // case-insensitive substring over name/course/campus
	GraduationYear string // exact match when non-empty
}

// DiscoveryResult is a candidate profile plus its distance from the viewer,
// when a distance was evaluated.
type DiscoveryResult struct {
	models.UserProfile
	DistanceKm *float64 `json:"distanceKm,omitempty"`
}

// DiscoveryService produces the filtered candidate list for the discovery
// screen and the filtered friend list for chat. Both are re-derived from a
// fresh snapshot of profiles and relationship sets on every call, so a block
// or unblock is reflected the next time any list renders.
type DiscoveryService struct {
	Profiles      *UserProfileService
	Relationships *RelationshipService
}

// Discover returns the candidates visible to viewerID under filter, in
// catalog order.
func (ds *DiscoveryService) Discover(ctx context.Context, viewerID string, filter DiscoveryFilter) ([]DiscoveryResult, error) {
	viewer, err := ds.Profiles.GetUserProfile(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	sets, err := ds.Relationships.GetRelationshipSets(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	catalog, err := ds.Profiles.GetAllProfiles(ctx)
	if err != nil {
		return nil, err
	}

	return filterProfiles(viewerID, viewer.Location, catalog, sets, filter), nil
}

// FriendList returns the viewer's friends with blocked pairs removed. By
// invariant a friend is never blocked, but the filter is applied anyway so a
// corrupt store still hides blocked users.
func (ds *DiscoveryService) FriendList(ctx context.Context, viewerID string) ([]models.FriendEdge, error) {
	sets, err := ds.Relationships.GetRelationshipSets(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	edges, err := ds.Relationships.ListFriends(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	visible := make([]models.FriendEdge, 0, len(edges))
	for _, edge := range edges {
		if sets.Blocked(edge.FriendID) {
			continue
		}
		visible = append(visible, edge)
	}
	return visible, nil
}

// filterProfiles applies the discovery visibility rules to a catalog
// snapshot. Pure: no I/O, no mutation of its inputs.
//
// Rules, in order: the viewer is excluded; any blocked pair is excluded; with
// a bounded radius, candidates without a location or beyond the radius are
// excluded, and a viewer without a location sees nobody; with an unlimited
// radius distance is not evaluated at all; the text and graduation-year
// filters then apply as additional AND conditions.
func filterProfiles(viewerID string, viewerLocation *models.Location, catalog []models.UserProfile, sets models.RelationshipSets, filter DiscoveryFilter) []DiscoveryResult {
	results := make([]DiscoveryResult, 0, len(catalog))

	if !filter.Distance.Unlimited && viewerLocation == nil {
		return results
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))

	for _, candidate := range catalog {
		if candidate.UserID == viewerID {
			continue
		}
		if sets.Blocked(candidate.UserID) {
			continue
		}

		var distanceKm *float64
		if !filter.Distance.Unlimited {
			if candidate.Location == nil {
				continue
			}
			d := utils.Haversine(viewerLocation.Latitude, viewerLocation.Longitude,
				candidate.Location.Latitude, candidate.Location.Longitude)
			if d > filter.Distance.Km {
				continue
			}
			distanceKm = &d
		}

		if filter.GraduationYear != "" && candidate.GraduationYear != filter.GraduationYear {
			continue
		}
		if search != "" && !matchesSearch(candidate, search) {
			continue
		}

		results = append(results, DiscoveryResult{UserProfile: candidate, DistanceKm: distanceKm})
	}
	return results
}

func matchesSearch(profile models.UserProfile, search string) bool {
	return strings.Contains(strings.ToLower(profile.DisplayName), search) ||
		strings.Contains(strings.ToLower(profile.Course), search) ||
		strings.Contains(strings.ToLower(profile.Campus), search)
}
