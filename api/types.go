package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/construction-site-backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	resources   []resourceHandler
	public      publicHandler
	auth        authHandler
	gallery     galleryHandler
	maintenance maintenanceHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string            `json:"error" example:"Internal Server Error"`
	Status  string            `json:"status" example:"error"`
	Field   string            `json:"field,omitempty" example:"title"`
	Details string            `json:"details,omitempty" example:"Additional error details"`
	Fields  map[string]string `json:"fields,omitempty"`
	Cause   string            `json:"cause,omitempty" example:"Underlying error cause"`
}

// ListResponse wraps the rows of one resource type
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// HomeResponse is everything the public home page renders
type HomeResponse struct {
	FeaturedProjects []*models.Project     `json:"featured_projects"`
	LatestArticles   []*models.Article     `json:"latest_articles"`
	Testimonials     []*models.Testimonial `json:"testimonials"`
	PartnerLogos     []*models.PartnerLogo `json:"partner_logos"`
	SocialLinks      []*models.SocialLink  `json:"social_links"`
}

type ContactResponse struct {
	ID     string `json:"id"`
	Status string `json:"status" example:"received"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SessionResponse struct {
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ReorderRequest lists a project's image ids in their new order
type ReorderRequest struct {
	ImageIDs []uuid.UUID `json:"image_ids"`
}

type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Uptime   string `json:"uptime"`
	Database string `json:"database"`
}
