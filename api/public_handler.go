package api

import (
	"net/http"

	"github.com/rpupo63/construction-site-backend/content"
	"github.com/rpupo63/construction-site-backend/models"
	"github.com/rpupo63/construction-site-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// homeArticleCount is how many recent articles the home page shows.
const homeArticleCount = 3

type publicHandler struct {
	responder Responder
	logger    zerolog.Logger
	catalog   *content.Catalog
	contact   *services.ContactService
}

func newPublicHandler(catalog *content.Catalog, contact *services.ContactService) publicHandler {
	logger := log.With().Str("handlerName", "publicHandler").Logger()
	return publicHandler{
		responder: NewResponder(logger),
		logger:    logger,
		catalog:   catalog,
		contact:   contact,
	}
}

// getHome returns everything the home page renders in one response
// @Summary Home page content
// @Tags Public
// @Produce json
// @Success 200 {object} HomeResponse
// @Router /api/public/home [get]
func (h publicHandler) getHome() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var home HomeResponse
		g, ctx := errgroup.WithContext(r.Context())

		g.Go(func() error {
			projects, err := h.catalog.Projects.ListPublic(ctx)
			if err != nil {
				return err
			}
			home.FeaturedProjects = []*models.Project{}
			for _, p := range projects {
				if p.Featured {
					home.FeaturedProjects = append(home.FeaturedProjects, p)
				}
			}
			return nil
		})
		g.Go(func() error {
			articles, err := h.catalog.Articles.ListPublic(ctx)
			if len(articles) > homeArticleCount {
				articles = articles[:homeArticleCount]
			}
			home.LatestArticles = articles
			return err
		})
		g.Go(func() (err error) {
			home.Testimonials, err = h.catalog.Testimonials.ListPublic(ctx)
			return err
		})
		g.Go(func() (err error) {
			home.PartnerLogos, err = h.catalog.PartnerLogos.ListPublic(ctx)
			return err
		})
		g.Go(func() (err error) {
			home.SocialLinks, err = h.catalog.SocialLinks.ListPublic(ctx)
			return err
		})

		if err := g.Wait(); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, home)
	}
}

// getProject returns a published project with its gallery in display order
// @Summary Project detail
// @Tags Public
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Success 200 {object} models.Project
// @Failure 404 {object} ErrorResponse "Not Found - unknown or unpublished project"
// @Router /api/public/projects/{id} [get]
func (h publicHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		project, err := h.catalog.PublicProject(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, project)
	}
}

// submitContact stores a contact form submission and notifies staff
// @Summary Submit contact form
// @Tags Public
// @Accept json
// @Produce json
// @Success 201 {object} ContactResponse
// @Failure 422 {object} ErrorResponse "Validation failed"
// @Router /api/public/contact [post]
func (h publicHandler) submitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := decodeJSON(w, r, &body); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		submission, err := h.contact.Submit(r.Context(), body)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, ContactResponse{ID: submission.ID.String(), Status: "received"})
	}
}
