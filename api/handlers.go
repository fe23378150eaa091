package api

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Dependencies, r *router) *routeHandlers {
	c := deps.Catalog
	return &routeHandlers{
		resources: []resourceHandler{
			newResourceHandler(c.Articles),
			newResourceHandler(c.Projects),
			newResourceHandler(c.CaseStudies),
			newResourceHandler(c.Resources),
			newResourceHandler(c.TeamMembers),
			newResourceHandler(c.Testimonials),
			newResourceHandler(c.PartnerLogos),
			newResourceHandler(c.SocialLinks),
		},
		public:      newPublicHandler(c, deps.Contact),
		auth:        newAuthHandler(deps.Auth, r.secureCookies),
		gallery:     newGalleryHandler(c.Gallery),
		maintenance: newMaintenanceHandler(deps.Sweeper, deps.DB, r.startupTime),
	}
}
