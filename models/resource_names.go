package models

// Resource type names, as used in URLs, cache keys and validation lookups.
const (
	ResourceArticles     = "articles"
	ResourceProjects     = "projects"
	ResourceCaseStudies  = "case_studies"
	ResourceResources    = "resources"
	ResourceTeamMembers  = "team_members"
	ResourceTestimonials = "testimonials"
	ResourcePartnerLogos = "partner_logos"
	ResourceSocialLinks  = "social_links"
)

// ResourceNames lists every admin-managed resource type in menu order.
var ResourceNames = []string{
	ResourceProjects,
	ResourceCaseStudies,
	ResourceArticles,
	ResourceResources,
	ResourceTeamMembers,
	ResourceTestimonials,
	ResourcePartnerLogos,
	ResourceSocialLinks,
}
