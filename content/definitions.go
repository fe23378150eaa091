package content

import (
	"github.com/rpupo63/construction-site-backend/models"
	"github.com/rpupo63/construction-site-backend/storage"
	"github.com/rpupo63/construction-site-backend/validation"
)

const (
	newestFirst  = "created_at DESC"
	displayOrder = "display_order ASC, created_at ASC"
)

var (
	ArticleDefinition = Definition[*models.Article, *validation.ArticleInput]{
		Name:       models.ResourceArticles,
		Label:      "Articles",
		Singular:   "article",
		Order:      newestFirst,
		Media:      &storage.Destination{Prefix: "articles", Kind: storage.Image},
		SlugColumn: "slug",
		NewInput:   func() *validation.ArticleInput { return &validation.ArticleInput{} },
	}
	ProjectDefinition = Definition[*models.Project, *validation.ProjectInput]{
		Name:     models.ResourceProjects,
		Label:    "Projects",
		Singular: "project",
		Order:    displayOrder,
		Media:    &storage.Destination{Prefix: "projects", Kind: storage.Image},
		NewInput: func() *validation.ProjectInput { return &validation.ProjectInput{} },
	}
	CaseStudyDefinition = Definition[*models.CaseStudy, *validation.CaseStudyInput]{
		Name:       models.ResourceCaseStudies,
		Label:      "Case Studies",
		Singular:   "case study",
		Order:      displayOrder,
		Media:      &storage.Destination{Prefix: "case-studies", Kind: storage.Image},
		SlugColumn: "slug",
		NewInput:   func() *validation.CaseStudyInput { return &validation.CaseStudyInput{} },
	}
	ResourceDefinition = Definition[*models.Resource, *validation.ResourceInput]{
		Name:     models.ResourceResources,
		Label:    "Resources",
		Singular: "resource",
		Order:    newestFirst,
		Media:    &storage.Destination{Prefix: "resources", Kind: storage.Document},
		NewInput: func() *validation.ResourceInput { return &validation.ResourceInput{} },
	}
	TeamMemberDefinition = Definition[*models.TeamMember, *validation.TeamMemberInput]{
		Name:       models.ResourceTeamMembers,
		Label:      "Team Members",
		Singular:   "team member",
		Order:      displayOrder,
		Media:      &storage.Destination{Prefix: "team", Kind: storage.Image},
		SlugColumn: "anchor_id",
		NewInput:   func() *validation.TeamMemberInput { return &validation.TeamMemberInput{} },
	}
	TestimonialDefinition = Definition[*models.Testimonial, *validation.TestimonialInput]{
		Name:     models.ResourceTestimonials,
		Label:    "Testimonials",
		Singular: "testimonial",
		Order:    displayOrder,
		NewInput: func() *validation.TestimonialInput { return &validation.TestimonialInput{} },
	}
	PartnerLogoDefinition = Definition[*models.PartnerLogo, *validation.PartnerLogoInput]{
		Name:     models.ResourcePartnerLogos,
		Label:    "Partner Logos",
		Singular: "partner logo",
		Order:    displayOrder,
		Media:    &storage.Destination{Prefix: "partners", Kind: storage.Image},
		NewInput: func() *validation.PartnerLogoInput { return &validation.PartnerLogoInput{} },
	}
	SocialLinkDefinition = Definition[*models.SocialLink, *validation.SocialLinkInput]{
		Name:     models.ResourceSocialLinks,
		Label:    "Social Links",
		Singular: "social link",
		Order:    displayOrder,
		NewInput: func() *validation.SocialLinkInput { return &validation.SocialLinkInput{} },
	}
)

// ManagedPrefixes are the object store prefixes written by uploads. "logos/"
// holds site branding uploaded before partner logos moved to "partners/".
var ManagedPrefixes = []string{"logos/", "partners/", "projects/", "team/", "articles/", "case-studies/", "resources/"}
