package content

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/construction-site-backend/database"
	"github.com/rpupo63/construction-site-backend/models"
	"github.com/rpupo63/construction-site-backend/validation"
	"gorm.io/gorm"
)

// Catalog holds one service per resource type plus the project gallery.
type Catalog struct {
	Articles     *Service[*models.Article, *validation.ArticleInput]
	Projects     *Service[*models.Project, *validation.ProjectInput]
	CaseStudies  *Service[*models.CaseStudy, *validation.CaseStudyInput]
	Resources    *Service[*models.Resource, *validation.ResourceInput]
	TeamMembers  *Service[*models.TeamMember, *validation.TeamMemberInput]
	Testimonials *Service[*models.Testimonial, *validation.TestimonialInput]
	PartnerLogos *Service[*models.PartnerLogo, *validation.PartnerLogoInput]
	SocialLinks  *Service[*models.SocialLink, *validation.SocialLinkInput]
	Gallery      *Gallery
}

func NewCatalog(db database.Database, deps Deps) *Catalog {
	c := &Catalog{
		Articles:     NewService(ArticleDefinition, db.Articles(), deps),
		Projects:     NewService(ProjectDefinition, db.Projects(), deps),
		CaseStudies:  NewService(CaseStudyDefinition, db.CaseStudies(), deps),
		Resources:    NewService(ResourceDefinition, db.Resources(), deps),
		TeamMembers:  NewService(TeamMemberDefinition, db.TeamMembers(), deps),
		Testimonials: NewService(TestimonialDefinition, db.Testimonials(), deps),
		PartnerLogos: NewService(PartnerLogoDefinition, db.PartnerLogos(), deps),
		SocialLinks:  NewService(SocialLinkDefinition, db.SocialLinks(), deps),
		Gallery:      NewGallery(db.Projects(), db.ProjectImages(), deps.Files),
	}

	// project_images rows are not cascaded by the database
	images := db.ProjectImages()
	c.Projects.cascade = &cascade{
		rows: func(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
			return images.WithTx(tx).DeleteByProject(ctx, id)
		},
		childMedia: func(ctx context.Context, id uuid.UUID) ([]string, error) {
			list, err := images.ListByProject(ctx, id)
			if err != nil {
				return nil, err
			}
			urls := make([]string, 0, len(list))
			for _, img := range list {
				urls = append(urls, img.ImageURL)
			}
			return urls, nil
		},
	}
	return c
}

// PublicProject returns a published project with its gallery in order.
func (c *Catalog) PublicProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	project, err := c.Projects.GetPublic(ctx, id)
	if err != nil {
		return nil, err
	}
	images, err := c.Gallery.List(ctx, id)
	if err != nil {
		return nil, err
	}
	project.Images = images
	return project, nil
}
