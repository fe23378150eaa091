package database

import (
	"context"

	"github.com/rpupo63/construction-site-backend/errs"
	"github.com/rpupo63/construction-site-backend/models"
	"gorm.io/gorm"
)

type Database struct {
	db              *gorm.DB
	articleRepo     *Repo[*models.Article]
	projectRepo     *Repo[*models.Project]
	caseStudyRepo   *Repo[*models.CaseStudy]
	resourceRepo    *Repo[*models.Resource]
	teamMemberRepo  *Repo[*models.TeamMember]
	testimonialRepo *Repo[*models.Testimonial]
	partnerLogoRepo *Repo[*models.PartnerLogo]
	socialLinkRepo  *Repo[*models.SocialLink]
	projectImages   *ProjectImageRepo
	userRepo        *UserRepo
	contactRepo     *ContactRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:              db,
		articleRepo:     NewRepo(db, "article", func() *models.Article { return &models.Article{} }),
		projectRepo:     NewRepo(db, "project", func() *models.Project { return &models.Project{} }),
		caseStudyRepo:   NewRepo(db, "case study", func() *models.CaseStudy { return &models.CaseStudy{} }),
		resourceRepo:    NewRepo(db, "resource", func() *models.Resource { return &models.Resource{} }),
		teamMemberRepo:  NewRepo(db, "team member", func() *models.TeamMember { return &models.TeamMember{} }),
		testimonialRepo: NewRepo(db, "testimonial", func() *models.Testimonial { return &models.Testimonial{} }),
		partnerLogoRepo: NewRepo(db, "partner logo", func() *models.PartnerLogo { return &models.PartnerLogo{} }),
		socialLinkRepo:  NewRepo(db, "social link", func() *models.SocialLink { return &models.SocialLink{} }),
		projectImages:   NewProjectImageRepo(db),
		userRepo:        NewUserRepo(db),
		contactRepo:     NewContactRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) Articles() *Repo[*models.Article] {
	return d.articleRepo
}

func (d Database) Projects() *Repo[*models.Project] {
	return d.projectRepo
}

func (d Database) CaseStudies() *Repo[*models.CaseStudy] {
	return d.caseStudyRepo
}

func (d Database) Resources() *Repo[*models.Resource] {
	return d.resourceRepo
}

func (d Database) TeamMembers() *Repo[*models.TeamMember] {
	return d.teamMemberRepo
}

func (d Database) Testimonials() *Repo[*models.Testimonial] {
	return d.testimonialRepo
}

func (d Database) PartnerLogos() *Repo[*models.PartnerLogo] {
	return d.partnerLogoRepo
}

func (d Database) SocialLinks() *Repo[*models.SocialLink] {
	return d.socialLinkRepo
}

func (d Database) ProjectImages() *ProjectImageRepo {
	return d.projectImages
}

func (d Database) Users() *UserRepo {
	return d.userRepo
}

func (d Database) Contacts() *ContactRepo {
	return d.contactRepo
}

// Migrate creates or alters every table to match the models.
func (d Database) Migrate() error {
	if err := d.db.AutoMigrate(models.All()...); err != nil {
		return errs.NewDatabaseError("migrate", "schema", err)
	}
	return nil
}

// Ping checks the connection with a trivial query.
func (d Database) Ping(ctx context.Context) error {
	var result int
	if err := d.db.WithContext(ctx).Raw("SELECT 1").Scan(&result).Error; err != nil {
		return errs.NewDatabaseError("ping", "database", err)
	}
	return nil
}

// MediaColumn names a table column holding an object store URL.
type MediaColumn struct {
	Table  string
	Column string
}

// MediaColumns lists every column that may reference a stored file.
var MediaColumns = []MediaColumn{
	{"articles", "image_url"},
	{"projects", "image_url"},
	{"project_images", "image_url"},
	{"case_studies", "image_url"},
	{"resources", "file_url"},
	{"team_members", "headshot_url"},
	{"partner_logos", "image_url"},
}

// ReferencedMediaURLs returns the set of every file URL stored in any table.
func (d Database) ReferencedMediaURLs(ctx context.Context) (map[string]struct{}, error) {
	refs := make(map[string]struct{})
	for _, mc := range MediaColumns {
		var urls []string
		err := d.db.WithContext(ctx).Table(mc.Table).Where(mc.Column+" <> ''").Pluck(mc.Column, &urls).Error
		if err != nil {
			return nil, errs.NewDatabaseError("list media", mc.Table, err)
		}
		for _, u := range urls {
			refs[u] = struct{}{}
		}
	}
	return refs, nil
}
