package validation

import (
	"github.com/rpupo63/construction-site-backend/models"
	"gorm.io/datatypes"
)

// Each input struct is the editable shape of one resource type. The same
// struct is decoded from JSON bodies and admin forms; Apply copies it onto a
// row and Load fills it from one.

type ArticleInput struct {
	Title           string `json:"title" validate:"required,min=3,max=200"`
	Slug            string `json:"slug" validate:"omitempty,max=200,slug"`
	Excerpt         string `json:"excerpt" validate:"required,min=50,max=500"`
	Content         string `json:"content" validate:"required,min=20"`
	Category        string `json:"category" validate:"required,enum=article_category"`
	Author          string `json:"author" validate:"omitempty,max=100"`
	ImageURL        string `json:"image_url" validate:"omitempty,url"`
	ReadTimeMinutes int    `json:"read_time_minutes" validate:"gte=0,lte=120"`
	Published       bool   `json:"published"`
}

func (in *ArticleInput) Apply(a *models.Article) {
	a.Title = in.Title
	a.Slug = in.Slug
	a.Excerpt = in.Excerpt
	a.Content = in.Content
	a.Category = in.Category
	a.Author = in.Author
	a.ImageURL = in.ImageURL
	a.ReadTimeMinutes = in.ReadTimeMinutes
	a.Published = in.Published
}

func (in *ArticleInput) Load(a *models.Article) {
	*in = ArticleInput{
		Title:           a.Title,
		Slug:            a.Slug,
		Excerpt:         a.Excerpt,
		Content:         a.Content,
		Category:        a.Category,
		Author:          a.Author,
		ImageURL:        a.ImageURL,
		ReadTimeMinutes: a.ReadTimeMinutes,
		Published:       a.Published,
	}
}

type ProjectInput struct {
	Title          string   `json:"title" validate:"required,min=3,max=200"`
	Description    string   `json:"description" validate:"required,min=20"`
	Location       string   `json:"location" validate:"omitempty,max=200"`
	Industry       string   `json:"industry" validate:"required,enum=industry"`
	ClientName     string   `json:"client_name" validate:"omitempty,max=200"`
	SquareFootage  int      `json:"square_footage" validate:"gte=0"`
	CompletionYear int      `json:"completion_year" validate:"omitempty,gte=1900,lte=2100"`
	Services       []string `json:"services" validate:"max=20,dive,max=100"`
	ImageURL       string   `json:"image_url" validate:"omitempty,url"`
	Featured       bool     `json:"featured"`
	DisplayOrder   int      `json:"display_order" validate:"gte=0"`
	Published      bool     `json:"published"`
}

func (in *ProjectInput) Apply(p *models.Project) {
	p.Title = in.Title
	p.Description = in.Description
	p.Location = in.Location
	p.Industry = in.Industry
	p.ClientName = in.ClientName
	p.SquareFootage = in.SquareFootage
	p.CompletionYear = in.CompletionYear
	p.Services = datatypes.JSONSlice[string](nonNil(in.Services))
	p.ImageURL = in.ImageURL
	p.Featured = in.Featured
	p.DisplayOrder = in.DisplayOrder
	p.Published = in.Published
}

func (in *ProjectInput) Load(p *models.Project) {
	*in = ProjectInput{
		Title:          p.Title,
		Description:    p.Description,
		Location:       p.Location,
		Industry:       p.Industry,
		ClientName:     p.ClientName,
		SquareFootage:  p.SquareFootage,
		CompletionYear: p.CompletionYear,
		Services:       []string(p.Services),
		ImageURL:       p.ImageURL,
		Featured:       p.Featured,
		DisplayOrder:   p.DisplayOrder,
		Published:      p.Published,
	}
}

type CaseStudyInput struct {
	Title        string   `json:"title" validate:"required,min=3,max=200"`
	Slug         string   `json:"slug" validate:"omitempty,max=200,slug"`
	Client       string   `json:"client" validate:"required,max=200"`
	Industry     string   `json:"industry" validate:"required,enum=industry"`
	Challenge    string   `json:"challenge" validate:"required,min=20"`
	Solution     string   `json:"solution" validate:"required,min=20"`
	Results      []string `json:"results" validate:"max=20,dive,max=300"`
	ImageURL     string   `json:"image_url" validate:"omitempty,url"`
	DisplayOrder int      `json:"display_order" validate:"gte=0"`
	Published    bool     `json:"published"`
}

func (in *CaseStudyInput) Apply(c *models.CaseStudy) {
	c.Title = in.Title
	c.Slug = in.Slug
	c.Client = in.Client
	c.Industry = in.Industry
	c.Challenge = in.Challenge
	c.Solution = in.Solution
	c.Results = datatypes.JSONSlice[string](nonNil(in.Results))
	c.ImageURL = in.ImageURL
	c.DisplayOrder = in.DisplayOrder
	c.Published = in.Published
}

func (in *CaseStudyInput) Load(c *models.CaseStudy) {
	*in = CaseStudyInput{
		Title:        c.Title,
		Slug:         c.Slug,
		Client:       c.Client,
		Industry:     c.Industry,
		Challenge:    c.Challenge,
		Solution:     c.Solution,
		Results:      []string(c.Results),
		ImageURL:     c.ImageURL,
		DisplayOrder: c.DisplayOrder,
		Published:    c.Published,
	}
}

type ResourceInput struct {
	Title       string `json:"title" validate:"required,min=3,max=200"`
	Description string `json:"description" validate:"required,min=20"`
	Type        string `json:"type" validate:"required,enum=resource_type"`
	FileURL     string `json:"file_url" validate:"omitempty,url"`
	Published   bool   `json:"published"`
}

func (in *ResourceInput) Apply(r *models.Resource) {
	r.Title = in.Title
	r.Description = in.Description
	r.Type = in.Type
	r.FileURL = in.FileURL
	r.Published = in.Published
}

func (in *ResourceInput) Load(r *models.Resource) {
	*in = ResourceInput{
		Title:       r.Title,
		Description: r.Description,
		Type:        r.Type,
		FileURL:     r.FileURL,
		Published:   r.Published,
	}
}

type TeamMemberInput struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	Title        string `json:"title" validate:"required,min=2,max=100"`
	Department   string `json:"department" validate:"required,enum=department"`
	Bio          string `json:"bio" validate:"required,min=50,max=2000"`
	HeadshotURL  string `json:"headshot_url" validate:"omitempty,url"`
	Email        string `json:"email" validate:"omitempty,email"`
	LinkedInURL  string `json:"linkedin_url" validate:"omitempty,url"`
	AnchorID     string `json:"anchor_id" validate:"omitempty,max=100,slug"`
	DisplayOrder int    `json:"display_order" validate:"gte=0"`
	Published    bool   `json:"published"`
}

func (in *TeamMemberInput) Apply(m *models.TeamMember) {
	m.Name = in.Name
	m.Title = in.Title
	m.Department = in.Department
	m.Bio = in.Bio
	m.HeadshotURL = in.HeadshotURL
	m.Email = in.Email
	m.LinkedInURL = in.LinkedInURL
	m.AnchorID = in.AnchorID
	m.DisplayOrder = in.DisplayOrder
	m.Published = in.Published
}

func (in *TeamMemberInput) Load(m *models.TeamMember) {
	*in = TeamMemberInput{
		Name:         m.Name,
		Title:        m.Title,
		Department:   m.Department,
		Bio:          m.Bio,
		HeadshotURL:  m.HeadshotURL,
		Email:        m.Email,
		LinkedInURL:  m.LinkedInURL,
		AnchorID:     m.AnchorID,
		DisplayOrder: m.DisplayOrder,
		Published:    m.Published,
	}
}

type TestimonialInput struct {
	Quote        string `json:"quote" validate:"required,min=50,max=1000"`
	AuthorName   string `json:"author_name" validate:"required,min=2,max=100"`
	AuthorTitle  string `json:"author_title" validate:"omitempty,max=100"`
	Company      string `json:"company" validate:"omitempty,max=200"`
	Industry     string `json:"industry" validate:"required,enum=industry"`
	Rating       int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
	DisplayOrder int    `json:"display_order" validate:"gte=0"`
	Published    bool   `json:"published"`
}

// Apply leaves the stored rating alone when none was given, so new rows keep
// the five-star default.
func (in *TestimonialInput) Apply(t *models.Testimonial) {
	t.Quote = in.Quote
	t.AuthorName = in.AuthorName
	t.AuthorTitle = in.AuthorTitle
	t.Company = in.Company
	t.Industry = in.Industry
	if in.Rating != 0 {
		t.Rating = in.Rating
	}
	t.DisplayOrder = in.DisplayOrder
	t.Published = in.Published
}

func (in *TestimonialInput) Load(t *models.Testimonial) {
	*in = TestimonialInput{
		Quote:        t.Quote,
		AuthorName:   t.AuthorName,
		AuthorTitle:  t.AuthorTitle,
		Company:      t.Company,
		Industry:     t.Industry,
		Rating:       t.Rating,
		DisplayOrder: t.DisplayOrder,
		Published:    t.Published,
	}
}

type PartnerLogoInput struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	Category     string `json:"category" validate:"required,enum=partner_category"`
	ImageURL     string `json:"image_url" validate:"omitempty,url"`
	WebsiteURL   string `json:"website_url" validate:"omitempty,url"`
	DisplayOrder int    `json:"display_order" validate:"gte=0"`
	Published    bool   `json:"published"`
}

func (in *PartnerLogoInput) Apply(l *models.PartnerLogo) {
	l.Name = in.Name
	l.Category = in.Category
	l.ImageURL = in.ImageURL
	l.WebsiteURL = in.WebsiteURL
	l.DisplayOrder = in.DisplayOrder
	l.Published = in.Published
}

func (in *PartnerLogoInput) Load(l *models.PartnerLogo) {
	*in = PartnerLogoInput{
		Name:         l.Name,
		Category:     l.Category,
		ImageURL:     l.ImageURL,
		WebsiteURL:   l.WebsiteURL,
		DisplayOrder: l.DisplayOrder,
		Published:    l.Published,
	}
}

type SocialLinkInput struct {
	Platform     string `json:"platform" validate:"required,enum=social_platform"`
	URL          string `json:"url" validate:"required,url"`
	Label        string `json:"label" validate:"omitempty,max=100"`
	DisplayOrder int    `json:"display_order" validate:"gte=0"`
	Published    bool   `json:"published"`
}

func (in *SocialLinkInput) Apply(l *models.SocialLink) {
	l.Platform = in.Platform
	l.URL = in.URL
	l.Label = in.Label
	l.DisplayOrder = in.DisplayOrder
	l.Published = in.Published
}

func (in *SocialLinkInput) Load(l *models.SocialLink) {
	*in = SocialLinkInput{
		Platform:     l.Platform,
		URL:          l.URL,
		Label:        l.Label,
		DisplayOrder: l.DisplayOrder,
		Published:    l.Published,
	}
}

// ContactInput is the public contact form.
type ContactInput struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"omitempty,max=30"`
	Company     string `json:"company" validate:"omitempty,max=200"`
	ProjectType string `json:"project_type" validate:"omitempty,max=100"`
	Message     string `json:"message" validate:"required,min=10,max=5000"`
}

func (in *ContactInput) Apply(c *models.ContactSubmission) {
	c.Name = in.Name
	c.Email = in.Email
	c.Phone = in.Phone
	c.Company = in.Company
	c.ProjectType = in.ProjectType
	c.Message = in.Message
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProjectImageInput edits a gallery image caption.
type ProjectImageInput struct {
	Caption string `json:"caption" validate:"omitempty,max=300"`
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
