package admin

import (
	"fmt"
	"html/template"
	"strconv"
	"time"

	"github.com/rpupo63/construction-site-backend/content"
	"github.com/rpupo63/construction-site-backend/models"
)

func publishedBadge(published bool) template.HTML {
	if published {
		return `<span class="rounded bg-green-100 px-2 py-0.5 text-xs text-green-800">Published</span>`
	}
	return `<span class="rounded bg-gray-100 px-2 py-0.5 text-xs text-gray-600">Draft</span>`
}

func thumbnail(url string) template.HTML {
	if url == "" {
		return `<span class="inline-block h-10 w-10 rounded bg-gray-200"></span>`
	}
	return template.HTML(fmt.Sprintf(`<img src="%s" alt="" class="h-10 w-10 rounded object-cover">`, template.HTMLEscapeString(url)))
}

func stringCol[T any](key, label string, v func(T) string) Column[T] {
	return Column[T]{Key: key, Label: label, Value: func(r T) any { return v(r) }}
}

func intCol[T any](key, label string, v func(T) int) Column[T] {
	return Column[T]{Key: key, Label: label, Value: func(r T) any { return v(r) }}
}

// dateCol shows a timestamp in layout. Dates are not searched.
func dateCol[T any](key, label, layout string, v func(T) time.Time) Column[T] {
	return Column[T]{
		Key:    key,
		Label:  label,
		Value:  func(r T) any { return v(r) },
		Render: func(r T) template.HTML { return template.HTML(template.HTMLEscapeString(v(r).Format(layout))) },
	}
}

func statusCol[T models.Record]() Column[T] {
	return Column[T]{
		Key:    "published",
		Label:  "Status",
		Value:  func(r T) any { return r.IsPublished() },
		Render: func(r T) template.HTML { return publishedBadge(r.IsPublished()) },
	}
}

func imageCol[T any](key string, v func(T) string) Column[T] {
	return Column[T]{
		Key:    key,
		Label:  "Image",
		Value:  func(r T) any { return v(r) },
		Render: func(r T) template.HTML { return thumbnail(v(r)) },
	}
}

var publishedField = field("published", Checkbox).help("Only published records appear on the public site.")
var orderField = field("display_order", Number).help("Lower numbers come first.")

const imageAccept = "image/jpeg,image/png,image/webp,image/gif,image/svg+xml"

// newScreens builds the admin screen of every resource type in menu order.
func newScreens(c *content.Catalog, h *Handlers) []screen {
	return []screen{
		newResourceScreen(h, c.Projects, []Column[*models.Project]{
			imageCol("image_url", func(p *models.Project) string { return p.ImageURL }),
			stringCol("title", "Title", func(p *models.Project) string { return p.Title }),
			stringCol("industry", "Industry", func(p *models.Project) string { return p.Industry }),
			stringCol("location", "Location", func(p *models.Project) string { return p.Location }),
			{Key: "featured", Label: "Featured", Value: func(p *models.Project) any { return p.Featured }},
			intCol("display_order", "Order", func(p *models.Project) int { return p.DisplayOrder }),
			statusCol[*models.Project](),
		}, []FormField{
			field("title", Text).required(),
			field("description", Textarea).required(),
			field("industry", Select).options(models.Industries).required(),
			field("location", Text),
			field("client_name", Text),
			field("square_footage", Number),
			field("completion_year", Number),
			field("services", Lines).help("One service per line."),
			field("image_url", URL),
			fileField("Cover image", imageAccept),
			field("featured", Checkbox),
			orderField,
			publishedField,
		}),
		newResourceScreen(h, c.Articles, []Column[*models.Article]{
			imageCol("image_url", func(a *models.Article) string { return a.ImageURL }),
			stringCol("title", "Title", func(a *models.Article) string { return a.Title }),
			stringCol("category", "Category", func(a *models.Article) string { return a.Category }),
			stringCol("author", "Author", func(a *models.Article) string { return a.Author }),
			dateCol("created_at", "Created", "Jan 2, 2006", func(a *models.Article) time.Time { return a.CreatedAt }),
			statusCol[*models.Article](),
		}, []FormField{
			field("title", Text).required(),
			field("slug", Text).help("Leave blank to derive it from the title."),
			field("excerpt", Textarea).required().help("50 to 500 characters."),
			field("content", Textarea).required(),
			field("category", Select).options(models.ArticleCategories).required(),
			field("author", Text),
			field("read_time_minutes", Number),
			field("image_url", URL),
			fileField("Cover image", imageAccept),
			publishedField,
		}),
		newResourceScreen(h, c.CaseStudies, []Column[*models.CaseStudy]{
			imageCol("image_url", func(s *models.CaseStudy) string { return s.ImageURL }),
			stringCol("title", "Title", func(s *models.CaseStudy) string { return s.Title }),
			stringCol("client", "Client", func(s *models.CaseStudy) string { return s.Client }),
			stringCol("industry", "Industry", func(s *models.CaseStudy) string { return s.Industry }),
			intCol("display_order", "Order", func(s *models.CaseStudy) int { return s.DisplayOrder }),
			statusCol[*models.CaseStudy](),
		}, []FormField{
			field("title", Text).required(),
			field("slug", Text).help("Leave blank to derive it from the title."),
			field("client", Text).required(),
			field("industry", Select).options(models.Industries).required(),
			field("challenge", Textarea).required(),
			field("solution", Textarea).required(),
			field("results", Lines).help("One result per line."),
			field("image_url", URL),
			fileField("Image", imageAccept),
			orderField,
			publishedField,
		}),
		newResourceScreen(h, c.Resources, []Column[*models.Resource]{
			stringCol("title", "Title", func(r *models.Resource) string { return r.Title }),
			stringCol("type", "Type", func(r *models.Resource) string { return r.Type }),
			{Key: "file_url", Label: "File", Value: func(r *models.Resource) any { return r.FileURL }, Render: func(r *models.Resource) template.HTML {
				if r.FileURL == "" {
					return "None"
				}
				return template.HTML(fmt.Sprintf(`<a class="text-blue-600 underline" href="%s" target="_blank">Download</a>`, template.HTMLEscapeString(r.FileURL)))
			}},
			statusCol[*models.Resource](),
		}, []FormField{
			field("title", Text).required(),
			field("description", Textarea).required(),
			field("type", Select).options(models.ResourceTypes).required(),
			field("file_url", URL),
			fileField("PDF", "application/pdf"),
			publishedField,
		}),
		newResourceScreen(h, c.TeamMembers, []Column[*models.TeamMember]{
			imageCol("headshot_url", func(m *models.TeamMember) string { return m.HeadshotURL }),
			stringCol("name", "Name", func(m *models.TeamMember) string { return m.Name }),
			stringCol("title", "Title", func(m *models.TeamMember) string { return m.Title }),
			stringCol("department", "Department", func(m *models.TeamMember) string { return m.Department }),
			intCol("display_order", "Order", func(m *models.TeamMember) int { return m.DisplayOrder }),
			statusCol[*models.TeamMember](),
		}, []FormField{
			field("name", Text).required(),
			field("title", Text).required(),
			field("department", Select).options(models.Departments).required(),
			field("bio", Textarea).required().help("At least 50 characters."),
			field("email", Email),
			field("linkedin_url", URL),
			field("anchor_id", Text).help("Leave blank to derive it from the name."),
			field("headshot_url", URL),
			fileField("Headshot", imageAccept),
			orderField,
			publishedField,
		}),
		newResourceScreen(h, c.Testimonials, []Column[*models.Testimonial]{
			stringCol("author_name", "Author", func(t *models.Testimonial) string { return t.AuthorName }),
			stringCol("company", "Company", func(t *models.Testimonial) string { return t.Company }),
			stringCol("quote", "Quote", func(t *models.Testimonial) string { return t.Quote }),
			{Key: "rating", Label: "Rating", Value: func(t *models.Testimonial) any { return t.Rating }, Render: func(t *models.Testimonial) template.HTML {
				return template.HTML(strconv.Itoa(t.Rating) + " / 5")
			}},
			statusCol[*models.Testimonial](),
		}, []FormField{
			field("quote", Textarea).required().help("At least 50 characters."),
			field("author_name", Text).required(),
			field("author_title", Text),
			field("company", Text),
			field("industry", Select).options(models.Industries).required(),
			field("rating", Number).help("1 to 5; blank keeps five stars."),
			orderField,
			publishedField,
		}),
		newResourceScreen(h, c.PartnerLogos, []Column[*models.PartnerLogo]{
			imageCol("image_url", func(l *models.PartnerLogo) string { return l.ImageURL }),
			stringCol("name", "Name", func(l *models.PartnerLogo) string { return l.Name }),
			stringCol("category", "Category", func(l *models.PartnerLogo) string { return l.Category }),
			intCol("display_order", "Order", func(l *models.PartnerLogo) int { return l.DisplayOrder }),
			statusCol[*models.PartnerLogo](),
		}, []FormField{
			field("name", Text).required(),
			field("category", Select).options(models.PartnerCategories).required(),
			field("website_url", URL),
			field("image_url", URL),
			fileField("Logo", imageAccept),
			orderField,
			publishedField,
		}),
		newResourceScreen(h, c.SocialLinks, []Column[*models.SocialLink]{
			stringCol("platform", "Platform", func(l *models.SocialLink) string { return l.Platform }),
			stringCol("url", "URL", func(l *models.SocialLink) string { return l.URL }),
			stringCol("label", "Label", func(l *models.SocialLink) string { return l.Label }),
			intCol("display_order", "Order", func(l *models.SocialLink) int { return l.DisplayOrder }),
			statusCol[*models.SocialLink](),
		}, []FormField{
			field("platform", Select).options(models.SocialPlatforms).required(),
			field("url", URL).required(),
			field("label", Text),
			orderField,
			publishedField,
		}),
	}
}
