package admin

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/construction-site-backend/models"
)

var errNoContacts = errors.New("contact submissions are not available")

// contactScreen lists contact form submissions read-only.
type contactScreen struct {
	h *Handlers
}

const contactsListLimit = 100

func (s *contactScreen) Name() string  { return "contacts" }
func (s *contactScreen) Label() string { return "Contact Submissions" }

func (s *contactScreen) mount(r chi.Router) {
	r.Get("/contacts", s.page)
	r.Get("/contacts/rows", s.rows)
}

var contactColumns = []Column[models.ContactSubmission]{
	stringCol("name", "Name", func(c models.ContactSubmission) string { return c.Name }),
	stringCol("email", "Email", func(c models.ContactSubmission) string { return c.Email }),
	stringCol("company", "Company", func(c models.ContactSubmission) string { return c.Company }),
	stringCol("project_type", "Project Type", func(c models.ContactSubmission) string { return c.ProjectType }),
	stringCol("message", "Message", func(c models.ContactSubmission) string { return c.Message }),
	dateCol("created_at", "Received", "Jan 2, 2006 15:04", func(c models.ContactSubmission) time.Time { return c.CreatedAt }),
}

func (s *contactScreen) table() Table[models.ContactSubmission] {
	return Table[models.ContactSubmission]{
		Resource: s.Name(),
		Label:    s.Label(),
		Columns:  contactColumns,
		ReadOnly: true,
	}
}

func (s *contactScreen) page(w http.ResponseWriter, r *http.Request) {
	t := s.table()
	t.IsLoading = true
	s.h.renderPage(w, r, "list", ListPage{Title: s.Label(), Resource: s.Name(), Table: t.View(), ReadOnly: true})
}

func (s *contactScreen) rows(w http.ResponseWriter, r *http.Request) {
	t := s.table()
	t.Query = r.URL.Query().Get("q")

	var rows []models.ContactSubmission
	err := errNoContacts
	if s.h.contacts != nil {
		rows, err = s.h.contacts.List(r.Context(), contactsListLimit)
	}
	if err != nil {
		s.h.logger.Error().Err(err).Msg("Failed to load contact submissions")
		view := t.View()
		view.Error = "Could not load contact submissions. Try again."
		s.h.toast(w, toastError, userMessage(err))
		s.h.renderPartial(w, "rows", view)
		return
	}
	t.Rows = rows
	s.h.renderPartial(w, "rows", t.View())
}
