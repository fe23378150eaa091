package admin

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/construction-site-backend/content"
	"github.com/rpupo63/construction-site-backend/errs"
	"github.com/rpupo63/construction-site-backend/models"
)

// screen is one entry of the admin menu.
type screen interface {
	Name() string
	Label() string
	mount(r chi.Router)
}

// resourceScreen serves the table, form and delete dialog of one resource
// type.
type resourceScreen[T models.Record, I content.Input[T]] struct {
	h       *Handlers
	svc     *content.Service[T, I]
	columns []Column[T]
	fields  []FormField
}

func newResourceScreen[T models.Record, I content.Input[T]](h *Handlers, svc *content.Service[T, I], columns []Column[T], fields []FormField) screen {
	return &resourceScreen[T, I]{h: h, svc: svc, columns: columns, fields: fields}
}

func (s *resourceScreen[T, I]) Name() string  { return s.svc.Definition().Name }
func (s *resourceScreen[T, I]) Label() string { return s.svc.Definition().Label }

func (s *resourceScreen[T, I]) mount(r chi.Router) {
	r.Route("/"+s.Name(), func(r chi.Router) {
		r.Get("/", s.page)
		r.Get("/rows", s.rows)
		r.Get("/new", s.newForm)
		r.Post("/", s.create)
		r.Get("/{id}/edit", s.editForm)
		r.Put("/{id}", s.update)
		r.Get("/{id}/delete", s.openDelete)
		r.Get("/{id}/delete/cancel", s.cancelDelete)
		r.Delete("/{id}", s.confirmDelete)
		if s.table().Gallery {
			s.h.mountProjectGallery(r)
		}
	})
}

func (s *resourceScreen[T, I]) table() Table[T] {
	return Table[T]{
		Resource: s.Name(),
		Label:    s.Label(),
		Columns:  s.columns,
		Gallery:  s.Name() == models.ResourceProjects,
	}
}

// page renders the shell; the rows arrive with the htmx load trigger.
func (s *resourceScreen[T, I]) page(w http.ResponseWriter, r *http.Request) {
	t := s.table()
	t.IsLoading = true
	s.h.renderPage(w, r, "list", ListPage{Title: s.Label(), Resource: s.Name(), Table: t.View()})
}

func (s *resourceScreen[T, I]) rows(w http.ResponseWriter, r *http.Request) {
	t := s.table()
	t.Query = r.URL.Query().Get("q")
	view := TableView{}

	rows, err := s.svc.ListAdmin(r.Context())
	if err != nil {
		s.h.logger.Error().Err(err).Str("resource", s.Name()).Msg("Failed to load rows")
		view = t.View()
		view.Error = "Could not load " + s.Label() + ". Try again."
		s.h.toast(w, toastError, userMessage(err))
	} else {
		t.Rows = rows
		view = t.View()
	}
	s.h.renderPartial(w, "rows", view)
}

func (s *resourceScreen[T, I]) newForm(w http.ResponseWriter, r *http.Request) {
	def := s.svc.Definition()
	s.h.renderPartial(w, "form", NewFormView(def.Name, def.Singular, s.fields, s.svc.NewInput(), nil))
}

func (s *resourceScreen[T, I]) editForm(w http.ResponseWriter, r *http.Request) {
	id, ok := s.h.pathID(w, r)
	if !ok {
		return
	}
	row, err := s.svc.Get(r.Context(), id)
	if err != nil {
		s.h.storeError(w, err)
		return
	}
	def := s.svc.Definition()
	view := NewFormView(def.Name, def.Singular, s.fields, s.svc.InputFor(row), nil).ForRecord(id.String(), row.GetUpdatedAt())
	s.h.renderPartial(w, "form", view)
}

func (s *resourceScreen[T, I]) create(w http.ResponseWriter, r *http.Request) {
	input := s.svc.NewInput()
	file, cleanup, err := s.h.decodeForm(w, r, input)
	defer cleanup()
	if err == nil {
		_, err = s.svc.Create(r.Context(), input, file)
	}
	s.afterSubmit(w, input, nil, err, "created")
}

func (s *resourceScreen[T, I]) update(w http.ResponseWriter, r *http.Request) {
	id, ok := s.h.pathID(w, r)
	if !ok {
		return
	}
	input := s.svc.NewInput()
	file, cleanup, err := s.h.decodeForm(w, r, input)
	defer cleanup()

	var expected *time.Time
	raw := r.FormValue("updated_at")
	if t, perr := time.Parse(time.RFC3339Nano, raw); perr == nil {
		expected = &t
	}

	var row T
	if err == nil {
		row, err = s.svc.Update(r.Context(), id, input, expected, file)
	}
	edit := &formTarget{id: id.String(), updatedAt: raw}
	if err == nil {
		edit.updatedAt = row.GetUpdatedAt().UTC().Format(time.RFC3339Nano)
	}
	s.afterSubmit(w, input, edit, err, "saved")
}

type formTarget struct {
	id        string
	updatedAt string
}

// afterSubmit closes the panel on success, re-renders the form with inline
// errors on validation failure and raises a toast for anything else.
func (s *resourceScreen[T, I]) afterSubmit(w http.ResponseWriter, input I, edit *formTarget, err error, verb string) {
	def := s.svc.Definition()
	if err == nil {
		s.h.trigger(w, map[string]any{
			eventRowsChanged: true,
			eventToast:       toastEvent{Level: toastSuccess, Message: sentence(def.Singular + " " + verb)},
		})
		s.h.renderPartial(w, "panel-closed", nil)
		return
	}

	fields := inlineErrors(err)
	if fields == nil {
		s.h.storeError(w, err)
		return
	}
	view := NewFormView(def.Name, def.Singular, s.fields, input, fields)
	if edit != nil {
		view.ID, view.UpdatedAt, view.IsEdit = edit.id, edit.updatedAt, true
	}
	s.h.renderPartial(w, "form", view)
}

// inlineErrors returns the field errors to show next to inputs, or nil when
// err is not about the submitted values.
func inlineErrors(err error) map[string]string {
	if fields := errs.FieldErrors(err); len(fields) > 0 {
		return fields
	}
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) || apiErr.Field == "" {
		return nil
	}
	if (apiErr.Field == "file" && apiErr.StatusCode < http.StatusInternalServerError) || errs.IsUniqueConstraintViolationError(err) {
		return map[string]string{apiErr.Field: apiErr.Details}
	}
	return nil
}

func (s *resourceScreen[T, I]) target(ctx context.Context, id uuid.UUID) (DeleteTarget, error) {
	row, err := s.svc.Get(ctx, id)
	if err != nil {
		return DeleteTarget{}, err
	}
	return DeleteTarget{Resource: s.Name(), ID: id.String(), Name: displayName(s.columns, row)}, nil
}

func (s *resourceScreen[T, I]) openDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := s.h.pathID(w, r)
	if !ok {
		return
	}
	target, err := s.target(r.Context(), id)
	if err != nil {
		s.h.storeError(w, err)
		return
	}
	var d DeleteDialog
	_ = d.Open(target)
	s.h.renderPartial(w, "dialog", newDialogView(&d, s.svc.Definition().Singular))
}

func (s *resourceScreen[T, I]) cancelDelete(w http.ResponseWriter, r *http.Request) {
	var d DeleteDialog
	_ = d.Open(DeleteTarget{Resource: s.Name(), ID: chi.URLParam(r, "id")})
	_ = d.Cancel()
	s.h.renderPartial(w, "dialog", newDialogView(&d, s.svc.Definition().Singular))
}

func (s *resourceScreen[T, I]) confirmDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := s.h.pathID(w, r)
	if !ok {
		return
	}
	var d DeleteDialog
	_ = d.Open(DeleteTarget{Resource: s.Name(), ID: id.String()})
	err := d.Confirm(r.Context(), func(ctx context.Context, _ DeleteTarget) error {
		return s.svc.Delete(ctx, id)
	})
	if err != nil {
		s.h.storeError(w, err)
		return
	}
	s.h.trigger(w, map[string]any{
		eventRowsChanged: true,
		eventToast:       toastEvent{Level: toastSuccess, Message: sentence(s.svc.Definition().Singular + " deleted")},
	})
	s.h.renderPartial(w, "dialog", newDialogView(&d, s.svc.Definition().Singular))
}

// displayName is the first searchable text column of row.
func displayName[T any](columns []Column[T], row T) string {
	for _, c := range columns {
		if c.Render != nil || c.Value == nil {
			continue
		}
		if s, ok := c.Value(row).(string); ok && s != "" {
			return s
		}
	}
	return "this record"
}

func sentence(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// DialogView is what the dialog template renders.
type DialogView struct {
	Open     bool
	Target   DeleteTarget
	Singular string
}

func newDialogView(d *DeleteDialog, singular string) DialogView {
	target, open := d.Target()
	return DialogView{Open: open, Target: target, Singular: singular}
}
