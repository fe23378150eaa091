package api

import (
	"net/http"

	"github.com/rpupo63/construction-site-backend/content"
	"github.com/rpupo63/construction-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// resourceHandler serves the JSON endpoints of one resource type. The
// handlers close over the typed service so the router can treat every
// resource alike.
type resourceHandler struct {
	name       string
	listPublic http.HandlerFunc
	listAdmin  http.HandlerFunc
	get        http.HandlerFunc
	create     http.HandlerFunc
	update     http.HandlerFunc
	delete     http.HandlerFunc
}

func newResourceHandler[T models.Record, I content.Input[T]](svc *content.Service[T, I]) resourceHandler {
	def := svc.Definition()
	logger := log.With().Str("handlerName", def.Name+"Handler").Logger()
	h := typedResourceHandler[T, I]{svc: svc, responder: NewResponder(logger), logger: logger}
	return resourceHandler{
		name:       def.Name,
		listPublic: h.listPublic(),
		listAdmin:  h.listAdmin(),
		get:        h.get(),
		create:     h.create(),
		update:     h.update(),
		delete:     h.delete(),
	}
}

type typedResourceHandler[T models.Record, I content.Input[T]] struct {
	svc       *content.Service[T, I]
	responder Responder
	logger    zerolog.Logger
}

// listPublic returns published rows in display order
// @Router /api/public/{resource} [get]
func (h typedResourceHandler[T, I]) listPublic() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := h.svc.ListPublic(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, ListResponse[T]{Items: rows, Total: len(rows)})
	}
}

// listAdmin returns every row, drafts included
// @Router /api/admin/{resource} [get]
func (h typedResourceHandler[T, I]) listAdmin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := h.svc.ListAdmin(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, ListResponse[T]{Items: rows, Total: len(rows)})
	}
}

// @Router /api/admin/{resource}/{id} [get]
func (h typedResourceHandler[T, I]) get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		row, err := h.svc.Get(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		w.Header().Set("ETag", etag(row.GetUpdatedAt()))
		h.responder.WriteJSON(w, row)
	}
}

// create accepts JSON, or multipart with an optional "file" part
// @Router /api/admin/{resource} [post]
func (h typedResourceHandler[T, I]) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input := h.svc.NewInput()
		file, cleanup, err := decodeInput(w, r, input)
		defer cleanup()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		row, err := h.svc.Create(r.Context(), input, file)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		w.Header().Set("ETag", etag(row.GetUpdatedAt()))
		h.responder.WriteJSONStatus(w, http.StatusCreated, row)
	}
}

// update requires If-Match carrying the updated_at the client last saw
// @Router /api/admin/{resource}/{id} [put]
func (h typedResourceHandler[T, I]) update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		expected, err := ifMatch(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		input := h.svc.NewInput()
		file, cleanup, err := decodeInput(w, r, input)
		defer cleanup()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		row, err := h.svc.Update(r.Context(), id, input, expected, file)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		w.Header().Set("ETag", etag(row.GetUpdatedAt()))
		h.responder.WriteJSON(w, row)
	}
}

// delete succeeds for ids that no longer exist
// @Router /api/admin/{resource}/{id} [delete]
func (h typedResourceHandler[T, I]) delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.svc.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteNoContent(w)
	}
}
