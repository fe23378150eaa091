package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rpupo63/construction-site-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type maintenanceHandler struct {
	responder   Responder
	logger      zerolog.Logger
	sweeper     *services.OrphanSweeper
	db          Pinger
	startupTime time.Time
}

func newMaintenanceHandler(sweeper *services.OrphanSweeper, db Pinger, startupTime time.Time) maintenanceHandler {
	logger := log.With().Str("handlerName", "maintenanceHandler").Logger()
	return maintenanceHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		sweeper:     sweeper,
		db:          db,
		startupTime: startupTime,
	}
}

// sweepOrphans reports, or with confirm=true deletes, stored files no row
// references
// @Summary Orphaned file cleanup
// @Tags Maintenance
// @Produce json
// @Param dry_run query bool false "Report only"
// @Param confirm query bool false "Required to delete"
// @Param prefix query string false "Comma separated prefixes to sweep"
// @Success 200 {object} services.SweepReport
// @Failure 400 {object} ErrorResponse "Neither dry_run nor confirm given"
// @Router /api/admin/maintenance/orphans [post]
func (h maintenanceHandler) sweepOrphans() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := services.SweepOptions{
			DryRun:  queryBool(r, "dry_run"),
			Confirm: queryBool(r, "confirm"),
		}
		if raw := r.URL.Query().Get("prefix"); raw != "" {
			for _, p := range strings.Split(raw, ",") {
				if p = strings.TrimSpace(p); p != "" {
					opts.Prefixes = append(opts.Prefixes, p)
				}
			}
		}

		session, _ := ctxGetSession(r.Context())
		report, err := h.sweeper.Sweep(r.Context(), opts)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.logger.Info().Str("by", session.Email).Bool("dryRun", opts.DryRun).Int("orphans", len(report.Orphans)).Msg("Orphan sweep requested")
		h.responder.WriteJSON(w, report)
	}
}

// @Router /healthz [get]
func (h maintenanceHandler) healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := HealthResponse{Status: "ok", Uptime: time.Since(h.startupTime).Round(time.Second).String(), Database: "ok"}
		if err := h.db.Ping(ctx); err != nil {
			h.logger.Error().Err(err).Msg("Health check: database unreachable")
			resp.Status = "degraded"
			resp.Database = "unreachable"
			h.responder.WriteJSONStatus(w, http.StatusServiceUnavailable, resp)
			return
		}
		h.responder.WriteJSON(w, resp)
	}
}
