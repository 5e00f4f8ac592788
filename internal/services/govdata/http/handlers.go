// Package http exposes the govdata service over the API
package http

import (
	"net/http"

	"engagegov/internal/modkit/httpkit"
	perr "engagegov/internal/platform/errors"
	"engagegov/internal/services/govdata/domain"
)

type handlers struct {
	svc domain.ServicePort
}

// Register mounts the govdata routes
func Register(r httpkit.Router, svc domain.ServicePort) {
	h := &handlers{svc: svc}

	httpkit.GetQuery(r, "/representatives", h.representatives)
	httpkit.GetQuery(r, "/laws", h.laws)
	httpkit.GetQuery(r, "/laws/{externalId}", h.law)
	httpkit.GetQuery(r, "/speeches", h.speeches)
	httpkit.Get(r, "/sources", h.sources)
}

// swagger:route GET /gov/representatives Gov govRepresentatives
// @Summary Sitting representatives of a source
// @Tags Gov
// @Produce json
// @Param source query string false "source key, default camara"
// @Success 200 {object} httpkit.Envelope{data=[]records.Representative}
// @Failure 422 {object} httpkit.Envelope "unknown source"
// @Router /gov/representatives [get]
func (h *handlers) representatives(r *http.Request, q domain.SourceQuery) httpkit.Response {
	out, err := h.svc.GetRepresentatives(r.Context(), q.Source)
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.List(out)
}

// swagger:route GET /gov/laws Gov govLaws
// @Summary Legislative items, optionally for one year
// @Tags Gov
// @Produce json
// @Param source query string false "source key"
// @Param year query int false "presentation year"
// @Param items query int false "page size, 1 to 100"
// @Success 200 {object} httpkit.Envelope{data=[]records.LegislativeItem}
// @Router /gov/laws [get]
func (h *handlers) laws(r *http.Request, q domain.LawsQuery) httpkit.Response {
	out, err := h.svc.GetLegislativeItems(r.Context(), q.Source, q.Year, q.Items)
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.List(out)
}

// swagger:route GET /gov/laws/{externalId} Gov govLaw
// @Summary One legislative item with authors and timeline when the source has them
// @Tags Gov
// @Produce json
// @Param externalId path string true "id assigned by the source"
// @Param source query string false "source key"
// @Success 200 {object} httpkit.Envelope{data=records.LegislativeItem}
// @Failure 404 {object} httpkit.Envelope
// @Router /gov/laws/{externalId} [get]
func (h *handlers) law(r *http.Request, q domain.SourceQuery) httpkit.Response {
	id := httpkit.URLParam(r, "externalId")
	it, ok, err := h.svc.GetLegislativeItemByExternalID(r.Context(), q.Source, id)
	if err != nil {
		return httpkit.Error(err)
	}
	if !ok {
		return httpkit.Error(perr.WithField(perr.NotFoundf("legislative item %q not found", id), "externalId"))
	}
	return httpkit.OK(it)
}

// swagger:route GET /gov/speeches Gov govSpeeches
// @Summary Floor speeches of a source
// @Tags Gov
// @Produce json
// @Param source query string false "source key"
// @Success 200 {object} httpkit.Envelope{data=[]records.Speech}
// @Router /gov/speeches [get]
func (h *handlers) speeches(r *http.Request, q domain.SourceQuery) httpkit.Response {
	out, err := h.svc.GetSpeeches(r.Context(), q.Source)
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.List(out)
}

// swagger:route GET /gov/sources Gov govSources
// @Summary Registered sources and the default
// @Tags Gov
// @Produce json
// @Success 200 {object} httpkit.Envelope{data=domain.SourcesResp}
// @Router /gov/sources [get]
func (h *handlers) sources(*http.Request) httpkit.Response {
	return httpkit.OK(h.svc.Sources())
}
