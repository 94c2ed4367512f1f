// Package http provides http transport for reports
package http

import (
	stdhttp "net/http"

	"partsearch/internal/modkit/httpkit"
	"partsearch/internal/services/reports/domain"
	searchdomain "partsearch/internal/services/search/domain"
)

// ReportRequest is the JSON body for filing an issue report
type ReportRequest struct {
	Summary string                       `json:"summary" validate:"required"`
	Details string                       `json:"details"`
	Rego    string                       `json:"rego"`
	State   string                       `json:"state"`
	Sources []string                     `json:"sources"`
	Results []searchdomain.CategoryGroup `json:"results"`
}

// ReportResponse confirms a stored report
type ReportResponse struct {
	ID   string `json:"id"`
	Path string `json:"path"`
}

// Register mounts reports endpoints on the given router
// the module mounts this under its own prefix; searcher may be nil
func Register(r httpkit.Router, w domain.WriterPort, s searchdomain.SearcherPort) {
	h := &handlers{writer: w, searcher: s}
	httpkit.PostJSON[ReportRequest](r, "/", h.create)
}

type handlers struct {
	writer   domain.WriterPort
	searcher searchdomain.SearcherPort
}

// @Summary File an issue report against a search
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body ReportRequest true "Report"
// @Success 200 {object} ReportResponse "ok"
// @Router /reports [post]
func (h *handlers) create(r *stdhttp.Request, in ReportRequest) (any, error) {
	rep := domain.Report{
		Summary: in.Summary,
		Details: in.Details,
		Rego:    in.Rego,
		State:   in.State,
		Sources: in.Sources,
		Results: in.Results,
	}

	// reports without attached results get a snapshot of the live search
	// best effort: a degraded search must not block filing the report
	if len(rep.Results) == 0 && rep.Rego != "" && h.searcher != nil {
		res, err := h.searcher.Search(r.Context(), searchdomain.Query{Rego: in.Rego, State: in.State})
		if err == nil {
			rep.Results = res.Groups
			if len(rep.Sources) == 0 {
				for _, o := range res.Outcomes {
					rep.Sources = append(rep.Sources, o.SourceID)
				}
			}
		}
	}

	rep, path, err := h.writer.Write(r.Context(), rep)
	if err != nil {
		return nil, err
	}
	return ReportResponse{ID: rep.ID, Path: path}, nil
}
