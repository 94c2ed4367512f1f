// Package http provides http transport for search
package http

import (
	stdhttp "net/http"

	"partsearch/internal/core/catalog"
	"partsearch/internal/modkit/httpkit"
	"partsearch/internal/services/search/domain"
)

// SearchRequest is the JSON body for a part availability search
type SearchRequest struct {
	Rego       string   `json:"rego" validate:"required"`
	State      string   `json:"state"`
	Categories []string `json:"categories" validate:"omitempty,dive,required"`
}

// Register mounts search endpoints on the given router
// the module mounts this under its own prefix
func Register(r httpkit.Router, s domain.SearcherPort) {
	h := &handlers{svc: s}
	httpkit.PostJSON[SearchRequest](r, "/", h.search)
}

type handlers struct{ svc domain.SearcherPort }

// @Summary Aggregate part availability across suppliers
// @Tags Search
// @Accept json
// @Produce json
// @Param payload body SearchRequest true "Query"
// @Success 200 {object} domain.Result "ok"
// @Router /search [post]
func (h *handlers) search(r *stdhttp.Request, in SearchRequest) (any, error) {
	cats, err := catalog.Parse(in.Categories)
	if err != nil {
		return nil, err
	}
	q := domain.Query{Rego: in.Rego, State: in.State, Categories: cats}
	return h.svc.Search(r.Context(), q)
}
