package web

import (
	"net/http"

	"github.com/JonMunkholm/countycontacts/internal/core"
	"github.com/go-chi/chi/v5"
)

// CountiesResponse is the body of GET /api/counties.
type CountiesResponse struct {
	Counties []core.County `json:"counties"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status  string                   `json:"status"`
	Regions int                      `json:"regions"`
	Imports core.ImportLimiterStatus `json:"imports"`
}

// handleHealth reports liveness and import slot usage.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, HealthResponse{
		Status:  "ok",
		Regions: s.service.Regions().Len(),
		Imports: s.service.ImportLimiterStatus(),
	})
}

// handleListCounties returns every canonical county in canonical order.
func (s *Server) handleListCounties(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, CountiesResponse{Counties: s.service.ListAll(r.Context())})
}

// handleGetCounty returns one county.
func (s *Server) handleGetCounty(w http.ResponseWriter, r *http.Request) {
	county, err := s.service.Get(r.Context(), chi.URLParam(r, "countyID"))
	if err != nil {
		respondError(w, r, err, 0)
		return
	}
	writeJSON(w, county)
}

// handlePutCounty replaces a county's contact. Sending all fields empty or
// null removes the contact.
func (s *Server) handlePutCounty(w http.ResponseWriter, r *http.Request) {
	countyID := chi.URLParam(r, "countyID")

	var contact core.Contact
	if err := decodeJSON(w, r, &contact); err != nil {
		respondError(w, r, err, 0)
		return
	}

	county, err := s.service.Put(withClient(r), countyID, contact)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}
	writeJSON(w, county)
}
