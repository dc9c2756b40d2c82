package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"propertypulse/internal/app"
	"propertypulse/internal/domain"
)

// Radius contract of the dashboard's slider.
const (
	minRadiusKM = 0.1
	maxRadiusKM = 5.0
)

type Handlers struct {
	L *app.LookupService

	DefaultRadiusKM float64
	FloodDistKM     float64
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/locations/{postcode}", h.getLocation)
	s.mux.Get("/v1/transport", h.getTransport)
	s.mux.Get("/v1/crime", h.getCrime)
	s.mux.Get("/v1/flood", h.getFlood)
	s.mux.Get("/v1/summary", h.getSummary)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeLookupError maps the lookup error taxonomy onto HTTP problems.
func writeLookupError(w http.ResponseWriter, err error) {
	var inv *domain.InvalidPostcodeError
	if errors.As(err, &inv) {
		writeProblem(w, http.StatusBadRequest, "Invalid Postcode", inv.Error())
		return
	}
	if errors.Is(err, domain.ErrPostcodeNotFound) {
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
		return
	}
	var pse domain.ProviderStatusError
	if errors.As(err, &pse) {
		writeProblem(w, http.StatusBadGateway, "Upstream Error", pse.Error())
		return
	}
	writeProblem(w, http.StatusBadGateway, "Upstream Unavailable", err.Error())
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

// queryPostcode pulls the postcode query parameter; validation proper happens
// in the lookup service.
func queryPostcode(r *http.Request) (string, bool) {
	pc := r.URL.Query().Get("postcode")
	return pc, pc != ""
}

// parseRadiusKM reads radius_km, bounded to the slider's range.
func (h *Handlers) parseRadiusKM(r *http.Request) (float64, error) {
	raw := r.URL.Query().Get("radius_km")
	if raw == "" {
		return h.DefaultRadiusKM, nil
	}
	km, err := strconv.ParseFloat(raw, 64)
	if err != nil || km < minRadiusKM || km > maxRadiusKM {
		return 0, fmt.Errorf("radius_km must be a number between %g and %g", minRadiusKM, maxRadiusKM)
	}
	return km, nil
}

func (h *Handlers) getLocation(w http.ResponseWriter, r *http.Request) {
	pc, err := url.PathUnescape(chi.URLParam(r, "postcode"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Postcode", "postcode is not a valid path segment")
		return
	}
	loc, lerr := h.L.ResolveLocation(r.Context(), pc)
	if lerr != nil {
		writeLookupError(w, lerr)
		return
	}
	writeJSON(w, r, loc)
}

type transportResponse struct {
	Location  domain.Location   `json:"location"`
	Transport app.TransportView `json:"transport"`
}

func (h *Handlers) getTransport(w http.ResponseWriter, r *http.Request) {
	pc, ok := queryPostcode(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid Postcode", "postcode query parameter is required")
		return
	}
	km, err := h.parseRadiusKM(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Radius", err.Error())
		return
	}

	loc, res, err := h.L.Transport(r.Context(), pc, int(km*1000))
	if err != nil {
		writeLookupError(w, err)
		return
	}
	// A partial aggregation failure still renders what was gathered; the
	// error travels inside the body, not as an HTTP status.
	writeJSON(w, r, transportResponse{Location: loc, Transport: app.GroupByMode(res)})
}

type crimeResponse struct {
	Location domain.Location     `json:"location"`
	Crime    domain.CrimeSummary `json:"crime"`
}

func (h *Handlers) getCrime(w http.ResponseWriter, r *http.Request) {
	pc, ok := queryPostcode(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid Postcode", "postcode query parameter is required")
		return
	}
	loc, sum, err := h.L.Crime(r.Context(), pc)
	if err != nil {
		writeLookupError(w, err)
		return
	}
	writeJSON(w, r, crimeResponse{Location: loc, Crime: sum})
}

type floodResponse struct {
	Location domain.Location       `json:"location"`
	Warnings []domain.FloodWarning `json:"warnings"`
}

func (h *Handlers) getFlood(w http.ResponseWriter, r *http.Request) {
	pc, ok := queryPostcode(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid Postcode", "postcode query parameter is required")
		return
	}
	dist := h.FloodDistKM
	if raw := r.URL.Query().Get("dist_km"); raw != "" {
		d, err := strconv.ParseFloat(raw, 64)
		if err != nil || d <= 0 {
			writeProblem(w, http.StatusBadRequest, "Invalid Distance", "dist_km must be a positive number")
			return
		}
		dist = d
	}

	loc, warnings, err := h.L.Flood(r.Context(), pc, dist)
	if err != nil {
		writeLookupError(w, err)
		return
	}
	writeJSON(w, r, floodResponse{Location: loc, Warnings: warnings})
}

func (h *Handlers) getSummary(w http.ResponseWriter, r *http.Request) {
	pc, ok := queryPostcode(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid Postcode", "postcode query parameter is required")
		return
	}
	km, err := h.parseRadiusKM(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Radius", err.Error())
		return
	}

	sum, err := h.L.Lookup(r.Context(), pc, int(km*1000), h.FloodDistKM)
	if err != nil {
		writeLookupError(w, err)
		return
	}
	writeJSON(w, r, sum)
}
