package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"schoolfinder/core/export"
	"schoolfinder/core/normalize"
	"schoolfinder/schools"
)

type searchRequest struct {
	Address string `json:"address"`
}

type searchResponse struct {
	Schools []schools.SchoolRecord `json:"schools"`
	Count   int                    `json:"count"`
}

type exportRequest struct {
	Filename string                 `json:"filename"`
	Schools  []schools.SchoolRecord `json:"schools"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// handleSearch runs one address search. The UI is expected to keep a single
// request outstanding; the handler itself is stateless and safe to call
// concurrently.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	address := strings.TrimSpace(req.Address)
	if address == "" {
		writeError(w, http.StatusBadRequest, errorResponse{Error: "address is required"})
		return
	}

	records, err := s.finder.FindNearby(r.Context(), address)
	if err != nil {
		status := http.StatusBadGateway
		resp := errorResponse{Error: err.Error()}

		var nerr *normalize.Error
		if errors.As(err, &nerr) {
			resp.Kind = nerr.Kind.String()
		}

		s.logger.ErrorContext(r.Context(), "school search failed",
			slog.String("address", address),
			slog.String("error", err.Error()),
		)
		writeError(w, status, resp)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(searchResponse{Schools: records, Count: len(records)}); err != nil {
		s.logger.ErrorContext(r.Context(), "failed to encode search response", slog.String("error", err.Error()))
	}
}

// handleExport converts the posted records to a CSV attachment. Export
// errors are reported on their own; they never affect fetched data, which
// lives client-side.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if len(req.Schools) == 0 {
		// Downloading an empty file is a no-op with a diagnostic, not a
		// server failure.
		writeError(w, http.StatusBadRequest, errorResponse{Error: "no records to export"})
		return
	}

	if err := export.ServeDownload(w, req.Filename, req.Schools); err != nil {
		s.logger.ErrorContext(r.Context(), "csv export failed", slog.String("error", err.Error()))
	}
}

func writeError(w http.ResponseWriter, status int, resp errorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
