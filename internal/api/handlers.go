package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"doegen/app"
	"doegen/domain/core"
	"doegen/domain/design"
	"doegen/internal"
	"doegen/internal/errors"
)

const maxBodyBytes = 1 << 20

// Handler answers JSON generation requests
type Handler struct {
	design         *app.DesignService
	defaultSamples int
	logger         *internal.Logger
}

// NewHandler creates API handlers. defaultSamples applies when a request
// leaves samples at zero.
func NewHandler(design *app.DesignService, defaultSamples int) *Handler {
	return &Handler{
		design:         design,
		defaultSamples: defaultSamples,
		logger:         internal.DefaultLogger.With("API"),
	}
}

type factorRequest struct {
	Name   string   `json:"name"`
	Levels []string `json:"levels,omitempty"`
	Min    *float64 `json:"min,omitempty"`
	Max    *float64 `json:"max,omitempty"`
}

type doeRequest struct {
	Factors []factorRequest `json:"factors"`
}

type lhsRequest struct {
	Factors []factorRequest `json:"factors"`
	Samples int             `json:"samples"`
	Seed    *int64          `json:"seed,omitempty"`
	Sampler string          `json:"sampler,omitempty"`
}

type tableResponse struct {
	RunID       string            `json:"run_id"`
	Mode        design.Mode       `json:"mode"`
	Columns     []string          `json:"columns"`
	Rows        interface{}       `json:"rows"`
	Count       int               `json:"count"`
	Seed        int64             `json:"seed,omitempty"`
	Sampler     string            `json:"sampler,omitempty"`
	Fingerprint string            `json:"fingerprint"`
	Summary     *app.TableSummary `json:"summary,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ListSamplers reports the selectable samplers and the default
func (h *Handler) ListSamplers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"samplers": h.design.SamplerNames(),
		"default":  h.design.DefaultSampler(),
		"seed":     h.design.DefaultSeed(),
	})
}

// GenerateDOE handles POST /api/v1/doe
func (h *Handler) GenerateDOE(w http.ResponseWriter, r *http.Request) {
	var req doeRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	factors := make([]design.Factor, len(req.Factors))
	for i, f := range req.Factors {
		factors[i] = design.Factor{Name: f.Name, Levels: f.Levels}
	}

	run, err := h.design.GenerateDOE(r.Context(), app.DOERequest{Factors: factors})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tableResponse{
		RunID:       run.ID.String(),
		Mode:        run.Mode,
		Columns:     run.Table.Columns,
		Rows:        run.Table.Head(-1),
		Count:       run.Table.Len(),
		Fingerprint: run.Fingerprint.String(),
	})
}

// GenerateLHS handles POST /api/v1/lhs
func (h *Handler) GenerateLHS(w http.ResponseWriter, r *http.Request) {
	var req lhsRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	factors := make([]design.Factor, len(req.Factors))
	for i, f := range req.Factors {
		if f.Min == nil || f.Max == nil {
			h.writeError(w, errors.Wrap(core.NewFactorError(f.Name, core.ErrInvalidBounds), "invalid factors"))
			return
		}
		factors[i] = design.Factor{Name: f.Name, Bounds: design.Bounds{Min: *f.Min, Max: *f.Max}}
	}
	samples := req.Samples
	if samples == 0 {
		samples = h.defaultSamples
	}

	run, err := h.design.GenerateLHS(r.Context(), app.LHSRequest{
		Factors: factors,
		Samples: samples,
		Seed:    req.Seed,
		Sampler: req.Sampler,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	rows := make([][]float64, run.Table.Len())
	for i := range rows {
		rows[i] = make([]float64, len(run.Table.Columns))
		for j := range rows[i] {
			rows[i][j] = run.Table.Values.At(i, j)
		}
	}
	writeJSON(w, http.StatusOK, tableResponse{
		RunID:       run.ID.String(),
		Mode:        run.Mode,
		Columns:     run.Table.Columns,
		Rows:        rows,
		Count:       run.Table.Len(),
		Seed:        run.Seed,
		Sampler:     run.Sampler,
		Fingerprint: run.Fingerprint.String(),
		Summary:     app.Summarize(run.Table),
	})
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.InvalidInput(fmt.Sprintf("malformed request body: %v", err))
	}
	return nil
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed: %v", err)
		if code == "UNKNOWN" {
			code = errors.CodeInternalError
		}
	} else {
		h.logger.Debug("rejected request: %v", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		internal.DefaultLogger.With("API").Error("failed to encode response: %v", err)
		appErr := errors.InternalError("failed to encode response")
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(errorResponse{Error: appErr.Error(), Code: appErr.Code})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
