package triage

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxUploadSize bounds the request body, JSON or multipart with attachment.
const maxUploadSize = 10 << 20

// Notifier is told about every completed triage, e.g. to forward a report.
type Notifier interface {
	NotifyTriage(ctx context.Context, res *Result) error
}

type Handler struct {
	svc      Service
	notifier Notifier
	logger   *zap.Logger
}

// NewHandler wires the HTTP boundary. notifier may be nil.
func NewHandler(svc Service, notifier Notifier, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, notifier: notifier, logger: logger}
}

type TriageRequest struct {
	Symptoms string   `json:"symptoms"`
	Patient  *Patient `json:"patient,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// HandleTriage accepts either a form (field "symptoms", optional file
// "ecg-file") or a JSON TriageRequest.
func (h *Handler) HandleTriage(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(w, r)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request"})
		return
	}
	if err := req.Validate(); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Symptoms are required."})
		return
	}

	res := h.svc.Process(r.Context(), req)

	if h.notifier != nil {
		if err := h.notifier.NotifyTriage(r.Context(), res); err != nil {
			h.logger.Warn("triage notification failed", zap.String("run_id", res.ID.String()), zap.Error(err))
		}
	}

	h.writeJSON(w, http.StatusOK, res)
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (Request, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var body TriageRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUploadSize)).Decode(&body); err != nil {
			return Request{}, err
		}
		return Request{Symptoms: body.Symptoms, Patient: body.Patient}, nil
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return Request{}, err
	}
	req := Request{Symptoms: r.FormValue("symptoms")}

	// The attachment is never parsed; only its name is echoed back.
	if file, header, err := r.FormFile("ecg-file"); err == nil {
		file.Close()
		req.Attachment = header.Filename
	}
	return req, nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	httpRequestsTotal.WithLabelValues(strconv.Itoa(status)).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/triage", h.HandleTriage)
}
