package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/abhisek/mathsheet/internal/export"
	"github.com/abhisek/mathsheet/internal/llm"
	"github.com/abhisek/mathsheet/internal/problemgen"
	"github.com/abhisek/mathsheet/internal/session"
	"github.com/abhisek/mathsheet/internal/store"
	"github.com/abhisek/mathsheet/internal/worksheet"
)

const (
	defaultListLimit = 20
	maxListLimit     = 200
	docxContentType  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

type handler struct {
	svc    *worksheet.Service
	logger *zap.Logger
	locale session.Locale
}

// numberField accepts a JSON number or string and keeps its raw text, so
// that "abc" reaches form validation instead of failing the decode.
type numberField string

func (n *numberField) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = numberField(s)
		return nil
	}
	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	*n = numberField(b)
	return nil
}

type createRequest struct {
	Min            numberField `json:"min"`
	Max            numberField `json:"max"`
	Count          numberField `json:"count"`
	Operations     []string    `json:"operations"`
	NumOperations  int         `json:"num_operations"`
	UseParentheses bool        `json:"use_parentheses"`
}

type worksheetResponse struct {
	ID        string                `json:"id"`
	Sequence  int64                 `json:"sequence"`
	CreatedAt time.Time             `json:"created_at"`
	Params    store.WorksheetParams `json:"params"`
	Problems  []string              `json:"problems"`
	Model     string                `json:"model"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func toResponse(ws *store.Worksheet) worksheetResponse {
	problems := ws.Problems
	if problems == nil {
		problems = []string{}
	}
	return worksheetResponse{
		ID:        ws.ID,
		Sequence:  ws.Sequence,
		CreatedAt: ws.CreatedAt,
		Params:    ws.Params,
		Problems:  problems,
		Model:     ws.Model,
	}
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"model":  h.svc.Model(),
	})
}

func (h *handler) create(w http.ResponseWriter, r *http.Request) {
	log := h.requestLog(r)
	locale := h.localeFor(r)

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid request body", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid request body"})
		return
	}

	ops, unknown := problemgen.OperationsFromKeys(req.Operations)
	if len(unknown) > 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: fmt.Sprintf("unknown operations: %s", strings.Join(unknown, ", ")),
		})
		return
	}

	cfg, err := problemgen.ParseConfig(problemgen.FormInput{
		Min:            string(req.Min),
		Max:            string(req.Max),
		Count:          string(req.Count),
		Operations:     ops,
		UseParentheses: req.UseParentheses,
		NumOperations:  req.NumOperations,
	})
	if err != nil {
		log.Info("worksheet request rejected", zap.Error(err))
		h.writeError(w, locale, err)
		return
	}

	ws, err := h.svc.Create(llm.WithPurpose(r.Context(), llm.PurposeAPI), cfg)
	if err != nil {
		log.Error("create worksheet", zap.Error(err))
		h.writeError(w, locale, err)
		return
	}
	writeJSON(w, http.StatusCreated, toResponse(ws))
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "limit must be a positive integer"})
			return
		}
		limit = min(n, maxListLimit)
	}

	list, err := h.svc.List(r.Context(), limit)
	if err != nil {
		h.requestLog(r).Error("list worksheets", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal", Message: "internal server error"})
		return
	}

	out := make([]worksheetResponse, len(list))
	for i := range list {
		out[i] = toResponse(&list[i])
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) get(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toResponse(ws))
}

func (h *handler) docx(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.lookup(w, r)
	if !ok {
		return
	}
	locale := h.localeFor(r)

	var buf bytes.Buffer
	if err := export.WriteDOCX(&buf, ws.Problems, export.Options{Locale: string(locale)}); err != nil {
		h.requestLog(r).Error("render docx", zap.String("id", ws.ID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal", Message: "internal server error"})
		return
	}

	w.Header().Set("Content-Type", docxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(string(locale))))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *handler) lookup(w http.ResponseWriter, r *http.Request) (*store.Worksheet, bool) {
	id := chi.URLParam(r, "id")
	ws, err := h.svc.Get(r.Context(), id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not_found", Message: "worksheet not found"})
		return nil, false
	case err != nil:
		h.requestLog(r).Error("get worksheet", zap.String("id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal", Message: "internal server error"})
		return nil, false
	}
	return ws, true
}

// writeError maps a worksheet error to a status code and localized body.
func (h *handler) writeError(w http.ResponseWriter, locale session.Locale, err error) {
	kind := problemgen.KindOf(err)
	status := http.StatusInternalServerError
	switch {
	case problemgen.IsValidation(err):
		status = http.StatusUnprocessableEntity
	case kind == problemgen.KindGenerationFailed, kind == problemgen.KindMalformedResponse:
		status = http.StatusBadGateway
	}
	writeJSON(w, status, errorResponse{
		Error:   kind.String(),
		Message: session.ErrorMessage(err, locale),
	})
}

// localeFor picks the message language from ?lang= or Accept-Language.
func (h *handler) localeFor(r *http.Request) session.Locale {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return session.ParseLocale(lang)
	}
	accept := strings.ToLower(r.Header.Get("Accept-Language"))
	switch {
	case strings.HasPrefix(accept, "en"):
		return session.LocaleEN
	case strings.HasPrefix(accept, "vi"):
		return session.LocaleVI
	}
	return h.locale
}

func (h *handler) requestLog(r *http.Request) *zap.Logger {
	return h.logger.With(zap.String("request_id", middleware.GetReqID(r.Context())))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
