package receipt

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/noah-isme/receipt-points/internal/common"
)

// Handler exposes the receipt processing endpoints.
type Handler struct {
	Svc *Service
}

// Process handles POST /receipts/process. The body is decoded, validated
// field by field, then handed to the service; validation failures are
// reported with per-field details and never reach the rule engine.
func (h *Handler) Process(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "receipt service not configured", nil)
		return
	}
	var raw RawReceipt
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeValidation, "invalid json payload", nil)
		return
	}
	if fieldErrs := Validate(raw); len(fieldErrs) > 0 {
		common.JSONError(w, http.StatusBadRequest, common.CodeValidation, "receipt failed validation", fieldErrs)
		return
	}
	rec, err := h.Svc.ProcessReceipt(r.Context(), raw)
	if err != nil {
		writeAppError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]string{"id": rec.ID})
}

// Points handles GET /receipts/{id}/points.
func (h *Handler) Points(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "receipt service not configured", nil)
		return
	}
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		common.JSONError(w, http.StatusBadRequest, common.CodeValidation, "id is required", nil)
		return
	}
	rec, found, err := h.Svc.Lookup(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	if !found {
		common.JSONError(w, http.StatusNotFound, common.CodeNotFound, "no receipt found for that id", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]int64{"points": rec.Points})
}

func writeAppError(w http.ResponseWriter, err error) {
	if appErr, ok := common.AsAppError(err); ok {
		common.JSONError(w, appErr.HTTPStatus, appErr.Code, appErr.Message, nil)
		return
	}
	common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "unexpected error", nil)
}
