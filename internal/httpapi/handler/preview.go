package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vntrieu/chatbackend/internal/preview"
)

// Preview actions accepted by PUT /api/preview.
const (
	PreviewActionPublish = "publish"
	PreviewActionShare   = "share"
)

// PreviewHandler serves the in-memory preview store behind the chat UI's preview pane.
type PreviewHandler struct {
	store   *preview.Store
	baseURL string
}

// NewPreviewHandler creates a PreviewHandler. baseURL is the public frontend URL used to build share links.
func NewPreviewHandler(store *preview.Store, baseURL string) *PreviewHandler {
	return &PreviewHandler{store: store, baseURL: strings.TrimRight(baseURL, "/")}
}

type createPreviewRequest struct {
	HTML  string `json:"html"`
	Title string `json:"title"`
}

type createPreviewResponse struct {
	PreviewID string `json:"previewId"`
}

type updatePreviewRequest struct {
	PreviewID string `json:"previewId"`
	Action    string `json:"action"`
}

type publishPreviewResponse struct {
	Success     bool `json:"success"`
	IsPublished bool `json:"isPublished"`
}

type sharePreviewResponse struct {
	ShareURL string `json:"shareUrl"`
}

// decodeInto reads one JSON value from the body into v.
func decodeInto(r *http.Request, v any) error {
	raw, err := decodeBody(r)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

// Create handles POST /api/preview
//
// @Summary      Save preview
// @Description  Stores HTML for later viewing and returns its ID. An empty title becomes "Untitled Preview".
// @Tags         preview
// @Accept       json
// @Produce      json
// @Param        body  body      createPreviewRequest   true  "Preview content"
// @Success      200   {object}  createPreviewResponse
// @Failure      400   {object}  errorResponse  "Missing preview content"
// @Failure      413   {string}  string         "Request body too large"
// @Failure      500   {object}  errorResponse  "Unreadable body"
// @Router       /api/preview [post]
func (h *PreviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPreviewRequest
	if err := decodeInto(r, &req); err != nil {
		if isTooLarge(err) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		slog.Warn("save preview: decode body", "request_id", requestID(r), "error", err)
		writeError(w, r, http.StatusInternalServerError, "Failed to save preview")
		return
	}

	id, _, err := h.store.Create(req.HTML, req.Title)
	if errors.Is(err, preview.ErrMissingContent) {
		writeError(w, r, http.StatusBadRequest, "Missing preview content")
		return
	}
	if err != nil {
		slog.Error("save preview", "request_id", requestID(r), "error", err)
		writeError(w, r, http.StatusInternalServerError, "Failed to save preview")
		return
	}
	writeJSON(w, r, http.StatusOK, createPreviewResponse{PreviewID: id})
}

// Get handles GET /api/preview?id={id}
//
// @Summary      Get preview
// @Tags         preview
// @Produce      json
// @Param        id   query     string  true  "Preview ID"
// @Success      200  {object}  preview.Preview
// @Failure      404  {object}  errorResponse  "Preview not found"
// @Router       /api/preview [get]
func (h *PreviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.Get(r.URL.Query().Get("id"))
	if err != nil {
		writeError(w, r, http.StatusNotFound, "Preview not found")
		return
	}
	writeJSON(w, r, http.StatusOK, p)
}

// Update handles PUT /api/preview
//
// @Summary      Publish or share preview
// @Description  action "publish" marks the preview published; action "share" returns a shareable link.
// @Tags         preview
// @Accept       json
// @Produce      json
// @Param        body  body      updatePreviewRequest   true  "Preview ID and action"
// @Success      200   {object}  publishPreviewResponse
// @Success      200   {object}  sharePreviewResponse
// @Failure      400   {object}  errorResponse  "Invalid action"
// @Failure      404   {object}  errorResponse  "Preview not found"
// @Failure      413   {string}  string         "Request body too large"
// @Failure      500   {object}  errorResponse  "Unreadable body"
// @Router       /api/preview [put]
func (h *PreviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updatePreviewRequest
	if err := decodeInto(r, &req); err != nil {
		if isTooLarge(err) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		slog.Warn("update preview: decode body", "request_id", requestID(r), "error", err)
		writeError(w, r, http.StatusInternalServerError, "Failed to update preview")
		return
	}

	// Unknown IDs are reported before the action is checked.
	if _, err := h.store.Get(req.PreviewID); err != nil {
		writeError(w, r, http.StatusNotFound, "Preview not found")
		return
	}

	switch req.Action {
	case PreviewActionPublish:
		if _, err := h.store.Publish(req.PreviewID); err != nil {
			writeError(w, r, http.StatusNotFound, "Preview not found")
			return
		}
		writeJSON(w, r, http.StatusOK, publishPreviewResponse{Success: true, IsPublished: true})
	case PreviewActionShare:
		writeJSON(w, r, http.StatusOK, sharePreviewResponse{ShareURL: h.baseURL + "/preview/" + req.PreviewID})
	default:
		writeError(w, r, http.StatusBadRequest, "Invalid action")
	}
}
