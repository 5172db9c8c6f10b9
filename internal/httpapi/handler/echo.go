package handler

import (
	"encoding/json"
	"net/http"
)

// echoResponse is the JSON body for /api/test. Received is omitted on GET and on errors.
type echoResponse struct {
	Status   string          `json:"status"`
	Message  string          `json:"message"`
	Received json.RawMessage `json:"received,omitempty"`
}

// TestStatus handles GET /api/test
//
// @Summary      API status
// @Description  Confirms the API routes are reachable.
// @Tags         diagnostics
// @Produce      json
// @Success      200  {object}  echoResponse
// @Router       /api/test [get]
func TestStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, echoResponse{Status: "ok", Message: "API is working"})
}

// TestEcho handles POST /api/test
//
// @Summary      Echo
// @Description  Echoes any JSON value back under "received".
// @Tags         diagnostics
// @Accept       json
// @Produce      json
// @Param        body  body      object  true  "Any JSON value"
// @Success      200   {object}  echoResponse
// @Failure      413   {string}  string  "Request body too large"
// @Failure      500   {object}  echoResponse  "Body is not valid JSON"
// @Router       /api/test [post]
func TestEcho(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeBody(r)
	if err != nil {
		if isTooLarge(err) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		writeJSON(w, r, http.StatusInternalServerError, echoResponse{Status: "error", Message: err.Error()})
		return
	}
	writeJSON(w, r, http.StatusOK, echoResponse{Status: "ok", Message: "API POST is working", Received: raw})
}
