package handler

import (
	"net/http"
)

// RootMessage is the fixed message returned by GET /. The frontend checks for this exact text.
const RootMessage = "FastAPI backend is running"

// rootResponse is the JSON body for GET /.
type rootResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// healthResponse is the JSON body for GET /healthz.
type healthResponse struct {
	Status string `json:"status"`
}

// Root handles GET /.
//
// @Summary      Root status
// @Description  Reports that the backend is up. No authentication required.
// @Tags         health
// @Produce      json
// @Success      200  {object}  rootResponse
// @Router       / [get]
func Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, rootResponse{Status: "ok", Message: RootMessage})
}

// Healthz handles GET /healthz.
//
// @Summary      Health check
// @Description  Liveness/readiness check. No authentication required.
// @Tags         health
// @Produce      json
// @Success      200  {object}  healthResponse
// @Router       /healthz [get]
func Healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
