package handler

import (
	"net/http"
)

// ChatReply is the canned reply returned for every chat request.
const ChatReply = "This is a test response from the minimal FastAPI server"

// chatResponse is the JSON body for POST /api/chat. Preview is always null until
// a real model backend produces previewable content.
type chatResponse struct {
	Response string  `json:"response"`
	Preview  *string `json:"preview"`
}

// Chat handles POST /api/chat
//
// The body must be a JSON object; its contents are discarded.
//
// @Summary      Chat (stub)
// @Description  Accepts any JSON object and always returns the same canned reply. The body is not inspected.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        body  body      object        true  "Arbitrary JSON object"
// @Success      200   {object}  chatResponse
// @Failure      413   {string}  string  "Request body too large"
// @Failure      422   {string}  string  "Body is not a JSON object"
// @Failure      429   {string}  string  "Rate limit exceeded"
// @Router       /api/chat [post]
func Chat(w http.ResponseWriter, r *http.Request) {
	if _, err := decodeObject(r); err != nil {
		writeDecodeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, chatResponse{Response: ChatReply})
}
