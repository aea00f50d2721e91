package api

import (
	"net/http"
)

// ActionHandler serves a route whose behaviour is selected by the "action"
// body field.
type ActionHandler struct {
	dispatcher   *Dispatcher
	maxBodyBytes int64
}

// NewActionHandler creates a handler over dispatcher.
func NewActionHandler(dispatcher *Dispatcher, maxBodyBytes int64) *ActionHandler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}
	return &ActionHandler{dispatcher: dispatcher, maxBodyBytes: maxBodyBytes}
}

// HandleAction handles POST requests carrying {"action": "..."}. A missing or
// non-string action is treated as an unknown action.
func (h *ActionHandler) HandleAction(w http.ResponseWriter, r *http.Request) {
	body, err := ParseBody(w, r, h.maxBodyBytes)
	if err != nil {
		writeBodyError(w, r, h.dispatcher.logger, err)
		return
	}

	name, _ := body["action"].(string)
	status, resp := h.dispatcher.Dispatch(r.Context(), name, body)
	writeJSON(w, status, resp)
}
