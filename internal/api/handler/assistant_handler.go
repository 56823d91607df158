package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/forkcast/forkcast/internal/api/validation"
	"github.com/forkcast/forkcast/internal/domain"
	"github.com/forkcast/forkcast/internal/service"
	"github.com/forkcast/forkcast/pkg/problem"
)

type AssistantHandler struct {
	service service.AssistantService
}

func NewAssistantHandler(service service.AssistantService) *AssistantHandler {
	return &AssistantHandler{service: service}
}

// Ask handles POST /v1/users/{userId}/assistant
// @Summary Ask the kitchen assistant
// @Description Route an utterance through the local intent table. Unmatched queries fall through to the completion service when configured. Rate limited.
// @Tags assistant
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param request body domain.AssistantRequest true "User utterance"
// @Success 200 {object} domain.AssistantResponse
// @Failure 400 {object} problem.Problem "Invalid request body"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 429 {object} problem.Problem "Rate limit exceeded"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/assistant [post]
func (h *AssistantHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req domain.AssistantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	response, err := h.service.Answer(r.Context(), chi.URLParam(r, "userId"), req)
	if err != nil {
		writeServiceError(w, err, "Failed to answer query")
		return
	}

	writeJSON(w, http.StatusOK, response)
}
