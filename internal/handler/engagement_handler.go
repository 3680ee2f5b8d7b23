package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"socialfeed/internal/middleware"
)

type ToggleLikeResponse struct {
	Liked bool `json:"liked"`
}

type ToggleShareResponse struct {
	Shared bool `json:"shared"`
}

type AddCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

type VoteRequest struct {
	OptionID string `json:"optionId" validate:"required"`
}

func (h *Handlers) ToggleLike(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserID(r.Context())
	if !ok {
		WriteError(w, "authorization required", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["postId"]

	liked, err := h.Services.Engagement.ToggleLike(r.Context(), postID, actorID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeSuccess(w, ToggleLikeResponse{Liked: liked}, http.StatusOK)
}

func (h *Handlers) ToggleShare(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserID(r.Context())
	if !ok {
		WriteError(w, "authorization required", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["postId"]

	shared, err := h.Services.Engagement.ToggleShare(r.Context(), postID, actorID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeSuccess(w, ToggleShareResponse{Shared: shared}, http.StatusOK)
}

func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserID(r.Context())
	if !ok {
		WriteError(w, "authorization required", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["postId"]

	var req AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	comment, err := h.Services.Engagement.AddComment(r.Context(), postID, actorID, req.Content)
	if err != nil {
		respondError(w, err)
		return
	}

	writeSuccess(w, comment, http.StatusCreated)
}

func (h *Handlers) Vote(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserID(r.Context())
	if !ok {
		WriteError(w, "authorization required", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["postId"]

	var req VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "optionId is required", http.StatusBadRequest)
		return
	}

	poll, err := h.Services.Engagement.VoteInPoll(r.Context(), postID, actorID, req.OptionID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeSuccess(w, poll, http.StatusOK)
}
