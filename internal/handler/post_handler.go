package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"socialfeed/internal/middleware"
	"socialfeed/internal/models"
	"socialfeed/internal/service"
)

type FeedResponse struct {
	Feed  []models.FeedItem `json:"feed"`
	Total int               `json:"total"`
}

type CreatePollRequest struct {
	Question  string     `json:"question" validate:"required"`
	Options   []string   `json:"options" validate:"required,min=2"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

type CreatePromotionRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	ButtonText  string `json:"buttonText"`
	ButtonLink  string `json:"buttonLink" validate:"required"`
	WebsiteLink string `json:"websiteLink"`
}

func (h *Handlers) GetFeed(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	feedQuery := service.FeedQuery{
		Query:     query.Get("query"),
		OwnerID:   query.Get("userId"),
		SortBy:    query.Get("sortBy"),
		SortOrder: query.Get("sortType"),
		Page:      page,
		PageSize:  limit,
	}

	items, total, err := h.Services.Feed.Feed(r.Context(), feedQuery)
	if err != nil {
		respondError(w, err)
		return
	}

	writeSuccess(w, FeedResponse{Feed: items, Total: total}, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserID(r.Context())
	if !ok {
		WriteError(w, "authorization required", http.StatusUnauthorized)
		return
	}

	content, image, cleanup, err := h.parsePostForm(r)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer cleanup()

	post, err := h.Services.Post.CreatePost(r.Context(), ownerID, content, image)
	if err != nil {
		respondError(w, err)
		return
	}

	writeSuccess(w, post, http.StatusCreated)
}

func (h *Handlers) CreatePoll(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserID(r.Context())
	if !ok {
		WriteError(w, "authorization required", http.StatusUnauthorized)
		return
	}

	var req CreatePollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "poll requires a question and at least 2 options", http.StatusBadRequest)
		return
	}

	post, err := h.Services.Post.CreatePoll(r.Context(), ownerID, service.CreatePollRequest{
		Question:  req.Question,
		Options:   req.Options,
		ExpiresAt: req.ExpiresAt,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	writeSuccess(w, post, http.StatusCreated)
}

func (h *Handlers) CreatePromotion(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserID(r.Context())
	if !ok {
		WriteError(w, "authorization required", http.StatusUnauthorized)
		return
	}

	var req CreatePromotionRequest
	var image *service.ImageUpload
	cleanup := func() {}

	if isMultipart(r) {
		if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
			WriteError(w, "invalid multipart form", http.StatusBadRequest)
			return
		}
		req = CreatePromotionRequest{
			Title:       r.FormValue("title"),
			Description: r.FormValue("description"),
			ButtonText:  r.FormValue("buttonText"),
			ButtonLink:  r.FormValue("buttonLink"),
			WebsiteLink: r.FormValue("websiteLink"),
		}
		var err error
		image, cleanup, err = h.formImage(r)
		if err != nil {
			WriteError(w, err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, "invalid request body", http.StatusBadRequest)
			return
		}
	}
	defer cleanup()

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "title and button link are required", http.StatusBadRequest)
		return
	}

	post, err := h.Services.Post.CreatePromotion(r.Context(), ownerID, service.CreatePromotionRequest{
		Title:       req.Title,
		Description: req.Description,
		ButtonText:  req.ButtonText,
		ButtonLink:  req.ButtonLink,
		WebsiteLink: req.WebsiteLink,
	}, image)
	if err != nil {
		respondError(w, err)
		return
	}

	writeSuccess(w, post, http.StatusCreated)
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// parsePostForm accepts either a multipart form (content + image file) or a
// plain JSON body with content only.
func (h *Handlers) parsePostForm(r *http.Request) (string, *service.ImageUpload, func(), error) {
	if !isMultipart(r) {
		var req struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return "", nil, func() {}, errors.New("invalid request body")
		}
		return req.Content, nil, func() {}, nil
	}

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		return "", nil, func() {}, errors.New("invalid multipart form")
	}

	image, cleanup, err := h.formImage(r)
	if err != nil {
		return "", nil, func() {}, err
	}

	return r.FormValue("content"), image, cleanup, nil
}

func (h *Handlers) formImage(r *http.Request) (*service.ImageUpload, func(), error) {
	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, func() {}, errors.New("invalid image upload")
	}

	if header.Size > h.Cfg.MaxUploadSize {
		file.Close()
		return nil, func() {}, errors.New("image exceeds maximum upload size")
	}

	upload := &service.ImageUpload{
		FileName: header.Filename,
		Reader:   file,
		Size:     header.Size,
	}

	return upload, func() { file.Close() }, nil
}
