package controllers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"quillpad/app/apperrors"
	"quillpad/app/middleware"
	"quillpad/app/models"
	"quillpad/app/services"

	"github.com/gorilla/mux"
)

// PostController handles HTTP requests for blog posts
type PostController struct {
	postService *services.PostService
	log         *slog.Logger
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService, log *slog.Logger) *PostController {
	return &PostController{
		postService: postService,
		log:         log,
	}
}

// queryInt reads an integer query parameter, falling back to zero (and
// thereby the service defaults) for absent or malformed values.
func queryInt(r *http.Request, name string) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

// Index handles GET /api/posts
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	page, err := pc.postService.ListPosts(r.Context(), queryInt(r, "page"), queryInt(r, "limit"), "")
	if err != nil {
		sendError(w, pc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, page)
}

// MyPosts handles GET /api/posts/my-posts, listing only the caller's posts.
func (pc *PostController) MyPosts(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		sendError(w, pc.log, apperrors.ErrUnauthorized)
		return
	}

	page, err := pc.postService.ListPosts(r.Context(), queryInt(r, "page"), queryInt(r, "limit"), identity.Key())
	if err != nil {
		sendError(w, pc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, page)
}

// Show handles GET /api/posts/{id}
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	post, err := pc.postService.GetPost(r.Context(), id)
	if err != nil {
		sendError(w, pc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Create handles POST /api/posts. The author recorded on the post is the
// session identity, whatever the request body claims.
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		sendError(w, pc.log, apperrors.ErrUnauthorized)
		return
	}

	var input models.CreatePostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendError(w, pc.log, fmt.Errorf("%w: invalid request body", apperrors.ErrInvalidInput))
		return
	}
	input.Author = identity.Key()

	post, err := pc.postService.CreatePost(r.Context(), input)
	if err != nil {
		sendError(w, pc.log, err)
		return
	}
	sendJSON(w, http.StatusCreated, post)
}

// Edit handles PUT /api/posts/{id}
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		sendError(w, pc.log, apperrors.ErrUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]

	var input models.UpdatePostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendError(w, pc.log, fmt.Errorf("%w: invalid request body", apperrors.ErrInvalidInput))
		return
	}

	post, err := pc.postService.UpdatePost(r.Context(), id, input, identity.Key())
	if err != nil {
		sendError(w, pc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// reactRequest is the PATCH body for like and unlike. The userId field is
// accepted for compatibility but the session identity is authoritative.
type reactRequest struct {
	UserID string `json:"userId"`
	Action string `json:"action"`
}

// React handles PATCH /api/posts/{id}
func (pc *PostController) React(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		sendError(w, pc.log, apperrors.ErrUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]

	var req reactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, pc.log, fmt.Errorf("%w: invalid request body", apperrors.ErrInvalidInput))
		return
	}

	post, err := pc.postService.SetLike(r.Context(), id, identity.Key(), req.Action)
	if err != nil {
		sendError(w, pc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Delete handles DELETE /api/posts/{id}
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		sendError(w, pc.log, apperrors.ErrUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]

	if err := pc.postService.DeletePost(r.Context(), id, identity.Key()); err != nil {
		sendError(w, pc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, messageResponse{Message: "Post deleted successfully"})
}
