package controllers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"quillpad/app/apperrors"
	"quillpad/app/middleware"
	"quillpad/app/models"
	"quillpad/app/services"

	"github.com/gorilla/mux"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	commentService *services.CommentService
	log            *slog.Logger
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService, log *slog.Logger) *CommentController {
	return &CommentController{
		commentService: commentService,
		log:            log,
	}
}

// Index handles GET /api/posts/{id}/comments
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	comments, err := cc.commentService.ListPostComments(r.Context(), postID)
	if err != nil {
		sendError(w, cc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, comments)
}

// Create handles POST /api/posts/{id}/comments. The comment's author is the
// session identity, whatever the request body claims.
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		sendError(w, cc.log, apperrors.ErrUnauthorized)
		return
	}
	postID := mux.Vars(r)["id"]

	var input models.CreateCommentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendError(w, cc.log, fmt.Errorf("%w: invalid request body", apperrors.ErrInvalidInput))
		return
	}
	input.Author = identity.Key()

	comment, err := cc.commentService.CreateComment(r.Context(), postID, input)
	if err != nil {
		sendError(w, cc.log, err)
		return
	}
	sendJSON(w, http.StatusCreated, comment)
}

// Delete handles DELETE /api/comments/{id} and its nested alias
// DELETE /api/posts/{id}/comments/{commentId}.
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		sendError(w, cc.log, apperrors.ErrUnauthorized)
		return
	}
	vars := mux.Vars(r)
	id := vars["commentId"]
	if id == "" {
		id = vars["id"]
	}

	if err := cc.commentService.DeleteComment(r.Context(), id, identity.Key()); err != nil {
		sendError(w, cc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, messageResponse{Message: "Comment deleted successfully"})
}
