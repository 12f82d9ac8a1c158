package http

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"community-board/internal/domain"
	"community-board/internal/service"
)

// PostHandler serves the three post boards and their comments. GET listings
// are open; the POST routes sit behind the session gate.
type PostHandler struct {
	postService *service.PostService
}

// NewPostHandler creates the handler.
func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// CreateLostFound handles POST /lostfound (multipart form, optional image).
func (h *PostHandler) CreateLostFound(c *gin.Context) {
	input := service.LostFoundInput{
		Name:        c.PostForm("name"),
		Category:    c.PostForm("category"),
		Type:        c.PostForm("type"),
		Item:        c.PostForm("item"),
		Description: c.PostForm("description"),
	}

	upload, closeUpload := formUpload(c, "image")
	defer closeUpload()

	_, err := h.postService.CreateLostFound(c.Request.Context(), input, upload)
	if err != nil && !errors.Is(err, service.ErrRejectedUpload) {
		flashServiceError(c, err, "/lostfound")
		return
	}
	finishCreate(c, err, "Item posted successfully!", "/lostfound")
}

// ListLostFound handles GET /lostfound.
func (h *PostHandler) ListLostFound(c *gin.Context) {
	posts, err := h.postService.ListLostFound(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("Handler.ListLostFound: listing failed")
		ErrorResponse(c, http.StatusInternalServerError, "could not load posts")
		return
	}
	listResponse(c, posts)
}

// CreateComplaint handles POST /complaint (multipart form, optional image).
func (h *PostHandler) CreateComplaint(c *gin.Context) {
	input := service.ComplaintInput{
		Name:  c.PostForm("name"),
		Issue: c.PostForm("issue"),
	}

	upload, closeUpload := formUpload(c, "image")
	defer closeUpload()

	_, err := h.postService.CreateComplaint(c.Request.Context(), input, upload)
	if err != nil && !errors.Is(err, service.ErrRejectedUpload) {
		flashServiceError(c, err, "/complaint")
		return
	}
	finishCreate(c, err, "Complaint submitted!", "/complaint")
}

// ListComplaints handles GET /complaint.
func (h *PostHandler) ListComplaints(c *gin.Context) {
	complaints, err := h.postService.ListComplaints(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("Handler.ListComplaints: listing failed")
		ErrorResponse(c, http.StatusInternalServerError, "could not load posts")
		return
	}
	listResponse(c, complaints)
}

// CreateHelp handles POST /help (multipart form, optional share_file).
func (h *PostHandler) CreateHelp(c *gin.Context) {
	input := service.HelpInput{
		Name:    c.PostForm("name"),
		Message: c.PostForm("message"),
	}

	upload, closeUpload := formUpload(c, "share_file")
	defer closeUpload()

	_, err := h.postService.CreateHelp(c.Request.Context(), input, upload)
	if err != nil && !errors.Is(err, service.ErrRejectedUpload) {
		flashServiceError(c, err, "/help")
		return
	}
	finishCreate(c, err, "Help request posted!", "/help")
}

// ListHelp handles GET /help.
func (h *PostHandler) ListHelp(c *gin.Context) {
	posts, err := h.postService.ListHelp(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("Handler.ListHelp: listing failed")
		ErrorResponse(c, http.StatusInternalServerError, "could not load posts")
		return
	}
	listResponse(c, posts)
}

// CreateComment handles POST /comments (post_id, comment).
func (h *PostHandler) CreateComment(c *gin.Context) {
	postID, err := strconv.ParseUint(c.PostForm("post_id"), 10, 32)
	if err != nil {
		flashServiceError(c, service.ErrValidationFailed, "/lostfound")
		return
	}
	if _, err := h.postService.AddComment(c.Request.Context(), uint(postID), c.PostForm("comment")); err != nil {
		flashServiceError(c, err, "/lostfound")
		return
	}
	setFlash(c, "success", "Comment added!")
	redirect(c, "/lostfound")
}

// ListComments handles GET /comments?post_id=N.
func (h *PostHandler) ListComments(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Query("post_id"), 10, 32)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "post_id is required")
		return
	}
	comments, err := h.postService.ListComments(c.Request.Context(), uint(postID))
	if err != nil {
		logrus.WithError(err).Error("Handler.ListComments: listing failed")
		ErrorResponse(c, http.StatusInternalServerError, "could not load comments")
		return
	}
	listResponse(c, comments)
}

// formUpload extracts the optional file field as a PendingUpload. The close
// function is safe to defer unconditionally.
func formUpload(c *gin.Context, field string) (*domain.PendingUpload, func()) {
	header, err := c.FormFile(field)
	if err != nil || header == nil || header.Filename == "" {
		return nil, func() {}
	}
	file, err := header.Open()
	if err != nil {
		logrus.WithError(err).WithField("field", field).Warn("Failed to open uploaded file")
		return nil, func() {}
	}
	return &domain.PendingUpload{
		Filename: header.Filename,
		Size:     header.Size,
		Data:     file,
	}, closeQuietly(file)
}

func closeQuietly(file multipart.File) func() {
	return func() { file.Close() }
}

// finishCreate flashes the outcome of a successful insert. A rejected
// attachment does not fail the post; it downgrades the flash to a warning
// that the file was dropped.
func finishCreate(c *gin.Context, err error, successMsg, backTo string) {
	if errors.Is(err, service.ErrRejectedUpload) {
		setFlash(c, "error", "Posted, but the file was rejected: invalid type or too large.")
	} else {
		setFlash(c, "success", successMsg)
	}
	redirect(c, backTo)
}

// listResponse wraps a listing with any pending flash for the renderer.
func listResponse(c *gin.Context, data interface{}) {
	response := gin.H{"data": data}
	if flash := popFlash(c); flash != nil {
		response["flash"] = flash
	}
	SuccessResponse(c, http.StatusOK, response)
}
