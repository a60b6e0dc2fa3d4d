package httpapi

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smart-mailbox/backend/internal/server/photos"
	"github.com/smart-mailbox/backend/internal/shared"
)

// uploadLimitBytes caps the multipart body of /upload.
const uploadLimitBytes = 32 * 1024 * 1024

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerTokenRequest struct {
	UID      string `json:"uid"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

type photoResponse struct {
	UID       string    `json:"uid"`
	Username  string    `json:"username"`
	Filename  string    `json:"filename"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
	URL       string    `json:"url"`
}

func (s *Server) home(c *gin.Context) {
	c.String(http.StatusOK, "Server is running")
}

func (s *Server) signup(c *gin.Context) {

	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	user, err := s.users.Signup(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, shared.ErrorAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "user already exists"})
			return
		}
		s.logger.Error(c.Request.Context(), "signup failed", "username", req.Username, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.logger.Info(c.Request.Context(), "user registered", "username", user.Username)
	c.JSON(http.StatusOK, gin.H{"message": "signup successful", "uid": user.ID})
}

func (s *Server) login(c *gin.Context) {

	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := s.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, shared.ErrorUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "login successful", "username": user.Username, "uid": user.ID})
}

func (s *Server) registerToken(c *gin.Context) {

	var req registerTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id := req.UID
	if id == "" {
		id = req.Username
	}
	if id == "" || req.Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uid and token are required"})
		return
	}

	if err := s.users.RegisterToken(c.Request.Context(), id, req.Token); err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown user"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "token registered"})
}

func (s *Server) upload(c *gin.Context) {

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, uploadLimitBytes)

	uid := c.PostForm("uid")
	status := c.PostForm("status")

	file, header, err := c.Request.FormFile("photo")
	if err != nil || uid == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo or uid is missing"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read photo"})
		return
	}

	photo, err := s.photos.Upload(c.Request.Context(), uid, status, data, header.Header.Get("Content-Type"))
	if err != nil {
		switch {
		case errors.Is(err, shared.ErrorMissingPhoto), errors.Is(err, shared.ErrorMissingOwner):
			c.JSON(http.StatusBadRequest, gin.H{"error": "photo or uid is missing"})
		case errors.Is(err, shared.ErrorNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown user"})
		default:
			s.logger.Error(c.Request.Context(), "upload failed", "uid", uid, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "photo uploaded", "photo_url": photo.URL})
}

func (s *Server) listPhotos(c *gin.Context) {

	uid := c.Query("uid")
	if uid == "" {
		// alias kept for older clients
		uid = c.Query("owner")
	}
	if uid == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uid parameter is required"})
		return
	}

	list, err := s.photos.ListByOwner(c.Request.Context(), uid)
	if err != nil {
		s.logger.Error(c.Request.Context(), "photo listing failed", "uid", uid, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]photoResponse, 0, len(list))
	for _, p := range list {
		resp = append(resp, toPhotoResponse(p))
	}

	c.JSON(http.StatusOK, resp)
}

func toPhotoResponse(p *photos.Photo) photoResponse {
	return photoResponse{
		UID:       p.UID,
		Username:  p.Username,
		Filename:  p.Filename,
		Timestamp: p.CreatedAt,
		Status:    p.Status,
		URL:       p.URL,
	}
}
