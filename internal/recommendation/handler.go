package recommendation

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// QueryRecorder is the fire-and-forget query log port. Implementations must
// never block or fail the recommendation path.
type QueryRecorder interface {
	Record(endpoint, query string)
}

// Transcriber converts uploaded audio bytes to plain text, treated as a
// black box collaborator
type Transcriber interface {
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
}

// Handler handles HTTP requests for recommendation operations
type Handler struct {
	service     Service
	recorder    QueryRecorder
	transcriber Transcriber
}

// NewHandler creates a new recommendation handler
func NewHandler(service Service, recorder QueryRecorder, transcriber Transcriber) *Handler {
	return &Handler{
		service:     service,
		recorder:    recorder,
		transcriber: transcriber,
	}
}

// RecommendRequest is the JSON body for text-based recommendations
type RecommendRequest struct {
	UserInput string `json:"user_input"`
	K         int    `json:"k"`
}

// Recommend handles text-based recommendation requests
func (h *Handler) Recommend(c *gin.Context) {
	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.UserInput == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_input is required"})
		return
	}

	if h.recorder != nil {
		go h.recorder.Record("/recommend", req.UserInput)
	}

	recs, err := h.service.Recommend(c.Request.Context(), req.UserInput, req.K)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, recs)
}

// VoiceResponse pairs the transcribed query with its recommendations
type VoiceResponse struct {
	Query string           `json:"query"`
	Recs  []Recommendation `json:"recs"`
}

// RecommendVoice accepts an audio upload, transcribes it, then runs the same
// pipeline on the transcript
func (h *Handler) RecommendVoice(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "audio file is required"})
		return
	}

	k := 0
	if kStr := c.PostForm("k"); kStr != "" {
		if parsed, err := strconv.Atoi(kStr); err == nil {
			k = parsed
		}
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read audio file"})
		return
	}
	defer file.Close()

	query, err := h.transcriber.Transcribe(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "transcription failed: " + err.Error()})
		return
	}

	if h.recorder != nil {
		go h.recorder.Record("/recommend/voice", query)
	}

	recs, err := h.service.Recommend(c.Request.Context(), query, k)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, VoiceResponse{Query: query, Recs: recs})
}

// RegisterRoutes registers all recommendation routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/recommend", h.Recommend)
	router.POST("/recommend/voice", h.RecommendVoice)
}
