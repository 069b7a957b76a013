package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"storyboardgen/internal/imagegen"
	"storyboardgen/internal/llm"
	"storyboardgen/internal/storyboard"
	"storyboardgen/pkg/config"
)

// Server exposes storyboard generation over HTTP. Providers may be nil
// when their credentials are not configured; affected endpoints degrade
// instead of preventing startup.
type Server struct {
	cfg    *config.Config
	llm    llm.Client
	images imagegen.Generator
}

func New(cfg *config.Config, llmClient llm.Client, imageGen imagegen.Generator) *Server {
	return &Server{
		cfg:    cfg,
		llm:    llmClient,
		images: imageGen,
	}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	r.GET("/health", s.handleHealth)

	api := r.Group("/api")
	{
		api.POST("/generate-script", s.handleGenerateScript)
		api.POST("/generate-image", s.handleGenerateImage)
	}

	return r
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

type generateScriptRequest struct {
	Idea string `json:"idea"`
	Tone string `json:"tone"`
}

type generateImageRequest struct {
	VisualDescription string `json:"visual_description"`
	Style             string `json:"style"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"groq_key_set": s.llm != nil,
		"hf_token_set": s.images != nil,
	})
}

// handleGenerateScript returns the parsed script, falling back to a
// placeholder script when the model's output cannot be used. Only a
// provider outage surfaces as an error.
func (s *Server) handleGenerateScript(c *gin.Context) {
	var req generateScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Idea == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "idea is required"})
		return
	}
	if req.Tone == "" {
		req.Tone = config.DefaultTone
	}

	if s.llm == nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "script provider is not configured"})
		return
	}

	script, err := s.llm.GenerateScript(c.Request.Context(), req.Idea, req.Tone)
	if err != nil {
		slog.Error("Script generation failed", "error", err)
		if errors.Is(err, storyboard.ErrProviderUnavailable) {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, script)
}

// handleGenerateImage always answers 200 with a usable PNG data URI; a
// failed generation yields a transparent pixel so clients can render
// something for every scene.
func (s *Server) handleGenerateImage(c *gin.Context) {
	var req generateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.VisualDescription == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "visual_description is required"})
		return
	}

	if s.images == nil {
		c.JSON(http.StatusOK, gin.H{"image": imagegen.DataURI(imagegen.TransparentPixel())})
		return
	}

	data, err := s.images.Generate(c.Request.Context(), req.VisualDescription, req.Style)
	if err != nil {
		slog.Warn("Image generation failed, returning transparent pixel", "error", err)
		c.JSON(http.StatusOK, gin.H{"image": imagegen.DataURI(imagegen.TransparentPixel())})
		return
	}

	c.JSON(http.StatusOK, gin.H{"image": imagegen.DataURI(data)})
}
