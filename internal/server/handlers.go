package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mark3labs/vacancy/internal/generation"
	"github.com/mark3labs/vacancy/internal/logger"
	"github.com/mark3labs/vacancy/internal/wizard"
)

// GenerateRequest is the body of POST /api/generate-vacancy.
type GenerateRequest struct {
	Answers []string `json:"answers"`
}

// QuestionsResponse is the body of GET /api/questions.
type QuestionsResponse struct {
	Questions []wizard.Question `json:"questions"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, QuestionsResponse{Questions: wizard.Questions[:]})
}

// handleGenerate always answers 200. Failures travel in the body: text holds
// the message for clients that only read text, error marks the failure.
func (s *Server) handleGenerate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("generate-vacancy: bad request body: %v", err)
		msg := generation.MsgServerPrefix + err.Error()
		c.JSON(http.StatusOK, generation.Result{Text: msg, Error: msg})
		return
	}

	ctx := c.Request.Context()
	if s.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout)
		defer cancel()
	}

	c.JSON(http.StatusOK, s.gen.Generate(ctx, req.Answers))
}
