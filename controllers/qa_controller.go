package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"virtualta/models"
	"virtualta/services"
)

const invalidBody = "Invalid request body."

type QAController struct {
	svc    *services.QAService
	logger *zap.Logger
}

func NewQAController(svc *services.QAService, logger *zap.Logger) *QAController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QAController{svc: svc, logger: logger}
}

// AnswerQuestion handles POST /.
func (q *QAController) AnswerQuestion(c *gin.Context) {
	var req models.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": invalidBody})
		return
	}

	resp, err := q.svc.Answer(req)
	switch {
	case errors.Is(err, services.ErrMissingQuestion):
		c.JSON(http.StatusBadRequest, gin.H{"detail": services.ErrMissingQuestion.Error()})
		return
	case errors.Is(err, services.ErrInvalidImage):
		q.logger.Debug("rejected image", zap.String("request_id", c.GetString("request_id")), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"detail": services.ErrInvalidImage.Error()})
		return
	case err != nil:
		q.logger.Error("answer question", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}

	c.JSON(http.StatusOK, resp)
}
