package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mcq-practice-service/internal/app"
	"mcq-practice-service/internal/domain"
	"mcq-practice-service/internal/quiz"
	"mcq-practice-service/internal/response"
	"mcq-practice-service/internal/validator"
)

// SessionHandler exposes practice-session operations over REST.
type SessionHandler struct {
	service *app.QuizService
}

func NewSessionHandler(service *app.QuizService) *SessionHandler {
	return &SessionHandler{service: service}
}

type categoryRequest struct {
	Category string `json:"category" binding:"required"`
}

type answerRequest struct {
	Value *string `json:"value" binding:"required"`
}

type gotoRequest struct {
	Number int `json:"number" binding:"required,min=1"`
}

type startResponse struct {
	SessionID string        `json:"sessionId"`
	State     quiz.Snapshot `json:"state"`
}

type submitResponse struct {
	Report  domain.ResultReport `json:"report"`
	Verdict string              `json:"verdict"`
	State   quiz.Snapshot       `json:"state"`
}

// POST /api/sessions
func (h *SessionHandler) Start(c *gin.Context) {
	id, snap := h.service.StartSession(c.Request.Context())
	response.Success(c, http.StatusCreated, startResponse{SessionID: id, State: snap})
}

// GET /api/sessions/:id
func (h *SessionHandler) Get(c *gin.Context) {
	snap, err := h.service.Snapshot(c.Request.Context(), c.Param("id"))
	respondState(c, snap, err)
}

// DELETE /api/sessions/:id
func (h *SessionHandler) End(c *gin.Context) {
	if err := h.service.EndSession(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// POST /api/sessions/:id/category
func (h *SessionHandler) SelectCategory(c *gin.Context) {
	var req categoryRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	snap, err := h.service.SelectCategory(c.Request.Context(), c.Param("id"), req.Category)
	respondState(c, snap, err)
}

// POST /api/sessions/:id/answer
func (h *SessionHandler) SelectAnswer(c *gin.Context) {
	var req answerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	snap, err := h.service.SelectAnswer(c.Request.Context(), c.Param("id"), *req.Value)
	respondState(c, snap, err)
}

// POST /api/sessions/:id/next
func (h *SessionHandler) Next(c *gin.Context) {
	snap, err := h.service.Next(c.Request.Context(), c.Param("id"))
	respondState(c, snap, err)
}

// POST /api/sessions/:id/previous
func (h *SessionHandler) Previous(c *gin.Context) {
	snap, err := h.service.Previous(c.Request.Context(), c.Param("id"))
	respondState(c, snap, err)
}

// POST /api/sessions/:id/goto
func (h *SessionHandler) GoTo(c *gin.Context) {
	var req gotoRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	snap, err := h.service.GoTo(c.Request.Context(), c.Param("id"), req.Number)
	respondState(c, snap, err)
}

// POST /api/sessions/:id/submit
func (h *SessionHandler) Submit(c *gin.Context) {
	report, snap, err := h.service.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, submitResponse{Report: report, Verdict: report.Verdict(), State: snap})
}

// POST /api/sessions/:id/reset
func (h *SessionHandler) Reset(c *gin.Context) {
	snap, err := h.service.Reset(c.Request.Context(), c.Param("id"))
	respondState(c, snap, err)
}

// POST /api/sessions/:id/close-results
func (h *SessionHandler) CloseResults(c *gin.Context) {
	snap, err := h.service.CloseResults(c.Request.Context(), c.Param("id"))
	respondState(c, snap, err)
}

// GET /api/sessions/:id/review
func (h *SessionHandler) Review(c *gin.Context) {
	items, err := h.service.Review(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func respondState(c *gin.Context, snap quiz.Snapshot, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, snap)
}
