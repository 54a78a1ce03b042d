package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mcq-practice-service/internal/app"
	"mcq-practice-service/internal/response"
)

// CatalogHandler serves the subject and faculty lists.
type CatalogHandler struct {
	service *app.QuizService
}

func NewCatalogHandler(service *app.QuizService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// GET /api/subjects
func (h *CatalogHandler) Subjects(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.Subjects())
}

// GET /api/faculties
func (h *CatalogHandler) Faculties(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.Faculties())
}
