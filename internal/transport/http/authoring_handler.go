package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mcq-practice-service/internal/app"
	"mcq-practice-service/internal/authoring"
	"mcq-practice-service/internal/response"
	"mcq-practice-service/internal/validator"
)

// maxUploadBytes caps uploaded question files.
const maxUploadBytes = 1 << 20

// AuthoringHandler accepts new MCQs.
type AuthoringHandler struct {
	service *app.AuthoringService
}

func NewAuthoringHandler(service *app.AuthoringService) *AuthoringHandler {
	return &AuthoringHandler{service: service}
}

type createMCQRequest struct {
	Mode          string   `json:"mode" binding:"omitempty,oneof=manual json pasted"`
	Category      string   `json:"category"`
	Question      string   `json:"question"`
	Options       []string `json:"options" binding:"omitempty,max=6"`
	CorrectAnswer string   `json:"correctAnswer"`
	JSON          string   `json:"json"`
}

// POST /api/mcqs
func (h *AuthoringHandler) Create(c *gin.Context) {
	var req createMCQRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	mode, err := authoring.ParseMode(req.Mode)
	if err != nil {
		response.FailWithMessage(c, http.StatusBadRequest, response.ErrValidation, err.Error())
		return
	}

	form := authoring.NewForm()
	form.Mode = mode
	if mode == authoring.ModePastedJSON {
		form.SetJSONText(req.JSON)
	} else {
		form.Question = req.Question
		form.CorrectAnswer = req.CorrectAnswer
		for i, opt := range req.Options {
			if i >= len(form.Options) {
				form.AddOption()
			}
			form.SetOption(i, opt)
		}
	}
	if strings.TrimSpace(req.Category) != "" {
		form.Category = strings.TrimSpace(req.Category)
	}
	h.submit(c, form)
}

// POST /api/mcqs/upload (multipart: file, category)
func (h *AuthoringHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	if header.Size > maxUploadBytes {
		response.Fail(c, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
		return
	}
	f, err := header.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		response.Error(c, err)
		return
	}

	form := authoring.NewForm()
	form.Mode = authoring.ModeUploadedFile
	if err := form.Upload(data); err != nil {
		response.Error(c, err)
		return
	}
	if category := strings.TrimSpace(c.PostForm("category")); category != "" {
		form.Category = category
	}
	h.submit(c, form)
}

func (h *AuthoringHandler) submit(c *gin.Context, form *authoring.Form) {
	payload, err := h.service.Submit(c.Request.Context(), form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, payload)
}
