package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mcq-practice-service/internal/app"
	"mcq-practice-service/internal/response"
	"mcq-practice-service/internal/validator"
)

// AuthHandler handles signup and login.
type AuthHandler struct {
	auth app.Authenticator
}

func NewAuthHandler(auth app.Authenticator) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type registerRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	user, err := h.auth.Register(c.Request.Context(), app.RegisterRequest{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, user)
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	res, err := h.auth.Login(c.Request.Context(), app.LoginRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}
