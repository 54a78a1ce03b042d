package validator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type signup struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func TestBindTranslatesFieldErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Setup()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"nope","password":"123"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var dst signup
	fields := Bind(c, &dst)
	if fields == nil {
		t.Fatalf("expected validation errors")
	}
	if _, ok := fields["email"]; !ok {
		t.Fatalf("expected email error keyed by json name, got %v", fields)
	}
	if msg := fields["password"]; !strings.Contains(msg, "6") {
		t.Fatalf("expected translated min message, got %q", msg)
	}
}

func TestBindSyntaxError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Setup()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	c.Request.Header.Set("Content-Type", "application/json")

	var dst signup
	fields := Bind(c, &dst)
	if _, ok := fields["detail"]; !ok {
		t.Fatalf("expected detail for syntax error, got %v", fields)
	}
}
