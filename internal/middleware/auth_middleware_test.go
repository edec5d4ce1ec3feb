package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-factory-console/internal/model"
	"go-factory-console/pkg/jwt"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/gofiber/fiber/v2"
)

func newApp(check TokenCheck, extra ...fiber.Handler) *fiber.App {
	app := fiber.New()
	handlers := append([]fiber.Handler{RequireAuth(check)}, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.SendString(Token(c) + "|" + c.Locals(LocalEmail).(string))
	})
	app.Get("/", handlers...)
	return app
}

func get(t *testing.T, app *fiber.App, auth string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func unsigned(t *testing.T, claims gojwt.MapClaims) string {
	t.Helper()
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("factory-service-key"))
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func TestRequireAuth_Demo(t *testing.T) {
	app := newApp(DemoTokens)
	token, _, err := jwt.GenerateToken("usr-1", "admin@fabrica.com", "Admin", []string{model.RoleAdmin})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		header string
		status int
		reason string
	}{
		{"missing", "", http.StatusUnauthorized, jwt.ErrMissingToken.Error()},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "Bearer <token>"},
		{"empty token", "Bearer ", http.StatusUnauthorized, "Bearer <token>"},
		{"foreign token", "Bearer " + unsigned(t, gojwt.MapClaims{"sub": "x"}), http.StatusUnauthorized, jwt.ErrInvalidToken.Error()},
		{"valid", "Bearer " + token, http.StatusOK, ""},
		{"lower-case scheme", "bearer " + token, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := get(t, app, tt.header)
			if status != tt.status {
				t.Errorf("status = %d, want %d (%s)", status, tt.status, body)
			}
			if status == http.StatusOK && body != token+"|admin@fabrica.com" {
				t.Errorf("body = %q", body)
			}
			if !strings.Contains(body, tt.reason) {
				t.Errorf("body = %q, want it to mention %q", body, tt.reason)
			}
		})
	}
}

func TestRequireAuth_Remote(t *testing.T) {
	app := newApp(RemoteTokens)

	fresh := unsigned(t, gojwt.MapClaims{"sub": "maria@fabrica.com", "exp": time.Now().Add(time.Hour).Unix()})
	expired := unsigned(t, gojwt.MapClaims{"sub": "maria@fabrica.com", "exp": time.Now().Add(-time.Minute).Unix()})

	if status, body := get(t, app, "Bearer "+fresh); status != http.StatusOK || body != fresh+"|maria@fabrica.com" {
		t.Errorf("fresh token: %d %q", status, body)
	}
	if status, _ := get(t, app, "Bearer "+expired); status != http.StatusUnauthorized {
		t.Errorf("expired token status = %d", status)
	}
	if status, _ := get(t, app, "Bearer not.a.jwt"); status != http.StatusUnauthorized {
		t.Errorf("malformed token status = %d", status)
	}
}

func TestRequireRole(t *testing.T) {
	app := newApp(RemoteTokens, RequireRole(model.RoleAdmin))

	admin := unsigned(t, gojwt.MapClaims{"sub": "a@f.com", "roles": []string{"ADMIN"}})
	manager := unsigned(t, gojwt.MapClaims{"sub": "g@f.com", "roles": "GERENTE"})

	if status, _ := get(t, app, "Bearer "+admin); status != http.StatusOK {
		t.Errorf("admin status = %d", status)
	}
	if status, _ := get(t, app, "Bearer "+manager); status != http.StatusForbidden {
		t.Errorf("manager status = %d", status)
	}
}
