package service

import (
	"errors"
	"net"
	"testing"
	"time"

	"go-factory-console/internal/model"
	"go-factory-console/internal/remote"
	"go-factory-console/internal/repository"
	"go-factory-console/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

func TestDemoAuth_LoginAndProfile(t *testing.T) {
	svc := NewDemoAuthService(repository.NewMemoryStore().Set().Users)

	if _, err := svc.Login("admin@fabrica.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v", err)
	}
	if _, err := svc.Login("nobody@fabrica.com", "admin123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user error = %v", err)
	}

	res, err := svc.Login(" admin@fabrica.com ", "admin123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if res.Token == "" || res.Exp != res.ExpiresAt.UnixMilli() {
		t.Errorf("login = %+v", res)
	}

	p, err := svc.Profile(res.Token)
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if p.Email != "admin@fabrica.com" || !p.IsAdmin || p.ExpiresIn <= 0 {
		t.Errorf("profile = %+v", p)
	}

	if _, err := svc.Profile("garbage"); err == nil {
		t.Error("Profile() accepted a garbage token")
	}
}

func TestDemoAuth_SignUp(t *testing.T) {
	svc := NewDemoAuthService(repository.NewMemoryStore().Set().Users)

	err := svc.SignUp(model.SignUpRequest{Email: "bad", Password: "123", Roles: []string{"ROOT"}})
	var ve *ValidationError
	if !errors.As(err, &ve) || len(ve.Fields) != 3 {
		t.Errorf("invalid sign-up error = %v", err)
	}

	req := model.SignUpRequest{Email: "ana@fabrica.com", Password: "segredo", Roles: []string{model.RoleManager}}
	if err := svc.SignUp(req); err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}
	if err := svc.SignUp(req); !errors.Is(err, ErrUserExists) {
		t.Errorf("second SignUp() error = %v", err)
	}
	if _, err := svc.Login("ana@fabrica.com", "segredo"); err != nil {
		t.Errorf("Login() after sign-up error = %v", err)
	}
}

func TestDemoAuth_ResetPassword(t *testing.T) {
	svc := NewDemoAuthService(repository.NewMemoryStore().Set().Users)

	if err := svc.ResetPassword("gerente@fabrica.com", "nova-senha"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Login("gerente@fabrica.com", "nova-senha"); err != nil {
		t.Errorf("Login() with new password error = %v", err)
	}
	if err := svc.ResetPassword("ninguem@fabrica.com", "x"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("unknown user error = %v", err)
	}
}

func TestRemoteAuth(t *testing.T) {
	token, _, err := jwt.GenerateToken("9", "maria@fabrica.com", "Maria", nil)
	if err != nil {
		t.Fatal(err)
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Post(remote.PathLogin, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"token": token, "exp": time.Now().Add(time.Hour).UnixMilli()})
	})
	app.Get(remote.PathUsers, func(c *fiber.Ctx) error {
		return c.JSON([]fiber.Map{{"id": 9, "email": "maria@fabrica.com", "roles": []string{"GERENTE"}}})
	})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	go app.Listener(ln)
	t.Cleanup(func() { _ = app.Shutdown() })

	svc := NewRemoteAuthService(remote.NewClient("http://"+ln.Addr().String(), time.Second))

	res, err := svc.Login("maria@fabrica.com", "x")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	p, err := svc.Profile(res.Token)
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if p.ID != "9" || p.IsAdmin || len(p.Roles) != 1 || p.ExpiresAt == nil {
		t.Errorf("profile = %+v", p)
	}
	if err := svc.ResetPassword("maria@fabrica.com", "x"); !errors.Is(err, ErrDemoOnly) {
		t.Errorf("ResetPassword() error = %v", err)
	}
}
