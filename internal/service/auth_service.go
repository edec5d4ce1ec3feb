package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go-factory-console/internal/model"
	"go-factory-console/internal/remote"
	"go-factory-console/internal/repository"
	"go-factory-console/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrDemoOnly           = errors.New("only available with the demo store")
)

type AuthService interface {
	Login(email, password string) (*LoginResponse, error)
	SignUp(req model.SignUpRequest) error
	Profile(token string) (*Profile, error)
	ResetPassword(email, newPassword string) error
}

type LoginResponse struct {
	Token     string    `json:"token"`
	Exp       int64     `json:"exp"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Profile is the signed-in user plus what is known about the session.
type Profile struct {
	ID        model.ID   `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Roles     []string   `json:"roles"`
	IsAdmin   bool       `json:"isAdmin"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	ExpiresIn int64      `json:"expiresIn,omitempty"`
}

// remoteAuth delegates to the factory service.
type remoteAuth struct {
	client *remote.Client
}

// NewRemoteAuthService authenticates against the factory service.
func NewRemoteAuthService(client *remote.Client) AuthService {
	return &remoteAuth{client}
}

func (s *remoteAuth) Login(email, password string) (*LoginResponse, error) {
	session, err := s.client.Login(strings.TrimSpace(email), password)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{Token: session.Token, Exp: session.Exp, ExpiresAt: session.ExpiresAt()}, nil
}

func (s *remoteAuth) SignUp(req model.SignUpRequest) error {
	if err := validate(&req); err != nil {
		return err
	}
	return s.client.SignUp(req)
}

func (s *remoteAuth) Profile(token string) (*Profile, error) {
	user, err := s.client.WithToken(token).CurrentUser()
	if err != nil {
		return nil, err
	}
	p := profileOf(user)
	if claims, ok := jwt.DecodePayload(token); ok {
		if exp, ok := jwt.ExpiresAt(claims); ok {
			p.withExpiry(exp, time.Now())
		}
	}
	return p, nil
}

func (s *remoteAuth) ResetPassword(string, string) error {
	return ErrDemoOnly
}

// demoAuth signs its own tokens for the demo users.
type demoAuth struct {
	users repository.UserRepository
}

// NewDemoAuthService authenticates the demo accounts of the memory or
// postgres store.
func NewDemoAuthService(users repository.UserRepository) AuthService {
	return &demoAuth{users}
}

func (s *demoAuth) Login(email, password string) (*LoginResponse, error) {
	user, err := s.users.FindByEmail(strings.TrimSpace(email))
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := jwt.GenerateToken(user.ID.String(), user.Email, user.Name, user.Roles)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &LoginResponse{Token: token, Exp: exp.UnixMilli(), ExpiresAt: exp}, nil
}

func (s *demoAuth) SignUp(req model.SignUpRequest) error {
	if err := validate(&req); err != nil {
		return err
	}
	user := model.User{
		Email: strings.TrimSpace(req.Email),
		Name:  strings.Split(req.Email, "@")[0],
		Roles: req.Roles,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return err
	}
	if _, err := s.users.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrUserExists
		}
		return err
	}
	return nil
}

func (s *demoAuth) Profile(token string) (*Profile, error) {
	claims, err := jwt.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByEmail(claims.Subject)
	if err != nil {
		return nil, ErrUserNotFound
	}
	p := profileOf(user)
	if claims.ExpiresAt != nil {
		p.withExpiry(claims.ExpiresAt.Time, time.Now())
	}
	return p, nil
}

func (s *demoAuth) ResetPassword(email, newPassword string) error {
	var user model.User
	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	if err := s.users.UpdatePassword(email, user.PasswordHash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func profileOf(u model.User) *Profile {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return &Profile{
		ID:      u.ID,
		Email:   u.Email,
		Name:    u.Name,
		Roles:   roles,
		IsAdmin: u.HasRole(model.RoleAdmin),
	}
}

func (p *Profile) withExpiry(exp, now time.Time) {
	p.ExpiresAt = &exp
	p.ExpiresIn = int64(remote.Session{Token: "-", Exp: exp.UnixMilli()}.ExpiresIn(now) / time.Second)
}
