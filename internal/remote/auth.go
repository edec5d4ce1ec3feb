package remote

import (
	"net/http"
	"time"

	"go-factory-console/internal/model"
	"go-factory-console/pkg/jwt"
)

// Session is the login answer of the factory service. Exp is a Unix
// timestamp in milliseconds.
type Session struct {
	Token string `json:"token"`
	Exp   int64  `json:"exp"`
}

// ExpiresAt converts Exp into a time.
func (s Session) ExpiresAt() time.Time {
	return time.UnixMilli(s.Exp)
}

// ExpiresIn is the whole number of seconds left at now, never negative.
func (s Session) ExpiresIn(now time.Time) time.Duration {
	d := s.ExpiresAt().Sub(now).Truncate(time.Second)
	if d < 0 {
		return 0
	}
	return d
}

// Valid reports whether the session holds a token that has not expired.
func (s Session) Valid(now time.Time) bool {
	return s.Token != "" && now.Before(s.ExpiresAt())
}

var authMessages = Messages{
	http.StatusUnauthorized: "incorrect email or password",
	http.StatusForbidden:    "access denied",
	http.StatusNotFound:     "user not found",
	http.StatusConflict:     "user already exists",
}

// Login exchanges credentials for a session token.
func (c *Client) Login(email, password string) (Session, error) {
	var s Session
	err := c.do(call{
		method:   http.MethodPost,
		path:     PathLogin,
		body:     map[string]string{"email": email, "password": password},
		messages: authMessages,
	}, &s)
	if err != nil {
		return Session{}, err
	}
	if s.Token == "" {
		return Session{}, &RemoteError{
			Category: CategoryServer,
			Status:   http.StatusOK,
			Message:  "login answered without a token",
		}
	}
	return s, nil
}

// SignUp registers a new account.
func (c *Client) SignUp(req model.SignUpRequest) error {
	return c.do(call{
		method:   http.MethodPost,
		path:     PathSignUp,
		body:     req,
		messages: authMessages,
	}, nil)
}

// currentUserPageSize is large enough to hold every account of a plant.
const currentUserPageSize = 1000

// CurrentUser resolves the account behind the client's token. The service
// has no "me" endpoint, so the email is read from the token payload and
// matched against the user list.
func (c *Client) CurrentUser() (model.User, error) {
	if c.token == "" {
		return model.User{}, ErrInvalidToken
	}
	claims, ok := jwt.DecodePayload(c.token)
	if !ok {
		return model.User{}, ErrInvalidToken
	}
	email := jwt.Subject(claims)
	if email == "" {
		return model.User{}, ErrInvalidToken
	}

	users := NewResource[model.User](c, PathUsers)
	page, err := users.List(model.NewListParams(0, currentUserPageSize))
	if err != nil {
		return model.User{}, err
	}
	for _, u := range page.Content {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, ErrUserNotFound
}
