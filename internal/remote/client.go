package remote

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// DefaultTimeout bounds every request to the factory service.
const DefaultTimeout = 10 * time.Second

// Client sends JSON requests to the factory service. It is safe for
// concurrent use; WithToken returns a copy bound to one caller's session.
//
// Requests cannot be cancelled once sent: a caller that stops waiting
// simply discards the result.
type Client struct {
	baseURL string
	timeout time.Duration
	token   string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
	}
}

// WithToken returns a client that sends token as its bearer credential.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// call describes one request.
type call struct {
	method   string
	path     string
	query    url.Values
	body     interface{}
	messages Messages
}

// do performs the call and decodes a non-empty 2xx body into out. Failures
// come back as *RemoteError; nothing is retried.
func (c *Client) do(req call, out interface{}) error {
	a := fiber.AcquireAgent()
	r := a.Request()
	r.Header.SetMethod(req.method)
	r.SetRequestURI(c.baseURL + req.path)
	if len(req.query) > 0 {
		a.QueryString(req.query.Encode())
	}
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if c.token != "" {
		a.Set(fiber.HeaderAuthorization, "Bearer "+c.token)
	}
	if req.body != nil {
		a.JSON(req.body)
	}
	a.Timeout(c.timeout)

	if err := a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		return newNetworkError(err)
	}

	// Bytes releases the agent
	status, body, errs := a.Bytes()
	if len(errs) > 0 {
		return newNetworkError(errors.Join(errs...))
	}
	if status < 200 || status > 299 {
		return newStatusError(status, body, req.messages)
	}
	if out == nil || len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &RemoteError{
			Category: CategoryServer,
			Status:   status,
			Message:  "unexpected response from the server",
			Cause:    fmt.Errorf("decode %s %s: %w", req.method, req.path, err),
		}
	}
	return nil
}

// ParamNames are the query keys a resource uses for pagination.
type ParamNames struct {
	Number string
	Size   string
}

var (
	// DefaultParamNames is what every resource uses except machine models.
	DefaultParamNames = ParamNames{Number: "page-number", Size: "page-size"}
	// PortugueseParamNames is used by the machine model endpoint.
	PortugueseParamNames = ParamNames{Number: "numero-pagina", Size: "tamanho-pagina"}
)

// encodeListParams always sends both pagination keys and only the filter
// keys that carry a value.
func encodeListParams(names ParamNames, number, size int, filters map[string]string) url.Values {
	q := url.Values{}
	q.Set(names.Number, strconv.Itoa(number))
	q.Set(names.Size, strconv.Itoa(size))
	for k, v := range filters {
		if strings.TrimSpace(v) == "" {
			continue
		}
		q.Set(k, v)
	}
	return q
}
