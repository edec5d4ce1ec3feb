package handler

import (
	"errors"
	"log"
	"strconv"

	"go-factory-console/internal/inventory"
	"go-factory-console/internal/model"
	"go-factory-console/internal/query"
	"go-factory-console/internal/remote"
	"go-factory-console/internal/repository"
	"go-factory-console/internal/service"
	"go-factory-console/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

var errInvalidBody = errors.New("invalid JSON")

// respondError maps service, store and remote failures onto a status and a
// {"error": ...} body.
func respondError(c *fiber.Ctx, err error) error {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": ve.Fields,
		})
	}
	if re, ok := remote.AsRemoteError(err); ok {
		return c.Status(re.HTTPStatus()).JSON(fiber.Map{
			"error":    re.Message,
			"category": re.Category,
		})
	}

	switch {
	case errors.Is(err, errInvalidBody):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	case errors.Is(err, inventory.ErrInvalidReserveQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, service.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	case errors.Is(err, repository.ErrDuplicate), errors.Is(err, service.ErrUserExists):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Already exists"})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, jwt.ErrInvalidToken), errors.Is(err, remote.ErrInvalidToken):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	case errors.Is(err, remote.ErrUserNotFound):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Session user not found"})
	case errors.Is(err, service.ErrDemoOnly):
		return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{"error": err.Error()})
	}

	log.Printf("handler: %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
}

// decodeInto parses the request body on top of v, so absent fields keep
// their current values.
func decodeInto(c *fiber.Ctx, v interface{}) error {
	if err := c.BodyParser(v); err != nil {
		return errInvalidBody
	}
	return nil
}

// listParams reads page-number, page-size and the given filter keys.
// Unparseable pagination falls back to the defaults and sizes are capped at
// model.MaxPageSize.
func listParams(c *fiber.Ctx, defaultSize int, filterKeys ...string) model.ListParams {
	var p model.ListParams
	if n, err := strconv.Atoi(c.Query("page-number")); err == nil {
		p.PageNumber = &n
	}
	size := defaultSize
	if n, err := strconv.Atoi(c.Query("page-size")); err == nil && n > 0 {
		size = min(n, model.MaxPageSize)
	}
	if size > 0 {
		p.PageSize = &size
	}
	for _, key := range filterKeys {
		if v := c.Query(key); v != "" {
			p = p.WithFilter(key, v)
		}
	}
	return p
}

// searchQuery reads the search bar and filter modal values.
func searchQuery(c *fiber.Ctx) query.Query {
	return query.Query{
		Text:     c.Query("q"),
		Status:   c.Query("status"),
		Category: c.Query("category"),
	}
}

func idParam(c *fiber.Ctx) model.ID {
	return model.ID(c.Params("id"))
}
