package handler

import (
	"errors"
	"strconv"

	"bakery-backoffice/internal/middleware"
	"bakery-backoffice/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// requestError is a malformed request rejected before reaching a service.
type requestError struct {
	msg string
}

func (e *requestError) Error() string { return e.msg }

var errInvalidJSON = &requestError{"Invalid JSON"}

// respondError writes the status and body matching err.
func respondError(c *fiber.Ctx, err error) error {
	var (
		rerr *requestError
		verr *service.ValidationError
		cerr *service.ConflictError
	)
	switch {
	case errors.As(err, &rerr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": rerr.msg})
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation failed", "fields": verr.Errors})
	case errors.As(err, &cerr):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": cerr.Message})
	case errors.Is(err, service.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	case errors.Is(err, service.ErrImmutable):
		return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{"error": err.Error()})
	}
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
}

// parseID reads the :id route parameter.
func parseID(c *fiber.Ctx, resource string) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, &requestError{"Invalid " + resource + " ID"}
	}
	return uint(id), nil
}

// queryID reads an optional numeric filter; an empty value means no filter.
func queryID(c *fiber.Ctx, key string) (*uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, &requestError{"Invalid " + key + " filter"}
	}
	v := uint(id)
	return &v, nil
}

// bindInput parses the body into in. PATCH starts from the current record,
// so omitted fields keep their values; PUT starts from an empty input.
func bindInput[T any](c *fiber.Ctx, in *T, current func() (T, error)) error {
	if c.Method() == fiber.MethodPatch {
		base, err := current()
		if err != nil {
			return err
		}
		*in = base
	}
	if err := c.BodyParser(in); err != nil {
		return errInvalidJSON
	}
	return nil
}

// actorID is the authenticated caller's id, if any.
func actorID(c *fiber.Ctx) *uint {
	if user := middleware.CurrentUser(c); user != nil {
		id := user.ID
		return &id
	}
	return nil
}
