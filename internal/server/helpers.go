package server

import (
	"errors"
	"strings"
	"unicode"

	"board/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

const defaultPageSize = 20

// pageQuery is the query string accepted by paginated endpoints.
type pageQuery struct {
	Page int `query:"page" validate:"gte=0"`
	Size int `query:"size" validate:"gte=1,lte=100"`
}

// parsePage reads page and size, applying defaults for absent values.
// Values that are not integers are rejected like out-of-range ones.
// On failure it writes a 400 JSON response and returns errResponseWritten.
func (s *Server) parsePage(c *fiber.Ctx) (models.PageRequest, error) {
	q := pageQuery{Size: defaultPageSize}
	if err := c.QueryParser(&q); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("page and size must be integers"))
		return models.PageRequest{}, errResponseWritten
	}
	if err := s.validate.Struct(q); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(describeValidation(err)))
		return models.PageRequest{}, errResponseWritten
	}
	return models.PageRequest{Page: q.Page, Size: q.Size}, nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid query parameters"
	}
	fe := verrs[0]
	switch fe.Field() {
	case "Page":
		return "page must be zero or greater"
	case "Size":
		return "size must be between 1 and 100"
	}
	return "Invalid " + strings.ToLower(fe.Field())
}

// optionalQuery returns a pointer to the query value, or nil when it is absent.
func optionalQuery(c *fiber.Ctx, key string) *string {
	raw := c.Context().QueryArgs().Peek(key)
	if raw == nil {
		return nil
	}
	v := string(raw)
	return &v
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "commentId" -> "comment ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		words := splitCamel(param[:len(param)-2])
		return strings.ToLower(strings.Join(words, " ")) + " ID"
	}
	return param
}

// splitCamel splits a camelCase string into words.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

// statusFor maps an application error code to its HTTP status.
func statusFor(err error) int {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case models.CodeNotFound:
		return fiber.StatusNotFound
	case models.CodeUnauthorized:
		return fiber.StatusForbidden
	case models.CodeValidation:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// respondServiceError writes err with the status its code maps to. Store
// failures arrive unclassified and are reported as internal errors.
func respondServiceError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		err = models.NewInternalError(err)
	}
	return models.RespondWithError(c, statusFor(err), err)
}

// parseBody decodes the JSON body into dest.
// On failure it writes a 400 JSON response and returns errResponseWritten.
func parseBody(c *fiber.Ctx, dest any) error {
	if err := c.BodyParser(dest); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
		return errResponseWritten
	}
	return nil
}

type idResponse struct {
	ID uint `json:"id"`
}
