package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/supplysight/backend/internal/weather"
)

// coordinates holds the validated lat/lon query parameters.
type coordinates struct {
	Lat float64 `validate:"gte=-90,lte=90"`
	Lon float64 `validate:"gte=-180,lte=180"`
}

func parseCoordinates(c *fiber.Ctx) (coordinates, error) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		return coordinates{}, fiber.NewError(fiber.StatusBadRequest, "Invalid coordinates")
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		return coordinates{}, fiber.NewError(fiber.StatusBadRequest, "Invalid coordinates")
	}

	coords := coordinates{Lat: lat, Lon: lon}
	if err := validate.Struct(coords); err != nil {
		return coordinates{}, validationError("Invalid coordinates", err)
	}
	return coords, nil
}

// cityQuery wraps the q parameter for city lookup and search.
type cityQuery struct {
	Q string `validate:"required,min=1,max=100"`
}

func parseCityQuery(c *fiber.Ctx) (string, error) {
	q := cityQuery{Q: c.Query("q")}
	if err := validate.Struct(q); err != nil {
		return "", validationError("Invalid search query", err)
	}
	return q.Q, nil
}

// Entity payloads. Identifiers and timestamps are always assigned by the
// store, never taken from the client.

type supplierPayload struct {
	Name             string  `json:"name" validate:"required"`
	Category         string  `json:"category" validate:"required"`
	Status           string  `json:"status" validate:"required"`
	ContactEmail     string  `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone     string  `json:"contactPhone"`
	PerformanceScore float64 `json:"performanceScore" validate:"gte=0,lte=100"`
}

type productPayload struct {
	SKU              string  `json:"sku" validate:"required"`
	Name             string  `json:"name" validate:"required"`
	Category         string  `json:"category" validate:"required"`
	CurrentStock     int     `json:"currentStock" validate:"gte=0"`
	MinimumThreshold int     `json:"minimumThreshold" validate:"gte=0"`
	UnitPrice        float64 `json:"unitPrice" validate:"required,gt=0"`
	SupplierID       int     `json:"supplierId" validate:"gte=0"`
}

type orderPayload struct {
	OrderNumber      string     `json:"orderNumber" validate:"required"`
	SupplierID       int        `json:"supplierId" validate:"gte=0"`
	Status           string     `json:"status"`
	TotalValue       float64    `json:"totalValue" validate:"gte=0"`
	ExpectedDelivery *time.Time `json:"expectedDelivery"`
}

type statusPayload struct {
	Status string `json:"status" validate:"required"`
}

type transactionPayload struct {
	ProductID int    `json:"productId" validate:"required,gt=0"`
	Type      string `json:"type" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
	Reason    string `json:"reason"`
}

// bind parses the JSON body into out and validates it. Malformed bodies and
// constraint violations both come back as 400s with field detail where
// available.
func bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(out); err != nil {
		return validationError("Validation failed", err)
	}
	return nil
}

// fieldViolation is one entry of the structured validation error list.
type fieldViolation struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// validationErrorResponse carries the human-readable message plus per-field
// violations.
type validationErrorResponse struct {
	message    string
	violations []fieldViolation
}

func (e *validationErrorResponse) Error() string { return e.message }

// validationError wraps validator output so the central error handler can
// render the structured response.
func validationError(message string, err error) error {
	resp := &validationErrorResponse{message: message}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			resp.violations = append(resp.violations, fieldViolation{
				Field: fe.Field(),
				Rule:  fe.Tag(),
			})
		}
	}
	return resp
}

// weatherError maps the gateway taxonomy onto HTTP responses. All upstream
// failures surface as 500s; only input problems earn a 400.
func weatherError(err error) error {
	switch {
	case errors.Is(err, weather.ErrNotConfigured):
		return fiber.NewError(fiber.StatusInternalServerError, "Weather service not configured. Please provide OPENWEATHER_API_KEY.")
	case errors.Is(err, weather.ErrUnauthorized),
		errors.Is(err, weather.ErrNotFound),
		errors.Is(err, weather.ErrUnavailable):
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch weather data")
	}
}

// ErrorHandler is the app-wide error handler: every failure becomes a JSON
// object with a message field, and validation failures additionally include
// the per-field violations.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var verr *validationErrorResponse
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": verr.message,
			"errors":  verr.violations,
		})
	}

	code := fiber.StatusInternalServerError
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		code = ferr.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"message": err.Error(),
	})
}
