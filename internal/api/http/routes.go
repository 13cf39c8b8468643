package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/supplysight/backend/internal/dashboard"
	"github.com/supplysight/backend/internal/export"
	"github.com/supplysight/backend/internal/store"
	"github.com/supplysight/backend/internal/weather"
)

var validate = validator.New()

// Deps bundles the services the HTTP layer needs. Everything is injected;
// handlers hold no package-level state.
type Deps struct {
	Weather   *weather.Service
	Store     *store.MemoryStore
	Dashboard *dashboard.Service
	Export    *export.Service
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	api := app.Group("/api")

	registerWeatherRoutes(api, deps.Weather)
	registerDashboardRoutes(api, deps.Dashboard)
	registerBusinessRoutes(api, deps.Store)
	registerExportRoutes(api, deps.Export)
}

func registerWeatherRoutes(api fiber.Router, svc *weather.Service) {
	api.Get("/weather/current", func(c *fiber.Ctx) error {
		coords, err := parseCoordinates(c)
		if err != nil {
			return err
		}

		snapshot, err := svc.CurrentByCoords(c.Context(), coords.Lat, coords.Lon)
		if err != nil {
			return weatherError(err)
		}
		return c.JSON(snapshot)
	})

	api.Get("/weather/city", func(c *fiber.Ctx) error {
		query, err := parseCityQuery(c)
		if err != nil {
			return err
		}

		snapshot, err := svc.CurrentByCity(c.Context(), query)
		if err != nil {
			return weatherError(err)
		}
		return c.JSON(snapshot)
	})

	api.Get("/weather/forecast", func(c *fiber.Ctx) error {
		coords, err := parseCoordinates(c)
		if err != nil {
			return err
		}

		snapshot, err := svc.ForecastByCoords(c.Context(), coords.Lat, coords.Lon)
		if err != nil {
			return weatherError(err)
		}
		return c.JSON(snapshot)
	})

	api.Get("/weather/search", func(c *fiber.Ctx) error {
		query, err := parseCityQuery(c)
		if err != nil {
			return err
		}

		results, err := svc.SearchCities(c.Context(), query)
		if err != nil {
			return weatherError(err)
		}
		if results == nil {
			results = []weather.SearchResult{}
		}
		return c.JSON(results)
	})
}

func registerDashboardRoutes(api fiber.Router, svc *dashboard.Service) {
	api.Get("/dashboard/kpis", func(c *fiber.Ctx) error {
		return c.JSON(svc.KPIs())
	})

	api.Get("/dashboard/inventory-levels", func(c *fiber.Ctx) error {
		days := c.QueryInt("days", 30)
		return c.JSON(svc.InventoryLevels(days))
	})

	api.Get("/dashboard/suppliers", func(c *fiber.Ctx) error {
		return c.JSON(svc.SuppliersWithInitials())
	})

	api.Get("/dashboard/activities", func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 20)
		return c.JSON(svc.RecentActivities(limit))
	})
}

func registerBusinessRoutes(api fiber.Router, st *store.MemoryStore) {
	api.Get("/suppliers", func(c *fiber.Ctx) error {
		return c.JSON(st.Suppliers())
	})

	api.Post("/suppliers", func(c *fiber.Ctx) error {
		var req supplierPayload
		if err := bind(c, &req); err != nil {
			return err
		}

		created := st.CreateSupplier(store.Supplier{
			Name:             req.Name,
			Category:         req.Category,
			Status:           req.Status,
			ContactEmail:     req.ContactEmail,
			ContactPhone:     req.ContactPhone,
			PerformanceScore: req.PerformanceScore,
		})
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	api.Get("/products", func(c *fiber.Ctx) error {
		return c.JSON(st.Products())
	})

	api.Post("/products", func(c *fiber.Ctx) error {
		var req productPayload
		if err := bind(c, &req); err != nil {
			return err
		}

		created := st.CreateProduct(store.Product{
			SKU:              req.SKU,
			Name:             req.Name,
			Category:         req.Category,
			CurrentStock:     req.CurrentStock,
			MinimumThreshold: req.MinimumThreshold,
			UnitPrice:        req.UnitPrice,
			SupplierID:       req.SupplierID,
		})
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	api.Get("/orders", func(c *fiber.Ctx) error {
		return c.JSON(st.Orders())
	})

	api.Get("/orders/:id", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
		}

		order, err := st.OrderByID(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "order not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch order")
		}
		return c.JSON(order)
	})

	api.Post("/orders", func(c *fiber.Ctx) error {
		var req orderPayload
		if err := bind(c, &req); err != nil {
			return err
		}

		created, err := st.CreateOrder(store.Order{
			OrderNumber:      req.OrderNumber,
			SupplierID:       req.SupplierID,
			Status:           req.Status,
			TotalValue:       req.TotalValue,
			ExpectedDelivery: req.ExpectedDelivery,
		})
		if err != nil {
			if errors.Is(err, store.ErrInvalidStatus) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create order")
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	api.Patch("/orders/:id/status", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
		}

		var req statusPayload
		if err := bind(c, &req); err != nil {
			return err
		}

		updated, err := st.UpdateOrderStatus(id, req.Status)
		switch {
		case errors.Is(err, store.ErrNotFound):
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		case errors.Is(err, store.ErrInvalidStatus), errors.Is(err, store.ErrInvalidTransition):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case err != nil:
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update order")
		}
		return c.JSON(updated)
	})

	api.Post("/inventory/transactions", func(c *fiber.Ctx) error {
		var req transactionPayload
		if err := bind(c, &req); err != nil {
			return err
		}

		created, err := st.CreateInventoryTransaction(store.InventoryTransaction{
			ProductID: req.ProductID,
			Type:      req.Type,
			Quantity:  req.Quantity,
			Reason:    req.Reason,
		})
		switch {
		case errors.Is(err, store.ErrNotFound):
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		case errors.Is(err, store.ErrInsufficientStock), errors.Is(err, store.ErrInvalidTransactionType):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case err != nil:
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to record transaction")
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})
}

func registerExportRoutes(api fiber.Router, svc *export.Service) {
	api.Post("/export", func(c *fiber.Ctx) error {
		var req export.Request
		if err := bind(c, &req); err != nil {
			return err
		}

		record, err := svc.Run(req)
		if err != nil {
			if errors.Is(err, export.ErrUnsupportedFormat) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to generate export")
		}
		return c.JSON(record)
	})
}
