package handler

import (
	"time"

	"bakery-backoffice/internal/middleware"
	"bakery-backoffice/internal/model"
	"bakery-backoffice/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Services is everything the API routes depend on.
type Services struct {
	Inventory  service.InventoryService
	Production service.ProductionService
	Sales      service.SalesService
	Users      service.UserService
	Audit      service.AuditService
	Auth       service.AuthService
}

// RouteOptions tunes the token endpoint limiter. A nil Redis disables it.
type RouteOptions struct {
	Redis          *redis.Client
	TokenRateLimit int
}

// tokenRateWindow is the window TokenRateLimit is counted over.
const tokenRateWindow = time.Minute

// RegisterRoutes mounts the ledger API on api.
func RegisterRoutes(api fiber.Router, s Services, opts RouteOptions) {
	inv := NewInventoryHandler(s.Inventory)
	prod := NewProductionHandler(s.Production)
	sales := NewSalesHandler(s.Sales)
	users := NewUserHandler(s.Users)
	audit := NewAuditHandler(s.Audit)
	auth := NewAuthHandler(s.Auth)

	// Mounted ahead of Authenticate so a stale Authorization header cannot block a new token.
	api.Post("/api-token-auth", middleware.RateLimit(opts.Redis, "token", opts.TokenRateLimit, tokenRateWindow), auth.IssueToken)

	api.Use(middleware.Authenticate(s.Auth))

	api.Get("/inventory", inv.ListItems)
	api.Post("/inventory", inv.CreateItem)
	api.Get("/inventory/:id", inv.GetItem)
	api.Put("/inventory/:id", inv.UpdateItem)
	api.Patch("/inventory/:id", inv.UpdateItem)
	api.Delete("/inventory/:id", inv.DeleteItem)

	api.Get("/transactions", inv.ListTransactions)
	api.Post("/transactions", inv.CreateTransaction)
	api.Get("/transactions/:id", inv.GetTransaction)
	api.Put("/transactions/:id", inv.UpdateTransaction)
	api.Patch("/transactions/:id", inv.UpdateTransaction)
	api.Delete("/transactions/:id", inv.DeleteTransaction)

	api.Get("/historical-data", inv.HistoricalData)

	api.Get("/productions", prod.List)
	api.Post("/productions", prod.Create)
	api.Get("/productions/:id", prod.Get)
	api.Put("/productions/:id", prod.Update)
	api.Patch("/productions/:id", prod.Update)
	api.Delete("/productions/:id", prod.Delete)

	api.Get("/salestocks", sales.ListStocks)
	api.Post("/salestocks", sales.CreateStock)
	api.Get("/salestocks/:id", sales.GetStock)
	api.Put("/salestocks/:id", sales.UpdateStock)
	api.Patch("/salestocks/:id", sales.UpdateStock)
	api.Delete("/salestocks/:id", sales.DeleteStock)

	api.Get("/sales", sales.ListSales)
	api.Post("/sales", sales.CreateSale)
	api.Get("/sales/:id", sales.GetSale)
	api.Put("/sales/:id", sales.UpdateSale)
	api.Patch("/sales/:id", sales.UpdateSale)
	api.Delete("/sales/:id", sales.DeleteSale)

	api.Get("/salesstocktransactions", sales.ListStockTransactions)
	api.Post("/salesstocktransactions", sales.CreateStockTransaction)
	api.Get("/salesstocktransactions/:id", sales.GetStockTransaction)
	api.Put("/salesstocktransactions/:id", sales.UpdateStockTransaction)
	api.Patch("/salesstocktransactions/:id", sales.UpdateStockTransaction)
	api.Delete("/salesstocktransactions/:id", sales.DeleteStockTransaction)

	api.Get("/users", users.GetUsers)
	api.Post("/users", users.CreateUser)
	api.Get("/users/:id", users.GetUser)
	api.Put("/users/:id", users.UpdateUser)
	api.Patch("/users/:id", users.UpdateUser)
	api.Delete("/users/:id", users.DeleteUser)

	api.Get("/user-profiles", users.GetProfiles)
	api.Post("/user-profiles", users.CreateProfile)
	api.Get("/user-profiles/:id", users.GetProfile)
	api.Put("/user-profiles/:id", users.UpdateProfile)
	api.Patch("/user-profiles/:id", users.UpdateProfile)
	api.Delete("/user-profiles/:id", users.DeleteProfile)

	logs := api.Group("/auditlogs", middleware.RequireAuth(s.Auth), middleware.RequireRole(model.RoleAdmin))
	logs.Get("", audit.List)
	logs.Post("", audit.Create)
	logs.Get("/:id", audit.Get)
	logs.Put("/:id", audit.Update)
	logs.Patch("/:id", audit.Update)
	logs.Delete("/:id", audit.Delete)
}
