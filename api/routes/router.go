package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aksps/billwise-backend/api/controllers"
	"github.com/aksps/billwise-backend/api/middleware"
	billingsvc "github.com/aksps/billwise-backend/internal/billing"
	customersvc "github.com/aksps/billwise-backend/internal/customers"
	productsvc "github.com/aksps/billwise-backend/internal/products"
	"github.com/aksps/billwise-backend/pkg/config"
	"github.com/aksps/billwise-backend/pkg/db"
	"github.com/aksps/billwise-backend/pkg/logger"
	pkgredis "github.com/aksps/billwise-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       *pkgredis.Client
	Billing     billingsvc.Service
	Products    productsvc.Service
	Customers   customersvc.Service
	CORSOrigins []string
}

// NewRouter assembles the HTTP surface of the billing API.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.CORS(deps.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, readinessDeps(deps)))
	})

	var idempotencyStore pkgredis.IdempotencyStore
	if deps.Redis != nil {
		idempotencyStore = deps.Redis
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Idempotency(idempotencyStore, deps.Logger))

		r.Post("/invoices", controllers.CreateSale(deps.Billing, deps.Logger))
		r.Get("/invoices", controllers.ListInvoices(deps.Billing, deps.Logger))
		r.Get("/invoices/{invoiceID}", controllers.GetInvoice(deps.Billing, deps.Logger))

		r.Post("/products", controllers.CreateProduct(deps.Products, deps.Logger))
		r.Get("/products", controllers.ListProducts(deps.Products, deps.Logger))
		r.Get("/products/{productID}", controllers.GetProduct(deps.Products, deps.Logger))
		r.Patch("/products/{productID}", controllers.UpdateProduct(deps.Products, deps.Logger))
		r.Delete("/products/{productID}", controllers.DeleteProduct(deps.Products, deps.Logger))

		r.Post("/customers", controllers.CreateCustomer(deps.Customers, deps.Logger))
		r.Get("/customers", controllers.ListCustomers(deps.Customers, deps.Logger))
		r.Get("/customers/{customerID}", controllers.GetCustomer(deps.Customers, deps.Logger))
	})

	return r
}

func readinessDeps(deps Deps) map[string]controllers.Pinger {
	out := map[string]controllers.Pinger{}
	if deps.DB != nil {
		out["postgres"] = deps.DB
	}
	if deps.Redis != nil {
		out["redis"] = deps.Redis
	}
	return out
}
