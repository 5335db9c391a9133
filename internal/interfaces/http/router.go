package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/osqelasadqw/storefront-api/internal/application/auth"
	"github.com/osqelasadqw/storefront-api/internal/application/cart"
	"github.com/osqelasadqw/storefront-api/internal/application/usecase"
	"github.com/osqelasadqw/storefront-api/internal/domain/entity"
	"github.com/osqelasadqw/storefront-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	CategoryUC  *usecase.CategoryUseCase
	PromoUC     *usecase.PromoCodeUseCase
	SettingsUC  *usecase.SettingsUseCase
	AuthUC      *auth.AuthUseCase
	CartSvc     *cart.Service
	CheckoutSvc *cart.CheckoutService
	ProductRepo repository.ProductRepository
	JWTSecret   string
	BaseURL     string
}

// Router registra las rutas de la API: tienda pública y panel de administración.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público; el alta de usuarios vive bajo /admin)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Catálogo (público)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/discounted", productHandler.ListDiscounted)
	products.Get("/search", productHandler.Search)
	products.Get("/:id", productHandler.GetByID)

	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)

	// Configuración del sitio (lectura pública)
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	api.Get("/settings", settingsHandler.GetAll)

	// Carrito y checkout (público, por sesión vía X-Session-ID)
	carts := api.Group("/cart")
	cartHandler := NewCartHandler(deps.CartSvc, deps.CheckoutSvc, deps.ProductRepo)
	carts.Get("/", cartHandler.Get)
	carts.Post("/items", cartHandler.Add)
	carts.Put("/items/:productId", cartHandler.UpdateQuantity)
	carts.Delete("/items/:productId", cartHandler.Remove)
	carts.Delete("/", cartHandler.Clear)
	carts.Post("/checkout", cartHandler.Checkout)

	// Feed XML de productos (público, fuera de /api)
	exportHandler := NewExportHandler(deps.ProductUC, deps.SettingsUC, deps.BaseURL)
	app.Get("/feed/products.xml", exportHandler.ProductFeed)

	// Panel de administración (Bearer Token + rol admin)
	admin := api.Group("/admin", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin))

	admin.Post("/auth/register", authHandler.Register)

	adminProducts := admin.Group("/products")
	adminProducts.Post("/", productHandler.Create)
	adminProducts.Get("/pricelist", exportHandler.PriceList)
	adminProducts.Put("/:id", productHandler.Update)
	adminProducts.Put("/:id/stock", productHandler.SetStock)
	adminProducts.Delete("/:id", productHandler.Delete)

	adminCategories := admin.Group("/categories")
	adminCategories.Post("/", categoryHandler.Create)
	adminCategories.Put("/:id", categoryHandler.Update)
	adminCategories.Delete("/:id", categoryHandler.Delete)

	adminPromos := admin.Group("/promo-codes")
	promoHandler := NewPromoHandler(deps.PromoUC)
	adminPromos.Get("/", promoHandler.List)
	adminPromos.Post("/", promoHandler.Create)
	adminPromos.Put("/:code", promoHandler.Update)
	adminPromos.Delete("/:id", promoHandler.Delete)

	admin.Put("/settings", settingsHandler.Update)
}
