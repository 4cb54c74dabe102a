package router

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"bookshelf.dev/storefront/pkg/cart"
	"bookshelf.dev/storefront/pkg/catalog"
	"bookshelf.dev/storefront/pkg/global"
)

// Backend names a dependency for the health check. A nil Ping is always healthy.
type Backend struct {
	Name string
	Ping func(ctx context.Context) error
}

type Deps struct {
	Catalog  *catalog.Service
	Sessions cart.Sessions

	CatalogBackend Backend
	CartBackend    Backend
}

func NewEngine(cfg global.Config, deps Deps) *gin.Engine {
	switch {
	case cfg.IsProduction():
		gin.SetMode(gin.ReleaseMode)
	case cfg.Env == "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	router := gin.Default()

	router.Use(AllowOptions())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins:           true,
		AllowMethods:              []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:              []string{"Content-Type"},
		ExposeHeaders:             []string{"Content-Type"},
		OptionsResponseStatusCode: http.StatusOK,
	}))

	InitializeRoutes(router, &Handler{deps: deps})
	return router
}

func InitializeRoutes(router *gin.Engine, h *Handler) {
	router.GET("/", h.Liveness)

	api := router.Group("/api")
	{
		api.GET("/health", h.HealthCheck)

		books := api.Group("/books")
		{
			books.GET("", h.GetBooks)
			books.GET("/featured", h.GetFeaturedBooks)
			books.GET("/:id", h.GetBookByID)
			books.GET("/:id/insights", h.GetBookInsights)
		}

		api.GET("/categories", h.GetCategories)
		api.POST("/orders", h.CreateOrder)

		api.POST("/cart", h.CreateCartSession)
		session := api.Group("/cart/:sessionId")
		session.Use(CartSessionMiddleware(h.deps.Sessions))
		{
			session.GET("", h.GetCart)
			session.POST("/items", h.AddToCart)
			session.POST("/items/:bookId", h.UpdateCartItem)
			session.POST("/items/:bookId/remove", h.RemoveFromCart)
			session.POST("/clear", h.ClearCart)
			session.POST("/promo", h.ApplyPromo)
			session.POST("/promo/remove", h.RemovePromo)
		}
	}
}
