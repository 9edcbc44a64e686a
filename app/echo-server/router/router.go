package router

import (
	"myShopCart/internal/middleware"
	"myShopCart/internal/rest"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler) {
	products := api.Group("/products")

	products.GET("", handler.GetAllProducts)
	products.GET("/:id", handler.GetProductByID)
}

func SetupCartRoutes(api *echo.Group, handler *rest.CartHandler, carts middleware.CartChecker) {
	api.POST("/cart", handler.CreateCart)

	cart := api.Group("/cart/:cart_token", middleware.CartTokenMiddleware(carts))
	cart.GET("", handler.GetCart)
	cart.POST("", handler.AddItem)
	cart.DELETE("", handler.RemoveItem)
	cart.GET("/recommendation", handler.Recommend)
}

func SetOrdersRoutes(api *echo.Group, ordersHandler *rest.OrdersHandler) {
	orders := api.Group("/orders")
	orders.POST("", ordersHandler.CreateOrder)
	orders.GET("/:id", ordersHandler.GetOrderByID)
}

func SetupMetricsRoute(e *echo.Echo) {
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
