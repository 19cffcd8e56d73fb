package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/bssmarket/shop_backend/internal/handlers"
)

type Deps struct {
	ProductHandler *handlers.ProductHandler
	UserHandler    *handlers.UserHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	e.GET("/products", d.ProductHandler.GetProducts)
	e.GET("/product/:id", d.ProductHandler.GetProduct)
	e.POST("/product", d.ProductHandler.CreateProduct)
	e.PUT("/product/:id", d.ProductHandler.UpdateProduct)
	e.DELETE("/product/:id", d.ProductHandler.DeleteProduct)

	e.GET("/users", d.UserHandler.GetUsers)
	e.GET("/users/search", d.UserHandler.SearchUsers)
	e.GET("/user/:id", d.UserHandler.GetUser)
	e.POST("/register", d.UserHandler.Register)
	e.POST("/login", d.UserHandler.Login)
	e.PUT("/user/:id", d.UserHandler.UpdateUser)
	e.DELETE("/user/:id", d.UserHandler.DeleteUser)
}
