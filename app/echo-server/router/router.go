package router

import (
	"pickwise/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc, selfOrAdmin echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.GET("/email-verification/:code", handler.VerifyEmail)
	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)

	users.POST("/logout", handler.Logout, authRequired)
	users.PUT("/:id", handler.UpdateUser, authRequired, selfOrAdmin)
	users.GET("", handler.GetAllUsers, authRequired, adminOnly)
	users.GET("/:id", handler.GetUserByID, authRequired, selfOrAdmin)
	users.DELETE("/:id", handler.DeleteUser, authRequired, adminOnly)
}

func SetupLaptopRoutes(api *echo.Group, handler *rest.LaptopHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	laptops := api.Group("/laptops")

	laptops.GET("", handler.GetAll)
	laptops.GET("/search", handler.Search)
	laptops.GET("/:id", handler.GetByID)

	admin := api.Group("/admin/laptops", authRequired, adminOnly)
	admin.POST("", handler.Create)
	admin.POST("/import", handler.Import)
}

func SetupChatRoutes(api *echo.Group, handler *rest.ChatHandler, authRequired echo.MiddlewareFunc) {
	api.POST("/chat", handler.Chat, authRequired)
}

func SetupConversationRoutes(api *echo.Group, handler *rest.ConversationHandler, authRequired echo.MiddlewareFunc) {
	convs := api.Group("/conversations", authRequired)

	convs.POST("", handler.Start)
	convs.GET("", handler.List)
	convs.GET("/:id", handler.GetByID)
	convs.DELETE("/:id", handler.Delete)
}

func SetupPreferenceRoutes(api *echo.Group, handler *rest.PreferenceHandler, authRequired echo.MiddlewareFunc) {
	prefs := api.Group("/preferences", authRequired)

	prefs.GET("", handler.Get)
	prefs.PUT("", handler.Update)
}

func SetupCartRoutes(api *echo.Group, handler *rest.CartHandler, authRequired echo.MiddlewareFunc) {
	cart := api.Group("/cart", authRequired)

	cart.POST("", handler.Add)
	cart.GET("", handler.Get)
	cart.PUT("/:id", handler.Update)
	cart.DELETE("/:id", handler.Remove)
	cart.DELETE("", handler.Clear)
}

func SetupOrdersRoutes(api *echo.Group, handler *rest.OrdersHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	orders := api.Group("/orders", authRequired)

	orders.POST("/checkout", handler.Checkout)
	orders.GET("", handler.List)
	orders.GET("/:id", handler.GetByID)
	orders.POST("/:id/cancel", handler.Cancel)

	api.PUT("/admin/orders/:id/status", handler.UpdateStatus, authRequired, adminOnly)
}

func SetupAddressRoutes(api *echo.Group, handler *rest.AddressHandler, authRequired echo.MiddlewareFunc) {
	addresses := api.Group("/addresses", authRequired)

	addresses.POST("", handler.Create)
	addresses.GET("", handler.List)
	addresses.PUT("/:id", handler.Update)
	addresses.DELETE("/:id", handler.Delete)
}
