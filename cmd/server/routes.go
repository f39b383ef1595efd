package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"storefront.backend/internal/interfaces/http/handlers"
	"storefront.backend/internal/interfaces/http/middleware"
	"storefront.backend/pkg/metrics"
)

const (
	serviceName    = "storefront-backend"
	serviceVersion = "0.1.0"
)

type routeDeps struct {
	accountHandler  *handlers.AccountHandler
	retailerHandler *handlers.RetailerHandler
	adminHandler    *handlers.AdminHandler
	productHandler  *handlers.ProductHandler
	cartHandler     *handlers.CartHandler
	orderHandler    *handlers.OrderHandler
	authMiddleware  gin.HandlerFunc
}

func applyCORSMiddleware(r *gin.Engine, allowedOrigins []string) {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (allowed["*"] || allowed[origin]) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, Idempotency-Key, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
			"version": serviceVersion,
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Catalog routes (public)
		products := v1.Group("/products")
		{
			products.GET("", d.productHandler.ListProducts)
			products.GET("/:id", d.productHandler.GetProduct)
			products.GET("/:id/recommendations", d.productHandler.Recommendations)
		}

		authed := v1.Group("")
		authed.Use(d.authMiddleware)

		account := authed.Group("/account")
		{
			account.GET("/me", d.accountHandler.Me)
			account.PUT("/profile", d.accountHandler.UpdateProfile)
			account.PUT("/preferences", d.accountHandler.UpdatePreferences)
			account.GET("/addresses", d.accountHandler.ListAddresses)
			account.POST("/addresses", d.accountHandler.AddAddress)
			account.PUT("/addresses/:addressId", d.accountHandler.UpdateAddress)
			account.DELETE("/addresses/:addressId", d.accountHandler.DeleteAddress)
			account.PUT("/addresses/:addressId/default", d.accountHandler.SetDefaultAddress)
		}

		retailer := authed.Group("/retailer")
		{
			retailer.GET("/application-status", d.retailerHandler.ApplicationStatus)
			retailer.POST("/apply", middleware.IdempotencyMiddleware(), d.retailerHandler.Apply)

			owned := retailer.Group("/products")
			owned.Use(middleware.RequireRetailer())
			{
				owned.GET("", d.retailerHandler.ListProducts)
				owned.POST("", d.retailerHandler.CreateProduct)
				owned.PUT("/:id", d.retailerHandler.UpdateProduct)
				owned.DELETE("/:id", d.retailerHandler.DeleteProduct)
			}
		}

		cart := authed.Group("/cart")
		{
			cart.GET("", d.cartHandler.GetCart)
			cart.DELETE("", d.cartHandler.ClearCart)
			cart.POST("/items", d.cartHandler.AddItem)
			cart.PUT("/items/:productId", d.cartHandler.UpdateItem)
			cart.DELETE("/items/:productId", d.cartHandler.RemoveItem)
		}

		wishlist := authed.Group("/wishlist")
		{
			wishlist.GET("", d.cartHandler.GetWishlist)
			wishlist.POST("/:productId", d.cartHandler.AddToWishlist)
			wishlist.DELETE("/:productId", d.cartHandler.RemoveFromWishlist)
		}

		orders := authed.Group("/orders")
		{
			orders.POST("/checkout", middleware.IdempotencyMiddleware(), d.orderHandler.Checkout)
			orders.GET("", d.orderHandler.ListOrders)
			orders.GET("/:id", d.orderHandler.GetOrder)
		}

		// Admin routes
		admin := authed.Group("/admin")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/retailer-applications", d.adminHandler.ListApplications)
			admin.POST("/retailer-applications/:id/approve", d.adminHandler.ApproveApplication)
			admin.POST("/retailer-applications/:id/reject", d.adminHandler.RejectApplication)
			admin.GET("/dashboard/stats", d.adminHandler.Stats)
			admin.GET("/dashboard/recent", d.adminHandler.RecentApplications)
		}
	}
}
