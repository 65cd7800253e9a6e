package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"library-backend/internal/shared/middleware"
	"library-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupMemberRoutes(v1, c)
		setupCatalogRoutes(v1, c)
		setupLendingRoutes(v1, c)
		setupReservationRoutes(v1, c)
		setupFineRoutes(v1, c)
		setupCirculationRoutes(v1, c)
	}

	return router
}

// ========================================
// MEMBER ROUTES
// ========================================
func setupMemberRoutes(v1 *gin.RouterGroup, c *container.Container) {
	jwtSecret := c.Config.JWT.Secret

	members := v1.Group("/members")
	{
		members.POST("/register", c.MemberHandler.Register)
		members.POST("/login", c.MemberHandler.Login)

		authed := members.Group("", middleware.AuthMiddleware(jwtSecret))
		{
			authed.GET("", middleware.RequireRole("librarian"), c.MemberHandler.ListMembers)
			authed.GET("/:id", c.MemberHandler.GetMember)
			authed.PATCH("/:id/status", middleware.RequireRole("librarian"), c.MemberHandler.UpdateStatus)
			authed.DELETE("/:id", middleware.RequireRole("librarian"), c.MemberHandler.DeleteMember)

			authed.GET("/:id/lendings", c.LendingHandler.ListMemberLendings)
			authed.GET("/:id/reservations", c.ReservationHandler.ListMemberReservations)
			authed.GET("/:id/fines", c.FineHandler.ListMemberFines)
		}
	}
}

// ========================================
// CATALOG ROUTES
// ========================================
func setupCatalogRoutes(v1 *gin.RouterGroup, c *container.Container) {
	jwtSecret := c.Config.JWT.Secret

	books := v1.Group("/books")
	{
		books.GET("", c.CatalogHandler.ListBooks)
		books.GET("/:id", c.CatalogHandler.GetBook)
		books.GET("/:id/items", c.CatalogHandler.ListItems)

		staff := books.Group("", middleware.AuthMiddleware(jwtSecret), middleware.RequireRole("librarian"))
		{
			staff.POST("", c.CatalogHandler.AddBook)
			staff.POST("/:id/items", c.CatalogHandler.AddItem)
			staff.POST("/:id/inventory", c.CatalogHandler.AdjustInventory)
		}
	}

	items := v1.Group("/items")
	{
		items.GET("/:barcode", c.CatalogHandler.GetItem)
		items.GET("/:barcode/lending", c.LendingHandler.OpenLending)
		items.GET("/:barcode/reservation", c.ReservationHandler.ItemStatus)
		items.POST("/:barcode/lost",
			middleware.AuthMiddleware(jwtSecret),
			middleware.RequireRole("librarian"),
			c.CatalogHandler.MarkLost,
		)
	}
}

// ========================================
// LENDING ROUTES
// ========================================
func setupLendingRoutes(v1 *gin.RouterGroup, c *container.Container) {
	lendings := v1.Group("/lendings", middleware.AuthMiddleware(c.Config.JWT.Secret))
	{
		lendings.POST("/checkout", c.LendingHandler.Checkout)
		lendings.POST("/return", c.LendingHandler.Return)
		lendings.POST("/renew", c.LendingHandler.Renew)
		lendings.GET("", middleware.RequireRole("librarian"), c.LendingHandler.ListLendings)
	}
}

// ========================================
// RESERVATION ROUTES
// ========================================
func setupReservationRoutes(v1 *gin.RouterGroup, c *container.Container) {
	reservations := v1.Group("/reservations", middleware.AuthMiddleware(c.Config.JWT.Secret))
	{
		reservations.POST("", c.ReservationHandler.Reserve)
		reservations.POST("/complete", c.ReservationHandler.Complete)
		reservations.POST("/cancel", c.ReservationHandler.Cancel)
		reservations.GET("", middleware.RequireRole("librarian"), c.ReservationHandler.ListReservations)
	}
}

// ========================================
// FINE ROUTES
// ========================================
func setupFineRoutes(v1 *gin.RouterGroup, c *container.Container) {
	fines := v1.Group("/fines", middleware.AuthMiddleware(c.Config.JWT.Secret))
	{
		fines.GET("", middleware.RequireRole("librarian"), c.FineHandler.ListFines)
		fines.POST("/pay/:barcode", c.FineHandler.PayFine)
	}
}

// ========================================
// CIRCULATION ROUTES (front desk)
// ========================================
func setupCirculationRoutes(v1 *gin.RouterGroup, c *container.Container) {
	desk := v1.Group("/circulation",
		middleware.AuthMiddleware(c.Config.JWT.Secret),
		middleware.RequireRole("librarian"),
	)
	{
		desk.POST("/checkout", c.CirculationHandler.Checkout)
		desk.POST("/return", c.CirculationHandler.Return)
		desk.POST("/renew", c.CirculationHandler.Renew)
		desk.POST("/reserve", c.CirculationHandler.Reserve)
		desk.POST("/reserve/complete", c.CirculationHandler.CompleteReservation)
		desk.POST("/reserve/cancel", c.CirculationHandler.CancelReservation)
		desk.POST("/fines/:barcode/pay", c.CirculationHandler.PayFine)
		desk.POST("/books/:id/inventory", c.CirculationHandler.AdjustInventory)
		desk.POST("/items/:barcode/lost", c.CirculationHandler.MarkLost)
		desk.GET("/items/:barcode", c.CirculationHandler.ItemSummary)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
		defer cancel()

		dbStatus := "ok"
		if err := c.DB.HealthCheck(checkCtx); err != nil {
			dbStatus = err.Error()
		}

		cacheStatus := "ok"
		if err := c.Cache.Ping(checkCtx); err != nil {
			cacheStatus = err.Error()
		}

		status := http.StatusOK
		overall := "ok"
		if dbStatus != "ok" {
			status = http.StatusServiceUnavailable
			overall = "degraded"
		}

		ctx.JSON(status, gin.H{
			"status":   overall,
			"database": dbStatus,
			"cache":    cacheStatus,
			"version":  c.Config.App.Version,
			"env":      c.Config.App.Environment,
		})
	}
}
