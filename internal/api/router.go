package api

import (
	"pos_system/internal/domain"     // Role constants
	"pos_system/internal/middleware" // Auth and CORS middleware
	"pos_system/internal/session"    // Session store

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// NewRouter wires every route under its declared access policy: public,
// authenticated, or role-gated. Policies live here, not scattered through the
// handlers, so an endpoint being open is a decision you can read.
func NewRouter(db *gorm.DB, rdb *redis.Client, store *session.Store, secureCookie bool) *gin.Engine {
	r := gin.Default() // Gin router instance

	r.HandleMethodNotAllowed = true // Wrong method is 405, not 404
	r.NoMethod(NoMethodHandler())   // JSON envelope on 405
	r.NoRoute(NoRouteHandler())     // JSON envelope on 404

	r.Use(middleware.CORSMiddleware()) // Uniform CORS headers on everything

	// Public routes (declared policy: no session required)
	r.POST("/auth/login", LoginHandler(db, store, secureCookie))
	r.POST("/auth/logout", LogoutHandler(store, secureCookie)) // Idempotent, safe without a session
	r.GET("/expenses/read", ReadExpensesHandler(db, rdb))      // Expense board renders without a session
	r.GET("/menu/read", ReadMenuHandler(db, rdb))              // Menu shows before login

	// Authenticated routes (any valid session)
	authGroup := r.Group("", middleware.SessionAuthMiddleware(store))
	authGroup.GET("/auth/check", CheckHandler(store)) // Session status and projection

	// Cashier-level routes (the register)
	cashierGroup := r.Group("", middleware.SessionAuthMiddleware(store), middleware.RequireRoleMiddleware(domain.RoleCashier))
	cashierGroup.POST("/orders/create", CreateOrderHandler(db, rdb))       // Take an order
	cashierGroup.POST("/orders/status", UpdateOrderStatusHandler(db, rdb)) // Settle, hold or cancel
	cashierGroup.GET("/orders/read", ReadOrdersHandler(db))                // Order history

	// Admin-level routes (back office)
	adminGroup := r.Group("", middleware.SessionAuthMiddleware(store), middleware.RequireRoleMiddleware(domain.RoleAdmin))
	adminGroup.POST("/expenses/create", CreateExpenseHandler(db, rdb)) // Record an expense
	adminGroup.POST("/expenses/update", UpdateExpenseHandler(db, rdb)) // Correct an expense
	adminGroup.GET("/reports/sales", SalesReportHandler(db, rdb))      // Sales report

	// Super Admin routes (account management)
	superGroup := r.Group("/users", middleware.SessionAuthMiddleware(store), middleware.RequireRoleMiddleware(domain.RoleSuperAdmin))
	superGroup.POST("/create", CreateUserHandler(db)) // New staff account
	superGroup.POST("/update", UpdateUserHandler(db)) // Role or password change
	superGroup.POST("/delete", DeleteUserHandler(db)) // Soft delete
	superGroup.GET("/read", ListUsersHandler(db))     // Active accounts

	return r
}
