package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/Tejaspatil777/Coffee-Hub-sub001/controllers"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/middlewares"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/services"
)

// Options for SetupRouter.
type Options struct {
	CORSOrigin string
	// RequestsPerSecond per IP across the API; 0 disables the limiter.
	RequestsPerSecond float64
	Burst             int
	// Admin account for POST /auth/login; an empty hash disables login.
	AdminUsername     string
	AdminPasswordHash string
}

func SetupRouter(db *gorm.DB, svc *services.Services, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// Apply security middlewares
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(opts.CORSOrigin))
	r.Use(middlewares.LoggerMiddleware())
	if opts.RequestsPerSecond > 0 {
		r.Use(middlewares.NewRateLimiter(opts.RequestsPerSecond, opts.Burst).RateLimit())
	}

	// Inisialisasi controller
	tableCtrl := controllers.NewTableController(svc.Tables, svc.Engine, svc.History)
	bookingCtrl := controllers.NewBookingController(svc.Bookings, svc.Cascade, svc.History)
	customerCtrl := controllers.NewCustomerController(svc.Customers, svc.History)
	orderCtrl := controllers.NewOrderController(svc.Orders)
	paymentCtrl := controllers.NewPaymentController(svc.Payments, svc.Refunds)
	notificationCtrl := controllers.NewNotificationController(db)
	adminCtrl := controllers.NewAdminController(db, svc.Tables, svc.History, svc.Refunds)
	authCtrl := controllers.NewAuthController(opts.AdminUsername, opts.AdminPasswordHash)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/auth/login", middlewares.NewStrictRateLimiter(), authCtrl.Login)

	// Endpoint KDS WebSocket, token lewat ?token=
	r.GET("/kds/ws", middlewares.AuthMiddleware(), controllers.KDSHandler)

	// -- CUSTOMER (Tanpa Auth) --
	r.GET("/tables", tableCtrl.GetAllTables)
	r.POST("/customers", customerCtrl.CreateCustomer)
	r.GET("/customers/:customer_id", customerCtrl.GetCustomerByID)
	r.GET("/customers/:customer_id/bookings", bookingCtrl.GetCustomerBookings)
	r.GET("/customers/:customer_id/notifications", notificationCtrl.GetCustomerNotifications)

	r.POST("/bookings", middlewares.NewStrictRateLimiter(), bookingCtrl.CreateBooking)
	r.GET("/bookings/:booking_id", bookingCtrl.GetBookingByID)
	r.POST("/bookings/:booking_id/cancel", middlewares.NewStrictRateLimiter(), bookingCtrl.CancelBooking)
	r.POST("/bookings/:booking_id/orders", orderCtrl.CreateOrder)
	r.GET("/bookings/:booking_id/orders", orderCtrl.GetBookingOrders)
	r.GET("/orders/:order_id", orderCtrl.GetOrderByID)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())

	// Waiter & admin: booking, meja, customer, pembayaran
	floor := auth.Group("")
	floor.Use(middlewares.RequireRoles(controllers.RoleWaiter))
	{
		floor.GET("/tables", tableCtrl.GetAllTables)
		floor.GET("/tables/stats", tableCtrl.GetTableStats)
		floor.GET("/tables/suggest", tableCtrl.SuggestTable)
		floor.GET("/tables/:table_id", tableCtrl.GetTableByID)
		floor.GET("/tables/:table_id/history", tableCtrl.GetTableHistory)

		floor.GET("/bookings", bookingCtrl.GetAllBookings)
		floor.GET("/bookings/pending", bookingCtrl.GetPendingQueue)
		floor.GET("/bookings/:booking_id", bookingCtrl.GetBookingByID)
		floor.GET("/bookings/:booking_id/history", bookingCtrl.GetBookingHistory)
		floor.GET("/bookings/:booking_id/orders", orderCtrl.GetBookingOrders)
		floor.POST("/bookings/:booking_id/seat", bookingCtrl.SeatBooking)
		floor.POST("/bookings/:booking_id/serve", bookingCtrl.ServeBooking)
		floor.POST("/bookings/:booking_id/no-show", bookingCtrl.NoShowBooking)
		floor.POST("/bookings/:booking_id/cancel", bookingCtrl.StaffCancelBooking)

		floor.GET("/customers", customerCtrl.GetAllCustomers)
		floor.GET("/customers/:customer_id", customerCtrl.GetCustomerByID)
		floor.GET("/customers/:customer_id/visits", customerCtrl.GetCustomerVisits)
		floor.PATCH("/customers/:customer_id/status", customerCtrl.UpdateCustomerStatus)

		payments := floor.Group("/payments")
		payments.Use(middlewares.NoStore())
		{
			payments.POST("", paymentCtrl.CreatePayment)
			payments.GET("/:payment_id", paymentCtrl.GetPaymentByID)
		}
		floor.GET("/bookings/:booking_id/payments", middlewares.NoStore(), paymentCtrl.GetBookingPayments)
	}

	// Chef, waiter & admin: alur order
	kitchen := auth.Group("")
	kitchen.Use(middlewares.RequireRoles(controllers.RoleChef, controllers.RoleWaiter))
	{
		kitchen.GET("/orders", orderCtrl.GetAllOrders)
		kitchen.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		kitchen.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
		kitchen.POST("/orders/:order_id/cancel", orderCtrl.CancelOrder)
		kitchen.GET("/kitchen/display", orderCtrl.GetKitchenDisplay)
		kitchen.GET("/notifications", notificationCtrl.GetAllNotifications)
		kitchen.GET("/notifications/:notif_id", notificationCtrl.GetNotificationByID)
	}

	// Admin saja
	admin := auth.Group("")
	admin.Use(middlewares.RequireRoles())
	{
		admin.POST("/bookings/:booking_id/confirm", bookingCtrl.ConfirmBooking)
		admin.POST("/bookings/:booking_id/reject", bookingCtrl.RejectBooking)
		admin.POST("/bookings/:booking_id/cascade/retry", bookingCtrl.RetryCascade)
		admin.POST("/payments/:payment_id/refund", middlewares.NoStore(), paymentCtrl.RefundPayment)
		admin.GET("/refunds/pending", paymentCtrl.GetRefundQueue)
		admin.DELETE("/notifications/:notif_id", notificationCtrl.DeleteNotification)
		admin.GET("/dashboard/stats", adminCtrl.GetDashboardStats)
		admin.GET("/reports/utilization", adminCtrl.GetUtilization)
		admin.POST("/tokens", controllers.IssueToken)
	}

	return r
}
