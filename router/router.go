package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/tab-pos/controllers"
	"github.com/yeremiapane/tab-pos/middlewares"
	"github.com/yeremiapane/tab-pos/services"
	"github.com/yeremiapane/tab-pos/utils"
	"gorm.io/gorm"
)

// Deps is everything the HTTP layer talks to.
type Deps struct {
	Engine        *services.Engine
	Catalog       *services.MemoryCatalog
	Monitor       *services.SettlementMonitor
	DB            *gorm.DB
	AllowedOrigin string
	// requests per second per client IP; 0 disables the limiter
	RateLimit int
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if d.AllowedOrigin == "" {
		d.AllowedOrigin = "*"
	}
	if d.Monitor == nil {
		d.Monitor = services.NewSettlementMonitor()
	}
	if d.Catalog == nil {
		d.Catalog = services.NewMemoryCatalog(nil)
	}

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(d.AllowedOrigin))
	r.Use(middlewares.LoggerMiddleware())
	if d.RateLimit > 0 {
		r.Use(middlewares.NewRateLimiter(d.RateLimit, 1).RateLimit())
	}

	tabCtrl := controllers.NewTabController(d.Engine)
	cartCtrl := controllers.NewCartController(d.Engine)
	checkoutCtrl := controllers.NewCheckoutController(d.Engine)
	managerCtrl := controllers.NewManagerController(d.Engine)
	ledgerCtrl := controllers.NewLedgerController(d.Engine, d.Monitor)
	productCtrl := controllers.NewProductController(d.DB, d.Catalog)
	receiptCtrl := controllers.NewReceiptController(d.Engine, d.Catalog)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := r.Group("/api")
	api.GET("/health", controllers.Health)

	// ----------------------------------------------------------------
	//                      TABS
	// ----------------------------------------------------------------
	api.GET("/tabs", tabCtrl.GetAllTabs)
	api.PUT("/tabs/config", tabCtrl.ConfigureTabs)
	api.GET("/tabs/:tab_id", tabCtrl.SelectTab)
	api.POST("/tabs/:tab_id/open", tabCtrl.OpenTab)
	api.POST("/tabs/:tab_id/reserve", tabCtrl.ReserveTab)
	api.POST("/tabs/:tab_id/claim", tabCtrl.ClaimReservation)
	api.POST("/tabs/:tab_id/transfer", tabCtrl.TransferTab)
	api.POST("/tabs/:tab_id/merge", tabCtrl.MergeTab)
	api.POST("/tabs/:tab_id/transfer-items", tabCtrl.TransferItems)

	// ----------------------------------------------------------------
	//                      CARTS
	// ----------------------------------------------------------------
	api.POST("/carts", cartCtrl.CreateCart)
	api.GET("/carts/:cart_id", cartCtrl.GetCart)
	api.DELETE("/carts/:cart_id", cartCtrl.DiscardCart)
	api.POST("/carts/:cart_id/items", cartCtrl.AddItem)
	api.PATCH("/carts/:cart_id/items/:line_id", cartCtrl.UpdateItem)
	api.DELETE("/carts/:cart_id/items/:line_id", cartCtrl.RemoveItem)
	api.POST("/carts/:cart_id/commit", cartCtrl.CommitCart)

	// ----------------------------------------------------------------
	//                      CHECKOUT
	// ----------------------------------------------------------------
	checkout := api.Group("/checkout")
	checkout.Use(middlewares.CheckoutSecurityHeaders())
	{
		checkout.POST("/quote", checkoutCtrl.Quote)
		finalize := checkout.Group("")
		finalize.Use(middlewares.CheckoutRateLimiter(), middlewares.SettlementLogger())
		finalize.POST("/finalize", checkoutCtrl.Finalize)
	}

	// ----------------------------------------------------------------
	//                      CATALOG & LEDGERS
	// ----------------------------------------------------------------
	api.GET("/products", productCtrl.GetAllProducts)
	api.GET("/products/:product_id", productCtrl.GetProductByID)
	api.GET("/payment-methods", ledgerCtrl.GetPaymentMethods)
	api.GET("/ledger/financial", ledgerCtrl.GetFinancialLedger)
	api.GET("/ledger/financial/:tx_id/receipt", receiptCtrl.GetReceipt)
	api.GET("/ledger/stock", ledgerCtrl.GetStockLedger)
	api.GET("/dashboard/stats", ledgerCtrl.GetDashboardStats)

	// ----------------------------------------------------------------
	//                      MANAGER
	// ----------------------------------------------------------------
	login := api.Group("/manager")
	login.Use(middlewares.NewStrictRateLimiter())
	login.POST("/login", managerCtrl.Login)

	manager := api.Group("")
	manager.Use(middlewares.AuthMiddleware(), middlewares.RoleCheck(utils.RoleManager))
	{
		manager.POST("/manager/logout", managerCtrl.Logout)
		manager.DELETE("/tabs/:tab_id/items/:line_id", tabCtrl.VoidLine)
		manager.POST("/products", productCtrl.CreateProduct)
		manager.POST("/ledger/financial/:tx_id/pay", ledgerCtrl.MarkTransactionPaid)
	}

	ws := r.Group("/ws")
	ws.Use(middlewares.WebSocketAuthMiddleware())
	ws.GET("", controllers.KDSHandler(d.Engine))

	return r
}
