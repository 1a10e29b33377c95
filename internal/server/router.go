// Package server assembles the HTTP router shared by the API binary and the
// end-to-end tests.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "backoffice/internal/docs" // Import swagger docs
	"backoffice/internal/handlers"
	"backoffice/internal/middleware"
	"backoffice/internal/services"
	"backoffice/internal/storage"
)

// Deps are the collaborators the router is built from.
type Deps struct {
	DB          *gorm.DB
	Files       services.Files
	JWTSecret   string
	JWTIssuer   string
	CORSOrigins []string
}

// NewRouter wires services, handlers and middleware into a Gin engine.
func NewRouter(d Deps) *gin.Engine {
	// Initialize services
	auditService := services.NewAuditService(d.DB)
	clientService := services.NewClientService(d.DB)
	collaboratorService := services.NewCollaboratorService(d.DB)
	invoiceService := services.NewInvoiceService(d.DB)
	transactionService := services.NewTransactionService(d.DB, d.Files)
	exchangeService := services.NewMoneyExchangeService(d.DB, d.Files)
	collectionService := services.NewCollectionService(d.DB, d.Files)
	paymentService := services.NewCollaboratorPaymentService(d.DB, d.Files)
	proformaService := services.NewProformaService(d.DB)
	taxPaymentService := services.NewTaxPaymentService(d.DB)

	// Initialize handlers
	clientHandler := handlers.NewClientHandler(clientService, auditService)
	collaboratorHandler := handlers.NewCollaboratorHandler(collaboratorService, auditService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	exchangeHandler := handlers.NewMoneyExchangeHandler(exchangeService, auditService)
	collectionHandler := handlers.NewCollectionHandler(collectionService, auditService)
	paymentHandler := handlers.NewCollaboratorPaymentHandler(paymentService, auditService)
	proformaHandler := handlers.NewProformaHandler(proformaService, auditService)
	taxPaymentHandler := handlers.NewTaxPaymentHandler(taxPaymentService, auditService)

	router := gin.New()
	router.MaxMultipartMemory = services.MaxFileSize + 1<<20
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(d.CORSOrigins))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Links issued by the in-memory store carry their own expiry
	if mem, ok := d.Files.Store.(*storage.MemoryStore); ok {
		router.GET("/files/*key", handlers.NewFileHandler(mem).Download)
	}

	// Protected routes
	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(d.JWTSecret, d.JWTIssuer))

	// Client routes
	clients := v1.Group("/clients")
	clients.GET("", clientHandler.ListClients)
	clients.POST("", clientHandler.CreateClient)
	clients.GET("/:id", clientHandler.GetClient)
	clients.PUT("/:id", clientHandler.UpdateClient)
	clients.GET("/:id/projects", clientHandler.ListProjects)
	clients.POST("/:id/projects", clientHandler.CreateProject)
	clients.PUT("/:id/projects/:projectId", clientHandler.UpdateProject)
	clients.DELETE("/:id/projects/:projectId", clientHandler.DeleteProject)
	clients.GET("/:id/contacts", clientHandler.ListContacts)
	clients.POST("/:id/contacts", clientHandler.CreateContact)
	clients.PUT("/:id/contacts/:contactId", clientHandler.UpdateContact)
	clients.DELETE("/:id/contacts/:contactId", clientHandler.DeleteContact)

	// Collaborator routes
	roles := v1.Group("/collaborator-roles")
	roles.GET("", collaboratorHandler.ListRoles)
	roles.POST("", collaboratorHandler.CreateRole)
	roles.GET("/:id", collaboratorHandler.GetRole)
	roles.PUT("/:id", collaboratorHandler.UpdateRole)

	collaborators := v1.Group("/collaborators")
	collaborators.GET("", collaboratorHandler.ListCollaborators)
	collaborators.POST("", collaboratorHandler.CreateCollaborator)
	collaborators.GET("/:id", collaboratorHandler.GetCollaborator)
	collaborators.PUT("/:id", collaboratorHandler.UpdateCollaborator)

	// Invoice routes
	invoices := v1.Group("/invoices")
	invoices.GET("", invoiceHandler.ListInvoices)
	invoices.POST("", invoiceHandler.CreateInvoice)
	invoices.GET("/export", invoiceHandler.ExportInvoices)
	invoices.GET("/:id", invoiceHandler.GetInvoice)
	invoices.PUT("/:id", invoiceHandler.UpdateInvoice)
	invoices.POST("/:id/issue", invoiceHandler.IssueInvoice)
	invoices.POST("/:id/cancel", invoiceHandler.CancelInvoice)

	// Transaction routes
	transactions := v1.Group("/transactions")
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.POST("/:id/issue", transactionHandler.IssueTransaction)
	transactions.POST("/:id/cancel", transactionHandler.CancelTransaction)
	transactions.POST("/:id/file", transactionHandler.UploadFile)
	transactions.GET("/:id/file", transactionHandler.GetFileURL)

	// Money exchange routes
	exchanges := v1.Group("/money-exchanges")
	exchanges.GET("", exchangeHandler.ListMoneyExchanges)
	exchanges.POST("", exchangeHandler.CreateMoneyExchange)
	exchanges.GET("/:id", exchangeHandler.GetMoneyExchange)
	exchanges.PUT("/:id", exchangeHandler.UpdateMoneyExchange)
	exchanges.POST("/:id/issue", exchangeHandler.IssueMoneyExchange)
	exchanges.POST("/:id/cancel", exchangeHandler.CancelMoneyExchange)
	exchanges.POST("/:id/file", exchangeHandler.UploadFile)
	exchanges.GET("/:id/file", exchangeHandler.GetFileURL)

	// Collection routes
	collections := v1.Group("/collections")
	collections.GET("", collectionHandler.ListCollections)
	collections.POST("", collectionHandler.CreateCollection)
	collections.GET("/:id", collectionHandler.GetCollection)
	collections.PUT("/:id", collectionHandler.UpdateCollection)
	collections.POST("/:id/confirm", collectionHandler.ConfirmCollection)
	collections.POST("/:id/cancel", collectionHandler.CancelCollection)
	collections.POST("/:id/file", collectionHandler.UploadFile)
	collections.GET("/:id/file", collectionHandler.GetFileURL)

	// Collaborator payment routes
	payments := v1.Group("/collaborator-payments")
	payments.GET("", paymentHandler.ListPayments)
	payments.POST("", paymentHandler.CreatePayment)
	payments.GET("/export", paymentHandler.ExportPayments)
	payments.GET("/:id", paymentHandler.GetPayment)
	payments.PUT("/:id", paymentHandler.UpdatePayment)
	payments.POST("/:id/pay", paymentHandler.PayPayment)
	payments.POST("/:id/confirm", paymentHandler.ConfirmPayment)
	payments.POST("/:id/cancel", paymentHandler.CancelPayment)
	payments.POST("/:id/file", paymentHandler.UploadFile)
	payments.GET("/:id/file", paymentHandler.GetFileURL)

	// Proforma routes
	proformas := v1.Group("/proformas")
	proformas.GET("", proformaHandler.ListProformas)
	proformas.POST("", proformaHandler.CreateProforma)
	proformas.GET("/export", proformaHandler.ExportProformas)
	proformas.GET("/:id", proformaHandler.GetProforma)
	proformas.PUT("/:id", proformaHandler.UpdateProforma)
	proformas.POST("/:id/issue", proformaHandler.IssueProforma)
	proformas.POST("/:id/cancel", proformaHandler.CancelProforma)
	proformas.GET("/:id/items", proformaHandler.ListItems)
	proformas.POST("/:id/items", proformaHandler.AddItem)
	proformas.DELETE("/:id/items/:itemId", proformaHandler.DeleteItem)

	// Tax payment routes
	taxPayments := v1.Group("/tax-payments")
	taxPayments.GET("", taxPaymentHandler.ListTaxPayments)
	taxPayments.POST("", taxPaymentHandler.CreateTaxPayment)
	taxPayments.GET("/:id", taxPaymentHandler.GetTaxPayment)
	taxPayments.PUT("/:id", taxPaymentHandler.UpdateTaxPayment)
	taxPayments.POST("/:id/pay", taxPaymentHandler.PayTaxPayment)
	taxPayments.POST("/:id/cancel", taxPaymentHandler.CancelTaxPayment)
	taxPayments.GET("/:id/items", taxPaymentHandler.ListItems)
	taxPayments.POST("/:id/items", taxPaymentHandler.AddItem)
	taxPayments.DELETE("/:id/items/:itemId", taxPaymentHandler.DeleteItem)

	return router
}
