package endpoints

import (
	"net/http"
	"strconv"

	"dronedesk"
	"dronedesk/internal/api/handler/mapper"
	"dronedesk/internal/api/handler/middleware"
	"dronedesk/internal/api/handler/request"
	"dronedesk/internal/api/handler/response"
	"dronedesk/internal/api/models"
	"dronedesk/internal/api/service"
	"dronedesk/pkg"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type invoiceHandler struct {
	invoiceService *service.InvoiceService
	config         dronedesk.AppConfig
	logger         zerolog.Logger
}

func newInvoiceHandler() *invoiceHandler {
	return &invoiceHandler{
		invoiceService: service.NewInvoiceService(),
		config:         dronedesk.GetConfig(),
		logger:         dronedesk.Logger,
	}
}

func InvoiceHandler(router *graceful.Graceful) {
	slf := newInvoiceHandler()

	invoices := router.Group("/api/v1/invoices")
	invoices.Use(middleware.AuthMiddleware(slf.config))
	{
		invoices.POST("", slf.create)
		invoices.GET("/:id", slf.getByID)
		invoices.PUT("/:id/line-items", slf.replaceLineItems)
		invoices.POST("/:id/send", slf.send)
		invoices.POST("/:id/mark-paid", slf.markPaid)
		invoices.POST("/:id/void", slf.void)
	}

	// Static and :id segments cannot share a route level in gin, so the
	// sweep lives under the admin prefix.
	admin := router.Group("/api/v1/admin")
	admin.Use(middleware.AuthMiddleware(slf.config))
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	{
		admin.POST("/invoices/sweep-overdue", slf.sweepOverdue)
	}
}

func (slf *invoiceHandler) create(c *gin.Context) {
	var dto request.CreateInvoice

	err := pkg.ParseAndValidate(c, &dto)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	invoice, err := slf.invoiceService.CreateDraft(mapper.ToInvoiceModel(dto))
	if err != nil {
		slf.logger.Error().Err(err).Str("invoiceNumber", dto.InvoiceNumber).Msg("Error creating invoice")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToInvoiceResponse(*invoice))
}

func (slf *invoiceHandler) getByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid invoice id"})
		return
	}

	invoice, err := slf.invoiceService.FindByID(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapper.ToInvoiceResponse(*invoice))
}

func (slf *invoiceHandler) replaceLineItems(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid invoice id"})
		return
	}

	var dto request.ReplaceLineItems
	err = pkg.ParseAndValidate(c, &dto)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	invoice, err := slf.invoiceService.ReplaceLineItems(uint(id), mapper.ToLineItemModels(dto.LineItems), dto.Tax, pkg.ActorFromContext(c))
	if err != nil {
		slf.logger.Warn().Err(err).Uint64("invoiceId", id).Msg("Line item rewrite rejected")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapper.ToInvoiceResponse(*invoice))
}

func (slf *invoiceHandler) send(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid invoice id"})
		return
	}

	var dto request.SendInvoice
	err = pkg.ParseAndValidate(c, &dto)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	invoice, err := slf.invoiceService.Send(uint(id), dto.DueDate, pkg.ActorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapper.ToInvoiceResponse(*invoice))
}

func (slf *invoiceHandler) markPaid(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid invoice id"})
		return
	}

	invoice, err := slf.invoiceService.MarkPaid(uint(id), pkg.ActorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapper.ToInvoiceResponse(*invoice))
}

func (slf *invoiceHandler) void(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid invoice id"})
		return
	}

	invoice, err := slf.invoiceService.Void(uint(id), pkg.ActorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapper.ToInvoiceResponse(*invoice))
}

func (slf *invoiceHandler) sweepOverdue(c *gin.Context) {
	count, err := slf.invoiceService.SweepOverdue()
	if err != nil {
		slf.logger.Error().Err(err).Msg("Overdue sweep failed")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Swept{Count: count})
}
