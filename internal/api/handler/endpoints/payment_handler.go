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

type paymentHandler struct {
	assignmentService *service.AssignmentService
	pilotService      *service.PilotService
	config            dronedesk.AppConfig
	logger            zerolog.Logger
}

func newPaymentHandler() *paymentHandler {
	return &paymentHandler{
		assignmentService: service.NewAssignmentService(),
		pilotService:      service.NewPilotService(),
		config:            dronedesk.GetConfig(),
		logger:            dronedesk.Logger,
	}
}

func PaymentHandler(router *graceful.Graceful) {
	slf := newPaymentHandler()

	payments := router.Group("/api/v1/payments")
	payments.Use(middleware.AuthMiddleware(slf.config))
	payments.Use(middleware.RequireRole(models.RoleAdmin))
	{
		payments.POST("/:id/approve", slf.approve)
		payments.POST("/:id/mark-paid", slf.markPaid)
	}

	pilots := router.Group("/api/v1/pilots")
	pilots.Use(middleware.AuthMiddleware(slf.config))
	{
		pilots.POST("", middleware.RequireRole(models.RoleAdmin), slf.createPilot)
		pilots.GET("/:id", slf.getPilot)
		pilots.PUT("/:id/w9", slf.submitW9)
		pilots.POST("/:id/w9/review", middleware.RequireRole(models.RoleAdmin), slf.reviewW9)
	}
}

func (slf *paymentHandler) approve(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid payment id"})
		return
	}

	payment, err := slf.assignmentService.ApprovePayment(uint(id), pkg.ActorFromContext(c))
	if err != nil {
		slf.logger.Warn().Err(err).Uint64("paymentId", id).Msg("Payment approval rejected")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapper.ToPaymentResponse(*payment))
}

func (slf *paymentHandler) markPaid(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid payment id"})
		return
	}

	var dto request.MarkPaymentPaid
	err = pkg.ParseAndValidate(c, &dto)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	payment, err := slf.assignmentService.MarkPaid(uint(id), dto.Method, pkg.ActorFromContext(c))
	if err != nil {
		slf.logger.Warn().Err(err).Uint64("paymentId", id).Msg("Payment payout rejected")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapper.ToPaymentResponse(*payment))
}

func (slf *paymentHandler) createPilot(c *gin.Context) {
	var dto request.CreatePilot

	err := pkg.ParseAndValidate(c, &dto)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	pilot, err := slf.pilotService.Create(mapper.ToPilotModel(dto))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToPilotResponse(*pilot))
}

func (slf *paymentHandler) getPilot(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid pilot id"})
		return
	}

	pilot, err := slf.pilotService.FindByID(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapper.ToPilotResponse(*pilot))
}

func (slf *paymentHandler) submitW9(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid pilot id"})
		return
	}

	var dto request.SubmitW9
	err = pkg.ParseAndValidate(c, &dto)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	form, err := slf.pilotService.SubmitW9(models.W9Form{
		PilotID:           uint(id),
		LegalName:         dto.LegalName,
		BusinessName:      dto.BusinessName,
		TaxClassification: dto.TaxClassification,
		TINType:           dto.TINType,
		TINLast4:          dto.TINLast4,
		Address:           dto.Address,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapper.ToW9Response(*form))
}

func (slf *paymentHandler) reviewW9(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid pilot id"})
		return
	}

	var dto request.ReviewW9
	err = pkg.ParseAndValidate(c, &dto)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	form, err := slf.pilotService.ReviewW9(uint(id), dto.Approved, pkg.ActorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapper.ToW9Response(*form))
}
