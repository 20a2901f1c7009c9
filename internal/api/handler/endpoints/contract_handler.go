package endpoints

import (
	"net/http"
	"strconv"

	"dronedesk"
	"dronedesk/internal/api/handler/mapper"
	"dronedesk/internal/api/handler/middleware"
	"dronedesk/internal/api/handler/request"
	"dronedesk/internal/api/handler/response"
	"dronedesk/internal/api/service"
	"dronedesk/pkg"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type contractHandler struct {
	contractService *service.ContractService
	config          dronedesk.AppConfig
	logger          zerolog.Logger
}

func newContractHandler() *contractHandler {
	return &contractHandler{
		contractService: service.NewContractService(),
		config:          dronedesk.GetConfig(),
		logger:          dronedesk.Logger,
	}
}

func ContractHandler(router *graceful.Graceful) {
	slf := newContractHandler()

	contracts := router.Group("/api/v1/contracts")
	contracts.Use(middleware.AuthMiddleware(slf.config))
	{
		contracts.POST("", slf.create)
		contracts.GET("/:id", slf.getByID)
		contracts.POST("/:id/send", slf.send)
		contracts.POST("/:id/sign", slf.sign)
		contracts.POST("/:id/void", slf.void)
	}

	// The e-signature provider calls back without our auth; the agreement id
	// makes redelivery harmless.
	webhooks := router.Group("/api/v1/webhooks")
	{
		webhooks.POST("/adobe-sign", slf.adobeSignWebhook)
	}
}

func (slf *contractHandler) create(c *gin.Context) {
	var dto request.CreateContract

	err := pkg.ParseAndValidate(c, &dto)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	contract, err := slf.contractService.Create(mapper.ToContractModel(dto))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToContractResponse(*contract))
}

func (slf *contractHandler) getByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid contract id"})
		return
	}

	contract, err := slf.contractService.FindByID(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapper.ToContractResponse(*contract))
}

func (slf *contractHandler) send(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid contract id"})
		return
	}

	var dto request.SendContract
	err = pkg.ParseAndValidate(c, &dto)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	contract, err := slf.contractService.Send(uint(id), dto.Content, pkg.ActorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapper.ToContractResponse(*contract))
}

func (slf *contractHandler) sign(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid contract id"})
		return
	}

	var dto request.SignContract
	err = pkg.ParseAndValidate(c, &dto)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	contract, err := slf.contractService.Sign(uint(id), dto.SignerName, dto.SignerEmail, c.ClientIP())
	if err != nil {
		slf.logger.Warn().Err(err).Uint64("contractId", id).Msg("Contract signing rejected")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapper.ToContractResponse(*contract))
}

func (slf *contractHandler) void(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid contract id"})
		return
	}

	contract, err := slf.contractService.Void(uint(id), pkg.ActorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapper.ToContractResponse(*contract))
}

func (slf *contractHandler) adobeSignWebhook(c *gin.Context) {
	var dto request.AdobeSignWebhook

	err := pkg.ParseAndValidate(c, &dto)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	signerIP := dto.SignerIP
	if signerIP == "" {
		signerIP = c.ClientIP()
	}

	contract, err := slf.contractService.SignFromWebhook(dto.ContractID, dto.AgreementID, dto.SignerName, dto.SignerEmail, signerIP)
	if err != nil {
		slf.logger.Warn().Err(err).Uint("contractId", dto.ContractID).Str("agreementId", dto.AgreementID).Msg("Webhook signature rejected")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapper.ToContractResponse(*contract))
}
