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

type leadHandler struct {
	leadService *service.LeadService
	config      dronedesk.AppConfig
	logger      zerolog.Logger
}

func newLeadHandler() *leadHandler {
	return &leadHandler{
		leadService: service.NewLeadService(),
		config:      dronedesk.GetConfig(),
		logger:      dronedesk.Logger,
	}
}

func LeadHandler(router *graceful.Graceful) {
	slf := newLeadHandler()

	leads := router.Group("/api/v1/leads")
	leads.Use(middleware.AuthMiddleware(slf.config))
	{
		leads.POST("", slf.create)
		leads.GET("/:id", slf.getByID)
		leads.POST("/:id/transition", slf.transition)
		leads.POST("/:id/convert", slf.convert)
	}
}

func (slf *leadHandler) create(c *gin.Context) {
	var dto request.CreateLead

	err := pkg.ParseAndValidate(c, &dto)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	lead, err := slf.leadService.Create(mapper.ToLeadModel(dto))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToLeadResponse(*lead))
}

func (slf *leadHandler) getByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid lead id"})
		return
	}

	lead, err := slf.leadService.FindByID(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapper.ToLeadResponse(*lead))
}

func (slf *leadHandler) transition(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid lead id"})
		return
	}

	var dto request.TransitionLead
	err = pkg.ParseAndValidate(c, &dto)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	lead, err := slf.leadService.Transition(uint(id), dto.Status, pkg.ActorFromContext(c))
	if err != nil {
		slf.logger.Warn().Err(err).Uint64("leadId", id).Str("target", string(dto.Status)).Msg("Lead transition rejected")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapper.ToLeadResponse(*lead))
}

func (slf *leadHandler) convert(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid lead id"})
		return
	}

	client, err := slf.leadService.ConvertToClient(uint(id), pkg.ActorFromContext(c))
	if err != nil {
		slf.logger.Warn().Err(err).Uint64("leadId", id).Msg("Lead conversion rejected")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToClientResponse(*client))
}
