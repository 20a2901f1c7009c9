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

type jobHandler struct {
	jobService        *service.JobService
	assignmentService *service.AssignmentService
	config            dronedesk.AppConfig
	logger            zerolog.Logger
}

func newJobHandler() *jobHandler {
	return &jobHandler{
		jobService:        service.NewJobService(),
		assignmentService: service.NewAssignmentService(),
		config:            dronedesk.GetConfig(),
		logger:            dronedesk.Logger,
	}
}

func JobHandler(router *graceful.Graceful) {
	slf := newJobHandler()

	jobs := router.Group("/api/v1/jobs")
	jobs.Use(middleware.AuthMiddleware(slf.config))
	{
		jobs.POST("", slf.create)
		jobs.GET("", slf.getAll)
		jobs.GET("/:id", slf.getByID)
		jobs.POST("/:id/transition", slf.transition)
		jobs.POST("/:id/assign", middleware.RequireRole(models.RoleAdmin), slf.assign)
	}

	assignments := router.Group("/api/v1/assignments")
	assignments.Use(middleware.AuthMiddleware(slf.config))
	{
		assignments.POST("/:id/accept", slf.accept)
		assignments.POST("/:id/supersede", middleware.RequireRole(models.RoleAdmin), slf.supersede)
	}
}

func (slf *jobHandler) create(c *gin.Context) {
	var dto request.CreateJob

	err := pkg.ParseAndValidate(c, &dto)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	job, err := slf.jobService.Create(mapper.ToJobModel(dto))
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error creating job")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToJobResponse(*job))
}

func (slf *jobHandler) getAll(c *gin.Context) {
	if clientParam := c.Query("clientId"); clientParam != "" {
		clientID, err := strconv.ParseUint(clientParam, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid client id"})
			return
		}
		jobs, err := slf.jobService.FindAllByClient(uint(clientID))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, mapper.ToJobResponses(jobs))
		return
	}

	status := models.JobStatus(c.Query("status"))
	jobs, err := slf.jobService.FindAllByStatus(status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapper.ToJobResponses(jobs))
}

func (slf *jobHandler) getByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid job id"})
		return
	}

	job, err := slf.jobService.FindByID(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapper.ToJobWithAssignments(*job))
}

func (slf *jobHandler) transition(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid job id"})
		return
	}

	var dto request.TransitionJob
	err = pkg.ParseAndValidate(c, &dto)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	job, err := slf.jobService.TransitionJob(uint(id), dto.Status, pkg.ActorFromContext(c))
	if err != nil {
		slf.logger.Warn().Err(err).Uint64("jobId", id).Str("target", string(dto.Status)).Msg("Job transition rejected")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapper.ToJobResponse(*job))
}

func (slf *jobHandler) assign(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid job id"})
		return
	}

	var dto request.AssignPilot
	err = pkg.ParseAndValidate(c, &dto)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	assignment, err := slf.assignmentService.AssignPilot(uint(id), dto.PilotID, dto.Notes, pkg.ActorFromContext(c))
	if err != nil {
		slf.logger.Warn().Err(err).Uint64("jobId", id).Uint("pilotId", dto.PilotID).Msg("Pilot assignment rejected")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToAssignmentResponse(*assignment))
}

func (slf *jobHandler) accept(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid assignment id"})
		return
	}

	assignment, err := slf.assignmentService.AcceptAssignment(uint(id), pkg.ActorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapper.ToAssignmentResponse(*assignment))
}

func (slf *jobHandler) supersede(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid assignment id"})
		return
	}

	err = slf.assignmentService.SupersedeAssignment(uint(id), pkg.ActorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
