package endpoints

import (
	"net/http"
	"strconv"

	"dronedesk"
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

type taxHandler struct {
	taxService *service.TaxService
	config     dronedesk.AppConfig
	logger     zerolog.Logger
}

func newTaxHandler() *taxHandler {
	return &taxHandler{
		taxService: service.NewTaxService(),
		config:     dronedesk.GetConfig(),
		logger:     dronedesk.Logger,
	}
}

func TaxHandler(router *graceful.Graceful) {
	slf := newTaxHandler()

	tax := router.Group("/api/v1/tax/1099")
	tax.Use(middleware.AuthMiddleware(slf.config))
	tax.Use(middleware.RequireRole(models.RoleAdmin))
	{
		tax.GET("/:year", slf.report)
		tax.GET("/:year/csv", slf.reportCSV)
		tax.POST("/:year/email", slf.emailReport)
	}
}

func (slf *taxHandler) parseYear(c *gin.Context) (int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 2000 || year > 2200 {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid tax year"})
		return 0, false
	}
	return year, true
}

func (slf *taxHandler) report(c *gin.Context) {
	year, ok := slf.parseYear(c)
	if !ok {
		return
	}

	rows, err := slf.taxService.AggregateForYear(year)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (slf *taxHandler) reportCSV(c *gin.Context) {
	year, ok := slf.parseYear(c)
	if !ok {
		return
	}

	csvData, err := slf.taxService.CSVForYear(year)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=1099-report-"+strconv.Itoa(year)+".csv")
	c.Data(http.StatusOK, "text/csv", []byte(csvData))
}

func (slf *taxHandler) emailReport(c *gin.Context) {
	year, ok := slf.parseYear(c)
	if !ok {
		return
	}

	var dto request.EmailTaxReport
	err := pkg.ParseAndValidate(c, &dto)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	err = slf.taxService.EmailYearReport(year, dto.Recipients)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusAccepted)
}
