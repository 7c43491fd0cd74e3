package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"catalog-gateway/internal/middleware"
	"catalog-gateway/internal/model"
	"catalog-gateway/internal/service"
	"catalog-gateway/internal/utils"
	"catalog-gateway/pkg/response"
)

// CatalogController exposes the catalog introspection endpoints.
type CatalogController struct {
	catalogService service.CatalogService
	queryService   service.QueryService
	validator      *validator.Validate
}

// NewCatalogController creates a new CatalogController.
func NewCatalogController(catalogService service.CatalogService, queryService service.QueryService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
		queryService:   queryService,
		validator:      validator.New(),
	}
}

// ListDatabases godoc
// @Summary List configured databases
// @Tags catalog
// @Produce json
// @Success 200 {object} response.StandardResponse{data=[]model.DatabaseSummary}
// @Router /api/v1/databases [get]
func (cc *CatalogController) ListDatabases(c *gin.Context) {
	correlationID := middleware.GetCorrelationID(c)

	databases, err := cc.catalogService.ListDatabases(c.Request.Context())
	if err != nil {
		cc.writeError(c, err, correlationID)
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse(databases, correlationID))
}

// ListTables godoc
// @Summary List tables in a database
// @Tags catalog
// @Produce json
// @Param database path string true "Database label"
// @Param schema query string false "Schema filter"
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} response.StandardResponse{data=model.TableListing}
// @Failure 400 {object} response.StandardResponse
// @Failure 404 {object} response.StandardResponse
// @Router /api/v1/databases/{database}/tables [get]
func (cc *CatalogController) ListTables(c *gin.Context) {
	correlationID := middleware.GetCorrelationID(c)

	req, ok := cc.bindCatalogRequest(c, correlationID, false)
	if !ok {
		return
	}

	listing, err := cc.catalogService.ListTables(c.Request.Context(), req)
	if err != nil {
		cc.writeError(c, err, correlationID)
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse(listing, correlationID))
}

// DescribeTable godoc
// @Summary Describe a table's columns and foreign keys, paginated
// @Description Returns one page of the merged stream of columns, outgoing
// foreign keys and incoming foreign keys, in that fixed order. A page past
// the end yields an empty items list with intact pagination metadata.
// @Tags catalog
// @Produce json
// @Param database path string true "Database label"
// @Param table path string true "Table name"
// @Param schema query string false "Schema filter"
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} response.StandardResponse{data=model.PaginatedResult}
// @Failure 400 {object} response.StandardResponse
// @Failure 404 {object} response.StandardResponse
// @Router /api/v1/databases/{database}/tables/{table} [get]
func (cc *CatalogController) DescribeTable(c *gin.Context) {
	correlationID := middleware.GetCorrelationID(c)

	req, ok := cc.bindCatalogRequest(c, correlationID, true)
	if !ok {
		return
	}

	result, err := cc.catalogService.DescribeTable(c.Request.Context(), req)
	if err != nil {
		cc.writeError(c, err, correlationID)
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse(result, correlationID))
}

// SampleTable godoc
// @Summary Sample rows from a table
// @Tags catalog
// @Produce json
// @Param database path string true "Database label"
// @Param table path string true "Table name"
// @Param schema query string false "Schema filter"
// @Param limit query int false "Row count"
// @Success 200 {object} response.StandardResponse{data=model.SampleResult}
// @Failure 400 {object} response.StandardResponse
// @Failure 404 {object} response.StandardResponse
// @Router /api/v1/databases/{database}/tables/{table}/sample [get]
func (cc *CatalogController) SampleTable(c *gin.Context) {
	correlationID := middleware.GetCorrelationID(c)

	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse(
			utils.ErrCodeInvalidRequest, "limit must be an integer", "", correlationID))
		return
	}

	result, svcErr := cc.catalogService.SampleTable(
		c.Request.Context(), c.Param("database"), c.Param("table"), c.Query("schema"), limit)
	if svcErr != nil {
		cc.writeError(c, svcErr, correlationID)
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse(result, correlationID))
}

// QueryRequest is the execute-query request body.
type QueryRequest struct {
	Database string `json:"database" validate:"required"`
	SQL      string `json:"sql" validate:"required"`
}

// ExecuteQuery godoc
// @Summary Execute a read-only SQL query
// @Tags queries
// @Accept json
// @Produce json
// @Param request body QueryRequest true "Query execution request"
// @Success 200 {object} response.StandardResponse{data=model.QueryResult}
// @Failure 400 {object} response.StandardResponse
// @Failure 403 {object} response.StandardResponse
// @Failure 422 {object} response.StandardResponse
// @Router /api/v1/query [post]
func (cc *CatalogController) ExecuteQuery(c *gin.Context) {
	correlationID := middleware.GetCorrelationID(c)

	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse(
			utils.ErrCodeInvalidRequest, "Invalid request body: "+err.Error(), "", correlationID))
		return
	}

	if err := cc.validator.Struct(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, response.ValidationErrorResponse(err.Error(), correlationID))
		return
	}

	result, err := cc.queryService.ExecuteQuery(c.Request.Context(), req.Database, req.SQL)
	if err != nil {
		cc.writeError(c, err, correlationID)
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse(result, correlationID))
}

// TestConnection godoc
// @Summary Test connectivity to a database
// @Tags catalog
// @Produce json
// @Param database path string true "Database label"
// @Success 200 {object} response.StandardResponse{data=model.ConnectionTestResult}
// @Failure 404 {object} response.StandardResponse
// @Failure 503 {object} response.StandardResponse
// @Router /api/v1/databases/{database}/test [post]
func (cc *CatalogController) TestConnection(c *gin.Context) {
	correlationID := middleware.GetCorrelationID(c)

	result, err := cc.catalogService.TestConnection(c.Request.Context(), c.Param("database"))
	if err != nil {
		cc.writeError(c, err, correlationID)
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse(result, correlationID))
}

// QueryStats godoc
// @Summary Query execution counters since process start
// @Tags queries
// @Produce json
// @Success 200 {object} response.StandardResponse{data=service.QueryStats}
// @Router /api/v1/stats [get]
func (cc *CatalogController) QueryStats(c *gin.Context) {
	correlationID := middleware.GetCorrelationID(c)
	c.JSON(http.StatusOK, response.SuccessResponse(cc.queryService.Stats(), correlationID))
}

func (cc *CatalogController) bindCatalogRequest(c *gin.Context, correlationID string, needTable bool) (*model.CatalogRequest, bool) {
	page, err := queryInt(c, "page", 1)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse(
			utils.ErrCodeInvalidRequest, "page must be an integer", "", correlationID))
		return nil, false
	}
	limit, err := queryInt(c, "limit", 50)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse(
			utils.ErrCodeInvalidRequest, "limit must be an integer", "", correlationID))
		return nil, false
	}

	req := &model.CatalogRequest{
		Database: c.Param("database"),
		Table:    c.Param("table"),
		Schema:   c.Query("schema"),
		Page:     page,
		Limit:    limit,
	}

	if !needTable {
		// Table listing reuses the same request shape without a table.
		req.Table = "_"
	}
	if err := cc.validator.Struct(req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, response.ValidationErrorResponse(err.Error(), correlationID))
		return nil, false
	}
	if !needTable {
		req.Table = ""
	}
	return req, true
}

func (cc *CatalogController) writeError(c *gin.Context, err error, correlationID string) {
	if appErr, ok := err.(*utils.AppError); ok {
		c.JSON(utils.GetErrorStatus(appErr), response.ErrorResponseFromAppError(appErr, correlationID))
		return
	}
	c.JSON(http.StatusInternalServerError, response.InternalServerErrorResponse(correlationID))
}

func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
