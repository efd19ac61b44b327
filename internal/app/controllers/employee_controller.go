package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"employee-management-service/internal/app/middleware"
	"employee-management-service/internal/domain/models"
	"employee-management-service/internal/domain/services"
	"employee-management-service/internal/domain/services/container"
	"employee-management-service/internal/error/code"
	"employee-management-service/internal/error/response"
	"employee-management-service/internal/infrastructure/config"
)

// InterfaceEmployeeController defines the employee controller interface
type InterfaceEmployeeController interface {
	GetEmployees()
	GetEmployee()
	CreateEmployee()
	UpdateEmployee()
	DeleteEmployee()
	RestoreEmployee()
	GetStats()
}

// EmployeeController handles employee record requests
type EmployeeController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewEmployeeController creates a new employee controller
func NewEmployeeController(ctx *gin.Context, container *container.ServiceContainer) *EmployeeController {
	return &EmployeeController{
		Ctx:       ctx,
		Container: container,
	}
}

func (c *EmployeeController) employeeService() services.InterfaceEmployeeService {
	return c.Container.GetService("employee").(services.InterfaceEmployeeService)
}

// failEmployeeError maps service errors onto the response envelope.
func (c *EmployeeController) failEmployeeError(err error) {
	if items, ok := services.AsValidationErrors(err); ok {
		response.ValidationError(c.Ctx, items)
		return
	}
	switch {
	case errors.Is(err, services.ErrEmployeeNotFound):
		response.Fail(c.Ctx, code.ErrEmployeeNotFound, nil)
	case errors.Is(err, services.ErrEmployeeNotDeleted):
		response.Fail(c.Ctx, code.ErrEmployeeNotDeleted, nil)
	case errors.Is(err, services.ErrDuplicateEmail):
		response.Fail(c.Ctx, code.ErrDuplicateEmail, nil)
	case errors.Is(err, services.ErrRestoreConflict):
		response.FailWithMessage(c.Ctx, code.ErrDuplicateEmail, err.Error(), nil)
	default:
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "Employee operation failed: "+err.Error(), nil)
	}
}

// 1 GetEmployees lists employees with pagination, search and filters
// @Summary      List employees
// @Description  Returns a page of employee records with optional search and filters
// @Tags         Employees
// @Accept       json
// @Produce      json
// @Param        page query int false "Page number, defaults to 1" example:"1"
// @Param        per_page query int false "Page size, defaults to 10, capped at 100" example:"10"
// @Param        search query string false "Case-insensitive match on name, email or position" example:"smith"
// @Param        department query string false "Department substring filter" example:"Engineering"
// @Param        status query string false "Exact status filter: Active or Inactive" example:"Active"
// @Param        include_deleted query bool false "Include soft-deleted records" example:"false"
// @Success      200  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /employees [get]
// @Security     BearerAuth
func (c *EmployeeController) GetEmployees() {
	cfg := c.Container.GetService("config").(*config.Config)

	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.Ctx.DefaultQuery("per_page", strconv.Itoa(cfg.DefaultPageSize)))

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = cfg.DefaultPageSize
	}
	if perPage > cfg.MaxPageSize {
		perPage = cfg.MaxPageSize
	}

	query := services.EmployeeQuery{
		Page:           page,
		PerPage:        perPage,
		Search:         c.Ctx.Query("search"),
		Department:     c.Ctx.Query("department"),
		Status:         c.Ctx.Query("status"),
		IncludeDeleted: c.Ctx.Query("include_deleted") == "true",
	}

	employees, total, err := c.employeeService().ListEmployees(query)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "Failed to list employees: "+err.Error(), nil)
		return
	}

	items := make([]map[string]interface{}, 0, len(employees))
	for i := range employees {
		items = append(items, employees[i].ToMap(query.IncludeDeleted))
	}

	response.Success(c.Ctx, gin.H{
		"employees":  items,
		"pagination": models.NewPagination(total, page, perPage),
	})
}

// 2 GetEmployee returns a single employee by ID
// @Summary      Get employee
// @Description  Returns one employee record by ID
// @Tags         Employees
// @Accept       json
// @Produce      json
// @Param        id path int true "Employee ID" example:"1"
// @Param        include_deleted query bool false "Allow fetching a soft-deleted record" example:"false"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /employees/{id} [get]
// @Security     BearerAuth
func (c *EmployeeController) GetEmployee() {
	id, ok := c.pathID()
	if !ok {
		return
	}

	includeDeleted := c.Ctx.Query("include_deleted") == "true"
	employee, err := c.employeeService().GetEmployeeByID(id, includeDeleted)
	if err != nil {
		c.failEmployeeError(err)
		return
	}

	response.Success(c.Ctx, employee.ToMap(includeDeleted))
}

// EmployeeRequest is the create/update request body. Absent fields are
// left untouched on update.
type EmployeeRequest struct {
	Name       *string  `json:"name" example:"Jane Smith"`
	Email      *string  `json:"email" example:"jane.smith@example.com"`
	Phone      *string  `json:"phone" example:"+1 555 0100"`
	Address    *string  `json:"address" example:"12 Main Street"`
	Department *string  `json:"department" example:"Engineering"`
	Position   *string  `json:"position" example:"Backend Engineer"`
	Salary     *float64 `json:"salary" example:"72500.50"`
	HireDate   *string  `json:"hire_date" example:"2023-04-17"`
	Status     *string  `json:"status" example:"Active"`
}

func (r *EmployeeRequest) toInput() services.EmployeeInput {
	return services.EmployeeInput{
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		Address:    r.Address,
		Department: r.Department,
		Position:   r.Position,
		Salary:     r.Salary,
		HireDate:   r.HireDate,
		Status:     r.Status,
	}
}

// 3 CreateEmployee creates a new employee record
// @Summary      Create employee
// @Description  Creates an employee after validating all fields
// @Tags         Employees
// @Accept       json
// @Produce      json
// @Param        request body EmployeeRequest true "Employee fields"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /employees [post]
// @Security     BearerAuth
func (c *EmployeeController) CreateEmployee() {
	var req EmployeeRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "Invalid request body: "+err.Error())
		return
	}

	employee, err := c.employeeService().CreateEmployee(req.toInput())
	if err != nil {
		c.failEmployeeError(err)
		return
	}

	middleware.PurgeCache()
	response.Created(c.Ctx, employee.ToMap(false))
}

// 4 UpdateEmployee applies a partial update to an employee record
// @Summary      Update employee
// @Description  Updates the provided fields of an active employee
// @Tags         Employees
// @Accept       json
// @Produce      json
// @Param        id path int true "Employee ID" example:"1"
// @Param        request body EmployeeRequest true "Fields to update"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /employees/{id} [put]
// @Security     BearerAuth
func (c *EmployeeController) UpdateEmployee() {
	id, ok := c.pathID()
	if !ok {
		return
	}

	var req EmployeeRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "Invalid request body: "+err.Error())
		return
	}

	employee, err := c.employeeService().UpdateEmployee(id, req.toInput())
	if err != nil {
		c.failEmployeeError(err)
		return
	}

	middleware.PurgeCache()
	response.Success(c.Ctx, employee.ToMap(false))
}

// 5 DeleteEmployee soft deletes an employee, or destroys the record when
// permanent=true
// @Summary      Delete employee
// @Description  Soft deletes an employee; pass permanent=true to remove the record and its pictures
// @Tags         Employees
// @Accept       json
// @Produce      json
// @Param        id path int true "Employee ID" example:"1"
// @Param        permanent query bool false "Permanently delete the record" example:"false"
// @Success      204  "No Content"
// @Failure      404  {object}  response.Response
// @Router       /employees/{id} [delete]
// @Security     BearerAuth
func (c *EmployeeController) DeleteEmployee() {
	id, ok := c.pathID()
	if !ok {
		return
	}

	if c.Ctx.Query("permanent") == "true" {
		employee, err := c.employeeService().HardDeleteEmployee(id)
		if err != nil {
			c.failEmployeeError(err)
			return
		}
		fileService := c.Container.GetService("file").(services.InterfaceFileService)
		fileService.DeleteProfilePicture(employee.ProfilePicturePath)
	} else if err := c.employeeService().SoftDeleteEmployee(id); err != nil {
		c.failEmployeeError(err)
		return
	}

	middleware.PurgeCache()
	c.Ctx.Status(http.StatusNoContent)
}

// 6 RestoreEmployee brings a soft-deleted employee back
// @Summary      Restore employee
// @Description  Restores a soft-deleted employee unless its email is now taken
// @Tags         Employees
// @Accept       json
// @Produce      json
// @Param        id path int true "Employee ID" example:"1"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /employees/{id}/restore [post]
// @Security     BearerAuth
func (c *EmployeeController) RestoreEmployee() {
	id, ok := c.pathID()
	if !ok {
		return
	}

	employee, err := c.employeeService().RestoreEmployee(id)
	if err != nil {
		c.failEmployeeError(err)
		return
	}

	middleware.PurgeCache()
	response.Success(c.Ctx, employee.ToMap(false))
}

// 7 GetStats returns aggregate counts over the employee table
// @Summary      Employee statistics
// @Description  Returns totals by lifecycle state and per-department counts
// @Tags         Employees
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /employees/stats [get]
// @Security     BearerAuth
func (c *EmployeeController) GetStats() {
	stats, err := c.employeeService().GetStats()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "Failed to compute statistics: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, stats)
}

// parseRecordID parses a numeric :id path parameter.
func parseRecordID(idStr string) (uint, error) {
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// pathID parses the :id path parameter.
func (c *EmployeeController) pathID() (uint, bool) {
	id, err := parseRecordID(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "Invalid ID parameter")
		return 0, false
	}
	return id, true
}

// HandleEmployeeFunc returns a Gin handler for the named employee method
func HandleEmployeeFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewEmployeeController(ctx, container)

		switch method {
		case "getEmployees":
			controller.GetEmployees()
		case "getEmployee":
			controller.GetEmployee()
		case "createEmployee":
			controller.CreateEmployee()
		case "updateEmployee":
			controller.UpdateEmployee()
		case "deleteEmployee":
			controller.DeleteEmployee()
		case "restoreEmployee":
			controller.RestoreEmployee()
		case "getStats":
			controller.GetStats()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "Invalid method",
				"data":    nil,
			})
		}
	}
}
