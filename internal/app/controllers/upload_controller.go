package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"employee-management-service/internal/app/middleware"
	"employee-management-service/internal/domain/services"
	"employee-management-service/internal/domain/services/container"
	"employee-management-service/internal/error/code"
	"employee-management-service/internal/error/response"
)

// InterfaceUploadController defines the profile picture controller interface
type InterfaceUploadController interface {
	UploadProfilePicture()
	GetProfilePicture()
}

// UploadController handles profile picture requests
type UploadController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewUploadController creates a new upload controller
func NewUploadController(ctx *gin.Context, container *container.ServiceContainer) *UploadController {
	return &UploadController{
		Ctx:       ctx,
		Container: container,
	}
}

func (c *UploadController) fileService() services.InterfaceFileService {
	return c.Container.GetService("file").(services.InterfaceFileService)
}

func (c *UploadController) employeeService() services.InterfaceEmployeeService {
	return c.Container.GetService("employee").(services.InterfaceEmployeeService)
}

// 1 UploadProfilePicture stores a picture for an employee
// @Summary      Upload profile picture
// @Description  Accepts an image in the multipart "file" field, stores it with a thumbnail and replaces the previous picture
// @Tags         Employees
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path int true "Employee ID" example:"1"
// @Param        file formData file true "Image file (png, jpg, jpeg, gif or webp)"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      413  {object}  response.Response
// @Router       /employees/{id}/upload-profile [post]
// @Security     BearerAuth
func (c *UploadController) UploadProfilePicture() {
	id, ok := c.uploadPathID()
	if !ok {
		return
	}

	// The record must exist and be active before any file is written.
	employee, err := c.employeeService().GetEmployeeByID(id, false)
	if err != nil {
		response.Fail(c.Ctx, code.ErrEmployeeNotFound, nil)
		return
	}

	header, err := c.Ctx.FormFile("file")
	if err != nil {
		response.Fail(c.Ctx, code.ErrInvalidFile, nil)
		return
	}

	relPath, err := c.fileService().SaveProfilePicture(id, header)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFileTooLarge):
			response.Fail(c.Ctx, code.ErrFileTooLarge, nil)
		case errors.Is(err, services.ErrInvalidFile):
			response.Fail(c.Ctx, code.ErrInvalidFile, nil)
		default:
			response.FailWithMessage(c.Ctx, code.ErrUnknown, "Failed to store picture: "+err.Error(), nil)
		}
		return
	}

	oldPath := employee.ProfilePicturePath
	updated, err := c.employeeService().SetProfilePicture(id, relPath)
	if err != nil {
		c.fileService().DeleteProfilePicture(relPath)
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "Failed to update record: "+err.Error(), nil)
		return
	}

	// Remove the replaced picture only after the record points at the new one.
	if oldPath != "" && oldPath != relPath {
		c.fileService().DeleteProfilePicture(oldPath)
	}

	middleware.PurgeCache()
	response.Success(c.Ctx, updated.ToMap(false))
}

// 2 GetProfilePicture serves the stored picture or its thumbnail
// @Summary      Fetch profile picture
// @Description  Serves the stored image; pass thumbnail=true for the 150x150 JPEG variant
// @Tags         Employees
// @Produce      image/jpeg
// @Param        id path int true "Employee ID" example:"1"
// @Param        thumbnail query bool false "Serve the thumbnail" example:"false"
// @Success      200  {file}  binary
// @Failure      404  {object}  response.Response
// @Router       /employees/{id}/profile-picture [get]
func (c *UploadController) GetProfilePicture() {
	id, ok := c.uploadPathID()
	if !ok {
		return
	}

	// Soft-deleted employees keep their picture on disk until a permanent
	// delete, so the lookup includes them.
	employee, err := c.employeeService().GetEmployeeByID(id, true)
	if err != nil {
		response.Fail(c.Ctx, code.ErrEmployeeNotFound, nil)
		return
	}

	thumbnail := c.Ctx.Query("thumbnail") == "true"
	fullPath, contentType, err := c.fileService().ResolveProfilePicture(employee.ProfilePicturePath, thumbnail)
	if err != nil {
		response.Fail(c.Ctx, code.ErrPictureNotFound, nil)
		return
	}

	c.Ctx.Header("Content-Type", contentType)
	c.Ctx.File(fullPath)
}

func (c *UploadController) uploadPathID() (uint, bool) {
	idStr := c.Ctx.Param("id")
	id, err := parseRecordID(idStr)
	if err != nil {
		response.ParamError(c.Ctx, "Invalid ID parameter")
		return 0, false
	}
	return id, true
}

// HandleUploadFunc returns a Gin handler for the named upload method
func HandleUploadFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewUploadController(ctx, container)

		switch method {
		case "uploadProfilePicture":
			controller.UploadProfilePicture()
		case "getProfilePicture":
			controller.GetProfilePicture()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "Invalid method",
				"data":    nil,
			})
		}
	}
}
