package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"velour/services/catalog"
	"velour/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler exposes service and employee management endpoints.
type CatalogHandler struct {
	Service catalog.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(svc catalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{Service: svc}
}

// saveUploadedImage stores the optional "image" form file in a temp location
// and returns its path. An empty path means no image was sent.
func saveUploadedImage(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		// http.ErrMissingFile and multipart absence both mean no upload.
		return "", nil
	}
	dst := filepath.Join(os.TempDir(), filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// serviceInput binds a catalog service payload from either JSON or a
// multipart form carrying an image.
func serviceInput(c *gin.Context) (catalog.ServiceInput, error) {
	var in catalog.ServiceInput
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		in.Name = c.PostForm("name")
		in.Description = c.PostForm("description")
		if raw := c.PostForm("price"); raw != "" {
			price, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return in, err
			}
			in.Price = price
		}
		path, err := saveUploadedImage(c)
		if err != nil {
			return in, err
		}
		in.ImagePath = path
		return in, nil
	}
	err := c.ShouldBindJSON(&in)
	return in, err
}

// courseInput binds a course payload from either JSON or a multipart form
// carrying an image.
func courseInput(c *gin.Context) (catalog.CourseInput, error) {
	var in catalog.CourseInput
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		in.Name = c.PostForm("name")
		in.Description = c.PostForm("description")
		if raw := c.PostForm("price"); raw != "" {
			price, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return in, err
			}
			in.Price = price
		}
		path, err := saveUploadedImage(c)
		if err != nil {
			return in, err
		}
		in.ImagePath = path
		return in, nil
	}
	err := c.ShouldBindJSON(&in)
	return in, err
}

// employeeInput binds an employee payload from either JSON or a multipart
// form carrying a profile picture.
func employeeInput(c *gin.Context) (catalog.EmployeeInput, error) {
	var in catalog.EmployeeInput
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		in.Name = c.PostForm("name")
		in.Email = c.PostForm("email")
		in.Phone = c.PostForm("phone")
		in.AssignedServices = c.PostFormArray("assignedServices")
		path, err := saveUploadedImage(c)
		if err != nil {
			return in, err
		}
		in.ImagePath = path
		return in, nil
	}
	err := c.ShouldBindJSON(&in)
	return in, err
}

func cleanupUpload(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil {
		zap.L().Warn("failed to remove temp upload", zap.String("path", path), zap.Error(err))
	}
}

// CreateService handles POST /api/services.
func (ch *CatalogHandler) CreateService(c *gin.Context) {
	in, err := serviceInput(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	defer cleanupUpload(in.ImagePath)
	svc, err := ch.Service.CreateService(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, svc)
}

// ListServices handles GET /api/services.
func (ch *CatalogHandler) ListServices(c *gin.Context) {
	services, err := ch.Service.ListServices(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

// GetService handles GET /api/services/:id.
func (ch *CatalogHandler) GetService(c *gin.Context) {
	svc, err := ch.Service.GetService(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// UpdateService handles PUT /api/services/:id.
func (ch *CatalogHandler) UpdateService(c *gin.Context) {
	in, err := serviceInput(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	defer cleanupUpload(in.ImagePath)
	svc, err := ch.Service.UpdateService(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// DeleteService handles DELETE /api/services/:id.
func (ch *CatalogHandler) DeleteService(c *gin.Context) {
	if err := ch.Service.DeleteService(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "service deleted"})
}

// CreateCourse handles POST /api/courses.
func (ch *CatalogHandler) CreateCourse(c *gin.Context) {
	in, err := courseInput(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	defer cleanupUpload(in.ImagePath)
	course, err := ch.Service.CreateCourse(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

// ListCourses handles GET /api/courses.
func (ch *CatalogHandler) ListCourses(c *gin.Context) {
	courses, err := ch.Service.ListCourses(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

// GetCourse handles GET /api/courses/:id.
func (ch *CatalogHandler) GetCourse(c *gin.Context) {
	course, err := ch.Service.GetCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// UpdateCourse handles PUT /api/courses/:id.
func (ch *CatalogHandler) UpdateCourse(c *gin.Context) {
	in, err := courseInput(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	defer cleanupUpload(in.ImagePath)
	course, err := ch.Service.UpdateCourse(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// DeleteCourse handles DELETE /api/courses/:id.
func (ch *CatalogHandler) DeleteCourse(c *gin.Context) {
	if err := ch.Service.DeleteCourse(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "course deleted"})
}

// CreateEmployee handles POST /api/employees.
func (ch *CatalogHandler) CreateEmployee(c *gin.Context) {
	in, err := employeeInput(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	defer cleanupUpload(in.ImagePath)
	e, err := ch.Service.CreateEmployee(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

// ListEmployees handles GET /api/employees.
func (ch *CatalogHandler) ListEmployees(c *gin.Context) {
	employees, err := ch.Service.ListEmployees(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, employees)
}

// GetEmployee handles GET /api/employees/:id.
func (ch *CatalogHandler) GetEmployee(c *gin.Context) {
	e, err := ch.Service.GetEmployee(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// UpdateEmployee handles PUT /api/employees/:id.
func (ch *CatalogHandler) UpdateEmployee(c *gin.Context) {
	in, err := employeeInput(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	defer cleanupUpload(in.ImagePath)
	e, err := ch.Service.UpdateEmployee(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// DeleteEmployee handles DELETE /api/employees/:id.
func (ch *CatalogHandler) DeleteEmployee(c *gin.Context) {
	if err := ch.Service.DeleteEmployee(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "employee deleted"})
}
