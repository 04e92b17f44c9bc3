package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	courseRepo "velour/database/repository/course"
	employeeRepo "velour/database/repository/employee"
	serviceRepo "velour/database/repository/service"
	"velour/models"
	"velour/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	serviceImageFolder  = "velour/services"
	courseImageFolder   = "velour/courses"
	employeeImageFolder = "velour/employees"
)

// uploadImage pushes a local file to media storage and returns its URL.
// Failures are logged and swallowed so a catalog write never fails on media.
func (s *DefaultCatalogService) uploadImage(ctx context.Context, localPath, folder string) string {
	if localPath == "" || s.Storage == nil {
		return ""
	}
	publicID, err := s.Storage.UploadFile(ctx, localPath, folder)
	if err != nil {
		utils.GetLogger().Warn("image upload failed", zap.String("path", localPath), zap.Error(err))
		return ""
	}
	url, err := s.Storage.GetDownloadURL(publicID)
	if err != nil {
		utils.GetLogger().Warn("image url resolution failed", zap.String("publicId", publicID), zap.Error(err))
		return ""
	}
	return url
}

func validateServiceInput(in ServiceInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return ValidationError{Field: "name", Reason: "is required"}
	}
	if in.Price < 0 {
		return ValidationError{Field: "price", Reason: "must not be negative"}
	}
	return nil
}

func (s *DefaultCatalogService) CreateService(ctx context.Context, in ServiceInput) (*models.Service, error) {
	if err := validateServiceInput(in); err != nil {
		return nil, err
	}
	now := time.Now()
	svc := &models.Service{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Image:       s.uploadImage(ctx, in.ImagePath, serviceImageFolder),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Services.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return svc, nil
}

func (s *DefaultCatalogService) ListServices(ctx context.Context) ([]models.Service, error) {
	return s.Services.GetAll(ctx)
}

func (s *DefaultCatalogService) GetService(ctx context.Context, id string) (*models.Service, error) {
	svc, err := s.Services.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return svc, nil
}

func (s *DefaultCatalogService) UpdateService(ctx context.Context, id string, in ServiceInput) (*models.Service, error) {
	if err := validateServiceInput(in); err != nil {
		return nil, err
	}
	svc, err := s.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	svc.Name = strings.TrimSpace(in.Name)
	svc.Description = in.Description
	svc.Price = in.Price
	if url := s.uploadImage(ctx, in.ImagePath, serviceImageFolder); url != "" {
		svc.Image = url
	}
	svc.UpdatedAt = time.Now()
	if err := s.Services.Update(ctx, svc); err != nil {
		if errors.Is(err, serviceRepo.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	return svc, nil
}

func (s *DefaultCatalogService) DeleteService(ctx context.Context, id string) error {
	err := s.Services.Delete(ctx, id)
	if errors.Is(err, serviceRepo.ErrNotFound) {
		return ErrServiceNotFound
	}
	return err
}

func validateCourseInput(in CourseInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return ValidationError{Field: "name", Reason: "is required"}
	}
	if in.Price < 0 {
		return ValidationError{Field: "price", Reason: "must not be negative"}
	}
	return nil
}

func (s *DefaultCatalogService) CreateCourse(ctx context.Context, in CourseInput) (*models.Course, error) {
	if err := validateCourseInput(in); err != nil {
		return nil, err
	}
	now := time.Now()
	course := &models.Course{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Image:       s.uploadImage(ctx, in.ImagePath, courseImageFolder),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Courses.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}
	return course, nil
}

func (s *DefaultCatalogService) ListCourses(ctx context.Context) ([]models.Course, error) {
	return s.Courses.GetAll(ctx)
}

func (s *DefaultCatalogService) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.Courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, courseRepo.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

func (s *DefaultCatalogService) UpdateCourse(ctx context.Context, id string, in CourseInput) (*models.Course, error) {
	if err := validateCourseInput(in); err != nil {
		return nil, err
	}
	course, err := s.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	course.Name = strings.TrimSpace(in.Name)
	course.Description = in.Description
	course.Price = in.Price
	if url := s.uploadImage(ctx, in.ImagePath, courseImageFolder); url != "" {
		course.Image = url
	}
	course.UpdatedAt = time.Now()
	if err := s.Courses.Update(ctx, course); err != nil {
		if errors.Is(err, courseRepo.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to update course: %w", err)
	}
	return course, nil
}

func (s *DefaultCatalogService) DeleteCourse(ctx context.Context, id string) error {
	err := s.Courses.Delete(ctx, id)
	if errors.Is(err, courseRepo.ErrNotFound) {
		return ErrCourseNotFound
	}
	return err
}

func validateEmployeeInput(in EmployeeInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return ValidationError{Field: "name", Reason: "is required"}
	}
	return nil
}

func (s *DefaultCatalogService) CreateEmployee(ctx context.Context, in EmployeeInput) (*models.Employee, error) {
	if err := validateEmployeeInput(in); err != nil {
		return nil, err
	}
	e := &models.Employee{
		ID:               uuid.New().String(),
		Name:             strings.TrimSpace(in.Name),
		Email:            in.Email,
		Phone:            in.Phone,
		AssignedServices: in.AssignedServices,
		ProfilePicture:   s.uploadImage(ctx, in.ImagePath, employeeImageFolder),
	}
	if err := s.Employees.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	return e, nil
}

func (s *DefaultCatalogService) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	return s.Employees.GetAll(ctx)
}

func (s *DefaultCatalogService) GetEmployee(ctx context.Context, id string) (*models.Employee, error) {
	e, err := s.Employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return e, nil
}

func (s *DefaultCatalogService) UpdateEmployee(ctx context.Context, id string, in EmployeeInput) (*models.Employee, error) {
	if err := validateEmployeeInput(in); err != nil {
		return nil, err
	}
	e, err := s.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Name = strings.TrimSpace(in.Name)
	e.Email = in.Email
	e.Phone = in.Phone
	e.AssignedServices = in.AssignedServices
	if url := s.uploadImage(ctx, in.ImagePath, employeeImageFolder); url != "" {
		e.ProfilePicture = url
	}
	if err := s.Employees.Update(ctx, e); err != nil {
		if errors.Is(err, employeeRepo.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	return e, nil
}

func (s *DefaultCatalogService) DeleteEmployee(ctx context.Context, id string) error {
	err := s.Employees.Delete(ctx, id)
	if errors.Is(err, employeeRepo.ErrNotFound) {
		return ErrEmployeeNotFound
	}
	return err
}
