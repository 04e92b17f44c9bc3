package catalog

import (
	"context"

	courseRepo "velour/database/repository/course"
	employeeRepo "velour/database/repository/employee"
	serviceRepo "velour/database/repository/service"
	"velour/models"
	"velour/services/storage"
)

// ServiceInput is the admin-facing input for creating or updating a catalog
// service. ImagePath, when set, points at an uploaded temp file to push to
// media storage.
type ServiceInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImagePath   string  `json:"-"`
}

// EmployeeInput is the admin-facing input for creating or updating a staff
// member.
type EmployeeInput struct {
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	Phone            string   `json:"phone"`
	AssignedServices []string `json:"assignedServices"`
	ImagePath        string   `json:"-"`
}

// CourseInput is the admin-facing input for creating or updating a course
// offering.
type CourseInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImagePath   string  `json:"-"`
}

// CatalogService manages the bookable services, the course offerings and the
// staff roster.
type CatalogService interface {
	CreateService(ctx context.Context, in ServiceInput) (*models.Service, error)
	ListServices(ctx context.Context) ([]models.Service, error)
	GetService(ctx context.Context, id string) (*models.Service, error)
	UpdateService(ctx context.Context, id string, in ServiceInput) (*models.Service, error)
	DeleteService(ctx context.Context, id string) error

	CreateCourse(ctx context.Context, in CourseInput) (*models.Course, error)
	ListCourses(ctx context.Context) ([]models.Course, error)
	GetCourse(ctx context.Context, id string) (*models.Course, error)
	UpdateCourse(ctx context.Context, id string, in CourseInput) (*models.Course, error)
	DeleteCourse(ctx context.Context, id string) error

	CreateEmployee(ctx context.Context, in EmployeeInput) (*models.Employee, error)
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	GetEmployee(ctx context.Context, id string) (*models.Employee, error)
	UpdateEmployee(ctx context.Context, id string, in EmployeeInput) (*models.Employee, error)
	DeleteEmployee(ctx context.Context, id string) error
}

// DefaultCatalogService implements CatalogService over the Mongo repositories
// and the media storage backend.
type DefaultCatalogService struct {
	Services  serviceRepo.ServiceRepository
	Courses   courseRepo.CourseRepository
	Employees employeeRepo.EmployeeRepository
	Storage   storage.StorageService
}
