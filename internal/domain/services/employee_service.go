package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"employee-management-service/internal/domain/models"
	"employee-management-service/internal/infrastructure/config"
	"employee-management-service/pkg/validate"
)

// EmployeeQuery bundles the listing parameters.
type EmployeeQuery struct {
	Page           int
	PerPage        int
	Search         string
	Department     string
	Status         string
	IncludeDeleted bool
}

// EmployeeInput is the validated input schema for create and update. Nil
// fields are untouched on update and missing on create.
type EmployeeInput struct {
	Name       *string
	Email      *string
	Phone      *string
	Address    *string
	Department *string
	Position   *string
	Salary     *float64
	HireDate   *string
	Status     *string
}

// DepartmentCount is one row of the per-department statistics.
type DepartmentCount struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
}

// EmployeeStats aggregates record counts.
type EmployeeStats struct {
	Total       int64             `json:"total_employees"`
	Active      int64             `json:"active_employees"`
	Inactive    int64             `json:"inactive_employees"`
	Deleted     int64             `json:"deleted_employees"`
	Departments []DepartmentCount `json:"departments"`
}

// InterfaceEmployeeService defines the employee service interface
type InterfaceEmployeeService interface {
	ListEmployees(q EmployeeQuery) ([]models.Employee, int64, error)
	GetEmployeeByID(id uint, includeDeleted bool) (*models.Employee, error)
	CreateEmployee(input EmployeeInput) (*models.Employee, error)
	UpdateEmployee(id uint, input EmployeeInput) (*models.Employee, error)
	SoftDeleteEmployee(id uint) error
	HardDeleteEmployee(id uint) (*models.Employee, error)
	RestoreEmployee(id uint) (*models.Employee, error)
	SetProfilePicture(id uint, path string) (*models.Employee, error)
	GetStats() (*EmployeeStats, error)
}

// EmployeeService provides employee record management.
type EmployeeService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewEmployeeService creates a new employee service.
func NewEmployeeService(db *gorm.DB, cfg *config.Config) InterfaceEmployeeService {
	return &EmployeeService{
		DB:     db,
		Config: cfg,
	}
}

// activeScope restricts a query to non-deleted records.
func (s *EmployeeService) activeScope() *gorm.DB {
	return s.DB.Model(&models.Employee{}).Where("is_deleted = ?", false)
}

// 1 ListEmployees returns one page of employees plus the total count.
// Search matches name, email, department and position case-insensitively;
// filters are ANDed; results are ordered by name.
func (s *EmployeeService) ListEmployees(q EmployeeQuery) ([]models.Employee, int64, error) {
	var employees []models.Employee
	var total int64

	query := s.DB.Model(&models.Employee{})
	if !q.IncludeDeleted {
		query = query.Where("is_deleted = ?", false)
	}

	if q.Search != "" {
		term := "%" + strings.ToLower(q.Search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(department) LIKE ? OR LOWER(position) LIKE ?",
			term, term, term, term)
	}
	if q.Department != "" {
		query = query.Where("LOWER(department) LIKE ?", "%"+strings.ToLower(q.Department)+"%")
	}
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (q.Page - 1) * q.PerPage
	if err := query.Order("name").Limit(q.PerPage).Offset(offset).Find(&employees).Error; err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

// 2 GetEmployeeByID fetches an employee. Soft-deleted records are only
// reachable with includeDeleted.
func (s *EmployeeService) GetEmployeeByID(id uint, includeDeleted bool) (*models.Employee, error) {
	var employee models.Employee
	query := s.DB.Where("id = ?", id)
	if !includeDeleted {
		query = query.Where("is_deleted = ?", false)
	}
	if err := query.First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return &employee, nil
}

// 3 CreateEmployee validates the payload and persists a new record.
func (s *EmployeeService) CreateEmployee(input EmployeeInput) (*models.Employee, error) {
	employee := &models.Employee{Status: "Active"}
	if err := applyInput(employee, input, true); err != nil {
		return nil, err
	}

	inUse, err := s.emailInUse(employee.Email, 0)
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, ErrDuplicateEmail
	}

	if err := s.DB.Create(employee).Error; err != nil {
		return nil, err
	}
	return employee, nil
}

// 4 UpdateEmployee applies a partial update to an active record.
func (s *EmployeeService) UpdateEmployee(id uint, input EmployeeInput) (*models.Employee, error) {
	employee, err := s.GetEmployeeByID(id, false)
	if err != nil {
		return nil, err
	}

	if err := applyInput(employee, input, false); err != nil {
		return nil, err
	}

	if input.Email != nil {
		inUse, err := s.emailInUse(employee.Email, id)
		if err != nil {
			return nil, err
		}
		if inUse {
			return nil, ErrDuplicateEmail
		}
	}

	if err := s.DB.Save(employee).Error; err != nil {
		return nil, err
	}
	return employee, nil
}

// 5 SoftDeleteEmployee marks an active record deleted. A second call finds
// no active record and reports not found.
func (s *EmployeeService) SoftDeleteEmployee(id uint) error {
	employee, err := s.GetEmployeeByID(id, false)
	if err != nil {
		return err
	}

	employee.SoftDelete()
	return s.DB.Save(employee).Error
}

// 6 HardDeleteEmployee permanently removes a record regardless of deletion
// state and returns it so the caller can clean up stored files.
func (s *EmployeeService) HardDeleteEmployee(id uint) (*models.Employee, error) {
	employee, err := s.GetEmployeeByID(id, true)
	if err != nil {
		return nil, err
	}
	if err := s.DB.Delete(employee).Error; err != nil {
		return nil, err
	}
	return employee, nil
}

// 7 RestoreEmployee reactivates a soft-deleted record. Fails when another
// active record has taken the email in the meantime.
func (s *EmployeeService) RestoreEmployee(id uint) (*models.Employee, error) {
	var employee models.Employee
	if err := s.DB.Where("id = ? AND is_deleted = ?", id, true).First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotDeleted
		}
		return nil, err
	}

	inUse, err := s.emailInUse(employee.Email, id)
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, ErrRestoreConflict
	}

	employee.Restore()
	if err := s.DB.Save(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// 8 SetProfilePicture updates the stored profile picture reference.
func (s *EmployeeService) SetProfilePicture(id uint, path string) (*models.Employee, error) {
	employee, err := s.GetEmployeeByID(id, false)
	if err != nil {
		return nil, err
	}
	if err := s.DB.Model(employee).Update("profile_picture_path", path).Error; err != nil {
		return nil, err
	}
	employee.ProfilePicturePath = path
	return employee, nil
}

// 9 GetStats aggregates record counts, departments over non-deleted rows.
func (s *EmployeeService) GetStats() (*EmployeeStats, error) {
	stats := &EmployeeStats{Departments: []DepartmentCount{}}

	if err := s.DB.Model(&models.Employee{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := s.activeScope().Where("status = ?", "Active").Count(&stats.Active).Error; err != nil {
		return nil, err
	}
	if err := s.activeScope().Where("status = ?", "Inactive").Count(&stats.Inactive).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Employee{}).Where("is_deleted = ?", true).Count(&stats.Deleted).Error; err != nil {
		return nil, err
	}

	if err := s.activeScope().
		Select("department, COUNT(id) AS count").
		Group("department").
		Order("department").
		Scan(&stats.Departments).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// emailInUse reports whether a non-deleted record other than excludeID
// holds the email.
func (s *EmployeeService) emailInUse(email string, excludeID uint) (bool, error) {
	var count int64
	query := s.activeScope().Where("email = ?", email)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyInput validates the provided fields and writes them onto the
// record. With requireAll set, missing required fields are reported too.
func applyInput(employee *models.Employee, input EmployeeInput, requireAll bool) error {
	var errs ValidationErrors

	fieldErr := func(field, msg string) {
		errs = append(errs, fmt.Sprintf("%s: %s", field, msg))
	}

	if input.Name != nil {
		if name, msg := validate.Name(*input.Name); msg != "" {
			fieldErr("Name", msg)
		} else {
			employee.Name = name
		}
	} else if requireAll {
		fieldErr("Name", "Name is required")
	}

	if input.Email != nil {
		if email, msg := validate.Email(*input.Email); msg != "" {
			fieldErr("Email", msg)
		} else {
			employee.Email = email
		}
	} else if requireAll {
		fieldErr("Email", "Email is required")
	}

	if input.Phone != nil {
		if phone, msg := validate.Phone(*input.Phone); msg != "" {
			fieldErr("Phone", msg)
		} else {
			employee.Phone = phone
		}
	}

	if input.Address != nil {
		if address, msg := validate.Address(*input.Address); msg != "" {
			fieldErr("Address", msg)
		} else {
			employee.Address = address
		}
	}

	if input.Department != nil {
		if department, msg := validate.Department(*input.Department); msg != "" {
			fieldErr("Department", msg)
		} else {
			employee.Department = department
		}
	} else if requireAll {
		fieldErr("Department", "Department is required")
	}

	if input.Position != nil {
		if position, msg := validate.Position(*input.Position); msg != "" {
			fieldErr("Position", msg)
		} else {
			employee.Position = position
		}
	} else if requireAll {
		fieldErr("Position", "Position is required")
	}

	if input.Salary != nil {
		if salary, msg := validate.Salary(*input.Salary); msg != "" {
			fieldErr("Salary", msg)
		} else {
			employee.Salary = salary
		}
	} else if requireAll {
		fieldErr("Salary", "Salary is required")
	}

	if input.HireDate != nil {
		if hireDate, msg := validate.HireDate(*input.HireDate); msg != "" {
			fieldErr("Hire date", msg)
		} else {
			employee.HireDate = hireDate
		}
	} else if requireAll {
		fieldErr("Hire date", "Hire date is required")
	}

	if input.Status != nil {
		if status, msg := validate.Status(*input.Status); msg != "" {
			fieldErr("Status", msg)
		} else {
			employee.Status = status
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
