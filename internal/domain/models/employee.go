package models

import "time"

// HireDateFormat is the wire format for hire dates.
const HireDateFormat = "2006-01-02"

// Employee represents an employee record with soft delete support.
// Email uniqueness is enforced by the service among non-deleted records
// only, so the column carries an index but no unique constraint.
type Employee struct {
	BaseModel
	Name               string    `gorm:"type:varchar(100);not null" json:"name"`
	Email              string    `gorm:"type:varchar(120);not null;index" json:"email"`
	Phone              string    `gorm:"type:varchar(20)" json:"phone"`
	Address            string    `gorm:"type:varchar(200)" json:"address"`
	Department         string    `gorm:"type:varchar(50);not null;index:ix_employee_dept_status" json:"department"`
	Position           string    `gorm:"type:varchar(50);not null" json:"position"`
	Salary             float64   `gorm:"type:decimal(10,2);not null" json:"salary"`
	HireDate           time.Time `gorm:"type:date;not null" json:"-"`
	Status             string    `gorm:"type:varchar(20);not null;default:'Active';index:ix_employee_dept_status;index:ix_employee_active,priority:2" json:"status"` // Active, Inactive
	ProfilePicturePath string    `gorm:"type:varchar(200)" json:"profile_picture_path"`

	IsDeleted bool       `gorm:"not null;default:false;index:ix_employee_active,priority:1" json:"-"`
	DeletedAt *time.Time `json:"-"`
}

// SoftDelete marks the employee deleted and inactive.
func (e *Employee) SoftDelete() {
	now := time.Now().UTC()
	e.IsDeleted = true
	e.DeletedAt = &now
	e.Status = "Inactive"
}

// Restore clears the deletion marker and reactivates the employee.
func (e *Employee) Restore() {
	e.IsDeleted = false
	e.DeletedAt = nil
	e.Status = "Active"
}

// ToMap builds the response payload for an employee. Deletion fields are
// included only when the caller asked for deleted records.
func (e *Employee) ToMap(includeDeleted bool) map[string]interface{} {
	data := map[string]interface{}{
		"id":                   e.ID,
		"name":                 e.Name,
		"email":                e.Email,
		"phone":                e.Phone,
		"address":              e.Address,
		"department":           e.Department,
		"position":             e.Position,
		"salary":               e.Salary,
		"hire_date":            e.HireDate.Format(HireDateFormat),
		"status":               e.Status,
		"profile_picture_path": e.ProfilePicturePath,
		"created_at":           e.CreatedAt,
		"updated_at":           e.UpdatedAt,
	}

	if includeDeleted {
		data["is_deleted"] = e.IsDeleted
		if e.DeletedAt != nil {
			data["deleted_at"] = e.DeletedAt
		} else {
			data["deleted_at"] = nil
		}
	}

	return data
}
