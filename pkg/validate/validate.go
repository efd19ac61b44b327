package validate

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Validation rules for employee fields. Each validator returns the
// normalized value and an empty message, or a human-readable message on
// failure.

const (
	// MaxSalary is the largest representable salary, decimal(10,2).
	MaxSalary = 9999999.99
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^[\+]?[1-9][\d\-\(\)\s]{7,15}$`)
	namePattern  = regexp.MustCompile(`^[a-zA-Z\s\-'\.]+$`)
)

// hireDateFormats are accepted in order.
var hireDateFormats = []string{"2006-01-02", "01/02/2006", "02-01-2006"}

// Name validates an employee name.
func Name(name string) (string, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "Name is required"
	}
	if len(name) < 2 {
		return "", "Name must be at least 2 characters"
	}
	if len(name) > 100 {
		return "", "Name must be less than 100 characters"
	}
	if !namePattern.MatchString(name) {
		return "", "Name contains invalid characters"
	}
	return name, ""
}

// Email validates and lower-cases an email address.
func Email(email string) (string, string) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", "Email is required"
	}
	if !emailPattern.MatchString(email) {
		return "", "Invalid email format"
	}
	return email, ""
}

// Phone validates an optional phone number.
func Phone(phone string) (string, string) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return "", ""
	}
	if !phonePattern.MatchString(phone) {
		return "", "Invalid phone format"
	}
	return phone, ""
}

// Department validates a department name.
func Department(department string) (string, string) {
	department = strings.TrimSpace(department)
	if department == "" {
		return "", "Department is required"
	}
	if len(department) < 2 {
		return "", "Department name must be at least 2 characters"
	}
	if len(department) > 50 {
		return "", "Department name must be less than 50 characters"
	}
	return department, ""
}

// Position validates a position title.
func Position(position string) (string, string) {
	position = strings.TrimSpace(position)
	if position == "" {
		return "", "Position is required"
	}
	if len(position) < 2 {
		return "", "Position must be at least 2 characters"
	}
	if len(position) > 50 {
		return "", "Position must be less than 50 characters"
	}
	return position, ""
}

// Salary validates a salary amount.
func Salary(salary float64) (float64, string) {
	if salary <= 0 {
		return 0, "Salary must be greater than 0"
	}
	if salary > MaxSalary {
		return 0, "Salary is too large"
	}
	return salary, ""
}

// HireDate parses and validates a hire date string.
func HireDate(value string) (time.Time, string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, "Hire date is required"
	}

	var hireDate time.Time
	var err error
	for _, format := range hireDateFormats {
		hireDate, err = time.Parse(format, value)
		if err == nil {
			break
		}
	}
	if err != nil {
		return time.Time{}, fmt.Sprintf("Invalid date format. Use one of: %s", strings.Join(hireDateFormats, ", "))
	}

	now := time.Now()
	if hireDate.After(now) {
		return time.Time{}, "Hire date cannot be in the future"
	}
	if hireDate.Before(time.Date(now.Year()-100, 1, 1, 0, 0, 0, 0, time.UTC)) {
		return time.Time{}, "Hire date is too far in the past"
	}

	return hireDate, ""
}

// Status validates an employee status value.
func Status(status string) (string, string) {
	status = strings.TrimSpace(status)
	if status != "Active" && status != "Inactive" {
		return "", "Status must be one of: Active, Inactive"
	}
	return status, ""
}

// Address validates an optional address.
func Address(address string) (string, string) {
	address = strings.TrimSpace(address)
	if len(address) > 200 {
		return "", "Address must be less than 200 characters"
	}
	return address, ""
}
