package services

import (
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"employee-management-service/internal/domain/models"
	"employee-management-service/internal/infrastructure/config"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Admin{}, &models.Employee{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecretKey:    "test-secret",
		DefaultPageSize: 10,
		MaxPageSize:     100,
	}
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func mustCreate(t *testing.T, svc InterfaceEmployeeService, name, email, department string) *models.Employee {
	t.Helper()
	emp, err := svc.CreateEmployee(EmployeeInput{
		Name:       strPtr(name),
		Email:      strPtr(email),
		Department: strPtr(department),
		Position:   strPtr("Engineer"),
		Salary:     floatPtr(50000),
		HireDate:   strPtr("2022-01-10"),
	})
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	return emp
}

func TestCreateEmployeeValidation(t *testing.T) {
	svc := NewEmployeeService(setupTestDB(t), testConfig())

	_, err := svc.CreateEmployee(EmployeeInput{
		Name:   strPtr("X"),
		Email:  strPtr("not-an-email"),
		Salary: floatPtr(-5),
	})
	if err == nil {
		t.Fatal("invalid payload accepted")
	}
	items, ok := AsValidationErrors(err)
	if !ok {
		t.Fatalf("expected validation errors, got %v", err)
	}
	// name, email, salary plus the missing required fields
	if len(items) < 5 {
		t.Fatalf("expected itemized errors for every bad field, got %v", items)
	}
}

func TestCreateEmployeeNormalizesEmail(t *testing.T) {
	svc := NewEmployeeService(setupTestDB(t), testConfig())

	emp, err := svc.CreateEmployee(EmployeeInput{
		Name:       strPtr("Jane Smith"),
		Email:      strPtr("  Jane.Smith@Example.COM "),
		Department: strPtr("Engineering"),
		Position:   strPtr("Engineer"),
		Salary:     floatPtr(72500.50),
		HireDate:   strPtr("2023-04-17"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if emp.Email != "jane.smith@example.com" {
		t.Fatalf("email not normalized: %q", emp.Email)
	}
	if emp.Status != "Active" {
		t.Fatalf("default status = %q, want Active", emp.Status)
	}
}

func TestDuplicateEmailRejected(t *testing.T) {
	svc := NewEmployeeService(setupTestDB(t), testConfig())
	mustCreate(t, svc, "Jane Smith", "jane@example.com", "Engineering")

	_, err := svc.CreateEmployee(EmployeeInput{
		Name:       strPtr("Other Person"),
		Email:      strPtr("JANE@example.com"),
		Department: strPtr("Sales"),
		Position:   strPtr("Rep"),
		Salary:     floatPtr(40000),
		HireDate:   strPtr("2021-06-01"),
	})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestListEmployeesSearchAndFilters(t *testing.T) {
	svc := NewEmployeeService(setupTestDB(t), testConfig())
	mustCreate(t, svc, "Alice Adams", "alice@example.com", "Engineering")
	mustCreate(t, svc, "Bob Brown", "bob@example.com", "Sales")
	mustCreate(t, svc, "Carol Clark", "carol@example.com", "Engineering")

	employees, total, err := svc.ListEmployees(EmployeeQuery{Page: 1, PerPage: 10, Search: "ALICE"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(employees) != 1 || employees[0].Name != "Alice Adams" {
		t.Fatalf("case-insensitive search failed: total=%d employees=%v", total, employees)
	}

	_, total, err = svc.ListEmployees(EmployeeQuery{Page: 1, PerPage: 10, Department: "engin"})
	if err != nil {
		t.Fatalf("list by department: %v", err)
	}
	if total != 2 {
		t.Fatalf("department filter matched %d, want 2", total)
	}

	employees, total, err = svc.ListEmployees(EmployeeQuery{Page: 2, PerPage: 2})
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if total != 3 || len(employees) != 1 {
		t.Fatalf("pagination wrong: total=%d page2 len=%d", total, len(employees))
	}
	if employees[0].Name != "Carol Clark" {
		t.Fatalf("ordering wrong, page 2 = %q", employees[0].Name)
	}
}

func TestSoftDeleteLifecycle(t *testing.T) {
	svc := NewEmployeeService(setupTestDB(t), testConfig())
	emp := mustCreate(t, svc, "Jane Smith", "jane@example.com", "Engineering")

	if err := svc.SoftDeleteEmployee(emp.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	// gone from the default scope
	if _, err := svc.GetEmployeeByID(emp.ID, false); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("deleted record visible: %v", err)
	}

	// still reachable when deleted records are included
	got, err := svc.GetEmployeeByID(emp.ID, true)
	if err != nil {
		t.Fatalf("get with include_deleted: %v", err)
	}
	if !got.IsDeleted || got.DeletedAt == nil || got.Status != "Inactive" {
		t.Fatalf("deletion state not recorded: %+v", got)
	}

	// a second delete finds nothing
	if err := svc.SoftDeleteEmployee(emp.ID); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("double delete: %v", err)
	}

	// the email is free for a new record while the old one is deleted
	mustCreate(t, svc, "New Jane", "jane@example.com", "Sales")

	// which blocks the restore
	if _, err := svc.RestoreEmployee(emp.ID); !errors.Is(err, ErrRestoreConflict) {
		t.Fatalf("restore with conflicting email: %v", err)
	}
}

func TestListReflectsDeleteAndRestore(t *testing.T) {
	svc := NewEmployeeService(setupTestDB(t), testConfig())
	kept := mustCreate(t, svc, "Alice Adams", "alice@example.com", "Engineering")
	emp := mustCreate(t, svc, "Bob Brown", "bob@example.com", "Sales")

	listIDs := func() []uint {
		t.Helper()
		employees, _, err := svc.ListEmployees(EmployeeQuery{Page: 1, PerPage: 10})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		ids := make([]uint, 0, len(employees))
		for _, e := range employees {
			ids = append(ids, e.ID)
		}
		return ids
	}

	if ids := listIDs(); len(ids) != 2 {
		t.Fatalf("expected both records listed, got %v", ids)
	}

	if err := svc.SoftDeleteEmployee(emp.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	ids := listIDs()
	if len(ids) != 1 || ids[0] != kept.ID {
		t.Fatalf("deleted record still listed: %v", ids)
	}

	if _, err := svc.RestoreEmployee(emp.ID); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if ids := listIDs(); len(ids) != 2 {
		t.Fatalf("restored record missing from list: %v", ids)
	}
}

func TestListBeyondLastPage(t *testing.T) {
	svc := NewEmployeeService(setupTestDB(t), testConfig())
	mustCreate(t, svc, "Alice Adams", "alice@example.com", "Engineering")
	mustCreate(t, svc, "Bob Brown", "bob@example.com", "Sales")

	employees, total, err := svc.ListEmployees(EmployeeQuery{Page: 9, PerPage: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(employees) != 0 {
		t.Fatalf("expected empty page, got %d records", len(employees))
	}
	if total != 2 {
		t.Fatalf("total = %d, want 2", total)
	}

	p := models.NewPagination(total, 9, 10)
	if p.HasNext {
		t.Fatalf("has_next set past the last page: %+v", p)
	}
	if !p.HasPrev {
		t.Fatalf("has_prev unset on page 9: %+v", p)
	}
}

func TestRestoreEmployee(t *testing.T) {
	svc := NewEmployeeService(setupTestDB(t), testConfig())
	emp := mustCreate(t, svc, "Jane Smith", "jane@example.com", "Engineering")

	// restoring an active record is an error
	if _, err := svc.RestoreEmployee(emp.ID); !errors.Is(err, ErrEmployeeNotDeleted) {
		t.Fatalf("restore of active record: %v", err)
	}

	if err := svc.SoftDeleteEmployee(emp.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	restored, err := svc.RestoreEmployee(emp.ID)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored.IsDeleted || restored.DeletedAt != nil || restored.Status != "Active" {
		t.Fatalf("restore did not reset state: %+v", restored)
	}
}

func TestHardDeleteEmployee(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEmployeeService(db, testConfig())
	emp := mustCreate(t, svc, "Jane Smith", "jane@example.com", "Engineering")

	if _, err := svc.HardDeleteEmployee(emp.ID); err != nil {
		t.Fatalf("hard delete: %v", err)
	}

	var count int64
	db.Model(&models.Employee{}).Where("id = ?", emp.ID).Count(&count)
	if count != 0 {
		t.Fatal("record still present after permanent delete")
	}

	if _, err := svc.HardDeleteEmployee(emp.ID); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("second hard delete: %v", err)
	}
}

func TestUpdateEmployeePartial(t *testing.T) {
	svc := NewEmployeeService(setupTestDB(t), testConfig())
	emp := mustCreate(t, svc, "Jane Smith", "jane@example.com", "Engineering")

	updated, err := svc.UpdateEmployee(emp.ID, EmployeeInput{Position: strPtr("Staff Engineer")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Position != "Staff Engineer" {
		t.Fatalf("position = %q", updated.Position)
	}
	if updated.Name != "Jane Smith" || updated.Email != "jane@example.com" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}

	// keeping your own email is not a conflict
	if _, err := svc.UpdateEmployee(emp.ID, EmployeeInput{Email: strPtr("jane@example.com")}); err != nil {
		t.Fatalf("update with own email: %v", err)
	}

	other := mustCreate(t, svc, "Bob Brown", "bob@example.com", "Sales")
	if _, err := svc.UpdateEmployee(other.ID, EmployeeInput{Email: strPtr("jane@example.com")}); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("update onto taken email: %v", err)
	}
}

func TestGetStats(t *testing.T) {
	svc := NewEmployeeService(setupTestDB(t), testConfig())
	a := mustCreate(t, svc, "Alice Adams", "alice@example.com", "Engineering")
	mustCreate(t, svc, "Bob Brown", "bob@example.com", "Engineering")
	c := mustCreate(t, svc, "Carol Clark", "carol@example.com", "Sales")

	if _, err := svc.UpdateEmployee(c.ID, EmployeeInput{Status: strPtr("Inactive")}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if err := svc.SoftDeleteEmployee(a.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	stats, err := svc.GetStats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 3 || stats.Active != 1 || stats.Inactive != 1 || stats.Deleted != 1 {
		t.Fatalf("counts wrong: %+v", stats)
	}
	if len(stats.Departments) != 2 {
		t.Fatalf("departments = %v", stats.Departments)
	}
	// deleted rows are excluded, so Engineering has one active member left
	if stats.Departments[0].Department != "Engineering" || stats.Departments[0].Count != 1 {
		t.Fatalf("department counts wrong: %v", stats.Departments)
	}
}
