package services

import (
	"errors"

	"gorm.io/gorm"

	"employee-management-service/internal/domain/models"
	"employee-management-service/internal/infrastructure/config"
	"employee-management-service/pkg/utils"
)

// InterfaceAdminService defines the administrator service interface
type InterfaceAdminService interface {
	GetAdminByID(id uint) (*models.Admin, error)
	GetAdminByIdentifier(identifier string) (*models.Admin, error)
	EnsureDefaultAdmin() error
	CheckPassword(password, hash string) bool
}

// AdminService provides administrator account management.
type AdminService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewAdminService creates a new administrator service.
func NewAdminService(db *gorm.DB, cfg *config.Config) InterfaceAdminService {
	return &AdminService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAdminByID fetches an administrator by id.
func (s *AdminService) GetAdminByID(id uint) (*models.Admin, error) {
	var admin models.Admin
	if err := s.DB.First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// 2 GetAdminByIdentifier fetches an administrator by username or email.
func (s *AdminService) GetAdminByIdentifier(identifier string) (*models.Admin, error) {
	var admin models.Admin
	err := s.DB.Where("username = ? OR email = ?", identifier, identifier).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// 3 EnsureDefaultAdmin seeds the configured default administrator when the
// table is empty.
func (s *AdminService) EnsureDefaultAdmin() error {
	var count int64
	if err := s.DB.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := utils.HashPassword(s.Config.DefaultAdminPassword)
	if err != nil {
		return err
	}

	admin := models.Admin{
		Username: s.Config.DefaultAdminUsername,
		Email:    s.Config.DefaultAdminEmail,
		Password: hashed,
		IsActive: true,
	}
	return s.DB.Create(&admin).Error
}

// 4 CheckPassword compares a plaintext password with a stored hash.
func (s *AdminService) CheckPassword(password, hash string) bool {
	return utils.CheckPasswordHash(password, hash)
}
