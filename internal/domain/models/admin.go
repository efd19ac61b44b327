package models

// Admin represents system administrators
type Admin struct {
	BaseModel
	Username string `gorm:"type:varchar(80);unique;not null" json:"username"`
	Email    string `gorm:"type:varchar(120);unique;not null" json:"email"`
	Password string `gorm:"column:password_hash;type:varchar(128);not null" json:"-"` // Password hash not exposed in JSON
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`
}
