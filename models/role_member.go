package models

type RoleMember struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	RoleID  uint `gorm:"not null;index:idx_role_member,unique" json:"role_id"`
	AdminID uint `gorm:"not null;index:idx_role_member,unique" json:"admin_id"`
}
