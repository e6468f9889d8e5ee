package model

import "time"

// ==================== 用户 ====================

// UserRole 用户角色
type UserRole string

const (
	UserRoleAdmin UserRole = "admin" // 管理员
	UserRoleStaff UserRole = "staff" // 普通运营
)

// UserStatus 用户状态
type UserStatus int

const (
	UserStatusActive   UserStatus = 1 // 正常
	UserStatusDisabled UserStatus = 2 // 禁用
)

// SysUser 后台用户
type SysUser struct {
	BaseModel
	Username    string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Password    string     `gorm:"size:100;not null" json:"-"` // bcrypt hash
	Role        UserRole   `gorm:"size:20;default:staff" json:"role"`
	Status      UserStatus `gorm:"default:1" json:"status"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

func (SysUser) TableName() string {
	return "sys_users"
}
