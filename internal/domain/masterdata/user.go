package masterdata

import (
	"time"
)

// User roles.
const (
	RoleProduction = "production"
	RoleQuality    = "quality"
	RoleWarehouse  = "warehouse"
)

// User is an operator account. Authentication lives in the command service;
// this side only lists accounts and their audit trail. The password hash is
// mapped so GORM selects resolve, but it never reaches a response body.
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"size:50;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	FullName     *string   `gorm:"size:100" json:"full_name"`
	Role         string    `gorm:"size:20;not null" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}

// UserLog is one authentication/audit event.
type UserLog struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	IDUser     *int64    `gorm:"column:id_user;index" json:"id_user"`
	Email      string    `gorm:"size:50;not null" json:"email"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	LogsStatus *string   `gorm:"type:text" json:"logs_status"`
	IPAddress  *string   `gorm:"column:ip_address;size:45" json:"ip_address"`
	UserAgent  *string   `gorm:"type:text" json:"user_agent,omitempty"`
}

// TableName returns the table name for UserLog
func (UserLog) TableName() string {
	return "user_log"
}

// UserFilter narrows user queries.
type UserFilter struct {
	Role  string
	Email string
}
