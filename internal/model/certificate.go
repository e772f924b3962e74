package model

import "time"

// Certificate is issued once per (user, module) pair and is immutable. The
// issuance fields are a snapshot taken at generation time, so later edits to
// the user or module do not rewrite history.
type Certificate struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         uint      `gorm:"uniqueIndex:idx_user_module_cert;not null" json:"userId"`
	ModuleID       uint      `gorm:"uniqueIndex:idx_user_module_cert;not null" json:"moduleId"`
	Code           string    `gorm:"size:64;unique;not null" json:"code"`
	UserName       string    `gorm:"size:100" json:"userName"`
	ModuleTitle    string    `gorm:"size:255" json:"moduleTitle"`
	TimeSpent      int       `json:"timeSpent"` // seconds, summed at issuance
	CompletionDate time.Time `json:"completionDate"`
	IssuedAt       time.Time `json:"issuedAt"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (Certificate) TableName() string {
	return "certificates"
}
