package storage

import "time"

// UserKeymapModel is the GORM model for the user_keymaps table
type UserKeymapModel struct {
	ActivePreset       string `gorm:"not null;default:'default'"`
	CreatedAt          time.Time
	CustomBindingsJSON string `gorm:"column:custom_bindings_json;not null;default:'{}'"`
	ID                 uint   `gorm:"primaryKey"`
	UpdatedAt          time.Time
	UserID             string `gorm:"column:user_id;not null;uniqueIndex:idx_user_keymaps_user"`
}

// TableName specifies the table name for GORM
func (UserKeymapModel) TableName() string { return "user_keymaps" }
