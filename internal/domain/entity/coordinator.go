package entity

import "time"

// Coordinator is a LINE user who receives birthday alerts.
type Coordinator struct {
	ID          string    `gorm:"column:user_id;primaryKey"`
	DisplayName string    `gorm:"column:display_name"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

// TableName specifies the table name for the Coordinator entity.
func (Coordinator) TableName() string {
	return "coordinator"
}
