package models

import "time"

// SavedSpark records a bookmark of one user's spark by another user. The
// composite unique index makes the save toggle idempotent at the database.
type SavedSpark struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);index;uniqueIndex:uidx_user_spark_save"`
	SparkID   string    `json:"spark_id" gorm:"type:varchar(36);index;uniqueIndex:uidx_user_spark_save"`
	CreatedAt time.Time `json:"created_at"`
}
