package models

import (
	"time"

	"gorm.io/gorm"
)

// Budget 月度类别预算
// 同一 (用户, 月份, 类别) 预期只有一条，但未加唯一约束，
// 重复行会在预算执行报表中各自重复计入同一笔支出。
type Budget struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	UserID     uint           `json:"user_id" gorm:"index;not null"`
	Month      string         `json:"month" gorm:"size:7;not null;index"` // YYYY-MM
	CategoryID uint           `json:"category_id" gorm:"not null"`
	Amount     float64        `json:"amount" gorm:"type:decimal(10,2);not null"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
	User       User           `json:"-" gorm:"foreignKey:UserID"`
	Category   Category       `json:"-" gorm:"foreignKey:CategoryID"`
}

// TableName 设置表名
func (Budget) TableName() string {
	return "budgets"
}
