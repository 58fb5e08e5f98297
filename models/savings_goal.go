package models

import (
	"time"

	"gorm.io/gorm"
)

// SavingsGoal 储蓄目标
// 目标不单独持有余额：所有目标共享同一个储蓄池（储蓄类账目的净和），
// 当前进度在读取时由账目实时推导。achieved 一旦置为 true 不可逆转。
type SavingsGoal struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	UserID       uint           `json:"user_id" gorm:"index;not null"`
	Name         string         `json:"name" gorm:"size:100;not null"`
	TargetAmount float64        `json:"target_amount" gorm:"type:decimal(10,2);not null"`
	Deadline     string         `json:"deadline" gorm:"size:10;not null"` // YYYY-MM-DD
	Achieved     bool           `json:"achieved" gorm:"default:false"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
	User         User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (SavingsGoal) TableName() string {
	return "savings_goals"
}
