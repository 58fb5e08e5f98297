package models

import (
	"time"

	"gorm.io/gorm"
)

// 交易类型常量
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
	TypeSavings = "savings"
)

// Transaction 账目记录模型
// 金额始终为正数，唯一例外是达成储蓄目标时系统写入的储蓄冲抵记录（负数储蓄）。
// 日期使用 YYYY-MM-DD 字符串存储，月度统计按前缀匹配。
type Transaction struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	UserID      uint           `json:"user_id" gorm:"index;not null"`
	Amount      float64        `json:"amount" gorm:"type:decimal(10,2);not null"`
	Type        string         `json:"type" gorm:"size:20;not null;index"` // income/expense/savings
	Category    string         `json:"category" gorm:"size:50;not null"`
	Date        string         `json:"date" gorm:"size:10;not null;index"` // YYYY-MM-DD
	Description string         `json:"description" gorm:"size:255"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
	User        User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (Transaction) TableName() string {
	return "transactions"
}

// IsValidType 校验交易类型
func IsValidType(t string) bool {
	return t == TypeIncome || t == TypeExpense || t == TypeSavings
}
