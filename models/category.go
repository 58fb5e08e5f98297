package models

import (
	"time"

	"gorm.io/gorm"
)

// Category 用户自定义类别
// 名称在同一用户内唯一。账目按名称引用类别，预算按 ID 引用类别，
// 两套引用方式是历史遗留，改名后旧预算将匹配不到支出（见报表逻辑）。
type Category struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"not null;uniqueIndex:idx_user_category_name"`
	Name      string         `json:"name" gorm:"size:50;not null;uniqueIndex:idx_user_category_name"`
	Type      string         `json:"type" gorm:"size:20;not null"` // income/expense/savings
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
	User      User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (Category) TableName() string {
	return "categories"
}

// CategorySavings 系统保留类别：达成储蓄目标时的冲抵记录固定使用该类别
const CategorySavings = "Savings"

// DefaultCategories 新用户的默认类别
func DefaultCategories() []Category {
	return []Category{
		{Name: "Food", Type: TypeExpense},
		{Name: "Transport", Type: TypeExpense},
		{Name: "Clothing", Type: TypeExpense},
		{Name: "Upkeep", Type: TypeIncome},
		{Name: "Side-Hustle", Type: TypeIncome},
		{Name: "Other", Type: TypeExpense},
		{Name: "Luxury", Type: TypeExpense},
		{Name: "Electronics", Type: TypeExpense},
		{Name: "Education", Type: TypeExpense},
		{Name: CategorySavings, Type: TypeSavings},
	}
}
