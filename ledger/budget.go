package ledger

import (
	"math"
	"strings"

	"moneymate/models"
)

// 预算执行状态
const (
	StatusUnderBudget = "Under Budget"
	StatusOverBudget  = "Over Budget"
)

// BudgetLine 一条预算行，类别已从 ID 关联为名称
type BudgetLine struct {
	BudgetID uint    `json:"id" gorm:"column:budget_id"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// AdherenceRow 预算执行报表行
type AdherenceRow struct {
	ID          uint    `json:"id"`
	Category    string  `json:"category"`
	Budgeted    float64 `json:"budgeted"`
	Spent       float64 `json:"spent"`
	Remaining   float64 `json:"remaining"`
	PercentUsed int     `json:"percentUsed"`
	Status      string  `json:"status"`
}

// Adherence 计算指定月份的预算执行情况。
// 支出按类别名称精确（区分大小写）匹配：类别改名或删除后，旧预算
// 将永远匹配不到支出，这是沿用的历史行为，不在此处修正。
// 预算金额为 0 时 percentUsed 记 0，不做除法。
// 重复的预算行各自独立计算，会重复计入同一笔支出。
func Adherence(budgets []BudgetLine, txs []models.Transaction, month string) []AdherenceRow {
	// 先按类别名聚合当月支出
	spentByCategory := make(map[string]float64)
	for _, tx := range txs {
		if tx.Type != models.TypeExpense || !strings.HasPrefix(tx.Date, month) {
			continue
		}
		spentByCategory[tx.Category] += tx.Amount
	}

	rows := make([]AdherenceRow, 0, len(budgets))
	for _, b := range budgets {
		spent := spentByCategory[b.Category]
		remaining := b.Amount - spent

		percentUsed := 0
		if b.Amount > 0 {
			percentUsed = int(math.Round(spent / b.Amount * 100))
		}

		status := StatusUnderBudget
		if remaining < 0 {
			status = StatusOverBudget
		}

		rows = append(rows, AdherenceRow{
			ID:          b.BudgetID,
			Category:    b.Category,
			Budgeted:    b.Amount,
			Spent:       spent,
			Remaining:   remaining,
			PercentUsed: percentUsed,
			Status:      status,
		})
	}
	return rows
}
