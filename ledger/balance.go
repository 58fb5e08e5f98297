// Package ledger 是账本的纯计算核心：所有余额、预算执行、目标进度
// 都是对已取出的账目集合的派生视图，不在这里读写数据库。
package ledger

import (
	"strings"

	"moneymate/models"
)

// Summary 财务汇总
type Summary struct {
	TotalIncome     float64 `json:"total_income"`
	TotalExpenses   float64 `json:"total_expenses"`
	TotalSavings    float64 `json:"total_savings"`
	NetBalance      float64 `json:"net_balance"`
	MonthlyIncome   float64 `json:"monthly_income"`
	MonthlyExpenses float64 `json:"monthly_expenses"`
}

// SumByType 按交易类型求和。储蓄类包含负数冲抵记录，得到的是净储蓄。
func SumByType(txs []models.Transaction, txType string) float64 {
	var total float64
	for _, tx := range txs {
		if tx.Type == txType {
			total += tx.Amount
		}
	}
	return total
}

// MonthSumByType 按类型求和，仅统计日期落在指定月份（YYYY-MM 前缀匹配）的记录
func MonthSumByType(txs []models.Transaction, month, txType string) float64 {
	var total float64
	for _, tx := range txs {
		if tx.Type == txType && strings.HasPrefix(tx.Date, month) {
			total += tx.Amount
		}
	}
	return total
}

// Summarize 计算汇总：总收入、总支出、净储蓄、净余额，以及指定月份的收支。
// 空集合返回全零，不会出错。
func Summarize(txs []models.Transaction, month string) Summary {
	s := Summary{
		TotalIncome:   SumByType(txs, models.TypeIncome),
		TotalExpenses: SumByType(txs, models.TypeExpense),
		TotalSavings:  SumByType(txs, models.TypeSavings),
	}
	s.NetBalance = s.TotalIncome - s.TotalExpenses - s.TotalSavings
	s.MonthlyIncome = MonthSumByType(txs, month, models.TypeIncome)
	s.MonthlyExpenses = MonthSumByType(txs, month, models.TypeExpense)
	return s
}
