package ledger

import (
	"testing"

	"moneymate/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdherence(t *testing.T) {
	budgets := []BudgetLine{{BudgetID: 1, Category: "Food", Amount: 300}}
	txs := []models.Transaction{
		{Amount: 1000, Type: models.TypeIncome, Category: "Upkeep", Date: "2024-05-01"},
		{Amount: 400, Type: models.TypeSavings, Category: "Savings", Date: "2024-05-03"},
		{Amount: 200, Type: models.TypeExpense, Category: "Food", Date: "2024-05-10"},
	}

	rows := Adherence(budgets, txs, "2024-05")
	require.Len(t, rows, 1)
	assert.Equal(t, "Food", rows[0].Category)
	assert.Equal(t, 300.0, rows[0].Budgeted)
	assert.Equal(t, 200.0, rows[0].Spent)
	assert.Equal(t, 100.0, rows[0].Remaining)
	assert.Equal(t, 67, rows[0].PercentUsed)
	assert.Equal(t, StatusUnderBudget, rows[0].Status)
}

func TestAdherence_OverBudget(t *testing.T) {
	budgets := []BudgetLine{{BudgetID: 1, Category: "Food", Amount: 100}}
	txs := []models.Transaction{
		{Amount: 80, Type: models.TypeExpense, Category: "Food", Date: "2024-05-02"},
		{Amount: 70, Type: models.TypeExpense, Category: "Food", Date: "2024-05-20"},
	}

	rows := Adherence(budgets, txs, "2024-05")
	require.Len(t, rows, 1)
	assert.Equal(t, 150.0, rows[0].Spent)
	assert.Equal(t, -50.0, rows[0].Remaining)
	assert.Equal(t, 150, rows[0].PercentUsed)
	assert.Equal(t, StatusOverBudget, rows[0].Status)
}

func TestAdherence_ZeroAmount(t *testing.T) {
	// 预算为 0 时 percentUsed 记 0，不做除法
	budgets := []BudgetLine{{BudgetID: 1, Category: "Food", Amount: 0}}
	txs := []models.Transaction{
		{Amount: 50, Type: models.TypeExpense, Category: "Food", Date: "2024-05-02"},
	}

	rows := Adherence(budgets, txs, "2024-05")
	require.Len(t, rows, 1)
	assert.Equal(t, 0, rows[0].PercentUsed)
	assert.Equal(t, StatusOverBudget, rows[0].Status)
}

func TestAdherence_CaseSensitiveNameMatch(t *testing.T) {
	// 类别名精确匹配：改名后的旧预算永远统计不到支出（沿用的历史行为）
	budgets := []BudgetLine{{BudgetID: 1, Category: "Groceries", Amount: 300}}
	txs := []models.Transaction{
		{Amount: 200, Type: models.TypeExpense, Category: "Food", Date: "2024-05-10"},
		{Amount: 50, Type: models.TypeExpense, Category: "groceries", Date: "2024-05-11"},
	}

	rows := Adherence(budgets, txs, "2024-05")
	require.Len(t, rows, 1)
	assert.Equal(t, 0.0, rows[0].Spent)
	assert.Equal(t, 300.0, rows[0].Remaining)
	assert.Equal(t, StatusUnderBudget, rows[0].Status)
}

func TestAdherence_OtherMonthExcluded(t *testing.T) {
	budgets := []BudgetLine{{BudgetID: 1, Category: "Food", Amount: 300}}
	txs := []models.Transaction{
		{Amount: 200, Type: models.TypeExpense, Category: "Food", Date: "2024-04-30"},
		{Amount: 120, Type: models.TypeExpense, Category: "Food", Date: "2024-05-01"},
	}

	rows := Adherence(budgets, txs, "2024-05")
	require.Len(t, rows, 1)
	assert.Equal(t, 120.0, rows[0].Spent)
}

func TestAdherence_DuplicateBudgetsDoubleCount(t *testing.T) {
	// 未加唯一约束时重复预算行各自重复计入同一笔支出
	budgets := []BudgetLine{
		{BudgetID: 1, Category: "Food", Amount: 300},
		{BudgetID: 2, Category: "Food", Amount: 100},
	}
	txs := []models.Transaction{
		{Amount: 200, Type: models.TypeExpense, Category: "Food", Date: "2024-05-10"},
	}

	rows := Adherence(budgets, txs, "2024-05")
	require.Len(t, rows, 2)
	assert.Equal(t, 200.0, rows[0].Spent)
	assert.Equal(t, 200.0, rows[1].Spent)
}
