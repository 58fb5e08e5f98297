package service

import (
	"time"

	"moneymate/ledger"
	"moneymate/models"

	"gorm.io/gorm"
)

// AchieveResult 达成储蓄目标的返回结果
type AchieveResult struct {
	GoalName             string  `json:"goal_name"`
	TargetAmount         float64 `json:"target_amount"`
	RemainingSavings     float64 `json:"remaining_savings"`
	ExpenseTransactionID uint    `json:"expense_transaction_id"`
	SavingsTransactionID uint    `json:"savings_transaction_id"`
}

// AchieveGoal 达成储蓄目标：把攒满的目标转换为一笔支出 + 一笔储蓄冲抵。
//
// 前置条件按顺序检查，先失败先返回：
//  1. 目标存在且属于当前用户，否则 NotFoundError
//  2. 目标尚未达成，否则 InvalidStateError
//  3. 共享储蓄池 >= 目标金额，否则 InsufficientFundsError（带差额）
//  4. 必须提供支出类别，否则 ValidationError
//
// 三处写入（标记达成、支出记录、负数储蓄冲抵）在同一个数据库事务内完成，
// 任一步失败全部回滚，不会留下缺少配对冲抵的支出，也不会把目标标成已达成。
// 该操作不幂等：对已达成目标重复调用在第 2 步被拒绝，防止重复扣减。
func AchieveGoal(db *gorm.DB, userID, goalID uint, expenseCategory, description string) (*AchieveResult, error) {
	var result *AchieveResult

	err := db.Transaction(func(tx *gorm.DB) error {
		var goal models.SavingsGoal
		if err := tx.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return &ledger.NotFoundError{Resource: "储蓄目标"}
			}
			return &ledger.StorageError{Op: "查询目标", Err: err}
		}

		if goal.Achieved {
			return &ledger.InvalidStateError{Message: "目标已达成，不能重复达成"}
		}

		var pool float64
		if err := tx.Model(&models.Transaction{}).
			Where("user_id = ? AND type = ?", userID, models.TypeSavings).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&pool).Error; err != nil {
			return &ledger.StorageError{Op: "统计储蓄池", Err: err}
		}

		if pool < goal.TargetAmount {
			return &ledger.InsufficientFundsError{Shortfall: goal.TargetAmount - pool}
		}

		if expenseCategory == "" {
			return &ledger.ValidationError{Message: "必须指定支出类别"}
		}

		if description == "" {
			description = "Spent savings for: " + goal.Name
		}
		today := time.Now().Format("2006-01-02")

		expense := models.Transaction{
			UserID:      userID,
			Amount:      goal.TargetAmount,
			Type:        models.TypeExpense,
			Category:    expenseCategory,
			Date:        today,
			Description: description,
		}
		if err := tx.Create(&expense).Error; err != nil {
			return &ledger.StorageError{Op: "写入支出记录", Err: err}
		}

		// 负数储蓄冲抵，实际扣减共享储蓄池的就是这一条
		offset := models.Transaction{
			UserID:      userID,
			Amount:      -goal.TargetAmount,
			Type:        models.TypeSavings,
			Category:    models.CategorySavings,
			Date:        today,
			Description: "Used savings for: " + goal.Name,
		}
		if err := tx.Create(&offset).Error; err != nil {
			return &ledger.StorageError{Op: "写入储蓄冲抵记录", Err: err}
		}

		if err := tx.Model(&goal).Update("achieved", true).Error; err != nil {
			return &ledger.StorageError{Op: "标记目标已达成", Err: err}
		}

		result = &AchieveResult{
			GoalName:             goal.Name,
			TargetAmount:         goal.TargetAmount,
			RemainingSavings:     pool - goal.TargetAmount,
			ExpenseTransactionID: expense.ID,
			SavingsTransactionID: offset.ID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
