package service

import (
	"errors"
	"testing"
	"time"

	"moneymate/ledger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock, func() { sqlDB.Close() }
}

func goalRows(achieved bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "name", "target_amount", "deadline", "achieved", "created_at", "updated_at", "deleted_at"}).
		AddRow(5, 1, "New Laptop", 400.0, "2024-12-31", achieved, time.Now(), time.Now(), nil)
}

func poolRows(pool float64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"COALESCE(SUM(amount), 0)"}).AddRow(pool)
}

func TestAchieveGoal(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `savings_goals`").
		WillReturnRows(goalRows(false))
	mock.ExpectQuery("SELECT COALESCE").
		WillReturnRows(poolRows(400))
	// 支出记录
	mock.ExpectExec("INSERT INTO `transactions`").
		WillReturnResult(sqlmock.NewResult(100, 1))
	// 储蓄冲抵记录
	mock.ExpectExec("INSERT INTO `transactions`").
		WillReturnResult(sqlmock.NewResult(101, 1))
	mock.ExpectExec("UPDATE `savings_goals`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := AchieveGoal(db, 1, 5, "Food", "")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "New Laptop", result.GoalName)
	assert.Equal(t, 400.0, result.TargetAmount)
	// 池被全额消耗
	assert.Equal(t, 0.0, result.RemainingSavings)
	assert.Equal(t, uint(100), result.ExpenseTransactionID)
	assert.Equal(t, uint(101), result.SavingsTransactionID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAchieveGoal_NotFound(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `savings_goals`").
		WillReturnRows(sqlmock.NewRows([]string{}))
	mock.ExpectRollback()

	result, err := AchieveGoal(db, 1, 999, "Food", "")
	assert.Nil(t, result)

	var notFound *ledger.NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAchieveGoal_AlreadyAchieved(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `savings_goals`").
		WillReturnRows(goalRows(true))
	mock.ExpectRollback()

	result, err := AchieveGoal(db, 1, 5, "Food", "")
	assert.Nil(t, result)

	// 不幂等：重复达成被拒绝，防止重复扣减
	var invalidState *ledger.InvalidStateError
	require.ErrorAs(t, err, &invalidState)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAchieveGoal_InsufficientFunds(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `savings_goals`").
		WillReturnRows(goalRows(false))
	mock.ExpectQuery("SELECT COALESCE").
		WillReturnRows(poolRows(100))
	mock.ExpectRollback()

	result, err := AchieveGoal(db, 1, 5, "Food", "")
	assert.Nil(t, result)

	// 差额随错误返回，且没有任何写入发生
	var insufficient *ledger.InsufficientFundsError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 300.0, insufficient.Shortfall)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAchieveGoal_MissingCategory(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `savings_goals`").
		WillReturnRows(goalRows(false))
	mock.ExpectQuery("SELECT COALESCE").
		WillReturnRows(poolRows(400))
	mock.ExpectRollback()

	result, err := AchieveGoal(db, 1, 5, "", "")
	assert.Nil(t, result)

	var validation *ledger.ValidationError
	require.ErrorAs(t, err, &validation)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAchieveGoal_RollbackOnStorageFailure(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `savings_goals`").
		WillReturnRows(goalRows(false))
	mock.ExpectQuery("SELECT COALESCE").
		WillReturnRows(poolRows(400))
	mock.ExpectExec("INSERT INTO `transactions`").
		WillReturnResult(sqlmock.NewResult(100, 1))
	// 第二条写入失败，整个事务回滚，不会留下无配对冲抵的支出
	mock.ExpectExec("INSERT INTO `transactions`").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	result, err := AchieveGoal(db, 1, 5, "Food", "")
	assert.Nil(t, result)

	var storage *ledger.StorageError
	require.ErrorAs(t, err, &storage)
	require.NoError(t, mock.ExpectationsWereMet())
}
