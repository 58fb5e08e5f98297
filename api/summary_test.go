package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryHandler_GetSummary(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	currentMonth := time.Now().Format("2006-01")

	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WillReturnRows(sqlmock.NewRows(txColumns()).
			AddRow(1, 1, 3000.0, "income", "Side-Hustle", currentMonth+"-01", "", time.Now(), time.Now(), nil).
			AddRow(2, 1, 800.0, "expense", "Food", currentMonth+"-05", "", time.Now(), time.Now(), nil).
			AddRow(3, 1, 500.0, "savings", "Savings", currentMonth+"-10", "", time.Now(), time.Now(), nil).
			AddRow(4, 1, 1000.0, "income", "Side-Hustle", "2020-01-01", "", time.Now(), time.Now(), nil))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/dashboard/summary", NewSummaryHandler().GetSummary)

	req := httptest.NewRequest("GET", "/dashboard/summary", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})

	// 净余额 = 收入 - 支出 - 储蓄，储蓄不算可花的钱
	assert.Equal(t, float64(4000), data["total_income"])
	assert.Equal(t, float64(800), data["total_expenses"])
	assert.Equal(t, float64(500), data["total_savings"])
	assert.Equal(t, float64(2700), data["net_balance"])
	// 当月只统计本月日期前缀的记录
	assert.Equal(t, float64(3000), data["monthly_income"])
	assert.Equal(t, float64(800), data["monthly_expenses"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSummaryHandler_GetSummary_Empty(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WillReturnRows(sqlmock.NewRows(txColumns()))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/dashboard/summary", NewSummaryHandler().GetSummary)

	req := httptest.NewRequest("GET", "/dashboard/summary", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(0), data["net_balance"])
	require.NoError(t, mock.ExpectationsWereMet())
}
