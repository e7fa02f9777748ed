package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedReportData(t *testing.T, db *gorm.DB) {
	t.Helper()
	seedTransaction(t, db, "Groceries", 100, "Food", "Ana", "expense", "2024-03-05")
	seedTransaction(t, db, "Birthday", 50, "Gift", "Ben", "earning", "2024-03-10")
	seedTransaction(t, db, "Takeout", 30, "Food", "Ana", "expense", "2024-04-01")
}

func TestMonthlyReport(t *testing.T) {
	r, db := setupTest(t)
	token := authToken(t, r)
	seedReportData(t, db)

	w := doJSON(t, r, http.MethodGet, "/api/reports/monthly?year=2024&month=3", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)

	assert.Equal(t, float64(2024), body["year"])
	assert.Equal(t, float64(3), body["month"])
	assert.Equal(t, float64(100), body["totalExpenses"])
	assert.Equal(t, float64(50), body["totalEarnings"])
	assert.Equal(t, float64(-50), body["netBalance"])
	assert.Equal(t, float64(1), body["expenseCount"])
	assert.Equal(t, float64(1), body["earningCount"])

	byCategory := body["expensesByCategory"].([]interface{})
	require.Len(t, byCategory, 1)
	food := byCategory[0].(map[string]interface{})
	assert.Equal(t, "Food", food["category"])
	assert.Equal(t, float64(100), food["total"])
	assert.Equal(t, float64(1), food["count"])

	byPerson := body["expensesByPerson"].([]interface{})
	require.Len(t, byPerson, 1)
	assert.Equal(t, "Ana", byPerson[0].(map[string]interface{})["paidBy"])

	// the April transaction is outside the window
	assert.Len(t, body["transactions"].([]interface{}), 2)
}

func TestMonthlyReportBreakdownOrder(t *testing.T) {
	r, db := setupTest(t)
	token := authToken(t, r)
	seedTransaction(t, db, "Rent", 900, "Housing", "Ana", "expense", "2024-03-01")
	seedTransaction(t, db, "Groceries", 120, "Food", "Ben", "expense", "2024-03-02")
	seedTransaction(t, db, "Takeout", 40, "Food", "Ana", "expense", "2024-03-03")

	w := doJSON(t, r, http.MethodGet, "/api/reports/monthly?year=2024&month=3", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	byCategory := decode(t, w)["expensesByCategory"].([]interface{})
	require.Len(t, byCategory, 2)

	// largest total first
	first := byCategory[0].(map[string]interface{})
	second := byCategory[1].(map[string]interface{})
	assert.Equal(t, "Housing", first["category"])
	assert.Equal(t, "Food", second["category"])
	assert.Equal(t, float64(160), second["total"])
	assert.Equal(t, float64(2), second["count"])
}

func TestMonthlyReportEmptyMonth(t *testing.T) {
	r, _ := setupTest(t)
	token := authToken(t, r)

	w := doJSON(t, r, http.MethodGet, "/api/reports/monthly?year=2030&month=1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(0), body["totalExpenses"])
	assert.Equal(t, float64(0), body["totalEarnings"])
	assert.Equal(t, float64(0), body["netBalance"])
	assert.Empty(t, body["transactions"])
}

func TestMonthlyReportMissingParams(t *testing.T) {
	r, _ := setupTest(t)
	token := authToken(t, r)

	for _, path := range []string{
		"/api/reports/monthly",
		"/api/reports/monthly?year=2024",
		"/api/reports/monthly?year=2024&month=13",
		"/api/reports/monthly?year=2024&month=0",
	} {
		w := doJSON(t, r, http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Equal(t, "Please provide year and month", decode(t, w)["message"])
	}
}

func TestYearlyReportAllTwelveMonths(t *testing.T) {
	r, db := setupTest(t)
	token := authToken(t, r)
	seedTransaction(t, db, "Groceries", 100, "Food", "Ana", "expense", "2024-03-05")

	w := doJSON(t, r, http.MethodGet, "/api/reports/yearly?year=2024", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, float64(2024), body["year"])

	months := body["monthlyBreakdown"].([]interface{})
	require.Len(t, months, 12)

	for i, raw := range months {
		m := raw.(map[string]interface{})
		assert.Equal(t, float64(i+1), m["month"])
		if i == 2 {
			assert.Equal(t, float64(100), m["expenses"])
			assert.Equal(t, float64(1), m["expenseCount"])
			assert.Equal(t, float64(-100), m["net"])
		} else {
			assert.Equal(t, float64(0), m["expenses"])
			assert.Equal(t, float64(0), m["earnings"])
			assert.Equal(t, float64(0), m["expenseCount"])
		}
	}
}

func TestYearlyReportMissingYear(t *testing.T) {
	r, _ := setupTest(t)
	token := authToken(t, r)

	w := doJSON(t, r, http.MethodGet, "/api/reports/yearly", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please provide year", decode(t, w)["message"])
}

func TestTransactionStats(t *testing.T) {
	r, db := setupTest(t)
	token := authToken(t, r)
	seedTransaction(t, db, "Rent", 900, "Housing", "Ana", "expense", "2024-03-01")
	seedTransaction(t, db, "Salary", 2000, "Salary", "Ana", "earning", "2024-03-25")
	seedTransaction(t, db, "Groceries", 100, "Food", "Ben", "expense", "2024-04-02")

	w := doJSON(t, r, http.MethodGet, "/api/transactions/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)

	assert.Equal(t, float64(1000), body["totalExpenses"])
	assert.Equal(t, float64(2000), body["totalEarnings"])
	assert.Equal(t, float64(1000), body["netBalance"])

	byCategory := body["expensesByCategory"].([]interface{})
	require.Len(t, byCategory, 2)
	assert.Equal(t, "Housing", byCategory[0].(map[string]interface{})["category"])
}

func TestTransactionStatsEmpty(t *testing.T) {
	r, _ := setupTest(t)
	token := authToken(t, r)

	w := doJSON(t, r, http.MethodGet, "/api/transactions/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(0), body["totalExpenses"])
	assert.Equal(t, float64(0), body["netBalance"])
	assert.Empty(t, body["expensesByCategory"])
}
