package handler

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/dalvguti/family-expenses-be/internal/models"
	"github.com/dalvguti/family-expenses-be/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ReportHandler serves the read-side aggregation endpoints.
type ReportHandler struct {
	DB *gorm.DB
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{DB: db}
}

// breakdown accumulates total/count per grouping key for one transaction type.
type breakdown struct {
	TotalCents int64
	Count      int64
}

type namedTotal struct {
	Name  string
	Total float64
	Count int64
}

// foldBy groups transactions of one type by key and returns the buckets
// ordered by total descending. Tie order beyond the total is unspecified.
func foldBy(transactions []models.Transaction, txType string, key func(*models.Transaction) string) []namedTotal {
	buckets := make(map[string]*breakdown)
	for i := range transactions {
		t := &transactions[i]
		if t.Type != txType {
			continue
		}
		b, ok := buckets[key(t)]
		if !ok {
			b = &breakdown{}
			buckets[key(t)] = b
		}
		b.TotalCents += t.AmountCents
		b.Count++
	}

	out := make([]namedTotal, 0, len(buckets))
	for name, b := range buckets {
		out = append(out, namedTotal{
			Name:  name,
			Total: util.AmountFromCents(b.TotalCents),
			Count: b.Count,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out
}

func categoryBreakdown(transactions []models.Transaction, txType string) []categoryTotal {
	folded := foldBy(transactions, txType, func(t *models.Transaction) string { return t.Category })
	out := make([]categoryTotal, 0, len(folded))
	for _, f := range folded {
		out = append(out, categoryTotal{Category: f.Name, Total: f.Total, Count: f.Count})
	}
	return out
}

type personTotal struct {
	PaidBy string  `json:"paidBy"`
	Total  float64 `json:"total"`
	Count  int64   `json:"count"`
}

func personBreakdown(transactions []models.Transaction, txType string) []personTotal {
	folded := foldBy(transactions, txType, func(t *models.Transaction) string { return t.PaidBy })
	out := make([]personTotal, 0, len(folded))
	for _, f := range folded {
		out = append(out, personTotal{PaidBy: f.Name, Total: f.Total, Count: f.Count})
	}
	return out
}

func typeTotals(transactions []models.Transaction) (expenseCents, earningCents int64, expenseCount, earningCount int64) {
	for i := range transactions {
		t := &transactions[i]
		if t.Type == models.TypeEarning {
			earningCents += t.AmountCents
			earningCount++
		} else {
			expenseCents += t.AmountCents
			expenseCount++
		}
	}
	return
}

// ---------- monthly ----------

// GetMonthlyReport returns totals, category and payer breakdowns and the raw
// transaction list for one calendar month.
func (h *ReportHandler) GetMonthlyReport(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, "Please provide year and month")
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		util.Error(c, http.StatusBadRequest, "Please provide year and month")
		return
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0)

	var transactions []models.Transaction
	if err := h.DB.
		Where("date >= ? AND date < ?", start, end).
		Order("date ASC").
		Find(&transactions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Error building monthly report")
		return
	}

	expenseCents, earningCents, expenseCount, earningCount := typeTotals(transactions)

	util.Success(c, http.StatusOK, util.Response{
		"year":               year,
		"month":              month,
		"totalExpenses":      util.AmountFromCents(expenseCents),
		"totalEarnings":      util.AmountFromCents(earningCents),
		"netBalance":         util.AmountFromCents(earningCents - expenseCents),
		"expenseCount":       expenseCount,
		"earningCount":       earningCount,
		"expensesByCategory": categoryBreakdown(transactions, models.TypeExpense),
		"earningsByCategory": categoryBreakdown(transactions, models.TypeEarning),
		"expensesByPerson":   personBreakdown(transactions, models.TypeExpense),
		"earningsByPerson":   personBreakdown(transactions, models.TypeEarning),
		"transactions":       toTransactionResps(transactions),
	})
}

// ---------- yearly ----------

type monthSummary struct {
	Month        int     `json:"month"`
	Expenses     float64 `json:"expenses"`
	Earnings     float64 `json:"earnings"`
	Net          float64 `json:"net"`
	ExpenseCount int64   `json:"expenseCount"`
	EarningCount int64   `json:"earningCount"`
}

// GetYearlyReport returns a month-by-month rollup. All 12 months are always
// emitted; months without activity report zeros, not absence.
func (h *ReportHandler) GetYearlyReport(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, "Please provide year")
		return
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(1, 0, 0)

	var transactions []models.Transaction
	if err := h.DB.
		Where("date >= ? AND date < ?", start, end).
		Find(&transactions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Error building yearly report")
		return
	}

	type monthAcc struct {
		expenseCents int64
		earningCents int64
		expenseCount int64
		earningCount int64
	}
	var months [12]monthAcc
	for i := range transactions {
		t := &transactions[i]
		m := int(t.Date.Month()) - 1
		if t.Type == models.TypeEarning {
			months[m].earningCents += t.AmountCents
			months[m].earningCount++
		} else {
			months[m].expenseCents += t.AmountCents
			months[m].expenseCount++
		}
	}

	monthlyBreakdown := make([]monthSummary, 0, 12)
	for m := 0; m < 12; m++ {
		acc := months[m]
		monthlyBreakdown = append(monthlyBreakdown, monthSummary{
			Month:        m + 1,
			Expenses:     util.AmountFromCents(acc.expenseCents),
			Earnings:     util.AmountFromCents(acc.earningCents),
			Net:          util.AmountFromCents(acc.earningCents - acc.expenseCents),
			ExpenseCount: acc.expenseCount,
			EarningCount: acc.earningCount,
		})
	}

	util.Success(c, http.StatusOK, util.Response{
		"year":             year,
		"monthlyBreakdown": monthlyBreakdown,
	})
}
