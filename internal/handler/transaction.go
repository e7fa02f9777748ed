package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dalvguti/family-expenses-be/internal/models"
	"github.com/dalvguti/family-expenses-be/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TransactionHandler serves CRUD and stats over family transactions.
type TransactionHandler struct {
	DB *gorm.DB
}

func NewTransactionHandler(db *gorm.DB) *TransactionHandler {
	return &TransactionHandler{DB: db}
}

// ---------- request/response shapes ----------

type createTransactionReq struct {
	Description string   `json:"description" binding:"required,max=255"`
	Amount      *float64 `json:"amount" binding:"required,gte=0"`
	Category    string   `json:"category" binding:"required,max=64"`
	Date        string   `json:"date"`
	PaidBy      string   `json:"paidBy" binding:"required,max=64"`
	Type        string   `json:"type" binding:"omitempty,oneof=expense earning"`
}

type transactionResp struct {
	ID          uint      `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	PaidBy      string    `json:"paidBy"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toTransactionResp(t *models.Transaction) transactionResp {
	return transactionResp{
		ID:          t.ID,
		Description: t.Description,
		Amount:      util.AmountFromCents(t.AmountCents),
		Category:    t.Category,
		Date:        t.Date,
		PaidBy:      t.PaidBy,
		Type:        t.Type,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTransactionResps(ts []models.Transaction) []transactionResp {
	out := make([]transactionResp, 0, len(ts))
	for i := range ts {
		out = append(out, toTransactionResp(&ts[i]))
	}
	return out
}

// sortColumns whitelists API sort fields against their columns.
var sortColumns = map[string]string{
	"id":          "id",
	"date":        "date",
	"amount":      "amount_cents",
	"category":    "category",
	"paidBy":      "paid_by",
	"description": "description",
	"type":        "type",
	"createdAt":   "created_at",
}

// buildOrder turns "date,-amount" into "date ASC, amount_cents DESC".
// Unknown fields are dropped; an empty result falls back to date DESC.
func buildOrder(sort string) string {
	var parts []string
	for _, field := range strings.Split(sort, ",") {
		field = strings.TrimSpace(field)
		dir := "ASC"
		if strings.HasPrefix(field, "-") {
			dir = "DESC"
			field = field[1:]
		}
		col, ok := sortColumns[field]
		if !ok {
			continue
		}
		parts = append(parts, col+" "+dir)
	}
	if len(parts) == 0 {
		return "date DESC"
	}
	return strings.Join(parts, ", ")
}

// ---------- list ----------

func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	query := h.DB.Model(&models.Transaction{})

	if category := c.Query("category"); category != "" {
		query = query.Where("category LIKE ?", "%"+category+"%")
	}
	if paidBy := c.Query("paidBy"); paidBy != "" {
		query = query.Where("paid_by LIKE ?", "%"+paidBy+"%")
	}
	if txType := c.Query("type"); txType != "" {
		query = query.Where("type = ?", txType)
	}
	if startDate := c.Query("startDate"); startDate != "" {
		t, err := util.ParseDate(startDate)
		if err != nil {
			util.Error(c, http.StatusBadRequest, "Invalid startDate")
			return
		}
		query = query.Where("date >= ?", t)
	}
	if endDate := c.Query("endDate"); endDate != "" {
		t, err := util.ParseDate(endDate)
		if err != nil {
			util.Error(c, http.StatusBadRequest, "Invalid endDate")
			return
		}
		query = query.Where("date <= ?", t)
	}

	order := "date DESC"
	if sort := c.Query("sort"); sort != "" {
		order = buildOrder(sort)
	}
	query = query.Order(order)

	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			util.Error(c, http.StatusBadRequest, "Invalid limit")
			return
		}
		query = query.Limit(limit)
	}

	var transactions []models.Transaction
	if err := query.Find(&transactions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Error fetching transactions")
		return
	}

	util.Success(c, http.StatusOK, util.Response{
		"count": len(transactions),
		"data":  toTransactionResps(transactions),
	})
}

// ---------- read ----------

func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	transaction, ok := h.findByID(c)
	if !ok {
		return
	}
	util.Success(c, http.StatusOK, util.Response{
		"data": toTransactionResp(transaction),
	})
}

// ---------- create ----------

func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req createTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.ValidationError(c, "Please provide all required fields", err)
		return
	}

	date := time.Now()
	if req.Date != "" {
		t, err := util.ParseDate(req.Date)
		if err != nil {
			util.Error(c, http.StatusBadRequest, "Please provide a valid date")
			return
		}
		date = t
	}

	txType := req.Type
	if txType == "" {
		txType = models.TypeExpense
	}

	transaction := models.Transaction{
		Description: strings.TrimSpace(req.Description),
		AmountCents: util.CentsFromAmount(*req.Amount),
		Category:    strings.TrimSpace(req.Category),
		Date:        date,
		PaidBy:      strings.TrimSpace(req.PaidBy),
		Type:        txType,
	}
	if err := h.DB.Create(&transaction).Error; err != nil {
		util.Error(c, http.StatusBadRequest, "Error creating transaction")
		return
	}

	util.Success(c, http.StatusCreated, util.Response{
		"data": toTransactionResp(&transaction),
	})
}

// ---------- update ----------

func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	transaction, ok := h.findByID(c)
	if !ok {
		return
	}

	var req createTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.ValidationError(c, "Please provide all required fields", err)
		return
	}

	transaction.Description = strings.TrimSpace(req.Description)
	transaction.AmountCents = util.CentsFromAmount(*req.Amount)
	transaction.Category = strings.TrimSpace(req.Category)
	transaction.PaidBy = strings.TrimSpace(req.PaidBy)
	if req.Type != "" {
		transaction.Type = req.Type
	}
	if req.Date != "" {
		t, err := util.ParseDate(req.Date)
		if err != nil {
			util.Error(c, http.StatusBadRequest, "Please provide a valid date")
			return
		}
		transaction.Date = t
	}

	if err := h.DB.Save(transaction).Error; err != nil {
		util.Error(c, http.StatusBadRequest, "Error updating transaction")
		return
	}

	util.Success(c, http.StatusOK, util.Response{
		"data": toTransactionResp(transaction),
	})
}

// ---------- delete ----------

func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	transaction, ok := h.findByID(c)
	if !ok {
		return
	}

	if err := h.DB.Delete(transaction).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Error deleting transaction")
		return
	}

	util.Success(c, http.StatusOK, util.Response{
		"data": gin.H{},
	})
}

// findByID loads the path-parameter transaction, writing the error response on
// failure.
func (h *TransactionHandler) findByID(c *gin.Context) (*models.Transaction, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, "Invalid transaction id")
		return nil, false
	}

	var transaction models.Transaction
	if err := h.DB.First(&transaction, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "Transaction not found")
		} else {
			util.Error(c, http.StatusInternalServerError, "Error fetching transaction")
		}
		return nil, false
	}
	return &transaction, true
}

// ---------- stats ----------

type categoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int64   `json:"count"`
}

type categoryTotalRow struct {
	Category   string
	TotalCents int64
	Count      int64
}

func toCategoryTotals(rows []categoryTotalRow) []categoryTotal {
	out := make([]categoryTotal, 0, len(rows))
	for _, r := range rows {
		out = append(out, categoryTotal{
			Category: r.Category,
			Total:    util.AmountFromCents(r.TotalCents),
			Count:    r.Count,
		})
	}
	return out
}

// sumCents runs a coalesced SUM over the given scope; absent rows yield zero.
func sumCents(query *gorm.DB) (int64, error) {
	var cents int64
	err := query.Select("COALESCE(SUM(amount_cents), 0)").Scan(&cents).Error
	return cents, err
}

// GetStats returns running totals split by type, current-month totals and
// per-category breakdowns ordered by total descending.
func (h *TransactionHandler) GetStats(c *gin.Context) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	scope := func(txType string) *gorm.DB {
		return h.DB.Model(&models.Transaction{}).Where("type = ?", txType)
	}

	totalExpenses, err := sumCents(scope(models.TypeExpense))
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Error fetching stats")
		return
	}
	totalEarnings, err := sumCents(scope(models.TypeEarning))
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Error fetching stats")
		return
	}
	monthExpenses, err := sumCents(scope(models.TypeExpense).Where("date >= ?", monthStart))
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Error fetching stats")
		return
	}
	monthEarnings, err := sumCents(scope(models.TypeEarning).Where("date >= ?", monthStart))
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Error fetching stats")
		return
	}

	byCategory := func(txType string) ([]categoryTotalRow, error) {
		var rows []categoryTotalRow
		err := h.DB.Model(&models.Transaction{}).
			Select("category, COALESCE(SUM(amount_cents), 0) AS total_cents, COUNT(*) AS count").
			Where("type = ?", txType).
			Group("category").
			Order("total_cents DESC").
			Scan(&rows).Error
		return rows, err
	}

	expensesByCategory, err := byCategory(models.TypeExpense)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Error fetching stats")
		return
	}
	earningsByCategory, err := byCategory(models.TypeEarning)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Error fetching stats")
		return
	}

	util.Success(c, http.StatusOK, util.Response{
		"totalExpenses":        util.AmountFromCents(totalExpenses),
		"totalEarnings":        util.AmountFromCents(totalEarnings),
		"netBalance":           util.AmountFromCents(totalEarnings - totalExpenses),
		"currentMonthExpenses": util.AmountFromCents(monthExpenses),
		"currentMonthEarnings": util.AmountFromCents(monthEarnings),
		"currentMonthNet":      util.AmountFromCents(monthEarnings - monthExpenses),
		"expensesByCategory":   toCategoryTotals(expensesByCategory),
		"earningsByCategory":   toCategoryTotals(earningsByCategory),
	})
}
