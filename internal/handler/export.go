package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dalvguti/family-expenses-be/internal/models"
	"github.com/dalvguti/family-expenses-be/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler streams transactions as CSV or XLSX downloads.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

var exportHeader = []string{"Type", "Description", "Category", "Amount", "Paid By", "Date"}

func exportRow(t *models.Transaction) []string {
	return []string{
		t.Type,
		t.Description,
		t.Category,
		strconv.FormatFloat(util.AmountFromCents(t.AmountCents), 'f', 2, 64),
		t.PaidBy,
		t.Date.Format("2006-01-02"),
	}
}

func (h *ExportHandler) loadAll(c *gin.Context) ([]models.Transaction, bool) {
	var transactions []models.Transaction
	if err := h.DB.Order("date DESC").Find(&transactions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Error exporting transactions")
		return nil, false
	}
	return transactions, true
}

// ExportCSV writes all transactions as a CSV attachment.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	transactions, ok := h.loadAll(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.csv\"",
		time.Now().Format("20060102")))

	// UTF-8 BOM so spreadsheet apps detect the encoding
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeader)
	for i := range transactions {
		writer.Write(exportRow(&transactions[i]))
	}
}

// ExportXLSX writes all transactions as an XLSX attachment.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	transactions, ok := h.loadAll(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Transactions"
	f.SetSheetName("Sheet1", sheet)

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}
	for row := range transactions {
		values := exportRow(&transactions[row])
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, "Error exporting transactions")
	}
}
