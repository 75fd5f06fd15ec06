package controllers

import (
	"bytes"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/solemart/storefront/config"
	"github.com/solemart/storefront/models"
	"github.com/solemart/storefront/utils"
)

// GET /v1/admin/reports/sales/export
// Admin: Download sales report as Excel
func DownloadSalesReportExcel(c *gin.Context) {
	utils.LogInfo("DownloadSalesReportExcel called")

	period := c.DefaultQuery("period", "day")
	now := time.Now()
	var startDate, endDate time.Time

	switch period {
	case "day":
		startDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		endDate = startDate.Add(24*time.Hour - time.Nanosecond)
	case "week":
		endDate = time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
		startDate = endDate.AddDate(0, 0, -6)
		startDate = time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, startDate.Location())
	case "month":
		startDate = now.AddDate(0, 0, -30).Truncate(24 * time.Hour)
		endDate = now.Add(24 * time.Hour)
	default:
		utils.BadRequest(c, "Invalid period", "Period must be day, week, or month")
		return
	}

	var orders []models.Order
	query := config.DB.Where("created_at >= ? AND created_at <= ?", startDate, endDate).
		Preload("Items").
		Order("created_at DESC")
	if err := query.Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders for report: %v", err)
		utils.InternalServerError(c, "Failed to fetch orders", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d orders for Excel report", len(orders))

	var summary struct {
		TotalOrders     int
		PaidOrders      int
		TotalRevenue    float64
		TotalItems      int
		AverageOrderVal float64
	}
	for _, order := range orders {
		summary.TotalOrders++
		if order.PaymentStatus == models.PaymentStatusPaid {
			summary.PaidOrders++
			summary.TotalRevenue += order.Total
		}
		for _, item := range order.Items {
			summary.TotalItems += item.Quantity
		}
	}
	if summary.PaidOrders > 0 {
		summary.AverageOrderVal = math.Round((summary.TotalRevenue/float64(summary.PaidOrders))*100) / 100
	}
	summary.TotalRevenue = math.Round(summary.TotalRevenue*100) / 100

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Sales Report")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString("SOLEMART - Sales Report")
	periodRow := sheet.AddRow()
	periodRow.AddCell().SetString("Period: " + strings.ToUpper(period) + " | " + startDate.Format("2006-01-02") + " to " + endDate.Format("2006-01-02"))
	sheet.AddRow() // spacing

	headers := []string{"Order ID", "Customer", "Date", "Items", "Total", "Payment Status", "Status"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetString(h)
	}

	for _, order := range orders {
		itemCount := 0
		for _, item := range order.Items {
			itemCount += item.Quantity
		}
		row := sheet.AddRow()
		row.AddCell().SetString(order.ID)
		row.AddCell().SetString(order.CustomerName)
		row.AddCell().SetString(order.CreatedAt.Format("2006-01-02 15:04"))
		row.AddCell().SetInt(itemCount)
		row.AddCell().SetFloat(order.Total)
		row.AddCell().SetString(order.PaymentStatus)
		row.AddCell().SetString(order.Status)
	}

	sheet.AddRow() // spacing
	summaryHeader := sheet.AddRow()
	summaryHeader.AddCell().SetString("Summary")
	addSummaryRow(sheet, "Total Orders", fmt.Sprintf("%d", summary.TotalOrders))
	addSummaryRow(sheet, "Paid Orders", fmt.Sprintf("%d", summary.PaidOrders))
	addSummaryRow(sheet, "Items Sold", fmt.Sprintf("%d", summary.TotalItems))
	addSummaryRow(sheet, "Revenue (paid)", fmt.Sprintf("%.2f", summary.TotalRevenue))
	addSummaryRow(sheet, "Average Order Value", fmt.Sprintf("%.2f", summary.AverageOrderVal))

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", err.Error())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=sales_report_%s.xlsx", period))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	utils.LogInfo("Sales report exported for period %s (%d orders)", period, len(orders))
}

func addSummaryRow(sheet *xlsx.Sheet, label, value string) {
	row := sheet.AddRow()
	row.AddCell().SetString(label)
	row.AddCell().SetString(value)
}
