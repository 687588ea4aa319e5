package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shivam-core/vantage/internal/budget"
	"github.com/shivam-core/vantage/internal/expense"
	"github.com/shivam-core/vantage/internal/models"
	"github.com/shivam-core/vantage/internal/parser"
	"github.com/shivam-core/vantage/internal/receipt"
	"github.com/shivam-core/vantage/internal/report"
	"github.com/shivam-core/vantage/internal/repository"
)

const maxReceiptSize = 10 << 20 // 10 MiB

// Handlers contains all HTTP request handlers.
type Handlers struct {
	expenses *expense.Service
	budgets  *budget.Manager
	receipts *receipt.Extractor
	reports  *report.ExcelBuilder
	logger   *zap.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(
	expenses *expense.Service,
	budgets *budget.Manager,
	receipts *receipt.Extractor,
	reports *report.ExcelBuilder,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		expenses: expenses,
		budgets:  budgets,
		receipts: receipts,
		reports:  reports,
		logger:   logger,
	}
}

// Response represents a standard JSON response.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// CreateExpenseRequest is the body of POST /api/expenses.
type CreateExpenseRequest struct {
	Text string `json:"text" binding:"required"`
}

// ExpenseResponse wraps a logged expense with any budget alert it
// triggered.
type ExpenseResponse struct {
	Expense *models.Expense     `json:"expense"`
	Alert   *models.BudgetAlert `json:"alert,omitempty"`
}

// ReceiptResponse reports an upload that was parsed into an expense.
type ReceiptResponse struct {
	Text    string              `json:"text"`
	Expense *models.Expense     `json:"expense"`
	Alert   *models.BudgetAlert `json:"alert,omitempty"`
}

// ListExpensesRequest represents query parameters for listing expenses.
type ListExpensesRequest struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// SaveBudgetRequest is the body of PUT /api/budgets.
type SaveBudgetRequest struct {
	Category string          `json:"category" binding:"required"`
	Amount   decimal.Decimal `json:"amount"`
	Period   string          `json:"period" binding:"required"`
}

// HealthCheck handles GET /health.
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   "1.0.0",
		},
	})
}

// CreateExpense handles POST /api/expenses.
func (h *Handlers) CreateExpense(c *gin.Context) {
	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "request body must include a text field",
		})
		return
	}

	h.logExpense(c, req.Text, nil)
}

// logExpense runs one text entry through the pipeline and writes the
// creation response. extractedText, when non-nil, marks a receipt
// upload and is echoed back to the client.
func (h *Handlers) logExpense(c *gin.Context, text string, extractedText *string) {
	logged, err := h.expenses.Log(c.Request.Context(), text)
	if err != nil {
		if msg, ok := parseGuidance(err); ok {
			c.JSON(http.StatusUnprocessableEntity, Response{
				Success: false,
				Error:   msg,
			})
			return
		}
		h.logger.Error("Failed to log expense", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to log expense",
		})
		return
	}

	alert, err := h.budgets.CheckAlert(c.Request.Context(), logged)
	if err != nil {
		// The expense is already saved; an alert failure only costs the
		// notification.
		h.logger.Error("Budget alert check failed", zap.Error(err))
		alert = nil
	}

	if extractedText != nil {
		c.JSON(http.StatusCreated, Response{
			Success: true,
			Data:    ReceiptResponse{Text: *extractedText, Expense: logged, Alert: alert},
		})
		return
	}
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    ExpenseResponse{Expense: logged, Alert: alert},
	})
}

// parseGuidance maps parse failures to user-facing guidance.
func parseGuidance(err error) (string, bool) {
	switch {
	case errors.Is(err, parser.ErrEmptyInput):
		return "Please describe your expense, e.g. '15.75 lunch at 12:30 pm'.", true
	case errors.Is(err, parser.ErrNoAmount):
		return "Could not find an amount in your message. Try something like 'Coffee $5.50 at Starbucks' or '20 at HNM at 10:30'.", true
	}
	return "", false
}

// ListExpenses handles GET /api/expenses.
func (h *Handlers) ListExpenses(c *gin.Context) {
	var req ListExpensesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid query parameters",
		})
		return
	}

	if req.Limit <= 0 || req.Limit > 100 {
		req.Limit = 20
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	expenses, err := h.expenses.List(c.Request.Context(), req.Limit, req.Offset)
	if err != nil {
		h.logger.Error("Failed to list expenses", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to retrieve expenses",
		})
		return
	}

	if expenses == nil {
		expenses = []*models.Expense{}
	}
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    expenses,
	})
}

// DeleteExpense handles DELETE /api/expenses/:id.
func (h *Handlers) DeleteExpense(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid expense ID",
		})
		return
	}

	if err := h.expenses.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, Response{
				Success: false,
				Error:   "expense not found",
			})
			return
		}
		h.logger.Error("Failed to delete expense", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to delete expense",
		})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true})
}

// ExpenseTotals handles GET /api/expenses/totals.
func (h *Handlers) ExpenseTotals(c *gin.Context) {
	totals, err := h.expenses.Totals(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to compute totals", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to compute totals",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    totals,
	})
}

// ExpenseStats handles GET /api/expenses/stats.
func (h *Handlers) ExpenseStats(c *gin.Context) {
	stats, err := h.expenses.Stats(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to compute stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to compute stats",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    stats,
	})
}

// ExportExpenses handles GET /api/expenses/export.
func (h *Handlers) ExportExpenses(c *gin.Context) {
	expenses, err := h.expenses.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to load expenses for export", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to export expenses",
		})
		return
	}

	buf, err := h.reports.Build(expenses)
	if err != nil {
		h.logger.Error("Failed to build export", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to export expenses",
		})
		return
	}

	filename := fmt.Sprintf("expenses-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}

// UploadReceipt handles POST /api/receipts.
func (h *Handlers) UploadReceipt(c *gin.Context) {
	file, err := c.FormFile("receipt")
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "multipart field 'receipt' is required",
		})
		return
	}

	if !receipt.SupportedType(file.Filename) {
		c.JSON(http.StatusUnsupportedMediaType, Response{
			Success: false,
			Error:   "only PDF receipts are supported",
		})
		return
	}
	if file.Size > maxReceiptSize {
		c.JSON(http.StatusRequestEntityTooLarge, Response{
			Success: false,
			Error:   "receipt exceeds the 10MB limit",
		})
		return
	}

	f, err := file.Open()
	if err != nil {
		h.logger.Error("Failed to open upload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to read receipt",
		})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		h.logger.Error("Failed to read upload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to read receipt",
		})
		return
	}

	text, err := h.receipts.ExtractText(data)
	if err != nil {
		h.logger.Error("Failed to extract receipt text", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, Response{
			Success: false,
			Error:   "could not read text from this PDF",
		})
		return
	}

	h.logExpense(c, text, &text)
}

// SaveBudget handles PUT /api/budgets.
func (h *Handlers) SaveBudget(c *gin.Context) {
	var req SaveBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "request body must include category, amount, and period",
		})
		return
	}

	b := &models.Budget{
		Category: req.Category,
		Amount:   req.Amount,
		Period:   req.Period,
	}
	if err := h.budgets.Save(c.Request.Context(), b); err != nil {
		if errors.Is(err, budget.ErrInvalidBudget) {
			c.JSON(http.StatusBadRequest, Response{
				Success: false,
				Error:   err.Error(),
			})
			return
		}
		h.logger.Error("Failed to save budget", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to save budget",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    b,
	})
}

// ListBudgets handles GET /api/budgets.
func (h *Handlers) ListBudgets(c *gin.Context) {
	budgets, err := h.budgets.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list budgets", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to retrieve budgets",
		})
		return
	}

	if budgets == nil {
		budgets = []*models.Budget{}
	}
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    budgets,
	})
}

// BudgetStatus handles GET /api/budgets/status.
func (h *Handlers) BudgetStatus(c *gin.Context) {
	statuses, err := h.budgets.Status(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to compute budget status", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to compute budget status",
		})
		return
	}

	if statuses == nil {
		statuses = []*models.BudgetStatus{}
	}
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    statuses,
	})
}

// DeleteBudget handles DELETE /api/budgets.
func (h *Handlers) DeleteBudget(c *gin.Context) {
	category := c.Query("category")
	period := c.Query("period")
	if category == "" || period == "" {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "category and period query parameters are required",
		})
		return
	}

	if err := h.budgets.Delete(c.Request.Context(), category, period); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, Response{
				Success: false,
				Error:   "budget not found",
			})
			return
		}
		h.logger.Error("Failed to delete budget",
			zap.String("category", category),
			zap.String("period", period),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to delete budget",
		})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true})
}
