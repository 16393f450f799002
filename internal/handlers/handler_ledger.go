package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	portssvc "github.com/SscSPs/p2p_ledger/internal/core/ports/services"
	"github.com/SscSPs/p2p_ledger/internal/dto"
	"github.com/SscSPs/p2p_ledger/internal/middleware"
	"github.com/SscSPs/p2p_ledger/internal/utils"
	"github.com/gin-gonic/gin"
)

// ledgerHandler is the HTTP adapter over the transfer engine.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
	posthog       *utils.PosthogClientWrapper
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade, posthogClient *utils.PosthogClientWrapper) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls, posthog: posthogClient}
}

// RegisterLedgerRoutes registers the money movement and account view routes on an authenticated group.
// posthogClient may be nil.
func RegisterLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, posthogClient *utils.PosthogClientWrapper) {
	registerValidators()
	h := newLedgerHandler(ledgerService, posthogClient)

	ledger := rg.Group("/ledger")
	{
		ledger.POST("/deposits", h.deposit)
		ledger.POST("/withdrawals", h.withdraw)
		ledger.POST("/transfers", h.transfer)
		ledger.GET("/balance", h.getBalance)
		ledger.GET("/summary", h.getSummary)
		ledger.GET("/transactions", h.listTransactions)
	}
}

// deposit godoc
// @Summary Add money
// @Description Credits the caller's account, opening it in the preferred currency on first use
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   request body dto.DepositRequest true "Deposit details"
// @Success 201 {object} dto.ReceiptResponse
// @Failure 400 {object} ErrorResponse "Invalid amount"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 409 {object} ErrorResponse "Account not provisioned"
// @Failure 500 {object} ErrorResponse "Failed to deposit"
// @Security BearerAuth
// @Router /ledger/deposits [post]
func (h *ledgerHandler) deposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	receipt, err := h.ledgerService.Deposit(c.Request.Context(), userID, req.Amount, req.Source)
	if err != nil {
		respondError(c, logger, err, "Failed to deposit")
		return
	}

	middleware.PosthogEvent(c, h.posthog, "money_deposited", map[string]any{
		"amount":   req.Amount.String(),
		"currency": receipt.Currency.String(),
	})
	c.JSON(http.StatusCreated, dto.ToReceiptResponse(receipt))
}

// withdraw godoc
// @Summary Withdraw money
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   request body dto.WithdrawalRequest true "Withdrawal details"
// @Success 201 {object} dto.ReceiptResponse
// @Failure 400 {object} ErrorResponse "Invalid amount"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 409 {object} ErrorResponse "Account not provisioned"
// @Failure 422 {object} ErrorResponse "Insufficient funds"
// @Failure 500 {object} ErrorResponse "Failed to withdraw"
// @Security BearerAuth
// @Router /ledger/withdrawals [post]
func (h *ledgerHandler) withdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.WithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	receipt, err := h.ledgerService.Withdraw(c.Request.Context(), userID, req.Amount, req.Destination)
	if err != nil {
		respondError(c, logger, err, "Failed to withdraw")
		return
	}
	middleware.PosthogEvent(c, h.posthog, "money_withdrawn", map[string]any{
		"amount":   req.Amount.String(),
		"currency": receipt.Currency.String(),
	})
	c.JSON(http.StatusCreated, dto.ToReceiptResponse(receipt))
}

// transfer godoc
// @Summary Send money to another user
// @Description Moves money to the user matching recipientEmail (preferred) or recipientPhone, converting when the accounts use different currencies
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   request body dto.TransferRequest true "Transfer details"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} ErrorResponse "Invalid amount or missing recipient"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Recipient not found"
// @Failure 409 {object} ErrorResponse "Account not provisioned"
// @Failure 422 {object} ErrorResponse "Insufficient funds, self transfer or failed conversion"
// @Failure 500 {object} ErrorResponse "Failed to transfer"
// @Security BearerAuth
// @Router /ledger/transfers [post]
func (h *ledgerHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	receipt, err := h.ledgerService.Transfer(c.Request.Context(), userID, req.Selector(), req.Amount, req.Description)
	if err != nil {
		respondError(c, logger, err, "Failed to transfer")
		return
	}

	logger.Info("Transfer accepted", slog.String("recipient_id", receipt.RecipientID), slog.Int("legs", len(receipt.TransactionIDs)))
	middleware.PosthogEvent(c, h.posthog, "money_transferred", map[string]any{
		"currency":           receipt.SenderCurrency.String(),
		"recipient_currency": receipt.RecipientCurrency.String(),
		"cross_currency":     receipt.SenderCurrency != receipt.RecipientCurrency,
	})
	c.JSON(http.StatusCreated, dto.ToTransferResponse(receipt))
}

// getBalance godoc
// @Summary Get the formatted balance
// @Tags ledger
// @Produce  json
// @Param   currency query string false "Display currency (defaults to the account currency)"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 400 {object} ErrorResponse "Unsupported currency"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to get balance"
// @Security BearerAuth
// @Router /ledger/balance [get]
func (h *ledgerHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.DisplayCurrencyParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err)
		return
	}

	balance, err := h.ledgerService.GetDisplayBalance(c.Request.Context(), userID, params.Currency)
	if err != nil {
		respondError(c, logger, err, "Failed to get balance")
		return
	}
	c.JSON(http.StatusOK, dto.AccountBalanceResponse{
		Currency: strings.ToUpper(strings.TrimSpace(params.Currency)),
		Balance:  balance,
	})
}

// getSummary godoc
// @Summary Get balance, income and expenses
// @Tags ledger
// @Produce  json
// @Param   currency query string false "Display currency (defaults to the account currency)"
// @Success 200 {object} dto.AccountSummaryResponse
// @Failure 400 {object} ErrorResponse "Unsupported currency"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to get summary"
// @Security BearerAuth
// @Router /ledger/summary [get]
func (h *ledgerHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.DisplayCurrencyParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err)
		return
	}

	summary, err := h.ledgerService.GetAccountSummary(c.Request.Context(), userID, params.Currency)
	if err != nil {
		respondError(c, logger, err, "Failed to get summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountSummaryResponse(summary))
}

// listTransactions godoc
// @Summary List transaction history
// @Description Returns the caller's sent and received transactions, newest first, with token pagination
// @Tags ledger
// @Produce  json
// @Param   limit query int false "Page size (default 20, max 100)"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse "Invalid limit or token"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list transactions"
// @Security BearerAuth
// @Router /ledger/transactions [get]
func (h *ledgerHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err)
		return
	}

	views, next, err := h.ledgerService.ListTransactions(c.Request.Context(), userID, params.Limit, params.NextToken)
	if err != nil {
		respondError(c, logger, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(views, next, userID))
}
