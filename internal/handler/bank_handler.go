package handler

import (
	"net/http"

	"github.com/blues/ncp/internal/bank"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

// BankHandler 内存账本充值接口, 仅开发模式启用
type BankHandler struct {
	bank *bank.MemoryBank
}

// NewBankHandler 创建账本接口
func NewBankHandler(b *bank.MemoryBank) *BankHandler {
	return &BankHandler{bank: b}
}

// Deposit 给指定地址充值
func (h *BankHandler) Deposit(c *gin.Context) {
	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if !common.IsHexAddress(req.Account) {
		ErrorResponse(c, http.StatusBadRequest, "无效的充值地址")
		return
	}

	h.bank.Deposit(req.Account, req.Amount)

	SuccessResponse(c, http.StatusOK, "充值成功", gin.H{
		"account": req.Account,
		"balance": h.bank.Balance(req.Account),
	})
}

// GetBalance 查询地址余额
func (h *BankHandler) GetBalance(c *gin.Context) {
	addr := c.Param("addr")
	SuccessResponse(c, http.StatusOK, "", gin.H{
		"account": addr,
		"balance": h.bank.Balance(addr),
	})
}
