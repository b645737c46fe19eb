package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/ncp/internal/logic"
	"github.com/gin-gonic/gin"
)

// MarketHandler 交易市场接口
type MarketHandler struct {
	marketLogic *logic.MarketLogic
}

// NewMarketHandler 创建市场接口
func NewMarketHandler(p *logic.Platform) *MarketHandler {
	return &MarketHandler{marketLogic: logic.NewMarketLogic(p)}
}

// List 挂单出售
func (h *MarketHandler) List(c *gin.Context) {
	var req ListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.marketLogic.ListForSale(req.TokenId, req.Price, c.GetString("caller")); err != nil {
		DomainErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "挂单成功", gin.H{
		"token_id": req.TokenId,
		"price":    req.Price,
	})
}

// GetPrice 查询挂单价格
func (h *MarketHandler) GetPrice(c *gin.Context) {
	tokenID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的token ID")
		return
	}

	price, ok := h.marketLogic.GetPrice(tokenID)
	if !ok {
		SuccessResponse(c, http.StatusOK, "无挂单", nil)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"price": price})
}

// Buy 购买挂单token
func (h *MarketHandler) Buy(c *gin.Context) {
	tokenID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的token ID")
		return
	}

	if err := h.marketLogic.Buy(tokenID, c.GetString("caller")); err != nil {
		DomainErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "购买成功", nil)
}
