package handler

import (
	"net/http"

	"github.com/blues/ncp/internal/logic"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

// AdminHandler 管理配置接口
type AdminHandler struct {
	adminLogic *logic.AdminLogic
}

// NewAdminHandler 创建管理接口
func NewAdminHandler(p *logic.Platform) *AdminHandler {
	return &AdminHandler{adminLogic: logic.NewAdminLogic(p)}
}

// SetCharityAddress 修改公益收款地址
func (h *AdminHandler) SetCharityAddress(c *gin.Context) {
	var req CharityAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if !common.IsHexAddress(req.Address) {
		ErrorResponse(c, http.StatusBadRequest, "无效的收款地址")
		return
	}

	if err := h.adminLogic.SetCharityAddress(req.Address, c.GetString("caller")); err != nil {
		DomainErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "收款地址已更新", nil)
}

// SetDonationPercentage 修改捐赠比例
func (h *AdminHandler) SetDonationPercentage(c *gin.Context) {
	var req DonationPercentageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.adminLogic.SetDonationPercentage(req.Percentage, c.GetString("caller")); err != nil {
		DomainErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "捐赠比例已更新", nil)
}

// TogglePause 切换暂停开关
func (h *AdminHandler) TogglePause(c *gin.Context) {
	paused, err := h.adminLogic.TogglePause(c.GetString("caller"))
	if err != nil {
		DomainErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "暂停状态已切换", gin.H{"paused": paused})
}

// GetState 查询管理配置
func (h *AdminHandler) GetState(c *gin.Context) {
	state := h.adminLogic.State()
	SuccessResponse(c, http.StatusOK, "", gin.H{
		"owner":               state.Owner,
		"charity_address":     state.CharityAddress,
		"donation_percentage": state.DonationPercentage,
		"paused":              state.Paused,
	})
}
