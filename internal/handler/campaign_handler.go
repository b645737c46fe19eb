package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/ncp/internal/logic"
	"github.com/gin-gonic/gin"
)

// CampaignHandler 公益活动接口
type CampaignHandler struct {
	campaignLogic *logic.CampaignLogic
}

// NewCampaignHandler 创建活动接口
func NewCampaignHandler(p *logic.Platform) *CampaignHandler {
	return &CampaignHandler{campaignLogic: logic.NewCampaignLogic(p)}
}

// Create 创建活动
func (h *CampaignHandler) Create(c *gin.Context) {
	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	campaignID, err := h.campaignLogic.Create(req.Name, req.Description, req.Goal, req.Duration, c.GetString("caller"))
	if err != nil {
		DomainErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "活动创建成功", gin.H{"campaign_id": campaignID})
}

// Donate 现金捐赠
func (h *CampaignHandler) Donate(c *gin.Context) {
	campaignID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	var req DonateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.campaignLogic.Donate(campaignID, req.Amount, c.GetString("caller")); err != nil {
		DomainErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "捐赠成功", nil)
}

// DonateNFT 捐赠已挂单的NFT
func (h *CampaignHandler) DonateNFT(c *gin.Context) {
	campaignID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	var req DonateNftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.campaignLogic.DonateNFT(campaignID, req.TokenId, c.GetString("caller")); err != nil {
		DomainErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "NFT捐赠成功", nil)
}

// AddMilestone 添加里程碑
func (h *CampaignHandler) AddMilestone(c *gin.Context) {
	campaignID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	var req MilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	err = h.campaignLogic.AddMilestone(campaignID, req.Index, req.Description, req.TargetAmount, req.RewardURI, c.GetString("caller"))
	if err != nil {
		DomainErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "里程碑添加成功", nil)
}

// CheckMilestone 结算里程碑
func (h *CampaignHandler) CheckMilestone(c *gin.Context) {
	campaignID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}
	index, err := strconv.ParseUint(c.Param("index"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的里程碑序号")
		return
	}

	reached, err := h.campaignLogic.CheckMilestone(campaignID, index, c.GetString("caller"))
	if err != nil {
		DomainErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "结算完成", gin.H{"reached": reached})
}

// End 结束活动
func (h *CampaignHandler) End(c *gin.Context) {
	campaignID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	if err := h.campaignLogic.End(campaignID, c.GetString("caller")); err != nil {
		DomainErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "活动已结束", nil)
}

// GetCampaign 查询活动详情
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	campaignID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	campaign, ok := h.campaignLogic.Details(campaignID)
	if !ok {
		SuccessResponse(c, http.StatusOK, "活动不存在", nil)
		return
	}

	SuccessResponse(c, http.StatusOK, "", CampaignResponse{
		CampaignId:  campaignID,
		Name:        campaign.Name,
		Description: campaign.Description,
		Goal:        campaign.Goal,
		Raised:      campaign.Raised,
		Duration:    campaign.Duration,
		Active:      campaign.Active,
	})
}

// GetMilestone 查询里程碑
func (h *CampaignHandler) GetMilestone(c *gin.Context) {
	campaignID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}
	index, err := strconv.ParseUint(c.Param("index"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的里程碑序号")
		return
	}

	milestone, ok := h.campaignLogic.Milestone(campaignID, index)
	if !ok {
		SuccessResponse(c, http.StatusOK, "里程碑不存在", nil)
		return
	}

	SuccessResponse(c, http.StatusOK, "", MilestoneResponse{
		CampaignId:   campaignID,
		Index:        index,
		Description:  milestone.Description,
		TargetAmount: milestone.TargetAmount,
		RewardURI:    milestone.RewardURI,
		Reached:      milestone.Reached,
	})
}

// GetDonationHistory 查询累计现金捐赠
func (h *CampaignHandler) GetDonationHistory(c *gin.Context) {
	campaignID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	amount, ok := h.campaignLogic.DonationHistory(c.Param("addr"), campaignID)
	if !ok {
		SuccessResponse(c, http.StatusOK, "暂无捐赠记录", nil)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"amount": amount})
}

// GetStats 查询累计贡献价值
func (h *CampaignHandler) GetStats(c *gin.Context) {
	campaignID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	total, ok := h.campaignLogic.Stats(c.Param("addr"), campaignID)
	if !ok {
		SuccessResponse(c, http.StatusOK, "暂无参与记录", nil)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"total_value": total})
}

// GetNFTs 查询活动收到的NFT列表
func (h *CampaignHandler) GetNFTs(c *gin.Context) {
	campaignID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	tokens, ok := h.campaignLogic.NFTs(campaignID)
	if !ok {
		SuccessResponse(c, http.StatusOK, "暂无NFT捐赠", nil)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"token_ids": tokens})
}
