package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/ncp/internal/logic"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

// NftHandler token相关接口
type NftHandler struct {
	nftLogic *logic.NftLogic
}

// NewNftHandler 创建token接口
func NewNftHandler(p *logic.Platform) *NftHandler {
	return &NftHandler{nftLogic: logic.NewNftLogic(p)}
}

// Mint 铸造token
func (h *NftHandler) Mint(c *gin.Context) {
	var req MintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	tokenID, err := h.nftLogic.Mint(req.URI, req.Category, c.GetString("caller"))
	if err != nil {
		DomainErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "铸造成功", gin.H{"token_id": tokenID})
}

// Transfer 转移token所有权
func (h *NftHandler) Transfer(c *gin.Context) {
	tokenID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的token ID")
		return
	}

	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if !common.IsHexAddress(req.NewOwner) {
		ErrorResponse(c, http.StatusBadRequest, "无效的接收地址")
		return
	}

	if err := h.nftLogic.Transfer(tokenID, req.NewOwner, c.GetString("caller")); err != nil {
		DomainErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "转移成功", nil)
}

// GetOwner 查询token所有者
func (h *NftHandler) GetOwner(c *gin.Context) {
	tokenID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的token ID")
		return
	}

	owner, ok := h.nftLogic.GetOwner(tokenID)
	if !ok {
		SuccessResponse(c, http.StatusOK, "token不存在", nil)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"owner": owner})
}

// GetMetadata 查询token元数据
func (h *NftHandler) GetMetadata(c *gin.Context) {
	tokenID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的token ID")
		return
	}

	meta, ok := h.nftLogic.GetMetadata(tokenID)
	if !ok {
		SuccessResponse(c, http.StatusOK, "token不存在", nil)
		return
	}

	SuccessResponse(c, http.StatusOK, "", MetadataResponse{
		TokenId:  tokenID,
		Creator:  meta.Creator,
		URI:      meta.URI,
		Category: meta.Category,
	})
}
