package handler

// MintRequest 铸造请求
type MintRequest struct {
	URI      string `json:"uri"`
	Category string `json:"category"`
}

// TransferRequest 转移请求
type TransferRequest struct {
	NewOwner string `json:"new_owner" binding:"required"`
}

// ListRequest 挂单请求
type ListRequest struct {
	TokenId uint64 `json:"token_id"`
	Price   uint64 `json:"price"`
}

// CreateCampaignRequest 创建活动请求
type CreateCampaignRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Goal        uint64 `json:"goal"`
	Duration    uint64 `json:"duration"`
}

// DonateRequest 现金捐赠请求
type DonateRequest struct {
	Amount uint64 `json:"amount"`
}

// DonateNftRequest NFT捐赠请求
type DonateNftRequest struct {
	TokenId uint64 `json:"token_id"`
}

// MilestoneRequest 添加里程碑请求
type MilestoneRequest struct {
	Index        uint64 `json:"index"`
	Description  string `json:"description"`
	TargetAmount uint64 `json:"target_amount"`
	RewardURI    string `json:"reward_uri"`
}

// CharityAddressRequest 修改公益收款地址请求
type CharityAddressRequest struct {
	Address string `json:"address" binding:"required"`
}

// DonationPercentageRequest 修改捐赠比例请求
type DonationPercentageRequest struct {
	Percentage uint64 `json:"percentage"`
}

// DepositRequest 水龙头充值请求（仅内存账本的开发模式）
type DepositRequest struct {
	Account string `json:"account" binding:"required"`
	Amount  uint64 `json:"amount"`
}

// CampaignResponse 活动详情
type CampaignResponse struct {
	CampaignId  uint64 `json:"campaign_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Goal        uint64 `json:"goal"`
	Raised      uint64 `json:"raised"`
	Duration    uint64 `json:"duration"`
	Active      bool   `json:"active"`
}

// MilestoneResponse 里程碑详情
type MilestoneResponse struct {
	CampaignId   uint64 `json:"campaign_id"`
	Index        uint64 `json:"index"`
	Description  string `json:"description"`
	TargetAmount uint64 `json:"target_amount"`
	RewardURI    string `json:"reward_uri"`
	Reached      bool   `json:"reached"`
}

// MetadataResponse token元数据
type MetadataResponse struct {
	TokenId  uint64 `json:"token_id"`
	Creator  string `json:"creator"`
	URI      string `json:"uri"`
	Category string `json:"category"`
}
