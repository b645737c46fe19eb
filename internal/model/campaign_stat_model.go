package model

import (
	"time"
)

// CampaignStatModel 捐赠人对单个活动的累计贡献价值（现金+NFT挂单价）
type CampaignStatModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Donor      string `json:"donor" gorm:"not null;uniqueIndex:idx_stat_donor_campaign"`
	CampaignId uint64 `json:"campaign_id" gorm:"not null;uniqueIndex:idx_stat_donor_campaign"`
	TotalValue uint64 `json:"total_value" gorm:"not null"`
}

// TableName 自定义表名
func (CampaignStatModel) TableName() string {
	return "campaign_stat"
}
