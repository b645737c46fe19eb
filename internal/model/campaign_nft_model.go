package model

import (
	"time"
)

// CampaignNftModel 捐给活动的NFT，position保持捐赠顺序
type CampaignNftModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CampaignId uint64 `json:"campaign_id" gorm:"not null;index"`
	TokenId    uint64 `json:"token_id" gorm:"not null"`
	Position   int    `json:"position" gorm:"not null"`
}

// TableName 自定义表名
func (CampaignNftModel) TableName() string {
	return "campaign_nft"
}
