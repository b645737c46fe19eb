package model

import (
	"time"
)

// 领域事件类型
const (
	EventTokenMinted      = "TokenMinted"
	EventTokenTransferred = "TokenTransferred"
	EventTokenListed      = "TokenListed"
	EventTokenSold        = "TokenSold"
	EventCampaignCreated  = "CampaignCreated"
	EventDonationReceived = "DonationReceived"
	EventNftDonated       = "NftDonated"
	EventMilestoneAdded   = "MilestoneAdded"
	EventMilestoneReached = "MilestoneReached"
	EventCampaignEnded    = "CampaignEnded"
	EventConfigChanged    = "ConfigChanged"
)

// EventModel 领域事件历史，只追加不修改
type EventModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	EventType  string `json:"event_type" gorm:"not null;index"`
	Actor      string `json:"actor" gorm:"not null"`
	TokenId    uint64 `json:"token_id" gorm:"index"`
	CampaignId uint64 `json:"campaign_id" gorm:"index"`
	Amount     uint64 `json:"amount"`
	Data       string `json:"data" gorm:"type:text"`
}

// TableName 自定义表名
func (EventModel) TableName() string {
	return "event"
}
