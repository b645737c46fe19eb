package model

import (
	"time"
)

// MilestoneModel 活动里程碑
type MilestoneModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CampaignId     uint64 `json:"campaign_id" gorm:"not null;uniqueIndex:idx_milestone_campaign_index"`
	MilestoneIndex uint64 `json:"milestone_index" gorm:"not null;uniqueIndex:idx_milestone_campaign_index"`
	Description    string `json:"description" gorm:"type:text"`
	TargetAmount   uint64 `json:"target_amount" gorm:"not null"`
	RewardURI      string `json:"reward_uri"`
	Reached        bool   `json:"reached" gorm:"default:false"`
}

// TableName 自定义表名
func (MilestoneModel) TableName() string {
	return "milestone"
}
