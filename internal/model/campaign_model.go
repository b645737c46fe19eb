package model

import (
	"time"
)

// CampaignModel 公益活动镜像记录
type CampaignModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CampaignId  uint64    `json:"campaign_id" gorm:"uniqueIndex;not null"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	Goal        uint64    `json:"goal" gorm:"not null"`
	Raised      uint64    `json:"raised" gorm:"default:0"`
	Duration    uint64    `json:"duration"`
	Active      bool      `json:"active" gorm:"default:true"`
	StartedAt   time.Time `json:"started_at"`
}

// TableName 自定义表名
func (CampaignModel) TableName() string {
	return "campaign"
}
