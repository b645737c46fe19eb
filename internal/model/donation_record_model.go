package model

import (
	"time"
)

// DonationRecordModel 捐赠人对单个活动的累计现金捐赠
type DonationRecordModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Donor      string `json:"donor" gorm:"not null;uniqueIndex:idx_donation_donor_campaign"`
	CampaignId uint64 `json:"campaign_id" gorm:"not null;uniqueIndex:idx_donation_donor_campaign"`
	Amount     uint64 `json:"amount" gorm:"not null"`
}

// TableName 自定义表名
func (DonationRecordModel) TableName() string {
	return "donation_record"
}
