// Package logic 是核心状态机的运行时宿主：互斥锁为全部操作提供
// 单一全序，已提交的状态写穿到数据库镜像，并异步发出领域事件。
// 核心内存状态始终为准，镜像仅用于启动恢复与离线查询。
package logic

import (
	"fmt"
	"sync"

	"github.com/blues/ncp/internal/core"
	"github.com/blues/ncp/internal/event"
	"github.com/blues/ncp/internal/logger"
	"github.com/blues/ncp/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Platform 核心状态机宿主
type Platform struct {
	mu        sync.Mutex
	core      *core.Core
	db        *gorm.DB         // 可为nil：持久化关闭
	publisher *event.Publisher // 可为nil：事件分发关闭
}

// NewPlatform 以现成的状态机构造宿主
func NewPlatform(c *core.Core, db *gorm.DB, publisher *event.Publisher) *Platform {
	return &Platform{core: c, db: db, publisher: publisher}
}

// Bootstrap 构造宿主：数据库可用且已有状态时从镜像恢复，
// 否则按部署参数新建并写入管理配置单例
func Bootstrap(params core.Params, bank core.Bank, db *gorm.DB, publisher *event.Publisher) (*Platform, error) {
	if db == nil {
		return NewPlatform(core.New(params, bank), nil, publisher), nil
	}

	snapshot, found, err := loadSnapshot(db, params)
	if err != nil {
		return nil, fmt.Errorf("failed to load state from database: %w", err)
	}

	var c *core.Core
	if found {
		c = core.Restore(snapshot, bank)
		logger.Info("Restored state: %d tokens, %d campaigns", len(snapshot.Tokens), len(snapshot.Campaigns))
	} else {
		c = core.New(params, bank)
		logger.Info("No persisted state found, starting fresh")
	}

	p := NewPlatform(c, db, publisher)
	p.saveAdminState()
	return p, nil
}

// loadSnapshot 从镜像表重建快照。owner始终取部署参数（部署后不可改），
// 其余管理配置以持久化值为准。
func loadSnapshot(db *gorm.DB, params core.Params) (core.Snapshot, bool, error) {
	snapshot := core.Snapshot{
		Admin: core.AdminState{
			Owner:              params.Owner,
			CharityAddress:     params.CharityAddress,
			DonationPercentage: params.DonationPercentage,
			Paused:             params.Paused,
		},
		Tokens:       make(map[uint64]core.Token),
		Listings:     make(map[uint64]uint64),
		Campaigns:    make(map[uint64]core.Campaign),
		Donations:    make(map[core.DonorKey]uint64),
		Stats:        make(map[core.DonorKey]uint64),
		CampaignNFTs: make(map[uint64][]uint64),
		Milestones:   make(map[core.MilestoneKey]core.Milestone),
	}

	var adminRows []model.AdminStateModel
	if err := db.Limit(1).Find(&adminRows).Error; err != nil {
		return snapshot, false, err
	}
	found := len(adminRows) > 0
	if found {
		snapshot.Admin.CharityAddress = adminRows[0].CharityAddress
		snapshot.Admin.DonationPercentage = adminRows[0].DonationPercentage
		snapshot.Admin.Paused = adminRows[0].Paused
	}

	var tokens []model.TokenModel
	if err := db.Find(&tokens).Error; err != nil {
		return snapshot, found, err
	}
	for _, t := range tokens {
		snapshot.Tokens[t.TokenId] = core.Token{
			Owner:    t.Owner,
			Creator:  t.Creator,
			URI:      t.URI,
			Category: t.Category,
		}
	}

	var listings []model.ListingModel
	if err := db.Find(&listings).Error; err != nil {
		return snapshot, found, err
	}
	for _, l := range listings {
		snapshot.Listings[l.TokenId] = l.Price
	}

	var campaigns []model.CampaignModel
	if err := db.Find(&campaigns).Error; err != nil {
		return snapshot, found, err
	}
	for _, c := range campaigns {
		snapshot.Campaigns[c.CampaignId] = core.Campaign{
			Name:        c.Name,
			Description: c.Description,
			Goal:        c.Goal,
			Raised:      c.Raised,
			Duration:    c.Duration,
			Active:      c.Active,
			CreatedAt:   c.StartedAt,
		}
	}

	var donations []model.DonationRecordModel
	if err := db.Find(&donations).Error; err != nil {
		return snapshot, found, err
	}
	for _, d := range donations {
		snapshot.Donations[core.DonorKey{Donor: d.Donor, CampaignID: d.CampaignId}] = d.Amount
	}

	var stats []model.CampaignStatModel
	if err := db.Find(&stats).Error; err != nil {
		return snapshot, found, err
	}
	for _, s := range stats {
		snapshot.Stats[core.DonorKey{Donor: s.Donor, CampaignID: s.CampaignId}] = s.TotalValue
	}

	var nfts []model.CampaignNftModel
	if err := db.Order("campaign_id, position").Find(&nfts).Error; err != nil {
		return snapshot, found, err
	}
	for _, n := range nfts {
		snapshot.CampaignNFTs[n.CampaignId] = append(snapshot.CampaignNFTs[n.CampaignId], n.TokenId)
	}

	var milestones []model.MilestoneModel
	if err := db.Find(&milestones).Error; err != nil {
		return snapshot, found, err
	}
	for _, m := range milestones {
		snapshot.Milestones[core.MilestoneKey{CampaignID: m.CampaignId, Index: m.MilestoneIndex}] = core.Milestone{
			Description:  m.Description,
			TargetAmount: m.TargetAmount,
			RewardURI:    m.RewardURI,
			Reached:      m.Reached,
		}
	}

	return snapshot, found, nil
}

// emit 异步发出领域事件
func (p *Platform) emit(e event.Event) {
	if p.publisher != nil {
		p.publisher.Publish(e)
	}
}

// ---- 镜像落库。失败只记日志不回滚核心状态。----

func (p *Platform) saveToken(tokenID uint64) {
	if p.db == nil {
		return
	}
	owner, ok := p.core.GetOwner(tokenID)
	if !ok {
		return
	}
	meta, _ := p.core.GetMetadata(tokenID)
	row := model.TokenModel{
		TokenId:  tokenID,
		Owner:    owner,
		Creator:  meta.Creator,
		URI:      meta.URI,
		Category: meta.Category,
	}
	err := p.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"owner", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		logger.Error("Failed to persist token %d: %v", tokenID, err)
	}
}

func (p *Platform) saveListing(tokenID uint64) {
	if p.db == nil {
		return
	}
	price, ok := p.core.GetPrice(tokenID)
	if !ok {
		return
	}
	row := model.ListingModel{TokenId: tokenID, Price: price}
	err := p.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"price", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		logger.Error("Failed to persist listing for token %d: %v", tokenID, err)
	}
}

func (p *Platform) deleteListing(tokenID uint64) {
	if p.db == nil {
		return
	}
	if err := p.db.Where("token_id = ?", tokenID).Delete(&model.ListingModel{}).Error; err != nil {
		logger.Error("Failed to delete listing for token %d: %v", tokenID, err)
	}
}

func (p *Platform) saveCampaign(campaignID uint64) {
	if p.db == nil {
		return
	}
	campaign, ok := p.core.GetCampaignDetails(campaignID)
	if !ok {
		return
	}
	row := model.CampaignModel{
		CampaignId:  campaignID,
		Name:        campaign.Name,
		Description: campaign.Description,
		Goal:        campaign.Goal,
		Raised:      campaign.Raised,
		Duration:    campaign.Duration,
		Active:      campaign.Active,
		StartedAt:   campaign.CreatedAt,
	}
	err := p.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "campaign_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"raised", "active", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		logger.Error("Failed to persist campaign %d: %v", campaignID, err)
	}
}

func (p *Platform) saveDonationRecord(donor string, campaignID uint64) {
	if p.db == nil {
		return
	}
	amount, ok := p.core.GetUserDonationHistory(donor, campaignID)
	if !ok {
		return
	}
	row := model.DonationRecordModel{Donor: donor, CampaignId: campaignID, Amount: amount}
	err := p.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "donor"}, {Name: "campaign_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		logger.Error("Failed to persist donation record for %s: %v", donor, err)
	}
}

func (p *Platform) saveCampaignStat(donor string, campaignID uint64) {
	if p.db == nil {
		return
	}
	total, ok := p.core.GetUserCampaignStats(donor, campaignID)
	if !ok {
		return
	}
	row := model.CampaignStatModel{Donor: donor, CampaignId: campaignID, TotalValue: total}
	err := p.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "donor"}, {Name: "campaign_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"total_value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		logger.Error("Failed to persist campaign stat for %s: %v", donor, err)
	}
}

func (p *Platform) appendCampaignNft(campaignID, tokenID uint64) {
	if p.db == nil {
		return
	}
	tokens, _ := p.core.GetCampaignNFTs(campaignID)
	row := model.CampaignNftModel{
		CampaignId: campaignID,
		TokenId:    tokenID,
		Position:   len(tokens) - 1,
	}
	if err := p.db.Create(&row).Error; err != nil {
		logger.Error("Failed to persist campaign nft %d: %v", tokenID, err)
	}
}

func (p *Platform) saveMilestone(campaignID, index uint64) {
	if p.db == nil {
		return
	}
	milestone, ok := p.core.GetCampaignMilestone(campaignID, index)
	if !ok {
		return
	}
	row := model.MilestoneModel{
		CampaignId:     campaignID,
		MilestoneIndex: index,
		Description:    milestone.Description,
		TargetAmount:   milestone.TargetAmount,
		RewardURI:      milestone.RewardURI,
		Reached:        milestone.Reached,
	}
	err := p.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "campaign_id"}, {Name: "milestone_index"}},
		DoUpdates: clause.AssignmentColumns([]string{"description", "target_amount", "reward_uri", "reached", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		logger.Error("Failed to persist milestone %d/%d: %v", campaignID, index, err)
	}
}

func (p *Platform) saveAdminState() {
	if p.db == nil {
		return
	}
	state := p.core.AdminState()
	row := model.AdminStateModel{
		Id:                 1,
		Owner:              state.Owner,
		CharityAddress:     state.CharityAddress,
		DonationPercentage: state.DonationPercentage,
		Paused:             state.Paused,
	}
	err := p.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"charity_address", "donation_percentage", "paused", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		logger.Error("Failed to persist admin state: %v", err)
	}
}
