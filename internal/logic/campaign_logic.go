package logic

import (
	"github.com/blues/ncp/internal/core"
	"github.com/blues/ncp/internal/event"
	"github.com/blues/ncp/internal/model"
)

// CampaignLogic 公益活动业务逻辑
type CampaignLogic struct {
	p *Platform
}

// NewCampaignLogic 创建活动业务逻辑
func NewCampaignLogic(p *Platform) *CampaignLogic {
	return &CampaignLogic{p: p}
}

// Create 创建活动
func (l *CampaignLogic) Create(name, description string, goal, duration uint64, caller string) (uint64, error) {
	l.p.mu.Lock()
	defer l.p.mu.Unlock()

	campaignID, err := l.p.core.CreateCampaign(name, description, goal, duration, caller)
	if err != nil {
		return 0, err
	}

	l.p.saveCampaign(campaignID)
	l.p.emit(event.Event{
		Type:       model.EventCampaignCreated,
		Actor:      caller,
		CampaignId: campaignID,
		Amount:     goal,
		Data:       map[string]interface{}{"name": name},
	})
	return campaignID, nil
}

// Donate 现金捐赠
func (l *CampaignLogic) Donate(campaignID, amount uint64, caller string) error {
	l.p.mu.Lock()
	defer l.p.mu.Unlock()

	if err := l.p.core.DonateToCampaign(campaignID, amount, caller); err != nil {
		return err
	}

	l.p.saveCampaign(campaignID)
	l.p.saveDonationRecord(caller, campaignID)
	l.p.saveCampaignStat(caller, campaignID)
	l.p.emit(event.Event{
		Type:       model.EventDonationReceived,
		Actor:      caller,
		CampaignId: campaignID,
		Amount:     amount,
	})
	return nil
}

// DonateNFT 捐赠已挂单的NFT
func (l *CampaignLogic) DonateNFT(campaignID, tokenID uint64, caller string) error {
	l.p.mu.Lock()
	defer l.p.mu.Unlock()

	// 捐赠后挂单即被清除，先取挂单价用于事件
	price, _ := l.p.core.GetPrice(tokenID)

	if err := l.p.core.DonateNFTToCampaign(campaignID, tokenID, caller); err != nil {
		return err
	}

	l.p.saveToken(tokenID)
	l.p.deleteListing(tokenID)
	l.p.appendCampaignNft(campaignID, tokenID)
	l.p.saveCampaignStat(caller, campaignID)
	l.p.emit(event.Event{
		Type:       model.EventNftDonated,
		Actor:      caller,
		CampaignId: campaignID,
		TokenId:    tokenID,
		Amount:     price,
	})
	return nil
}

// AddMilestone 添加里程碑
func (l *CampaignLogic) AddMilestone(campaignID, index uint64, description string, targetAmount uint64, rewardURI, caller string) error {
	l.p.mu.Lock()
	defer l.p.mu.Unlock()

	if err := l.p.core.AddCampaignMilestone(campaignID, index, description, targetAmount, rewardURI, caller); err != nil {
		return err
	}

	l.p.saveMilestone(campaignID, index)
	l.p.emit(event.Event{
		Type:       model.EventMilestoneAdded,
		Actor:      caller,
		CampaignId: campaignID,
		Amount:     targetAmount,
		Data:       map[string]interface{}{"index": index},
	})
	return nil
}

// CheckMilestone 结算里程碑，返回结算后的reached状态
func (l *CampaignLogic) CheckMilestone(campaignID, index uint64, caller string) (bool, error) {
	l.p.mu.Lock()
	defer l.p.mu.Unlock()

	before, _ := l.p.core.GetCampaignMilestone(campaignID, index)
	reached, err := l.p.core.CheckCampaignMilestone(campaignID, index)
	if err != nil {
		return false, err
	}

	if reached && !before.Reached {
		l.p.saveMilestone(campaignID, index)
		l.p.emit(event.Event{
			Type:       model.EventMilestoneReached,
			Actor:      caller,
			CampaignId: campaignID,
			Amount:     before.TargetAmount,
			Data:       map[string]interface{}{"index": index},
		})
	}
	return reached, nil
}

// End 结束活动
func (l *CampaignLogic) End(campaignID uint64, caller string) error {
	l.p.mu.Lock()
	defer l.p.mu.Unlock()

	if err := l.p.core.EndCampaign(campaignID, caller); err != nil {
		return err
	}

	l.p.saveCampaign(campaignID)
	l.p.emit(event.Event{
		Type:       model.EventCampaignEnded,
		Actor:      caller,
		CampaignId: campaignID,
	})
	return nil
}

// Details 查询活动详情
func (l *CampaignLogic) Details(campaignID uint64) (core.Campaign, bool) {
	l.p.mu.Lock()
	defer l.p.mu.Unlock()
	return l.p.core.GetCampaignDetails(campaignID)
}

// Milestone 查询里程碑
func (l *CampaignLogic) Milestone(campaignID, index uint64) (core.Milestone, bool) {
	l.p.mu.Lock()
	defer l.p.mu.Unlock()
	return l.p.core.GetCampaignMilestone(campaignID, index)
}

// DonationHistory 查询累计现金捐赠
func (l *CampaignLogic) DonationHistory(donor string, campaignID uint64) (uint64, bool) {
	l.p.mu.Lock()
	defer l.p.mu.Unlock()
	return l.p.core.GetUserDonationHistory(donor, campaignID)
}

// Stats 查询累计贡献价值
func (l *CampaignLogic) Stats(donor string, campaignID uint64) (uint64, bool) {
	l.p.mu.Lock()
	defer l.p.mu.Unlock()
	return l.p.core.GetUserCampaignStats(donor, campaignID)
}

// NFTs 查询活动收到的NFT列表
func (l *CampaignLogic) NFTs(campaignID uint64) ([]uint64, bool) {
	l.p.mu.Lock()
	defer l.p.mu.Unlock()
	return l.p.core.GetCampaignNFTs(campaignID)
}

// Campaigns 全部活动快照，供调度任务使用
func (l *CampaignLogic) Campaigns() map[uint64]core.Campaign {
	l.p.mu.Lock()
	defer l.p.mu.Unlock()
	return l.p.core.Snapshot().Campaigns
}

// Milestones 全部里程碑快照，供调度任务使用
func (l *CampaignLogic) Milestones() map[core.MilestoneKey]core.Milestone {
	l.p.mu.Lock()
	defer l.p.mu.Unlock()
	return l.p.core.Snapshot().Milestones
}
