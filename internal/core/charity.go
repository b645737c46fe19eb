package core

import "time"

// Campaign 公益筹款活动
type Campaign struct {
	Name        string
	Description string
	Goal        uint64
	Raised      uint64
	Duration    uint64
	Active      bool
	CreatedAt   time.Time
}

// Milestone 活动里程碑，reached只通过显式结算翻转且不会回退
type Milestone struct {
	Description  string
	TargetAmount uint64
	RewardURI    string
	Reached      bool
}

// DonorKey 捐赠人维度的账目键
type DonorKey struct {
	Donor      string
	CampaignID uint64
}

// MilestoneKey 里程碑键
type MilestoneKey struct {
	CampaignID uint64
	Index      uint64
}

// Charity 公益账本：活动生命周期、现金与NFT捐赠、里程碑
type Charity struct {
	admin      *Admin
	registry   *Registry
	market     *Market
	bank       Bank
	nextID     uint64
	campaigns  map[uint64]*Campaign
	donations  map[DonorKey]uint64 // 累计现金捐赠
	stats      map[DonorKey]uint64 // 累计贡献价值（现金+NFT挂单价）
	nfts       map[uint64][]uint64 // 活动收到的NFT，按捐赠顺序
	milestones map[MilestoneKey]*Milestone
}

func newCharity(admin *Admin, registry *Registry, market *Market, bank Bank) *Charity {
	return &Charity{
		admin:      admin,
		registry:   registry,
		market:     market,
		bank:       bank,
		nextID:     1,
		campaigns:  make(map[uint64]*Campaign),
		donations:  make(map[DonorKey]uint64),
		stats:      make(map[DonorKey]uint64),
		nfts:       make(map[uint64][]uint64),
		milestones: make(map[MilestoneKey]*Milestone),
	}
}

// CreateCampaign 创建活动，仅所有者可调用，目标金额必须为正
func (c *Charity) CreateCampaign(name, description string, goal, duration uint64, caller string) (uint64, error) {
	if err := c.admin.requireOwner(caller); err != nil {
		return 0, err
	}
	if goal == 0 {
		return 0, fail(CodeInvalidParameter, "campaign goal must be positive")
	}
	id := c.nextID
	c.nextID++
	c.campaigns[id] = &Campaign{
		Name:        name,
		Description: description,
		Goal:        goal,
		Duration:    duration,
		Active:      true,
		CreatedAt:   time.Now(),
	}
	return id, nil
}

// Donate 现金捐赠：划转资金后累加raised、捐赠记录与参与统计
func (c *Charity) Donate(campaignID, amount uint64, caller string) error {
	if err := c.admin.checkRunning(); err != nil {
		return err
	}
	campaign, ok := c.campaigns[campaignID]
	if !ok || !campaign.Active {
		return fail(CodeCampaignNotFound, "campaign does not exist or is inactive")
	}
	if amount == 0 {
		return fail(CodeInvalidParameter, "donation amount must be positive")
	}
	if err := c.bank.Pay(caller, []Payout{{To: c.admin.CharityAddress(), Amount: amount}}); err != nil {
		return fail(CodeInsufficientFunds, "donor cannot cover the amount")
	}

	campaign.Raised += amount
	key := DonorKey{Donor: caller, CampaignID: campaignID}
	c.donations[key] += amount
	c.stats[key] += amount
	return nil
}

// DonateNFT 捐赠已挂单的NFT：按挂单价计入参与统计，raised只记现金
func (c *Charity) DonateNFT(campaignID, tokenID uint64, caller string) error {
	if err := c.admin.checkRunning(); err != nil {
		return err
	}
	campaign, ok := c.campaigns[campaignID]
	if !ok || !campaign.Active {
		return fail(CodeCampaignNotFound, "campaign does not exist or is inactive")
	}
	owner, ok := c.registry.Owner(tokenID)
	if !ok || owner != caller {
		return fail(CodeNotTokenOwner, "caller does not own the token")
	}
	price, ok := c.market.Price(tokenID)
	if !ok {
		return fail(CodeListingNotFound, "token must be listed to establish its value")
	}

	c.registry.reassign(tokenID, c.admin.CharityAddress())
	c.market.clearListing(tokenID)
	c.nfts[campaignID] = append(c.nfts[campaignID], tokenID)
	c.stats[DonorKey{Donor: caller, CampaignID: campaignID}] += price
	return nil
}

// AddMilestone 添加里程碑，仅所有者可调用
func (c *Charity) AddMilestone(campaignID, index uint64, description string, targetAmount uint64, rewardURI, caller string) error {
	if err := c.admin.requireOwner(caller); err != nil {
		return err
	}
	if _, ok := c.campaigns[campaignID]; !ok {
		return fail(CodeCampaignNotFound, "campaign does not exist")
	}
	if targetAmount == 0 {
		return fail(CodeInvalidParameter, "milestone target must be positive")
	}
	c.milestones[MilestoneKey{CampaignID: campaignID, Index: index}] = &Milestone{
		Description:  description,
		TargetAmount: targetAmount,
		RewardURI:    rewardURI,
	}
	return nil
}

// CheckMilestone 显式结算里程碑：raised达标则翻转reached，
// 幂等且永不回退，活动结束后仍可结算
func (c *Charity) CheckMilestone(campaignID, index uint64) (bool, error) {
	campaign, ok := c.campaigns[campaignID]
	if !ok {
		return false, fail(CodeCampaignNotFound, "campaign does not exist")
	}
	milestone, ok := c.milestones[MilestoneKey{CampaignID: campaignID, Index: index}]
	if !ok {
		return false, fail(CodeInvalidParameter, "milestone does not exist")
	}
	if !milestone.Reached && campaign.Raised >= milestone.TargetAmount {
		milestone.Reached = true
	}
	return milestone.Reached, nil
}

// EndCampaign 结束活动，不可逆，仅所有者可调用
func (c *Charity) EndCampaign(campaignID uint64, caller string) error {
	if err := c.admin.requireOwner(caller); err != nil {
		return err
	}
	campaign, ok := c.campaigns[campaignID]
	if !ok || !campaign.Active {
		return fail(CodeCampaignNotFound, "campaign does not exist or is inactive")
	}
	campaign.Active = false
	return nil
}

// Details 查询活动详情
func (c *Charity) Details(campaignID uint64) (Campaign, bool) {
	campaign, ok := c.campaigns[campaignID]
	if !ok {
		return Campaign{}, false
	}
	return *campaign, true
}

// MilestoneDetails 查询里程碑
func (c *Charity) MilestoneDetails(campaignID, index uint64) (Milestone, bool) {
	milestone, ok := c.milestones[MilestoneKey{CampaignID: campaignID, Index: index}]
	if !ok {
		return Milestone{}, false
	}
	return *milestone, true
}

// DonationHistory 查询某捐赠人对某活动的累计现金捐赠
func (c *Charity) DonationHistory(donor string, campaignID uint64) (uint64, bool) {
	amount, ok := c.donations[DonorKey{Donor: donor, CampaignID: campaignID}]
	return amount, ok
}

// Stats 查询某捐赠人对某活动的累计贡献价值
func (c *Charity) Stats(donor string, campaignID uint64) (uint64, bool) {
	total, ok := c.stats[DonorKey{Donor: donor, CampaignID: campaignID}]
	return total, ok
}

// NFTs 查询活动收到的NFT列表，按捐赠顺序
func (c *Charity) NFTs(campaignID uint64) ([]uint64, bool) {
	tokens, ok := c.nfts[campaignID]
	if !ok {
		return nil, false
	}
	out := make([]uint64, len(tokens))
	copy(out, tokens)
	return out, true
}
