// Package core 实现平台核心状态机：所有权登记、交易市场、
// 公益账本与管理配置。所有操作由外部协作方按单一全序串行调用，
// 每次调用要么完整提交要么带错误码拒绝，不存在可观测的中间状态。
package core

import "time"

// Params 部署参数，owner在此固定后不可更改
type Params struct {
	Owner              string
	CharityAddress     string
	DonationPercentage uint64
	Paused             bool
}

// Core 核心状态机门面
type Core struct {
	admin    *Admin
	registry *Registry
	market   *Market
	charity  *Charity
}

// New 按部署参数构造空状态机
func New(p Params, bank Bank) *Core {
	admin := &Admin{
		owner:          p.Owner,
		charityAddress: p.CharityAddress,
		donationPct:    p.DonationPercentage,
		paused:         p.Paused,
	}
	registry := newRegistry(admin)
	market := newMarket(admin, registry, bank)
	charity := newCharity(admin, registry, market, bank)
	return &Core{admin: admin, registry: registry, market: market, charity: charity}
}

// ---- 所有权登记 ----

// Mint 铸造token
func (c *Core) Mint(uri, category, caller string) (uint64, error) {
	return c.registry.Mint(uri, category, caller)
}

// Transfer 市场之外的所有权转移，成功后同时清除该token的挂单，
// 避免挂单指向已易主的token
func (c *Core) Transfer(tokenID uint64, newOwner, caller string) error {
	if err := c.registry.Transfer(tokenID, newOwner, caller); err != nil {
		return err
	}
	c.market.clearListing(tokenID)
	return nil
}

// GetOwner 查询token所有者
func (c *Core) GetOwner(tokenID uint64) (string, bool) {
	return c.registry.Owner(tokenID)
}

// GetMetadata 查询token元数据
func (c *Core) GetMetadata(tokenID uint64) (Metadata, bool) {
	return c.registry.Metadata(tokenID)
}

// TokenCount 已铸造的token数量
func (c *Core) TokenCount() int {
	return c.registry.Size()
}

// ---- 交易市场 ----

// ListForSale 挂单出售
func (c *Core) ListForSale(tokenID, price uint64, caller string) error {
	return c.market.List(tokenID, price, caller)
}

// GetPrice 查询挂单价格
func (c *Core) GetPrice(tokenID uint64) (uint64, bool) {
	return c.market.Price(tokenID)
}

// BuyNFT 购买挂单token
func (c *Core) BuyNFT(tokenID uint64, caller string) error {
	return c.market.Buy(tokenID, caller)
}

// ---- 公益账本 ----

// CreateCampaign 创建公益活动
func (c *Core) CreateCampaign(name, description string, goal, duration uint64, caller string) (uint64, error) {
	return c.charity.CreateCampaign(name, description, goal, duration, caller)
}

// DonateToCampaign 现金捐赠
func (c *Core) DonateToCampaign(campaignID, amount uint64, caller string) error {
	return c.charity.Donate(campaignID, amount, caller)
}

// DonateNFTToCampaign NFT捐赠
func (c *Core) DonateNFTToCampaign(campaignID, tokenID uint64, caller string) error {
	return c.charity.DonateNFT(campaignID, tokenID, caller)
}

// AddCampaignMilestone 添加里程碑
func (c *Core) AddCampaignMilestone(campaignID, index uint64, description string, targetAmount uint64, rewardURI, caller string) error {
	return c.charity.AddMilestone(campaignID, index, description, targetAmount, rewardURI, caller)
}

// CheckCampaignMilestone 结算里程碑
func (c *Core) CheckCampaignMilestone(campaignID, index uint64) (bool, error) {
	return c.charity.CheckMilestone(campaignID, index)
}

// EndCampaign 结束活动
func (c *Core) EndCampaign(campaignID uint64, caller string) error {
	return c.charity.EndCampaign(campaignID, caller)
}

// GetCampaignDetails 查询活动详情
func (c *Core) GetCampaignDetails(campaignID uint64) (Campaign, bool) {
	return c.charity.Details(campaignID)
}

// GetCampaignMilestone 查询里程碑
func (c *Core) GetCampaignMilestone(campaignID, index uint64) (Milestone, bool) {
	return c.charity.MilestoneDetails(campaignID, index)
}

// GetUserDonationHistory 查询累计现金捐赠
func (c *Core) GetUserDonationHistory(donor string, campaignID uint64) (uint64, bool) {
	return c.charity.DonationHistory(donor, campaignID)
}

// GetUserCampaignStats 查询累计贡献价值
func (c *Core) GetUserCampaignStats(donor string, campaignID uint64) (uint64, bool) {
	return c.charity.Stats(donor, campaignID)
}

// GetCampaignNFTs 查询活动收到的NFT列表
func (c *Core) GetCampaignNFTs(campaignID uint64) ([]uint64, bool) {
	return c.charity.NFTs(campaignID)
}

// ---- 管理配置 ----

// SetCharityAddress 修改公益收款地址
func (c *Core) SetCharityAddress(addr, caller string) error {
	return c.admin.SetCharityAddress(addr, caller)
}

// SetDonationPercentage 修改捐赠比例
func (c *Core) SetDonationPercentage(pct uint64, caller string) error {
	return c.admin.SetDonationPercentage(pct, caller)
}

// TogglePause 切换暂停开关
func (c *Core) TogglePause(caller string) (bool, error) {
	return c.admin.TogglePause(caller)
}

// AdminState 当前管理配置
func (c *Core) AdminState() AdminState {
	return c.admin.State()
}

// ---- 快照与恢复 ----

// Snapshot 核心状态快照，用于持久化镜像与启动恢复
type Snapshot struct {
	Admin          AdminState
	NextTokenID    uint64
	Tokens         map[uint64]Token
	Listings       map[uint64]uint64
	NextCampaignID uint64
	Campaigns      map[uint64]Campaign
	Donations      map[DonorKey]uint64
	Stats          map[DonorKey]uint64
	CampaignNFTs   map[uint64][]uint64
	Milestones     map[MilestoneKey]Milestone
}

// Snapshot 导出当前完整状态
func (c *Core) Snapshot() Snapshot {
	s := Snapshot{
		Admin:          c.admin.State(),
		NextTokenID:    c.registry.nextID,
		Tokens:         make(map[uint64]Token, len(c.registry.tokens)),
		Listings:       make(map[uint64]uint64, len(c.market.listings)),
		NextCampaignID: c.charity.nextID,
		Campaigns:      make(map[uint64]Campaign, len(c.charity.campaigns)),
		Donations:      make(map[DonorKey]uint64, len(c.charity.donations)),
		Stats:          make(map[DonorKey]uint64, len(c.charity.stats)),
		CampaignNFTs:   make(map[uint64][]uint64, len(c.charity.nfts)),
		Milestones:     make(map[MilestoneKey]Milestone, len(c.charity.milestones)),
	}
	for id, token := range c.registry.tokens {
		s.Tokens[id] = *token
	}
	for id, price := range c.market.listings {
		s.Listings[id] = price
	}
	for id, campaign := range c.charity.campaigns {
		s.Campaigns[id] = *campaign
	}
	for key, amount := range c.charity.donations {
		s.Donations[key] = amount
	}
	for key, total := range c.charity.stats {
		s.Stats[key] = total
	}
	for id, tokens := range c.charity.nfts {
		out := make([]uint64, len(tokens))
		copy(out, tokens)
		s.CampaignNFTs[id] = out
	}
	for key, milestone := range c.charity.milestones {
		s.Milestones[key] = *milestone
	}
	return s
}

// Restore 从快照重建状态机。ID游标取快照值与已有最大ID+1的较大者，
// 保证ID永不复用。
func Restore(s Snapshot, bank Bank) *Core {
	c := New(Params{
		Owner:              s.Admin.Owner,
		CharityAddress:     s.Admin.CharityAddress,
		DonationPercentage: s.Admin.DonationPercentage,
		Paused:             s.Admin.Paused,
	}, bank)

	for id, token := range s.Tokens {
		t := token
		c.registry.tokens[id] = &t
		if id >= c.registry.nextID {
			c.registry.nextID = id + 1
		}
	}
	if s.NextTokenID > c.registry.nextID {
		c.registry.nextID = s.NextTokenID
	}
	for id, price := range s.Listings {
		c.market.listings[id] = price
	}
	for id, campaign := range s.Campaigns {
		cp := campaign
		if cp.CreatedAt.IsZero() {
			cp.CreatedAt = time.Now()
		}
		c.charity.campaigns[id] = &cp
		if id >= c.charity.nextID {
			c.charity.nextID = id + 1
		}
	}
	if s.NextCampaignID > c.charity.nextID {
		c.charity.nextID = s.NextCampaignID
	}
	for key, amount := range s.Donations {
		c.charity.donations[key] = amount
	}
	for key, total := range s.Stats {
		c.charity.stats[key] = total
	}
	for id, tokens := range s.CampaignNFTs {
		list := make([]uint64, len(tokens))
		copy(list, tokens)
		c.charity.nfts[id] = list
	}
	for key, milestone := range s.Milestones {
		m := milestone
		c.charity.milestones[key] = &m
	}
	return c
}
