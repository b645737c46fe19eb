package core

// Market 交易市场：挂单与购买，分账按配置比例截断取整
type Market struct {
	admin    *Admin
	registry *Registry
	bank     Bank
	listings map[uint64]uint64 // tokenID -> 价格
}

func newMarket(admin *Admin, registry *Registry, bank Bank) *Market {
	return &Market{
		admin:    admin,
		registry: registry,
		bank:     bank,
		listings: make(map[uint64]uint64),
	}
}

// List 挂单出售，价格必须为正，仅token所有者可调用
func (m *Market) List(tokenID, price uint64, caller string) error {
	if err := m.admin.checkRunning(); err != nil {
		return err
	}
	owner, ok := m.registry.Owner(tokenID)
	if !ok || owner != caller {
		return fail(CodeNotTokenOwner, "caller does not own the token")
	}
	if price == 0 {
		return fail(CodeInvalidPrice, "price must be positive")
	}
	m.listings[tokenID] = price
	return nil
}

// Price 查询挂单价格
func (m *Market) Price(tokenID uint64) (uint64, bool) {
	price, ok := m.listings[tokenID]
	return price, ok
}

// Buy 购买挂单token：公益分成与卖家货款一次性结算，
// 随后转移所有权并清除挂单。任一步骤失败则全部不生效。
func (m *Market) Buy(tokenID uint64, caller string) error {
	if err := m.admin.checkRunning(); err != nil {
		return err
	}
	price, ok := m.listings[tokenID]
	if !ok {
		return fail(CodeListingNotFound, "token is not listed for sale")
	}
	// 挂单在任何所有权变更时都会被清除，这里重读当前所有者兜底
	seller, ok := m.registry.Owner(tokenID)
	if !ok {
		return fail(CodeListingNotFound, "listed token no longer exists")
	}

	// price*pct 可能溢出uint64，按商余拆开计算，结果仍等于floor(price*pct/100)
	pct := m.admin.DonationPercentage()
	charityCut := price/100*pct + price%100*pct/100
	sellerCut := price - charityCut

	var payouts []Payout
	if charityCut > 0 {
		payouts = append(payouts, Payout{To: m.admin.CharityAddress(), Amount: charityCut})
	}
	if sellerCut > 0 {
		payouts = append(payouts, Payout{To: seller, Amount: sellerCut})
	}
	if err := m.bank.Pay(caller, payouts); err != nil {
		return fail(CodeInsufficientFunds, "buyer cannot cover the price")
	}

	m.registry.reassign(tokenID, caller)
	delete(m.listings, tokenID)
	return nil
}

// clearListing 所有权在市场之外变更时清除挂单
func (m *Market) clearListing(tokenID uint64) {
	delete(m.listings, tokenID)
}
