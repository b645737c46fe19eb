package core

// Admin 管理配置：所有者在构造时固定，其余字段仅所有者可改
type Admin struct {
	owner          string
	charityAddress string
	donationPct    uint64
	paused         bool
}

// AdminState 管理配置的只读视图
type AdminState struct {
	Owner              string
	CharityAddress     string
	DonationPercentage uint64
	Paused             bool
}

// Owner 合约所有者
func (a *Admin) Owner() string {
	return a.owner
}

// CharityAddress 当前公益收款地址
func (a *Admin) CharityAddress() string {
	return a.charityAddress
}

// DonationPercentage 当前捐赠比例（0-100）
func (a *Admin) DonationPercentage() uint64 {
	return a.donationPct
}

// Paused 是否处于暂停状态
func (a *Admin) Paused() bool {
	return a.paused
}

// State 导出当前配置
func (a *Admin) State() AdminState {
	return AdminState{
		Owner:              a.owner,
		CharityAddress:     a.charityAddress,
		DonationPercentage: a.donationPct,
		Paused:             a.paused,
	}
}

// SetCharityAddress 修改公益收款地址，仅所有者可调用
func (a *Admin) SetCharityAddress(addr, caller string) error {
	if err := a.requireOwner(caller); err != nil {
		return err
	}
	a.charityAddress = addr
	return nil
}

// SetDonationPercentage 修改捐赠比例，仅所有者可调用
func (a *Admin) SetDonationPercentage(pct uint64, caller string) error {
	if err := a.requireOwner(caller); err != nil {
		return err
	}
	if pct > 100 {
		return fail(CodeInvalidParameter, "donation percentage must not exceed 100")
	}
	a.donationPct = pct
	return nil
}

// TogglePause 切换暂停开关，返回切换后的状态
func (a *Admin) TogglePause(caller string) (bool, error) {
	if err := a.requireOwner(caller); err != nil {
		return a.paused, err
	}
	a.paused = !a.paused
	return a.paused, nil
}

func (a *Admin) requireOwner(caller string) error {
	if caller != a.owner {
		return fail(CodeOwnerOnly, "caller is not the contract owner")
	}
	return nil
}

// checkRunning 暂停期间拒绝公开的写操作
func (a *Admin) checkRunning() error {
	if a.paused {
		return fail(CodePaused, "platform is paused")
	}
	return nil
}
