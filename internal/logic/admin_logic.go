package logic

import (
	"github.com/blues/ncp/internal/core"
	"github.com/blues/ncp/internal/event"
	"github.com/blues/ncp/internal/model"
)

// AdminLogic 管理配置业务逻辑
type AdminLogic struct {
	p *Platform
}

// NewAdminLogic 创建管理业务逻辑
func NewAdminLogic(p *Platform) *AdminLogic {
	return &AdminLogic{p: p}
}

// SetCharityAddress 修改公益收款地址
func (l *AdminLogic) SetCharityAddress(addr, caller string) error {
	l.p.mu.Lock()
	defer l.p.mu.Unlock()

	if err := l.p.core.SetCharityAddress(addr, caller); err != nil {
		return err
	}

	l.p.saveAdminState()
	l.p.emit(event.Event{
		Type:  model.EventConfigChanged,
		Actor: caller,
		Data:  map[string]interface{}{"charity_address": addr},
	})
	return nil
}

// SetDonationPercentage 修改捐赠比例
func (l *AdminLogic) SetDonationPercentage(pct uint64, caller string) error {
	l.p.mu.Lock()
	defer l.p.mu.Unlock()

	if err := l.p.core.SetDonationPercentage(pct, caller); err != nil {
		return err
	}

	l.p.saveAdminState()
	l.p.emit(event.Event{
		Type:   model.EventConfigChanged,
		Actor:  caller,
		Amount: pct,
		Data:   map[string]interface{}{"donation_percentage": pct},
	})
	return nil
}

// TogglePause 切换暂停开关，返回切换后的状态
func (l *AdminLogic) TogglePause(caller string) (bool, error) {
	l.p.mu.Lock()
	defer l.p.mu.Unlock()

	paused, err := l.p.core.TogglePause(caller)
	if err != nil {
		return paused, err
	}

	l.p.saveAdminState()
	l.p.emit(event.Event{
		Type:  model.EventConfigChanged,
		Actor: caller,
		Data:  map[string]interface{}{"paused": paused},
	})
	return paused, nil
}

// State 当前管理配置
func (l *AdminLogic) State() core.AdminState {
	l.p.mu.Lock()
	defer l.p.mu.Unlock()
	return l.p.core.AdminState()
}
