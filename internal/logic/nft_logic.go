package logic

import (
	"github.com/blues/ncp/internal/core"
	"github.com/blues/ncp/internal/event"
	"github.com/blues/ncp/internal/model"
)

// NftLogic token相关业务逻辑
type NftLogic struct {
	p *Platform
}

// NewNftLogic 创建token业务逻辑
func NewNftLogic(p *Platform) *NftLogic {
	return &NftLogic{p: p}
}

// Mint 铸造token
func (l *NftLogic) Mint(uri, category, caller string) (uint64, error) {
	l.p.mu.Lock()
	defer l.p.mu.Unlock()

	tokenID, err := l.p.core.Mint(uri, category, caller)
	if err != nil {
		return 0, err
	}

	l.p.saveToken(tokenID)
	l.p.emit(event.Event{
		Type:    model.EventTokenMinted,
		Actor:   caller,
		TokenId: tokenID,
		Data:    map[string]interface{}{"uri": uri, "category": category},
	})
	return tokenID, nil
}

// Transfer 转移token所有权，同时清除可能存在的挂单
func (l *NftLogic) Transfer(tokenID uint64, newOwner, caller string) error {
	l.p.mu.Lock()
	defer l.p.mu.Unlock()

	if err := l.p.core.Transfer(tokenID, newOwner, caller); err != nil {
		return err
	}

	l.p.saveToken(tokenID)
	l.p.deleteListing(tokenID)
	l.p.emit(event.Event{
		Type:    model.EventTokenTransferred,
		Actor:   caller,
		TokenId: tokenID,
		Data:    map[string]interface{}{"new_owner": newOwner},
	})
	return nil
}

// GetOwner 查询token所有者
func (l *NftLogic) GetOwner(tokenID uint64) (string, bool) {
	l.p.mu.Lock()
	defer l.p.mu.Unlock()
	return l.p.core.GetOwner(tokenID)
}

// GetMetadata 查询token元数据
func (l *NftLogic) GetMetadata(tokenID uint64) (core.Metadata, bool) {
	l.p.mu.Lock()
	defer l.p.mu.Unlock()
	return l.p.core.GetMetadata(tokenID)
}
