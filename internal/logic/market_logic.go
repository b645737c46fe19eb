package logic

import (
	"github.com/blues/ncp/internal/event"
	"github.com/blues/ncp/internal/model"
)

// MarketLogic 交易市场业务逻辑
type MarketLogic struct {
	p *Platform
}

// NewMarketLogic 创建市场业务逻辑
func NewMarketLogic(p *Platform) *MarketLogic {
	return &MarketLogic{p: p}
}

// ListForSale 挂单出售
func (l *MarketLogic) ListForSale(tokenID, price uint64, caller string) error {
	l.p.mu.Lock()
	defer l.p.mu.Unlock()

	if err := l.p.core.ListForSale(tokenID, price, caller); err != nil {
		return err
	}

	l.p.saveListing(tokenID)
	l.p.emit(event.Event{
		Type:    model.EventTokenListed,
		Actor:   caller,
		TokenId: tokenID,
		Amount:  price,
	})
	return nil
}

// GetPrice 查询挂单价格
func (l *MarketLogic) GetPrice(tokenID uint64) (uint64, bool) {
	l.p.mu.Lock()
	defer l.p.mu.Unlock()
	return l.p.core.GetPrice(tokenID)
}

// Buy 购买挂单token
func (l *MarketLogic) Buy(tokenID uint64, caller string) error {
	l.p.mu.Lock()
	defer l.p.mu.Unlock()

	// 成交后挂单即被清除，先取价格用于事件
	price, _ := l.p.core.GetPrice(tokenID)

	if err := l.p.core.BuyNFT(tokenID, caller); err != nil {
		return err
	}

	l.p.saveToken(tokenID)
	l.p.deleteListing(tokenID)
	l.p.emit(event.Event{
		Type:    model.EventTokenSold,
		Actor:   caller,
		TokenId: tokenID,
		Amount:  price,
	})
	return nil
}
