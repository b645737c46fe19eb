package event

import (
	"encoding/json"

	"github.com/blues/ncp/internal/logger"
	"github.com/blues/ncp/internal/model"
	"gorm.io/gorm"
)

// Processor 事件处理器：写入事件历史并按类型记日志
type Processor struct {
	db *gorm.DB
}

// NewProcessor 创建事件处理器
func NewProcessor(db *gorm.DB) *Processor {
	return &Processor{db: db}
}

// Process 处理单个事件
func (p *Processor) Process(e Event) {
	if err := p.persist(e); err != nil {
		logger.Error("Failed to persist event %s: %v", e.Type, err)
	}

	switch e.Type {
	case model.EventTokenSold:
		logger.Info("Token %d sold to %s for %d", e.TokenId, e.Actor, e.Amount)
	case model.EventDonationReceived:
		logger.Info("Campaign %d received %d from %s", e.CampaignId, e.Amount, e.Actor)
	case model.EventNftDonated:
		logger.Info("Campaign %d received token %d from %s", e.CampaignId, e.TokenId, e.Actor)
	case model.EventMilestoneReached:
		logger.Info("Campaign %d milestone reached at %d", e.CampaignId, e.Amount)
	default:
		logger.Debug("Processed event %s by %s", e.Type, e.Actor)
	}
}

// persist 事件落库，db未启用时跳过
func (p *Processor) persist(e Event) error {
	if p.db == nil {
		return nil
	}

	data := ""
	if len(e.Data) > 0 {
		raw, err := json.Marshal(e.Data)
		if err != nil {
			return err
		}
		data = string(raw)
	}

	record := model.EventModel{
		EventType:  e.Type,
		Actor:      e.Actor,
		TokenId:    e.TokenId,
		CampaignId: e.CampaignId,
		Amount:     e.Amount,
		Data:       data,
	}
	return p.db.Create(&record).Error
}
