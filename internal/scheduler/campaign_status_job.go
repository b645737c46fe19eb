package scheduler

import (
	"time"

	"github.com/blues/ncp/internal/config"
	"github.com/blues/ncp/internal/logger"
	"github.com/blues/ncp/internal/logic"
	"github.com/go-co-op/gocron/v2"
)

// CampaignStatusJob 活动状态更新任务, 到期或达标的活动由平台方结束
type CampaignStatusJob struct {
	campaignLogic *logic.CampaignLogic
	adminLogic    *logic.AdminLogic
	config        *config.Config
}

// NewCampaignStatusJob 创建活动状态更新任务
func NewCampaignStatusJob(p *logic.Platform, cfg *config.Config) *CampaignStatusJob {
	return &CampaignStatusJob{
		campaignLogic: logic.NewCampaignLogic(p),
		adminLogic:    logic.NewAdminLogic(p),
		config:        cfg,
	}
}

// GetName 获取任务名称
func (j *CampaignStatusJob) GetName() string {
	return "campaign_status_updater"
}

// GetSchedule 获取调度配置
func (j *CampaignStatusJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *CampaignStatusJob) Execute() {
	logger.Debug("Starting campaign status update task")

	owner := j.adminLogic.State().Owner
	now := time.Now()
	endedCount := 0

	for id, campaign := range j.campaignLogic.Campaigns() {
		if !campaign.Active {
			continue
		}

		expired := now.Sub(campaign.CreatedAt) > time.Duration(campaign.Duration)*time.Second
		funded := campaign.Goal > 0 && campaign.Raised >= campaign.Goal
		if !expired && !funded {
			continue
		}

		if err := j.campaignLogic.End(id, owner); err != nil {
			logger.Error("Failed to end campaign, id: %d, error: %v", id, err)
			continue
		}
		logger.Info("Campaign ended automatically, id: %d, raised: %d, goal: %d, expired: %v",
			id, campaign.Raised, campaign.Goal, expired)
		endedCount++
	}

	if endedCount > 0 {
		logger.Info("Campaign status update task finished, ended: %d", endedCount)
	}
}
