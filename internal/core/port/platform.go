package port

import (
	"context"

	"ads-scheduler/internal/core/domain"
)

// PlatformClient talks to the seller-platform proxy that fronts the
// third-party advertising API. The platform is an opaque collaborator: this
// service never implements its rate limiting, token refresh or retry
// behaviour.
type PlatformClient interface {
	// ListCampaigns returns the shop's campaign snapshot used to
	// denormalize names and types into new schedules.
	ListCampaigns(ctx context.Context, shopID int64) ([]domain.Campaign, error)
	// UpdateCampaignBudget applies a new daily budget to a campaign.
	UpdateCampaignBudget(ctx context.Context, shopID, campaignID, budget int64) error
}
