package strategy

import "github.com/postpilot/calendar-bot/internal/models"

// Funnel distributions per account maturity. New accounts are pushed almost
// entirely toward awareness content; established accounts toward conversion.
// The numbers are used verbatim as prompt targets, not normalized.
var funnelDistributions = map[models.AccountMaturity]models.FunnelDistribution{
	models.MaturityNew:         {Top: 100, Middle: 10, Bottom: 0},
	models.MaturityEstablished: {Top: 10, Middle: 20, Bottom: 70},
}

var postTypesByStage = map[models.FunnelStage][]models.PostType{
	models.FunnelTop:    {models.PostTypeEntertaining, models.PostTypeInspiring},
	models.FunnelMiddle: {models.PostTypeEducational, models.PostTypeConnect},
	models.FunnelBottom: {models.PostTypePromotional},
}

var goalByStage = map[models.FunnelStage]models.Goal{
	models.FunnelTop:    models.GoalAwareness,
	models.FunnelMiddle: models.GoalNurturing,
	models.FunnelBottom: models.GoalConverting,
}

// DistributionFor returns the funnel distribution for an account maturity.
// Unknown or empty maturity falls back to "new" since the field is optional
// on generation requests.
func DistributionFor(maturity models.AccountMaturity) models.FunnelDistribution {
	if dist, ok := funnelDistributions[maturity]; ok {
		return dist
	}
	return funnelDistributions[models.MaturityNew]
}

// AllowedPostTypes returns the post types permitted for a funnel stage.
func AllowedPostTypes(stage models.FunnelStage) []models.PostType {
	return postTypesByStage[stage]
}

// GoalFor returns the goal a post at the given funnel stage pursues.
func GoalFor(stage models.FunnelStage) models.Goal {
	return goalByStage[stage]
}
