package metaclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	metadomain "github.com/vfg2006/ad-report-api/infrastructure/integrator/meta/domain"
)

const commonInsightFields = "campaign_name,adset_name,campaign_id,adset_id,impressions,clicks,spend,actions,action_values,cost_per_action_type,reach,inline_link_clicks,cpm,frequency,objective"

// InsightQuery seleciona o nível, a quebra opcional (age|gender) e o período
type InsightQuery struct {
	Level     string
	Breakdown string
	StartDate *time.Time
	EndDate   *time.Time
}

func (q InsightQuery) fields() string {
	fields := commonInsightFields
	switch q.Level {
	case "adset":
		fields += ",optimization_goal,video_thruplay_watched_actions"
	case "ad":
		fields += ",ad_name,ad_id,optimization_goal,video_thruplay_watched_actions"
	}
	return fields
}

func (q InsightQuery) params() url.Values {
	params := url.Values{}
	params.Set("level", q.Level)
	params.Set("fields", q.fields())
	if q.Breakdown != "" {
		params.Set("breakdowns", q.Breakdown)
	}

	if q.StartDate != nil && q.EndDate != nil {
		timeRange := fmt.Sprintf("{\"since\":\"%s\",\"until\":\"%s\"}", q.StartDate.Format(time.DateOnly), q.EndDate.Format(time.DateOnly))
		params.Set("time_range", timeRange)
	} else {
		params.Set("date_preset", "maximum")
	}

	return params
}

// accountPath aceita o id com ou sem o prefixo act_
func accountPath(accountID, edge string) string {
	if !strings.HasPrefix(accountID, "act_") {
		accountID = "act_" + accountID
	}
	return accountID + "/" + edge
}

func (c *MetaClient) GetAdAccounts(ctx context.Context) ([]metadomain.AdAccount, error) {
	params := url.Values{}
	params.Set("fields", "name,account_id,currency")
	params.Set("limit", "100")

	return fetchAll[metadomain.AdAccount](ctx, c, c.endpoint("me/adaccounts", params))
}

func (c *MetaClient) GetInsights(ctx context.Context, accountID string, query InsightQuery) ([]metadomain.InsightItem, error) {
	return fetchAll[metadomain.InsightItem](ctx, c, c.endpoint(accountPath(accountID, "insights"), query.params()))
}

func (c *MetaClient) GetCampaigns(ctx context.Context, accountID string) ([]metadomain.Campaign, error) {
	params := url.Values{}
	params.Set("fields", "name,effective_status,objective,stop_time,daily_budget,lifetime_budget")

	return fetchAll[metadomain.Campaign](ctx, c, c.endpoint(accountPath(accountID, "campaigns"), params))
}

func (c *MetaClient) GetAdSets(ctx context.Context, accountID string) ([]metadomain.AdSet, error) {
	params := url.Values{}
	params.Set("fields", "name,effective_status,end_time,campaign_id,optimization_goal,daily_budget,lifetime_budget")

	return fetchAll[metadomain.AdSet](ctx, c, c.endpoint(accountPath(accountID, "adsets"), params))
}

func (c *MetaClient) GetAds(ctx context.Context, accountID string) ([]metadomain.Ad, error) {
	params := url.Values{}
	params.Set("fields", "name,effective_status,adset_id,campaign_id,creative{thumbnail_url,image_url,title,body,object_story_spec,asset_feed_spec}")

	return fetchAll[metadomain.Ad](ctx, c, c.endpoint(accountPath(accountID, "ads"), params))
}
