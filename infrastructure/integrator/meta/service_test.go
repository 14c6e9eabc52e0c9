package meta

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	metadomain "github.com/vfg2006/ad-report-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ad-report-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ad-report-api/infrastructure/integrator/meta/mocks"
)

func TestMetaIntegrator_FetchAccountSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	integrator := New(client)

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	client.EXPECT().
		GetInsights(gomock.Any(), "123", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, q metaclient.InsightQuery) ([]metadomain.InsightItem, error) {
			assert.Equal(t, &start, q.StartDate)
			assert.Equal(t, &end, q.EndDate)
			return []metadomain.InsightItem{{CampaignID: q.Level + ":" + q.Breakdown}}, nil
		}).
		Times(5)
	client.EXPECT().GetCampaigns(gomock.Any(), "123").Return([]metadomain.Campaign{{ID: "c1"}}, nil)
	client.EXPECT().GetAdSets(gomock.Any(), "123").Return([]metadomain.AdSet{{ID: "s1"}}, nil)
	client.EXPECT().GetAds(gomock.Any(), "123").Return([]metadomain.Ad{{ID: "a1"}}, nil)

	snapshot, err := integrator.FetchAccountSnapshot(context.Background(), "123", &start, &end)
	require.NoError(t, err)

	assert.Equal(t, "campaign:", snapshot.CampaignInsights[0].CampaignID)
	assert.Equal(t, "adset:", snapshot.AdSetInsights[0].CampaignID)
	assert.Equal(t, "ad:", snapshot.AdInsights[0].CampaignID)
	assert.Equal(t, "campaign:gender", snapshot.GenderInsights[0].CampaignID)
	assert.Equal(t, "campaign:age", snapshot.AgeInsights[0].CampaignID)
	assert.Equal(t, "c1", snapshot.Campaigns[0].ID)
	assert.Equal(t, "s1", snapshot.AdSets[0].ID)
	assert.Equal(t, "a1", snapshot.Ads[0].ID)
}

func TestMetaIntegrator_FetchAccountSnapshotFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	integrator := New(client)

	client.EXPECT().GetInsights(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	client.EXPECT().GetCampaigns(gomock.Any(), gomock.Any()).Return(nil, metaclient.ErrAuthExpired)
	client.EXPECT().GetAdSets(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	client.EXPECT().GetAds(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	snapshot, err := integrator.FetchAccountSnapshot(context.Background(), "123", nil, nil)

	assert.Nil(t, snapshot)
	assert.ErrorIs(t, err, metaclient.ErrAuthExpired)
}
