package meta

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	metadomain "github.com/vfg2006/ad-report-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ad-report-api/infrastructure/integrator/meta/metaclient"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_integrator.go -package=mocks

// Integrator busca da Meta tudo o que a normalização precisa de uma conta
type Integrator interface {
	GetAdAccounts(ctx context.Context) ([]metadomain.AdAccount, error)
	FetchAccountSnapshot(ctx context.Context, accountID string, startDate, endDate *time.Time) (*metadomain.AccountSnapshot, error)
}

type MetaIntegrator struct {
	Client metaclient.Client
}

func New(client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		Client: client,
	}
}

func (s *MetaIntegrator) GetAdAccounts(ctx context.Context) ([]metadomain.AdAccount, error) {
	accounts, err := s.Client.GetAdAccounts(ctx)
	if err != nil {
		logrus.WithError(err).Error("insights: failed to get ad accounts")
		return nil, err
	}
	return accounts, nil
}

// FetchAccountSnapshot dispara as oito buscas em paralelo e só retorna quando
// todas terminam. Qualquer falha invalida o snapshot inteiro.
func (s *MetaIntegrator) FetchAccountSnapshot(ctx context.Context, accountID string, startDate, endDate *time.Time) (*metadomain.AccountSnapshot, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	snapshot := &metadomain.AccountSnapshot{AccountID: accountID}

	insight := func(level, breakdown string) metaclient.InsightQuery {
		return metaclient.InsightQuery{Level: level, Breakdown: breakdown, StartDate: startDate, EndDate: endDate}
	}

	jobs := map[string]func() error{
		"campaign_insights": func() (err error) {
			snapshot.CampaignInsights, err = s.Client.GetInsights(ctx, accountID, insight("campaign", ""))
			return err
		},
		"adset_insights": func() (err error) {
			snapshot.AdSetInsights, err = s.Client.GetInsights(ctx, accountID, insight("adset", ""))
			return err
		},
		"ad_insights": func() (err error) {
			snapshot.AdInsights, err = s.Client.GetInsights(ctx, accountID, insight("ad", ""))
			return err
		},
		"gender_insights": func() (err error) {
			snapshot.GenderInsights, err = s.Client.GetInsights(ctx, accountID, insight("campaign", "gender"))
			return err
		},
		"age_insights": func() (err error) {
			snapshot.AgeInsights, err = s.Client.GetInsights(ctx, accountID, insight("campaign", "age"))
			return err
		},
		"campaigns": func() (err error) {
			snapshot.Campaigns, err = s.Client.GetCampaigns(ctx, accountID)
			return err
		},
		"adsets": func() (err error) {
			snapshot.AdSets, err = s.Client.GetAdSets(ctx, accountID)
			return err
		},
		"ads": func() (err error) {
			snapshot.Ads, err = s.Client.GetAds(ctx, accountID)
			return err
		},
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for name, job := range jobs {
		wg.Add(1)
		go func(name string, job func() error) {
			defer wg.Done()

			if err := job(); err != nil {
				logrus.WithFields(logrus.Fields{
					"account_id": accountID,
					"collection": name,
					"error":      err.Error(),
				}).Error("insights: failed to fetch collection")

				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
				cancel()
			}
		}(name, job)
	}

	wg.Wait()

	if len(errs) > 0 {
		return nil, firstRelevantError(errs)
	}

	logrus.WithFields(logrus.Fields{
		"account_id":        accountID,
		"campaign_insights": len(snapshot.CampaignInsights),
		"adset_insights":    len(snapshot.AdSetInsights),
		"ad_insights":       len(snapshot.AdInsights),
		"ads":               len(snapshot.Ads),
	}).Debug("insights: account snapshot fetched")

	return snapshot, nil
}

// firstRelevantError prefere o erro original ao context.Canceled provocado
// nas demais buscas pelo cancelamento
func firstRelevantError(errs []error) error {
	for _, err := range errs {
		if !errors.Is(err, context.Canceled) {
			return err
		}
	}
	return errs[0]
}
