package metaclient

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	metadomain "github.com/vfg2006/ad-report-api/infrastructure/integrator/meta/domain"
)

type page[T any] struct {
	Data   []T               `json:"data"`
	Paging metadomain.Paging `json:"paging"`
}

// fetchAll segue paging.next até a última página ou até o limite de páginas
func fetchAll[T any](ctx context.Context, c *MetaClient, firstURL string) ([]T, error) {
	items := make([]T, 0)
	next := firstURL

	for pages := 0; next != "" && pages < c.maxPages; pages++ {
		body, err := c.get(ctx, next)
		if err != nil {
			return nil, err
		}

		var response page[T]
		if err := json.Unmarshal(body, &response); err != nil {
			return nil, fmt.Errorf("metaclient: decode page: %w", err)
		}

		items = append(items, response.Data...)
		next = response.Paging.Next
	}

	if next != "" {
		logrus.WithFields(logrus.Fields{
			"max_pages": c.maxPages,
			"items":     len(items),
		}).Warn("metaclient: page limit reached, remaining pages ignored")
	}

	return items, nil
}
