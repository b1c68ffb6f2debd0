package engine

import (
	"github.com/rxtech-lab/argo-zscore/internal/trading"
	"github.com/rxtech-lab/argo-zscore/internal/types"
)

// BacktestDataClient records which bar types the strategy listens to.
type BacktestDataClient struct {
	subscriptions map[types.BarType]struct{}
}

var _ trading.DataClient = (*BacktestDataClient)(nil)

func NewBacktestDataClient() *BacktestDataClient {
	return &BacktestDataClient{subscriptions: make(map[types.BarType]struct{})}
}

func (d *BacktestDataClient) SubscribeBars(barType types.BarType) error {
	d.subscriptions[barType] = struct{}{}

	return nil
}

func (d *BacktestDataClient) UnsubscribeBars(barType types.BarType) error {
	delete(d.subscriptions, barType)

	return nil
}

func (d *BacktestDataClient) IsSubscribed(barType types.BarType) bool {
	_, ok := d.subscriptions[barType]

	return ok
}

func (d *BacktestDataClient) Reset() {
	d.subscriptions = make(map[types.BarType]struct{})
}
