package mocks

import (
	"context"

	"delivery-sync/feature/sync/tabular"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of partner.Client
type Client struct {
	mock.Mock
}

func (m *Client) FetchDatasets(ctx context.Context, names []string) (map[string]*tabular.Dataset, error) {
	args := m.Called(ctx, names)
	if datasets, ok := args.Get(0).(map[string]*tabular.Dataset); ok {
		return datasets, args.Error(1)
	}
	return nil, args.Error(1)
}
