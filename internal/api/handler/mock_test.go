package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/edvin/ddns/internal/model"
)

// handlerMockProvider implements ddns.Provider for handler tests.
type handlerMockProvider struct {
	mock.Mock
}

func (m *handlerMockProvider) VerifyToken(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *handlerMockProvider) ListZones(ctx context.Context) ([]model.Zone, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Zone), args.Error(1)
}

func (m *handlerMockProvider) ListRecords(ctx context.Context, zoneID, name, recordType string) ([]model.ZoneRecord, error) {
	args := m.Called(ctx, zoneID, name, recordType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ZoneRecord), args.Error(1)
}

func (m *handlerMockProvider) UpdateRecord(ctx context.Context, update model.ZoneRecordUpdate) (*model.ZoneRecord, error) {
	args := m.Called(ctx, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ZoneRecord), args.Error(1)
}

// handlerMockNotifier records notifications without sending them.
type handlerMockNotifier struct {
	mock.Mock
}

func (m *handlerMockNotifier) Notify(ctx context.Context, message string) {
	m.Called(ctx, message)
}
