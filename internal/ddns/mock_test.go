package ddns

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/edvin/ddns/internal/model"
)

// ---------- Mock Provider ----------

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) VerifyToken(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockProvider) ListZones(ctx context.Context) ([]model.Zone, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Zone), args.Error(1)
}

func (m *mockProvider) ListRecords(ctx context.Context, zoneID, name, recordType string) ([]model.ZoneRecord, error) {
	args := m.Called(ctx, zoneID, name, recordType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ZoneRecord), args.Error(1)
}

func (m *mockProvider) UpdateRecord(ctx context.Context, update model.ZoneRecordUpdate) (*model.ZoneRecord, error) {
	args := m.Called(ctx, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ZoneRecord), args.Error(1)
}

// ---------- Mock Notifier ----------

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, message string) {
	m.Called(ctx, message)
}
