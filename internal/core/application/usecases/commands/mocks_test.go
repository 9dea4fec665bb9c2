package commands_test

import (
	"context"
	"io"
	"testing"
	"time"

	"trackorder/internal/core/application/events"
	"trackorder/internal/core/application/usecases/commands"
	"trackorder/internal/core/domain/model/kernel"
	"trackorder/internal/core/domain/model/order"
	"trackorder/internal/core/domain/model/producer"
	"trackorder/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.TrackOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.TrackOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateInStatus(ctx context.Context, o *order.TrackOrder, expected order.Status) error {
	args := m.Called(ctx, o, expected)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateIfDepositUnpaid(ctx context.Context, o *order.TrackOrder) (bool, error) {
	args := m.Called(ctx, o)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.OrderID) (*order.TrackOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.TrackOrder), args.Error(1)
}

func (m *MockOrderRepository) GetAllInStatusOlderThan(
	ctx context.Context, status order.Status, cutoff time.Time,
) ([]*order.TrackOrder, error) {
	args := m.Called(ctx, status, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.TrackOrder), args.Error(1)
}

type MockSettingsRepository struct{ mock.Mock }

func (m *MockSettingsRepository) Get(ctx context.Context, producerID kernel.UserID) (*producer.Settings, error) {
	args := m.Called(ctx, producerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*producer.Settings), args.Error(1)
}

func (m *MockSettingsRepository) Save(ctx context.Context, settings *producer.Settings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { args := m.Called(ctx); return args.Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { args := m.Called(ctx); return args.Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { args := m.Called(ctx); return args.Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) SettingsRepository() ports.SettingsRepository {
	args := m.Called()
	return args.Get(0).(ports.SettingsRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) CreateBalanceOrder(
	ctx context.Context, originalOrder kernel.OrderID, customer kernel.UserID, amount kernel.Money,
) (ports.BalanceOrder, error) {
	args := m.Called(ctx, originalOrder, customer, amount)
	return args.Get(0).(ports.BalanceOrder), args.Error(1)
}

func (m *MockPaymentGateway) CompleteOrder(ctx context.Context, id kernel.OrderID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockFileStore struct{ mock.Mock }

func (m *MockFileStore) Store(ctx context.Context, key, contentType string, body io.Reader) (ports.StoredFile, error) {
	args := m.Called(ctx, key, contentType, body)
	return args.Get(0).(ports.StoredFile), args.Error(1)
}

func (m *MockFileStore) PresignDownload(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Error(1)
}

func (m *MockFileStore) URLFor(key string) string {
	return "https://files.test/" + key
}

func (m *MockFileStore) KeyFromURL(url string) (string, error) {
	args := m.Called(url)
	return args.String(0), args.Error(1)
}

// RecordingPublisher captures published events for assertions.
type RecordingPublisher struct {
	Events []events.Event
}

func (p *RecordingPublisher) Publish(_ context.Context, event events.Event) {
	p.Events = append(p.Events, event)
}

// Aggregate fixtures at each workflow stage.

func orderID(t *testing.T) kernel.OrderID {
	t.Helper()
	id, err := kernel.NewOrderID(4211)
	require.NoError(t, err)
	return id
}

func userID(t *testing.T, raw int64) kernel.UserID {
	t.Helper()
	id, err := kernel.NewUserID(raw)
	require.NoError(t, err)
	return id
}

func producerSettingsWithAddons(t *testing.T, baseCents int64, addonCents map[string]int64) *producer.Settings {
	t.Helper()
	basePrice, err := kernel.NewMoneyFromCents(baseCents)
	require.NoError(t, err)

	addons := make(map[string]kernel.Money, len(addonCents))
	for name, cents := range addonCents {
		price, err := kernel.NewMoneyFromCents(cents)
		require.NoError(t, err)
		addons[name] = price
	}

	s, err := producer.NewSettings(userID(t, 7), basePrice, addons, 2, true)
	require.NoError(t, err)
	return s
}

func placedOrder(t *testing.T) *order.TrackOrder {
	t.Helper()
	total, err := kernel.NewMoneyFromCents(12500)
	require.NoError(t, err)

	o, err := order.NewTrackOrder(
		orderID(t), userID(t, 7), userID(t, 42),
		order.CommissionSpec{ServiceType: "custom_track", BPM: 128},
		nil, total,
	)
	require.NoError(t, err)
	return o
}

func orderAwaitingApproval(t *testing.T) *order.TrackOrder {
	t.Helper()
	o := placedOrder(t)
	o.ConfirmDeposit()
	require.NoError(t, o.SubmitDemo(o.ProducerID(), "https://files.test/orders/4211/demos/demo.mp3"))
	return o
}

func orderAwaitingDelivery(t *testing.T) *order.TrackOrder {
	t.Helper()
	o := orderAwaitingApproval(t)
	require.NoError(t, o.ApproveDemo(o.CustomerID()))
	require.NoError(t, o.ConfirmFinalPayment())
	return o
}

func completedOrder(t *testing.T) *order.TrackOrder {
	t.Helper()
	o := orderAwaitingDelivery(t)

	balanceOrderID, err := kernel.NewOrderID(4212)
	require.NoError(t, err)
	require.NoError(t, o.AttachFinalPaymentOrder(balanceOrderID))

	require.NoError(t, o.DeliverFinalFiles(o.ProducerID(), []order.FinalFile{{
		ID:   kernel.NewFileID(),
		Name: "track-final.wav",
		URL:  "https://files.test/orders/4211/final/track-final.wav",
	}}))
	return o
}
