package commands_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"trackorder/internal/core/application/events"
	"trackorder/internal/core/application/usecases/commands"
	"trackorder/internal/core/domain/model/kernel"
	"trackorder/internal/core/domain/model/order"
	"trackorder/internal/core/domain/services"
	"trackorder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProducerDirectory struct{ mock.Mock }

func (m *MockProducerDirectory) IsProducer(ctx context.Context, id kernel.UserID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProducerDirectory) UserEmail(ctx context.Context, id kernel.UserID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

type MockMessenger struct{ mock.Mock }

func (m *MockMessenger) CreateThread(
	ctx context.Context, orderID kernel.OrderID, producer, customer kernel.UserID, subject string,
) (int64, error) {
	args := m.Called(ctx, orderID, producer, customer, subject)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMessenger) PostMessage(ctx context.Context, threadID int64, author kernel.UserID, body string) error {
	args := m.Called(ctx, threadID, author, body)
	return args.Error(0)
}

func placeOrderCommand(t *testing.T) commands.PlaceOrderCommand {
	t.Helper()
	cmd, err := commands.NewPlaceOrderCommand(
		orderID(t), userID(t, 7), userID(t, 42),
		order.CommissionSpec{ServiceType: "custom_track", BPM: 128},
		[]string{"stems"},
	)
	require.NoError(t, err)
	return cmd
}

func TestPlaceOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := placeOrderCommand(t)

	settings := producerSettingsWithAddons(t, 10000, map[string]int64{"stems": 2500})

	directory := new(MockProducerDirectory)
	directory.On("IsProducer", mock.Anything, userID(t, 7)).Return(true, nil).Once()

	repo := new(MockOrderRepository)
	settingsRepo := new(MockSettingsRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SettingsRepository").Return(settingsRepo).Once(),
		settingsRepo.On("Get", mock.Anything, userID(t, 7)).Return(settings, nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.TrackOrder")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	// Second unit of work attaches the conversation thread after commit.
	threadRepo := new(MockOrderRepository)
	threadUoW := new(MockUoW)
	mock.InOrder(
		threadUoW.On("Begin", ctx).Return(nil).Once(),
		threadUoW.On("OrderRepository").Return(threadRepo).Once(),
		threadRepo.On("Get", mock.Anything, orderID(t)).Return(placedOrder(t), nil).Once(),
		threadRepo.On("Update", mock.Anything, mock.AnythingOfType("*order.TrackOrder")).Return(nil).Once(),
		threadUoW.On("Commit", ctx).Return(nil).Once(),
		threadUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	factory.On("Create").Return(threadUoW).Once()

	messenger := new(MockMessenger)
	messenger.On("CreateThread",
		mock.Anything, orderID(t), userID(t, 7), userID(t, 42), mock.AnythingOfType("string"),
	).Return(int64(99), nil).Once()

	publisher := &RecordingPublisher{}

	h := commands.NewPlaceOrderCommandHandler(
		factory, services.NewPricingService(), directory, messenger, publisher, slog.Default())
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Len(t, publisher.Events, 1)
	event, ok := publisher.Events[0].(events.OrderPlaced)
	require.True(t, ok)
	assert.Equal(t, int64(12500), event.Total.Cents())
	assert.Equal(t, int64(3750), event.Deposit.Cents())
	require.NotNil(t, event.ThreadID)
	assert.Equal(t, int64(99), *event.ThreadID)
	messenger.AssertExpectations(t)
	directory.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_NotAProducer(t *testing.T) {
	ctx := t.Context()
	cmd := placeOrderCommand(t)

	directory := new(MockProducerDirectory)
	directory.On("IsProducer", mock.Anything, userID(t, 7)).Return(false, nil).Once()

	factory := new(MockUoWFactory)
	publisher := &RecordingPublisher{}

	h := commands.NewPlaceOrderCommandHandler(
		factory, services.NewPricingService(), directory, new(MockMessenger), publisher, slog.Default())
	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	factory.AssertNotCalled(t, "Create")
}

func TestPlaceOrderCommandHandler_Handle_ThreadCreationFailureIsNotFatal(t *testing.T) {
	ctx := t.Context()
	cmd := placeOrderCommand(t)

	settings := producerSettingsWithAddons(t, 10000, map[string]int64{"stems": 2500})

	directory := new(MockProducerDirectory)
	directory.On("IsProducer", mock.Anything, userID(t, 7)).Return(true, nil).Once()

	repo := new(MockOrderRepository)
	settingsRepo := new(MockSettingsRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SettingsRepository").Return(settingsRepo).Once(),
		settingsRepo.On("Get", mock.Anything, userID(t, 7)).Return(settings, nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.TrackOrder")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	messenger := new(MockMessenger)
	messenger.On("CreateThread",
		mock.Anything, orderID(t), userID(t, 7), userID(t, 42), mock.AnythingOfType("string"),
	).Return(int64(0), errors.New("messaging down")).Once()

	publisher := &RecordingPublisher{}

	h := commands.NewPlaceOrderCommandHandler(
		factory, services.NewPricingService(), directory, messenger, publisher, slog.Default())
	err := h.Handle(ctx, cmd)

	// Order placement survives a messaging outage; the event just carries no
	// thread reference.
	require.NoError(t, err)
	require.Len(t, publisher.Events, 1)
	event, ok := publisher.Events[0].(events.OrderPlaced)
	require.True(t, ok)
	assert.Nil(t, event.ThreadID)
}
