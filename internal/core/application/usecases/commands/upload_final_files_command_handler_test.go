package commands_test

import (
	"strings"
	"testing"

	"trackorder/internal/core/application/events"
	"trackorder/internal/core/application/usecases/commands"
	"trackorder/internal/core/domain/model/order"
	"trackorder/internal/core/domain/services"
	"trackorder/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUploadFinalFilesCommandHandler_Handle_PartialAcceptance(t *testing.T) {
	ctx := t.Context()
	aggregate := orderAwaitingDelivery(t)
	cmd, err := commands.NewUploadFinalFilesCommand(aggregate.ID(), aggregate.ProducerID(), []commands.FileUpload{
		{Name: "track-master.wav", Content: strings.NewReader("pcm")},
		{Name: "malware.exe", Content: strings.NewReader("mz")},
		{Name: "stems.zip", Content: strings.NewReader("pk")},
	})
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	files := new(MockFileStore)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	repo.On("UpdateInStatus", mock.Anything, aggregate, order.AwaitingFinalDelivery).Return(nil).Once()
	files.On("Store", mock.Anything, mock.Anything, "audio/wav", mock.Anything).
		Return(ports.StoredFile{}, nil).Once()
	files.On("Store", mock.Anything, mock.Anything, "application/zip", mock.Anything).
		Return(ports.StoredFile{}, nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := &RecordingPublisher{}

	h := commands.NewUploadFinalFilesCommandHandler(factory, services.NewFilePolicy(), files, publisher)
	result, err := h.Handle(ctx, cmd)

	// The disallowed file is skipped; the delivery still completes with the
	// accepted files and reports what was rejected.
	require.NoError(t, err)
	assert.Equal(t, order.Completed, aggregate.Status())
	require.Len(t, result.Delivered, 2)
	assert.Equal(t, "track-master.wav", result.Delivered[0].Name)
	assert.Equal(t, "stems.zip", result.Delivered[1].Name)
	assert.Equal(t, []string{"malware.exe"}, result.Rejected)

	require.Len(t, publisher.Events, 1)
	event, ok := publisher.Events[0].(events.FinalFilesDelivered)
	require.True(t, ok)
	assert.Len(t, event.Files, 2)
	files.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestUploadFinalFilesCommandHandler_Handle_AllRejected(t *testing.T) {
	ctx := t.Context()
	aggregate := orderAwaitingDelivery(t)
	cmd, err := commands.NewUploadFinalFilesCommand(aggregate.ID(), aggregate.ProducerID(), []commands.FileUpload{
		{Name: "malware.exe", Content: strings.NewReader("mz")},
	})
	require.NoError(t, err)

	factory := new(MockOrderUoWFactory)
	files := new(MockFileStore)
	publisher := &RecordingPublisher{}

	h := commands.NewUploadFinalFilesCommandHandler(factory, services.NewFilePolicy(), files, publisher)
	result, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrNoFinalFiles)
	assert.Equal(t, []string{"malware.exe"}, result.Rejected)
	assert.Equal(t, order.AwaitingFinalDelivery, aggregate.Status())
	factory.AssertNotCalled(t, "Create")
}

func TestUploadFinalFilesCommandHandler_Handle_BeforeBalancePaid(t *testing.T) {
	ctx := t.Context()
	aggregate := orderAwaitingApproval(t)
	require.NoError(t, aggregate.ApproveDemo(aggregate.CustomerID()))

	cmd, err := commands.NewUploadFinalFilesCommand(aggregate.ID(), aggregate.ProducerID(), []commands.FileUpload{
		{Name: "track-master.wav", Content: strings.NewReader("pcm")},
	})
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	files := new(MockFileStore)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := &RecordingPublisher{}

	h := commands.NewUploadFinalFilesCommandHandler(factory, services.NewFilePolicy(), files, publisher)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrInvalidState)
	files.AssertNotCalled(t, "Store", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
