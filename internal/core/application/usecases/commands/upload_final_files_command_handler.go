package commands

import (
	"context"
	"fmt"

	"trackorder/internal/core/application/events"
	"trackorder/internal/core/domain/model/kernel"
	"trackorder/internal/core/domain/model/order"
	"trackorder/internal/core/domain/services"
	"trackorder/internal/core/ports"
)

// UploadFinalFilesResult reports what a delivery attempt did. A delivery may
// partially succeed: files failing the type policy are skipped and reported in
// Rejected while the accepted files are stored and the order completes.
type UploadFinalFilesResult struct {
	Delivered []order.FinalFile
	Rejected  []string
}

// UploadFinalFilesCommandHandler stores the final deliverables and completes
// the order.
type UploadFinalFilesCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     *services.FilePolicy
	files      ports.FileStore
	publisher  ports.EventPublisher
}

// NewUploadFinalFilesCommandHandler creates a handler for final deliveries.
func NewUploadFinalFilesCommandHandler(
	uowFactory OrderUoWFactory,
	policy *services.FilePolicy,
	files ports.FileStore,
	publisher ports.EventPublisher,
) UploadFinalFilesCommandHandler {
	return UploadFinalFilesCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		files:      files,
		publisher:  publisher,
	}
}

// Handle processes the final delivery.
// Returns order.ErrNoFinalFiles when every file was rejected by the policy;
// the rejected names are reported in the result either way.
func (h *UploadFinalFilesCommandHandler) Handle(
	ctx context.Context,
	cmd UploadFinalFilesCommand,
) (UploadFinalFilesResult, error) {
	if err := cmd.Validate(); err != nil {
		return UploadFinalFilesResult{}, err
	}

	var accepted []FileUpload
	var rejected []string
	for _, u := range cmd.Uploads() {
		if err := h.policy.Check(services.FinalFile, u.Name); err != nil {
			rejected = append(rejected, u.Name)
			continue
		}
		accepted = append(accepted, u)
	}

	result := UploadFinalFilesResult{Rejected: rejected}
	if len(accepted) == 0 {
		return result, order.ErrNoFinalFiles
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return result, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return result, err
	}

	finalFiles := make([]order.FinalFile, 0, len(accepted))
	keys := make([]string, 0, len(accepted))
	for _, u := range accepted {
		fileID := kernel.NewFileID()
		name := h.policy.SanitizeName(u.Name)
		key := fmt.Sprintf("orders/%s/final/%s-%s", aggregate.ID(), fileID, name)

		finalFiles = append(finalFiles, order.FinalFile{
			ID:   fileID,
			Name: name,
			URL:  h.files.URLFor(key),
		})
		keys = append(keys, key)
	}

	if err = aggregate.DeliverFinalFiles(cmd.ActorID(), finalFiles); err != nil {
		return result, err
	}

	for i, u := range accepted {
		if _, err = h.files.Store(ctx, keys[i], h.policy.ContentType(u.Name), u.Content); err != nil {
			return result, fmt.Errorf("store final file %q: %w", u.Name, err)
		}
	}

	if err = repo.UpdateInStatus(ctx, aggregate, order.AwaitingFinalDelivery); err != nil {
		return result, err
	}

	if err = uow.Commit(ctx); err != nil {
		return result, err
	}

	result.Delivered = finalFiles

	delivered := make([]events.DeliveredFile, 0, len(finalFiles))
	for _, f := range finalFiles {
		delivered = append(delivered, events.DeliveredFile{Name: f.Name, URL: f.URL})
	}

	h.publisher.Publish(ctx, events.FinalFilesDelivered{
		OrderContext: events.OrderContext{
			OrderID:    aggregate.ID(),
			ProducerID: aggregate.ProducerID(),
			CustomerID: aggregate.CustomerID(),
			ThreadID:   aggregate.MessageThreadID(),
		},
		Files: delivered,
	})

	return result, nil
}
