package commands

import (
	"context"
	"fmt"

	"trackorder/internal/core/domain/model/kernel"
	"trackorder/internal/core/domain/model/order"
	"trackorder/internal/core/domain/services"
	"trackorder/internal/core/ports"
)

// UploadReferenceTracksResult reports which reference files were stored and
// which failed the type policy.
type UploadReferenceTracksResult struct {
	Stored   []order.ReferenceFile
	Rejected []string
}

// UploadReferenceTracksCommandHandler stores reference material the producer
// works from. Reference uploads never change the workflow status and are
// accepted at any point.
type UploadReferenceTracksCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     *services.FilePolicy
	files      ports.FileStore
}

// NewUploadReferenceTracksCommandHandler creates a handler for reference uploads.
func NewUploadReferenceTracksCommandHandler(
	uowFactory OrderUoWFactory,
	policy *services.FilePolicy,
	files ports.FileStore,
) UploadReferenceTracksCommandHandler {
	return UploadReferenceTracksCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		files:      files,
	}
}

// Handle processes the reference upload.
// Only the order's customer may attach reference material. Stored files are
// recorded on the order so download links can be issued for them later.
func (h *UploadReferenceTracksCommandHandler) Handle(
	ctx context.Context,
	cmd UploadReferenceTracksCommand,
) (UploadReferenceTracksResult, error) {
	if err := cmd.Validate(); err != nil {
		return UploadReferenceTracksResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return UploadReferenceTracksResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return UploadReferenceTracksResult{}, err
	}

	if !cmd.ActorID().IsEqual(aggregate.CustomerID()) {
		return UploadReferenceTracksResult{}, order.ErrNotAuthorized
	}

	var result UploadReferenceTracksResult
	var accepted []FileUpload
	var refs []order.ReferenceFile
	var keys []string
	for _, u := range cmd.Uploads() {
		if err = h.policy.Check(services.ReferenceFile, u.Name); err != nil {
			result.Rejected = append(result.Rejected, u.Name)
			continue
		}

		fileID := kernel.NewFileID()
		name := h.policy.SanitizeName(u.Name)
		key := fmt.Sprintf("orders/%s/reference/%s-%s", aggregate.ID(), fileID, name)

		accepted = append(accepted, u)
		refs = append(refs, order.ReferenceFile{
			ID:   fileID,
			Name: name,
			URL:  h.files.URLFor(key),
		})
		keys = append(keys, key)
	}

	if len(refs) == 0 {
		return result, nil
	}

	if err = aggregate.AttachReferenceFiles(cmd.ActorID(), refs); err != nil {
		return result, err
	}

	for i, u := range accepted {
		if _, err = h.files.Store(ctx, keys[i], h.policy.ContentType(u.Name), u.Content); err != nil {
			return result, fmt.Errorf("store reference file %q: %w", u.Name, err)
		}
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return result, err
	}

	if err = uow.Commit(ctx); err != nil {
		return result, err
	}

	result.Stored = refs
	return result, nil
}
