package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-acme-cse/internal/validators"
	"github.com/MKhiriev/go-acme-cse/models"
)

// ResourceValidationService rejects malformed request primitives before they
// reach the wrapped ResourceService.
type ResourceValidationService struct {
	inner     ResourceService
	validator validators.Validator
}

func NewResourceValidationService(releaseVersions []string) ResourceServiceWrapper {
	return &ResourceValidationService{
		validator: validators.NewRequestValidator(releaseVersions),
	}
}

func (v *ResourceValidationService) Handle(ctx context.Context, req models.Request) (models.Response, error) {
	if err := v.validate(ctx, req); err != nil {
		return models.Response{}, err
	}
	return v.inner.Handle(ctx, req)
}

func (v *ResourceValidationService) Create(ctx context.Context, req models.Request) (models.Response, error) {
	req.Operation = models.OperationCreate
	if err := v.validate(ctx, req); err != nil {
		return models.Response{}, err
	}
	return v.inner.Create(ctx, req)
}

func (v *ResourceValidationService) Retrieve(ctx context.Context, req models.Request) (models.Response, error) {
	req.Operation = models.OperationRetrieve
	if err := v.validate(ctx, req); err != nil {
		return models.Response{}, err
	}
	return v.inner.Retrieve(ctx, req)
}

func (v *ResourceValidationService) Discover(ctx context.Context, req models.Request) (models.Response, error) {
	req.Operation = models.OperationDiscovery
	if err := v.validate(ctx, req); err != nil {
		return models.Response{}, err
	}
	return v.inner.Discover(ctx, req)
}

func (v *ResourceValidationService) Update(ctx context.Context, req models.Request) (models.Response, error) {
	req.Operation = models.OperationUpdate
	if err := v.validate(ctx, req); err != nil {
		return models.Response{}, err
	}
	return v.inner.Update(ctx, req)
}

func (v *ResourceValidationService) Delete(ctx context.Context, req models.Request) (models.Response, error) {
	req.Operation = models.OperationDelete
	if err := v.validate(ctx, req); err != nil {
		return models.Response{}, err
	}
	return v.inner.Delete(ctx, req)
}

func (v *ResourceValidationService) RemoveExpired(ctx context.Context) (int, error) {
	return v.inner.RemoveExpired(ctx)
}

func (v *ResourceValidationService) Bootstrap(ctx context.Context) error {
	return v.inner.Bootstrap(ctx)
}

func (v *ResourceValidationService) Wrap(inner ResourceService) ResourceService {
	v.inner = inner
	return v
}

// validate maps validator failures onto response status errors.
func (v *ResourceValidationService) validate(ctx context.Context, req models.Request) error {
	err := v.validator.Validate(ctx, req)
	if err == nil {
		return nil
	}

	if errors.Is(err, validators.ErrUnsupportedReleaseVersion) {
		return fmt.Errorf("%w: %w", ErrReleaseVersionNotSupported, err)
	}
	return fmt.Errorf("%w: %w", ErrBadRequest, err)
}
