package validators

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-acme-cse/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rcn(v models.ResultContent) *models.ResultContent { return &v }

func validCreate() models.Request {
	return models.Request{
		Operation:      models.OperationCreate,
		To:             "cse-in",
		Originator:     "CAdmin",
		RequestID:      "abc",
		ReleaseVersion: "3",
		ResourceType:   models.TypeContainer,
		Content:        []byte(`{"m2m:cnt":{"rn":"Schedule"}}`),
	}
}

func TestRequestValidator_Validate(t *testing.T) {
	v := NewRequestValidator([]string{"2a", "3", "4"})
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(r *models.Request)
		wantErr error
	}{
		{name: "valid create", mutate: func(r *models.Request) {}},
		{name: "missing request id", mutate: func(r *models.Request) { r.RequestID = "" }, wantErr: ErrMissingRequestID},
		{name: "missing originator", mutate: func(r *models.Request) { r.Originator = "" }, wantErr: ErrMissingOriginator},
		{
			name: "AE registration without originator",
			mutate: func(r *models.Request) {
				r.Originator = ""
				r.ResourceType = models.TypeAE
			},
		},
		{name: "unsupported release", mutate: func(r *models.Request) { r.ReleaseVersion = "1" }, wantErr: ErrUnsupportedReleaseVersion},
		{name: "empty release accepted", mutate: func(r *models.Request) { r.ReleaseVersion = "" }},
		{name: "create without ty", mutate: func(r *models.Request) { r.ResourceType = models.TypeUnknown }, wantErr: ErrMissingResourceType},
		{name: "create without content", mutate: func(r *models.Request) { r.Content = nil }, wantErr: ErrEmptyContent},
		{
			name: "retrieve with content",
			mutate: func(r *models.Request) {
				r.Operation = models.OperationRetrieve
			},
			wantErr: ErrUnexpectedContent,
		},
		{name: "bad rcn", mutate: func(r *models.Request) { r.ResultContent = rcn(11) }, wantErr: ErrInvalidResultContent},
		{name: "good rcn", mutate: func(r *models.Request) { r.ResultContent = rcn(models.ResultContentChildReferences) }},
		{name: "negative limit", mutate: func(r *models.Request) { r.FilterCriteria.Limit = -1 }, wantErr: ErrInvalidFilterCriteria},
		{
			name:    "unknown filter type",
			mutate:  func(r *models.Request) { r.FilterCriteria.ResourceTypes = []models.ResourceType{99} },
			wantErr: ErrInvalidFilterCriteria,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreate()
			tt.mutate(&req)

			err := v.Validate(ctx, req)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRequestValidator_PointerAndFields(t *testing.T) {
	v := NewRequestValidator(nil)
	req := validCreate()
	req.Content = nil

	require.NoError(t, v.Validate(context.Background(), &req, FieldRequestID, FieldOriginator))
	assert.ErrorIs(t, v.Validate(context.Background(), &req, FieldContent), ErrEmptyContent)
	assert.ErrorIs(t, v.Validate(context.Background(), &req, "bogus"), ErrUnknownField)
}

func TestRequestValidator_AnyReleaseWhenUnconfigured(t *testing.T) {
	v := NewRequestValidator(nil)
	req := validCreate()
	req.ReleaseVersion = "99"

	assert.NoError(t, v.Validate(context.Background(), req))
}

func TestRequestValidator_UnsupportedType(t *testing.T) {
	v := NewRequestValidator(nil)
	assert.ErrorIs(t, v.Validate(context.Background(), "request"), ErrUnsupportedType)
}
