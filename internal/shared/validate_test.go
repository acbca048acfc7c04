package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name  string  `json:"name" validate:"notblank,max=5"`
	Count int     `json:"count" validate:"gte=0"`
	Ref   int64   `json:"ref" validate:"required,gt=0"`
	Mode  string  `json:"mode" validate:"omitempty,oneof=a b"`
	Note  *string `json:"note" validate:"omitempty,max=3"`
}

func TestValidateStructReportsJSONFieldName(t *testing.T) {
	tests := []struct {
		name   string
		req    sampleRequest
		field  string
		reason string
	}{
		{"blank name", sampleRequest{Name: "   ", Ref: 1}, "name", "is required"},
		{"long name", sampleRequest{Name: "toolong", Ref: 1}, "name", "must be at most 5 characters"},
		{"negative count", sampleRequest{Name: "ok", Count: -1, Ref: 1}, "count", "must be greater than or equal to 0"},
		{"missing ref", sampleRequest{Name: "ok"}, "ref", "is required"},
		{"negative ref", sampleRequest{Name: "ok", Ref: -2}, "ref", "must be greater than 0"},
		{"bad mode", sampleRequest{Name: "ok", Ref: 1, Mode: "c"}, "mode", "must be one of a b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.req)
			require.Error(t, err)
			var fieldErr *FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.field, fieldErr.Field)
			assert.Equal(t, tt.reason, fieldErr.Reason)
		})
	}
}

func TestValidateStructAcceptsValid(t *testing.T) {
	note := "hi"
	assert.NoError(t, ValidateStruct(sampleRequest{Name: "ok", Ref: 1, Mode: "a", Note: &note}))
}
