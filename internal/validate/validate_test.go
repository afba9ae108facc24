package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity,omitempty" validate:"gte=1"`
	Note      string `validate:"max=3"`
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		in      sample
		wantErr string
	}{
		{name: "valid", in: sample{ProductID: "p1", Quantity: 2}},
		{name: "missing product", in: sample{Quantity: 2}, wantErr: "productId is a required field"},
		{name: "zero quantity", in: sample{ProductID: "p1"}, wantErr: "quantity must be 1 or greater"},
		{name: "untagged field", in: sample{ProductID: "p1", Quantity: 1, Note: "long"}, wantErr: "Note must be a maximum of 3 characters in length"},
		{name: "every failure", in: sample{}, wantErr: "productId is a required field; quantity must be 1 or greater"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.in)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.EqualError(t, err, tt.wantErr)
		})
	}
}
