package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	other := errors.New("connection reset")
	tests := []struct {
		name string
		in   error
		want error
	}{
		{name: "nil", in: nil, want: nil},
		{name: "missing row", in: gorm.ErrRecordNotFound, want: ErrNotFound},
		{name: "duplicate", in: gorm.ErrDuplicatedKey, want: ErrConflict},
		{name: "foreign key", in: fmt.Errorf("insert: %w", gorm.ErrForeignKeyViolated), want: ErrInvalidInput},
		{name: "passthrough", in: other, want: other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translate(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}
