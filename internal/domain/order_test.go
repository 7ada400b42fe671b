package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mroy35034/woo-com-server/internal/data/entity"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to entity.ItemStatus
		want     bool
	}{
		{entity.ItemPlaced, entity.ItemDispatch, true},
		{entity.ItemPlaced, entity.ItemCanceled, true},
		{entity.ItemDispatch, entity.ItemShipped, true},
		{entity.ItemShipped, entity.ItemCompleted, true},
		{entity.ItemCompleted, entity.ItemRefunded, true},
		{entity.ItemPlaced, entity.ItemCompleted, false},
		{entity.ItemShipped, entity.ItemCanceled, false},
		{entity.ItemCanceled, entity.ItemPlaced, false},
		{entity.ItemRefunded, entity.ItemCompleted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestPreviousStatuses(t *testing.T) {
	assert.Equal(t, []entity.ItemStatus{entity.ItemPlaced, entity.ItemDispatch}, PreviousStatuses(entity.ItemCanceled))
	assert.Equal(t, []entity.ItemStatus{entity.ItemCompleted}, PreviousStatuses(entity.ItemRefunded))
	assert.Empty(t, PreviousStatuses(entity.ItemPlaced))
}
