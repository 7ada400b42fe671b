package domain

import "github.com/mroy35034/woo-com-server/internal/data/entity"

var itemTransitions = map[entity.ItemStatus][]entity.ItemStatus{
	entity.ItemPlaced:    {entity.ItemDispatch, entity.ItemCanceled},
	entity.ItemDispatch:  {entity.ItemShipped, entity.ItemCanceled},
	entity.ItemShipped:   {entity.ItemCompleted},
	entity.ItemCompleted: {entity.ItemRefunded},
}

// CanTransition reports whether an order item may move from one status to another.
func CanTransition(from, to entity.ItemStatus) bool {
	for _, next := range itemTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// RestoresStock reports whether moving to status puts the units back on sale.
func RestoresStock(status entity.ItemStatus) bool {
	return status == entity.ItemCanceled
}

// PreviousStatuses lists every status an item may move to status from.
func PreviousStatuses(status entity.ItemStatus) []entity.ItemStatus {
	var out []entity.ItemStatus
	for _, from := range []entity.ItemStatus{
		entity.ItemPlaced, entity.ItemDispatch, entity.ItemShipped, entity.ItemCompleted,
	} {
		if CanTransition(from, status) {
			out = append(out, from)
		}
	}
	return out
}
