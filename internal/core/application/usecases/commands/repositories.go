// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"orderhub/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// MenuRepoFactory provides access to the catalog read model within a transaction.
	MenuRepoFactory interface {
		MenuRepository() ports.MenuRepository
	}

	// RestaurantRepoFactory provides access to restaurant records within a transaction.
	RestaurantRepoFactory interface {
		RestaurantRepository() ports.RestaurantRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only modify order aggregates.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// SubmitOrderUoW manages transactions for order submission, which checks
	// the restaurant, reads the catalog, and writes the order within one
	// consistent snapshot.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   _, err = uow.RestaurantRepository().Get(ctx, restaurantID)
	//   items, err := uow.MenuRepository().GetItems(ctx, restaurantID, ids)
	//   // ... validate and build the order
	//   err = uow.OrderRepository().Add(ctx, order)
	//
	//   err = uow.Commit(ctx)
	SubmitOrderUoW interface {
		TxManager
		OrderRepoFactory
		MenuRepoFactory
		RestaurantRepoFactory
	}

	// SubmitOrderUoWFactory creates new submission unit of work instances.
	SubmitOrderUoWFactory interface {
		Create() SubmitOrderUoW
	}
)
