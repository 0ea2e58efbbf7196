package ports

import (
	"context"

	"orderhub/internal/core/domain/model/kernel"
)

// PaymentAuthorizer is the contract to the external payment collaborator.
// Authorization runs after the pending order is committed and outside any
// database transaction, so a slow gateway never holds a connection open.
type PaymentAuthorizer interface {
	// Authorize requests an authorization hold for the given amount.
	// A decline is reported as (false, nil); transport or gateway faults
	// are reported as an UpstreamFailureError.
	Authorize(ctx context.Context, orderID kernel.UUID, amount kernel.Money) (bool, error)
}
