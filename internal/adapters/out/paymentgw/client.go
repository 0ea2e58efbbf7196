// Package paymentgw implements the payment authorizer against the external
// gateway's HTTP API. The adapter distinguishes a decline, which is a valid
// business answer, from a fault, which leaves the payment outcome unknown.
package paymentgw

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/pkg/errs"
)

const defaultTimeout = 10 * time.Second

// authorizeRequest is the gateway's authorization hold request body.
type authorizeRequest struct {
	OrderID string `json:"orderId"`
	Amount  int64  `json:"amount"`
}

// authorizeResponse is the gateway's answer to an authorization request.
type authorizeResponse struct {
	Authorized bool   `json:"authorized"`
	Reason     string `json:"reason,omitempty"`
}

// HTTPPaymentAuthorizer requests authorization holds from the payment
// gateway over HTTP.
//
// Example:
//
//	authorizer := NewHTTPPaymentAuthorizer(cfg.PaymentGatewayURL, logger)
//
//	authorized, err := authorizer.Authorize(ctx, orderID, total)
//	if err != nil {
//	    // gateway unreachable; the payment outcome is unknown
//	    return err
//	}
//	if !authorized {
//	    // the card was declined
//	}
type HTTPPaymentAuthorizer struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewHTTPPaymentAuthorizer creates an authorizer talking to the gateway at
// baseURL.
func NewHTTPPaymentAuthorizer(baseURL string, logger *slog.Logger) *HTTPPaymentAuthorizer {
	return &HTTPPaymentAuthorizer{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultTimeout},
		logger:  logger.With("component", "payment_gateway"),
	}
}

// Authorize requests an authorization hold for the order total.
// A decline is (false, nil). Transport errors, 5xx answers, and undecodable
// bodies are UpstreamFailureErrors: the caller must treat the outcome as
// unknown, not as declined.
func (a *HTTPPaymentAuthorizer) Authorize(
	ctx context.Context,
	orderID kernel.UUID,
	amount kernel.Money,
) (bool, error) {
	if err := orderID.Validate(); err != nil {
		return false, err
	}

	body, err := json.Marshal(authorizeRequest{
		OrderID: orderID.String(),
		Amount:  amount.Amount(),
	})
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.baseURL+"/v1/authorizations", bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return false, errs.NewUpstreamFailureError("payment", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return false, errs.NewUpstreamFailureError("payment",
			fmt.Errorf("gateway returned status %d", resp.StatusCode))
	}

	var answer authorizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return false, errs.NewUpstreamFailureError("payment", err)
	}

	if !answer.Authorized {
		a.logger.InfoContext(ctx, "payment declined",
			"order_id", orderID.String(),
			"reason", answer.Reason)
	}

	return answer.Authorized, nil
}
