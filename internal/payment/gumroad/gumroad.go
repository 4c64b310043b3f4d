package gumroad

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/kiwi13nz/AgentFlow/internal/payment"
	"github.com/kiwi13nz/AgentFlow/internal/utils"
)

var (
	ErrNotConfigured    = errors.New("gumroad seller id not configured")
	ErrUnknownSeller    = errors.New("sale notification from unknown seller")
	ErrIncompleteParams = errors.New("sale notification missing required parameters")
)

// GumroadDriver verifies Gumroad sale pings. The SPA attaches agent_id and
// credits as custom URL parameters when it opens the product page, and
// Gumroad echoes them back in the ping.
type GumroadDriver struct {
	SellerID  string
	VerifyURL string
	client    *http.Client
}

func NewGumroadDriver(sellerID, verifyURL string) *GumroadDriver {
	return &GumroadDriver{
		SellerID:  sellerID,
		VerifyURL: verifyURL,
		client:    utils.NewHTTPClient(30 * time.Second),
	}
}

func (d *GumroadDriver) Verify(params map[string]string) (*payment.Sale, error) {
	if d.SellerID == "" {
		return nil, ErrNotConfigured
	}
	if params["seller_id"] != d.SellerID {
		return nil, ErrUnknownSeller
	}

	saleID := params["sale_id"]
	email := params["email"]
	agentID := params["url_params[agent_id]"]
	creditsStr := params["url_params[credits]"]
	if saleID == "" || email == "" || agentID == "" || creditsStr == "" {
		return nil, ErrIncompleteParams
	}

	credits, err := strconv.Atoi(creditsStr)
	if err != nil || credits <= 0 {
		return nil, fmt.Errorf("%w: bad credits value %q", ErrIncompleteParams, creditsStr)
	}

	amount, _ := strconv.ParseFloat(params["price"], 64)
	// Gumroad reports price in cents
	amount = amount / 100

	if err := d.confirmSale(saleID); err != nil {
		return nil, err
	}

	return &payment.Sale{
		SaleID:  saleID,
		Email:   email,
		AgentID: agentID,
		Credits: credits,
		Amount:  amount,
	}, nil
}

// confirmSale checks the sale against the Gumroad API so forged pings
// cannot mint credits.
func (d *GumroadDriver) confirmSale(saleID string) error {
	if d.VerifyURL == "" {
		return errors.New("gumroad verify url not configured")
	}

	resp, err := d.client.PostForm(d.VerifyURL, url.Values{
		"seller_id": {d.SellerID},
		"sale_id":   {saleID},
	})
	if err != nil {
		return fmt.Errorf("gumroad verification request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("gumroad verification error: %s", resp.Status)
	}

	var body struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("gumroad verification: bad response: %v", err)
	}
	if !body.Success {
		return errors.New("gumroad rejected the sale")
	}
	return nil
}
