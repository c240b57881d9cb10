// Package gateway holds thin HTTP clients for external payment-rail
// providers. Nothing here touches the ledger; callers sequence these calls
// outside the engine's critical section.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"wallet-ledger-service/config"
	"wallet-ledger-service/internal/core/ports"

	"github.com/rs/zerolog"
)

// BaniClient implements ports.RailGateway against the Bani partner API.
type BaniClient struct {
	baseURL    string
	token      string
	signature  string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewBaniClient creates a Bani API client.
func NewBaniClient(cfg config.GatewayConfig, log zerolog.Logger) *BaniClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &BaniClient{
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
		signature:  cfg.Signature,
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With().Str("component", "bani_gateway").Logger(),
	}
}

type addCustomerPayload struct {
	FirstName   string `json:"customer_first_name"`
	LastName    string `json:"customer_last_name"`
	Email       string `json:"customer_email"`
	Phone       string `json:"customer_phone"`
	LegalNumber string `json:"customer_legal_number,omitempty"`
}

type addCustomerResponse struct {
	CustomerRef string `json:"customer_ref"`
}

type openAccountPayload struct {
	CustomerRef string `json:"customer_ref"`
	AccountName string `json:"alternate_name"`
	Narration   string `json:"narration,omitempty"`
}

type openAccountResponse struct {
	AccountRef    string `json:"account_ref"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
	BankName      string `json:"bank_name"`
}

type payoutPayload struct {
	AccountNumber string `json:"receiver_account_num"`
	AccountName   string `json:"receiver_account_name"`
	BankCode      string `json:"receiver_sort_code"`
	Amount        int64  `json:"payout_amount"`
	Narration     string `json:"transfer_note,omitempty"`
}

type payoutResponse struct {
	PayoutRef string `json:"payout_ref"`
	Status    string `json:"payout_status"`
}

type kycPayload struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone_number"`
	DateOfBirth string `json:"date_of_birth"`
	IDType      string `json:"id_type"`
	IDNumber    string `json:"id_number"`
	IDCountry   string `json:"id_country"`
}

type kycResponse struct {
	VerificationRef string `json:"verification_ref"`
}

// ProvisionAccount registers the holder as a customer, then opens a virtual
// collection account for them. Two calls; if the second fails the customer
// registration is harmless to repeat.
func (c *BaniClient) ProvisionAccount(ctx context.Context, req ports.ProvisionRequest) (*ports.ProvisionedAccount, error) {
	var customer addCustomerResponse
	err := c.post(ctx, "/partner/collection/add_my_customer/", addCustomerPayload{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.PhoneNumber,
		LegalNumber: req.LegalNumber,
	}, &customer)
	if err != nil {
		return nil, fmt.Errorf("add customer: %w", err)
	}

	var account openAccountResponse
	err = c.post(ctx, "/partner/collection/bank_account/", openAccountPayload{
		CustomerRef: customer.CustomerRef,
		AccountName: req.BusinessName,
		Narration:   req.Narration,
	}, &account)
	if err != nil {
		return nil, fmt.Errorf("open collection account: %w", err)
	}

	return &ports.ProvisionedAccount{
		Reference:     account.AccountRef,
		AccountNumber: account.AccountNumber,
		AccountName:   account.AccountName,
		BankName:      account.BankName,
	}, nil
}

// SendToBank initiates an outbound transfer to an external bank account.
func (c *BaniClient) SendToBank(ctx context.Context, accountNumber, accountName, bankCode string, amount int64, narration string) (*ports.TransferReceipt, error) {
	var payout payoutResponse
	err := c.post(ctx, "/partner/payout/initiate/", payoutPayload{
		AccountNumber: accountNumber,
		AccountName:   accountName,
		BankCode:      bankCode,
		Amount:        amount,
		Narration:     narration,
	}, &payout)
	if err != nil {
		return nil, fmt.Errorf("initiate payout: %w", err)
	}
	return &ports.TransferReceipt{Reference: payout.PayoutRef, Status: payout.Status}, nil
}

// SubmitKYC forwards an identity profile for verification.
func (c *BaniClient) SubmitKYC(ctx context.Context, profile ports.KYCProfile) (string, error) {
	var res kycResponse
	err := c.post(ctx, "/partner/kyc/verify/", kycPayload{
		FirstName:   profile.FirstName,
		LastName:    profile.LastName,
		Email:       profile.Email,
		Phone:       profile.PhoneNumber,
		DateOfBirth: profile.DateOfBirth,
		IDType:      profile.IDType,
		IDNumber:    profile.IDNumber,
		IDCountry:   profile.IDCountry,
	}, &res)
	if err != nil {
		return "", fmt.Errorf("submit kyc: %w", err)
	}
	return res.VerificationRef, nil
}

func (c *BaniClient) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("moni-signature", c.signature)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	c.log.Info().
		Str("path", path).
		Int("status", resp.StatusCode).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("gateway response received")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
