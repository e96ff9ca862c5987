package zoho

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/selec-labs/selecbot/pkg/domain/interfaces"
	"github.com/selec-labs/selecbot/pkg/domain/model"
	"github.com/selec-labs/selecbot/pkg/domain/types"
	"github.com/selec-labs/selecbot/pkg/utils/logging"
)

// Client submits completed intake flows to the CRM over its REST API.
// Quote requests become a Deal attached to an Account looked up (or
// created) by tax id; after-sales requests become a Case.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	accountsURL string

	clientID     string
	clientSecret string
	refreshToken string

	// ownerID, when set, gets a follow-up Task for each submission
	ownerID string

	now func() time.Time

	tokenMu     sync.Mutex
	token       string
	tokenExpiry time.Time
}

var _ interfaces.CRM = (*Client)(nil)

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithOwner sets the CRM user who receives a follow-up task per submission
func WithOwner(ownerID string) Option {
	return func(c *Client) {
		c.ownerID = ownerID
	}
}

// WithClock replaces the time source used for token expiry
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// New creates a CRM client. baseURL is the API origin (e.g.
// https://www.zohoapis.com), accountsURL the OAuth accounts server.
func New(baseURL, accountsURL, clientID, clientSecret, refreshToken string, opts ...Option) (*Client, error) {
	if baseURL == "" || accountsURL == "" {
		return nil, goerr.New("CRM base URL and accounts URL are required")
	}
	if clientID == "" || clientSecret == "" || refreshToken == "" {
		return nil, goerr.New("CRM OAuth client id, secret and refresh token are required")
	}

	c := &Client{
		httpClient:   http.DefaultClient,
		baseURL:      baseURL,
		accountsURL:  accountsURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		refreshToken: refreshToken,
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// SubmitQuote registers a quote request as a Deal under the customer
// Account, creating the Account first when the tax id is unknown.
func (c *Client) SubmitQuote(ctx context.Context, sub *model.Submission) error {
	company := sub.Field(types.FieldCompany)
	taxID := sub.Field(types.FieldTaxID)

	accountID, err := c.ensureAccount(ctx, company, taxID, sub)
	if err != nil {
		return err
	}

	deal := map[string]any{
		"Deal_Name":   fmt.Sprintf("Cotización %s", company),
		"Stage":       "Qualification",
		"Description": sub.Summary,
	}
	if accountID != "" {
		deal["Account_Name"] = map[string]any{"id": accountID}
	}

	dealID, err := c.createRecord(ctx, "Deals", deal)
	if err != nil {
		return goerr.Wrap(err, "failed to create deal", goerr.V("submission_id", sub.ID))
	}

	logging.From(ctx).Info("created CRM deal",
		"deal_id", dealID,
		"account_id", accountID,
		"submission_id", sub.ID,
	)

	return c.notifyOwner(ctx, "Deals", dealID, fmt.Sprintf("Nueva cotización de %s", company))
}

// SubmitAfterSales registers an after-sales request as a Case
func (c *Client) SubmitAfterSales(ctx context.Context, sub *model.Submission) error {
	name := sub.Field(types.FieldName)
	invoice := sub.Field(types.FieldInvoiceNumber)

	caseRecord := map[string]any{
		"Subject":     fmt.Sprintf("Postventa %s (factura %s)", name, invoice),
		"Status":      "New",
		"Description": sub.Summary,
	}

	caseID, err := c.createRecord(ctx, "Cases", caseRecord)
	if err != nil {
		return goerr.Wrap(err, "failed to create case", goerr.V("submission_id", sub.ID))
	}

	logging.From(ctx).Info("created CRM case",
		"case_id", caseID,
		"submission_id", sub.ID,
	)

	return c.notifyOwner(ctx, "Cases", caseID, fmt.Sprintf("Nuevo caso de postventa de %s", name))
}

// ensureAccount returns the Account id for the tax id, creating the
// Account when the search comes back empty. With no tax id the deal is
// created unattached rather than failing the submission.
func (c *Client) ensureAccount(ctx context.Context, company, taxID string, sub *model.Submission) (string, error) {
	if taxID == "" {
		return "", nil
	}

	accountID, err := c.searchAccount(ctx, taxID)
	if err != nil {
		return "", err
	}
	if accountID != "" {
		return accountID, nil
	}

	accountName := company
	if accountName == "" {
		accountName = taxID
	}

	account := map[string]any{
		"Account_Name": accountName,
		"Tax_Id":       taxID,
	}
	if v := sub.Field(types.FieldPhone); v != "" {
		account["Phone"] = v
	}
	if v := sub.Field(types.FieldLineOfBusiness); v != "" {
		account["Industry"] = v
	}
	if v := sub.Field(types.FieldDeliveryAddress); v != "" {
		account["Shipping_Street"] = v
	}

	accountID, err = c.createRecord(ctx, "Accounts", account)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create account", goerr.V("tax_id", taxID))
	}

	return accountID, nil
}

// searchAccount looks up an Account by tax id. An empty result is not an
// error; the API signals it with HTTP 204.
func (c *Client) searchAccount(ctx context.Context, taxID string) (string, error) {
	criteria := fmt.Sprintf("(Tax_Id:equals:%s)", taxID)
	endpoint := c.baseURL + "/crm/v2/Accounts/search?criteria=" + url.QueryEscape(criteria)

	resp, err := c.doAuthorized(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent:
		return "", nil
	case http.StatusOK:
		var result searchResponse
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return "", goerr.Wrap(err, "failed to decode account search response")
		}
		if len(result.Data) == 0 {
			return "", nil
		}
		return result.Data[0].ID, nil
	default:
		return "", goerr.New("unexpected status from account search",
			goerr.V("status", resp.StatusCode))
	}
}

// createRecord POSTs one record to the given CRM module and returns the
// new record id.
func (c *Client) createRecord(ctx context.Context, module string, record map[string]any) (string, error) {
	body, err := json.Marshal(recordEnvelope{Data: []map[string]any{record}})
	if err != nil {
		return "", goerr.Wrap(err, "failed to encode record", goerr.V("module", module))
	}

	resp, err := c.doAuthorized(ctx, http.MethodPost, c.baseURL+"/crm/v2/"+module, body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", goerr.New("unexpected status from record create",
			goerr.V("module", module), goerr.V("status", resp.StatusCode))
	}

	var result createResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", goerr.Wrap(err, "failed to decode create response", goerr.V("module", module))
	}
	if len(result.Data) == 0 {
		return "", goerr.New("empty create response", goerr.V("module", module))
	}
	if result.Data[0].Code != "SUCCESS" {
		return "", goerr.New("record create rejected",
			goerr.V("module", module),
			goerr.V("code", result.Data[0].Code),
			goerr.V("message", result.Data[0].Message))
	}

	var details recordDetails
	if err := json.Unmarshal(result.Data[0].Details, &details); err != nil {
		return "", goerr.Wrap(err, "failed to decode record details", goerr.V("module", module))
	}

	return details.ID, nil
}

// notifyOwner creates a follow-up Task for the configured owner. A task
// failure is logged but does not fail the submission: the record itself
// is already in the CRM.
func (c *Client) notifyOwner(ctx context.Context, module, recordID, subject string) error {
	if c.ownerID == "" {
		return nil
	}

	task := map[string]any{
		"Subject": subject,
		"Status":  "Not Started",
		"Owner":   map[string]any{"id": c.ownerID},
		"What_Id": map[string]any{"id": recordID},
	}

	if _, err := c.createRecord(ctx, "Tasks", task); err != nil {
		logging.From(ctx).Warn("failed to create follow-up task",
			"module", module,
			"record_id", recordID,
			"error", err,
		)
	}

	return nil
}

func (c *Client) doAuthorized(ctx context.Context, method, endpoint string, body []byte) (*http.Response, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build CRM request", goerr.V("endpoint", endpoint))
	}
	req.Header.Set("Authorization", "Zoho-oauthtoken "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to call CRM", goerr.V("endpoint", endpoint))
	}

	return resp, nil
}
