// Package mtd is a thin, read-only client for the HMRC Make Tax
// Digital API surfaces the tool consumes.
package mtd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	semver "github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Version is the client version reported in fraud-prevention headers.
const Version = "0.9.0"

// Each API family is versioned independently; the version is carried in
// the Accept header of every request.
var (
	obligationsAPIVersion  = semver.MustParse("2.0")
	calculationsAPIVersion = semver.MustParse("2.0")
	selfAssessmentVersion  = semver.MustParse("1.0")
)

// Config carries the per-user values every request needs.
type Config struct {
	BaseURL      string
	AccessToken  string
	NINO         string
	BusinessID   string
	BusinessType string
}

// Client issues authenticated GETs against the MTD API, retrying
// transient failures with a Fibonacci back-off.
type Client struct {
	cfg Config
	hc  *http.Client
	log zerolog.Logger

	// back-off time unit, shortened in tests
	backoffUnit time.Duration
}

// New returns a ready Client.
func New(cfg Config) *Client {
	return &Client{
		cfg:         cfg,
		hc:          &http.Client{Timeout: 30 * time.Second},
		log:         log.With().Str("component", "mtd").Logger(),
		backoffUnit: time.Second,
	}
}

// APIError is a non-2xx response from the API, carrying the code and
// message HMRC returns in the body when there is one.
type APIError struct {
	StatusCode int

	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("mtd: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("mtd: HTTP %d: %s: %s", e.StatusCode, e.Code, e.Message)
}

const maxAttempts = 5

func retryable(status int) bool {
	return status == http.StatusTooManyRequests ||
		status >= http.StatusInternalServerError
}

func acceptHeader(v *semver.Version) string {
	return fmt.Sprintf("application/vnd.hmrc.%d.%d+json", v.Major(), v.Minor())
}

func (c *Client) get(ctx context.Context, path string, version *semver.Version, out any) error {
	var fib fibonacci

	for attempt := 1; ; attempt++ {
		err := c.do(ctx, path, version, out)

		var apiErr *APIError
		if err == nil || attempt == maxAttempts ||
			!errors.As(err, &apiErr) || !retryable(apiErr.StatusCode) {
			return err
		}

		delay := time.Duration(fib.next()) * c.backoffUnit
		c.log.Debug().Str("path", path).Int("attempt", attempt).
			Dur("backoff", delay).Msg("retrying request")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}

func (c *Client) do(ctx context.Context, path string, version *semver.Version, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.cfg.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("mtd: building request: %w", err)
	}

	req.Header.Set("Accept", acceptHeader(version))
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	req.Header.Set("User-Agent", "itsa/"+Version)
	req.Header.Set("Gov-Client-Connection-Method", "OTHER_DIRECT")

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("mtd: %w", err)
	}
	defer resp.Body.Close()

	c.log.Debug().Str("path", path).Int("status", resp.StatusCode).
		Msg("request")

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("mtd: decoding response: %w", err)
	}
	return nil
}

// Obligations returns the periodic update obligations for the
// configured business, optionally restricted to the from/to date range
// (YYYY-MM-DD).
func (c *Client) Obligations(ctx context.Context, from, to string) ([]Obligation, error) {
	q := url.Values{}
	q.Set("typeOfBusiness", c.cfg.BusinessType)
	q.Set("businessId", c.cfg.BusinessID)
	if from != "" {
		q.Set("fromDate", from)
		q.Set("toDate", to)
	}

	var res struct {
		Obligations []struct {
			Details []Obligation `json:"obligationDetails"`
		} `json:"obligations"`
	}
	err := c.get(ctx, "/obligations/details/"+c.cfg.NINO+
		"/income-and-expenditure?"+q.Encode(), obligationsAPIVersion, &res)
	if err != nil {
		return nil, err
	}

	if len(res.Obligations) == 0 {
		return nil, nil
	}
	return res.Obligations[0].Details, nil
}

// Calculations lists the user's triggered calculations, optionally for
// a single tax year ("2021-22").
func (c *Client) Calculations(ctx context.Context, taxYear string) ([]Calculation, error) {
	path := "/individuals/calculations/" + c.cfg.NINO + "/self-assessment"
	if taxYear != "" {
		q := url.Values{}
		q.Set("taxYear", taxYear)
		path += "?" + q.Encode()
	}

	var res struct {
		Calculations []Calculation `json:"calculations"`
	}
	if err := c.get(ctx, path, calculationsAPIVersion, &res); err != nil {
		return nil, err
	}
	return res.Calculations, nil
}

// SavingsAccounts lists the user's savings accounts. A 404 means none
// exist yet and is returned as an empty list.
func (c *Client) SavingsAccounts(ctx context.Context) ([]SavingsAccount, error) {
	var res struct {
		SavingsAccounts []SavingsAccount `json:"savingsAccounts"`
	}
	err := c.get(ctx, "/self-assessment/ni/"+c.cfg.NINO+"/savings-accounts",
		selfAssessmentVersion, &res)

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return res.SavingsAccounts, nil
}
