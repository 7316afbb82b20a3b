// Package api is the HTTP client for the drink management system REST API.
package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ProjectName is set at build time - used for User-Agent
var ProjectName = "dms"

// Version is set at build time
var Version = "dev"

// Client is the API client for the drink management service.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewClient creates a new API client. timeout is in seconds; zero
// disables the client timeout.
func NewClient(baseURL, token string, timeout int) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTPClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
	}
}

// ProfileRef selects a profile either by numeric id or as the profile
// the token authenticates, without overloading the id parameter.
type ProfileRef struct {
	id      int
	current bool
}

// CurrentProfile refers to the profile owning the API token.
func CurrentProfile() ProfileRef { return ProfileRef{current: true} }

// ProfileByID refers to a profile by its numeric id.
func ProfileByID(id int) ProfileRef { return ProfileRef{id: id} }

func (r ProfileRef) path() string {
	if r.current {
		return "/profiles/current"
	}
	return fmt.Sprintf("/profiles/%d", r.id)
}

// Profiles fetches all profiles.
func (c *Client) Profiles() ([]Profile, error) {
	var profiles []Profile
	if err := c.get("/profiles/", &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// Profile fetches a single profile.
func (c *Client) Profile(ref ProfileRef) (*Profile, error) {
	if ref.current {
		// The service answers /profiles/current with a one-element
		// array instead of a single object.
		var profiles []Profile
		if err := c.get(ref.path(), &profiles); err != nil {
			return nil, err
		}
		if len(profiles) != 1 {
			return nil, fmt.Errorf("expected one current profile, got %d", len(profiles))
		}
		return &profiles[0], nil
	}
	var profile Profile
	if err := c.get(ref.path(), &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Products fetches all products.
func (c *Client) Products() ([]Product, error) {
	var products []Product
	if err := c.get("/products/", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Product fetches a single product by id.
func (c *Client) Product(id int) (*Product, error) {
	var product Product
	if err := c.get(fmt.Sprintf("/products/%d", id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Events fetches all events.
func (c *Client) Events() ([]Event, error) {
	var events []Event
	if err := c.get("/events/", &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Orders fetches open orders with profile and product references
// resolved.
func (c *Client) Orders() ([]SaleEntry, error) {
	var raws []rawSaleEntry
	if err := c.get("/order/", &raws); err != nil {
		return nil, err
	}
	return c.resolveSaleEntries(raws)
}

// SaleHistory fetches the sale history of the last days days. A
// non-positive days fetches the full history.
func (c *Client) SaleHistory(days int) ([]SaleEntry, error) {
	path := "/sale/"
	if days > 0 {
		path = fmt.Sprintf("/sale/%d", days)
	}
	var raws []rawSaleEntry
	if err := c.get(path, &raws); err != nil {
		return nil, err
	}
	return c.resolveSaleEntries(raws)
}

// Comments fetches all comments with profile references resolved.
func (c *Client) Comments() ([]Comment, error) {
	var raws []rawComment
	if err := c.get("/comments/", &raws); err != nil {
		return nil, err
	}
	profiles, err := c.Profiles()
	if err != nil {
		return nil, err
	}
	return buildComments(raws, profilesByID(profiles))
}

func (c *Client) resolveSaleEntries(raws []rawSaleEntry) ([]SaleEntry, error) {
	profiles, err := c.Profiles()
	if err != nil {
		return nil, err
	}
	products, err := c.Products()
	if err != nil {
		return nil, err
	}
	return buildSaleEntries(raws, profilesByID(profiles), productsByID(products))
}

// AddOrder creates one order pairing a product with a profile.
func (c *Client) AddOrder(productID, profileID int) error {
	return c.post("/order/", map[string]int{"profile": profileID, "product": productID})
}

// AddSale creates one sale pairing a product with a profile.
func (c *Client) AddSale(productID, profileID int) error {
	return c.post("/sale/", map[string]int{"profile": profileID, "product": productID})
}

// AddComment creates a comment owned by the given profile.
func (c *Client) AddComment(text string, profileID int) error {
	return c.post("/comments/", map[string]any{"profile": profileID, "comment": text})
}

// AddEvent creates an event.
func (c *Client) AddEvent(name, priceGroup string, active bool) error {
	return c.post("/events/", map[string]any{
		"name":        name,
		"price_group": priceGroup,
		"active":      active,
	})
}

func (c *Client) get(path string, out any) error {
	resp, err := c.doRequest("GET", path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) post(path string, body any) error {
	resp, err := c.doRequest("POST", path, body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *Client) doRequest(method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
		bodyReader = strings.NewReader(string(bodyBytes))
	}

	req, err := http.NewRequest(method, c.BaseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", fmt.Sprintf("%s-cli/%s", ProjectName, Version))
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Token "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode >= 400 {
		bodyData, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		// Surface the error body verbatim when the service sent one.
		if detail := strings.TrimSpace(string(bodyData)); detail != "" {
			return nil, fmt.Errorf("dms error %d: %s", resp.StatusCode, detail)
		}
		return nil, fmt.Errorf("dms error %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	return resp, nil
}
