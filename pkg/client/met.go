package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/arcivia/arcivia-explore/pkg/heritage"
	"github.com/tidwall/gjson"
)

// DateRange bounds a search by object date. Negative years are BC.
type DateRange struct {
	Begin int
	End   int
}

// SearchParams describes a GET /search request. hasImages=true is always sent.
type SearchParams struct {
	Query string

	// HighlightOnly restricts results to highlighted objects.
	HighlightOnly bool

	// ArtistOrCulture matches Query against artist and culture fields only.
	ArtistOrCulture bool

	DateRange *DateRange
}

// Values encodes the parameters as a query string.
func (p SearchParams) Values() url.Values {
	v := url.Values{}
	v.Set("hasImages", "true")
	if p.HighlightOnly {
		v.Set("isHighlight", "true")
	}
	if p.ArtistOrCulture {
		v.Set("artistOrCulture", "true")
	}
	if p.DateRange != nil {
		v.Set("dateBegin", strconv.Itoa(p.DateRange.Begin))
		v.Set("dateEnd", strconv.Itoa(p.DateRange.End))
	}
	v.Set("q", p.Query)
	return v
}

// Department is one upstream curatorial department.
type Department struct {
	ID          int    `json:"departmentId"`
	DisplayName string `json:"displayName"`
}

// Get performs a GET request against a path relative to the base URL.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	return c.Do(req)
}

// getBody fetches path and returns the body of a 200 response.
// Any other status is returned as *APIError.
func (c *Client) getBody(ctx context.Context, path string, query url.Values) ([]byte, error) {
	resp, err := c.Get(ctx, path, query)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			ErrorClass: classifyStatus(resp.StatusCode),
			Message:    resp.Status,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return body, nil
}

// ListObjectIDs returns every object ID in a department.
func (c *Client) ListObjectIDs(ctx context.Context, departmentID int) ([]int, error) {
	query := url.Values{"departmentIds": []string{strconv.Itoa(departmentID)}}

	body, err := c.getBody(ctx, "/objects", query)
	if err != nil {
		return nil, fmt.Errorf("list department %d: %w", departmentID, err)
	}
	return parseObjectIDs(body)
}

// Search returns the object IDs matching p.
func (c *Client) Search(ctx context.Context, p SearchParams) ([]int, error) {
	body, err := c.getBody(ctx, "/search", p.Values())
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", p.Query, err)
	}
	return parseObjectIDs(body)
}

// GetObject fetches and decodes one object record.
func (c *Client) GetObject(ctx context.Context, id int) (heritage.Record, error) {
	body, err := c.getBody(ctx, "/objects/"+strconv.Itoa(id), nil)
	if err != nil {
		return heritage.Record{}, fmt.Errorf("get object %d: %w", id, err)
	}

	rec, err := heritage.ParseRecord(body)
	if err != nil {
		return heritage.Record{}, fmt.Errorf("get object %d: %w", id, err)
	}
	return rec, nil
}

// Departments lists the upstream departments.
func (c *Client) Departments(ctx context.Context) ([]Department, error) {
	body, err := c.getBody(ctx, "/departments", nil)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("list departments: invalid json")
	}

	var departments []Department
	gjson.GetBytes(body, "departments").ForEach(func(_, d gjson.Result) bool {
		departments = append(departments, Department{
			ID:          int(d.Get("departmentId").Int()),
			DisplayName: d.Get("displayName").String(),
		})
		return true
	})
	return departments, nil
}

// parseObjectIDs extracts the objectIDs array; a null array yields no IDs.
func parseObjectIDs(body []byte) ([]int, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("parse object ids: invalid json")
	}

	raw := gjson.GetBytes(body, "objectIDs").Array()
	ids := make([]int, 0, len(raw))
	for _, v := range raw {
		ids = append(ids, int(v.Int()))
	}
	return ids, nil
}
