package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/mleonec/notibot/config"
)

// Client is a minimal Notion REST API client covering the database query
// endpoint the bot polls.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	databaseID string
	version    string
}

func NewClient(cfg *config.NotionConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		databaseID: cfg.DatabaseID,
		version:    cfg.Version,
	}
}

// QueryEvents fetches every page of the event database with Date on or
// after `since` (YYYY-MM-DD), ascending by date. Pagination cursors are
// followed until has_more is false, so the caller always sees the full
// current event list in source order.
func (c *Client) QueryEvents(ctx context.Context, since string, pageSize int) ([]Page, error) {
	var pages []Page
	cursor := ""

	for {
		req := queryRequest{
			Filter: &queryFilter{
				Property: "Date",
				Date:     queryDateFilter{OnOrAfter: since},
			},
			Sorts: []querySort{
				{Property: "Date", Direction: "ascending"},
			},
			StartCursor: cursor,
			PageSize:    pageSize,
		}

		resp, err := c.query(ctx, &req)
		if err != nil {
			return nil, err
		}

		pages = append(pages, resp.Results...)

		if !resp.HasMore || resp.NextCursor == nil {
			return pages, nil
		}
		cursor = *resp.NextCursor
	}
}

func (c *Client) query(ctx context.Context, req *queryRequest) (*queryResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/databases/%s/query", c.baseURL, c.databaseID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Notion-Version", c.version)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("notion query failed: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(httpResp.Body, 4096))
		return nil, fmt.Errorf("notion API error: %s: %s", httpResp.Status, string(data))
	}

	var resp queryResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode notion response: %w", err)
	}

	return &resp, nil
}
