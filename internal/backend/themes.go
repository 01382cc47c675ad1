package backend

import (
	"context"
	"fmt"
	"net/http"

	"tribute-portal/internal/models"
)

func (c *Client) Themes(ctx context.Context) ([]models.Theme, error) {
	var out []models.Theme
	if err := c.get(ctx, "/themes", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Theme(ctx context.Context, id int64) (*models.Theme, error) {
	var out models.Theme
	if err := c.get(ctx, fmt.Sprintf("/themes/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveTheme creates the theme when it has no id yet, otherwise replaces it.
func (c *Client) SaveTheme(ctx context.Context, t models.Theme) (*models.Theme, error) {
	method, path := http.MethodPost, "/themes"
	if t.ID != 0 {
		method, path = http.MethodPut, fmt.Sprintf("/themes/%d", t.ID)
	}
	var out models.Theme
	if err := c.makeRequest(ctx, method, path, t, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
