package upstream

import (
	"context"
	"fmt"
	"time"
)

// AccountInfo is the user-identity service's view of a local user.
type AccountInfo struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	GlobalAdmin    bool      `json:"global_admin"`
	ServiceAccount bool      `json:"service_account"`
	CreatedAt      time.Time `json:"created_at"`
}

// AccountInfoByID fetches account details for the given local user id.
func (c *Client) AccountInfoByID(ctx context.Context, userID, targetID int64) (*AccountInfo, error) {
	var resp AccountInfo
	url := fmt.Sprintf("%s/api/users/%d/", c.userBase, targetID)
	if err := c.getJSON(ctx, userID, "account info", url, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type globalAdminResponse struct {
	IsGlobalAdmin bool `json:"is_global_admin"`
}

// IsGlobalAdmin asks the user-identity service whether the given local user
// holds the global admin role.
func (c *Client) IsGlobalAdmin(ctx context.Context, userID, targetID int64) (bool, error) {
	var resp globalAdminResponse
	url := fmt.Sprintf("%s/api/users/%d/is_global_admin/", c.userBase, targetID)
	if err := c.getJSON(ctx, userID, "global admin check", url, nil, &resp); err != nil {
		return false, err
	}
	return resp.IsGlobalAdmin, nil
}
