package upstream

import (
	"context"
	"fmt"
	"net/url"
)

// Organization is a node of the university directory: either a leaf unit with
// contact details or a group holding subunits.
type Organization struct {
	Type     string                  `json:"type"` // unit | group
	Name     string                  `json:"name"`
	Phone    string                  `json:"phone,omitempty"`
	URL      string                  `json:"url,omitempty"`
	Subunits map[string]Organization `json:"subunits,omitempty"`
}

const (
	OrgUnit  = "unit"
	OrgGroup = "group"
)

type organizationTree struct {
	Type string       `json:"type"`
	Root Organization `json:"root"`
}

// OrganizationTree fetches the full directory.
func (c *Client) OrganizationTree(ctx context.Context, userID int64) (*Organization, error) {
	var resp organizationTree
	if err := c.getJSON(ctx, userID, "organization tree", c.staticInfoBase+"/organization/tree", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Root, nil
}

// OrganizationByName looks a directory entry up by name. Returns nil when the
// directory has no such entry.
func (c *Client) OrganizationByName(ctx context.Context, userID int64, name string) (*Organization, error) {
	var resp Organization
	err := c.getJSON(ctx, userID, "organization lookup",
		c.staticInfoBase+"/organization/"+url.PathEscape(name), nil, &resp)
	if err != nil {
		if StatusCode(err) == 404 {
			return nil, nil
		}
		return nil, err
	}
	if resp.Type != OrgUnit && resp.Type != OrgGroup {
		return nil, fmt.Errorf("unknown organization type %q", resp.Type)
	}
	return &resp, nil
}

type shuttleImagesResponse struct {
	ImageURLs []string `json:"image_urls"`
}

// ShuttleImages fetches the shuttle bus timetable image links.
func (c *Client) ShuttleImages(ctx context.Context, userID int64) ([]string, error) {
	var resp shuttleImagesResponse
	if err := c.getJSON(ctx, userID, "shuttle images", c.staticInfoBase+"/bus/images", nil, &resp); err != nil {
		return nil, err
	}
	return resp.ImageURLs, nil
}
