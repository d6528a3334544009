package upstream

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

type Notice struct {
	ID       int64     `json:"id"`
	URL      string    `json:"url"`
	Title    string    `json:"title"`
	Author   string    `json:"author"`
	CreateAt time.Time `json:"createAt"`
}

// NoticePage is one page of the notice board.
type NoticePage struct {
	Items []Notice `json:"items"`
	Total int      `json:"total"`
	Page  int      `json:"page"`
	Size  int      `json:"size"`
}

func pageParams(page, size int) url.Values {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("size", strconv.Itoa(size))
	return params
}

// Notices fetches a page of general notices.
func (c *Client) Notices(ctx context.Context, userID int64, page, size int) (NoticePage, error) {
	var resp NoticePage
	err := c.getJSON(ctx, userID, "notice list", c.noticeBase+"/notice", pageParams(page, size), &resp)
	return resp, err
}

// DormitoryNotices fetches a page of dormitory notices.
func (c *Client) DormitoryNotices(ctx context.Context, userID int64, page, size int) (NoticePage, error) {
	var resp NoticePage
	err := c.getJSON(ctx, userID, "dormitory notice list", c.noticeBase+"/dormitory-notice", pageParams(page, size), &resp)
	return resp, err
}
