package upstream

import (
	"context"
	"net/url"
	"strconv"
)

// BuildingClassrooms lists the currently free rooms of one building.
type BuildingClassrooms struct {
	Building string   `json:"building"`
	Rooms    []string `json:"empty_classrooms"`
}

// EmptyClassroomsByTime queries free classrooms for a clock-time range on the
// given day (e.g. "월요일", "09:00", "10:00").
func (c *Client) EmptyClassroomsByTime(ctx context.Context, userID int64, day, startTime, endTime string) ([]BuildingClassrooms, error) {
	params := url.Values{}
	params.Set("day", day)
	params.Set("start_time", startTime)
	params.Set("end_time", endTime)
	var resp []BuildingClassrooms
	err := c.getJSON(ctx, userID, "empty classrooms by time", c.classroomBase+"/classrooms/available/time", params, &resp)
	return resp, err
}

// EmptyClassroomsByPeriod queries free classrooms for a class-period range
// (periods are 1-based).
func (c *Client) EmptyClassroomsByPeriod(ctx context.Context, userID int64, day string, startPeriod, endPeriod int) ([]BuildingClassrooms, error) {
	params := url.Values{}
	params.Set("day", day)
	params.Set("start_time", strconv.Itoa(startPeriod))
	params.Set("end_time", strconv.Itoa(endPeriod))
	var resp []BuildingClassrooms
	err := c.getJSON(ctx, userID, "empty classrooms by period", c.classroomBase+"/classrooms/available/periods", params, &resp)
	return resp, err
}
