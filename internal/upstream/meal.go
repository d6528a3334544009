package upstream

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// MealType is the meal slot a menu belongs to.
type MealType string

const (
	MealLunch  MealType = "lunch"
	MealDinner MealType = "dinner"
)

// Meal is one published menu for a (restaurant, slot) pair.
type Meal struct {
	ID             int64     `json:"id"`
	Menu           []string  `json:"menu"`
	MealType       MealType  `json:"meal_type"`
	RestaurantID   int64     `json:"restaurant_id"`
	RestaurantName string    `json:"restaurant_name"`
	RegisteredAt   time.Time `json:"registered_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (t TimeRange) String() string {
	return t.Start + " ~ " + t.End
}

type Location struct {
	IsCampus  bool              `json:"is_campus"`
	Building  string            `json:"building,omitempty"`
	MapLinks  map[string]string `json:"map_links,omitempty"`
	Latitude  float64           `json:"latitude,omitempty"`
	Longitude float64           `json:"longitude,omitempty"`
}

type Restaurant struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	Owner             int64      `json:"owner,omitempty"`
	EstablishmentType string     `json:"establishment_type"`
	Location          *Location  `json:"location,omitempty"`
	LunchTime         *TimeRange `json:"lunch_time,omitempty"`
	DinnerTime        *TimeRange `json:"dinner_time,omitempty"`
}

type mealListResponse struct {
	Data []Meal `json:"data"`
}

type restaurantListResponse struct {
	Data []Restaurant `json:"data"`
}

// LatestMeals fetches the most recent published meals, optionally scoped to
// one restaurant.
func (c *Client) LatestMeals(ctx context.Context, userID, restaurantID int64) ([]Meal, error) {
	rawURL := c.mealBase + "/meals/latest"
	if restaurantID != 0 {
		rawURL = fmt.Sprintf("%s/meals/restaurants/%d/latest", c.mealBase, restaurantID)
	}
	var resp mealListResponse
	if err := c.getJSON(ctx, userID, "latest meals", rawURL, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// MyRestaurants lists the restaurants owned by the calling user.
func (c *Client) MyRestaurants(ctx context.Context, userID int64) ([]Restaurant, error) {
	params := url.Values{}
	params.Set("owner", strconv.FormatInt(userID, 10))
	var resp restaurantListResponse
	if err := c.getJSON(ctx, userID, "my restaurants", c.mealBase+"/restaurants", params, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// RestaurantByName finds a restaurant by its exact name. Returns nil when the
// registry has no match.
func (c *Client) RestaurantByName(ctx context.Context, userID int64, name string) (*Restaurant, error) {
	params := url.Values{}
	params.Set("name", name)
	var resp restaurantListResponse
	if err := c.getJSON(ctx, userID, "restaurant by name", c.mealBase+"/restaurants", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, nil
	}
	return &resp.Data[0], nil
}

// PostMeal publishes a menu for one slot of a restaurant.
func (c *Client) PostMeal(ctx context.Context, userID int64, mealType MealType, menu []string, restaurantID int64) error {
	if menu == nil {
		menu = []string{}
	}
	body := map[string]any{
		"meal_type":     mealType,
		"menu":          menu,
		"restaurant_id": restaurantID,
	}
	return c.postJSON(ctx, userID, "meal registration", c.mealBase+"/meals", body)
}
