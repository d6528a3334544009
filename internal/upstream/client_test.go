package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"sandol-kakao-backend/internal/config"
)

func testClient(url string) *Client {
	cfg := config.Config{
		MealServiceURL:       url,
		NoticeServiceURL:     url,
		ClassroomServiceURL:  url,
		StaticInfoServiceURL: url,
		UserServiceURL:       url,
	}
	return NewClient(cfg, zap.NewNop())
}

func TestLatestMealsPropagatesIdentity(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "42", r.Header.Get("X-User-ID"))
		assert.Equal(t, "/meals/latest", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":1,"menu":["김치찌개"],"meal_type":"lunch","restaurant_id":7,"restaurant_name":"산돌식당"}]}`))
	}))
	defer ts.Close()

	meals, err := testClient(ts.URL).LatestMeals(context.Background(), 42, 0)
	require.NoError(t, err)
	require.Len(t, meals, 1)
	assert.Equal(t, MealLunch, meals[0].MealType)
	assert.Equal(t, []string{"김치찌개"}, meals[0].Menu)
}

func TestLatestMealsScopedToRestaurant(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/meals/restaurants/7/latest", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer ts.Close()

	meals, err := testClient(ts.URL).LatestMeals(context.Background(), 42, 7)
	require.NoError(t, err)
	assert.Empty(t, meals)
}

func TestPostMealSendsBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/meals", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
	}))
	defer ts.Close()

	err := testClient(ts.URL).PostMeal(context.Background(), 42, MealDinner, []string{"제육볶음"}, 7)
	assert.NoError(t, err)
}

func TestStatusErrorCarriesCode(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer ts.Close()

	err := testClient(ts.URL).PostMeal(context.Background(), 42, MealLunch, []string{"라면"}, 7)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, StatusCode(err))
	assert.Contains(t, err.Error(), "meal registration")
}

func TestStatusCodeOnTransportError(t *testing.T) {
	client := testClient("http://127.0.0.1:1")
	err := client.PostMeal(context.Background(), 42, MealLunch, nil, 7)
	require.Error(t, err)
	assert.Equal(t, 0, StatusCode(err), "transport failures carry no status")
}

func TestOrganizationByNameNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer ts.Close()

	org, err := testClient(ts.URL).OrganizationByName(context.Background(), 42, "없는부서")
	require.NoError(t, err)
	assert.Nil(t, org)
}

func TestNoticesPagination(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/notice", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "5", r.URL.Query().Get("size"))
		_, _ = w.Write([]byte(`{"items":[{"id":1,"title":"공지","author":"작성자","url":"https://e.kr/1"}],"total":11,"page":2,"size":5}`))
	}))
	defer ts.Close()

	page, err := testClient(ts.URL).Notices(context.Background(), 42, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, 11, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "공지", page.Items[0].Title)
}

func TestIsGlobalAdmin(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/42/is_global_admin/", r.URL.Path)
		assert.Equal(t, "42", r.Header.Get("X-User-ID"))
		_, _ = w.Write([]byte(`{"is_global_admin":true}`))
	}))
	defer ts.Close()

	admin, err := testClient(ts.URL).IsGlobalAdmin(context.Background(), 42, 42)
	require.NoError(t, err)
	assert.True(t, admin)
}

func TestAccountInfoByID(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/7/", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":7,"name":"홍길동","email":"hong@example.ac.kr","global_admin":false,"service_account":false}`))
	}))
	defer ts.Close()

	info, err := testClient(ts.URL).AccountInfoByID(context.Background(), 42, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), info.ID)
	assert.Equal(t, "홍길동", info.Name)
}

func TestUpstreamFailureIsLogged(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	core, logs := observer.New(zapcore.WarnLevel)
	cfg := config.Config{MealServiceURL: ts.URL}
	client := NewClient(cfg, zap.New(core))

	_, err := client.LatestMeals(context.Background(), 42, 0)
	require.Error(t, err)

	entries := logs.FilterMessage("upstream call failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "latest meals", entries[0].ContextMap()["op"])
	assert.Equal(t, int64(http.StatusInternalServerError), entries[0].ContextMap()["status"])
}

func TestRestaurantByNameEmptyResult(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "산돌식당", r.URL.Query().Get("name"))
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer ts.Close()

	r, err := testClient(ts.URL).RestaurantByName(context.Background(), 42, "산돌식당")
	require.NoError(t, err)
	assert.Nil(t, r)
}
