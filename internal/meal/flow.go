package meal

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"sandol-kakao-backend/internal/config"
	"sandol-kakao-backend/internal/kakao"
	"sandol-kakao-backend/internal/store"
	"sandol-kakao-backend/internal/upstream"
)

// Context names and parameter keys of the pending-menu state round-tripped
// through the client.
const (
	lunchContext    = "lunch_menu"
	dinnerContext   = "dinner_menu"
	menuListParam   = "menu_list"
	restaurantParam = "restaurant_name"

	contextLifespan = 5
	contextTTL      = 300
)

func contextName(slot upstream.MealType) string {
	if slot == upstream.MealDinner {
		return dinnerContext
	}
	return lunchContext
}

// SlotState is the registration progress of one meal slot.
type SlotState int

const (
	// SlotEmpty means no uncommitted items are pending for the slot.
	SlotEmpty SlotState = iota
	// SlotPending means items are registered but not yet confirmed upstream.
	SlotPending
)

func slotState(items []string) SlotState {
	if len(items) == 0 {
		return SlotEmpty
	}
	return SlotPending
}

// Gateway is the slice of the upstream client the flow depends on.
type Gateway interface {
	LatestMeals(ctx context.Context, userID, restaurantID int64) ([]upstream.Meal, error)
	MyRestaurants(ctx context.Context, userID int64) ([]upstream.Restaurant, error)
	RestaurantByName(ctx context.Context, userID int64, name string) (*upstream.Restaurant, error)
	PostMeal(ctx context.Context, userID int64, mealType upstream.MealType, menu []string, restaurantID int64) error
}

// Flow drives the multi-step menu registration conversation. All state lives
// in the round-tripped contexts; the flow itself is stateless across turns.
type Flow struct {
	gateway Gateway
	blocks  config.Blocks
	loc     *time.Location
	log     *zap.Logger
	now     func() time.Time
}

func NewFlow(gateway Gateway, blocks config.Blocks, loc *time.Location, log *zap.Logger) *Flow {
	return &Flow{gateway: gateway, blocks: blocks, loc: loc, log: log, now: time.Now}
}

// requireSynced gates mutating actions on a linked account. Returns the
// prompt response when the user still needs to sync, nil otherwise.
func (f *Flow) requireSynced(user *store.User) *kakao.Response {
	if user.Synced() {
		return nil
	}
	card := kakao.TextCard{
		Title:       "계정 동기화 필요",
		Description: "계정이 동기화되지 않았습니다. 먼저 계정을 동기화해주세요.",
	}
	card.AddButton(kakao.Button{
		Label:   "계정 동기화 하러 가기",
		Action:  "block",
		BlockID: f.blocks.Login,
	})
	return kakao.NewResponse().AddComponent(card)
}

// selectRestaurant resolves which venue the turn is about. A venue picked on
// a previous turn arrives via client extra; a single managed venue is
// auto-selected; otherwise the user gets a selection prompt whose quick
// replies re-target the same block with the choice embedded.
func (f *Flow) selectRestaurant(ctx context.Context, user *store.User, p *kakao.Payload) (*upstream.Restaurant, *kakao.Response) {
	restaurants, err := f.gateway.MyRestaurants(ctx, user.ID)
	if err != nil {
		f.log.Error("failed to fetch managed restaurants", zap.Error(err), zap.Int64("user_id", user.ID))
		return nil, kakao.Text("식당 정보를 불러오지 못했습니다. 잠시 후 다시 시도해주세요.")
	}
	if len(restaurants) == 0 {
		return nil, kakao.Text("관리 중인 식당이 없습니다. 식당 등록 후 이용해주세요.")
	}

	if name := p.ClientExtraString(restaurantParam); name != "" {
		for i := range restaurants {
			if restaurants[i].Name == name {
				return &restaurants[i], nil
			}
		}
	}

	if len(restaurants) == 1 {
		return &restaurants[0], nil
	}

	resp := kakao.NewResponse().AddComponent(kakao.TextCard{
		Title:       "식당 선택",
		Description: "식당을 선택하세요.",
	})
	for _, r := range restaurants {
		resp.AddQuickReply(kakao.QuickReply{
			Label:   r.Name,
			Action:  "block",
			BlockID: p.UserRequest.Block.ID,
			Extra:   map[string]any{restaurantParam: r.Name},
		})
	}
	return nil, resp
}

func (f *Flow) extract(ctxs []kakao.Context, slot upstream.MealType, restaurantName string) []string {
	return kakao.ExtractItems(ctxs, contextName(slot), menuListParam, restaurantParam, restaurantName)
}

func (f *Flow) save(ctxs []kakao.Context, slot upstream.MealType, restaurantName string, items []string, lifespan int) []kakao.Context {
	return kakao.SaveItems(ctxs, contextName(slot), menuListParam, items, restaurantParam, restaurantName, lifespan, contextTTL)
}

func (f *Flow) registerQuickReplies(restaurantName string) []kakao.QuickReply {
	var extra map[string]any
	if restaurantName != "" {
		extra = map[string]any{restaurantParam: restaurantName}
	}
	replies := []kakao.QuickReply{
		{Label: "확정", Action: "block", BlockID: f.blocks.Confirm, Extra: extra},
		{Label: "점심 메뉴 추가", Action: "block", BlockID: f.blocks.AddLunchMenu, Extra: extra},
		{Label: "저녁 메뉴 추가", Action: "block", BlockID: f.blocks.AddDinnerMenu, Extra: extra},
		{Label: "메뉴 수정", Action: "block", BlockID: f.blocks.ModifyMenu, Extra: extra},
		{Label: "메뉴 삭제", Action: "block", BlockID: f.blocks.DeleteMenu, Extra: extra},
		{Label: "전체 삭제", Action: "block", BlockID: f.blocks.DeleteAllMenus, Extra: extra},
	}
	return replies
}

// preview renders the pending state of both slots plus the action quick
// replies, carrying the updated contexts back to the client.
func (f *Flow) preview(ctxs []kakao.Context, restaurantName string) *kakao.Response {
	now := f.now()
	lunch := Card{RestaurantName: restaurantName, MealType: upstream.MealLunch,
		Menu: f.extract(ctxs, upstream.MealLunch, restaurantName), UpdatedAt: now}
	dinner := Card{RestaurantName: restaurantName, MealType: upstream.MealDinner,
		Menu: f.extract(ctxs, upstream.MealDinner, restaurantName), UpdatedAt: now}

	resp := kakao.NewResponse().AddComponent(kakao.SimpleText{Text: "식단 미리보기"})
	resp.AddComponents(slotComponents([]Card{lunch}, f.blocks.RestaurantInfo, f.loc)...)
	resp.AddComponents(slotComponents([]Card{dinner}, f.blocks.RestaurantInfo, f.loc)...)
	for _, qr := range f.registerQuickReplies(restaurantName) {
		resp.AddQuickReply(qr)
	}
	return resp.SetContexts(ctxs)
}

// Register merges newly uttered menu items into the slot's pending list and
// re-saves the context. Empty → Pending, Pending → Pending(modified).
func (f *Flow) Register(ctx context.Context, user *store.User, p *kakao.Payload, slot upstream.MealType) *kakao.Response {
	if resp := f.requireSynced(user); resp != nil {
		return resp
	}
	menuParam := p.DetailParam("menu")
	if menuParam == nil || strings.TrimSpace(menuParam.Origin) == "" {
		return kakao.Text("메뉴를 입력해주세요.")
	}
	restaurant, prompt := f.selectRestaurant(ctx, user, p)
	if prompt != nil {
		return prompt
	}

	contexts := kakao.DecodeContexts(p.Contexts)
	items := f.extract(contexts, slot, restaurant.Name)
	items = append(items, SplitMenu(menuParam.Origin)...)
	contexts = f.save(contexts, slot, restaurant.Name, items, contextLifespan)

	f.log.Info("registered pending menu",
		zap.Int64("user_id", user.ID),
		zap.String("restaurant", restaurant.Name),
		zap.String("meal_type", string(slot)),
		zap.Int("items", len(items)))
	return f.preview(contexts, restaurant.Name)
}

// DeleteMenu removes a single pending item. The item must currently be
// registered in at least one slot; otherwise the turn fails with a
// corrective message and no state changes.
func (f *Flow) DeleteMenu(ctx context.Context, user *store.User, p *kakao.Payload) *kakao.Response {
	if resp := f.requireSynced(user); resp != nil {
		return resp
	}
	menuParam := p.DetailParam("menu")
	if menuParam == nil || strings.TrimSpace(menuParam.Origin) == "" {
		return kakao.Text("삭제할 메뉴를 입력해주세요.")
	}
	target := strings.TrimSpace(menuParam.Origin)

	restaurant, prompt := f.selectRestaurant(ctx, user, p)
	if prompt != nil {
		return prompt
	}

	contexts := kakao.DecodeContexts(p.Contexts)
	removed := false
	for _, slot := range []upstream.MealType{upstream.MealLunch, upstream.MealDinner} {
		items := f.extract(contexts, slot, restaurant.Name)
		kept := make([]string, 0, len(items))
		for _, item := range items {
			if item == target {
				removed = true
				continue
			}
			kept = append(kept, item)
		}
		if len(kept) != len(items) {
			contexts = f.save(contexts, slot, restaurant.Name, kept, contextLifespan)
		}
	}
	if !removed {
		return kakao.Text(fmt.Sprintf("%q은(는) 등록되지 않은 메뉴입니다.", target))
	}

	f.log.Info("deleted pending menu item",
		zap.Int64("user_id", user.ID),
		zap.String("restaurant", restaurant.Name),
		zap.String("menu", target))
	return f.preview(contexts, restaurant.Name)
}

// DeleteAll clears the pending state of both slots without touching upstream.
func (f *Flow) DeleteAll(ctx context.Context, user *store.User, p *kakao.Payload) *kakao.Response {
	if resp := f.requireSynced(user); resp != nil {
		return resp
	}
	contexts := kakao.DecodeContexts(p.Contexts)
	contexts = f.save(contexts, upstream.MealLunch, "", nil, 0)
	contexts = f.save(contexts, upstream.MealDinner, "", nil, 0)

	f.log.Info("cleared all pending menus", zap.Int64("user_id", user.ID))
	return kakao.Text("등록 중인 메뉴가 모두 삭제되었습니다.").SetContexts(contexts)
}

// Confirm pushes both slots' pending lists upstream concurrently, reports
// exactly which slots failed, and clears the pending contexts regardless so
// the user is never stuck holding stale uncommitted state.
func (f *Flow) Confirm(ctx context.Context, user *store.User, p *kakao.Payload) *kakao.Response {
	if resp := f.requireSynced(user); resp != nil {
		return resp
	}
	restaurant, prompt := f.selectRestaurant(ctx, user, p)
	if prompt != nil {
		return prompt
	}

	contexts := kakao.DecodeContexts(p.Contexts)
	lunchMenu := f.extract(contexts, upstream.MealLunch, restaurant.Name)
	dinnerMenu := f.extract(contexts, upstream.MealDinner, restaurant.Name)
	if slotState(lunchMenu) == SlotEmpty && slotState(dinnerMenu) == SlotEmpty {
		return kakao.Text("확정할 메뉴가 없습니다. 먼저 메뉴를 등록해주세요.")
	}

	slots := []struct {
		slot upstream.MealType
		menu []string
	}{
		{upstream.MealLunch, lunchMenu},
		{upstream.MealDinner, dinnerMenu},
	}
	errs := make([]error, len(slots))
	var wg sync.WaitGroup
	for i, s := range slots {
		wg.Add(1)
		go func(i int, slot upstream.MealType, menu []string) {
			defer wg.Done()
			errs[i] = f.gateway.PostMeal(ctx, user.ID, slot, menu, restaurant.ID)
		}(i, s.slot, s.menu)
	}
	wg.Wait()

	// Clear pending state regardless of the outcome.
	contexts = f.save(contexts, upstream.MealLunch, "", nil, 0)
	contexts = f.save(contexts, upstream.MealDinner, "", nil, 0)

	var failures []string
	for i, s := range slots {
		if errs[i] == nil {
			continue
		}
		f.log.Error("meal confirmation failed",
			zap.Int64("user_id", user.ID),
			zap.String("restaurant", restaurant.Name),
			zap.String("meal_type", string(s.slot)),
			zap.Error(errs[i]))
		if code := upstream.StatusCode(errs[i]); code != 0 {
			failures = append(failures, fmt.Sprintf("%s 등록 실패 (상태 코드: %d)", MealTypeLabel(s.slot), code))
		} else {
			failures = append(failures, fmt.Sprintf("%s 등록 중 알 수 없는 오류 발생", MealTypeLabel(s.slot)))
		}
	}
	if len(failures) > 0 {
		msg := strings.Join(failures, "\n") + "\n확인 후 다시 시도해주세요."
		return kakao.Text(msg).SetContexts(contexts)
	}

	resp := kakao.NewResponse().
		AddComponent(kakao.SimpleText{Text: "식단 정보가 아래 내용으로 확정 등록되었습니다."})

	latest, err := f.gateway.LatestMeals(ctx, user.ID, restaurant.ID)
	if err != nil {
		f.log.Warn("failed to re-fetch confirmed meals", zap.Error(err), zap.Int64("user_id", user.ID))
		return resp.SetContexts(contexts)
	}
	var lunchCards, dinnerCards []Card
	for _, m := range latest {
		switch m.MealType {
		case upstream.MealLunch:
			lunchCards = append(lunchCards, cardFromMeal(m))
		case upstream.MealDinner:
			dinnerCards = append(dinnerCards, cardFromMeal(m))
		}
	}
	resp.AddComponents(slotComponents(lunchCards, f.blocks.RestaurantInfo, f.loc)...)
	resp.AddComponents(slotComponents(dinnerCards, f.blocks.RestaurantInfo, f.loc)...)

	f.log.Info("meal confirmation completed",
		zap.Int64("user_id", user.ID),
		zap.String("restaurant", restaurant.Name))
	return resp.SetContexts(contexts)
}

// View renders the latest published meals, optionally filtered to one venue,
// with recently updated venues shown first.
func (f *Flow) View(ctx context.Context, user *store.User, p *kakao.Payload) *kakao.Response {
	var target string
	if cafeteria := p.DetailParam("Cafeteria"); cafeteria != nil {
		target = cafeteria.Value
	}

	mealList, err := f.gateway.LatestMeals(ctx, user.ID, 0)
	if err != nil {
		f.log.Error("failed to fetch latest meals", zap.Error(err), zap.Int64("user_id", user.ID))
		return kakao.Text("식단 정보를 불러오지 못했습니다. 잠시 후 다시 시도해주세요.")
	}

	meals := mealList
	if target != "" {
		meals = make([]upstream.Meal, 0, len(mealList))
		for _, m := range mealList {
			if m.RestaurantName == target {
				meals = append(meals, m)
			}
		}
	}

	if len(meals) == 0 {
		resp := kakao.Text("식단 정보가 없습니다.")
		f.addViewQuickReplies(resp, mealList, target)
		return resp
	}

	cutoff := RecencyCutoff(f.now(), f.loc)
	kakao.SortTwoTierByTime(meals, func(m upstream.Meal) time.Time { return m.UpdatedAt }, cutoff)

	var lunchCards, dinnerCards []Card
	for _, m := range meals {
		switch m.MealType {
		case upstream.MealLunch:
			lunchCards = append(lunchCards, cardFromMeal(m))
		case upstream.MealDinner:
			dinnerCards = append(dinnerCards, cardFromMeal(m))
		default:
			f.log.Warn("dropping meal with unknown slot",
				zap.String("restaurant", m.RestaurantName),
				zap.String("meal_type", string(m.MealType)))
		}
	}

	resp := kakao.NewResponse()
	resp.AddComponents(slotComponents(lunchCards, f.blocks.RestaurantInfo, f.loc)...)
	resp.AddComponents(slotComponents(dinnerCards, f.blocks.RestaurantInfo, f.loc)...)
	f.addViewQuickReplies(resp, mealList, target)
	return resp
}

// addViewQuickReplies offers the other venues as shortcuts, deduplicated,
// with a "모두 보기" escape when the view is filtered.
func (f *Flow) addViewQuickReplies(resp *kakao.Response, mealList []upstream.Meal, target string) {
	if target != "" {
		resp.AddQuickReply(kakao.QuickReply{Label: "모두 보기", Action: "message", MessageText: "학식"})
	}
	seen := make(map[string]bool)
	for _, m := range mealList {
		if m.RestaurantName == target || seen[m.RestaurantName] {
			continue
		}
		seen[m.RestaurantName] = true
		resp.AddQuickReply(kakao.QuickReply{
			Label:       m.RestaurantName,
			Action:      "message",
			MessageText: "학식 " + m.RestaurantName,
		})
	}
}

// RestaurantInfo renders the venue detail card reached from a menu card's
// button.
func (f *Flow) RestaurantInfo(ctx context.Context, user *store.User, p *kakao.Payload) *kakao.Response {
	name := p.ClientExtraString(restaurantParam)
	if name == "" {
		return kakao.Text("식당 정보를 찾을 수 없습니다.")
	}
	restaurant, err := f.gateway.RestaurantByName(ctx, user.ID, name)
	if err != nil {
		f.log.Error("failed to fetch restaurant", zap.Error(err), zap.String("restaurant", name))
		return kakao.Text("식당 정보를 불러오지 못했습니다. 잠시 후 다시 시도해주세요.")
	}
	if restaurant == nil {
		f.log.Warn("restaurant not found", zap.String("restaurant", name))
		return kakao.Text("식당 정보를 찾을 수 없습니다.")
	}

	card := kakao.ItemCard{
		ImageTitle: &kakao.ImageTitle{Title: restaurant.Name, Description: "식당 정보"},
	}
	if restaurant.LunchTime != nil {
		card.AddItem("점심 시간", restaurant.LunchTime.String())
	}
	if restaurant.DinnerTime != nil {
		card.AddItem("저녁 시간", restaurant.DinnerTime.String())
	}
	card.AddItem("분류", EstablishmentTypeLabel(restaurant.EstablishmentType))
	card.AddButton(kakao.Button{
		Label:       "메뉴 보기",
		Action:      "message",
		MessageText: "학식 " + restaurant.Name,
	})
	if restaurant.Location != nil && restaurant.Location.MapLinks != nil {
		url := restaurant.Location.MapLinks["kakao"]
		if url == "" {
			url = restaurant.Location.MapLinks["naver"]
		}
		if url != "" {
			card.AddButton(kakao.Button{
				Label:      "식당 위치 지도 보기",
				Action:     "webLink",
				WebLinkURL: url,
			})
		}
	}
	return kakao.NewResponse().AddComponent(card)
}
