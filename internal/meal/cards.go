package meal

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"sandol-kakao-backend/internal/kakao"
	"sandol-kakao-backend/internal/upstream"
)

var mealTypeLabels = map[upstream.MealType]string{
	upstream.MealLunch:  "점심",
	upstream.MealDinner: "저녁",
}

// MealTypeLabel converts a meal slot to its Korean display name.
func MealTypeLabel(t upstream.MealType) string {
	if label, ok := mealTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

var establishmentTypeLabels = map[string]string{
	"student":  "학생식당",
	"vendor":   "교내 입점업체",
	"external": "교외 업체",
}

// EstablishmentTypeLabel converts a venue category to its Korean display name.
func EstablishmentTypeLabel(t string) string {
	if label, ok := establishmentTypeLabels[t]; ok {
		return label
	}
	return t
}

var koreanDays = []string{"월", "화", "수", "목", "금", "토", "일"}

func koreanDay(t time.Time) string {
	// time.Weekday starts at Sunday.
	return koreanDays[(int(t.Weekday())+6)%7]
}

var menuDelimiters = regexp.MustCompile(`,\s*|;|:|\||-|/`)
var whitespace = regexp.MustCompile(`\s+`)

// SplitMenu splits a free-form menu utterance into individual items. Commas,
// semicolons, colons, pipes, dashes and slashes all separate items; when none
// are present the string splits on whitespace instead.
func SplitMenu(s string) []string {
	modified := menuDelimiters.ReplaceAllString(s, "\n")
	var parts []string
	if strings.Contains(modified, "\n") {
		parts = strings.Split(modified, "\n")
	} else {
		parts = whitespace.Split(modified, -1)
	}
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	return items
}

// Card is the display model for one (restaurant, slot) menu.
type Card struct {
	RestaurantName string
	MealType       upstream.MealType
	Menu           []string
	UpdatedAt      time.Time
}

func cardFromMeal(m upstream.Meal) Card {
	return Card{
		RestaurantName: m.RestaurantName,
		MealType:       m.MealType,
		Menu:           m.Menu,
		UpdatedAt:      m.UpdatedAt,
	}
}

// TextCard renders one menu card: title "식당이름(점심)", the menu lines and
// the update timestamp, plus a button into the venue detail block.
func (c Card) TextCard(restaurantInfoBlock string, loc *time.Location) kakao.TextCard {
	title := fmt.Sprintf("%s(%s)", c.RestaurantName, MealTypeLabel(c.MealType))

	description := "식단 정보가 없습니다."
	if len(c.Menu) > 0 {
		description = strings.Join(c.Menu, "\n")
	}
	at := c.UpdatedAt.In(loc)
	description += fmt.Sprintf("\n%d월 %d일 %s요일 %d시 업데이트",
		int(at.Month()), at.Day(), koreanDay(at), at.Hour())

	card := kakao.TextCard{Title: title, Description: description}
	card.AddButton(kakao.Button{
		Label:   "식당 정보 보기",
		Action:  "block",
		BlockID: restaurantInfoBlock,
		Extra:   map[string]any{"restaurant_name": c.RestaurantName},
	})
	return card
}

var noMealPlaceholder = kakao.TextCard{
	Title:       "식단 정보가 없습니다.",
	Description: "식단 정보가 없습니다.",
}

// slotComponents renders one slot's cards into top-level components, emitting
// the placeholder card when the slot has nothing to show.
func slotComponents(cards []Card, restaurantInfoBlock string, loc *time.Location) []kakao.Component {
	leaves := make([]kakao.Card, 0, len(cards))
	for _, c := range cards {
		leaves = append(leaves, c.TextCard(restaurantInfoBlock, loc))
	}
	return kakao.ComposeGroup(leaves, kakao.CarouselMaxCards, noMealPlaceholder)
}

// RecencyCutoff returns yesterday 19:00 in the service timezone. Meals
// published at or after the cutoff are shown ahead of older ones.
func RecencyCutoff(now time.Time, loc *time.Location) time.Time {
	y := now.In(loc).AddDate(0, 0, -1)
	return time.Date(y.Year(), y.Month(), y.Day(), 19, 0, 0, 0, loc)
}
