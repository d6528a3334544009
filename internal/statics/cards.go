package statics

import (
	"fmt"
	"regexp"
	"sort"

	"sandol-kakao-backend/internal/kakao"
	"sandol-kakao-backend/internal/upstream"
)

var nonDigits = regexp.MustCompile(`\D`)

// FormatPhone inserts the conventional dashes into a bare phone number.
// Numbers that don't match a known length pass through untouched.
func FormatPhone(phone string) string {
	digits := nonDigits.ReplaceAllString(phone, "")
	switch len(digits) {
	case 9:
		return fmt.Sprintf("%s-%s-%s", digits[:2], digits[2:5], digits[5:])
	case 10:
		return fmt.Sprintf("%s-%s-%s", digits[:3], digits[3:6], digits[6:])
	case 11:
		return fmt.Sprintf("%s-%s-%s", digits[:3], digits[3:7], digits[7:])
	default:
		return phone
	}
}

// sortedSubunits flattens a group's subunit map in deterministic name order.
func sortedSubunits(org upstream.Organization) []upstream.Organization {
	names := make([]string, 0, len(org.Subunits))
	for name := range org.Subunits {
		names = append(names, name)
	}
	sort.Strings(names)
	subunits := make([]upstream.Organization, 0, len(names))
	for _, name := range names {
		subunits = append(subunits, org.Subunits[name])
	}
	return subunits
}

// groupResponse lists a group's subunits; picking one re-enters the unit
// detail block with the choice embedded.
func groupResponse(org upstream.Organization, unitInfoBlock string) *kakao.Response {
	subunits := sortedSubunits(org)
	items := make([]kakao.ListItem, 0, len(subunits))
	for _, sub := range subunits {
		description := "하위 조직 보기"
		if sub.Type == upstream.OrgUnit {
			description = FormatPhone(sub.Phone)
			if description == "" {
				description = "연락처 정보 보기"
			}
		}
		items = append(items, kakao.ListItem{
			Title:       sub.Name,
			Description: description,
			Action:      "block",
			BlockID:     unitInfoBlock,
			Extra:       map[string]any{"organization": sub.Name},
		})
	}
	resp := kakao.NewResponse()
	if component := kakao.ComposeListItems(org.Name, items); component != nil {
		resp.AddComponent(component)
	} else {
		return kakao.Text("하위 조직 정보가 없습니다.")
	}
	return resp
}

// unitResponse renders one unit's contact card.
func unitResponse(org upstream.Organization) *kakao.Response {
	card := kakao.ItemCard{
		ImageTitle: &kakao.ImageTitle{Title: org.Name, Description: "연락처 정보"},
	}
	if org.Phone != "" {
		card.AddItem("전화번호", FormatPhone(org.Phone))
	} else {
		card.AddItem("전화번호", "정보 없음")
	}
	if org.Phone != "" {
		card.AddButton(kakao.Button{
			Label:       "전화 걸기",
			Action:      "phone",
			PhoneNumber: FormatPhone(org.Phone),
		})
	}
	if org.URL != "" {
		card.AddButton(kakao.Button{
			Label:      "홈페이지 방문",
			Action:     "webLink",
			WebLinkURL: org.URL,
		})
	}
	return kakao.NewResponse().AddComponent(card)
}

// Compose renders a directory entry: groups become subunit lists, units
// become contact cards.
func Compose(org upstream.Organization, unitInfoBlock string) *kakao.Response {
	if org.Type == upstream.OrgGroup {
		return groupResponse(org, unitInfoBlock)
	}
	return unitResponse(org)
}

// ComposeShuttle renders the shuttle timetable image links.
func ComposeShuttle(imageURLs []string) *kakao.Response {
	if len(imageURLs) == 0 {
		return kakao.Text("셔틀버스 정보가 없습니다.")
	}
	resp := kakao.NewResponse()
	for _, url := range imageURLs {
		resp.AddComponent(kakao.SimpleImage{ImageURL: url, AltText: "셔틀버스 시간표"})
	}
	return resp
}
