package server

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"sandol-kakao-backend/internal/classroom"
	"sandol-kakao-backend/internal/kakao"
	"sandol-kakao-backend/internal/notice"
	"sandol-kakao-backend/internal/statics"
	"sandol-kakao-backend/internal/store"
)

// Informational lookups call upstream on the service's own behalf rather than
// the chatting user's.
func (s *Server) serviceUserID() int64 { return s.cfg.ServiceID }

func (s *Server) handleNotices(w http.ResponseWriter, r *http.Request) {
	p, _, ok := s.parseRequest(w, r)
	if !ok {
		return
	}
	page, err := s.gateway.Notices(r.Context(), s.serviceUserID(), noticePage(p), notice.DefaultPageSize)
	if err != nil {
		s.reqLog(r).Error("failed to fetch notices", zap.Error(err))
		kakao.Text("공지사항을 불러오지 못했습니다. 잠시 후 다시 시도해주세요.").Write(w)
		return
	}
	notice.Compose(notice.GeneralHeader, page, s.loc).Write(w)
}

func (s *Server) handleDormitoryNotices(w http.ResponseWriter, r *http.Request) {
	p, _, ok := s.parseRequest(w, r)
	if !ok {
		return
	}
	page, err := s.gateway.DormitoryNotices(r.Context(), s.serviceUserID(), noticePage(p), notice.DefaultPageSize)
	if err != nil {
		s.reqLog(r).Error("failed to fetch dormitory notices", zap.Error(err))
		kakao.Text("생활관 공지사항을 불러오지 못했습니다. 잠시 후 다시 시도해주세요.").Write(w)
		return
	}
	notice.Compose(notice.DormitoryHeader, page, s.loc).Write(w)
}

func noticePage(p *kakao.Payload) int {
	dp := p.DetailParam("page")
	if dp == nil {
		return 1
	}
	n, err := strconv.Atoi(dp.Value)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func (s *Server) handleEmptyClassroomsByTime(w http.ResponseWriter, r *http.Request) {
	p, _, ok := s.parseRequest(w, r)
	if !ok {
		return
	}
	day := p.DetailParam("day")
	start := p.DetailParam("start_time")
	end := p.DetailParam("end_time")
	if day == nil || start == nil || end == nil {
		kakao.Text("요일과 시간 범위를 입력해주세요.").Write(w)
		return
	}
	buildings, err := s.gateway.EmptyClassroomsByTime(r.Context(), s.serviceUserID(), day.Value, start.Value, end.Value)
	if err != nil {
		s.reqLog(r).Error("failed to fetch empty classrooms", zap.Error(err))
		kakao.Text("빈 강의실 정보를 불러오지 못했습니다. 잠시 후 다시 시도해주세요.").Write(w)
		return
	}
	classroom.Compose(buildings, s.blocks.ClassroomDetail, s.reqLog(r)).Write(w)
}

func (s *Server) handleEmptyClassroomsByPeriod(w http.ResponseWriter, r *http.Request) {
	p, _, ok := s.parseRequest(w, r)
	if !ok {
		return
	}
	day := p.DetailParam("day")
	start := p.DetailParam("start_period")
	end := p.DetailParam("end_period")
	if day == nil || start == nil || end == nil {
		kakao.Text("요일과 교시 범위를 입력해주세요.").Write(w)
		return
	}
	startPeriod, err1 := strconv.Atoi(start.Value)
	endPeriod, err2 := strconv.Atoi(end.Value)
	if err1 != nil || err2 != nil || startPeriod < 1 || endPeriod < startPeriod {
		kakao.Text("교시 범위가 올바르지 않습니다.").Write(w)
		return
	}
	buildings, err := s.gateway.EmptyClassroomsByPeriod(r.Context(), s.serviceUserID(), day.Value, startPeriod, endPeriod)
	if err != nil {
		s.reqLog(r).Error("failed to fetch empty classrooms", zap.Error(err))
		kakao.Text("빈 강의실 정보를 불러오지 못했습니다. 잠시 후 다시 시도해주세요.").Write(w)
		return
	}
	classroom.Compose(buildings, s.blocks.ClassroomDetail, s.reqLog(r)).Write(w)
}

// organizationName extracts the directory entry the turn asks about: a choice
// carried from a previous list takes precedence over a freshly uttered slot.
func organizationName(p *kakao.Payload) string {
	if name := p.ClientExtraString("organization"); name != "" {
		return name
	}
	if dp := p.DetailParam("organization"); dp != nil {
		return dp.Value
	}
	return ""
}

func (s *Server) respondOrganization(w http.ResponseWriter, r *http.Request, name string) {
	if name == "" {
		root, err := s.gateway.OrganizationTree(r.Context(), s.serviceUserID())
		if err != nil {
			s.reqLog(r).Error("failed to fetch organization tree", zap.Error(err))
			kakao.Text("조직 정보를 불러오지 못했습니다. 잠시 후 다시 시도해주세요.").Write(w)
			return
		}
		statics.Compose(*root, s.blocks.UnitInfo).Write(w)
		return
	}
	org, err := s.gateway.OrganizationByName(r.Context(), s.serviceUserID(), name)
	if err != nil {
		s.reqLog(r).Error("failed to fetch organization", zap.Error(err), zap.String("organization", name))
		kakao.Text("조직 정보를 불러오지 못했습니다. 잠시 후 다시 시도해주세요.").Write(w)
		return
	}
	if org == nil {
		kakao.Text("해당 조직을 찾을 수 없습니다.").Write(w)
		return
	}
	statics.Compose(*org, s.blocks.UnitInfo).Write(w)
}

func (s *Server) handleOrganizationInfo(w http.ResponseWriter, r *http.Request) {
	p, _, ok := s.parseRequest(w, r)
	if !ok {
		return
	}
	s.respondOrganization(w, r, organizationName(p))
}

func (s *Server) handleUnitInfo(w http.ResponseWriter, r *http.Request) {
	p, _, ok := s.parseRequest(w, r)
	if !ok {
		return
	}
	name := organizationName(p)
	if name == "" {
		kakao.Text("조직 이름을 입력해주세요.").Write(w)
		return
	}
	s.respondOrganization(w, r, name)
}

func (s *Server) handleShuttle(w http.ResponseWriter, r *http.Request) {
	_, _, ok := s.parseRequest(w, r)
	if !ok {
		return
	}
	images, err := s.gateway.ShuttleImages(r.Context(), s.serviceUserID())
	if err != nil {
		s.reqLog(r).Error("failed to fetch shuttle images", zap.Error(err))
		kakao.Text("셔틀버스 정보를 불러오지 못했습니다. 잠시 후 다시 시도해주세요.").Write(w)
		return
	}
	statics.ComposeShuttle(images).Write(w)
}

// isAdmin checks the local kakao_admin flag first and falls back to the user
// service's global admin role. Lookup failures read as not-admin.
func (s *Server) isAdmin(r *http.Request, user *store.User) bool {
	if user.KakaoAdmin {
		return true
	}
	admin, err := s.gateway.IsGlobalAdmin(r.Context(), user.ID, user.ID)
	if err != nil {
		s.reqLog(r).Warn("global admin check failed", zap.Error(err), zap.Int64("user_id", user.ID))
		return false
	}
	return admin
}

// handleGetID echoes the sender's platform identifier so an operator can
// register it out of band, noting admin standing when present.
func (s *Server) handleGetID(w http.ResponseWriter, r *http.Request) {
	p, user, ok := s.parseRequest(w, r)
	if !ok {
		return
	}
	text := "회원님의 ID는 다음과 같습니다.\n" + p.UserRequest.User.ID
	if s.isAdmin(r, user) {
		text += "\n관리자 권한이 확인되었습니다."
	}
	kakao.Text(text).Write(w)
}
