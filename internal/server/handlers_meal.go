package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"sandol-kakao-backend/internal/kakao"
	"sandol-kakao-backend/internal/store"
	"sandol-kakao-backend/internal/upstream"
)

// parseRequest decodes the skill payload and resolves the sender to a local
// user record. On failure it writes the in-band error card and reports false;
// the platform only renders bodies that come back with a 200.
func (s *Server) parseRequest(w http.ResponseWriter, r *http.Request) (*kakao.Payload, *store.User, bool) {
	p, err := kakao.ParsePayload(r.Body)
	if err != nil {
		s.reqLog(r).Warn("rejecting malformed skill payload", zap.Error(err))
		kakao.ErrorCard().Write(w)
		return nil, nil, false
	}
	user, err := s.users.Resolve(r.Context(),
		p.UserRequest.User.ID,
		p.UserRequest.User.Properties.PlusfriendUserKey,
		p.UserRequest.User.Properties.AppUserID)
	if err != nil {
		s.reqLog(r).Error("failed to resolve user", zap.Error(err))
		kakao.ErrorCard().Write(w)
		return nil, nil, false
	}
	return p, user, true
}

func (s *Server) handleMealView(w http.ResponseWriter, r *http.Request) {
	p, user, ok := s.parseRequest(w, r)
	if !ok {
		return
	}
	s.flow.View(r.Context(), user, p).Write(w)
}

func (s *Server) handleRestaurantInfo(w http.ResponseWriter, r *http.Request) {
	p, user, ok := s.parseRequest(w, r)
	if !ok {
		return
	}
	s.flow.RestaurantInfo(r.Context(), user, p).Write(w)
}

func (s *Server) handleMealRegister(w http.ResponseWriter, r *http.Request) {
	p, user, ok := s.parseRequest(w, r)
	if !ok {
		return
	}
	var slot upstream.MealType
	switch chi.URLParam(r, "mealType") {
	case "lunch":
		slot = upstream.MealLunch
	case "dinner":
		slot = upstream.MealDinner
	default:
		kakao.Text("알 수 없는 식사 구분입니다.").Write(w)
		return
	}
	s.flow.Register(r.Context(), user, p, slot).Write(w)
}

func (s *Server) handleMealDelete(w http.ResponseWriter, r *http.Request) {
	p, user, ok := s.parseRequest(w, r)
	if !ok {
		return
	}
	s.flow.DeleteMenu(r.Context(), user, p).Write(w)
}

func (s *Server) handleMealDeleteAll(w http.ResponseWriter, r *http.Request) {
	p, user, ok := s.parseRequest(w, r)
	if !ok {
		return
	}
	s.flow.DeleteAll(r.Context(), user, p).Write(w)
}

func (s *Server) handleMealSubmit(w http.ResponseWriter, r *http.Request) {
	p, user, ok := s.parseRequest(w, r)
	if !ok {
		return
	}
	s.flow.Confirm(r.Context(), user, p).Write(w)
}
