package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/festivefusion/festival-api/internal/api/handler/v1/response"
	"github.com/festivefusion/festival-api/internal/config"
	"github.com/festivefusion/festival-api/internal/domain"
	"github.com/festivefusion/festival-api/internal/repository/dao/daotest"
	"github.com/festivefusion/festival-api/internal/repository/tokenstore"
)

const adminEmail = "admin@festive.in"

type ServerSuite struct {
	suite.Suite

	server *Server
	store  *daotest.Store
}

func TestServer(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func (s *ServerSuite) SetupTest() {
	conf := &config.AppConfig{
		API: &config.APIConfig{
			Port:               "0",
			BaseURL:            "localhost",
			AllowedCORSDomains: []string{"*"},
			JWTSigningKey:      "server-test-key",
			JWTTTL:             time.Hour,
		},
		Gin:  &config.GinConfig{Mode: gin.TestMode},
		Auth: &config.AuthConfig{AdminEmails: []string{adminEmail}},
	}

	s.store = daotest.NewStore()
	s.server = NewServer(conf, DAOs{
		Festivals: s.store.Festivals(),
		Users:     s.store.Users(),
		Visits:    s.store.Visits(),
	}, tokenstore.NewMemoryStore())
}

func (s *ServerSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.server.Router.ServeHTTP(w, req)

	return w
}

func (s *ServerSuite) decode(w *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (s *ServerSuite) register(name, email string) (domain.User, string) {
	w := s.do(http.MethodPost, "/api/auth/register", "", gin.H{"name": name, "email": email, "password": "secret1"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var res response.LoginResponse
	s.decode(w, &res)

	return res.User, res.Token
}

func festivalBody(name string) gin.H {
	return gin.H{
		"name":                 name,
		"description":          "Boat races on the backwaters.",
		"region":               "South",
		"type":                 domain.FestivalTypeHarvest,
		"startDate":            "2099-08-20",
		"endDate":              "2099-08-21T18:00:00Z",
		"culturalSignificance": "Part of the Onam season.",
		"location":             gin.H{"city": "Alappuzha", "state": "Kerala"},
		"images":               []gin.H{{"url": "https://example.com/boat.jpg", "caption": "Snake boat"}},
		"touristInfo":          gin.H{"crowdLevel": "high", "budgetLevel": "moderate"},
		"isHiddenGem":          true,
	}
}

func (s *ServerSuite) createFestival(token, name string) domain.Festival {
	w := s.do(http.MethodPost, "/api/festivals", token, festivalBody(name))
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var f domain.Festival
	s.decode(w, &f)

	return f
}

func (s *ServerSuite) TestHealthcheck() {
	w := s.do(http.MethodGet, "/", "", nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *ServerSuite) TestRegisterLoginMe() {
	user, _ := s.register("A", "a@x.com")
	s.Equal(domain.RoleUser, user.Role)

	w := s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "a@x.com", "password": "secret1"})
	s.Require().Equal(http.StatusOK, w.Code)
	s.NotContains(w.Body.String(), "password")

	var login response.LoginResponse
	s.decode(w, &login)
	s.Equal(user.ID, login.User.ID)

	w = s.do(http.MethodGet, "/api/auth/me", login.Token, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var me domain.User
	s.decode(w, &me)
	s.Equal("a@x.com", me.Email)
}

func (s *ServerSuite) TestRegister_Rejects() {
	s.register("A", "a@x.com")

	w := s.do(http.MethodPost, "/api/auth/register", "", gin.H{"name": "B", "email": "a@x.com", "password": "secret1"})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "user already exists")

	w = s.do(http.MethodPost, "/api/auth/register", "", gin.H{"name": "C", "email": "not-an-email", "password": "secret1"})
	s.Equal(http.StatusBadRequest, w.Code)

	var body response.Err
	s.decode(w, &body)
	s.Contains(body.Errors, "email")
}

func (s *ServerSuite) TestLogin_GenericFailure() {
	s.register("A", "a@x.com")

	wrong := s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "a@x.com", "password": "nope-nope"})
	unknown := s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "b@x.com", "password": "secret1"})

	s.Equal(http.StatusUnauthorized, wrong.Code)
	s.Equal(http.StatusUnauthorized, unknown.Code)
	s.JSONEq(wrong.Body.String(), unknown.Body.String())
}

func (s *ServerSuite) TestLogout() {
	_, token := s.register("A", "a@x.com")

	s.Equal(http.StatusOK, s.do(http.MethodPost, "/api/auth/logout", token, nil).Code)
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/auth/me", token, nil).Code)
}

func (s *ServerSuite) TestFestivalRoundTrip() {
	_, token := s.register("Admin", adminEmail)

	created := s.createFestival(token, "Nehru Trophy Boat Race")
	s.NotEmpty(created.ID)
	s.Equal(time.Date(2099, 8, 20, 0, 0, 0, 0, time.UTC), created.StartDate)

	w := s.do(http.MethodGet, "/api/festivals/"+created.ID, "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var got domain.Festival
	s.decode(w, &got)
	s.Equal(created.ID, got.ID)
	s.Equal(created.Name, got.Name)
	s.True(created.StartDate.Equal(got.StartDate))

	w = s.do(http.MethodPut, "/api/festivals/"+created.ID, token, gin.H{"name": "Boat Race", "isHiddenGem": false})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/festivals/"+created.ID, "", nil)
	s.decode(w, &got)
	s.Equal("Boat Race", got.Name)
	s.False(got.IsHiddenGem)
	s.Equal(created.Description, got.Description)

	w = s.do(http.MethodDelete, "/api/festivals/"+created.ID, token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"message":"Festival deleted successfully"}`, w.Body.String())

	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/api/festivals/"+created.ID, "", nil).Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodDelete, "/api/festivals/"+created.ID, token, nil).Code)
}

func (s *ServerSuite) TestFestivalWrites_RequireAdmin() {
	_, token := s.register("A", "a@x.com")

	s.Equal(http.StatusUnauthorized, s.do(http.MethodPost, "/api/festivals", "", festivalBody("X")).Code)
	s.Equal(http.StatusForbidden, s.do(http.MethodPost, "/api/festivals", token, festivalBody("X")).Code)
	s.Equal(http.StatusUnauthorized, s.do(http.MethodPost, "/api/festivals", "not-a-jwt", festivalBody("X")).Code)
}

func (s *ServerSuite) TestFestival_Validation() {
	_, token := s.register("Admin", adminEmail)

	body := festivalBody("Backwards")
	body["endDate"] = "2099-08-19"
	w := s.do(http.MethodPost, "/api/festivals", token, body)
	s.Equal(http.StatusBadRequest, w.Code)

	body = festivalBody("Bad date")
	body["startDate"] = "next tuesday"
	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/api/festivals", token, body).Code)

	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/api/festivals/not-an-id", "", nil).Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodPut, "/api/festivals/"+uuid.NewString(), token, gin.H{"name": "x"}).Code)
}

func (s *ServerSuite) TestListFestivals() {
	_, token := s.register("Admin", adminEmail)
	gem := s.createFestival(token, "Gem")

	w := s.do(http.MethodGet, "/api/festivals?isHiddenGem=true&crowdLevel=high&startDate=2099-01-01", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var list []domain.Festival
	s.decode(w, &list)
	s.Require().Len(list, 1)
	s.Equal(gem.ID, list[0].ID)

	w = s.do(http.MethodGet, "/api/festivals?startDate=2100-01-01", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.decode(w, &list)
	s.Require().Len(list, 1, "a lone bound does not filter")
	s.Equal(gem.ID, list[0].ID)

	w = s.do(http.MethodGet, "/api/festivals?startDate=2100-01-01&endDate=2100-12-31", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, w.Body.String())

	w = s.do(http.MethodGet, "/api/festivals?startDate=2099-01-01&endDate=2099-12-31", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.decode(w, &list)
	s.Len(list, 1)

	w = s.do(http.MethodGet, "/api/festivals?region=Nowhere", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, w.Body.String())

	for _, query := range []string{"type=carnival", "crowdLevel=extreme", "isHiddenGem=maybe", "startDate=soon"} {
		s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/festivals?"+query, "", nil).Code, query)
	}

	w = s.do(http.MethodGet, "/api/festivals/hidden-gems", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.decode(w, &list)
	s.Len(list, 1)

	w = s.do(http.MethodGet, "/api/festivals/upcoming", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.decode(w, &list)
	s.Len(list, 1)
}

func (s *ServerSuite) TestPlannedVisits() {
	_, adminToken := s.register("Admin", adminEmail)
	festival := s.createFestival(adminToken, "Hornbill")
	_, owner := s.register("Owner", "owner@x.com")
	_, intruder := s.register("Intruder", "intruder@x.com")

	w := s.do(http.MethodPost, "/api/planned-visits", owner, gin.H{
		"festivalId": festival.ID,
		"visitDate":  "2099-08-20",
		"groupSize":  "3.9",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var visit domain.PlannedVisit
	s.decode(w, &visit)
	s.Equal(3, visit.GroupSize)
	s.Equal(domain.VisitStatusPlanned, visit.Status)
	s.Require().NotNil(visit.Festival)
	s.Equal(festival.ID, visit.Festival.ID)

	w = s.do(http.MethodGet, "/api/planned-visits/user", owner, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var visits []domain.PlannedVisit
	s.decode(w, &visits)
	s.Require().Len(visits, 1)
	s.Equal("Hornbill", visits[0].Festival.Name)

	w = s.do(http.MethodGet, "/api/planned-visits/user", intruder, nil)
	s.JSONEq(`[]`, w.Body.String())

	s.Equal(http.StatusNotFound, s.do(http.MethodPut, "/api/planned-visits/"+visit.ID, intruder, gin.H{"groupSize": 10}).Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodDelete, "/api/planned-visits/"+visit.ID, intruder, nil).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodPut, "/api/planned-visits/123", owner, gin.H{"groupSize": 10}).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodDelete, "/api/planned-visits/123", owner, nil).Code)

	w = s.do(http.MethodPut, "/api/planned-visits/"+visit.ID, owner, gin.H{"groupSize": 10, "status": "completed"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.decode(w, &visit)
	s.Equal(10, visit.GroupSize)
	s.Equal(domain.VisitStatusCompleted, visit.Status)

	s.Equal(http.StatusBadRequest, s.do(http.MethodPut, "/api/planned-visits/"+visit.ID, owner, gin.H{"status": "maybe"}).Code)

	w = s.do(http.MethodDelete, "/api/planned-visits/"+visit.ID, owner, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodDelete, "/api/planned-visits/"+visit.ID, owner, nil).Code)
}

func (s *ServerSuite) TestPlannedVisits_Rejects() {
	_, adminToken := s.register("Admin", adminEmail)
	festival := s.createFestival(adminToken, "Hornbill")
	_, token := s.register("A", "a@x.com")

	bodies := []gin.H{
		{"festivalId": "bad", "visitDate": "2099-08-20", "groupSize": 1},
		{"festivalId": uuid.NewString(), "visitDate": "2099-08-20", "groupSize": 1},
		{"festivalId": festival.ID, "visitDate": "2099-08-20", "groupSize": 0},
		{"festivalId": festival.ID, "visitDate": "2099-08-20", "groupSize": "many"},
		{"festivalId": festival.ID, "groupSize": 1},
	}
	for _, body := range bodies {
		w := s.do(http.MethodPost, "/api/planned-visits", token, body)
		s.Equal(http.StatusBadRequest, w.Code, w.Body.String())
	}

	s.Equal(http.StatusUnauthorized, s.do(http.MethodPost, "/api/planned-visits", "", bodies[0]).Code)
}

func (s *ServerSuite) TestFestivalDelete_CascadesVisits() {
	_, adminToken := s.register("Admin", adminEmail)
	festival := s.createFestival(adminToken, "Short lived")
	_, token := s.register("A", "a@x.com")

	w := s.do(http.MethodPost, "/api/planned-visits", token, gin.H{
		"festivalId": festival.ID, "visitDate": "2099-08-20", "groupSize": 2,
	})
	s.Require().Equal(http.StatusCreated, w.Code)

	s.Require().Equal(http.StatusOK, s.do(http.MethodDelete, "/api/festivals/"+festival.ID, adminToken, nil).Code)

	w = s.do(http.MethodGet, "/api/planned-visits/user", token, nil)
	s.JSONEq(`[]`, w.Body.String())
}

func (s *ServerSuite) TestSavedFestivalsAndPreferences() {
	_, adminToken := s.register("Admin", adminEmail)
	festival := s.createFestival(adminToken, "Hornbill")
	_, token := s.register("A", "a@x.com")

	w := s.do(http.MethodPost, "/api/users/me/saved-festivals/"+festival.ID, token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var user domain.User
	s.decode(w, &user)
	s.Equal([]string{festival.ID}, user.SavedFestivals)

	w = s.do(http.MethodGet, "/api/users/me/saved-festivals", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var saved []domain.Festival
	s.decode(w, &saved)
	s.Require().Len(saved, 1)
	s.Equal(festival.ID, saved[0].ID)

	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/api/users/me/saved-festivals/"+uuid.NewString(), token, nil).Code)

	w = s.do(http.MethodDelete, "/api/users/me/saved-festivals/"+festival.ID, token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.decode(w, &user)
	s.Empty(user.SavedFestivals)

	w = s.do(http.MethodPut, "/api/users/me/preferences", token, gin.H{"categories": []string{"tribal"}, "regions": []string{"Northeast"}})
	s.Require().Equal(http.StatusOK, w.Code)
	s.decode(w, &user)
	s.Equal([]string{"Northeast"}, user.Preferences.Regions)
}

func (s *ServerSuite) TestPanicRecovery() {
	s.server.Router.GET("/boom", func(*gin.Context) { panic("boom") })

	w := s.do(http.MethodGet, "/boom", "", nil)

	s.Equal(http.StatusInternalServerError, w.Code)
	s.NotContains(w.Body.String(), "boom")
}
