package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	authadapter "taskmanager/internal/adapter/auth"
	"taskmanager/internal/adapter/http/dto"
	"taskmanager/pkg/apierrors"

	"github.com/stretchr/testify/suite"
)

type APIIntegrationSuite struct {
	IntegrationSuiteBase
}

func TestAPIIntegrationSuite(t *testing.T) {
	suite.Run(t, new(APIIntegrationSuite))
}

func (s *APIIntegrationSuite) do(method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *APIIntegrationSuite) register(name, email, password string) dto.AuthResponse {
	body, err := json.Marshal(map[string]string{"name": name, "email": email, "password": password})
	s.Require().NoError(err)

	rec := s.do(http.MethodPost, "/api/auth/register", "", string(body))
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var got dto.AuthResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().NotEmpty(got.Token)
	return got
}

func (s *APIIntegrationSuite) createTask(token, title, description string) dto.TaskItem {
	body, err := json.Marshal(map[string]string{"title": title, "description": description})
	s.Require().NoError(err)

	rec := s.do(http.MethodPost, "/api/tasks", token, string(body))
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var got dto.TaskItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	return got
}

func (s *APIIntegrationSuite) decodeTask(rec *httptest.ResponseRecorder) dto.TaskItem {
	var got dto.TaskItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	return got
}

func (s *APIIntegrationSuite) requireError(rec *httptest.ResponseRecorder, status int, message string) {
	s.Require().Equal(status, rec.Code, rec.Body.String())

	var got apierrors.JsonErr
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Equal(status, got.ErrDetails.Code)
	s.Require().Equal(message, got.ErrDetails.Message)
}

func (s *APIIntegrationSuite) TestCreateThenGet_ReturnsOwnedTask() {
	alice := s.register("Alice", "alice@example.com", "secret1")

	created := s.createTask(alice.Token, "Write report", "Quarterly numbers")
	s.Require().NotEmpty(created.ID)
	s.Require().Equal("pending", created.Status)
	s.Require().Equal(alice.User.ID, created.User)

	rec := s.do(http.MethodGet, "/api/tasks/"+created.ID, alice.Token, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	got := s.decodeTask(rec)
	s.Require().Equal(created, got)
	s.Require().Equal("Write report", got.Title)
	s.Require().Equal("Quarterly numbers", got.Description)
}

func (s *APIIntegrationSuite) TestOtherUsersTasksAreNotFound() {
	alice := s.register("Alice", "alice@example.com", "secret1")
	bob := s.register("Bob", "bob@example.com", "secret2")
	task := s.createTask(alice.Token, "Private", "Alice only")

	s.requireError(s.do(http.MethodGet, "/api/tasks/"+task.ID, bob.Token, ""), http.StatusNotFound, "Task not found")
	s.requireError(s.do(http.MethodPut, "/api/tasks/"+task.ID, bob.Token, `{"title":"Hijacked"}`), http.StatusNotFound, "Task not found")
	s.requireError(s.do(http.MethodDelete, "/api/tasks/"+task.ID, bob.Token, ""), http.StatusNotFound, "Task not found")

	rec := s.do(http.MethodGet, "/api/tasks", bob.Token, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().JSONEq(`[]`, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/tasks/"+task.ID, alice.Token, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().Equal("Private", s.decodeTask(rec).Title)
}

func (s *APIIntegrationSuite) TestUnknownTaskIDIsNotFound() {
	alice := s.register("Alice", "alice@example.com", "secret1")

	s.requireError(s.do(http.MethodGet, "/api/tasks/not-a-real-id", alice.Token, ""), http.StatusNotFound, "Task not found")
}

func (s *APIIntegrationSuite) TestStatusOnlyUpdate_KeepsFieldsAndIsIdempotent() {
	alice := s.register("Alice", "alice@example.com", "secret1")
	task := s.createTask(alice.Token, "Write report", "Quarterly numbers")

	first := s.do(http.MethodPut, "/api/tasks/"+task.ID, alice.Token, `{"status":"completed"}`)
	s.Require().Equal(http.StatusOK, first.Code, first.Body.String())
	updated := s.decodeTask(first)
	s.Require().Equal("completed", updated.Status)
	s.Require().Equal(task.Title, updated.Title)
	s.Require().Equal(task.Description, updated.Description)
	s.Require().Equal(task.CreatedAt, updated.CreatedAt)
	s.Require().NotEqual(task.UpdatedAt, updated.UpdatedAt)

	second := s.do(http.MethodPut, "/api/tasks/"+task.ID, alice.Token, `{"status":"completed"}`)
	s.Require().Equal(http.StatusOK, second.Code, second.Body.String())
	again := s.decodeTask(second)
	s.Require().Equal(updated.Title, again.Title)
	s.Require().Equal(updated.Description, again.Description)
	s.Require().Equal(updated.Status, again.Status)
}

func (s *APIIntegrationSuite) TestUpdate_BlankFieldsAreIgnored() {
	alice := s.register("Alice", "alice@example.com", "secret1")
	task := s.createTask(alice.Token, "Write report", "Quarterly numbers")

	rec := s.do(http.MethodPut, "/api/tasks/"+task.ID, alice.Token, `{"title":"","description":"Annual numbers"}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	got := s.decodeTask(rec)
	s.Require().Equal("Write report", got.Title)
	s.Require().Equal("Annual numbers", got.Description)
	s.Require().Equal("pending", got.Status)
}

func (s *APIIntegrationSuite) TestDeleteIsNotIdempotent() {
	alice := s.register("Alice", "alice@example.com", "secret1")
	task := s.createTask(alice.Token, "Throwaway", "Delete me")

	rec := s.do(http.MethodDelete, "/api/tasks/"+task.ID, alice.Token, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var deleted dto.DeleteTaskResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &deleted))
	s.Require().Equal(task.ID, deleted.ID)
	s.Require().Equal("Task deleted successfully", deleted.Message)

	s.requireError(s.do(http.MethodDelete, "/api/tasks/"+task.ID, alice.Token, ""), http.StatusNotFound, "Task not found")
	s.requireError(s.do(http.MethodGet, "/api/tasks/"+task.ID, alice.Token, ""), http.StatusNotFound, "Task not found")
}

func (s *APIIntegrationSuite) TestListTasks_NewestFirst() {
	alice := s.register("Alice", "alice@example.com", "secret1")
	t1 := s.createTask(alice.Token, "T1", "first")
	t2 := s.createTask(alice.Token, "T2", "second")
	t3 := s.createTask(alice.Token, "T3", "third")

	rec := s.do(http.MethodGet, "/api/tasks", alice.Token, "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var got []dto.TaskItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Len(got, 3)
	s.Require().Equal([]string{t3.ID, t2.ID, t1.ID}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func (s *APIIntegrationSuite) TestCreateTask_Validation() {
	alice := s.register("Alice", "alice@example.com", "secret1")

	s.requireError(
		s.do(http.MethodPost, "/api/tasks", alice.Token, `{"title":"Only title"}`),
		http.StatusBadRequest,
		"Title and description are required",
	)
	s.requireError(
		s.do(http.MethodPost, "/api/tasks", alice.Token, `{"title":"a","description":"b","status":"archived"}`),
		http.StatusBadRequest,
		"Invalid task payload",
	)
}

func (s *APIIntegrationSuite) TestLoginFailuresLookTheSame() {
	s.register("Alice", "alice@example.com", "secret1")

	wrongPassword := s.do(http.MethodPost, "/api/auth/login", "", `{"email":"alice@example.com","password":"wrong-one"}`)
	unknownEmail := s.do(http.MethodPost, "/api/auth/login", "", `{"email":"ghost@example.com","password":"wrong-one"}`)

	s.requireError(wrongPassword, http.StatusUnauthorized, "Invalid email or password")
	s.requireError(unknownEmail, http.StatusUnauthorized, "Invalid email or password")
	s.Require().Equal(wrongPassword.Body.String(), unknownEmail.Body.String())
}

func (s *APIIntegrationSuite) TestLogin_IsCaseInsensitive() {
	alice := s.register("Alice", "alice@example.com", "secret1")

	rec := s.do(http.MethodPost, "/api/auth/login", "", `{"email":"  ALICE@Example.COM ","password":"secret1"}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var got dto.AuthResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Equal(alice.User, got.User)
	s.Require().NotContains(rec.Body.String(), "password")
}

func (s *APIIntegrationSuite) TestRegisterTwice_IsConflict() {
	s.register("Alice", "alice@example.com", "secret1")

	s.requireError(
		s.do(http.MethodPost, "/api/auth/register", "", `{"name":"Other","email":"Alice@Example.com","password":"secret2"}`),
		http.StatusConflict,
		"User already exists with this email",
	)
}

func (s *APIIntegrationSuite) TestProfile() {
	alice := s.register("Alice", "alice@example.com", "secret1")

	rec := s.do(http.MethodGet, "/api/auth/profile", alice.Token, "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var got dto.ProfileResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Equal(dto.UserItem{ID: alice.User.ID, Name: "Alice", Email: "alice@example.com"}, got.User)
}

func (s *APIIntegrationSuite) TestTokenFailures() {
	alice := s.register("Alice", "alice@example.com", "secret1")

	expiredIssuer := authadapter.NewJWTManager(authadapter.JWTConfig{
		SecretKey: testJWTSecret,
		Issuer:    testJWTIssuer,
		ExpiresIn: -time.Minute,
	})
	expired, err := expiredIssuer.Issue(alice.User.ID)
	s.Require().NoError(err)

	forgedIssuer := authadapter.NewJWTManager(authadapter.JWTConfig{
		SecretKey: "someone-elses-secret",
		Issuer:    testJWTIssuer,
		ExpiresIn: time.Hour,
	})
	forged, err := forgedIssuer.Issue(alice.User.ID)
	s.Require().NoError(err)

	s.requireError(s.do(http.MethodGet, "/api/tasks", "", ""), http.StatusUnauthorized, "Not authorized, no token")
	s.requireError(s.do(http.MethodGet, "/api/tasks", "garbage", ""), http.StatusUnauthorized, "Not authorized, token failed")
	s.requireError(s.do(http.MethodGet, "/api/tasks", expired, ""), http.StatusUnauthorized, "Not authorized, token failed")
	s.requireError(s.do(http.MethodGet, "/api/tasks", forged, ""), http.StatusUnauthorized, "Not authorized, token failed")
	s.requireError(s.do(http.MethodGet, "/api/auth/profile", expired, ""), http.StatusUnauthorized, "Not authorized, token failed")
}

func (s *APIIntegrationSuite) TestTokenOfDeletedUserIsRejected() {
	alice := s.register("Alice", "alice@example.com", "secret1")
	s.createTask(alice.Token, "Orphan", "Owner goes away")

	_, err := s.DB.Exec(s.DB.Rebind("DELETE FROM users WHERE id = ?"), alice.User.ID)
	s.Require().NoError(err)

	s.requireError(s.do(http.MethodGet, "/api/tasks", alice.Token, ""), http.StatusUnauthorized, "Not authorized, token failed")
}

func (s *APIIntegrationSuite) TestUnknownAPIRouteIsJSON404() {
	s.requireError(s.do(http.MethodGet, "/api/nope", "", ""), http.StatusNotFound, "Endpoint not found")
}

func (s *APIIntegrationSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/api/health", "", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().Contains(rec.Body.String(), `"message":"ok"`)
}
