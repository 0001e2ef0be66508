package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/framehaus/studioflow/internal/audit/domain"
	authdomain "github.com/framehaus/studioflow/internal/auth/domain"
	"github.com/framehaus/studioflow/internal/auth/session"
	"github.com/framehaus/studioflow/internal/authorization"
	catalogdomain "github.com/framehaus/studioflow/internal/catalog/domain"
	"github.com/framehaus/studioflow/internal/config"
	jobdomain "github.com/framehaus/studioflow/internal/job/domain"
	"github.com/framehaus/studioflow/internal/observability"
	staffdomain "github.com/framehaus/studioflow/internal/staff/domain"
	ratedomain "github.com/framehaus/studioflow/internal/staffrate/domain"
	vendordomain "github.com/framehaus/studioflow/internal/vendors/domain"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeAuthService struct {
	sessions map[string]snowflake.ID
}

func (f *fakeAuthService) CreateIdentity(context.Context, authdomain.CreateIdentityRequest) (*authdomain.User, error) {
	return nil, nil
}
func (f *fakeAuthService) DeleteIdentity(context.Context, snowflake.ID) error { return nil }
func (f *fakeAuthService) UpdateIdentity(context.Context, snowflake.ID, authdomain.UpdateIdentityRequest) error {
	return nil
}

func (f *fakeAuthService) Login(_ context.Context, req authdomain.LoginRequest) (*authdomain.LoginResult, error) {
	for token, userID := range f.sessions {
		_ = token
		return &authdomain.LoginResult{
			UserID:    userID,
			RawToken:  token,
			ExpiresAt: time.Now().Add(time.Hour),
		}, nil
	}
	return nil, authdomain.ErrInvalidCredentials
}

func (f *fakeAuthService) Logout(context.Context, string) error { return nil }

func (f *fakeAuthService) Authenticate(_ context.Context, rawToken string) (*authdomain.Session, error) {
	userID, ok := f.sessions[rawToken]
	if !ok {
		return nil, authdomain.ErrInvalidSession
	}
	return &authdomain.Session{UserID: userID}, nil
}

func (f *fakeAuthService) ChangePassword(context.Context, snowflake.ID, string) error { return nil }

type fakeStaffService struct {
	byID map[snowflake.ID]staffdomain.Staff

	createCalls int
	lastCreate  staffdomain.CreateStaffRequest
}

func (f *fakeStaffService) Create(_ context.Context, req staffdomain.CreateStaffRequest) (staffdomain.Staff, error) {
	f.createCalls++
	f.lastCreate = req
	return staffdomain.Staff{
		ID:    snowflake.ID(900),
		Name:  req.Name,
		Email: req.Email,
		Role:  staffdomain.NormalizeRole(req.Role),
	}, nil
}

func (f *fakeStaffService) List(context.Context) ([]staffdomain.Staff, error) { return nil, nil }

func (f *fakeStaffService) GetByID(_ context.Context, id string) (staffdomain.Staff, error) {
	parsed, err := snowflake.ParseString(id)
	if err != nil {
		return staffdomain.Staff{}, staffdomain.ErrInvalidID
	}
	staff, ok := f.byID[parsed]
	if !ok {
		return staffdomain.Staff{}, staffdomain.ErrNotFound
	}
	return staff, nil
}

func (f *fakeStaffService) GetByEmail(context.Context, string) (staffdomain.Staff, error) {
	return staffdomain.Staff{}, staffdomain.ErrNotFound
}

func (f *fakeStaffService) Update(context.Context, string, staffdomain.UpdateStaffRequest) (staffdomain.Staff, error) {
	return staffdomain.Staff{}, nil
}

func (f *fakeStaffService) Delete(context.Context, string) error { return nil }

type fakeVendorService struct {
	createCalls int
}

func (f *fakeVendorService) Create(_ context.Context, req vendordomain.CreateVendorRequest) (vendordomain.Vendor, error) {
	f.createCalls++
	return vendordomain.Vendor{ID: snowflake.ID(500), StudioName: req.StudioName}, nil
}

func (f *fakeVendorService) List(context.Context, vendordomain.ListVendorRequest) (vendordomain.ListVendorResponse, error) {
	return vendordomain.ListVendorResponse{}, nil
}

func (f *fakeVendorService) GetByID(context.Context, string) (vendordomain.Vendor, error) {
	return vendordomain.Vendor{}, vendordomain.ErrNotFound
}

func (f *fakeVendorService) Update(context.Context, string, vendordomain.UpdateVendorRequest) (vendordomain.Vendor, error) {
	return vendordomain.Vendor{}, nil
}

func (f *fakeVendorService) Delete(context.Context, string) error { return nil }

type fakeCatalogService struct{}

func (f *fakeCatalogService) Create(context.Context, catalogdomain.CreateServiceRequest) (catalogdomain.Service, error) {
	return catalogdomain.Service{ID: snowflake.ID(600)}, nil
}
func (f *fakeCatalogService) List(context.Context) ([]catalogdomain.Service, error) { return nil, nil }
func (f *fakeCatalogService) GetByID(context.Context, string) (catalogdomain.Service, error) {
	return catalogdomain.Service{}, catalogdomain.ErrNotFound
}
func (f *fakeCatalogService) Update(context.Context, string, catalogdomain.UpdateServiceRequest) (catalogdomain.Service, error) {
	return catalogdomain.Service{}, nil
}
func (f *fakeCatalogService) Delete(context.Context, string) error { return nil }

type fakeRateService struct{}

func (f *fakeRateService) Create(context.Context, ratedomain.CreateConfigRequest) (ratedomain.StaffServiceConfig, error) {
	return ratedomain.StaffServiceConfig{}, nil
}
func (f *fakeRateService) Update(context.Context, string, ratedomain.UpdateConfigRequest) (ratedomain.StaffServiceConfig, error) {
	return ratedomain.StaffServiceConfig{}, nil
}
func (f *fakeRateService) Delete(context.Context, string) error { return nil }
func (f *fakeRateService) ListByStaff(context.Context, string) ([]ratedomain.StaffServiceConfig, error) {
	return nil, nil
}
func (f *fakeRateService) EligibleForService(context.Context, string) ([]ratedomain.EligibleStaff, error) {
	return []ratedomain.EligibleStaff{}, nil
}
func (f *fakeRateService) RateFor(context.Context, snowflake.ID, snowflake.ID) (*ratedomain.StaffServiceConfig, error) {
	return nil, nil
}

type fakeJobService struct {
	jobs         map[snowflake.ID]jobdomain.Job
	lastListReq  jobdomain.ListJobRequest
	transitioned []string
}

func (f *fakeJobService) Create(context.Context, jobdomain.CreateJobRequest) (jobdomain.Job, error) {
	return jobdomain.Job{}, nil
}

func (f *fakeJobService) GetByID(_ context.Context, id string) (jobdomain.Job, error) {
	parsed, err := snowflake.ParseString(id)
	if err != nil {
		return jobdomain.Job{}, jobdomain.ErrInvalidID
	}
	job, ok := f.jobs[parsed]
	if !ok {
		return jobdomain.Job{}, jobdomain.ErrNotFound
	}
	return job, nil
}

func (f *fakeJobService) List(_ context.Context, req jobdomain.ListJobRequest) (jobdomain.ListJobResponse, error) {
	f.lastListReq = req
	return jobdomain.ListJobResponse{}, nil
}

func (f *fakeJobService) Update(context.Context, string, jobdomain.UpdateJobRequest) (jobdomain.UpdateJobResponse, error) {
	return jobdomain.UpdateJobResponse{}, nil
}

func (f *fakeJobService) Delete(context.Context, string) error { return nil }

func (f *fakeJobService) Transition(_ context.Context, id string, target string) (jobdomain.Job, error) {
	f.transitioned = append(f.transitioned, target)
	parsed, _ := snowflake.ParseString(id)
	job := f.jobs[parsed]
	job.Status = jobdomain.Status(target)
	return job, nil
}

type fakeAuditService struct {
	entries []auditdomain.Entry
}

func (f *fakeAuditService) Record(_ context.Context, entry auditdomain.Entry) {
	f.entries = append(f.entries, entry)
}

type testHarness struct {
	server *Server
	engine *gin.Engine

	auth   *fakeAuthService
	staff  *fakeStaffService
	vendor *fakeVendorService
	jobs   *fakeJobService
	audit  *fakeAuditService

	adminToken   string
	managerToken string
	userToken    string

	adminID   snowflake.ID
	managerID snowflake.ID
	userID    snowflake.ID
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	enforcer, err := authorization.NewEnforcer(db)
	require.NoError(t, err)
	authzSvc := authorization.NewService(authorization.Params{
		Log:      zap.NewNop(),
		Enforcer: enforcer,
	})

	h := &testHarness{
		auth:   &fakeAuthService{sessions: map[string]snowflake.ID{}},
		staff:  &fakeStaffService{byID: map[snowflake.ID]staffdomain.Staff{}},
		vendor: &fakeVendorService{},
		jobs:   &fakeJobService{jobs: map[snowflake.ID]jobdomain.Job{}},
		audit:  &fakeAuditService{},
	}

	h.adminID, h.adminToken = snowflake.ID(101), "admin-token"
	h.managerID, h.managerToken = snowflake.ID(102), "manager-token"
	h.userID, h.userToken = snowflake.ID(103), "user-token"

	h.auth.sessions[h.adminToken] = h.adminID
	h.auth.sessions[h.managerToken] = h.managerID
	h.auth.sessions[h.userToken] = h.userID

	h.staff.byID[h.adminID] = staffdomain.Staff{ID: h.adminID, Name: "Admin", Role: staffdomain.RoleAdmin}
	h.staff.byID[h.managerID] = staffdomain.Staff{ID: h.managerID, Name: "Manager", Role: staffdomain.RoleManager}
	h.staff.byID[h.userID] = staffdomain.Staff{ID: h.userID, Name: "User", Role: staffdomain.RoleUser}

	cfg := config.Config{HTTPAddr: ":0"}
	reg := prometheus.NewRegistry()
	engine := NewEngine(reg, observability.NewHTTPMetrics(reg))

	node, err := snowflake.NewNode(9)
	require.NoError(t, err)

	h.server = NewServer(ServerParams{
		Engine:     engine,
		Cfg:        cfg,
		Log:        zap.NewNop(),
		GenID:      node,
		Sessions:   session.NewManager(cfg),
		AuthSvc:    h.auth,
		AuthzSvc:   authzSvc,
		AuditSvc:   h.audit,
		CatalogSvc: &fakeCatalogService{},
		VendorSvc:  h.vendor,
		StaffSvc:   h.staff,
		RateSvc:    &fakeRateService{},
		JobSvc:     h.jobs,
	})
	h.engine = engine
	return h
}

func (h *testHarness) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: token})
	}
	w := httptest.NewRecorder()
	h.engine.ServeHTTP(w, req)
	return w
}

func TestAdminRoutesRequireSession(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodGet, "/admin/vendors", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = h.do(http.MethodGet, "/admin/vendors", "bogus-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVendorCreateRoleMatrix(t *testing.T) {
	h := newHarness(t)
	body := map[string]any{
		"studio_name":    "Lensflare Films",
		"contact_person": "Dina",
		"mobile":         "555-0147",
	}

	t.Run("manager allowed", func(t *testing.T) {
		w := h.do(http.MethodPost, "/admin/vendors", h.managerToken, body)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, h.vendor.createCalls)
	})

	t.Run("user forbidden", func(t *testing.T) {
		w := h.do(http.MethodPost, "/admin/vendors", h.userToken, body)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, 1, h.vendor.createCalls)
	})

	t.Run("manager cannot delete", func(t *testing.T) {
		w := h.do(http.MethodDelete, "/admin/vendors/500", h.managerToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestStaffRoutesAdminOnly(t *testing.T) {
	h := newHarness(t)
	body := map[string]any{
		"name":     "New Hire",
		"email":    "hire@example.com",
		"password": "correct horse",
		"role":     "USER",
	}

	w := h.do(http.MethodPost, "/admin/staff", h.managerToken, body)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Zero(t, h.staff.createCalls)

	w = h.do(http.MethodPost, "/admin/staff", h.adminToken, body)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, h.staff.createCalls)
	assert.Equal(t, "hire@example.com", h.staff.lastCreate.Email)
}

func TestJobListScopedForUserRole(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodGet, "/admin/jobs?staff_id=101", h.userToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	// The query filter is overridden with the caller's own ID.
	assert.Equal(t, h.userID.String(), h.jobs.lastListReq.StaffID)

	w = h.do(http.MethodGet, "/admin/jobs?staff_id=103", h.adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "103", h.jobs.lastListReq.StaffID)
}

func TestJobTransitionVisibility(t *testing.T) {
	h := newHarness(t)
	ownJob := snowflake.ID(700)
	otherJob := snowflake.ID(701)
	h.jobs.jobs[ownJob] = jobdomain.Job{ID: ownJob, StaffID: h.userID, Status: jobdomain.StatusPending}
	h.jobs.jobs[otherJob] = jobdomain.Job{ID: otherJob, StaffID: h.managerID, Status: jobdomain.StatusPending}

	body := map[string]any{"status": "IN_PROGRESS"}

	t.Run("assigned user allowed", func(t *testing.T) {
		w := h.do(http.MethodPost, "/admin/jobs/700/status", h.userToken, body)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("other user's job forbidden", func(t *testing.T) {
		w := h.do(http.MethodPost, "/admin/jobs/701/status", h.userToken, body)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("manager allowed on any job", func(t *testing.T) {
		w := h.do(http.MethodPost, "/admin/jobs/701/status", h.managerToken, body)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestNavigationEndpointPerRole(t *testing.T) {
	h := newHarness(t)

	var payload struct {
		Data []struct {
			Route string `json:"route"`
		} `json:"data"`
	}

	w := h.do(http.MethodGet, "/auth/navigation", h.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))

	routes := make([]string, 0, len(payload.Data))
	for _, item := range payload.Data {
		routes = append(routes, item.Route)
	}
	assert.NotContains(t, routes, "/dashboard/admin/staff")
	assert.Contains(t, routes, "/dashboard/my-jobs")

	w = h.do(http.MethodGet, "/auth/navigation", h.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	payload.Data = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	routes = routes[:0]
	for _, item := range payload.Data {
		routes = append(routes, item.Route)
	}
	assert.Contains(t, routes, "/dashboard/admin/staff")
}

func TestPrivilegedWritesAreAudited(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodPost, "/admin/vendors", h.managerToken, map[string]any{
		"studio_name":    "Lensflare Films",
		"contact_person": "Dina",
		"mobile":         "555-0147",
	})
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, h.audit.entries, 1)
	entry := h.audit.entries[0]
	assert.Equal(t, "vendor.create", entry.Action)
	require.NotNil(t, entry.ActorID)
	assert.Equal(t, h.managerID, *entry.ActorID)
	assert.Equal(t, string(staffdomain.RoleManager), entry.ActorRole)
}
