package sso_test

import (
	"context"
	"database/sql"
	"time"

	"github.com/pushkind/sso"
	"github.com/stretchr/testify/mock"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
)

// MockIdentityRepository implements sso.IdentityRepository
type MockIdentityRepository struct {
	mock.Mock
}

func (m *MockIdentityRepository) FindByEmailAndHub(ctx context.Context, email string, hubID int64) (*sso.User, error) {
	args := m.Called(ctx, email, hubID)
	if u := args.Get(0); u != nil {
		return u.(*sso.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockIdentityRepository) FindByID(ctx context.Context, id int64) (*sso.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*sso.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockUsers implements sso.Users
type MockUsers struct {
	MockIdentityRepository
}

func (m *MockUsers) Register(ctx context.Context, user *sso.User) (*sso.User, error) {
	args := m.Called(ctx, user)
	if u := args.Get(0); u != nil {
		return u.(*sso.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) ListByHub(ctx context.Context, hubID int64) ([]*sso.User, error) {
	args := m.Called(ctx, hubID)
	if u := args.Get(0); u != nil {
		return u.([]*sso.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) Update(ctx context.Context, user *sso.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUsers) AssignRoles(ctx context.Context, userID int64, roleIDs []int64) error {
	args := m.Called(ctx, userID, roleIDs)
	return args.Error(0)
}

func (m *MockUsers) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockHubs implements sso.Hubs
type MockHubs struct {
	mock.Mock
}

func (m *MockHubs) GetByID(ctx context.Context, id int64) (*sso.Hub, error) {
	args := m.Called(ctx, id)
	if h := args.Get(0); h != nil {
		return h.(*sso.Hub), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockHubs) List(ctx context.Context) ([]*sso.Hub, error) {
	args := m.Called(ctx)
	if h := args.Get(0); h != nil {
		return h.([]*sso.Hub), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockHubs) Create(ctx context.Context, hub *sso.Hub) (*sso.Hub, error) {
	args := m.Called(ctx, hub)
	if h := args.Get(0); h != nil {
		return h.(*sso.Hub), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockHubs) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRoles implements sso.Roles
type MockRoles struct {
	mock.Mock
}

func (m *MockRoles) GetByID(ctx context.Context, id int64) (*sso.Role, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*sso.Role), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRoles) List(ctx context.Context) ([]*sso.Role, error) {
	args := m.Called(ctx)
	if r := args.Get(0); r != nil {
		return r.([]*sso.Role), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRoles) Create(ctx context.Context, role *sso.Role) (*sso.Role, error) {
	args := m.Called(ctx, role)
	if r := args.Get(0); r != nil {
		return r.(*sso.Role), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRoles) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMenus implements sso.Menus
type MockMenus struct {
	mock.Mock
}

func (m *MockMenus) GetByID(ctx context.Context, id, hubID int64) (*sso.Menu, error) {
	args := m.Called(ctx, id, hubID)
	if mn := args.Get(0); mn != nil {
		return mn.(*sso.Menu), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMenus) ListByHub(ctx context.Context, hubID int64) ([]*sso.Menu, error) {
	args := m.Called(ctx, hubID)
	if mn := args.Get(0); mn != nil {
		return mn.([]*sso.Menu), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMenus) Create(ctx context.Context, menu *sso.Menu) (*sso.Menu, error) {
	args := m.Called(ctx, menu)
	if mn := args.Get(0); mn != nil {
		return mn.(*sso.Menu), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMenus) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// stubRepoManager wires the repository mocks behind the manager interface.
// RunInTx is never exercised by the admin surface, so it is a no-op here.
type stubRepoManager struct {
	users *MockUsers
	hubs  *MockHubs
	roles *MockRoles
	menus *MockMenus
}

func newStubRepoManager() *stubRepoManager {
	return &stubRepoManager{
		users: new(MockUsers),
		hubs:  new(MockHubs),
		roles: new(MockRoles),
		menus: new(MockMenus),
	}
}

func (s *stubRepoManager) Users() sso.Users { return s.users }
func (s *stubRepoManager) Hubs() sso.Hubs   { return s.hubs }
func (s *stubRepoManager) Roles() sso.Roles { return s.roles }
func (s *stubRepoManager) Menus() sso.Menus { return s.menus }
func (s *stubRepoManager) Validate() error  { return nil }
func (s *stubRepoManager) MustValidate()    {}

func (s *stubRepoManager) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	return nil
}

// MockNotifier implements sso.Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, msg sso.RecoveryMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// recordingSink captures activity events for assertions.
type recordingSink struct {
	events []sso.ActivityEvent
}

func (r *recordingSink) Record(ctx context.Context, event sso.ActivityEvent) error {
	r.events = append(r.events, event)
	return nil
}

// testConfig implements sso.Config with direct fields so tests can tune
// durations without mock plumbing.
type testConfig struct {
	signingKey       string
	sessionDuration  time.Duration
	recoveryDuration time.Duration
	issuer           string
	baseURL          string
	tokenLookup      string
}

func newTestConfig() *testConfig {
	return &testConfig{
		signingKey:       "test-signing-key",
		sessionDuration:  7 * 24 * time.Hour,
		recoveryDuration: 24 * time.Hour,
		issuer:           "test-issuer",
		baseURL:          "https://sso.example.com",
		tokenLookup:      "cookie:sso_session",
	}
}

func (c *testConfig) GetSigningKey() string              { return c.signingKey }
func (c *testConfig) GetSessionDuration() time.Duration  { return c.sessionDuration }
func (c *testConfig) GetRecoveryDuration() time.Duration { return c.recoveryDuration }
func (c *testConfig) GetIssuer() string                  { return c.issuer }
func (c *testConfig) GetContextKey() string              { return "sso_session" }
func (c *testConfig) GetTokenLookup() string             { return c.tokenLookup }
func (c *testConfig) GetAuthScheme() string              { return "Bearer" }
func (c *testConfig) GetBaseURL() string                 { return c.baseURL }
func (c *testConfig) GetRejectedRouteKey() string        { return "sso_rejected_route" }
func (c *testConfig) GetRejectedRouteDefault() string    { return "/" }

// testUser builds an identity record with the given roles already loaded.
func testUser(id int64, email string, hubID int64, roles ...string) *sso.User {
	user := &sso.User{
		ID:    id,
		Email: email,
		Name:  "Test User",
		HubID: hubID,
	}
	for i, name := range roles {
		user.Roles = append(user.Roles, &sso.Role{ID: int64(i + 1), Name: name})
	}
	return user
}

// hashFor hashes a plaintext password at the cheapest cost so the suite
// stays fast.
func hashFor(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}
