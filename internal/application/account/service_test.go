package account_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/account-service/internal/application/account"
	"github.com/jhoicas/account-service/internal/application/audit"
	"github.com/jhoicas/account-service/internal/domain"
	"github.com/jhoicas/account-service/internal/domain/entity"
	"github.com/jhoicas/account-service/internal/domain/password"
	"github.com/jhoicas/account-service/internal/domain/repository"
	"github.com/jhoicas/account-service/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// memStore implementación en memoria de EmployeeRepository. Devuelve copias
// para imitar la semántica de una DB: las mutaciones solo se ven tras Save.
type memStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[string]*entity.Employee // key: email en minúsculas
	saves  int
}

func newMemStore() *memStore {
	return &memStore{rows: make(map[string]*entity.Employee)}
}

func clone(e *entity.Employee) *entity.Employee {
	cp := *e
	cp.Roles = append([]string(nil), e.Roles...)
	return &cp
}

func (s *memStore) FindByEmail(_ context.Context, email string) (*entity.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.rows[strings.ToLower(email)]; ok {
		return clone(e), nil
	}
	return nil, nil
}

func (s *memStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.rows[strings.ToLower(email)]
	return ok, nil
}

func (s *memStore) Save(_ context.Context, e *entity.Employee) (*entity.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == 0 {
		s.nextID++
		e.ID = s.nextID
	}
	s.rows[strings.ToLower(e.Email)] = clone(e)
	s.saves++
	return clone(e), nil
}

func (s *memStore) Delete(_ context.Context, e *entity.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, strings.ToLower(e.Email))
	return nil
}

func (s *memStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.rows)), nil
}

func (s *memStore) List(_ context.Context) ([]*entity.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]*entity.Employee, 0, len(s.rows))
	for _, e := range s.rows {
		list = append(list, clone(e))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// memTx serializa las mutaciones con un mutex global, suficiente para la
// garantía de a-lo-sumo-una-mutación-concurrente en tests.
type memTx struct {
	mu    sync.Mutex
	store *memStore
}

func (t *memTx) Run(_ context.Context, fn func(repository.EmployeeRepository) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(t.store)
}

// memEvents sink en memoria de eventos de seguridad.
type memEvents struct {
	mu     sync.Mutex
	nextID int64
	events []*entity.SecurityEvent
}

func (m *memEvents) Append(_ context.Context, e *entity.SecurityEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	e.ID = m.nextID
	cp := *e
	m.events = append(m.events, &cp)
	return nil
}

func (m *memEvents) List(_ context.Context) ([]*entity.SecurityEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*entity.SecurityEvent(nil), m.events...), nil
}

func (m *memEvents) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.Action)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	svc    *account.Service
	store  *memStore
	events *memEvents
}

func newFixture() *fixture {
	store := newMemStore()
	events := &memEvents{}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	auditSvc := audit.NewService(events, log)
	policy := password.NewPolicy(password.WithCost(bcrypt.MinCost))
	svc := account.NewService(&memTx{store: store}, store, policy, auditSvc)
	return &fixture{svc: svc, store: store, events: events}
}

func (f *fixture) register(t *testing.T, email string) *entity.Employee {
	t.Helper()
	e, err := f.svc.Register(context.Background(), account.RegistrationInput{
		Name:     "Test",
		Lastname: "Employee",
		Email:    email,
		Password: "secretpassword12",
	}, "/api/auth/signup")
	require.NoError(t, err)
	return e
}

// registra un admin y un usuario de negocio, en ese orden.
func (f *fixture) registerPair(t *testing.T) (admin, user *entity.Employee) {
	t.Helper()
	admin = f.register(t, "alice@acme.com")
	user = f.register(t, "bob@acme.com")
	return admin, user
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_PrimeraCuentaEsAdministrator(t *testing.T) {
	f := newFixture()
	admin, user := f.registerPair(t)

	assert.Equal(t, []string{entity.RoleAdministrator}, admin.Roles,
		"la primera cuenta debe recibir exactamente ADMINISTRATOR")
	assert.Equal(t, []string{entity.RoleUser}, user.Roles,
		"toda cuenta posterior debe recibir USER")
	assert.NotZero(t, admin.ID)
	assert.False(t, admin.Login.Locked)
	assert.True(t, admin.Login.Enabled)
	assert.Zero(t, admin.Login.LoginAttempts)
}

func TestRegister_EmailDuplicadoRechazado(t *testing.T) {
	f := newFixture()
	f.register(t, "alice@acme.com")

	// mismo email con otro case y otros campos: siempre duplicado
	_, err := f.svc.Register(context.Background(), account.RegistrationInput{
		Name:     "Other",
		Lastname: "Person",
		Email:    "ALICE@ACME.COM",
		Password: "otherpassword34",
	}, "/api/auth/signup")
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestRegister_PasswordComprometidoRechazado(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Register(context.Background(), account.RegistrationInput{
		Name:     "Test",
		Lastname: "Employee",
		Email:    "alice@acme.com",
		Password: "PasswordForJanuary",
	}, "/api/auth/signup")
	assert.ErrorIs(t, err, domain.ErrBreachedPassword)
}

func TestRegister_NoPersisteElPasswordEnPlano(t *testing.T) {
	f := newFixture()
	f.register(t, "alice@acme.com")

	stored, err := f.store.FindByEmail(context.Background(), "alice@acme.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secretpassword12", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

// ──────────────────────────────────────────────────────────────────────────────
// ChangePassword
// ──────────────────────────────────────────────────────────────────────────────

func TestChangePassword_ReemplazaElHash(t *testing.T) {
	f := newFixture()
	f.register(t, "alice@acme.com")
	before, _ := f.store.FindByEmail(context.Background(), "alice@acme.com")

	updated, err := f.svc.ChangePassword(context.Background(), "alice@acme.com", "newsecretpass34", "/api/auth/changepass")
	require.NoError(t, err)
	assert.NotEqual(t, before.PasswordHash, updated.PasswordHash)
	assert.Contains(t, f.events.actions(), entity.ActionChangePassword)
}

func TestChangePassword_MismoPasswordRechazado(t *testing.T) {
	f := newFixture()
	f.register(t, "alice@acme.com")

	_, err := f.svc.ChangePassword(context.Background(), "alice@acme.com", "secretpassword12", "/api/auth/changepass")
	assert.ErrorIs(t, err, domain.ErrPasswordNotChanged)
}

func TestChangePassword_PasswordComprometidoRechazado(t *testing.T) {
	f := newFixture()
	f.register(t, "alice@acme.com")

	_, err := f.svc.ChangePassword(context.Background(), "alice@acme.com", "PasswordForMarch", "/api/auth/changepass")
	assert.ErrorIs(t, err, domain.ErrBreachedPassword)
}

func TestChangePassword_CuentaInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.svc.ChangePassword(context.Background(), "ghost@acme.com", "whateverpass12", "/api/auth/changepass")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateRole
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateRole_GrantAgregaRolDeNegocio(t *testing.T) {
	f := newFixture()
	f.registerPair(t)

	updated, err := f.svc.UpdateRole(context.Background(), account.RoleUpdate{
		User: "bob@acme.com", Role: entity.RoleAccountant, Operation: account.OpGrant,
	}, "alice@acme.com", "/api/admin/user/role")
	require.NoError(t, err)
	assert.Equal(t, []string{entity.RoleUser, entity.RoleAccountant}, updated.Roles)
	assert.Contains(t, f.events.actions(), entity.ActionGrantRole)

	// segunda concesión idéntica: duplicada
	_, err = f.svc.UpdateRole(context.Background(), account.RoleUpdate{
		User: "bob@acme.com", Role: entity.RoleAccountant, Operation: account.OpGrant,
	}, "alice@acme.com", "/api/admin/user/role")
	assert.ErrorIs(t, err, domain.ErrRoleAlreadyGranted)
}

func TestUpdateRole_AdministradorNoCombinaRoles(t *testing.T) {
	f := newFixture()
	f.registerPair(t)

	_, err := f.svc.UpdateRole(context.Background(), account.RoleUpdate{
		User: "alice@acme.com", Role: entity.RoleUser, Operation: account.OpGrant,
	}, "alice@acme.com", "/api/admin/user/role")
	assert.ErrorIs(t, err, domain.ErrAdminRoleConflict)
}

func TestUpdateRole_RolInvalidoCortaAntesDelLookup(t *testing.T) {
	f := newFixture()
	// sin cuentas registradas: el rol inválido debe reportarse antes que la cuenta
	_, err := f.svc.UpdateRole(context.Background(), account.RoleUpdate{
		User: "ghost@acme.com", Role: "MANAGER", Operation: account.OpGrant,
	}, "alice@acme.com", "/api/admin/user/role")
	assert.ErrorIs(t, err, domain.ErrRoleNotFound)
}

func TestUpdateRole_CuentaInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.svc.UpdateRole(context.Background(), account.RoleUpdate{
		User: "ghost@acme.com", Role: entity.RoleUser, Operation: account.OpGrant,
	}, "alice@acme.com", "/api/admin/user/role")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdateRole_RemoveValidaEnOrden(t *testing.T) {
	f := newFixture()
	f.registerPair(t)

	// ADMINISTRATOR nunca se retira por esta vía
	_, err := f.svc.UpdateRole(context.Background(), account.RoleUpdate{
		User: "bob@acme.com", Role: entity.RoleAdministrator, Operation: account.OpRemove,
	}, "alice@acme.com", "/api/admin/user/role")
	assert.ErrorIs(t, err, domain.ErrAdminRoleProtected)

	// bob solo tiene USER: retirar el último rol está prohibido
	_, err = f.svc.UpdateRole(context.Background(), account.RoleUpdate{
		User: "bob@acme.com", Role: entity.RoleUser, Operation: account.OpRemove,
	}, "alice@acme.com", "/api/admin/user/role")
	assert.ErrorIs(t, err, domain.ErrLastRole)

	// con dos roles, retirar uno que no posee también falla
	_, err = f.svc.UpdateRole(context.Background(), account.RoleUpdate{
		User: "bob@acme.com", Role: entity.RoleAccountant, Operation: account.OpGrant,
	}, "alice@acme.com", "/api/admin/user/role")
	require.NoError(t, err)
	_, err = f.svc.UpdateRole(context.Background(), account.RoleUpdate{
		User: "bob@acme.com", Role: entity.RoleAuditor, Operation: account.OpRemove,
	}, "alice@acme.com", "/api/admin/user/role")
	assert.ErrorIs(t, err, domain.ErrRoleNotHeld)
}

func TestUpdateRole_GrantLuegoRemoveRestauraElConjunto(t *testing.T) {
	f := newFixture()
	f.registerPair(t)

	// bob queda con {USER, ACCOUNTANT} antes del round-trip
	_, err := f.svc.UpdateRole(context.Background(), account.RoleUpdate{
		User: "bob@acme.com", Role: entity.RoleAccountant, Operation: account.OpGrant,
	}, "alice@acme.com", "/api/admin/user/role")
	require.NoError(t, err)

	granted, err := f.svc.UpdateRole(context.Background(), account.RoleUpdate{
		User: "bob@acme.com", Role: entity.RoleAuditor, Operation: account.OpGrant,
	}, "alice@acme.com", "/api/admin/user/role")
	require.NoError(t, err)
	assert.Equal(t, []string{entity.RoleUser, entity.RoleAccountant, entity.RoleAuditor}, granted.Roles)

	removed, err := f.svc.UpdateRole(context.Background(), account.RoleUpdate{
		User: "bob@acme.com", Role: entity.RoleAuditor, Operation: account.OpRemove,
	}, "alice@acme.com", "/api/admin/user/role")
	require.NoError(t, err)
	assert.Equal(t, []string{entity.RoleUser, entity.RoleAccountant}, removed.Roles)
}

func TestInvariante_RolesNuncaVacioNiMixto(t *testing.T) {
	f := newFixture()
	f.registerPair(t)
	f.register(t, "carol@acme.com")

	list, err := f.svc.ListEmployees(context.Background())
	require.NoError(t, err)
	for _, e := range list {
		assert.NotEmpty(t, e.Roles, "roles nunca debe observarse vacío")
		if e.IsAdministrator() {
			assert.Len(t, e.Roles, 1, "ADMINISTRATOR no se combina con roles de negocio")
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// RemoveAccount / SetLockStatus
// ──────────────────────────────────────────────────────────────────────────────

func TestRemoveAccount_AdministradorProtegido(t *testing.T) {
	f := newFixture()
	f.registerPair(t)

	err := f.svc.RemoveAccount(context.Background(), "alice@acme.com", "alice@acme.com", "/api/admin/user")
	assert.ErrorIs(t, err, domain.ErrAdminDeletion)

	err = f.svc.RemoveAccount(context.Background(), "bob@acme.com", "alice@acme.com", "/api/admin/user")
	require.NoError(t, err)

	gone, err := f.store.FindByEmail(context.Background(), "bob@acme.com")
	require.NoError(t, err)
	assert.Nil(t, gone, "la cuenta borrada no debe resolverse")
	assert.Contains(t, f.events.actions(), entity.ActionDeleteUser)
}

func TestRemoveAccount_CuentaInexistente(t *testing.T) {
	f := newFixture()
	err := f.svc.RemoveAccount(context.Background(), "ghost@acme.com", "alice@acme.com", "/api/admin/user")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestSetLockStatus_LockYUnlock(t *testing.T) {
	f := newFixture()
	f.registerPair(t)

	status, err := f.svc.SetLockStatus(context.Background(), account.LockUpdate{
		User: "bob@acme.com", Operation: account.OpLock,
	}, "alice@acme.com", "/api/admin/user/access")
	require.NoError(t, err)
	assert.Equal(t, "User bob@acme.com locked!", status)

	locked, _ := f.store.FindByEmail(context.Background(), "bob@acme.com")
	assert.True(t, locked.Login.Locked)

	status, err = f.svc.SetLockStatus(context.Background(), account.LockUpdate{
		User: "bob@acme.com", Operation: account.OpUnlock,
	}, "alice@acme.com", "/api/admin/user/access")
	require.NoError(t, err)
	assert.Equal(t, "User bob@acme.com unlocked!", status)

	unlocked, _ := f.store.FindByEmail(context.Background(), "bob@acme.com")
	assert.False(t, unlocked.Login.Locked)
	assert.Contains(t, f.events.actions(), entity.ActionLockUser)
	assert.Contains(t, f.events.actions(), entity.ActionUnlockUser)
}

func TestSetLockStatus_AdministradorNoSeBloqueaManualmente(t *testing.T) {
	f := newFixture()
	f.registerPair(t)

	_, err := f.svc.SetLockStatus(context.Background(), account.LockUpdate{
		User: "alice@acme.com", Operation: account.OpLock,
	}, "alice@acme.com", "/api/admin/user/access")
	assert.ErrorIs(t, err, domain.ErrAdminLock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Seguimiento de intentos de login
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordLoginFailure_BloqueaEnElQuintoIntento(t *testing.T) {
	f := newFixture()
	f.registerPair(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, f.svc.RecordLoginFailure(context.Background(), "bob@acme.com", "/api/auth/login"))
	}

	bob, _ := f.store.FindByEmail(context.Background(), "bob@acme.com")
	assert.Equal(t, 5, bob.Login.LoginAttempts)
	assert.True(t, bob.Login.Locked, "el quinto fallo debe bloquear la cuenta")

	// primer fallo: LOGIN_FAILED; fallos 2-4: BRUTE_FORCE; quinto: LOCK_USER
	actions := f.events.actions()
	// los dos primeros eventos son los CREATE_USER del registro
	assert.Equal(t, []string{
		entity.ActionCreateUser, entity.ActionCreateUser,
		entity.ActionLoginFailed,
		entity.ActionBruteForce, entity.ActionBruteForce, entity.ActionBruteForce,
		entity.ActionLockUser,
	}, actions)
}

func TestRecordLoginFailure_BloqueaTambienAlAdministrador(t *testing.T) {
	f := newFixture()
	f.registerPair(t)

	// el bloqueo defensivo es incondicional, a diferencia del bloqueo manual
	for i := 0; i < 5; i++ {
		require.NoError(t, f.svc.RecordLoginFailure(context.Background(), "alice@acme.com", "/api/auth/login"))
	}
	admin, _ := f.store.FindByEmail(context.Background(), "alice@acme.com")
	assert.True(t, admin.Login.Locked)
}

func TestRecordLoginFailure_CuentaInexistentePropaga(t *testing.T) {
	f := newFixture()
	err := f.svc.RecordLoginFailure(context.Background(), "ghost@acme.com", "/api/auth/login")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRecordLoginSuccess_ReseteaAntesDelUmbral(t *testing.T) {
	f := newFixture()
	f.registerPair(t)

	for i := 0; i < 4; i++ {
		require.NoError(t, f.svc.RecordLoginFailure(context.Background(), "bob@acme.com", "/api/auth/login"))
	}
	require.NoError(t, f.svc.RecordLoginSuccess(context.Background(), "bob@acme.com"))

	bob, _ := f.store.FindByEmail(context.Background(), "bob@acme.com")
	assert.Zero(t, bob.Login.LoginAttempts)
	assert.False(t, bob.Login.Locked, "un éxito antes del quinto fallo no debe dejar bloqueado")
}

func TestRecordLoginSuccess_IdempotenteSinEscrituras(t *testing.T) {
	f := newFixture()
	f.registerPair(t)

	saves := f.store.saves
	require.NoError(t, f.svc.RecordLoginSuccess(context.Background(), "bob@acme.com"))
	assert.Equal(t, saves, f.store.saves, "con contador en cero no debe haber write")
}

// ──────────────────────────────────────────────────────────────────────────────
// Auditoría
// ──────────────────────────────────────────────────────────────────────────────

func TestAuditoria_OrdenDeInsercionYFechas(t *testing.T) {
	f := newFixture()
	f.registerPair(t)
	_, err := f.svc.ChangePassword(context.Background(), "bob@acme.com", "anothersecret34", "/api/auth/changepass")
	require.NoError(t, err)

	events, err := f.events.List(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 3)

	var last time.Time
	var lastID int64
	for _, e := range events {
		assert.Greater(t, e.ID, lastID, "los IDs deben crecer en orden de inserción")
		assert.False(t, e.Date.Before(last), "las fechas deben ser no-decrecientes")
		last = e.Date
		lastID = e.ID
	}
	assert.Equal(t, entity.AnonymousSubject, events[0].Subject,
		"el registro se audita con sujeto Anonymous")
	assert.Equal(t, "bob@acme.com", events[2].Subject)
	assert.Equal(t, "bob@acme.com", events[2].Object)
}
