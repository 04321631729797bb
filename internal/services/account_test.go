package services

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"melodymesh/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBootstrap = domain.BootstrapAccount{
	Username: "melodyadmin",
	Password: "Melody@2025!",
	Name:     "Melody Mesh Admin",
	Email:    "admin@melodysystem.com",
}

// fakeAccountRepo implements domain.AccountRepository for tests.
type fakeAccountRepo struct {
	byUsername map[string]*domain.Account
	byEmail    map[string]*domain.Account
	createErr  error
	listErr    error
	upserts    int
	nextID     int
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		byUsername: make(map[string]*domain.Account),
		byEmail:    make(map[string]*domain.Account),
	}
}

func (f *fakeAccountRepo) Create(ctx context.Context, a *domain.Account) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byUsername[a.Username]; ok {
		return domain.ErrDuplicateUsername
	}
	if _, ok := f.byEmail[a.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	f.nextID++
	a.ID = "acc-" + strconv.Itoa(f.nextID)
	f.byUsername[a.Username] = a
	f.byEmail[a.Email] = a
	return nil
}

func (f *fakeAccountRepo) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	if a, ok := f.byUsername[username]; ok {
		return a, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (f *fakeAccountRepo) Upsert(ctx context.Context, a *domain.Account) error {
	f.upserts++
	if existing, ok := f.byUsername[a.Username]; ok {
		a.ID = existing.ID
	} else {
		f.nextID++
		a.ID = "acc-" + strconv.Itoa(f.nextID)
	}
	f.byUsername[a.Username] = a
	f.byEmail[a.Email] = a
	return nil
}

func (f *fakeAccountRepo) List(ctx context.Context) ([]*domain.Account, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*domain.Account, 0, len(f.byUsername))
	for _, a := range f.byUsername {
		out = append(out, a)
	}
	return out, nil
}

// fakePasswordHasher implements domain.PasswordHasher for tests.
type fakePasswordHasher struct{}

func (f *fakePasswordHasher) GenerateSalt() (string, error) { return "salt", nil }
func (f *fakePasswordHasher) Hash(salt, password string) (string, error) {
	return "hash-" + salt + "-" + password, nil
}
func (f *fakePasswordHasher) Compare(hash, salt, password string) error {
	if hash != "hash-"+salt+"-"+password {
		return errors.New("mismatch")
	}
	return nil
}

// fakeTokenIssuer implements domain.TokenIssuer for tests.
type fakeTokenIssuer struct {
	err error
}

func (f *fakeTokenIssuer) Issue(username, role string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-" + username, nil
}

func newTestAccountService(repo *fakeAccountRepo) domain.AccountService {
	return NewAccountService(repo, &fakePasswordHasher{}, &fakeTokenIssuer{}, time.Hour, testBootstrap)
}

func TestAccountService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success assigns registered role and hashes password", func(t *testing.T) {
		repo := newFakeAccountRepo()
		svc := newTestAccountService(repo)

		account, err := svc.Register(ctx, &domain.Registration{
			Name:     "Jane Doe",
			Username: "jdoe",
			Email:    "jdoe@example.com",
			Password: "secret1",
			DOB:      "1990-01-01",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleRegistered, account.Role)
		assert.Equal(t, "jdoe", account.Username)
		assert.Equal(t, "1990-01-01", account.DOB)
		assert.NotEmpty(t, account.ID)
		assert.Equal(t, "hash-salt-secret1", account.PasswordHash)
		assert.NotEqual(t, "secret1", account.PasswordHash)
	})

	t.Run("username admin gets admin role", func(t *testing.T) {
		repo := newFakeAccountRepo()
		svc := newTestAccountService(repo)

		account, err := svc.Register(ctx, &domain.Registration{
			Name:     "Root",
			Username: "admin",
			Email:    "root@example.com",
			Password: "secret1",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, account.Role)
	})

	t.Run("operator username is reserved", func(t *testing.T) {
		repo := newFakeAccountRepo()
		svc := newTestAccountService(repo)

		_, err := svc.Register(ctx, &domain.Registration{
			Name:     "Impostor",
			Username: "melodyadmin",
			Email:    "x@example.com",
			Password: "whatever1",
		})
		require.ErrorIs(t, err, domain.ErrReservedUsername)
	})

	t.Run("missing required fields", func(t *testing.T) {
		repo := newFakeAccountRepo()
		svc := newTestAccountService(repo)

		for _, reg := range []*domain.Registration{
			{Username: "u", Email: "e@x.com", Password: "p"},
			{Name: "n", Email: "e@x.com", Password: "p"},
			{Name: "n", Username: "u", Password: "p"},
			{Name: "n", Username: "u", Email: "e@x.com"},
		} {
			_, err := svc.Register(ctx, reg)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
		}
	})

	t.Run("duplicate username surfaces from the store", func(t *testing.T) {
		repo := newFakeAccountRepo()
		svc := newTestAccountService(repo)

		_, err := svc.Register(ctx, &domain.Registration{Name: "A", Username: "jdoe", Email: "a@x.com", Password: "p1"})
		require.NoError(t, err)
		_, err = svc.Register(ctx, &domain.Registration{Name: "B", Username: "jdoe", Email: "b@x.com", Password: "p2"})
		require.ErrorIs(t, err, domain.ErrDuplicateUsername)
	})

	t.Run("duplicate email surfaces from the store", func(t *testing.T) {
		repo := newFakeAccountRepo()
		svc := newTestAccountService(repo)

		_, err := svc.Register(ctx, &domain.Registration{Name: "A", Username: "a", Email: "same@x.com", Password: "p1"})
		require.NoError(t, err)
		_, err = svc.Register(ctx, &domain.Registration{Name: "B", Username: "b", Email: "same@x.com", Password: "p2"})
		require.ErrorIs(t, err, domain.ErrDuplicateEmail)
	})
}

func TestAccountService_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("register then authenticate returns assigned role", func(t *testing.T) {
		repo := newFakeAccountRepo()
		svc := newTestAccountService(repo)

		_, err := svc.Register(ctx, &domain.Registration{Name: "Jane Doe", Username: "jdoe", Email: "jdoe@example.com", Password: "secret1"})
		require.NoError(t, err)

		result, err := svc.Authenticate(ctx, "jdoe", "secret1")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleRegistered, result.Role)
		assert.Equal(t, "token-jdoe", result.Token)
		assert.Equal(t, "jdoe", result.Account.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := newFakeAccountRepo()
		svc := newTestAccountService(repo)

		_, err := svc.Register(ctx, &domain.Registration{Name: "Jane Doe", Username: "jdoe", Email: "jdoe@example.com", Password: "secret1"})
		require.NoError(t, err)

		_, err = svc.Authenticate(ctx, "jdoe", "wrong")
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown user is indistinguishable from wrong password", func(t *testing.T) {
		repo := newFakeAccountRepo()
		svc := newTestAccountService(repo)

		_, err := svc.Authenticate(ctx, "nobody", "whatever")
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("operator authenticates with empty storage", func(t *testing.T) {
		repo := newFakeAccountRepo()
		svc := newTestAccountService(repo)

		result, err := svc.Authenticate(ctx, testBootstrap.Username, testBootstrap.Password)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, result.Role)
		assert.Equal(t, "token-melodyadmin", result.Token)
		assert.Equal(t, testBootstrap.Name, result.Account.Name)
	})

	t.Run("operator username with wrong password", func(t *testing.T) {
		repo := newFakeAccountRepo()
		svc := newTestAccountService(repo)

		_, err := svc.Authenticate(ctx, testBootstrap.Username, "wrong")
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("missing credentials", func(t *testing.T) {
		repo := newFakeAccountRepo()
		svc := newTestAccountService(repo)

		_, err := svc.Authenticate(ctx, "", "p")
		require.ErrorIs(t, err, domain.ErrInvalidInput)
		_, err = svc.Authenticate(ctx, "u", "")
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestAccountService_EnsureOperatorAccount(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAccountRepo()
	svc := newTestAccountService(repo)

	require.NoError(t, svc.EnsureOperatorAccount(ctx))
	require.NoError(t, svc.EnsureOperatorAccount(ctx))

	// Running twice must converge to exactly one operator row with the
	// configured values.
	assert.Equal(t, 2, repo.upserts)
	accounts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	op := accounts[0]
	assert.Equal(t, testBootstrap.Username, op.Username)
	assert.Equal(t, testBootstrap.Name, op.Name)
	assert.Equal(t, testBootstrap.Email, op.Email)
	assert.Equal(t, domain.RoleAdmin, op.Role)
	assert.NotEqual(t, testBootstrap.Password, op.PasswordHash)
}

func TestAccountService_ListAccounts(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAccountRepo()
	svc := newTestAccountService(repo)

	accounts, err := svc.ListAccounts(ctx)
	require.NoError(t, err)
	assert.NotNil(t, accounts)
	assert.Empty(t, accounts)

	_, err = svc.Register(ctx, &domain.Registration{Name: "A", Username: "a", Email: "a@x.com", Password: "p"})
	require.NoError(t, err)

	accounts, err = svc.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
}
