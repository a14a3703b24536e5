package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// memStore is an in-memory Store for tests.
type memStore struct {
	users  map[string]memUser // keyed by email
	failed bool               // force errors to exercise the 500 path
}

type memUser struct {
	user User
	hash string
}

func newMemStore() *memStore {
	return &memStore{users: make(map[string]memUser)}
}

var errStoreDown = errors.New("store down")

func (m *memStore) CreateUser(ctx context.Context, name, email, passwordHash string) (User, error) {
	if m.failed {
		return User{}, errStoreDown
	}
	if _, ok := m.users[email]; ok {
		return User{}, ErrEmailInUse
	}
	u := User{ID: uuid.New(), Name: name, Email: email}
	m.users[email] = memUser{user: u, hash: passwordHash}
	return u, nil
}

func (m *memStore) GetUserByEmail(ctx context.Context, email string) (User, string, error) {
	if m.failed {
		return User{}, "", errStoreDown
	}
	mu, ok := m.users[email]
	if !ok {
		return User{}, "", ErrUserNotFound
	}
	return mu.user, mu.hash, nil
}

// newTestService uses bcrypt.MinCost to keep hashing fast in tests.
func newTestService(store Store) *Service {
	return NewService(store, bcrypt.MinCost)
}

func TestSignup(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	user, err := svc.Signup(context.Background(), "John Doe", "John@Example.com", "hunter22")
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	if user.Name != "John Doe" {
		t.Errorf("Name = %q, want %q", user.Name, "John Doe")
	}
	if user.Email != "john@example.com" {
		t.Errorf("Email = %q, want normalized lower case", user.Email)
	}
	if user.ID == uuid.Nil {
		t.Error("ID is nil")
	}

	// The stored hash must verify against the original password and must
	// not be the password itself.
	stored := store.users["john@example.com"]
	if stored.hash == "hunter22" {
		t.Error("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.hash), []byte("hunter22")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	if _, err := svc.Signup(context.Background(), "John", "john@example.com", "pw1"); err != nil {
		t.Fatalf("first Signup() error = %v", err)
	}

	_, err := svc.Signup(context.Background(), "Johnny", "JOHN@example.com", "pw2")
	if !errors.Is(err, ErrEmailInUse) {
		t.Errorf("Signup() error = %v, want ErrEmailInUse", err)
	}
	if len(store.users) != 1 {
		t.Errorf("store has %d users, want 1", len(store.users))
	}
}

func TestSignup_MissingFields(t *testing.T) {
	svc := newTestService(newMemStore())

	cases := [][3]string{
		{"", "a@b.co", "pw"},
		{"John", "", "pw"},
		{"John", "a@b.co", ""},
		{"   ", "a@b.co", "pw"},
	}
	for _, c := range cases {
		if _, err := svc.Signup(context.Background(), c[0], c[1], c[2]); err == nil {
			t.Errorf("Signup(%q, %q, %q) expected error", c[0], c[1], c[2])
		}
	}
}

func TestLogin(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	created, err := svc.Signup(context.Background(), "Jane", "jane@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}

	user, err := svc.Login(context.Background(), "Jane@Example.COM", "s3cret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if user.ID != created.ID {
		t.Errorf("Login() ID = %v, want %v", user.ID, created.ID)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	svc.Signup(context.Background(), "Jane", "jane@example.com", "s3cret")

	// Unknown email and wrong password must be indistinguishable.
	_, unknownErr := svc.Login(context.Background(), "nobody@example.com", "s3cret")
	_, wrongPwErr := svc.Login(context.Background(), "jane@example.com", "wrong")

	if !errors.Is(unknownErr, ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", unknownErr)
	}
	if !errors.Is(wrongPwErr, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", wrongPwErr)
	}
	if unknownErr.Error() != wrongPwErr.Error() {
		t.Errorf("error messages differ: %q vs %q", unknownErr, wrongPwErr)
	}
}

func TestStoreFailure_Surfaces(t *testing.T) {
	store := newMemStore()
	store.failed = true
	svc := newTestService(store)

	if _, err := svc.Signup(context.Background(), "John", "a@b.co", "pw"); err == nil {
		t.Error("Signup() expected error when the store is down")
	}
	if _, err := svc.Login(context.Background(), "a@b.co", "pw"); err == nil {
		t.Error("Login() expected error when the store is down")
	} else if errors.Is(err, ErrInvalidCredentials) {
		t.Error("store failure must not masquerade as bad credentials")
	}
}
