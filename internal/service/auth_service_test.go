package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"fmt"
	"testing"
	"time"

	"hotel_climate/internal/models"
	"hotel_climate/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

const testSigningKey = "test-key"

// mockAuthRepo is a lightweight in-test mock for repository.Authorization.
type mockAuthRepo struct {
	CreateFn        func(u models.User) (int, error)
	GetByUsernameFn func(username string) (*models.User, error)

	created []models.User
}

func (m *mockAuthRepo) Create(ctx context.Context, u models.User) (int, error) {
	m.created = append(m.created, u)
	return m.CreateFn(u)
}

func (m *mockAuthRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.GetByUsernameFn(username)
}

func (m *mockAuthRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	return nil, nil
}

func newTestAuth(repo repository.Authorization) *AuthService {
	return NewAuthService(repo, testSigningKey, time.Hour)
}

func TestAuthService_SignUp_SaltsAndHashes(t *testing.T) {
	mock := &mockAuthRepo{CreateFn: func(u models.User) (int, error) { return 42, nil }}
	svc := newTestAuth(mock)

	id, err := svc.SignUp(context.Background(), " alice ", "+1 555", "s3cr3t")
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected id 42, got %d", id)
	}
	if len(mock.created) != 1 {
		t.Fatalf("expected 1 Create call, got %d", len(mock.created))
	}

	u := mock.created[0]
	if u.Username != "alice" || u.Phone != "+1 555" {
		t.Errorf("unexpected stored user: %+v", u)
	}
	if len(u.Salt) != 2*saltBytes {
		t.Errorf("expected %d hex chars of salt, got %q", 2*saltBytes, u.Salt)
	}
	if u.PasswordHash == "s3cr3t" {
		t.Errorf("expected hashed password not equal to raw password")
	}
	if err := verifyPassword(u.PasswordHash, u.Salt, "s3cr3t"); err != nil {
		t.Errorf("stored hash does not verify with original password: %v", err)
	}
	if err := verifyPassword(u.PasswordHash, "", "s3cr3t"); err == nil {
		t.Errorf("hash must depend on the salt")
	}
}

func TestAuthService_SignUp_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		createFn func(u models.User) (int, error)
		want     error
	}{
		{name: "empty username", username: "  ", password: "x", want: ErrInvalidSignUp},
		{name: "empty password", username: "bob", password: "   ", want: ErrInvalidSignUp},
		{
			name:     "taken username",
			username: "bob",
			password: "x",
			createFn: func(u models.User) (int, error) {
				return 0, fmt.Errorf("insert user: %w", repository.ErrDuplicate)
			},
			want: ErrUsernameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockAuthRepo{CreateFn: tt.createFn}
			if mock.CreateFn == nil {
				mock.CreateFn = func(models.User) (int, error) {
					t.Fatal("Create should not be called")
					return 0, nil
				}
			}
			_, err := newTestAuth(mock).SignUp(context.Background(), tt.username, "", tt.password)
			if !errors.Is(err, tt.want) {
				t.Fatalf("want %v, got %v", tt.want, err)
			}
		})
	}
}

func TestAuthService_GenerateAndParseToken(t *testing.T) {
	var stored models.User
	mock := &mockAuthRepo{
		CreateFn: func(u models.User) (int, error) {
			stored = u
			stored.ID = 7
			return 7, nil
		},
		GetByUsernameFn: func(username string) (*models.User, error) {
			if username != stored.Username {
				return nil, nil
			}
			return &stored, nil
		},
	}
	svc := newTestAuth(mock)
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "carol", "", "pw"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	token, err := svc.GenerateToken(ctx, "carol", "pw")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	id, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if id != 7 {
		t.Fatalf("expected user id 7, got %d", id)
	}

	if _, err := svc.GenerateToken(ctx, "carol", "wrong"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
	if _, err := svc.GenerateToken(ctx, "nobody", "pw"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_GenerateToken_RepoError(t *testing.T) {
	boom := errors.New("db down")
	mock := &mockAuthRepo{GetByUsernameFn: func(string) (*models.User, error) { return nil, boom }}

	if _, err := newTestAuth(mock).GenerateToken(context.Background(), "x", "y"); !errors.Is(err, boom) {
		t.Fatalf("expected repo error, got %v", err)
	}
}

func TestAuthService_ParseToken_Rejects(t *testing.T) {
	svc := newTestAuth(&mockAuthRepo{})

	otherKey := NewAuthService(&mockAuthRepo{}, "other-key", time.Hour)
	foreign, err := otherKey.issueToken(1)
	if err != nil {
		t.Fatalf("issueToken: %v", err)
	}

	expiredSvc := NewAuthService(&mockAuthRepo{}, testSigningKey, -time.Minute)
	expired, err := expiredSvc.issueToken(1)
	if err != nil {
		t.Fatalf("issueToken: %v", err)
	}

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa key: %v", err)
	}
	rs256, err := jwt.NewWithClaims(jwt.SigningMethodRS256, &Claims{UserID: 1}).SignedString(key)
	if err != nil {
		t.Fatalf("sign rs256: %v", err)
	}

	for name, token := range map[string]string{
		"garbage":      "not-a-token",
		"wrong key":    foreign,
		"expired":      expired,
		"wrong method": rs256,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
