package auth

import (
	"context"
	"testing"

	"github.com/ferndev/ragchat/internal/core"
)

type memKV struct {
	data map[string]string
}

func newMemKV() *memKV { return &memKV{data: map[string]string{}} }

func (m *memKV) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Put(ctx context.Context, key, value string) error {
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "demo credentials",
			email:    "user1@mail.com",
			password: "123456",
			wantErr:  nil,
		},
		{
			name:     "wrong password",
			email:    "user1@mail.com",
			password: "hunter2",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "nobody@mail.com",
			password: "123456",
			wantErr:  ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newMemKV())
			err := svc.Login(context.Background(), tt.email, tt.password)
			if err != tt.wantErr {
				t.Fatalf("Login() = %v, want %v", err, tt.wantErr)
			}
			if got := svc.IsAuthenticated(); got != (tt.wantErr == nil) {
				t.Errorf("IsAuthenticated() = %v after login error %v", got, err)
			}
		})
	}
}

func TestAuthStateRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()

	svc := NewService(kv)
	if err := svc.Login(ctx, "user1@mail.com", "123456"); err != nil {
		t.Fatal(err)
	}

	restored := NewService(kv)
	restored.Load(ctx)

	if !restored.IsAuthenticated() {
		t.Fatal("auth state lost in round trip")
	}
	user, ok := restored.CurrentUser()
	if !ok || user.Email != "user1@mail.com" || user.Name != "John Doe" {
		t.Errorf("user = %+v, %v", user, ok)
	}
}

func TestMalformedAuthStateLoadsSignedOut(t *testing.T) {
	kv := newMemKV()
	kv.data[core.AuthKey] = `{"user": 42`

	svc := NewService(kv)
	svc.Load(context.Background())

	if svc.IsAuthenticated() {
		t.Error("malformed blob must load as signed out")
	}
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	svc := NewService(newMemKV())
	if err := svc.Signup(ctx, "someone@else.com", "pw", "Someone"); err != ErrSignupRestricted {
		t.Errorf("Signup with foreign email = %v, want ErrSignupRestricted", err)
	}

	if err := svc.Signup(ctx, "user1@mail.com", "pw", "Jane Roe"); err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	user, _ := svc.CurrentUser()
	if user.Name != "Jane Roe" {
		t.Errorf("signup must keep the chosen name, got %q", user.Name)
	}
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()

	svc := NewService(kv)
	if err := svc.Login(ctx, "user1@mail.com", "123456"); err != nil {
		t.Fatal(err)
	}
	svc.Logout(ctx)

	if svc.IsAuthenticated() {
		t.Error("still authenticated after logout")
	}
	if _, ok := kv.data[core.AuthKey]; ok {
		t.Error("logout must remove the persisted auth blob")
	}

	restored := NewService(kv)
	restored.Load(ctx)
	if restored.IsAuthenticated() {
		t.Error("logout must persist")
	}
}
