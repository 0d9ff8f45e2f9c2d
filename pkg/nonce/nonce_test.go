package nonce

import (
	"context"
	"errors"
	"testing"
	"time"
)

type memStore struct {
	used map[string]bool
}

func (m *memStore) ConsumeToken(_ context.Context, jti string, _ time.Time) (bool, error) {
	if m.used == nil {
		m.used = map[string]bool{}
	}
	if m.used[jti] {
		return false, nil
	}
	m.used[jti] = true
	return true, nil
}

func newTestIssuer(t *testing.T) *Issuer {
	t.Helper()
	issuer, err := NewIssuer([]byte("test-secret"), time.Hour, &memStore{})
	if err != nil {
		t.Fatalf("NewIssuer() error = %v", err)
	}
	return issuer
}

func TestNewIssuer_RequiresSecret(t *testing.T) {
	if _, err := NewIssuer(nil, time.Hour, &memStore{}); err == nil {
		t.Error("NewIssuer() with empty secret should fail")
	}
	if _, err := NewIssuer([]byte("s"), 0, &memStore{}); err == nil {
		t.Error("NewIssuer() with zero ttl should fail")
	}
}

func TestIssueVerifyConsume(t *testing.T) {
	issuer := newTestIssuer(t)
	ctx := context.Background()

	token, err := issuer.Issue("admin", "install_importer")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	claims, err := issuer.Verify(token, "admin", "install_importer")
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if err := issuer.Consume(ctx, claims); err != nil {
		t.Fatalf("Consume() error = %v", err)
	}

	claims, err = issuer.Verify(token, "admin", "install_importer")
	if err != nil {
		t.Fatalf("Verify() after consume error = %v", err)
	}
	if err := issuer.Consume(ctx, claims); !errors.Is(err, ErrUsed) {
		t.Errorf("Consume() replay error = %v, want ErrUsed", err)
	}
}

func TestVerify_Rejects(t *testing.T) {
	issuer := newTestIssuer(t)
	token, err := issuer.Issue("admin", "install_importer")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	other, err := NewIssuer([]byte("other-secret"), time.Hour, &memStore{})
	if err != nil {
		t.Fatalf("NewIssuer() error = %v", err)
	}
	forged, err := other.Issue("admin", "install_importer")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name   string
		token  string
		user   string
		action string
	}{
		{"empty", "", "admin", "install_importer"},
		{"garbage", "not.a.jwt", "admin", "install_importer"},
		{"other user", token, "editor", "install_importer"},
		{"other action", token, "admin", "delete_everything"},
		{"wrong key", forged, "admin", "install_importer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := issuer.Verify(tt.token, tt.user, tt.action); !errors.Is(err, ErrInvalid) {
				t.Errorf("Verify() error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestVerify_Expired(t *testing.T) {
	issuer := newTestIssuer(t)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := issuer.Issue("admin", "install_importer")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	issuer.now = time.Now
	if _, err := issuer.Verify(token, "admin", "install_importer"); !errors.Is(err, ErrExpired) {
		t.Errorf("Verify() error = %v, want ErrExpired", err)
	}
}
