package github

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testKey(t *testing.T) (*rsa.PrivateKey, []byte) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	return key, pemBytes
}

func TestMintInstallationToken(t *testing.T) {
	key, pemBytes := testKey(t)
	expires := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/app/installations/99/access_tokens" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"token": "ghs_minted", "expires_at": expires})
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client())
	tok, err := client.MintInstallationToken(context.Background(), AppCredentials{AppID: 1234, PrivateKeyPEM: pemBytes}, 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Token != "ghs_minted" || !tok.ExpiresAt.Equal(expires) {
		t.Errorf("unexpected token %+v", tok)
	}

	// The bearer must be an RS256 JWT verifiable with the app key, issued by the app id.
	jwt := strings.TrimPrefix(gotAuth, "Bearer ")
	parts := strings.Split(jwt, ".")
	if len(parts) != 3 {
		t.Fatalf("malformed jwt %q", jwt)
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		t.Fatal(err)
	}
	digest := sha256.Sum256([]byte(parts[0] + "." + parts[1]))
	if err := rsa.VerifyPKCS1v15(&key.PublicKey, crypto.SHA256, digest[:], sig); err != nil {
		t.Errorf("jwt signature invalid: %v", err)
	}
	claims, _ := base64.RawURLEncoding.DecodeString(parts[1])
	if !strings.Contains(string(claims), `"iss":"1234"`) {
		t.Errorf("unexpected claims %s", claims)
	}
}

func TestMintInstallationTokenErrors(t *testing.T) {
	_, pemBytes := testKey(t)

	t.Run("invalid key", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:0", nil)
		_, err := client.MintInstallationToken(context.Background(), AppCredentials{AppID: 1, PrivateKeyPEM: []byte("nope")}, 1)
		if !errors.Is(err, ErrInvalidPrivateKey) {
			t.Errorf("expected ErrInvalidPrivateKey, got %v", err)
		}
	})

	t.Run("rejected", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, err := NewClient(server.URL, server.Client()).MintInstallationToken(context.Background(), AppCredentials{AppID: 1, PrivateKeyPEM: pemBytes}, 1)
		if !errors.Is(err, ErrRejected) {
			t.Errorf("expected ErrRejected, got %v", err)
		}
	})

	t.Run("unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := NewClient(server.URL, server.Client()).MintInstallationToken(context.Background(), AppCredentials{AppID: 1, PrivateKeyPEM: pemBytes}, 1)
		if !errors.Is(err, ErrUnavailable) {
			t.Errorf("expected ErrUnavailable, got %v", err)
		}
	})
}
