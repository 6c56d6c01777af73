package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

var fakeSigningKey = []byte("fake-backend-key")

// fakeBackend serves the license API and the assistant webhook from one server.
type fakeBackend struct {
	mu            sync.Mutex
	passwords     map[string]string
	licenses      map[string]map[string]any
	calls         map[string]int
	failLookup    bool
	replies       string
	replyStatus   int
	lastAssistant map[string]any
	lastBearer    string
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()

	backend := &fakeBackend{
		passwords:   map[string]string{},
		licenses:    map[string]map[string]any{},
		calls:       map[string]int{},
		replies:     `[{"recipient_id":"x","text":"Sure, I can help."}]`,
		replyStatus: http.StatusOK,
	}

	server := httptest.NewServer(http.HandlerFunc(backend.serve))
	t.Cleanup(server.Close)

	t.Setenv("DLC_API_URL", server.URL)
	t.Setenv("DLC_ASSISTANT_URL", server.URL)
	t.Setenv("DLC_STAGGER", "5ms")
	t.Setenv("DLC_FALLBACK_DELAY", "5ms")

	return backend
}

func (b *fakeBackend) callCount(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[path]
}

func (b *fakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls[r.URL.Path]++

	switch r.URL.Path {
	case "/user/createUser":
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if _, exists := b.passwords[body["email"]]; exists {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = fmt.Fprint(w, `{"errors":{"email":"Email already registered"}}`)
			return
		}
		b.passwords[body["email"]] = body["password"]
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": len(b.passwords), "fullName": body["fullName"], "email": body["email"]})
	case "/auth/login":
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if password, ok := b.passwords[body["email"]]; !ok || password != body["password"] {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = fmt.Fprint(w, `{"message":"Bad credentials"}`)
			return
		}
		token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": body["email"]}).SignedString(fakeSigningKey)
		_ = json.NewEncoder(w).Encode(map[string]any{"token": token, "expiresIn": 3600000})
	case "/drivingLicense/getLicenseDetails":
		email, ok := b.authorize(w, r)
		if !ok {
			return
		}
		if b.failLookup {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		record, found := b.licenses[email]
		if !found {
			_, _ = fmt.Fprint(w, `{"success":false,"message":"License not found","data":null}`)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "found", "data": record})
	case "/drivingLicense/create":
		email, ok := b.authorize(w, r)
		if !ok {
			return
		}
		if _, found := b.licenses[email]; found {
			w.WriteHeader(http.StatusConflict)
			return
		}
		var fields map[string]any
		_ = json.NewDecoder(r.Body).Decode(&fields)
		fields["id"] = len(b.licenses) + 1
		fields["licenseNumber"] = fmt.Sprintf("DL-%04d", len(b.licenses)+1)
		fields["licenseStatus"] = "ACTIVE"
		fields["issueDate"] = "2026-10-16"
		fields["expirationDate"] = "2036-10-16"
		b.licenses[email] = fields
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "created", "data": fields})
	case "/webhooks/rest/webhook":
		b.lastBearer = r.Header.Get("Authorization")
		b.lastAssistant = map[string]any{}
		_ = json.NewDecoder(r.Body).Decode(&b.lastAssistant)
		w.WriteHeader(b.replyStatus)
		_, _ = fmt.Fprint(w, b.replies)
	default:
		http.NotFound(w, r)
	}
}

func (b *fakeBackend) authorize(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	token, err := jwt.Parse(raw, func(*jwt.Token) (any, error) { return fakeSigningKey, nil }, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		w.WriteHeader(http.StatusUnauthorized)
		return "", false
	}
	subject, err := token.Claims.GetSubject()
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return "", false
	}
	return subject, true
}
