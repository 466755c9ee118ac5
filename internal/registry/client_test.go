package registry

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api/", WithHTTPClient(srv.Client()), WithToken("tok"))
}

func TestListQueryAndPage(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/community/functions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		want := "category=payments&limit=5&page=2&search=stripe&sort=stars"
		if got := r.URL.RawQuery; got != want {
			t.Errorf("query = %q, want %q", got, want)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		io.WriteString(w, `{"functions":[{"id":"1","name":"Stripe","slug":"stripe","author_username":"alice","star_count":4}],"total":11,"page":2,"limit":5}`)
	})

	page, err := c.List(context.Background(), ListOptions{Category: "payments", Search: "stripe", Sort: "stars", Limit: 5, Page: 2})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Functions) != 1 || page.Functions[0].Owner() != "alice" || page.Functions[0].StarCount != 4 {
		t.Errorf("unexpected functions: %+v", page.Functions)
	}
	if !page.HasMore() {
		t.Errorf("page 2 of 11 at 5 per page should have more: %+v", page)
	}
}

func TestListBareArray(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			t.Errorf("zero options should send no query, got %q", r.URL.RawQuery)
		}
		io.WriteString(w, `[{"id":"1","slug":"a"},{"id":"2","slug":"b"}]`)
	})
	page, err := c.List(context.Background(), ListOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Functions) != 2 || page.Page != 1 || page.HasMore() {
		t.Errorf("unexpected page: %+v", page)
	}
}

func TestGetAndInstall(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/community/functions/alice/stripe-checkout":
			io.WriteString(w, `{"function":{"id":"f1","slug":"stripe-checkout","author_username":"alice","code":"export const x = 1;"}}`)
		case "/api/community/functions/install/stripe-checkout":
			io.WriteString(w, `{"id":"f1","slug":"stripe-checkout","author":"alice"}`)
		default:
			http.NotFound(w, r)
		}
	})

	fn, err := c.Get(context.Background(), "alice", "stripe-checkout")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if fn.ID != "f1" || fn.Code == "" {
		t.Errorf("unexpected function: %+v", fn)
	}

	fn, err = c.Install(context.Background(), "stripe-checkout")
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	if fn.Owner() != "alice" {
		t.Errorf("Owner() = %q", fn.Owner())
	}
}

func TestCreateUpdatePublish(t *testing.T) {
	var gotCreate, gotUpdate map[string]any
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/community/functions":
			json.NewDecoder(r.Body).Decode(&gotCreate)
			w.WriteHeader(http.StatusCreated)
			io.WriteString(w, `{"id":"new","slug":"my-fn","author":"bob"}`)
		case r.Method == http.MethodPatch && r.URL.Path == "/api/community/functions/new":
			json.NewDecoder(r.Body).Decode(&gotUpdate)
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodPost && r.URL.Path == "/api/community/functions/new/publish":
			io.WriteString(w, `{"url":"/functions/bob/my-fn"}`)
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	created, err := c.Create(ctx, FunctionInput{Name: "My Fn", Code: "x", Tags: []string{"a"}, AIConfig: json.RawMessage(`{"model":"m"}`)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if diff := cmp.Diff(&Created{ID: "new", Slug: "my-fn", Author: "bob"}, created); diff != "" {
		t.Errorf("Create mismatch (-want +got):\n%s", diff)
	}
	if gotCreate["name"] != "My Fn" || gotCreate["ai_config"] == nil {
		t.Errorf("unexpected create body: %v", gotCreate)
	}
	if _, ok := gotCreate["monetization"]; ok {
		t.Error("unset monetization should be omitted")
	}

	if err := c.Update(ctx, "new", FunctionInput{Description: "longer description"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"description": "longer description"}, gotUpdate); diff != "" {
		t.Errorf("update body mismatch (-want +got):\n%s", diff)
	}

	pub, err := c.Publish(ctx, "new")
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if pub.URL != "/functions/bob/my-fn" {
		t.Errorf("URL = %q", pub.URL)
	}
}

func TestLogin(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "a@b.c" || body["password"] != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"error":"Invalid credentials"}`)
			return
		}
		io.WriteString(w, `{"token":"jwt"}`)
	})

	token, err := c.Login(context.Background(), "a@b.c", "pw")
	if err != nil || token != "jwt" {
		t.Fatalf("Login = %q, %v", token, err)
	}

	_, err = c.Login(context.Background(), "a@b.c", "wrong")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T %v", err, err)
	}
	if apiErr.Status != http.StatusUnauthorized || !strings.Contains(err.Error(), "Invalid credentials") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoginMissingToken(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{}`)
	})
	if _, err := c.Login(context.Background(), "a@b.c", "pw"); err == nil {
		t.Error("expected error when token is missing")
	}
}

func TestErrorShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"string error", `{"error":"Slug taken"}`, "Slug taken"},
		{"object error", `{"error":{"code":"X","message":"Bad input"}}`, "Bad input"},
		{"message", `{"message":"Nope"}`, "Nope"},
		{"plain text", "upstream timeout\n", "upstream timeout"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newAPIError(http.StatusBadRequest, []byte(tt.body))
			if e.Message != tt.want {
				t.Errorf("Message = %q, want %q", e.Message, tt.want)
			}
			if tt.want == "" && !strings.Contains(e.Error(), "400") {
				t.Errorf("Error() = %q should mention the status", e.Error())
			}
		})
	}
}

func TestTransportError(t *testing.T) {
	c := New("http://127.0.0.1:1/api")
	_, err := c.List(context.Background(), ListOptions{})
	if err == nil || !strings.HasPrefix(err.Error(), "listing functions: ") {
		t.Errorf("expected wrapped transport error, got %v", err)
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Error("transport failure should not be an APIError")
	}
}
