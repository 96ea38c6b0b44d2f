package woopra

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestClientGet(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("X-Test", "yes")
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	t.Cleanup(srv.Close)

	client := NewHttpClient(srv.URL, "agent/1.0", map[string]string{"X-Extra": "1"})
	resp, err := client.Get(GetRequest{Request: Request{
		ID:    "req-1",
		Path:  "/track/ce/",
		Query: url.Values{"host": {"example"}, "cv_name": {"Jane Doe"}},
	}})
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}

	if got.URL.Path != "/track/ce/" {
		t.Errorf("expected trailing slash kept, got %s", got.URL.Path)
	}
	if got.URL.Query().Get("cv_name") != "Jane Doe" {
		t.Errorf("unexpected query %s", got.URL.RawQuery)
	}
	if got.Header.Get("User-Agent") != "agent/1.0" || got.Header.Get("X-Extra") != "1" {
		t.Errorf("missing client headers: %v", got.Header)
	}
	if got.Header.Get(ClientRequestIDHeaderName) != "req-1" {
		t.Errorf("expected request id req-1, got %q", got.Header.Get(ClientRequestIDHeaderName))
	}
	if resp.StatusCode != http.StatusOK || string(resp.Body) != `{"success":true}` || resp.Headers.Get("X-Test") != "yes" {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestClientPostForm(t *testing.T) {
	var form url.Values
	var header http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm: %v", err)
		}
		form = r.PostForm
		header = r.Header
	}))
	t.Cleanup(srv.Close)

	client := NewHttpClient(srv.URL, "agent/1.0", nil)
	_, err := client.Post(PostRequest{
		Request: Request{Path: "/rest/2.2/profile", Headers: map[string]string{ClientUserAgentHeaderName: ""}},
		Form:    url.Values{"website": {"example"}, "email": {"jane@example.org"}},
	})
	if err != nil {
		t.Fatalf("Post() error: %v", err)
	}

	if form.Get("email") != "jane@example.org" || form.Get("website") != "example" {
		t.Errorf("unexpected form %v", form)
	}
	if header.Get("Content-Type") != FormContentType {
		t.Errorf("unexpected content type %q", header.Get("Content-Type"))
	}
	// empty per-request values keep the client default
	if header.Get("User-Agent") != "agent/1.0" {
		t.Errorf("unexpected user agent %q", header.Get("User-Agent"))
	}
}

func TestClientNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	client := NewHttpClient(baseURL, "", nil)
	if _, err := client.Get(GetRequest{Request: Request{Path: "/track/ce/"}}); err == nil {
		t.Error("expected error from closed server")
	}
}
