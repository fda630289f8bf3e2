package testutil

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/kbukum/restbind/component"
)

func do(t *testing.T, method, url, body string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("X-Trace", "abc")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp, string(data)
}

func TestEchoServer_Echo(t *testing.T) {
	srv := NewEchoServer()
	T(t).Setup(srv)

	resp, body := do(t, "PUT", srv.URL()+"/users/42?q=a%20b", "payload")
	if resp.StatusCode != 200 || body != "PUT /users/42?q=a%20b" {
		t.Errorf("unexpected echo %d %q", resp.StatusCode, body)
	}

	last := srv.Last()
	if last.Method != "PUT" || last.RequestURI != "/users/42?q=a%20b" {
		t.Errorf("unexpected recorded request line %s %s", last.Method, last.RequestURI)
	}
	if last.Body != "payload" || last.Header.Get("X-Trace") != "abc" {
		t.Errorf("unexpected recorded request %+v", last)
	}
}

func TestEchoServer_CustomVerb(t *testing.T) {
	srv := NewEchoServer()
	T(t).Setup(srv)

	_, body := do(t, "PURGE", srv.URL()+"/cache", "")
	if body != "PURGE /cache" {
		t.Errorf("unexpected echo %q", body)
	}
}

func TestEchoServer_Status(t *testing.T) {
	srv := NewEchoServer()
	T(t).Setup(srv)

	resp, body := do(t, "GET", srv.URL()+"/status/503", "")
	if resp.StatusCode != 503 || body != "status 503" {
		t.Errorf("unexpected status response %d %q", resp.StatusCode, body)
	}
	if srv.Last().RequestURI != "/status/503" {
		t.Error("status requests are recorded too")
	}
}

func TestEchoServer_Lifecycle(t *testing.T) {
	ctx := context.Background()
	srv := NewEchoServer()
	if srv.Health(ctx).Status != component.StatusUnhealthy {
		t.Error("expected a stopped server to be unhealthy")
	}

	T(t).Setup(srv)
	if srv.Health(ctx).Status != component.StatusHealthy {
		t.Error("expected a started server to be healthy")
	}
	if err := srv.Start(ctx); err == nil {
		t.Error("expected a second Start to fail")
	}

	do(t, "GET", srv.URL()+"/a", "")
	snap := T(t).Snapshot(srv)
	do(t, "GET", srv.URL()+"/b", "")

	T(t).Reset(srv)
	if len(srv.Exchanges()) != 0 {
		t.Fatal("expected Reset to clear exchanges")
	}

	T(t).Restore(srv, snap)
	got := srv.Exchanges()
	if len(got) != 1 || got[0].RequestURI != "/a" {
		t.Errorf("expected the snapshot to be restored, got %+v", got)
	}
	if err := srv.Restore(ctx, "bogus"); err == nil {
		t.Error("expected an invalid snapshot to be rejected")
	}
}
