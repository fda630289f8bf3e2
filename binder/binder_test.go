package binder

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kbukum/restbind/component"
	"github.com/kbukum/restbind/config"
	"github.com/kbukum/restbind/descriptor"
	"github.com/kbukum/restbind/errors"
	"github.com/kbukum/restbind/logger"
	"github.com/kbukum/restbind/resilience"
	"github.com/kbukum/restbind/testutil"
	"github.com/kbukum/restbind/transport"
)

// countingClient answers every request with 200 and the request path.
type countingClient struct {
	closed atomic.Bool
	down   bool
}

func (c *countingClient) Send(_ context.Context, req *transport.Request, _ transport.BodyHandler) (*transport.Response, error) {
	return &transport.Response{StatusCode: 200, Body: req.URL.RequestURI(), Request: req}, nil
}

func (c *countingClient) SendAsync(ctx context.Context, req *transport.Request, h transport.BodyHandler) *transport.Future {
	return transport.Go(ctx, func(ctx context.Context) (*transport.Response, error) {
		return c.Send(ctx, req, h)
	})
}

func (c *countingClient) Close(context.Context) error {
	c.closed.Store(true)
	return nil
}

func (c *countingClient) IsAvailable(context.Context) bool { return !c.down }

func factoryOf(c transport.Client, builds *atomic.Int32) Option {
	return WithTransport(func() (transport.Client, error) {
		builds.Add(1)
		return c, nil
	})
}

func getName() descriptor.Declaration {
	return descriptor.Declaration{
		Name:              "getName",
		Verb:              "GET",
		Path:              "/users/{id}/name",
		Params:            []descriptor.Param{descriptor.PathOf[string]("id")},
		Returns:           descriptor.TypeOf[string](),
		DeclaresSyncError: true,
	}
}

func exists() descriptor.Declaration {
	return descriptor.Declaration{
		Name:              "exists",
		Verb:              "HEAD",
		Path:              "/users/{id}",
		Params:            []descriptor.Param{descriptor.PathOf[int64]("id")},
		Returns:           descriptor.Void(),
		DeclaresSyncError: true,
	}
}

func fetch() descriptor.Declaration {
	return descriptor.Declaration{
		Name:    "fetch",
		Verb:    "GET",
		Path:    "/items",
		Params:  []descriptor.Param{descriptor.QueryOf[string]("q")},
		Returns: descriptor.FutureOf(descriptor.ResponseOf(descriptor.TypeOf[string]())),
	}
}

func nop() Option { return WithLogger(logger.Nop()) }

func TestCompile_AllOrNothing(t *testing.T) {
	noSyncError := getName()
	noSyncError.Name = "broken"
	noSyncError.DeclaresSyncError = false

	asyncValue := fetch()
	asyncValue.Name = "asyncValue"
	asyncValue.Returns = descriptor.FutureOf(descriptor.TypeOf[string]())

	duplicate := exists()
	duplicate.Name = "getName"

	tests := []struct {
		name  string
		decls []descriptor.Declaration
		code  errors.ErrorCode
	}{
		{"sync method without error capability", []descriptor.Declaration{getName(), noSyncError}, errors.ErrCodeMissingSyncError},
		{"async method with bare value", []descriptor.Declaration{asyncValue, getName()}, errors.ErrCodeUnsupportedReturn},
		{"duplicate name", []descriptor.Declaration{getName(), duplicate}, errors.ErrCodeDuplicateMethod},
		{"unknown publisher", []descriptor.Declaration{{
			Name: "upload", Verb: "POST", Path: "/u", Publisher: "json",
			Returns: descriptor.Void(), DeclaresSyncError: true,
		}}, errors.ErrCodeUnknownPublisher},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Compile(tt.decls, nop())
			if b != nil {
				t.Error("no binder may be produced on failure")
			}
			if !errors.HasCode(err, tt.code) {
				t.Fatalf("expected %s, got %v", tt.code, err)
			}
			if app, _ := errors.AsAppError(err); app.Details["method"] == nil {
				t.Errorf("error should name the method: %+v", app.Details)
			}
		})
	}
}

func TestCompile_LogsTimings(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "test", &buf)

	b, err := Compile([]descriptor.Declaration{getName(), exists()}, WithLogger(log))
	if err != nil {
		t.Fatal(err)
	}
	if got := b.Methods(); len(got) != 2 || got[0] != "getName" || got[1] != "exists" {
		t.Errorf("unexpected methods %v", got)
	}
	out := buf.String()
	if strings.Count(out, `"message":"method compiled"`) != 2 {
		t.Errorf("expected one debug line per method:\n%s", out)
	}
	if !strings.Contains(out, `"message":"methods compiled"`) || !strings.Contains(out, `"count":2`) {
		t.Errorf("expected a summary line:\n%s", out)
	}
}

func TestBind_BaseURI(t *testing.T) {
	b, err := Compile([]descriptor.Declaration{getName()}, nop())
	if err != nil {
		t.Fatal(err)
	}
	for _, base := range []string{"/relative", "::bad", ""} {
		if _, err := b.Bind(base); err == nil {
			t.Errorf("expected %q to be rejected", base)
		}
	}
}

func TestClient_Call(t *testing.T) {
	var builds atomic.Int32
	tc := &countingClient{}
	c, err := Bind("http://localhost:8080/api/", []descriptor.Declaration{getName(), exists(), fetch()},
		nop(), factoryOf(tc, &builds))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	got, err := c.Call(ctx, "getName", "a b")
	if err != nil || got != "/users/a%20b/name" {
		t.Errorf("unexpected result %v, %v", got, err)
	}

	got, err = c.Call(ctx, "exists", int64(7))
	if err != nil || got != nil {
		t.Errorf("HEAD returns nothing, got %v, %v", got, err)
	}

	got, err = c.Call(ctx, "fetch", "x")
	if err != nil {
		t.Fatal(err)
	}
	resp, err := got.(*transport.Future).Wait(ctx)
	if err != nil || resp.Body != "/items?q=x" {
		t.Errorf("unexpected async result %+v, %v", resp, err)
	}

	if _, err := c.Call(ctx, "missing"); !errors.HasCode(err, errors.ErrCodeUnknownMethod) {
		t.Errorf("expected UNKNOWN_METHOD, got %v", err)
	}
	if _, err := c.Call(ctx, "getName"); !errors.HasCode(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("expected INVALID_ARGUMENT, got %v", err)
	}
	if builds.Load() != 1 {
		t.Errorf("expected one transport, got %d", builds.Load())
	}
}

func TestClient_LazyTransportBuiltOnce(t *testing.T) {
	var builds atomic.Int32
	b, err := Compile([]descriptor.Declaration{getName()}, nop(), WithTransport(func() (transport.Client, error) {
		builds.Add(1)
		time.Sleep(10 * time.Millisecond)
		return &countingClient{}, nil
	}))
	if err != nil {
		t.Fatal(err)
	}
	c, err := b.Bind("http://h")
	if err != nil {
		t.Fatal(err)
	}
	if c.transport.IsInitialized() {
		t.Fatal("binding must not create the transport")
	}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Call(context.Background(), "getName", "1"); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
	if builds.Load() != 1 {
		t.Errorf("expected exactly one construction, got %d", builds.Load())
	}

	other, err := b.Bind("http://other")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := other.Transport(context.Background()); err != nil {
		t.Fatal(err)
	}
	if builds.Load() != 2 {
		t.Errorf("each client owns its transport, got %d builds", builds.Load())
	}
}

func TestClient_TransportFailureIsRetried(t *testing.T) {
	var attempts atomic.Int32
	c, err := Bind("http://h", []descriptor.Declaration{getName()}, nop(),
		WithTransport(func() (transport.Client, error) {
			if attempts.Add(1) == 1 {
				return nil, stderrors.New("no route")
			}
			return &countingClient{}, nil
		}))
	if err != nil {
		t.Fatal(err)
	}

	_, err = c.Call(context.Background(), "getName", "1")
	if !errors.IsSyncError(err) {
		t.Fatalf("expected a sync error, got %v", err)
	}
	if _, err := c.Call(context.Background(), "getName", "1"); err != nil {
		t.Errorf("expected the second call to build the transport, got %v", err)
	}
}

func TestClient_Lifecycle(t *testing.T) {
	var builds atomic.Int32
	tc := &countingClient{}
	c, err := Bind("https://api.example.com", []descriptor.Declaration{getName()}, nop(), factoryOf(tc, &builds))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := c.Start(ctx); err != nil || builds.Load() != 0 {
		t.Fatalf("start must not build the transport: %v", err)
	}
	if h := c.Health(ctx); h.Status != component.StatusHealthy || h.Message == "" {
		t.Errorf("unexpected health before first call %+v", h)
	}
	if d := c.Describe(); d.Details != "https://api.example.com methods=1 transport=lazy" {
		t.Errorf("unexpected description %q", d.Details)
	}
	if err := c.Stop(ctx); err != nil || tc.closed.Load() {
		t.Error("stop before first call has nothing to close")
	}

	if _, err := c.Transport(ctx); err != nil {
		t.Fatal(err)
	}
	if d := c.Describe(); !strings.HasSuffix(d.Details, "transport=ready") {
		t.Errorf("unexpected description %q", d.Details)
	}
	tc.down = true
	if h := c.Health(ctx); h.Status != component.StatusDegraded {
		t.Errorf("expected degraded health, got %+v", h)
	}
	if err := c.Stop(ctx); err != nil || !tc.closed.Load() {
		t.Errorf("expected the transport to be closed: %v", err)
	}
}

func TestClient_EchoServer(t *testing.T) {
	srv := testutil.NewEchoServer()
	testutil.T(t).Setup(srv)

	upload := descriptor.Declaration{
		Name:      "upload",
		Verb:      "PUT",
		Path:      "/files/{name}",
		Publisher: descriptor.PublisherMultipart,
		Headers:   []descriptor.Header{{Name: "X-Client", Value: "restbind"}},
		Params: []descriptor.Param{
			descriptor.PathOf[string]("name"),
			descriptor.HeaderOf[int]("X-Attempt"),
			descriptor.BodyOf[string]("content"),
		},
		Returns:           descriptor.TypeOf[string](),
		DeclaresSyncError: true,
	}
	c, err := Bind(srv.URL(), []descriptor.Declaration{getName(), upload}, nop(),
		WithConfig(Config{Transport: transport.Config{
			RequestIDHeader: "X-Request-ID",
			CircuitBreaker:  &resilience.CircuitBreakerConfig{Name: "echo", MaxFailures: 3, Timeout: time.Second},
		}}))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = c.Stop(context.Background()) })
	ctx := context.Background()

	got, err := c.Call(ctx, "getName", "42")
	if err != nil || got != "GET /users/42/name" {
		t.Fatalf("unexpected result %v, %v", got, err)
	}
	if srv.Last().Header.Get("X-Request-ID") == "" {
		t.Error("expected a request id from the transport config")
	}

	got, err = c.Call(ctx, "upload", "a.txt", 2, "hello")
	if err != nil || got != "PUT /files/a.txt" {
		t.Fatalf("unexpected result %v, %v", got, err)
	}
	last := srv.Last()
	if last.Header.Get("X-Client") != "restbind" || last.Header.Get("X-Attempt") != "2" {
		t.Errorf("unexpected headers %v", last.Header)
	}
	if !strings.HasPrefix(last.Header.Get("Content-Type"), "multipart/form-data; boundary=boundary") ||
		!strings.Contains(last.Body, `name="content"`) || !strings.Contains(last.Body, "hello") {
		t.Errorf("unexpected multipart exchange %+v", last)
	}

	if h := c.Health(ctx); h.Status != component.StatusHealthy {
		t.Errorf("unexpected health %+v", h)
	}
}

func TestConfig(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Error("expected base_uri to be required")
	}

	cfg.BaseURI = "https://api.example.com"
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate: %v", err)
	}
	if cfg.Transport.Timeout != 30*time.Second || cfg.Logging.Level != "info" || cfg.Telemetry.ServiceName != "restbind" {
		t.Errorf("unexpected defaults %+v", cfg)
	}

	cfg.Logging.Level = "loud"
	if err := cfg.Validate(); err == nil {
		t.Error("expected an invalid logging level to fail")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "restbind.yml")
	content := "base_uri: https://api.example.com/v1\ntransport:\n  timeout: 3s\n  headers:\n    x-team: core\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BINDERTEST_TRANSPORT_USER_AGENT", "tests/1.0")

	cfg, err := LoadConfig("bindertest", config.WithConfigFile(path))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseURI != "https://api.example.com/v1" || cfg.Transport.Timeout != 3*time.Second {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Transport.Headers["x-team"] != "core" || cfg.Transport.UserAgent != "tests/1.0" {
		t.Errorf("unexpected transport config %+v", cfg.Transport)
	}

	if _, err := LoadConfig("bindertest-empty", config.WithConfigFile("/nonexistent.yml")); err == nil {
		t.Error("expected a missing base_uri to fail")
	}
}

func TestOpen(t *testing.T) {
	srv := testutil.NewEchoServer()
	testutil.T(t).Setup(srv)
	ctx := context.Background()

	cfg := Config{BaseURI: srv.URL(), Logging: logger.Config{Level: "disabled"}}
	c, shutdown, err := Open(ctx, cfg, []descriptor.Declaration{getName()})
	if err != nil {
		t.Fatal(err)
	}
	got, err := c.Call(ctx, "getName", "7")
	if err != nil || got != "GET /users/7/name" {
		t.Errorf("unexpected result %v, %v", got, err)
	}
	if ua := srv.Last().Header.Get("User-Agent"); !strings.HasPrefix(ua, "restbind/") {
		t.Errorf("expected the default user agent, got %q", ua)
	}
	if err := shutdown(ctx); err != nil {
		t.Errorf("shutdown failed: %v", err)
	}

	if _, _, err := Open(ctx, Config{}, []descriptor.Declaration{getName()}); err == nil {
		t.Error("expected an invalid config to fail")
	}

	broken := getName()
	broken.DeclaresSyncError = false
	_, _, err = Open(ctx, Config{BaseURI: srv.URL()}, []descriptor.Declaration{broken}, nop())
	if !errors.HasCode(err, errors.ErrCodeMissingSyncError) {
		t.Errorf("expected MISSING_SYNC_ERROR, got %v", err)
	}
}
