package casdoor_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aussiebroadwan/casdoor-go/pkg/casdoorsdk"
)

/*
 * Container setup and helpers for the Casdoor end-to-end tests. The suite
 * talks to a real casdoor-all-in-one container and only runs when
 * CASDOOR_E2E=1.
 */

const (
	imageName = "casbin/casdoor-all-in-one:latest"

	organization = "built-in"
	application  = "app-built-in"

	// Credentials of the admin account casdoor seeds on first start.
	adminUsername = "admin"
	adminPassword = "123"
)

// instance is the running service shared by every test in the package.
var instance struct {
	endpoint string
	config   casdoorsdk.Config
}

// TestMain starts one container for the whole suite and reads the built-in
// application's generated credentials through an admin session.
func TestMain(m *testing.M) {
	if os.Getenv("CASDOOR_E2E") != "1" {
		fmt.Fprintln(os.Stdout, "skipping casdoor e2e tests (set CASDOOR_E2E=1)")
		os.Exit(0)
	}

	ctx := context.Background()

	fmt.Fprintf(os.Stdout, "Starting casdoor container...")
	container, endpoint, err := startContainer(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to start casdoor: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	cfg, err := discoverConfig(ctx, endpoint)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read application credentials: %v\n", err)
		_ = container.Terminate(ctx)
		os.Exit(1)
	}
	instance.endpoint = endpoint
	instance.config = cfg

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Stopping casdoor container...")
	if err := container.Terminate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "\nfailed to terminate container: %v\n", err)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func startContainer(ctx context.Context) (testcontainers.Container, string, error) {
	req := testcontainers.ContainerRequest{
		Image:        imageName,
		ExposedPorts: []string{"8000/tcp"},
		WaitingFor: wait.ForHTTP("/api/get-account").
			WithPort("8000/tcp").
			WithStatusCodeMatcher(func(status int) bool { return status < 500 }).
			WithStartupTimeout(3 * time.Minute),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, "", err
	}

	mappedPort, err := container.MappedPort(ctx, "8000")
	if err != nil {
		return container, "", err
	}
	host, err := container.Host(ctx)
	if err != nil {
		return container, "", err
	}

	return container, fmt.Sprintf("http://%s:%s", host, mappedPort.Port()), nil
}

// discoverConfig signs in as the seeded admin and reads the client
// credentials and signing certificate of the built-in application.
func discoverConfig(ctx context.Context, endpoint string) (casdoorsdk.Config, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return casdoorsdk.Config{}, err
	}
	hc := &http.Client{Jar: jar, Timeout: 30 * time.Second}

	login := map[string]string{
		"application":  application,
		"organization": organization,
		"username":     adminUsername,
		"password":     adminPassword,
		"type":         "login",
	}
	if err := adminCall(ctx, hc, http.MethodPost, endpoint+"/api/login", login, nil); err != nil {
		return casdoorsdk.Config{}, fmt.Errorf("login: %w", err)
	}

	var app casdoorsdk.Application
	if err := adminCall(ctx, hc, http.MethodGet, endpoint+"/api/get-application?id=admin/"+application, nil, &app); err != nil {
		return casdoorsdk.Config{}, fmt.Errorf("get application: %w", err)
	}

	var cert casdoorsdk.Cert
	if err := adminCall(ctx, hc, http.MethodGet, endpoint+"/api/get-cert?id=admin/"+app.Cert, nil, &cert); err != nil {
		return casdoorsdk.Config{}, fmt.Errorf("get cert: %w", err)
	}

	return casdoorsdk.Config{
		Endpoint:         endpoint,
		ClientID:         app.ClientID,
		ClientSecret:     app.ClientSecret,
		Certificate:      cert.Certificate,
		OrganizationName: organization,
		ApplicationName:  application,
	}, nil
}

// adminCall performs a cookie-authenticated request and decodes the
// envelope's data into out.
func adminCall(ctx context.Context, hc *http.Client, method, url string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env struct {
		Status string          `json:"status"`
		Msg    string          `json:"msg"`
		Data   json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return err
	}
	if env.Status != "ok" {
		return errors.New(env.Msg)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

// newClient returns an SDK client for the built-in application.
func newClient(t *testing.T, opts ...casdoorsdk.Option) *casdoorsdk.Client {
	t.Helper()
	client, err := casdoorsdk.New(instance.config, opts...)
	require.NoError(t, err)
	return client
}
