package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"stockprofit/internal/config"
	"stockprofit/internal/form"
	"stockprofit/internal/logging"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// setupSubmit points the global config at url and fills the submit flags.
func setupSubmit(t *testing.T, url, ticker, date, shares string) *cobra.Command {
	t.Helper()
	logger = zap.NewNop()

	c := config.DefaultConfig()
	c.Endpoint.URL = url
	c.Animation.Interval = "1ms"
	cfg = c

	submitTicker, submitDate, submitShares = ticker, date, shares
	t.Cleanup(func() {
		cfg = nil
		submitTicker, submitDate, submitShares = "", "", ""
	})

	return &cobra.Command{}
}

func TestSubmitCmd_RevealsResponse(t *testing.T) {
	bodies := make(chan []byte, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		bodies <- body
		w.Write([]byte(`{"response":"Profit: $1,234"}`))
	}))
	defer srv.Close()

	cmd := setupSubmit(t, srv.URL, "AAPL", "2020-01-02", "10")
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, runSubmit(cmd, nil))
	assert.Equal(t, "Profit: $1,234\n", out.String())
	assert.JSONEq(t, `{"ticker":"AAPL","purchase_date":"2020-01-02","shares":10}`, string(<-bodies))
}

func TestSubmitCmd_MissingFieldAlerts(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	cmd := setupSubmit(t, srv.URL, "AAPL", "", "10")
	var out bytes.Buffer
	cmd.SetOut(&out)

	err := runSubmit(cmd, nil)
	require.Error(t, err)
	assert.Equal(t, form.MsgFieldsRequired, err.Error())
	assert.Empty(t, out.String())
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestSubmitCmd_NonNumericSharesAlerts(t *testing.T) {
	cmd := setupSubmit(t, "http://127.0.0.1:1/predict", "AAPL", "2020-01-02", "ten")
	cmd.SetOut(io.Discard)

	err := runSubmit(cmd, nil)
	require.Error(t, err)
	assert.Equal(t, form.MsgSharesInvalid, err.Error())
}

func TestSubmitCmd_StatusErrorPrinted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("server error"))
	}))
	defer srv.Close()

	cmd := setupSubmit(t, srv.URL, "AAPL", "2020-01-02", "10")
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, runSubmit(cmd, nil))
	assert.Equal(t, "Failed to fetch data: server error\n", out.String())
}

func TestConfigInit_WritesDefaults(t *testing.T) {
	logger = zap.NewNop()
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, runConfigInit(cmd, []string{path}))
	assert.Contains(t, out.String(), path)

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultEndpoint, loaded.Endpoint.URL)
	assert.True(t, loaded.Animation.CancelPrevious)

	// Refuses to clobber without --force
	err = runConfigInit(cmd, []string{path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	configForce = true
	defer func() { configForce = false }()
	require.NoError(t, runConfigInit(cmd, []string{path}))
}

func TestRootCmd_ConfigShowAppliesFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	c := config.DefaultConfig()
	c.Logging.File = filepath.Join(dir, "logs", "stockprofit.log")
	c.Endpoint.URL = "http://from-file.example/predict"
	require.NoError(t, c.Save(path))

	for _, k := range []string{"STOCKPROFIT_ENDPOINT", "STOCKPROFIT_TIMEOUT", "STOCKPROFIT_LOG_LEVEL", "STOCKPROFIT_DARK_MODE"} {
		t.Setenv(k, "")
	}
	defer func() {
		configPath, endpoint, timeout, verbose = "", "", 0, false
		cfg = nil
		_ = logging.Initialize(logging.Options{})
	}()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"config", "show", "--config", path, "--endpoint", "http://from-flag.example/predict", "--timeout", "3s"})
	require.NoError(t, rootCmd.Execute())

	var shown config.Config
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &shown))
	assert.Equal(t, "http://from-flag.example/predict", shown.Endpoint.URL)
	assert.Equal(t, "3s", shown.Endpoint.Timeout)
	assert.Equal(t, "50ms", shown.Animation.Interval)
}

func TestRootCmd_InvalidConfigRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("endpoint:\n  url: ftp://nope\n"), 0644))
	t.Setenv("STOCKPROFIT_ENDPOINT", "")
	defer func() {
		configPath = ""
		cfg = nil
	}()

	rootCmd.SetOut(io.Discard)
	rootCmd.SetArgs([]string{"config", "show", "--config", path})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scheme must be http or https")
}

func TestSubmitCmd_SignalReportsInterrupted(t *testing.T) {
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer srv.Close()

	sigs := make(chan chan<- os.Signal, 1)
	old := notifySignals
	notifySignals = func(c chan<- os.Signal) { sigs <- c }
	defer func() { notifySignals = old }()

	cmd := setupSubmit(t, srv.URL, "AAPL", "2020-01-02", "10")
	cmd.SetOut(io.Discard)

	go func() {
		c := <-sigs
		<-started
		c <- os.Interrupt
	}()

	err := runSubmit(cmd, nil)
	assert.ErrorIs(t, err, errInterrupted)
}

func TestRootCmd_NoLogFileWithoutDebug(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, config.DefaultConfig().Save(path))
	for _, k := range []string{"STOCKPROFIT_ENDPOINT", "STOCKPROFIT_TIMEOUT", "STOCKPROFIT_LOG_LEVEL", "STOCKPROFIT_DARK_MODE"} {
		t.Setenv(k, "")
	}
	defer func() {
		configPath = ""
		cfg = nil
		_ = logging.Initialize(logging.Options{})
	}()

	rootCmd.SetOut(io.Discard)
	rootCmd.SetArgs([]string{"config", "show", "--config", path})
	require.NoError(t, rootCmd.Execute())

	_, err := os.Stat(filepath.Join(dir, ".stockprofit", "logs"))
	assert.True(t, os.IsNotExist(err), "log directory created without debug mode")
}
