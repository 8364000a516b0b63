package main

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/glyphpad/internal/config"
	"github.com/example/glyphpad/internal/payload"
	"github.com/example/glyphpad/internal/pointer"
	"github.com/example/glyphpad/internal/predict"
)

type received struct {
	filename string
	data     []byte
}

// fakeBackend answers every upload with body and records what it got.
func fakeBackend(t *testing.T, status int, body string) (*httptest.Server, chan received) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	got := make(chan received, 1)
	r := gin.New()
	r.POST("/predict", func(c *gin.Context) {
		fh, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no file"})
			return
		}
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		got <- received{filename: fh.Filename, data: data}
		c.Data(status, "application/json", []byte(body))
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, got
}

func testRoot(t *testing.T, endpoint string) (*root, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	cfg := config.New()
	cfg.Endpoint = endpoint
	return &root{
		program:  "glyphpad",
		loader:   config.NewLoader("test", filepath.Join(t.TempDir(), "glyphpad.rc")),
		config:   cfg,
		logger:   log.NewNopLogger(),
		stdout:   &out,
		stderr:   io.Discard,
		endpoint: endpoint,
		timeout:  5 * time.Second,
	}, &out
}

func writeBlankPNG(t *testing.T) string {
	t.Helper()
	data, err := payload.EncodePNG(image.NewRGBA(image.Rect(0, 0, 28, 28)))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "digit.png")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestParseStrokes(t *testing.T) {
	strokes, err := parseStrokes("10,10 20,20 / 30,30.5")
	require.NoError(t, err)
	assert.Equal(t, [][]pointer.Point{
		{{X: 10, Y: 10}, {X: 20, Y: 20}},
		{{X: 30, Y: 30.5}},
	}, strokes)

	for _, bad := range []string{"", " / ", "10", "a,1", "1,b"} {
		_, err := parseStrokes(bad)
		assert.Error(t, err, "%q", bad)
	}
}

func TestParsePredictCmdInputs(t *testing.T) {
	r, _ := testRoot(t, "http://127.0.0.1:1/predict")

	_, err := parsePredictCmd(nil, r)
	var uerr *UsageError
	assert.True(t, errors.As(err, &uerr))

	_, err = parsePredictCmd([]string{"-file", "a.png", "-from-clipboard"}, r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot use -file with -from-clipboard")

	c, err := parsePredictCmd([]string{"b.png"}, r)
	require.NoError(t, err)
	assert.Equal(t, "b.png", c.file)
}

func TestParseSketchCmdNeedsAction(t *testing.T) {
	r, _ := testRoot(t, "http://127.0.0.1:1/predict")

	_, err := parseSketchCmd([]string{"1,1", "2,2"}, r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to do")

	_, err = parseSketchCmd([]string{"-output", "x.png", "-to-clipboard", "1,1"}, r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires -submit")
}

func TestPredictFilePrintsResult(t *testing.T) {
	srv, got := fakeBackend(t, http.StatusOK, `{"prediction_index": 10, "prediction_char": "A"}`)
	r, out := testRoot(t, srv.URL+"/predict")
	path := writeBlankPNG(t)

	c, err := parsePredictCmd([]string{"-file", path}, r)
	require.NoError(t, err)
	require.NoError(t, c.Run())

	assert.Equal(t, "A 10\n", out.String())
	rec := <-got
	assert.Equal(t, "digit.png", rec.filename)
	want, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, rec.data)
}

func TestPredictServerError(t *testing.T) {
	srv, _ := fakeBackend(t, http.StatusBadRequest, `{"error": "image too small"}`)
	r, out := testRoot(t, srv.URL+"/predict")

	c, err := parsePredictCmd([]string{writeBlankPNG(t)}, r)
	require.NoError(t, err)
	err = c.Run()
	require.Error(t, err)

	var serr *predict.ServerError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, http.StatusBadRequest, serr.Status)
	assert.True(t, strings.HasPrefix(err.Error(), "image too small"), err.Error())
	assert.Empty(t, out.String())
}

func TestPredictMissingFile(t *testing.T) {
	r, _ := testRoot(t, "http://127.0.0.1:1/predict")
	c, err := parsePredictCmd([]string{filepath.Join(t.TempDir(), "nope.png")}, r)
	require.NoError(t, err)
	err = c.Run()
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSketchSubmitSendsDrawing(t *testing.T) {
	srv, got := fakeBackend(t, http.StatusOK, `{"prediction_index": 1, "prediction_char": "1"}`)
	r, out := testRoot(t, srv.URL+"/predict")

	c, err := parseSketchCmd([]string{"-submit", "140,40", "140,240"}, r)
	require.NoError(t, err)
	require.NoError(t, c.Run())
	assert.Equal(t, "1 1\n", out.String())

	rec := <-got
	assert.Equal(t, payload.DrawingFilename, rec.filename)
	img, err := png.Decode(bytes.NewReader(rec.data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 280, 280), img.Bounds())
	r8, _, _, _ := img.At(140, 140).RGBA()
	assert.Greater(t, r8>>8, uint32(200))
	r8, _, _, _ = img.At(20, 20).RGBA()
	assert.Less(t, r8>>8, uint32(30))
}

func TestSketchOutputWritesPNG(t *testing.T) {
	r, _ := testRoot(t, "http://127.0.0.1:1/predict")
	path := filepath.Join(t.TempDir(), "seven.png")

	c, err := parseSketchCmd([]string{"-output", path, "60,50", "220,50", "/", "220,50", "120,240"}, r)
	require.NoError(t, err)
	require.NoError(t, c.Run())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	r8, _, _, _ := img.At(140, 50).RGBA()
	assert.Greater(t, r8>>8, uint32(200))
}

func TestSketchUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL + "/predict"
	srv.Close()
	r, _ := testRoot(t, url)

	c, err := parseSketchCmd([]string{"-submit", "10,10", "50,50"}, r)
	require.NoError(t, err)
	err = c.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Could not reach backend.")
}

func TestConfigPrintAndSave(t *testing.T) {
	r, out := testRoot(t, "http://example.test/predict")
	r.timeout = 3 * time.Second

	c, err := parseConfigCmd([]string{"print"}, r)
	require.NoError(t, err)
	require.NoError(t, c.Run())
	assert.Contains(t, out.String(), "endpoint = http://example.test/predict")
	assert.Contains(t, out.String(), "timeout = 3s")

	out.Reset()
	c, err = parseConfigCmd([]string{"save"}, r)
	require.NoError(t, err)
	require.NoError(t, c.Run())

	data, err := os.ReadFile(r.loader.OverridePath)
	require.NoError(t, err)
	saved, err := config.Parse(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "http://example.test/predict", saved.Endpoint)
	assert.Equal(t, 3*time.Second, saved.Timeout)

	c, err = parseConfigCmd([]string{"bogus"}, r)
	require.NoError(t, err)
	assert.Error(t, c.Run())
}

func TestHelpTemplatesRender(t *testing.T) {
	r, _ := testRoot(t, "http://127.0.0.1:1/predict")
	sketch, err := parseSketchCmd([]string{"-submit", "1,1"}, r)
	require.NoError(t, err)
	cases := []struct {
		of   HelpData
		want []string
	}{
		{r, []string{"Usage: glyphpad [flags] <command>", "sketch"}},
		{&versionCmd{root: r}, []string{"Usage: glyphpad version"}},
		{&configCmd{root: r}, []string{"Usage: glyphpad config <print|save>"}},
		{sketch, []string{"Usage: glyphpad sketch", "-output", "-submit (default false)"}},
	}
	for _, tc := range cases {
		msg := (&UsageError{of: tc.of}).Error()
		for _, w := range tc.want {
			assert.Contains(t, msg, w)
		}
	}
}

func TestRootRun(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())
	for _, k := range []string{config.EnvEndpoint, config.EnvTimeout, config.EnvLogLevel, config.EnvTheme} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	r := newRoot()
	var out bytes.Buffer
	r.stdout, r.stderr = &out, io.Discard
	var uerr *UsageError
	assert.True(t, errors.As(r.Run(nil), &uerr))

	rc := filepath.Join(t.TempDir(), "alt.rc")
	require.NoError(t, os.WriteFile(rc, []byte("endpoint = http://alt.test/predict\ntimeout = 9s\n"), 0o644))

	r = newRoot()
	r.stdout, r.stderr = &out, io.Discard
	require.NoError(t, r.Run([]string{"-config", rc, "-timeout", "2s", "-theme", "dark", "config", "print"}))
	assert.Contains(t, out.String(), "endpoint = http://alt.test/predict")
	assert.Contains(t, out.String(), "timeout = 2s")
	assert.Contains(t, out.String(), "theme = dark")
	assert.Equal(t, "Dark", r.palette.Name)

	out.Reset()
	r = newRoot()
	r.stdout, r.stderr = &out, io.Discard
	require.NoError(t, r.Run([]string{"version"}))
	assert.Equal(t, "glyphpad version dev\n", out.String())
}
