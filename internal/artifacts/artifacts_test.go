package artifacts

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/pl-spend-service/internal/testutil"
)

type recordingStore struct {
	puts    map[string]string
	types   map[string]string
	failKey string
}

func newRecordingStore() *recordingStore {
	return &recordingStore{puts: map[string]string{}, types: map[string]string{}}
}

func (s *recordingStore) Location() string { return "memory" }

func (s *recordingStore) Put(_ context.Context, key string, r io.Reader, _ int64, contentType string) error {
	if key == s.failKey {
		return errors.New("boom")
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.puts[key] = string(b)
	s.types[key] = contentType
	return nil
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestRunPrefixUsesUTC(t *testing.T) {
	loc := time.FixedZone("plus2", 2*60*60)
	got := RunPrefix(time.Date(2024, 5, 19, 17, 30, 0, 0, loc))
	assert.Equal(t, "runs/20240519T153000Z/", got)
}

func TestContentTypeFor(t *testing.T) {
	cases := map[string]string{
		"a.csv":  "text/csv",
		"b.TXT":  "text/plain; charset=utf-8",
		"c.json": "application/json",
		"d.bin":  "application/octet-stream",
	}
	for name, want := range cases {
		assert.Equal(t, want, ContentTypeFor(name), name)
	}
}

func TestPublishUploadsFilesUnderPrefix(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeFile(t, dir, "stacked.csv", "season,club\n2013-14,Arsenal\n")
	txtPath := writeFile(t, dir, "regression_outputs.txt", "MODEL 1\n")
	store := newRecordingStore()
	logger, buf := testutil.NewBufferLogger()

	got, err := Publish(context.Background(), store, "runs/x/", []File{{Path: csvPath}, {Path: txtPath}}, logger)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "runs/x/stacked.csv", got[0].Key)
	assert.Equal(t, int64(len("season,club\n2013-14,Arsenal\n")), got[0].Size)
	assert.Equal(t, "MODEL 1\n", store.puts["runs/x/regression_outputs.txt"])
	assert.Equal(t, "text/csv", store.types["runs/x/stacked.csv"])
	assert.Contains(t, buf.String(), "artifact published")
}

func TestPublishStopsOnFailure(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.csv", "x")
	b := writeFile(t, dir, "b.csv", "y")
	store := newRecordingStore()
	store.failKey = "p/a.csv"

	got, err := Publish(context.Background(), store, "p", []File{{Path: a}, {Path: b}}, nil)
	require.Error(t, err)
	assert.Empty(t, got)
	assert.Empty(t, store.puts)
}

func TestPublishMissingFile(t *testing.T) {
	_, err := Publish(context.Background(), newRecordingStore(), "p", []File{{Path: filepath.Join(t.TempDir(), "nope.csv")}}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLocalStorePutWritesNestedKey(t *testing.T) {
	base := t.TempDir()
	s := NewLocalStore(base)
	body := "hello"

	require.NoError(t, s.Put(context.Background(), "runs/1/out.txt", strings.NewReader(body), int64(len(body)), "text/plain"))

	got, err := os.ReadFile(filepath.Join(base, "runs", "1", "out.txt"))
	require.NoError(t, err)
	assert.Equal(t, body, string(got))
	assert.Equal(t, base, s.Location())
}

func TestLocalStoreRejectsBadKeysAndShortReads(t *testing.T) {
	base := t.TempDir()
	s := NewLocalStore(base)

	err := s.Put(context.Background(), "/", strings.NewReader("x"), 1, "")
	assert.ErrorIs(t, err, ErrInvalidKey)

	err = s.Put(context.Background(), "short.txt", strings.NewReader("abc"), 10, "")
	require.Error(t, err)
	_, statErr := os.Stat(filepath.Join(base, "short.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestLocalStoreKeysCannotEscapeBase(t *testing.T) {
	base := t.TempDir()
	s := NewLocalStore(filepath.Join(base, "inner"))

	require.NoError(t, s.Put(context.Background(), "../../escape.txt", strings.NewReader("x"), 1, ""))

	_, err := os.Stat(filepath.Join(base, "inner", "escape.txt"))
	assert.NoError(t, err)
}
