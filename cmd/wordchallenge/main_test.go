package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/japaniel/wordchallenge/pkg/config"
	"github.com/japaniel/wordchallenge/pkg/db"
	"github.com/japaniel/wordchallenge/pkg/history"
	"github.com/japaniel/wordchallenge/pkg/practice"
)

func seedHistory(t *testing.T, path string, entries ...history.Entry) {
	t.Helper()
	conn, err := db.Open(path)
	require.NoError(t, err)
	defer conn.Close()
	store := history.NewSQLiteStore(conn)
	for _, e := range entries {
		require.NoError(t, store.Append(context.Background(), e))
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("WORDCHALLENGE_LOG_FILE", filepath.Join(t.TempDir(), "test.log"))
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

var (
	first  = history.Entry{Word: "ambiguous", Sentence: "It was an ambiguous statement.", Score: 85, Difficulty: "Advanced", Timestamp: "2026-10-14T09:00:00Z"}
	second = history.Entry{Word: "cat", Sentence: "The cat sat.", Score: 55, Difficulty: "Beginner", Timestamp: "2026-10-14T09:05:00Z"}
)

func TestHistoryCommandTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wc.db")
	seedHistory(t, path, first, second)

	out, err := run(t, "history", "--db", path)
	require.NoError(t, err)
	assert.Contains(t, out, "WORD")
	assert.Contains(t, out, "ambiguous")
	assert.Contains(t, out, "85.0")
	assert.Contains(t, out, "The cat sat.")
	assert.Less(t, bytes.Index([]byte(out), []byte("ambiguous")), bytes.Index([]byte(out), []byte("cat sat")))
}

func TestHistoryCommandJSONLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wc.db")
	seedHistory(t, path, first, second)

	out, err := run(t, "history", "--db", path, "--json", "-n", "1")
	require.NoError(t, err)
	var got []history.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []history.Entry{second}, got)
}

func TestHistoryCommandEmpty(t *testing.T) {
	out, err := run(t, "history", "--db", filepath.Join(t.TempDir(), "empty.db"))
	require.NoError(t, err)
	assert.Contains(t, out, "No attempts recorded yet.")
}

func TestHistoryClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wc.db")
	seedHistory(t, path, first)

	out, err := run(t, "history", "clear", "--db", path)
	require.NoError(t, err)
	assert.Contains(t, out, "History cleared.")

	out, err = run(t, "history", "--db", path)
	require.NoError(t, err)
	assert.Contains(t, out, "No attempts recorded yet.")
}

func TestStatsCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wc.db")
	seedHistory(t, path, first, second)

	out, err := run(t, "stats", "--db", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Advanced")
	assert.Contains(t, out, "Beginner")
	assert.Contains(t, out, "70.0")
}

func TestEnvSelectsDatabaseAndFlagOverrides(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), "env.db")
	flagPath := filepath.Join(t.TempDir(), "flag.db")
	seedHistory(t, envPath, first)
	seedHistory(t, flagPath, second)
	t.Setenv("WORDCHALLENGE_DB", envPath)

	out, err := run(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "ambiguous")

	out, err = run(t, "history", "--db", flagPath)
	require.NoError(t, err)
	assert.Contains(t, out, "cat")
	assert.NotContains(t, out, "ambiguous")
}

func TestInvalidTimeoutFlag(t *testing.T) {
	_, err := run(t, "history", "--db", filepath.Join(t.TempDir(), "x.db"), "--timeout", "-1s")
	assert.Error(t, err)
}

func TestTimeoutFlagOverridesInvalidEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.db")
	t.Setenv("WORDCHALLENGE_TIMEOUT", "-1s")

	_, err := run(t, "history", "--db", path)
	assert.Error(t, err)

	out, err := run(t, "history", "--db", path, "--timeout", "30s")
	require.NoError(t, err)
	assert.Contains(t, out, "No attempts recorded yet.")
}

// TestSessionAgainstServices drives a session wired the way the practice
// command wires it, against fake services and a real database.
func TestSessionAgainstServices(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/word", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"word":{"id":7,"word":"ambiguous","meaning":"unclear","difficulty":"Advanced"}}`)
	})
	mux.HandleFunc("/api/validate-sentence", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			WordID   int64  `json:"word_id"`
			Sentence string `json:"sentence"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.WordID != 7 {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		io.WriteString(w, `{"score":85}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "wc.db")
	a := &app{
		cfg: config.Config{
			DBPath:      path,
			WordURL:     srv.URL + "/api/word",
			ValidateURL: srv.URL + "/api/validate-sentence",
			Timeout:     5 * time.Second,
		},
		logger: zaptest.NewLogger(t),
	}
	store, conn, err := a.openHistory()
	require.NoError(t, err)
	defer conn.Close()

	ctx := context.Background()
	s := a.newSession(store)
	_, err = s.LoadNextWord(ctx)
	require.NoError(t, err)
	s.EditDraft("It was an ambiguous statement.")
	res, err := s.SubmitSentence(ctx)
	require.NoError(t, err)
	assert.Equal(t, practice.Success, res.Feedback)

	entries, err := store.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Advanced", entries[0].Difficulty)
	assert.Equal(t, "It was an ambiguous statement.", entries[0].Sentence)
}
