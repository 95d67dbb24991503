package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/api/option"

	"github.com/mamadbah2/farmshop/internal/domain/models"
)

// fakeSheetsAPI serves the handful of Sheets v4 endpoints the repository calls.
type fakeSheetsAPI struct {
	mu      sync.Mutex
	titles  []string
	values  map[string][][]interface{}
	created []string
}

func (f *fakeSheetsAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := r.URL.Path
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodPost && strings.HasSuffix(path, ":batchUpdate"):
		var req struct {
			Requests []struct {
				AddSheet struct {
					Properties struct {
						Title string `json:"title"`
					} `json:"properties"`
				} `json:"addSheet"`
			} `json:"requests"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		for _, rq := range req.Requests {
			f.titles = append(f.titles, rq.AddSheet.Properties.Title)
			f.created = append(f.created, rq.AddSheet.Properties.Title)
		}
		_, _ = w.Write([]byte(`{}`))
	case r.Method == http.MethodPost && strings.HasSuffix(path, ":clear"):
		sheet := sheetFromPath(strings.TrimSuffix(path, ":clear"))
		delete(f.values, sheet)
		_, _ = w.Write([]byte(`{}`))
	case r.Method == http.MethodPut && strings.Contains(path, "/values/"):
		var body struct {
			Values [][]interface{} `json:"values"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.values[sheetFromPath(path)] = body.Values
		_, _ = w.Write([]byte(`{}`))
	case r.Method == http.MethodGet && strings.Contains(path, "/values/"):
		_ = json.NewEncoder(w).Encode(map[string]any{"values": f.values[sheetFromPath(path)]})
	case r.Method == http.MethodGet:
		sheets := make([]map[string]any, 0, len(f.titles))
		for _, title := range f.titles {
			sheets = append(sheets, map[string]any{"properties": map[string]any{"title": title}})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"sheets": sheets})
	default:
		http.NotFound(w, r)
	}
}

func sheetFromPath(path string) string {
	idx := strings.Index(path, "/values/")
	name := path[idx+len("/values/"):]
	if bang := strings.Index(name, "!"); bang >= 0 {
		name = name[:bang]
	}
	return name
}

func newFakeGoogleRepo(t *testing.T, api *fakeSheetsAPI) *GoogleSheetRepository {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	repo, err := newGoogleSheetRepository(context.Background(), "sheet-id", zaptest.NewLogger(t),
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return repo
}

func TestGoogleSheetRepositoryReplaceThenRead(t *testing.T) {
	api := &fakeSheetsAPI{values: map[string][][]interface{}{}}
	repo := newFakeGoogleRepo(t, api)
	ctx := context.Background()

	rows := []models.Row{
		{"id": float64(1), "name": "Maize Meal 12.5kg", "quantity": float64(50)},
		{"id": float64(2), "name": "Sugar 2.5kg", "quantity": float64(30)},
	}
	require.NoError(t, repo.ReplaceRows(ctx, "Stock", rows))
	assert.Equal(t, []string{"Stock"}, api.created)

	got, err := repo.ReadRows(ctx, "Stock")
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestGoogleSheetRepositoryReplaceWithEmptyClears(t *testing.T) {
	api := &fakeSheetsAPI{
		titles: []string{"Workers"},
		values: map[string][][]interface{}{"Workers": {{"id"}, {float64(1)}}},
	}
	repo := newFakeGoogleRepo(t, api)

	require.NoError(t, repo.ReplaceRows(context.Background(), "Workers", nil))
	assert.Empty(t, api.created)

	got, err := repo.ReadRows(context.Background(), "Workers")
	require.NoError(t, err)
	assert.Empty(t, got)
}
