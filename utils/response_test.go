package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kataras/iris/v12"
)

type pageEnvelope struct {
	Meta  PageMeta          `json:"meta"`
	Links map[string]string `json:"links"`
}

func servePage(t *testing.T, page, perPage int, total int64) pageEnvelope {
	t.Helper()
	app := iris.New()
	app.Get("/admin/widgets", func(ctx iris.Context) {
		JSONPage(ctx, []int{}, page, perPage, total)
	})
	if err := app.Build(); err != nil {
		t.Fatalf("build app: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/widgets", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	var body pageEnvelope
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return body
}

func TestJSONPageMiddlePage(t *testing.T) {
	// 10 rows at 3 per page -> 4 pages; page 2 links both ways
	body := servePage(t, 2, 3, 10)

	if body.Meta.TotalPages != 4 {
		t.Errorf("expected 4 total pages, got %d", body.Meta.TotalPages)
	}
	if body.Links["prev"] != "/admin/widgets?page=1&per_page=3" {
		t.Errorf("unexpected prev link %q", body.Links["prev"])
	}
	if body.Links["next"] != "/admin/widgets?page=3&per_page=3" {
		t.Errorf("unexpected next link %q", body.Links["next"])
	}
}

func TestJSONPageEdges(t *testing.T) {
	first := servePage(t, 1, 3, 10)
	if _, ok := first.Links["prev"]; ok {
		t.Errorf("first page must not link prev, got %v", first.Links)
	}

	last := servePage(t, 4, 3, 10)
	if _, ok := last.Links["next"]; ok {
		t.Errorf("last page must not link next, got %v", last.Links)
	}

	empty := servePage(t, 1, 3, 0)
	if empty.Meta.TotalPages != 0 || len(empty.Links) != 0 {
		t.Errorf("empty listing should have no pages or links, got %+v", empty)
	}
}
