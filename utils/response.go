package utils

import (
	"fmt"

	"github.com/kataras/iris/v12"
)

// PageMeta describes one page of an admin listing.
type PageMeta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// JSONPage writes the admin listing envelope. Links carry prev/next page URLs
// relative to the request path; a first or last page simply omits them.
func JSONPage(ctx iris.Context, data interface{}, page, perPage int, total int64) {
	pages := 0
	if perPage > 0 {
		pages = int((total + int64(perPage) - 1) / int64(perPage))
	}

	links := iris.Map{}
	if page > 1 {
		links["prev"] = pageLink(ctx.Path(), page-1, perPage)
	}
	if page < pages {
		links["next"] = pageLink(ctx.Path(), page+1, perPage)
	}

	ctx.JSON(iris.Map{
		"data":  data,
		"meta":  PageMeta{Page: page, PerPage: perPage, Total: total, TotalPages: pages},
		"links": links,
	})
}

func pageLink(path string, page, perPage int) string {
	return fmt.Sprintf("%s?page=%d&per_page=%d", path, page, perPage)
}

func JSONError(ctx iris.Context, status int, code, message string) {
	ctx.StatusCode(status)
	ctx.JSON(iris.Map{"error": code, "message": message})
}
