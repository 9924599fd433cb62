// Package paginator splits an ordered gorm query into fixed-size pages.
//
// Page resolution is forgiving: a missing or non-numeric page number yields
// the first page and a number past the end yields the last one, so a page
// is always rendered.
package paginator

import (
	"strconv"
	"strings"

	"gorm.io/gorm"
)

type Page[T any] struct {
	Items    []T
	Number   int
	NumPages int
	Count    int64
	PerPage  int
}

func (p *Page[T]) Len() int { return len(p.Items) }

func (p *Page[T]) HasNext() bool { return p.Number < p.NumPages }

func (p *Page[T]) HasPrevious() bool { return p.Number > 1 }

func (p *Page[T]) HasOtherPages() bool { return p.HasNext() || p.HasPrevious() }

func (p *Page[T]) NextPageNumber() int {
	if !p.HasNext() {
		return p.Number
	}
	return p.Number + 1
}

func (p *Page[T]) PreviousPageNumber() int {
	if !p.HasPrevious() {
		return p.Number
	}
	return p.Number - 1
}

// PageRange lists 1..NumPages for page links.
func (p *Page[T]) PageRange() []int {
	out := make([]int, p.NumPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// NumPages is ceil(count/perPage), with an empty result still having one page.
func NumPages(count int64, perPage int) int {
	if count <= 0 || perPage <= 0 {
		return 1
	}
	return int((count + int64(perPage) - 1) / int64(perPage))
}

// ResolvePage turns the raw ?page= value into a valid page number.
func ResolvePage(raw string, numPages int) int {
	raw = strings.TrimSpace(raw)
	if raw == "last" {
		return numPages
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	if page > numPages {
		return numPages
	}
	return page
}

// Paginate counts the query, then loads the resolved page. scopes apply to
// the fetch only, which keeps Preload out of the COUNT.
func Paginate[T any](query *gorm.DB, rawPage string, perPage int, scopes ...func(*gorm.DB) *gorm.DB) (*Page[T], error) {
	if perPage < 1 {
		perPage = 1
	}
	base := query.Session(&gorm.Session{})

	var count int64
	if err := base.Count(&count).Error; err != nil {
		return nil, err
	}

	numPages := NumPages(count, perPage)
	number := ResolvePage(rawPage, numPages)

	items := []T{}
	if count > 0 {
		if err := base.Scopes(scopes...).
			Offset((number - 1) * perPage).
			Limit(perPage).
			Find(&items).Error; err != nil {
			return nil, err
		}
	}

	return &Page[T]{
		Items:    items,
		Number:   number,
		NumPages: numPages,
		Count:    count,
		PerPage:  perPage,
	}, nil
}
