// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pagination splits listing results into pages and renders the
navigation bar shown under every table.

A [Page] is built fresh per request from the inbound query string and a
countable, range-sliceable [Source]. It holds the rows of the effective page
and knows how to emit First / Prev / numbered / Next / Last links that keep
every other query parameter intact.

Usage:

	page, err := pagination.New(ctx, request.URL.Query(), source, pagination.Options{})
	if err != nil {
	    return err
	}
	rows, navbar := page.Rows, page.HTML()
*/
package pagination

import (
	"context"
	"fmt"
	"html/template"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultPageSize is the number of rows per page.
	DefaultPageSize = 10
	// DefaultPageParam is the query parameter carrying the page number.
	DefaultPageParam = "page"
	// DefaultDeviation is the half-width of the numbered link window.
	DefaultDeviation = 5
	// CurrentPageOnly is a Deviation that shows only the current page number.
	CurrentPageOnly = -1
)

// Options tunes a [Page]. Zero values select the defaults.
type Options struct {
	PageSize  int
	PageParam string

	// Deviation is the number of page links shown either side of the current
	// page. Zero selects [DefaultDeviation]; any negative value, such as
	// [CurrentPageOnly], narrows the window to the current page alone.
	Deviation int
}

func (options Options) withDefaults() Options {
	if options.PageSize <= 0 {
		options.PageSize = DefaultPageSize
	}
	if options.PageParam == "" {
		options.PageParam = DefaultPageParam
	}
	switch {
	case options.Deviation < 0:
		options.Deviation = 0
	case options.Deviation == 0:
		options.Deviation = DefaultDeviation
	}
	return options
}

// Page is the result of paginating one listing for one request.
//
// # Concurrency
//
// A Page is immutable after [New] returns; link generation never mutates it.
type Page[T any] struct {
	// Rows holds the rows of the effective page.
	Rows []T

	// Number is the effective page, always in [1, max(1, PageCount)].
	Number int
	// Requested is the page parsed from the query string before fallback.
	Requested int

	PageSize  int
	Total     int
	PageCount int

	query     url.Values
	param     string
	deviation int
}

/*
New counts the source, resolves the effective page and slices its rows.

Description: A requested page beyond the last page (or page zero) silently
falls back to page 1. Malformed page values also select page 1.

Parameters:
  - ctx: context.Context
  - query: url.Values (the inbound query string, never modified)
  - source: Source[T]
  - options: Options

Returns:
  - *Page[T]: The resolved page
  - error: Count or slice failures from the data layer
*/
func New[T any](ctx context.Context, query url.Values, source Source[T], options Options) (*Page[T], error) {
	options = options.withDefaults()

	total, err := source.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("pagination: count: %w", err)
	}

	page := &Page[T]{
		Requested: ParsePage(query.Get(options.PageParam)),
		PageSize:  options.PageSize,
		Total:     total,
		PageCount: pageCount(total, options.PageSize),
		query:     cloneValues(query),
		param:     options.PageParam,
		deviation: options.Deviation,
	}

	// Out-of-range requests restart at the first page
	page.Number = page.Requested
	if page.Number < 1 || page.Number > page.PageCount {
		page.Number = 1
	}

	start, end := page.Bounds()
	rows, err := source.Slice(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("pagination: slice [%d:%d): %w", start, end, err)
	}

	page.Rows = rows
	return page, nil
}

// ParsePage reads a page number made only of ASCII digits.
// Anything else, including values that overflow int, yields 1.
func ParsePage(raw string) int {
	if raw == "" {
		return 1
	}

	for _, character := range raw {
		if character < '0' || character > '9' {
			return 1
		}
	}

	number, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return number
}

func pageCount(total, size int) int {
	count := total / size
	if total%size != 0 {
		count++
	}
	return count
}

// Bounds returns the half-open row range [start, end) of the effective page.
func (page *Page[T]) Bounds() (int, int) {
	start := (page.Number - 1) * page.PageSize
	return start, start + page.PageSize
}

// HasPrev reports whether a previous page exists.
func (page *Page[T]) HasPrev() bool { return page.Number > 1 }

// HasNext reports whether a next page exists.
func (page *Page[T]) HasNext() bool { return page.Number < page.PageCount }

// Offset returns the zero-based index of the first row, for row numbering in templates.
func (page *Page[T]) Offset() int {
	start, _ := page.Bounds()
	return start
}

/*
Window returns the inclusive range of numbered links around the current page.

With N pages and deviation d:
  - N <= 2d+1 shows every page.
  - A page within the first d shows [1, 2d+1].
  - A page within the last d shows [N-2d, N].
  - Otherwise the window is centred: [page-d, page+d].

An empty listing is treated as a single page.
*/
func (page *Page[T]) Window() (int, int) {
	count := max(page.PageCount, 1)
	deviation := page.deviation
	width := 2*deviation + 1

	switch {
	case count <= width:
		return 1, count
	case page.Number <= deviation:
		return 1, width
	case page.Number+deviation > count:
		return count - 2*deviation, count
	default:
		return page.Number - deviation, page.Number + deviation
	}
}

// # Navigation Links

// LinkKind identifies the role of a navigation link.
type LinkKind int

const (
	LinkFirst LinkKind = iota
	LinkPrev
	LinkPage
	LinkNext
	LinkLast
)

// Link is one entry of the navigation bar.
type Link struct {
	Kind   LinkKind
	Label  string
	Page   int
	Href   string
	Active bool
}

/*
Links builds the navigation sequence: First, Prev, the numbered window, Next
and Last. Each href is the original query string with only the page
parameter replaced.
*/
func (page *Page[T]) Links() []Link {
	count := max(page.PageCount, 1)
	windowStart, windowEnd := page.Window()

	links := make([]Link, 0, windowEnd-windowStart+5)
	links = append(links, page.link(LinkFirst, "First", 1))

	previous := 1
	if page.Number > 1 {
		previous = page.Number - 1
	}
	links = append(links, page.link(LinkPrev, "< Prev", previous))

	for number := windowStart; number <= windowEnd; number++ {
		link := page.link(LinkPage, strconv.Itoa(number), number)
		link.Active = number == page.Number
		links = append(links, link)
	}

	next := count
	if page.Number < count {
		next = page.Number + 1
	}
	links = append(links, page.link(LinkNext, "Next >", next))
	links = append(links, page.link(LinkLast, "Last", count))

	return links
}

func (page *Page[T]) link(kind LinkKind, label string, number int) Link {
	return Link{Kind: kind, Label: label, Page: number, Href: page.Href(number)}
}

// Href returns "?" followed by the encoded query string pointing at number.
func (page *Page[T]) Href(number int) string {
	values := cloneValues(page.query)
	values.Set(page.param, strconv.Itoa(number))
	return "?" + values.Encode()
}

// HTML renders the navigation bar as list items, followed by a page jump form.
// The result is meant to sit inside a <ul class="pagination"> element.
func (page *Page[T]) HTML() template.HTML {
	var builder strings.Builder

	for _, link := range page.Links() {
		if link.Active {
			builder.WriteString(`<li class="active">`)
		} else {
			builder.WriteString(`<li>`)
		}
		fmt.Fprintf(&builder, `<a href="%s">%s</a></li>`,
			template.HTMLEscapeString(link.Href),
			template.HTMLEscapeString(link.Label),
		)
	}

	fmt.Fprintf(&builder, `<li><form method="get" class="pagination-jump">`+
		`<input class="form-control" name="%s" type="text" placeholder="Page number">`+
		`<button class="btn btn-default" type="submit">Go</button></form></li>`,
		template.HTMLEscapeString(page.param),
	)

	return template.HTML(builder.String())
}

func cloneValues(values url.Values) url.Values {
	clone := make(url.Values, len(values))
	for key, list := range values {
		clone[key] = append([]string(nil), list...)
	}
	return clone
}

// clampInt bounds value to [low, high].
func clampInt(value, low, high int) int {
	return max(low, min(value, high))
}
