// Package paginate slices ordered GORM queries into fixed-size pages.
package paginate

import (
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// PerPage is the number of items on every page.
const PerPage = 10

// Page is one slice of a listing plus the metadata templates need to draw
// navigation.
type Page[T any] struct {
	Items    []T
	Number   int
	NumPages int
	Count    int64
}

func (p *Page[T]) Len() int { return len(p.Items) }

func (p *Page[T]) HasNext() bool { return p.Number < p.NumPages }

func (p *Page[T]) HasPrevious() bool { return p.Number > 1 }

func (p *Page[T]) HasOtherPages() bool { return p.HasNext() || p.HasPrevious() }

func (p *Page[T]) NextNumber() int { return p.Number + 1 }

func (p *Page[T]) PreviousNumber() int { return p.Number - 1 }

// NumPagesFor returns how many pages count items fill. An empty listing still
// has one (empty) page.
func NumPagesFor(count int64, perPage int) int {
	if count <= 0 {
		return 1
	}
	return int((count + int64(perPage) - 1) / int64(perPage))
}

// Resolve turns the raw page query value into a valid page number. Missing
// or non-numeric values give the first page; numbers outside 1..numPages
// give the last page.
func Resolve(raw string, numPages int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	if n < 1 || n > numPages {
		return numPages
	}
	return n
}

// Query counts the rows matched by base, then loads the requested page
// ordered by order. base must carry filters only; ordering and preloads are
// applied here so the count query stays plain.
func Query[T any](base *gorm.DB, raw, order string, preloads ...string) (*Page[T], error) {
	var count int64
	if err := base.Session(&gorm.Session{}).Model(new(T)).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("count page rows: %w", err)
	}

	numPages := NumPagesFor(count, PerPage)
	number := Resolve(raw, numPages)

	items := make([]T, 0, PerPage)
	q := base.Session(&gorm.Session{}).Order(order)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if count > 0 {
		if err := q.Offset((number - 1) * PerPage).Limit(PerPage).Find(&items).Error; err != nil {
			return nil, fmt.Errorf("load page %d: %w", number, err)
		}
	}

	return &Page[T]{
		Items:    items,
		Number:   number,
		NumPages: numPages,
		Count:    count,
	}, nil
}
