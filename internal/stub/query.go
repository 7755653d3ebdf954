package stub

import (
	"sort"
	"strconv"
	"strings"

	"github.com/noah-isme/printshop-console/internal/models"
)

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

// matcher reports whether a record satisfies one filter value.
type matcher[T any] func(record T, value string) bool

// comparator orders two records ascending.
type comparator[T any] func(a, b T) bool

// listQuery is the parsed listing request.
type listQuery struct {
	page    models.PageRequest
	sort    *models.SortSpec
	filters map[string]string
}

func parseListQuery(params map[string][]string) listQuery {
	q := listQuery{page: models.PageRequest{PageSize: defaultPageSize}, filters: map[string]string{}}
	for key, values := range params {
		if len(values) == 0 {
			continue
		}
		value := strings.TrimSpace(values[0])
		switch key {
		case models.QueryParamPage:
			if n, err := strconv.Atoi(value); err == nil && n >= 0 {
				q.page.PageIndex = n
			}
		case models.QueryParamSize:
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				if n > maxPageSize {
					n = maxPageSize
				}
				q.page.PageSize = n
			}
		case models.QueryParamSort:
			q.sort = models.ParseSort(value)
		default:
			if value != "" {
				q.filters[key] = value
			}
		}
	}
	return q
}

// apply filters, sorts and slices rows. Unknown filters and sort fields are
// ignored.
func apply[T any](rows []T, q listQuery, matchers map[string]matcher[T], comparators map[string]comparator[T]) *models.Page[T] {
	filtered := make([]T, 0, len(rows))
	for _, r := range rows {
		keep := true
		for name, value := range q.filters {
			if m, ok := matchers[name]; ok && !m(r, value) {
				keep = false
				break
			}
		}
		if keep {
			filtered = append(filtered, r)
		}
	}

	if q.sort != nil {
		if less, ok := comparators[q.sort.Field]; ok {
			desc := q.sort.Direction == models.SortDesc
			sort.SliceStable(filtered, func(i, j int) bool {
				if desc {
					return less(filtered[j], filtered[i])
				}
				return less(filtered[i], filtered[j])
			})
		}
	}

	size := q.page.PageSize
	total := len(filtered)
	totalPages := (total + size - 1) / size
	from := total
	if q.page.PageIndex < totalPages {
		from = q.page.PageIndex * size
	}
	to := from + size
	if to > total {
		to = total
	}
	return &models.Page[T]{
		Items:      filtered[from:to],
		PageIndex:  q.page.PageIndex,
		PageSize:   size,
		TotalItems: total,
		TotalPages: totalPages,
	}
}

func containsFold(have, want string) bool {
	return strings.Contains(strings.ToLower(have), strings.ToLower(want))
}

func numberEquals(have float64, want string) bool {
	n, err := strconv.ParseFloat(want, 64)
	return err == nil && n == have
}
