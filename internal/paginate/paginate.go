// Package paginate splits result slices into fixed-size pages.
package paginate

import "iter"

// Page is one page of results. The last page of a split may be shorter than
// the page size.
type Page[T any] []T

// Split cuts items into pages of at most pageSize elements. The pages share
// backing storage with items. A non-positive pageSize yields no pages.
func Split[T any](items []T, pageSize int) []Page[T] {
	if pageSize <= 0 || len(items) == 0 {
		return nil
	}
	pages := make([]Page[T], 0, (len(items)+pageSize-1)/pageSize)
	for start := 0; start < len(items); start += pageSize {
		end := min(start+pageSize, len(items))
		pages = append(pages, Page[T](items[start:end:end]))
	}
	return pages
}

// Iter yields the pages of items lazily without building the page slice.
func Iter[T any](items []T, pageSize int) iter.Seq[Page[T]] {
	return func(yield func(Page[T]) bool) {
		if pageSize <= 0 {
			return
		}
		for start := 0; start < len(items); start += pageSize {
			end := min(start+pageSize, len(items))
			if !yield(Page[T](items[start:end:end])) {
				return
			}
		}
	}
}
