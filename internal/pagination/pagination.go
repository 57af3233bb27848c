package pagination

// PageSize is the number of posts on a listing page. Every listing endpoint
// shares this value.
const PageSize = 10

type Page struct {
	Number     int
	Size       int
	Offset     int
	Total      int
	TotalPages int
}

// New computes the page window for a requested page number. Out-of-range
// requests clamp to the nearest valid page instead of failing.
func New(total, requested int) Page {
	totalPages := (total + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if requested < 1 {
		requested = 1
	}
	if requested > totalPages {
		requested = totalPages
	}
	return Page{
		Number:     requested,
		Size:       PageSize,
		Offset:     (requested - 1) * PageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

func (p Page) HasNext() bool { return p.Number < p.TotalPages }

func (p Page) HasPrev() bool { return p.Number > 1 }

func (p Page) Next() int { return p.Number + 1 }

func (p Page) Prev() int { return p.Number - 1 }
