package sales

import "time"

// Sale is one recorded transaction. Sales are append-only.
type Sale struct {
	ID            int64     `json:"id" db:"id"`
	SaleDate      time.Time `json:"sale_date" db:"sale_date"`
	ProductID     int64     `json:"product_id" db:"product_id"`
	ConsignorID   int64     `json:"consignor_id" db:"consignor_id"`
	Amount        float64   `json:"amount" db:"amount"`
	Commission    float64   `json:"commission" db:"commission"`
	PaymentMethod string    `json:"payment_method" db:"payment_method"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// ReportRow is a sale joined with its product and consignor for commission reporting.
type ReportRow struct {
	ID            int64     `json:"id"`
	SaleDate      time.Time `json:"saleDate"`
	ProductName   string    `json:"productName"`
	ConsignorName string    `json:"consignorName"`
	Amount        float64   `json:"amount"`
	Commission    float64   `json:"commission"`
	PaymentMethod string    `json:"paymentMethod"`
	ConsignorID   int64     `json:"consignorId"`
}

// DateRange selects which sales a report covers.
type DateRange string

const (
	AllTime   DateRange = "all-time"
	ThisMonth DateRange = "this-month"
	Today     DateRange = "today"
)

// ParseDateRange maps the query value onto a DateRange. Empty or unknown values
// select AllTime.
func ParseDateRange(s string) DateRange {
	switch DateRange(s) {
	case ThisMonth:
		return ThisMonth
	case Today:
		return Today
	default:
		return AllTime
	}
}

// Window is a half-open [From, To) interval on sale_date. A zero Window is unbounded.
type Window struct {
	From time.Time
	To   time.Time
}

// Bounded reports whether the window restricts sale_date at all.
func (w Window) Bounded() bool {
	return !w.From.IsZero() || !w.To.IsZero()
}

// Window resolves the range against now, in now's location.
func (d DateRange) Window(now time.Time) Window {
	y, m, day := now.Date()
	loc := now.Location()
	switch d {
	case ThisMonth:
		start := time.Date(y, m, 1, 0, 0, 0, 0, loc)
		return Window{From: start, To: start.AddDate(0, 1, 0)}
	case Today:
		start := time.Date(y, m, day, 0, 0, 0, 0, loc)
		return Window{From: start, To: start.AddDate(0, 0, 1)}
	default:
		return Window{}
	}
}
