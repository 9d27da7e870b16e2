package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TxType = "Income"
	Expense TxType = "Expense"
)

type (
	// TxType distinguishes ledger inflows from outflows. The two values are
	// mutually exclusive; a transaction is always exactly one of them.
	TxType string

	// Period identifies a calendar month. It is the unique key of the
	// historical series and is always normalized to the first day of the
	// month in UTC.
	Period struct {
		time.Time
	}

	// Transaction is a single dated ledger entry. Amounts are non-negative;
	// the direction is carried by the type.
	Transaction struct {
		ID          int64 // database ID, zero until stored
		Date        time.Time
		Type        TxType
		Category    string
		Description string
		Amount      float64
		Account     string
		Paid        bool
	}
)

// DefaultCategories is the suggested vocabulary offered by ledger clients.
// Categories remain free text; this list is advisory only.
var DefaultCategories = []string{
	"Sales", "Services", "Salary", "Investments",
	"Rent", "Marketing", "Payroll", "Infrastructure", "Taxes", "Other",
}

var (
	ErrInvalidPeriod  = errors.New("invalid period")
	ErrInvalidDate    = errors.New("invalid date")
	ErrInvalidType    = errors.New("invalid transaction type")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrEmptyCategory  = errors.New("empty category")
	ErrNegativeMonths = errors.New("months must be at least 1")
	ErrNegativeInput  = errors.New("monetary inputs must be non-negative")
)

// Valid reports whether the type is one of the two known values.
func (t TxType) Valid() bool {
	return t == Income || t == Expense
}

// NewPeriod builds the period key for the given year and month.
func NewPeriod(year, month int) Period {
	return Period{Time: time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)}
}

// PeriodOf returns the period containing the given date.
func PeriodOf(d time.Time) Period {
	return NewPeriod(d.Year(), int(d.Month()))
}

// ParsePeriod accepts "YYYY-MM" or "YYYY/MM" (either separator) and returns
// the normalized period. A full "YYYY-MM-DD" date is tolerated; only the
// month matters.
func ParsePeriod(s string) (Period, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, "/", "-"))
	t, err := time.Parse("2006-01", s)
	if err != nil {
		t, err = time.Parse("2006-01-02", s)
		if err != nil {
			return Period{}, ErrInvalidPeriod
		}
	}
	return NewPeriod(t.Year(), int(t.Month())), nil
}

// String renders the canonical "YYYY-MM" form used in exports and messages.
func (p Period) String() string {
	return p.Format("2006-01")
}

// MarshalJSON renders the period in its canonical "YYYY-MM" wire form.
func (p Period) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// UnmarshalJSON accepts the same forms as ParsePeriod.
func (p *Period) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParsePeriod(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Year returns the calendar year of the period.
func (p Period) Year() int { return p.Time.Year() }

// Month returns the calendar month of the period, 1-12.
func (p Period) Month() int { return int(p.Time.Month()) }

// Before reports whether p precedes other.
func (p Period) Before(other Period) bool {
	return p.Time.Before(other.Time)
}

// Equal reports whether two period keys identify the same month.
func (p Period) Equal(other Period) bool {
	return p.Year() == other.Year() && p.Month() == other.Month()
}

// AddMonths returns the period n months after p.
func (p Period) AddMonths(n int) Period {
	t := p.AddDate(0, n, 0)
	return NewPeriod(t.Year(), int(t.Month()))
}

func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if t.Amount < 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}

// Period returns the ledger period the transaction falls into.
func (t Transaction) Period() Period {
	return PeriodOf(t.Date)
}
