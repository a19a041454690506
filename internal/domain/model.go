package domain

import "time"

// Core domain models. The JSON names are the ones the GRAD+ frontend and the
// `companies` collection already use, so records round-trip unchanged.

// Unknown marks a non-critical field that no extraction strategy could fill.
const Unknown = "-"

// Company is one best-effort record about a Croatian legal entity. It is
// built once per lookup and never mutated afterwards.
type Company struct {
	Name           string          `json:"name"`
	FullName       string          `json:"fullName"`
	NationalID     string          `json:"oib"`
	RegistryNumber string          `json:"mbs"`
	Address        string          `json:"address"`
	Founded        string          `json:"founded"`
	Status         string          `json:"status"`
	Activity       string          `json:"activity"`
	Size           string          `json:"size"`
	Rating         string          `json:"rating"`
	Blocked        bool            `json:"blocked"`
	Phone          string          `json:"phone"`
	Phones         []string        `json:"phones"`
	Email          string          `json:"email"`
	Website        string          `json:"website"`
	Owner          string          `json:"owner"`
	Directors      []string        `json:"directors"`
	Financials     []FinancialYear `json:"financials"`
	Description    string          `json:"description"`
	BankAccounts   []BankAccount   `json:"bankAccounts"`
	RealEstate     string          `json:"realEstate"`
	TaxDebt        string          `json:"taxDebt"`
	Source         string          `json:"source,omitempty"`
	RetrievedAt    time.Time       `json:"retrievedAt"`
}

// FinancialYear is one column of the yearly financial summary.
type FinancialYear struct {
	Year          int     `json:"year"`
	Income        float64 `json:"income"`
	Expenses      float64 `json:"expenses"`
	Profit        float64 `json:"profit"`
	EmployeeCount int     `json:"employeeCount"`
}

// Empty reports whether every numeric field is zero.
func (f FinancialYear) Empty() bool {
	return f.Income == 0 && f.Expenses == 0 && f.Profit == 0 && f.EmployeeCount == 0
}

type BankAccount struct {
	IBAN       string `json:"iban"`
	OpenedDate string `json:"openedDate"`
	BankName   string `json:"bankName"`
	Status     string `json:"status"`
}

// Lookup job states.
const (
	JobQueued    = "queued"
	JobRunning   = "running"
	JobCompleted = "completed"
	JobFailed    = "failed"
)

// LookupJob is an asynchronous company lookup.
type LookupJob struct {
	ID       string
	Term     string
	Status   string // queued|running|completed|failed
	OIB      string
	Reason   string
	Attempts int
}
