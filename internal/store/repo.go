package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a lookup by ID matches nothing.
var ErrNotFound = errors.New("not found")

// QueryOpts configures queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates token usage for one purpose or model.
type LLMUsage struct {
	Key          string // purpose or model, depending on the query
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns one event, or ErrNotFound.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates usage grouped by purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates usage grouped by model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}

// WorksheetParams mirrors the generator configuration a worksheet was built
// from. It is stored as JSON.
type WorksheetParams struct {
	Min            int      `json:"min"`
	Max            int      `json:"max"`
	Count          int      `json:"count"`
	Operations     []string `json:"operations"`
	NumOperations  int      `json:"num_operations"`
	UseParentheses bool     `json:"use_parentheses"`
}

// Worksheet is a generated problem list kept for later export.
type Worksheet struct {
	ID        string
	Sequence  int64
	CreatedAt time.Time
	Params    WorksheetParams
	Problems  []string
	Model     string
}

// WorksheetRepo stores generated worksheets.
type WorksheetRepo interface {
	// SaveWorksheet assigns a sequence number and persists ws. ID and
	// CreatedAt must be set by the caller.
	SaveWorksheet(ctx context.Context, ws *Worksheet) error

	// GetWorksheet returns the worksheet with the given ID, or ErrNotFound.
	GetWorksheet(ctx context.Context, id string) (*Worksheet, error)

	// ListWorksheets returns worksheets newest first.
	ListWorksheets(ctx context.Context, opts QueryOpts) ([]Worksheet, error)

	// PruneWorksheets deletes all but the keep most recent worksheets and
	// returns how many were removed.
	PruneWorksheets(ctx context.Context, keep int) (int, error)
}
