package scan

import (
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Zilvh/Vesta-Sries/internal/errors"
)

// Default timing and concurrency values. The connect timeout is
// deliberately short so that large port sets stay tractable; the banner
// timeout is longer because a port that accepted a connection deserves
// more time to respond.
const (
	DefaultConnectTimeout = 500 * time.Millisecond
	DefaultBannerTimeout  = 2 * time.Second
	DefaultConcurrency    = 100

	minPort = 1
	maxPort = 65535
)

// Sentinel banner values. BannerDisabled marks results from scans that
// ran without banner capture; BannerEmpty marks capture attempts that
// yielded nothing or failed.
const (
	BannerDisabled = "Not captured"
	BannerEmpty    = "No banner"
)

// StatusOpen is the only status a PortResult can carry. Closed and
// filtered ports are never materialized.
const StatusOpen = "Open"

var validate = validator.New()

// Target describes one scan invocation. It is constructed once and
// never mutated; probes only ever read it.
type Target struct {
	// Host is a hostname or literal IP address.
	Host string `validate:"required"`
	// Ports is the candidate port set. Duplicates are tolerated and
	// removed at the coordinator boundary.
	Ports []int `validate:"required,min=1,dive,min=1,max=65535"`
	// Concurrency bounds the number of in-flight probes.
	Concurrency int `validate:"min=1"`
	// WithBanner enables banner capture on open ports.
	WithBanner bool
	// ConnectTimeout bounds a single connect attempt.
	ConnectTimeout time.Duration
	// BannerTimeout bounds a single banner read.
	BannerTimeout time.Duration
}

// NewTarget builds a Target with default concurrency and timeouts.
func NewTarget(host string, ports []int) Target {
	return Target{
		Host:           host,
		Ports:          ports,
		Concurrency:    DefaultConcurrency,
		ConnectTimeout: DefaultConnectTimeout,
		BannerTimeout:  DefaultBannerTimeout,
	}
}

// Validate checks the target before any probe is dispatched. The CLI
// validates user input upstream; this re-check is defensive and is the
// only failure mode the coordinator has. The common failure shapes get
// specific errors; the struct tags are the catch-all behind them.
func (t *Target) Validate() error {
	if t.Host == "" {
		return errors.ErrInvalidTarget(t.Host)
	}
	if len(t.Ports) == 0 {
		return errors.ErrEmptyPortSet(t.Host)
	}
	for _, p := range t.Ports {
		if p < minPort || p > maxPort {
			return errors.ErrPortOutOfRange(p)
		}
	}
	if err := validate.Struct(t); err != nil {
		return errors.WrapScanError(errors.CodeValidation, "invalid scan target", err)
	}
	return nil
}

// withDefaults fills zero-valued tuning fields so callers can construct
// a Target literal without repeating the defaults.
func (t Target) withDefaults() Target {
	if t.Concurrency == 0 {
		t.Concurrency = DefaultConcurrency
	}
	if t.ConnectTimeout == 0 {
		t.ConnectTimeout = DefaultConnectTimeout
	}
	if t.BannerTimeout == 0 {
		t.BannerTimeout = DefaultBannerTimeout
	}
	return t
}

// dedupedPorts returns the port set with duplicates removed, first
// occurrence winning, dispatch order preserved.
func (t *Target) dedupedPorts() []int {
	seen := make(map[int]struct{}, len(t.Ports))
	ports := make([]int, 0, len(t.Ports))
	for _, p := range t.Ports {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		ports = append(ports, p)
	}
	return ports
}

// PortResult records one port that answered open. Results are immutable
// once created; ownership passes to the session's result collection.
type PortResult struct {
	Port    int    `json:"port"`
	Service string `json:"service"`
	Status  string `json:"status"`
	Banner  string `json:"banner"`
}

// Session is the sealed record of one scan invocation. After Complete
// it is read-only and safe to hand to any result sink.
type Session struct {
	ID        uuid.UUID
	Host      string
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	// Results is sorted strictly ascending by port and contains no
	// duplicate port numbers.
	Results []PortResult
}

// NewSession starts a session for the given host with the current time
// as start time.
func NewSession(host string) *Session {
	return &Session{
		ID:        uuid.New(),
		Host:      host,
		StartTime: time.Now(),
		Results:   make([]PortResult, 0),
	}
}

// Complete seals the session: results are sorted into canonical
// ascending-port order and timing is finalized.
func (s *Session) Complete() {
	sort.Slice(s.Results, func(i, j int) bool {
		return s.Results[i].Port < s.Results[j].Port
	})
	s.EndTime = time.Now()
	s.Duration = s.EndTime.Sub(s.StartTime)
}
