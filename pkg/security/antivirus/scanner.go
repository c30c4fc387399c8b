package antivirus

import (
	"context"
	"errors"
)

// ErrNoScanner is reported when a chain has nothing reachable to scan with.
var ErrNoScanner = errors.New("antivirus: no scanner available")

// Verdict is the outcome of scanning one resume.
// A non-nil Err means the scan did not complete and the file must be
// treated as rejected.
type Verdict struct {
	Infected bool
	Threat   string
	Scanner  string
	Err      error
}

// Rejected reports whether the upload must be refused.
func (v Verdict) Rejected() bool {
	return v.Infected || v.Err != nil
}

// Scanner screens uploaded resumes before they are forwarded to the API.
type Scanner interface {
	Scan(ctx context.Context, filename string, data []byte) Verdict
	Name() string
	Available(ctx context.Context) bool
}

// NoOpScanner accepts everything. Used when no clamd address is configured.
type NoOpScanner struct{}

var _ Scanner = NoOpScanner{}

func (NoOpScanner) Scan(context.Context, string, []byte) Verdict {
	return Verdict{Scanner: "noop"}
}

func (NoOpScanner) Name() string { return "noop" }

func (NoOpScanner) Available(context.Context) bool { return true }

// ChainScanner runs every available scanner and stops at the first
// rejection.
type ChainScanner struct {
	scanners []Scanner
}

var _ Scanner = (*ChainScanner)(nil)

func NewChainScanner(scanners ...Scanner) *ChainScanner {
	return &ChainScanner{scanners: scanners}
}

func (c *ChainScanner) Scan(ctx context.Context, filename string, data []byte) Verdict {
	ran := false
	for _, s := range c.scanners {
		if !s.Available(ctx) {
			continue
		}
		ran = true
		if v := s.Scan(ctx, filename, data); v.Rejected() {
			return v
		}
	}
	if !ran {
		return Verdict{Scanner: c.Name(), Err: ErrNoScanner}
	}
	return Verdict{Scanner: c.Name()}
}

func (c *ChainScanner) Name() string { return "chain" }

func (c *ChainScanner) Available(ctx context.Context) bool {
	for _, s := range c.scanners {
		if s.Available(ctx) {
			return true
		}
	}
	return false
}
