// Package mocks provides centralized mock implementations for testing.
//
// Instead of defining inline mocks in individual test files, these
// standardized implementations are shared across test packages. Each
// mock exposes one function field per interface method; when the field
// is nil a simple in-memory default runs instead.
//
// Usage:
//
//	import "github.com/speakoai/speako-api/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    mockScorer := &mocks.MockScorer{
//	        ScoreFn: func(ctx context.Context, answer string) (*scoring.Result, error) {
//	            return nil, scoring.ErrUnavailable
//	        },
//	    }
//
//	    // Use the mock in your test...
//	}
//
// The store mocks return themselves from WithTx, so service code that
// runs inside a unit of work operates on the same in-memory state.
package mocks
