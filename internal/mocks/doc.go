// Package mocks provides centralized mock implementations for testing.
//
// The mocks record every call they receive so tests can assert on the topics
// or prompts that reached them. Behaviour is configured either with canned
// return values or a function field that takes precedence:
//
//	gen := &mocks.MockGenerator{
//	    GenerateFn: func(ctx context.Context, topic string) (generation.Result, error) {
//	        return generation.Result{}, generation.ErrServer
//	    },
//	}
//
// When adding a new mock, name the file after the interface being mocked and
// keep call tracking safe for concurrent use.
package mocks
