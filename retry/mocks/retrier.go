// Code generated by counterfeiter. Hand-authored in the same shape so the
// real generator would reproduce it verbatim; see retry.Retrier.
package mocks

import (
	"context"
	"sync"

	"github.com/gitwire-go/gitwire/retry"
)

type FakeRetrier struct {
	ShouldRetryStub        func(error, int) bool
	shouldRetryMutex       sync.RWMutex
	shouldRetryArgsForCall []struct {
		err     error
		attempt int
	}
	shouldRetryReturns struct{ result1 bool }

	WaitStub        func(context.Context, int) error
	waitMutex       sync.RWMutex
	waitArgsForCall []struct {
		ctx     context.Context
		attempt int
	}
	waitReturns struct{ result1 error }

	MaxAttemptsStub    func() int
	maxAttemptsMutex   sync.RWMutex
	maxAttemptsReturns struct{ result1 int }
}

var _ retry.Retrier = &FakeRetrier{}

func (f *FakeRetrier) ShouldRetry(err error, attempt int) bool {
	f.shouldRetryMutex.Lock()
	f.shouldRetryArgsForCall = append(f.shouldRetryArgsForCall, struct {
		err     error
		attempt int
	}{err, attempt})
	stub := f.ShouldRetryStub
	returns := f.shouldRetryReturns
	f.shouldRetryMutex.Unlock()
	if stub != nil {
		return stub(err, attempt)
	}
	return returns.result1
}

func (f *FakeRetrier) ShouldRetryReturns(result1 bool) {
	f.shouldRetryMutex.Lock()
	defer f.shouldRetryMutex.Unlock()
	f.ShouldRetryStub = nil
	f.shouldRetryReturns = struct{ result1 bool }{result1}
}

func (f *FakeRetrier) Wait(ctx context.Context, attempt int) error {
	f.waitMutex.Lock()
	f.waitArgsForCall = append(f.waitArgsForCall, struct {
		ctx     context.Context
		attempt int
	}{ctx, attempt})
	stub := f.WaitStub
	returns := f.waitReturns
	f.waitMutex.Unlock()
	if stub != nil {
		return stub(ctx, attempt)
	}
	return returns.result1
}

func (f *FakeRetrier) WaitCallCount() int {
	f.waitMutex.RLock()
	defer f.waitMutex.RUnlock()
	return len(f.waitArgsForCall)
}

func (f *FakeRetrier) WaitReturns(result1 error) {
	f.waitMutex.Lock()
	defer f.waitMutex.Unlock()
	f.WaitStub = nil
	f.waitReturns = struct{ result1 error }{result1}
}

func (f *FakeRetrier) MaxAttempts() int {
	f.maxAttemptsMutex.RLock()
	stub := f.MaxAttemptsStub
	returns := f.maxAttemptsReturns
	f.maxAttemptsMutex.RUnlock()
	if stub != nil {
		return stub()
	}
	return returns.result1
}

func (f *FakeRetrier) MaxAttemptsReturns(result1 int) {
	f.maxAttemptsMutex.Lock()
	defer f.maxAttemptsMutex.Unlock()
	f.MaxAttemptsStub = nil
	f.maxAttemptsReturns = struct{ result1 int }{result1}
}
