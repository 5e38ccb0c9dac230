// Code generated by counterfeiter. Hand-authored in the same shape so the
// real generator would reproduce it verbatim; see fetchplan.PackNegotiator.
package fakes

import (
	"context"
	"sync"

	"github.com/gitwire-go/gitwire/fetchplan"
	"github.com/gitwire-go/gitwire/protocol/hash"
)

type FakePackNegotiator struct {
	NegotiateStub        func(context.Context, []hash.Hash, []hash.Hash) (bool, error)
	negotiateMutex       sync.RWMutex
	negotiateArgsForCall []struct {
		ctx   context.Context
		wants []hash.Hash
		haves []hash.Hash
	}
	negotiateReturns struct {
		result1 bool
		result2 error
	}
}

var _ fetchplan.PackNegotiator = &FakePackNegotiator{}

func (f *FakePackNegotiator) Negotiate(ctx context.Context, wants []hash.Hash, haves []hash.Hash) (bool, error) {
	f.negotiateMutex.Lock()
	f.negotiateArgsForCall = append(f.negotiateArgsForCall, struct {
		ctx   context.Context
		wants []hash.Hash
		haves []hash.Hash
	}{ctx, wants, haves})
	stub := f.NegotiateStub
	returns := f.negotiateReturns
	f.negotiateMutex.Unlock()
	if stub != nil {
		return stub(ctx, wants, haves)
	}
	return returns.result1, returns.result2
}

func (f *FakePackNegotiator) NegotiateCallCount() int {
	f.negotiateMutex.RLock()
	defer f.negotiateMutex.RUnlock()
	return len(f.negotiateArgsForCall)
}

func (f *FakePackNegotiator) NegotiateArgsForCall(i int) (context.Context, []hash.Hash, []hash.Hash) {
	f.negotiateMutex.RLock()
	defer f.negotiateMutex.RUnlock()
	a := f.negotiateArgsForCall[i]
	return a.ctx, a.wants, a.haves
}

func (f *FakePackNegotiator) NegotiateReturns(result1 bool, result2 error) {
	f.negotiateMutex.Lock()
	defer f.negotiateMutex.Unlock()
	f.NegotiateStub = nil
	f.negotiateReturns = struct {
		result1 bool
		result2 error
	}{result1, result2}
}
