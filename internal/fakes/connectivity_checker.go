// Code generated by counterfeiter. Hand-authored in the same shape so the
// real generator would reproduce it verbatim; see fetchplan.ConnectivityChecker.
package fakes

import (
	"context"
	"sync"

	"github.com/gitwire-go/gitwire/fetchplan"
	"github.com/gitwire-go/gitwire/protocol/hash"
)

type FakeConnectivityChecker struct {
	ReachableStub        func(context.Context, []hash.Hash) (bool, error)
	reachableMutex       sync.RWMutex
	reachableArgsForCall []struct {
		ctx   context.Context
		wants []hash.Hash
	}
	reachableReturns struct {
		result1 bool
		result2 error
	}

	IsAncestorStub        func(context.Context, hash.Hash, hash.Hash) (bool, error)
	isAncestorMutex       sync.RWMutex
	isAncestorArgsForCall []struct {
		ctx      context.Context
		old, new hash.Hash
	}
	isAncestorReturns struct {
		result1 bool
		result2 error
	}
}

var _ fetchplan.ConnectivityChecker = &FakeConnectivityChecker{}

func (f *FakeConnectivityChecker) Reachable(ctx context.Context, wants []hash.Hash) (bool, error) {
	f.reachableMutex.Lock()
	f.reachableArgsForCall = append(f.reachableArgsForCall, struct {
		ctx   context.Context
		wants []hash.Hash
	}{ctx, wants})
	stub := f.ReachableStub
	returns := f.reachableReturns
	f.reachableMutex.Unlock()
	if stub != nil {
		return stub(ctx, wants)
	}
	return returns.result1, returns.result2
}

func (f *FakeConnectivityChecker) ReachableCallCount() int {
	f.reachableMutex.RLock()
	defer f.reachableMutex.RUnlock()
	return len(f.reachableArgsForCall)
}

func (f *FakeConnectivityChecker) ReachableReturns(result1 bool, result2 error) {
	f.reachableMutex.Lock()
	defer f.reachableMutex.Unlock()
	f.ReachableStub = nil
	f.reachableReturns = struct {
		result1 bool
		result2 error
	}{result1, result2}
}

func (f *FakeConnectivityChecker) IsAncestor(ctx context.Context, old, new hash.Hash) (bool, error) {
	f.isAncestorMutex.Lock()
	f.isAncestorArgsForCall = append(f.isAncestorArgsForCall, struct {
		ctx      context.Context
		old, new hash.Hash
	}{ctx, old, new})
	stub := f.IsAncestorStub
	returns := f.isAncestorReturns
	f.isAncestorMutex.Unlock()
	if stub != nil {
		return stub(ctx, old, new)
	}
	return returns.result1, returns.result2
}

func (f *FakeConnectivityChecker) IsAncestorCallCount() int {
	f.isAncestorMutex.RLock()
	defer f.isAncestorMutex.RUnlock()
	return len(f.isAncestorArgsForCall)
}

func (f *FakeConnectivityChecker) IsAncestorReturns(result1 bool, result2 error) {
	f.isAncestorMutex.Lock()
	defer f.isAncestorMutex.Unlock()
	f.IsAncestorStub = nil
	f.isAncestorReturns = struct {
		result1 bool
		result2 error
	}{result1, result2}
}
