// Code generated by counterfeiter. Hand-authored in the same shape so the
// real generator would reproduce it verbatim; see fetchplan.LocalRefStore.
package fakes

import (
	"context"
	"sync"

	"github.com/gitwire-go/gitwire/fetchplan"
	"github.com/gitwire-go/gitwire/protocol/hash"
)

type FakeLocalRefStore struct {
	GetStub        func(string) (hash.Hash, bool)
	getMutex       sync.RWMutex
	getArgsForCall []struct{ name string }
	getReturns     struct {
		result1 hash.Hash
		result2 bool
	}

	HasStub        func(hash.Hash) bool
	hasMutex       sync.RWMutex
	hasArgsForCall []struct{ obj hash.Hash }
	hasReturns     struct{ result1 bool }

	NamesStub    func() []string
	namesMutex   sync.RWMutex
	namesReturns struct{ result1 []string }

	ApplyBatchStub        func(context.Context, []fetchplan.ReceiveCommand, bool) ([]fetchplan.CommandResult, error)
	applyBatchMutex       sync.RWMutex
	applyBatchArgsForCall []struct {
		ctx    context.Context
		cmds   []fetchplan.ReceiveCommand
		dryRun bool
	}
	applyBatchReturns struct {
		result1 []fetchplan.CommandResult
		result2 error
	}
}

var _ fetchplan.LocalRefStore = &FakeLocalRefStore{}

func (f *FakeLocalRefStore) Get(name string) (hash.Hash, bool) {
	f.getMutex.Lock()
	f.getArgsForCall = append(f.getArgsForCall, struct{ name string }{name})
	stub := f.GetStub
	returns := f.getReturns
	f.getMutex.Unlock()
	if stub != nil {
		return stub(name)
	}
	return returns.result1, returns.result2
}

func (f *FakeLocalRefStore) GetReturns(result1 hash.Hash, result2 bool) {
	f.getMutex.Lock()
	defer f.getMutex.Unlock()
	f.GetStub = nil
	f.getReturns = struct {
		result1 hash.Hash
		result2 bool
	}{result1, result2}
}

func (f *FakeLocalRefStore) Has(obj hash.Hash) bool {
	f.hasMutex.Lock()
	f.hasArgsForCall = append(f.hasArgsForCall, struct{ obj hash.Hash }{obj})
	stub := f.HasStub
	returns := f.hasReturns
	f.hasMutex.Unlock()
	if stub != nil {
		return stub(obj)
	}
	return returns.result1
}

func (f *FakeLocalRefStore) HasReturns(result1 bool) {
	f.hasMutex.Lock()
	defer f.hasMutex.Unlock()
	f.HasStub = nil
	f.hasReturns = struct{ result1 bool }{result1}
}

func (f *FakeLocalRefStore) Names() []string {
	f.namesMutex.RLock()
	stub := f.NamesStub
	returns := f.namesReturns
	f.namesMutex.RUnlock()
	if stub != nil {
		return stub()
	}
	return returns.result1
}

func (f *FakeLocalRefStore) NamesReturns(result1 []string) {
	f.namesMutex.Lock()
	defer f.namesMutex.Unlock()
	f.NamesStub = nil
	f.namesReturns = struct{ result1 []string }{result1}
}

func (f *FakeLocalRefStore) ApplyBatch(ctx context.Context, cmds []fetchplan.ReceiveCommand, dryRun bool) ([]fetchplan.CommandResult, error) {
	f.applyBatchMutex.Lock()
	f.applyBatchArgsForCall = append(f.applyBatchArgsForCall, struct {
		ctx    context.Context
		cmds   []fetchplan.ReceiveCommand
		dryRun bool
	}{ctx, cmds, dryRun})
	stub := f.ApplyBatchStub
	returns := f.applyBatchReturns
	f.applyBatchMutex.Unlock()
	if stub != nil {
		return stub(ctx, cmds, dryRun)
	}
	return returns.result1, returns.result2
}

func (f *FakeLocalRefStore) ApplyBatchCallCount() int {
	f.applyBatchMutex.RLock()
	defer f.applyBatchMutex.RUnlock()
	return len(f.applyBatchArgsForCall)
}

func (f *FakeLocalRefStore) ApplyBatchReturns(result1 []fetchplan.CommandResult, result2 error) {
	f.applyBatchMutex.Lock()
	defer f.applyBatchMutex.Unlock()
	f.ApplyBatchStub = nil
	f.applyBatchReturns = struct {
		result1 []fetchplan.CommandResult
		result2 error
	}{result1, result2}
}
