// Code generated by counterfeiter. Hand-authored in the same shape so the
// real generator would reproduce it verbatim; see fetchplan.FetchHeadWriter.
package fakes

import (
	"context"
	"sync"

	"github.com/gitwire-go/gitwire/fetchplan"
)

type FakeFetchHeadWriter struct {
	WriteStub        func(context.Context, []fetchplan.FetchHeadRecord) error
	writeMutex       sync.RWMutex
	writeArgsForCall []struct {
		ctx     context.Context
		records []fetchplan.FetchHeadRecord
	}
	writeReturns struct{ result1 error }
}

var _ fetchplan.FetchHeadWriter = &FakeFetchHeadWriter{}

func (f *FakeFetchHeadWriter) Write(ctx context.Context, records []fetchplan.FetchHeadRecord) error {
	f.writeMutex.Lock()
	f.writeArgsForCall = append(f.writeArgsForCall, struct {
		ctx     context.Context
		records []fetchplan.FetchHeadRecord
	}{ctx, records})
	stub := f.WriteStub
	returns := f.writeReturns
	f.writeMutex.Unlock()
	if stub != nil {
		return stub(ctx, records)
	}
	return returns.result1
}

func (f *FakeFetchHeadWriter) WriteCallCount() int {
	f.writeMutex.RLock()
	defer f.writeMutex.RUnlock()
	return len(f.writeArgsForCall)
}

func (f *FakeFetchHeadWriter) WriteArgsForCall(i int) (context.Context, []fetchplan.FetchHeadRecord) {
	f.writeMutex.RLock()
	defer f.writeMutex.RUnlock()
	a := f.writeArgsForCall[i]
	return a.ctx, a.records
}

func (f *FakeFetchHeadWriter) WriteReturns(result1 error) {
	f.writeMutex.Lock()
	defer f.writeMutex.Unlock()
	f.WriteStub = nil
	f.writeReturns = struct{ result1 error }{result1}
}
