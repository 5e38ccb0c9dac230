// Code generated by counterfeiter. Hand-authored in the same shape so the
// real generator would reproduce it verbatim; see log.Logger.
package mocks

import (
	"sync"

	"github.com/gitwire-go/gitwire/log"
)

type FakeLogger struct {
	DebugStub        func(string, ...any)
	debugMutex       sync.RWMutex
	debugArgsForCall []struct {
		msg           string
		keysAndValues []any
	}

	InfoStub        func(string, ...any)
	infoMutex       sync.RWMutex
	infoArgsForCall []struct {
		msg           string
		keysAndValues []any
	}

	WarnStub        func(string, ...any)
	warnMutex       sync.RWMutex
	warnArgsForCall []struct {
		msg           string
		keysAndValues []any
	}

	ErrorStub        func(string, ...any)
	errorMutex       sync.RWMutex
	errorArgsForCall []struct {
		msg           string
		keysAndValues []any
	}
}

var _ log.Logger = &FakeLogger{}

func (f *FakeLogger) Debug(msg string, keysAndValues ...any) {
	f.debugMutex.Lock()
	f.debugArgsForCall = append(f.debugArgsForCall, struct {
		msg           string
		keysAndValues []any
	}{msg, keysAndValues})
	stub := f.DebugStub
	f.debugMutex.Unlock()
	if stub != nil {
		stub(msg, keysAndValues...)
	}
}

func (f *FakeLogger) DebugCallCount() int {
	f.debugMutex.RLock()
	defer f.debugMutex.RUnlock()
	return len(f.debugArgsForCall)
}

func (f *FakeLogger) Info(msg string, keysAndValues ...any) {
	f.infoMutex.Lock()
	f.infoArgsForCall = append(f.infoArgsForCall, struct {
		msg           string
		keysAndValues []any
	}{msg, keysAndValues})
	stub := f.InfoStub
	f.infoMutex.Unlock()
	if stub != nil {
		stub(msg, keysAndValues...)
	}
}

func (f *FakeLogger) InfoCallCount() int {
	f.infoMutex.RLock()
	defer f.infoMutex.RUnlock()
	return len(f.infoArgsForCall)
}

func (f *FakeLogger) Warn(msg string, keysAndValues ...any) {
	f.warnMutex.Lock()
	f.warnArgsForCall = append(f.warnArgsForCall, struct {
		msg           string
		keysAndValues []any
	}{msg, keysAndValues})
	stub := f.WarnStub
	f.warnMutex.Unlock()
	if stub != nil {
		stub(msg, keysAndValues...)
	}
}

func (f *FakeLogger) WarnCallCount() int {
	f.warnMutex.RLock()
	defer f.warnMutex.RUnlock()
	return len(f.warnArgsForCall)
}

func (f *FakeLogger) Error(msg string, keysAndValues ...any) {
	f.errorMutex.Lock()
	f.errorArgsForCall = append(f.errorArgsForCall, struct {
		msg           string
		keysAndValues []any
	}{msg, keysAndValues})
	stub := f.ErrorStub
	f.errorMutex.Unlock()
	if stub != nil {
		stub(msg, keysAndValues...)
	}
}

func (f *FakeLogger) ErrorCallCount() int {
	f.errorMutex.RLock()
	defer f.errorMutex.RUnlock()
	return len(f.errorArgsForCall)
}
