// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"sync"
	"testing"
	"time"

	"github.com/taibuivan/taskboard/internal/auth"
	"github.com/taibuivan/taskboard/internal/platform/sec"
)

const (
	testAccessSecret  = "access-secret-for-tests"
	testRefreshSecret = "refresh-secret-for-tests"
	testPassword      = "Str0ng!Pass"
)

var cheapHasher = sec.NewArgon2Hasher(sec.Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})

// testClock is a settable clock shared by the codec under test.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (clock *testClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

func (clock *testClock) Advance(d time.Duration) {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.now = clock.now.Add(d)
}

type fixture struct {
	users   *auth.MemoryUserRepository
	issuer  *auth.Issuer
	clock   *testClock
	service *auth.Service
	events  *eventCounter
}

type eventCounter struct {
	mu     sync.Mutex
	counts map[string]int
}

func (counter *eventCounter) RecordAuthEvent(event, outcome string) {
	counter.mu.Lock()
	defer counter.mu.Unlock()
	counter.counts[event+"/"+outcome]++
}

func newFixture(t *testing.T, opts ...auth.ServiceOption) *fixture {
	t.Helper()

	clock := newTestClock()
	codec := sec.NewTokenCodec("taskboard-test", sec.WithClock(clock.Now))
	issuer := auth.NewIssuer(codec, testAccessSecret, testRefreshSecret)
	users := auth.NewMemoryUserRepository()
	events := &eventCounter{counts: map[string]int{}}

	opts = append([]auth.ServiceOption{auth.WithEventRecorder(events)}, opts...)

	return &fixture{
		users:   users,
		issuer:  issuer,
		clock:   clock,
		service: auth.NewService(users, cheapHasher, issuer, opts...),
		events:  events,
	}
}
