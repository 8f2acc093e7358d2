package testutils

import (
	"time"

	"github.com/itbasis/go-clock"
)

// TestController holds the fake servers and clock that a controller under test
// talks to.
type TestController struct {
	Clock       *clock.Mock
	FakeAPI     *FakeAPIServer
	fakeSleeper *FakeSleeperServer
}

// The fake clock starts at the start of the 2024 regular season.
var TestStartTime = time.Date(2024, time.September, 5, 20, 0, 0, 0, time.UTC)

func (c *TestController) Close() {
	c.FakeAPI.Close()
	c.fakeSleeper.Close()
}

func (c *TestController) APIURL() string {
	return c.FakeAPI.URL()
}

func (c *TestController) SleeperURL() string {
	return c.fakeSleeper.URL()
}

func NewTestController() *TestController {
	return &TestController{
		Clock:       NewMockClock(),
		FakeAPI:     NewFakeAPIServer(),
		fakeSleeper: NewFakeSleeperServer(),
	}
}

// NewMockClock returns a mock clock set to TestStartTime.
func NewMockClock() *clock.Mock {
	m := clock.NewMock()
	m.Set(TestStartTime)
	return m
}
