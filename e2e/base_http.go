package e2e

import (
	"context"
	"fmt"
	"hive-signal/client"
	"time"

	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"
)

type BaseHTTPSuite struct {
	suite.Suite
	Config Config
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseHTTPSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.ServerAddr == "" {
		s.T().Skip("SERVER_ADDR is not set")
	}
}

// NewClient returns a client with an empty cookie jar, a fresh visitor.
func (s *BaseHTTPSuite) NewClient() *client.Client {
	c, err := client.New(s.Config.ServerAddr, 30*time.Second)
	s.Require().NoError(err)
	return c
}

// Step prints a header then runs fn with a bounded context.
func (s *BaseHTTPSuite) Step(name string, fn func(ctx context.Context)) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	fn(ctx)
}
