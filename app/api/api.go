package api

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wuzfei/cfgstruct/cfgstruct"
	"golang.org/x/sync/errgroup"

	"taskhub/app/global"
	"taskhub/app/internal/validate"
	"taskhub/app/workflow"
)

type Server struct {
	config *global.Config
	engine *workflow.Engine
	server http.Server
}

func NewServer(conf *global.Config, engine *workflow.Engine) *Server {
	return &Server{
		config: conf,
		engine: engine,
	}
}

func (s *Server) Run(ctx context.Context) error {
	if cfgstruct.DefaultsType() == cfgstruct.DefaultsRelease {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.Default()
	if err := validate.RegisterValidation(); err != nil {
		return err
	}
	ApiRoutes(engine, s)
	s.server.Handler = engine

	listener, err := net.Listen("tcp", s.config.Api.Address)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	var group errgroup.Group
	group.Go(func() error {
		<-ctx.Done()
		return s.server.Shutdown(context.Background())
	})
	group.Go(func() error {
		defer cancel()
		_err := s.server.Serve(listener)
		if errors.Is(_err, http.ErrServerClosed) {
			_err = nil
		}
		return _err
	})
	return group.Wait()
}
