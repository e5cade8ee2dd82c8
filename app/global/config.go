package global

import (
	errs2 "github.com/zeebo/errs"

	"taskhub/app/pkg/db"
	"taskhub/app/pkg/jwt"
	"taskhub/app/pkg/log"
	"taskhub/app/pkg/mail"
	"taskhub/app/workflow"
)

var Cfg *Config

type Config struct {
	Api struct {
		Address string `help:"listen address" devDefault:"0.0.0.0:8989" default:"0.0.0.0:8080"`
	}
	Webhook struct {
		Secret string `help:"shared secret verifying identity provider webhook signatures" default:""`
	}
	Db       db.Config
	JWT      jwt.Config
	Log      log.Config
	Mail     mail.Config
	Workflow workflow.Config
}

func (c *Config) Init() {
	Cfg = c
	errs := errs2.Group{}
	errs.Add(
		initLog(&c.Log),
		initDB(&c.Db),
		initJwt(&c.JWT),
		initMail(&c.Mail),
	)
	if errs.Err() != nil {
		panic(errs.Err())
	}
}
