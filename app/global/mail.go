package global

import "taskhub/app/pkg/mail"

var Mailer mail.Sender

func initMail(conf *mail.Config) (err error) {
	Mailer = mail.NewSender(conf, Log)
	return
}
