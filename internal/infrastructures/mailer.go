package infrastructures

import (
	"github.com/go-gomail/gomail"
)

func NewMailDialer() *gomail.Dialer {
	smtp := Config.SMTPConfig
	return gomail.NewDialer(smtp.Host, smtp.Port, smtp.Username, smtp.Password)
}
