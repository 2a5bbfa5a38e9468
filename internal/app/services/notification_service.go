package services

import (
	"fmt"

	"github.com/go-gomail/gomail"
	"github.com/likehq/giftcards-core/internal/app/models"
	"github.com/likehq/giftcards-core/internal/infrastructures"
	"github.com/sirupsen/logrus"
)

// Notifier delivers best-effort notifications about gift card events. The
// lifecycle service never lets a delivery failure affect its own result; the
// store write is the authoritative event.
type Notifier interface {
	NotifyGiftCardIssued(card *models.GiftCard)
	NotifyRedemptionRequested(card *models.GiftCard)
}

type NotificationService struct {
	dialer *gomail.Dialer
	from   string
}

func NewNotificationService(dialer *gomail.Dialer) *NotificationService {
	return &NotificationService{
		dialer: dialer,
		from:   infrastructures.Config.SMTPConfig.From,
	}
}

func (s *NotificationService) NotifyGiftCardIssued(card *models.GiftCard) {
	to := card.SenderEmail
	if card.RecipientEmail != nil && *card.RecipientEmail != "" {
		to = *card.RecipientEmail
	}

	body := fmt.Sprintf(
		"<p>You received a LIKE gift card worth %s%s.</p><p>Your code: <b>%s</b></p>",
		card.CurrencySymbol, card.Amount.StringFixed(2), card.Code,
	)
	if card.Message != nil && *card.Message != "" {
		body += fmt.Sprintf("<p>%s</p>", *card.Message)
	}

	s.send(to, "Your LIKE gift card", body)
}

func (s *NotificationService) NotifyRedemptionRequested(card *models.GiftCard) {
	if card.RedemptionDetails == nil {
		return
	}

	body := fmt.Sprintf(
		"<p>Your payout request for gift card <b>%s</b> (%s%s) has been received and is being processed via %s.</p>",
		card.Code, card.CurrencySymbol, card.Amount.StringFixed(2), card.RedemptionDetails.WithdrawalMethod,
	)

	s.send(card.RedemptionDetails.Email, "LIKE gift card redemption received", body)
}

func (s *NotificationService) send(to, subject, body string) {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		logrus.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Errorf("failed to send notification email: %v", err)
	}
}
