// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/gomail.v2"
)

type ApprovalRequestEmail struct {
	ApplicantEmail     string
	ApplicantFirstName string
	ApplicantLastName  string
	SpaceName          string
	Statement          string
	Fee                decimal.Decimal
	ApproveURL         string
	RejectURL          string
}

type DecisionEmail struct {
	ApplicantFirstName string
	SpaceName          string
	Status             string
	Fee                decimal.Decimal
}

type PaymentReceivedEmail struct {
	ApplicantFirstName string
	SpaceName          string
	ExpiresAt          string
}

type IEmailService interface {
	SendApprovalRequest(to string, data ApprovalRequestEmail) error
	SendApplicationDecision(to, cc string, data DecisionEmail) error
	SendPaymentReceived(to, cc string, data PaymentReceivedEmail) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	boardEmail  string
}

func NewEmailService(host string, port int, username, password, senderEmail, boardEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		boardEmail:  boardEmail,
	}
}

func (s *emailService) SendApprovalRequest(to string, data ApprovalRequestEmail) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Space Member Application from %s", data.SpaceName))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>New Space Membership Application</h2>
			<p><strong>%s %s</strong> (%s) has applied on behalf of <strong>%s</strong>.</p>
			<p><strong>Statement:</strong></p>
			<blockquote>%s</blockquote>
			<p><strong>Annual fee:</strong> %s</p>
			<p>
				<a href="%s" style="background-color: #4CAF50; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Approve</a>
				&nbsp;
				<a href="%s" style="background-color: #D9534F; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Reject</a>
			</p>
		</div>
	`, data.ApplicantFirstName, data.ApplicantLastName, data.ApplicantEmail,
		data.SpaceName, data.Statement, data.Fee.StringFixed(2),
		data.ApproveURL, data.RejectURL)

	m.SetBody("text/html", body)

	return s.dialer.DialAndSend(m)
}

func (s *emailService) SendApplicationDecision(to, cc string, data DecisionEmail) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.boardEmail)
	m.SetHeader("To", to)
	if cc != "" {
		m.SetHeader("Cc", cc)
	}
	m.SetHeader("Subject", "Space Federation Membership Application")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Membership Application Update</h2>
			<p>Hi %s,</p>
			<p>The membership application for <strong>%s</strong> has been <strong>%s</strong>.</p>
			<p>Annual fee: %s</p>
		</div>
	`, data.ApplicantFirstName, data.SpaceName, data.Status, data.Fee.StringFixed(2))

	m.SetBody("text/html", body)

	return s.dialer.DialAndSend(m)
}

func (s *emailService) SendPaymentReceived(to, cc string, data PaymentReceivedEmail) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", to)
	if cc != "" {
		m.SetHeader("Cc", cc)
	}
	m.SetHeader("Subject", "Membership Payment Received")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Payment Received</h2>
			<p>Hi %s,</p>
			<p>We have received the membership payment for <strong>%s</strong>.</p>
			<p>The membership is active until <strong>%s</strong>.</p>
		</div>
	`, data.ApplicantFirstName, data.SpaceName, data.ExpiresAt)

	m.SetBody("text/html", body)

	return s.dialer.DialAndSend(m)
}
