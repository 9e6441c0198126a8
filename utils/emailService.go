package utils

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"
)

// Mailer delivers HTML mail. It is constructed once in main and passed into
// the components that need it so tests can swap in a fake.
type Mailer interface {
	Send(to []string, subject, htmlBody string) error
}

// SMTPMailer sends mail through a plain-auth SMTP relay.
type SMTPMailer struct {
	Host     string
	Port     string
	Sender   string
	Password string
}

func NewSMTPMailer(host, port, sender, password string) *SMTPMailer {
	return &SMTPMailer{Host: host, Port: port, Sender: sender, Password: password}
}

func (m *SMTPMailer) Send(to []string, subject, htmlBody string) error {
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: KannadaMatch <%s>\r\n", m.Sender)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", m.Sender, m.Password, m.Host)

	err := smtp.SendMail(m.Host+":"+m.Port, auth, m.Sender, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// SendOTPEmail mails a verification code valid for 10 minutes.
func SendOTPEmail(m Mailer, otp, email string) error {
	subject := "KannadaMatch OTP Verification"
	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px; box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);">
					<h2 style="color: #333333; text-align: center;">KannadaMatch OTP Verification</h2>
					<p style="font-size: 16px; color: #555555; text-align: center;">Your One Time Password (OTP) is:</p>
					<h1 style="text-align: center; color: #4CAF50; font-size: 40px; margin: 20px 0;">%s</h1>
					<p style="font-size: 14px; color: #999999; text-align: center;">It is valid for 10 minutes. Do not share this OTP with anyone.</p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">Thank you for using KannadaMatch.</p>
				</div>
			</body>
		</html>
	`, otp)

	return m.Send([]string{email}, subject, body)
}

// SendSubscriptionExpiryReminder mails a renewal nudge before the current
// subscription period lapses.
func SendSubscriptionExpiryReminder(m Mailer, email, name, plan string, expiresAt *time.Time) {
	expiryStr := "soon"
	if expiresAt != nil {
		expiryStr = expiresAt.Format("January 2, 2006")
	}

	subject := "Your KannadaMatch Subscription is Expiring Soon!"
	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
				<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
					<h2 style="color: #2563eb;">Subscription Expiring Soon</h2>
					<p>Dear %s,</p>
					<p>Your <strong>%s</strong> subscription is expiring on <strong>%s</strong>.</p>
					<p>To keep full access to matches and messaging, please renew before it expires.</p>
					<p style="font-size: 12px; color: #666;">This is an automated reminder from KannadaMatch.</p>
				</div>
			</body>
		</html>
	`, name, plan, expiryStr)

	if err := m.Send([]string{email}, subject, body); err != nil {
		fmt.Println("Error sending expiry reminder:", err)
	}
}
