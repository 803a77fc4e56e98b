package mailer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"

	"github.com/slotwise/bookings/internal/domain"
)

type MailerSendClient struct {
	client  *mailersend.Mailersend
	from    mailersend.From
	enabled bool
}

func NewMailerSend(apiKey, fromName, fromEmail string) *MailerSendClient {
	m := &MailerSendClient{
		enabled: apiKey != "" && fromEmail != "",
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
	}

	if m.enabled {
		m.client = mailersend.NewMailersend(apiKey)
	}

	return m
}

func (m *MailerSendClient) SendBookingConfirmation(booking *domain.Booking) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}

	when := booking.StartsAt.Format("Monday, January 2, 2006 at 3:04 PM")
	subject := "Your booking is confirmed"
	html := fmt.Sprintf(`
		<h2>Booking Confirmed</h2>
		<p>Hi %s,</p>
		<p>Your appointment is booked for <strong>%s</strong>.</p>
		<p>You can review or cancel it with booking reference <strong>#%d</strong> and your manage token.</p>
	`, booking.RequesterName, when, booking.ID)

	text := fmt.Sprintf("Hi %s,\n\nYour appointment is booked for %s.\nBooking reference: #%d",
		booking.RequesterName, when, booking.ID)

	return m.sendEmail(booking.RequesterEmail, booking.RequesterName, subject, text, html)
}

func (m *MailerSendClient) SendBookingCanceled(toEmail string, bookingID int64) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}

	subject := "Your booking was canceled"
	text := fmt.Sprintf("Booking #%d has been canceled.", bookingID)
	html := fmt.Sprintf("<p>Booking <strong>#%d</strong> has been canceled.</p>", bookingID)

	return m.sendEmail(toEmail, "", subject, text, html)
}

func (m *MailerSendClient) sendEmail(toEmail, toName, subject, text, html string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Name: toName, Email: toEmail}})
	msg.SetSubject(subject)

	if strings.TrimSpace(text) != "" {
		msg.SetText(text)
	}
	if strings.TrimSpace(html) != "" {
		msg.SetHTML(html)
	}

	_, err := m.client.Email.Send(ctx, msg)
	return err
}
