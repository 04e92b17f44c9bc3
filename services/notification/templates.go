package notification

import (
	"fmt"

	"velour/models"
)

func bookingEmail(b models.Booking) EmailMessage {
	msg := b.Message
	if msg == "" {
		msg = "No message provided"
	}
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Thank you for booking the <strong>%s</strong> service with us.</p>
		<p>Here are your booking details:</p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Employee:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time Slot:</strong> %s</li>
			<li><strong>Number of People:</strong> %d</li>
			<li><strong>Message:</strong> %s</li>
		</ul>
		<p>If you have any questions, feel free to contact us!</p>`,
		b.CustomerName, b.Service.Name, b.Service.Name, b.Employee.Name,
		b.Date, b.TimeSlot, b.NumberOfPeople, msg)

	return EmailMessage{
		To:      b.CustomerEmail,
		Subject: fmt.Sprintf("Booking Confirmation for %s", b.Service.Name),
		HTML:    body,
	}
}

func classBookingEmail(cb models.ClassBooking) EmailMessage {
	msg := cb.Message
	if msg == "" {
		msg = "No message provided"
	}
	body := fmt.Sprintf(`
		<p>Dear %s %s,</p>
		<p>Thank you for booking the <strong>%s</strong> course.</p>
		<ul>
			<li><strong>Course:</strong> %s</li>
			<li><strong>Price:</strong> KES %.2f</li>
			<li><strong>Message:</strong> %s</li>
		</ul>
		<p>We will contact you shortly with additional details.</p>`,
		cb.Customer.FirstName, cb.Customer.LastName, cb.Course.Name,
		cb.Course.Name, cb.Course.Price, msg)

	return EmailMessage{
		To:      cb.Customer.Email,
		Subject: fmt.Sprintf("Booking Confirmation for %s", cb.Course.Name),
		HTML:    body,
	}
}

func paymentEmail(att models.PaymentAttempt, email string) EmailMessage {
	body := fmt.Sprintf(`
		<p>Dear Customer,</p>
		<p>Your payment of <strong>KES %.2f</strong> was received successfully.</p>
		<ul>
			<li><strong>Receipt:</strong> %s</li>
			<li><strong>Reference:</strong> %s</li>
		</ul>
		<p>Thank you for choosing our services.</p>`,
		att.Amount, att.MpesaReceipt, att.AccountReference)

	return EmailMessage{
		To:      email,
		Subject: "Payment Confirmation",
		HTML:    body,
	}
}
