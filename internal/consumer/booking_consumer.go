package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"eventdesk/internal/service"
	"eventdesk/pkg/mailer"
)

// BookingConsumer turns booking.created messages into confirmation emails.
type BookingConsumer struct {
	mail mailer.Mailer
}

func NewBookingConsumer(mail mailer.Mailer) *BookingConsumer {
	return &BookingConsumer{mail: mail}
}

// Start drains the delivery channel in a goroutine until it closes.
func (bc *BookingConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			bc.handleMessage(msg)
		}
		log.Println("[BookingConsumer] channel closed, stopping consumer")
	}()
}

func (bc *BookingConsumer) handleMessage(msg amqp.Delivery) {
	var m service.BookingCreatedMessage
	if err := json.Unmarshal(msg.Body, &m); err != nil {
		log.Printf("[BookingConsumer] failed to unmarshal: %v", err)
		msg.Nack(false, false) // malformed, do not requeue
		return
	}

	subject := fmt.Sprintf("Booking confirmed: %s", m.EventTitle)
	text := fmt.Sprintf(
		"Your booking for %s on %s at %s is confirmed.\nReference: %s\n",
		m.EventTitle, m.EventDate, m.EventTime, m.Reference,
	)

	if err := bc.mail.Send(context.Background(), m.Email, subject, "", text); err != nil {
		log.Printf("[BookingConsumer] failed to send confirmation for %s: %v", m.Reference, err)
		msg.Nack(false, true) // transient, requeue
		return
	}

	log.Printf("[BookingConsumer] confirmation sent for booking %s", m.Reference)
	msg.Ack(false)
}
