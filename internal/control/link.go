package control

import (
	"sync"

	"github.com/zjrosen/opdeck/internal/log"
)

// Link is the single-slot binding between one consumer and at most one
// producer. It is write-only: there is no way to ask which producer is bound.
type Link struct {
	mu       sync.Mutex
	consumer Consumer
	bound    Producer
}

// NewLink creates a link for consumer with no producer bound.
func NewLink(consumer Consumer) *Link {
	return &Link{consumer: consumer}
}

// Bind replaces the current producer. The old producer is detached before
// p is attached; a nil p leaves the consumer without a source. Bind does not
// check whether p is connected.
func (l *Link) Bind(p Producer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.bound != nil {
		log.Debug(log.CatLink, "Detaching producer", "producer", l.bound.Name())
		l.consumer.SetControlSource(nil)
		l.bound = nil
	}
	if p == nil {
		log.Info(log.CatLink, "Control source cleared")
		return
	}
	l.consumer.SetControlSource(p)
	l.bound = p
	log.Info(log.CatLink, "Control source bound", "producer", p.Name())
}
