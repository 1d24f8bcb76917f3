package model

import (
	"time"

	storemodel "sharvari-site/internal/store/domain/model"
)

// Collection holds one document per submitted contact form.
const Collection = "messages"

// Field names of a message document.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldMobile  = "mobile"
	FieldMessage = "message"
)

// Submission is the public contact form.
type Submission struct {
	Name    string `json:"name" form:"name" validate:"required"`
	Email   string `json:"email" form:"email" validate:"required,siteemail"`
	Mobile  string `json:"mobile" form:"mobile" validate:"required,mobile10"`
	Message string `json:"message" form:"message" validate:"required"`
}

// Fields returns the document written for s.
func (s Submission) Fields() storemodel.Fields {
	return storemodel.Fields{
		FieldName:    s.Name,
		FieldEmail:   s.Email,
		FieldMobile:  s.Mobile,
		FieldMessage: s.Message,
	}
}

// Message is a stored submission as listed in the dashboard.
type Message struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Mobile    string     `json:"mobile,omitempty"`
	Message   string     `json:"message"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// FromDocument reads a stored message. Missing fields stay empty.
func FromDocument(doc *storemodel.Document) Message {
	m := Message{
		ID:      doc.ID,
		Name:    doc.Fields.String(FieldName),
		Email:   doc.Fields.String(FieldEmail),
		Mobile:  doc.Fields.String(FieldMobile),
		Message: doc.Fields.String(FieldMessage),
	}
	if t, ok := doc.Fields.Time(storemodel.FieldCreatedAt); ok {
		m.CreatedAt = &t
	}
	return m
}
