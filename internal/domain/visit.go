package domain

import (
	"strings"
	"time"
)

// Contact контактные данные для формы и записи
type Contact struct {
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
	Email *string `json:"email,omitempty"`
}

// ContactHint необязательные значения контакта (параметры ссылки или поля формы)
type ContactHint struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
}

// Visit серверное состояние одного открытия страницы
type Visit struct {
	ID        string      `json:"id"`
	CreatedAt time.Time   `json:"createdAt"`
	ExpiresAt time.Time   `json:"expiresAt"`
	IPAddress *string     `json:"ipAddress,omitempty"`
	Identity  *Identity   `json:"identity,omitempty"`
	Query     ContactHint `json:"query"`
	Snapshot  Snapshot    `json:"snapshot"`
}

func (v *Visit) IsExpired(now time.Time) bool {
	return !now.Before(v.ExpiresAt)
}

// UserID берётся только из найденной личности
func (v *Visit) UserID() *string {
	if v.Identity == nil {
		return nil
	}
	return v.Identity.UserID
}

// Prefill контакт для предзаполнения формы: параметр ссылки, затем личность по IP, затем значение по умолчанию
func (v *Visit) Prefill(guestName string) Contact {
	var idName, idPhone, idEmail *string
	if v.Identity != nil {
		idName, idPhone, idEmail = v.Identity.Name, v.Identity.Phone, v.Identity.Email
	}

	c := Contact{
		Name:  firstNonEmpty(v.Query.Name, idName),
		Phone: firstNonEmpty(v.Query.Phone, idPhone),
	}
	if c.Name == "" {
		c.Name = guestName
	}
	if email := firstNonEmpty(v.Query.Email, idEmail); email != "" {
		c.Email = &email
	}
	return c
}

// ResolveContact контакт записи: поле формы имеет приоритет над предзаполнением
func (v *Visit) ResolveContact(form ContactHint, guestName string) Contact {
	c := v.Prefill(guestName)
	if s := firstNonEmpty(form.Name); s != "" {
		c.Name = s
	}
	if s := firstNonEmpty(form.Phone); s != "" {
		c.Phone = s
	}
	if s := firstNonEmpty(form.Email); s != "" {
		c.Email = &s
	}
	return c
}

func firstNonEmpty(values ...*string) string {
	for _, v := range values {
		if v == nil {
			continue
		}
		if s := strings.TrimSpace(*v); s != "" {
			return s
		}
	}
	return ""
}
