package models

import (
	"github.com/bookstore/backend/internal/domain/party"
)

// CustomerModel is the persistence model for the Customer domain entity.
type CustomerModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(200)"`
	Email       string `gorm:"type:varchar(200);not null;uniqueIndex:idx_customer_email"`
	PhoneNumber string `gorm:"type:varchar(32);not null"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customer"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *party.Customer {
	return &party.Customer{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Email:       m.Email,
		PhoneNumber: m.PhoneNumber,
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *party.Customer) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.Email = c.Email
	m.PhoneNumber = c.PhoneNumber
}

// CustomerModelFromDomain creates a new persistence model from domain Customer.
func CustomerModelFromDomain(c *party.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}
