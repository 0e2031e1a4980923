// Package models holds the GORM row types for the bookstore tables.
//
// Domain entities in internal/domain carry no ORM tags; each model here has
// a FromDomain constructor and a ToDomain method, and repositories only ever
// hand domain values to callers. Table names follow the SQL migrations:
// currency, category, books, customer, transaction and books_transactions.
package models
