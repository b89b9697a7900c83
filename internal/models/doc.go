// Package models defines the core domain models for gastobot.
//
// The models mirror what the store persists:
//   - Member: a chat user who records expenses
//   - Group: a chat where expenses are shared
//   - Expense: one recorded expense, always denominated in the base currency
//   - Tag: a label for expenses, unique per (name, group)
//   - ExchangeRate: a dated conversion rate into the base currency
//
// Money values use shopspring decimals end to end; floats would drift when
// amounts are summed and converted.
package models
