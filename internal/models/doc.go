// Package models defines the core domain records for Stride.
//
// # Records
//
// Every record is owned by exactly one User:
//   - User: account and display preferences (currency, language, theme)
//   - Wallet: one per user, starting balance plus savings and budget goals
//   - Transaction: a debit (expense) or credit (income) against the wallet
//   - HealthProfile: one per user, nutrition and activity goals
//   - Exercise: a logged workout
//   - Todo: a task, optionally recurrent or with a deadline
//   - CalendarEvent: a dated event, optionally recurrent
//
// # Conventions
//
//  1. Relationships use ID strings, never pointers.
//  2. Money is decimal.Decimal; amounts are never negative, direction comes from the
//     transaction type.
//  3. Timestamps are time.Time and persisted as UTC unix seconds.
//  4. Partial updates use *Patch structs whose nil fields are left untouched.
package models
