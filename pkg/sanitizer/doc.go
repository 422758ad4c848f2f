// Package sanitizer normalizes guest-supplied contact data before validation and storage.
//
// All functions are idempotent and never fail: input that cannot be normalized is
// returned trimmed rather than rejected, leaving rejection to the validators.
//
// Normalization includes:
//   - Names: collapse internal whitespace, trim leading/trailing spaces
//   - Emails: trim and lower-case, so uniqueness checks are case-insensitive
//   - Phone numbers: convert to E.164 (+[country][number]) when the number is possible
package sanitizer
