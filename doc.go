// Package alerts implements the backend for a community alerts application:
// users register and log in, publish location-tagged alerts, and exchange
// messages with read receipts and emoji reactions on those alerts.
//
// Authentication is stateless. Logging in issues an HMAC-SHA256 signed JWT
// carried in an HttpOnly cookie; a token is valid if and only if its
// signature verifies under the configured key and its expiry has not passed.
// Logging out deletes the cookie, nothing is tracked server side.
//
// Storage is SQLite through Bun; schema changes ship as embedded goose
// migrations under migrations/.
package alerts
