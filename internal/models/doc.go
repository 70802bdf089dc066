// Package models defines the row types exchanged between the data gateway
// and the site client, together with the query description used to select
// them.
package models
