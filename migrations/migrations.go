// Package migrations embeds the SQL schema so binaries and tests migrate without a checkout.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
