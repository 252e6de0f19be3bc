// AngelaMos | 2026
// embed.go

package migrations

import "embed"

// Dir is the directory within FS that goose reads from.
const Dir = "."

//go:embed *.sql
var FS embed.FS
