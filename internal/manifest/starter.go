package manifest

// Starter is the manifest written by `traitgen init`.
const Starter = `[package]
name = "example"

# A wrapper over one string value, compared case-insensitively.
[[type]]
name = "Tag"
namespace = "example"
class = "wrapper"
case = "fold"
collapse_absent = true
request = ["equal", "equal-any", "hash", "eq-ops", "string", "ctor", "accessor"]

[[type.member]]
name = "value"
type = "option<string>"

# An aggregate with containers. Ordering is requested but will be withheld:
# sequences have no total order.
[[type]]
name = "Invoice"
namespace = "example"
class = "aggregate"
request = ["equal", "equal-any", "hash", "eq-ops", "compare", "order-ops", "string", "marshal"]

[[type.member]]
name = "id"
type = "string"

[[type.member]]
name = "total"
type = "int"

[[type.member]]
name = "lines"
type = "seq<string>"

[[type.member]]
name = "labels"
type = "set<string>"

# Declared behavior is detected by signature and never regenerated.
[[type.declared]]
name = "String"
results = ["string"]
`
