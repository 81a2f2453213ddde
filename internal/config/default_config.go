package config

// DefaultConfigTOML is the annotated configuration written by `tuplecheck init`.
const DefaultConfigTOML = `# tuplecheck configuration
# See https://github.com/ludo-technologies/tuplecheck for documentation.

[input]
# Glob patterns for files to analyze (doublestar globs)
include_patterns = ["**/*.py"]
# Glob patterns for files to skip
exclude_patterns = []
# Recursively analyze subdirectories
recursive = true

[output]
# Output format: text, json, yaml, csv
format = "text"
# Sort findings by: location, file
sort_by = "location"

[check]
# Flag double-parenthesized call arguments: f((x))
call_args = true
# Flag parenthesized assignment values: x = (y)
assignments = true
# Flag parenthesized comparison operands: x in ("A")
comparisons = true
# Flag parenthesized comprehension bodies: [(y) for y in xs]
comprehensions = true
`
