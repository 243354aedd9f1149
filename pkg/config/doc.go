/*
Package config manages configuration parsing and validation for kklc-sentences.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	    +---------+----+----+---------+
	    |         |         |         |
	+---+---+ +---+---+ +---+---+ +---+---+
	| YAML  | | JSON  | | TOML  | |  HCL  |
	| Parser| | Parser| | Parser| | Parser|
	+-------+ +-------+ +-------+ +-------+

🎯 Purpose:
- Loads the deck, dictionary and run settings from a single file
- Validates values and fills in the KKLC defaults
- Keeps an omitted value distinguishable from an explicit zero where the
  difference matters (delay_ms, range_end)

🔄 Flow:
1. Reads configuration from file
2. Picks a parser by file extension
3. Parses format-specific syntax
4. Validates values and applies defaults

🤝 Interfaces:
- Parser: format-specific parsing, registered at init time

📝 Design Philosophy:
The config package is the source of truth for all configuration. Parsers are
strict about unknown keys so a typo fails the run instead of silently using a
default, and the exclude globs are validated up front for the same reason.
*/
package config
