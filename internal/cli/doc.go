// Package cli implements the addrscope command-line interface.
//
// The CLI is built with cobra and logs through charmbracelet/log. Commands
// share one [CLI] value that loads the TOML configuration lazily, so flags
// like --config and --verbose apply to every command.
//
// # Commands
//
//   - simulate: replay clicks on a view headlessly and write the settled frame
//   - explore: interactive terminal explorer driven by a bubbletea frame clock
//   - serve: HTTP server with one ticking layout per view
//   - render: draw a frame as SVG, PDF, PNG or DOT
//   - categories: market categories from CoinGecko, cached
//   - reveal: export reveal steps or seed them into MongoDB
//   - config, cache, completion: housekeeping
package cli
