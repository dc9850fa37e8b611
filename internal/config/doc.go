// Package config handles configuration loading and merging for tck.
//
// # Configuration Precedence
//
// Configuration values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--format, --theme, --parallel, --strict, --no-color)
//  2. Environment variables (TCK_FORMAT, TCK_THEME, TCK_PARALLEL, TCK_STRICT, TCK_NO_COLOR, NO_COLOR)
//  3. YAML config file (.tck.yaml in local directory or ~/.config/tck/.tck.yaml)
//  4. Hardcoded defaults
//
// A .env file in the working directory is loaded before environment
// variables are read. Variables already present in the process environment
// are not overwritten by it.
//
// # Key Configuration Options
//
//   - Format: auto, terminal, llm or json
//   - Theme: terminal theme name (default, orca, mono)
//   - Parallel: candidates tried concurrently per instantiator (0 or 1 is sequential)
//   - Strict: reject a second instantiator registered under the same label
//   - NoColor: forces the mono theme
//   - List: candidate list, either a built-in name or a file path
//   - Instantiators: strategies to run, in order
package config
