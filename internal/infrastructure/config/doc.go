// Package config provides 12-factor configuration management for the launcher.
//
// Configuration is loaded from environment variables with sensible defaults.
// An optional TOML file can be layered on top with LoadFile.
//
// Configuration Sections:
//   - Launcher: shared store root
//   - Java: memory sizing, runtime path and extra runtime flags
//   - Window: game window size
//   - Logging: Log level and output format
//   - Status: optional status server address
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Store at %s\n", cfg.BaseDir())
//
// Environment Variables:
//   - LAUNCHER_BASE_DIR
//   - JAVA_MIN_MEMORY, JAVA_MAX_MEMORY, JAVA_PERMGEN, JAVA_PATH, JAVA_ARGS
//   - WINDOW_WIDTH, WINDOW_HEIGHT
//   - LOG_LEVEL, LOG_DEV
//   - STATUS_ADDR
package config
