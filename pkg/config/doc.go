// Package config provides configuration management for idrepo.
//
// Configuration is loaded from a YAML file and overlaid by environment
// variables. Each attribute remembers where its value came from (default,
// file or environment) so that "idrepoctl configuration show" can report it.
//
// # Configuration Sources
//
//   - $IDREPO_CONFIG_PATH/idrepo.yml (default /etc/idrepo/idrepo.yml)
//   - IDREPO_* environment variables (take precedence)
//
// # Key Configuration Options
//
//   - IDREPO_IMPLEMENTATION_CACHE_SIZE: Loaded implementations kept in memory
//   - IDREPO_BATCH_REAP_INTERVAL: Seconds between expired batch reaps
//   - IDREPO_LOG_LEVEL: Logging verbosity
//   - IDREPO_SQL_DIALECT: Database dialect override
//   - IDREPO_HTTP_TIMEOUT: Admin server timeout in seconds
//   - DATABASE_URL: Database connection
//
// Watch reloads the file when it changes.
package config
