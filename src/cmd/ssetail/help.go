// FILE: ssetail/src/cmd/ssetail/help.go
package main

const helpText = `ssetail: follow a device's SSE log stream into a rotated log file.

Usage:
  ssetail [options] <host>

Options:
  -p, --port <port>        Server port (default: 8080)
      --path <path>        Event stream path (default: /log-events)
  -c, --config <path>      Path to configuration file (default: ~/.config/ssetail.toml)
      --save-config <path> Write the effective configuration and exit
      --framing <mode>     Event framing: event (blank-line boundaries), chunk (one per read)
      --console <mode>     Mirror records to the console: auto, on, off
      --log-level <level>  Application log level: debug, info, warn, error
      --log-output <mode>  Application log output: file, stdout, stderr, both, none
  -q, --quiet              Suppress all console output, including errors
  -v, --version            Display version information and exit
  -h, --help               Display this help message and exit

Configuration Sources (Precedence: CLI > Env > File > Defaults):
  SSETAIL_CONFIG_FILE              Config file path
  SSETAIL_CONFIG_DIR               Config directory
  SSETAIL_<SECTION>_<KEY>          Any config key, e.g. SSETAIL_CLIENT_RETRY_DELAY_MS
  SSETAIL_DISABLE_STATUS_REPORTER  Disable periodic status reports (set to 1)

Examples:
  # Follow a device on the default port
  ssetail 192.168.4.1

  # Custom port and path, debug logging
  ssetail -p 9000 --path /events --log-level debug esp32.local
`
