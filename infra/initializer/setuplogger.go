package initializer

import (
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/homebanking/corebank/pkg/config"
)

// SetupLogger builds the process logger and installs it as the slog default.
func SetupLogger(cfg *config.Log) *slog.Logger {
	logger := newLogger(os.Stdout, cfg)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, cfg *config.Log) *slog.Logger {
	if cfg == nil {
		cfg = &config.Log{Format: "text", TimeFormat: "2006-01-02 15:04:05"}
	}
	styles := bankStyles()

	formattersMap := map[string]log.Formatter{
		"json": log.JSONFormatter,
		"text": log.TextFormatter,
	}
	formatter := log.TextFormatter
	if f, ok := formattersMap[cfg.Format]; ok {
		formatter = f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})

	logger.SetStyles(styles)

	return slog.New(logger)
}

var (
	moneyColor    = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	accountColor  = lipgloss.AdaptiveColor{Light: "#1E88E5", Dark: "#64B5F6"}
	clientColor   = lipgloss.AdaptiveColor{Light: "#7E57C2", Dark: "#B39DDB"}
	rejectedColor = lipgloss.AdaptiveColor{Light: "#EE6FF8", Dark: "#EE6FF8"}
	failedColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF6B6B"}
)

// Log attribute keys grouped by what they identify.
var (
	moneyKeys   = []string{"amount", "owed"}
	accountKeys = []string{"origin", "destination", "number", "account"}
	clientKeys  = []string{"email", "id", "product"}
)

// bankStyles colors amounts, account numbers and client identifiers so a
// movement can be followed across lines. Rejections log at Warn, failures at
// Error.
func bankStyles() *log.Styles {
	styles := log.DefaultStyles()
	styles.Levels[log.WarnLevel] = lipgloss.NewStyle().
		SetString("REJECT").
		Bold(true).
		Padding(0, 1).
		Foreground(rejectedColor)
	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().
		SetString("FAIL").
		Bold(true).
		Padding(0, 1).
		Foreground(failedColor)

	keyed := func(keys []string, c lipgloss.AdaptiveColor, bold bool) {
		for _, k := range keys {
			styles.Keys[k] = lipgloss.NewStyle().Foreground(c)
			styles.Values[k] = lipgloss.NewStyle().Bold(bold)
		}
	}
	keyed(moneyKeys, moneyColor, true)
	keyed(accountKeys, accountColor, true)
	keyed(clientKeys, clientColor, false)
	styles.Keys["error"] = lipgloss.NewStyle().Foreground(failedColor)
	styles.Values["error"] = lipgloss.NewStyle().Bold(true)
	return styles
}
