package i18n

var englishTranslations = map[string]string{
	// Generate
	"generate.saved":        "Presentation saved to: %s",
	"generate.total_slides": "Total slides: %d",
	"generate.extra_file":   "%s saved to: %s",

	// Inspect
	"inspect.header": "%s: %d slides",
	"inspect.slide":  "%2d. %s",

	// History
	"history.empty":  "No generations recorded yet",
	"history.header": "TIME                 FORMAT  SLIDES  SIZE      PATH",
	"history.row":    "%-19s  %-6s  %6d  %8d  %s",

	// Database
	"db.status":      "Schema versions: %s",
	"db.rolled_back": "Rolled back migration %d",

	// Commands
	"cmd.root.short":     "Build the PCQM project overview presentation",
	"cmd.generate.short": "Generate the presentation and optional companion files",
	"cmd.inspect.short":  "List the slide titles of a saved presentation",
	"cmd.history.short":  "Show recently generated files",
	"cmd.version.short":  "Print build information",
	"cmd.db.short":       "Manage the history database schema",
	"cmd.db.status":      "Show applied schema migrations",
	"cmd.db.rollback":    "Roll back one schema migration",
}
