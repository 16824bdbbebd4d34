package seed

import (
	"fmt"
	"io"
	"strings"
)

var rule = strings.Repeat("=", 60)

// Console prints human-readable progress lines. It is not meant to be
// parsed.
type Console struct {
	w io.Writer
}

// NewConsole returns a Console writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Start prints the banner.
func (c *Console) Start() {
	fmt.Fprintln(c.w, "🚀 Импорт тестовых мест интереса...")
	fmt.Fprintln(c.w, rule)
}

// Connected confirms the database connection.
func (c *Console) Connected() {
	fmt.Fprintln(c.w, "✅ Подключено к базе данных")
}

// Outcome implements Reporter.
func (c *Console) Outcome(o Outcome) {
	switch o.Status {
	case StatusInserted:
		fmt.Fprintf(c.w, "✅ Добавлено: %s\n", o.Name)
	case StatusSkipped:
		fmt.Fprintf(c.w, "⏭️  Пропущено (уже существует): %s\n", o.Name)
	case StatusFailed:
		fmt.Fprintf(c.w, "❌ Ошибка при добавлении '%s': %v\n", o.Name, o.Err)
	}
}

// Summary prints the final tally.
func (c *Console) Summary(r Result) {
	fmt.Fprintln(c.w, rule)
	fmt.Fprintln(c.w, "✅ Импорт завершен!")
	fmt.Fprintf(c.w, "   Добавлено: %d\n", r.Inserted)
	fmt.Fprintf(c.w, "   Пропущено: %d\n", r.Skipped)
	if r.Failed > 0 {
		fmt.Fprintf(c.w, "   Ошибок: %d\n", r.Failed)
	}
	fmt.Fprintf(c.w, "   Всего POI: %d\n", r.Total())
}

// Fatal prints a run-aborting error.
func (c *Console) Fatal(err error) {
	fmt.Fprintf(c.w, "❌ Ошибка: %v\n", err)
}
