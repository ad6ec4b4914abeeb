package service

import (
	"fmt"
	"strings"

	"signal_bot/internal/history"
	"signal_bot/internal/models"
)

func formatDecision(dec models.Decision) string {
	return fmt.Sprintf(
		"📢 *Сигнал!*\n"+
			"Пара: `%s`\n"+
			"Направление: *%s*\n"+
			"Уверенность: `%.2f%%`\n"+
			"Время: `%s`",
		dec.Pair,
		dec.Direction,
		dec.Confidence*100,
		dec.Time.Format("2006-01-02 15:04:05"),
	)
}

func formatHistory(entries []history.Entry) string {
	if len(entries) == 0 {
		return "📭 Сигналов пока не было."
	}
	var b strings.Builder
	b.WriteString("📜 Последние сигналы:\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "- %s | %s %s | %.2f%%\n",
			e.Decision.Time.Format("02.01 15:04"),
			e.Decision.Pair,
			e.Decision.Direction,
			e.Decision.Confidence*100,
		)
	}
	return b.String()
}
