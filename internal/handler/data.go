package handler

import (
	"fmt"
	"strings"
	"team-tracker/internal/models"
	"team-tracker/internal/service"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

func (h *Handler) showDashboard(message *tgbotapi.Message) {
	h.send(message.Chat.ID, formatSummary(h.dashboard.Summary()))
}

func (h *Handler) exportData(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	data, err := h.backup.Export()
	if err != nil {
		h.reportError(chatID, err)
		return
	}
	h.sendDocument(chatID, service.ExportFileName(time.Now()), data, "💾 نسخة احتياطية")
}

func (h *Handler) importDocument(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	doc := message.Document

	if !strings.HasSuffix(strings.ToLower(doc.FileName), ".json") {
		h.send(chatID, "⚠️ أرسل ملف JSON مصدّراً من /export.")
		return
	}

	data, err := h.client.Download(doc.FileID)
	if err != nil {
		logrus.WithError(err).WithField("file", doc.FileName).Error("Failed to download import file")
		h.send(chatID, "❌ تعذر تنزيل الملف.")
		return
	}

	result, err := h.backup.Import(data)
	if err != nil {
		if models.IsParse(err) {
			h.send(chatID, "❌ الملف غير صالح، لم يتغير شيء.")
			return
		}
		h.reportError(chatID, err)
		return
	}

	h.send(chatID, formatImportResult(result))
}

func formatImportResult(result service.ImportResult) string {
	if !result.PersonnelReplaced && !result.LeavesReplaced {
		return "ℹ️ لا يحتوي الملف على بيانات، لم يتغير شيء."
	}

	var b strings.Builder
	b.WriteString("✅ تم الاستيراد.\n")
	if result.PersonnelReplaced {
		b.WriteString(fmt.Sprintf("👥 الأفراد: %d\n", result.Personnel))
	}
	if result.LeavesReplaced {
		b.WriteString(fmt.Sprintf("🗓 السجلات: %d\n", result.Leaves))
	}
	return b.String()
}

func (h *Handler) exportXLSX(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	buf, filename, err := h.reports.ExportXLSX()
	if err != nil {
		h.reportError(chatID, err)
		return
	}
	h.sendDocument(chatID, filename, buf.Bytes(), "📊 تقرير الأفراد والسجل")
}

func (h *Handler) exportICS(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	data, filename, err := h.reports.ExportICS()
	if err != nil {
		h.reportError(chatID, err)
		return
	}
	h.sendDocument(chatID, filename, data, "📅 تقويم الإجازات")
}

func (h *Handler) runSweep(message *tgbotapi.Message) {
	changed := h.store.Sweep()
	if len(changed) == 0 {
		h.send(message.Chat.ID, "✅ لا توجد إجازات منتهية.")
		return
	}
	h.send(message.Chat.ID, fmt.Sprintf("✅ عاد %d من الأفراد إلى الخدمة.", len(changed)))
}

func (h *Handler) clearData(message *tgbotapi.Message) {
	h.sendWithKeyboard(message.Chat.ID,
		"⚠️ سيتم حذف كل الأفراد وكل السجلات. هل أنت متأكد؟",
		confirmKeyboard(cbClearFirst, ""))
}

func (h *Handler) askClearAgain(chatID int64) {
	h.sendWithKeyboard(chatID,
		"‼️ تأكيد أخير: لا يمكن التراجع عن المسح. صدّر نسخة بالأمر /export قبل المتابعة.",
		confirmKeyboard(cbClearFinal, ""))
}

func (h *Handler) confirmClear(chatID int64) {
	h.backup.Clear()
	h.send(chatID, "🧹 تم مسح كل البيانات.")
}
