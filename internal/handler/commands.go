package handler

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback data prefixes. Arguments follow a colon.
const (
	cbLeavePerson    = "lp"
	cbLeaveType      = "lt"
	cbLeaveJustified = "lj"
	cbDeletePerson   = "dp"
	cbDeleteLeave    = "dl"
	cbClearFirst     = "c1"
	cbClearFinal     = "c2"
	cbCancel         = "x"
)

func (h *Handler) handleCommand(message *tgbotapi.Message) {
	command := message.Command()
	args := strings.TrimSpace(message.CommandArguments())

	switch command {
	case "start", "help":
		h.sendHelpMessage(message)
	case "dashboard":
		h.showDashboard(message)

	// Roster
	case "people":
		h.listPeople(message, args)
	case "person":
		h.showPerson(message, args)
	case "addperson":
		h.startPersonCreation(message)
	case "editperson":
		h.startPersonUpdate(message, args)
	case "archive":
		h.archivePerson(message, args)
	case "restore":
		h.restorePerson(message, args)
	case "archived":
		h.listArchived(message)
	case "deleteperson":
		h.deletePerson(message, args)

	// Ledger
	case "leaves":
		h.listLeaves(message, args)
	case "leave":
		h.showLeave(message, args)
	case "addleave":
		h.startLeaveCreation(message)
	case "editleave":
		h.startLeaveUpdate(message, args)
	case "deleteleave":
		h.deleteLeave(message, args)

	// Data
	case "export":
		h.exportData(message)
	case "xlsx":
		h.exportXLSX(message)
	case "ics":
		h.exportICS(message)
	case "clear":
		h.clearData(message)
	case "sweep":
		h.runSweep(message)

	default:
		h.sendUnknownCommand(message)
	}
}

func (h *Handler) sendUnknownCommand(message *tgbotapi.Message) {
	h.send(message.Chat.ID, "❌ أمر غير معروف. استخدم /help لعرض الأوامر.")
}

func (h *Handler) sendHelpMessage(message *tgbotapi.Message) {
	text := `📋 الأوامر المتاحة:

📊 المتابعة:
/dashboard - ملخص الحالات وآخر النشاطات

👥 الأفراد:
/people [بحث] [status=active|on-leave|absent|inactive] [sort=name|date]
/person المعرف - تفاصيل فرد وسجله
/addperson - إضافة فرد
/editperson المعرف - تعديل فرد
/archive المعرف - أرشفة فرد
/restore المعرف - استعادة فرد مؤرشف
/archived - الأفراد المؤرشفون
/deleteperson المعرف - حذف فرد نهائياً

🗓 الإجازات والغيابات:
/leaves [معرف الفرد] - السجل
/leave المعرف - تفاصيل سجل
/addleave - تسجيل إجازة أو غياب
/editleave المعرف - تعديل سجل
/deleteleave المعرف - حذف سجل

💾 البيانات:
/export - تصدير نسخة JSON
أرسل ملف JSON لاستيراده
/xlsx - تقرير Excel
/ics - تقويم الإجازات
/sweep - إنهاء الإجازات المنتهية الآن
/clear - مسح كل البيانات

📅 التواريخ: YYYY-MM-DD أو DD.MM.YYYY أو DD.MM، و"-" تعني اليوم.`

	h.send(message.Chat.ID, text)
}

func cancelButton() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("❌ إلغاء", cbCancel),
	)
}

func confirmKeyboard(action, arg string) tgbotapi.InlineKeyboardMarkup {
	data := action
	if arg != "" {
		data += ":" + arg
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ نعم", data),
			tgbotapi.NewInlineKeyboardButtonData("❌ لا", cbCancel),
		),
	)
}
