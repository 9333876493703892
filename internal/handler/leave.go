package handler

import (
	"fmt"
	"strings"
	"team-tracker/internal/models"
	"team-tracker/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	stepLeavePerson    = "leave_person"
	stepLeaveType      = "leave_type"
	stepLeaveStart     = "leave_start"
	stepLeaveEnd       = "leave_end"
	stepLeaveReason    = "leave_reason"
	stepLeaveJustified = "leave_justified"
	stepLeaveEdit      = "leave_edit"
)

func (h *Handler) listLeaves(message *tgbotapi.Message, personID string) {
	var leaves []models.Leave
	if personID != "" {
		leaves = h.ledger.ListByPerson(personID)
	} else {
		leaves = h.ledger.List()
	}
	h.send(message.Chat.ID, formatLeaves(leaves))
}

func (h *Handler) showLeave(message *tgbotapi.Message, id string) {
	chatID := message.Chat.ID
	if id == "" {
		h.send(chatID, "⚠️ الاستخدام: /leave المعرف")
		return
	}

	leave, err := h.ledger.Get(id)
	if err != nil {
		h.reportError(chatID, err)
		return
	}
	h.send(chatID, formatLeave(*leave))
}

func (h *Handler) startLeaveCreation(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	people := h.roster.List(service.ListOptions{SortBy: service.SortByName})
	if len(people) == 0 {
		h.send(chatID, "📭 لا يوجد أفراد. أضف فرداً أولاً بالأمر /addperson")
		return
	}

	h.dialogs[chatID] = &dialog{step: stepLeavePerson}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(people)+1)
	for _, person := range people {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(person.Name, cbLeavePerson+":"+person.ID),
		))
	}
	rows = append(rows, cancelButton())

	h.sendWithKeyboard(chatID, "🗓 تسجيل إجازة أو غياب\n\n👤 اختر الفرد:", tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (h *Handler) handleLeaveCallback(chatID int64, action, arg string) {
	d, exists := h.dialogs[chatID]
	if !exists {
		return
	}

	switch {
	case action == cbLeavePerson && d.step == stepLeavePerson:
		d.leave.PersonID = arg
		d.step = stepLeaveType
		h.sendWithKeyboard(chatID, "📌 اختر النوع:", tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(service.LeaveTypeLabel(models.LeaveTypeLeave), cbLeaveType+":"+string(models.LeaveTypeLeave)),
				tgbotapi.NewInlineKeyboardButtonData(service.LeaveTypeLabel(models.LeaveTypeAbsence), cbLeaveType+":"+string(models.LeaveTypeAbsence)),
			),
			cancelButton(),
		))

	case action == cbLeaveType && d.step == stepLeaveType:
		d.leave.Type = models.LeaveType(arg)
		d.step = stepLeaveStart
		h.send(chatID, "📅 أرسل تاريخ البداية أو \"-\" لليوم:")

	case action == cbLeaveJustified && d.step == stepLeaveJustified:
		d.leave.Justified = arg == "yes"
		delete(h.dialogs, chatID)
		h.createLeave(chatID, d.leave)
	}
}

func (h *Handler) handleLeaveDialog(message *tgbotapi.Message, d *dialog) {
	chatID := message.Chat.ID
	text := strings.TrimSpace(message.Text)
	today := h.store.Engine.Today()

	switch d.step {
	case stepLeavePerson, stepLeaveType, stepLeaveJustified:
		h.send(chatID, "👆 اختر من الأزرار أعلاه.")

	case stepLeaveStart:
		start, err := parseDate(text, today)
		if err != nil {
			h.send(chatID, "⚠️ "+err.Error())
			return
		}
		d.leave.StartDate = start
		d.step = stepLeaveEnd
		h.send(chatID, "📅 أرسل تاريخ النهاية أو \"-\" لليوم:")

	case stepLeaveEnd:
		end, err := parseDate(text, today)
		if err != nil {
			h.send(chatID, "⚠️ "+err.Error())
			return
		}
		if end.Before(d.leave.StartDate) {
			h.send(chatID, "⚠️ تاريخ النهاية قبل تاريخ البداية. أرسل تاريخ النهاية:")
			return
		}
		d.leave.EndDate = end
		d.step = stepLeaveReason
		h.send(chatID, "📝 أرسل السبب أو \"-\" للتخطي:")

	case stepLeaveReason:
		d.leave.Reason = skipValue(text)
		if d.leave.Type == models.LeaveTypeLeave {
			delete(h.dialogs, chatID)
			h.createLeave(chatID, d.leave)
			return
		}
		d.step = stepLeaveJustified
		h.sendWithKeyboard(chatID, "⚖️ هل الغياب مبرر؟", tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("✅ نعم", cbLeaveJustified+":yes"),
				tgbotapi.NewInlineKeyboardButtonData("❌ لا", cbLeaveJustified+":no"),
			),
		))

	case stepLeaveEdit:
		h.applyLeaveEdit(chatID, d, text)
	}
}

func (h *Handler) createLeave(chatID int64, input service.LeaveInput) {
	leave, err := h.ledger.Create(input)
	if err != nil {
		h.reportError(chatID, err)
		return
	}
	h.send(chatID, "✅ تم التسجيل.\n\n"+formatLeave(*leave))
}

func (h *Handler) startLeaveUpdate(message *tgbotapi.Message, id string) {
	chatID := message.Chat.ID
	if id == "" {
		h.send(chatID, "⚠️ الاستخدام: /editleave المعرف")
		return
	}

	leave, err := h.ledger.Get(id)
	if err != nil {
		h.reportError(chatID, err)
		return
	}

	h.dialogs[chatID] = &dialog{
		step:     stepLeaveEdit,
		targetID: leave.ID,
		leave: service.LeaveInput{
			PersonID:  leave.PersonID,
			Type:      leave.Type,
			StartDate: leave.StartDate,
			EndDate:   leave.EndDate,
			Reason:    leave.Reason,
			Justified: leave.Justified,
		},
	}

	h.send(chatID, fmt.Sprintf(`✏️ تعديل سجل %s

أرسل الحقول المراد تغييرها، كل حقل في سطر:
الفرد: معرف الفرد
النوع: إجازة | غياب
من: YYYY-MM-DD
إلى: YYYY-MM-DD
السبب: ...
مبرر: نعم | لا`, leave.PersonName))
}

func (h *Handler) applyLeaveEdit(chatID int64, d *dialog, text string) {
	fields, unknown := parseFieldLines(text)
	if len(unknown) > 0 {
		h.send(chatID, "⚠️ حقول غير معروفة: "+strings.Join(unknown, "، "))
		return
	}

	today := h.store.Engine.Today()
	input := d.leave
	for key, value := range fields {
		switch key {
		case "person":
			input.PersonID = value
		case "reason":
			input.Reason = skipValue(value)
		case "type":
			leaveType, ok := parseLeaveType(value)
			if !ok {
				h.send(chatID, "⚠️ نوع غير معروف: "+value)
				return
			}
			input.Type = leaveType
		case "justified":
			justified, ok := parseYesNo(value)
			if !ok {
				h.send(chatID, "⚠️ أجب بنعم أو لا: "+value)
				return
			}
			input.Justified = justified
		case "from", "to":
			date, err := parseDate(value, today)
			if err != nil {
				h.send(chatID, "⚠️ "+err.Error())
				return
			}
			if key == "from" {
				input.StartDate = date
			} else {
				input.EndDate = date
			}
		}
	}

	if input.EndDate.Before(input.StartDate) {
		h.send(chatID, "⚠️ تاريخ النهاية قبل تاريخ البداية.")
		return
	}

	delete(h.dialogs, chatID)

	leave, err := h.ledger.Update(d.targetID, input)
	if err != nil {
		h.reportError(chatID, err)
		return
	}
	h.send(chatID, "✅ تم التعديل.\n\n"+formatLeave(*leave))
}

func (h *Handler) deleteLeave(message *tgbotapi.Message, id string) {
	chatID := message.Chat.ID
	if id == "" {
		h.send(chatID, "⚠️ الاستخدام: /deleteleave المعرف")
		return
	}

	leave, err := h.ledger.Get(id)
	if err != nil {
		h.reportError(chatID, err)
		return
	}

	h.sendWithKeyboard(chatID,
		fmt.Sprintf("⚠️ حذف سجل %s (%s)؟", leave.PersonName, service.LeaveTypeLabel(leave.Type)),
		confirmKeyboard(cbDeleteLeave, leave.ID))
}

func (h *Handler) confirmDeleteLeave(chatID int64, id string) {
	if err := h.ledger.Delete(id); err != nil {
		h.reportError(chatID, err)
		return
	}
	h.send(chatID, "🗑 تم حذف السجل.")
}
