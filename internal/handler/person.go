package handler

import (
	"fmt"
	"strings"
	"team-tracker/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	stepPersonName   = "person_name"
	stepPersonTitle  = "person_title"
	stepPersonPhone  = "person_phone"
	stepPersonJoined = "person_joined"
	stepPersonNotes  = "person_notes"
	stepPersonEdit   = "person_edit"
)

// skipValue turns the "-" placeholder into an empty value.
func skipValue(text string) string {
	text = strings.TrimSpace(text)
	if text == "-" {
		return ""
	}
	return text
}

func (h *Handler) listPeople(message *tgbotapi.Message, args string) {
	people := h.roster.List(parseListArgs(args))
	h.send(message.Chat.ID, formatPeople(people))
}

func (h *Handler) listArchived(message *tgbotapi.Message) {
	people := h.roster.Archived()
	if len(people) == 0 {
		h.send(message.Chat.ID, "📭 لا يوجد أفراد مؤرشفون.")
		return
	}
	h.send(message.Chat.ID, "🗄 المؤرشفون:\n\n"+formatPeople(people))
}

func (h *Handler) showPerson(message *tgbotapi.Message, id string) {
	chatID := message.Chat.ID
	if id == "" {
		h.send(chatID, "⚠️ الاستخدام: /person المعرف")
		return
	}

	person, err := h.roster.Get(id)
	if err != nil {
		h.reportError(chatID, err)
		return
	}
	h.send(chatID, formatPerson(*person, h.ledger.ListByPerson(person.ID)))
}

func (h *Handler) startPersonCreation(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	h.dialogs[chatID] = &dialog{step: stepPersonName}

	h.send(chatID, `👤 إضافة فرد

الخطوة 1 من 5:
✏️ أرسل الاسم الكامل:`)
}

func (h *Handler) startPersonUpdate(message *tgbotapi.Message, id string) {
	chatID := message.Chat.ID
	if id == "" {
		h.send(chatID, "⚠️ الاستخدام: /editperson المعرف")
		return
	}

	person, err := h.roster.Get(id)
	if err != nil {
		h.reportError(chatID, err)
		return
	}

	h.dialogs[chatID] = &dialog{
		step:     stepPersonEdit,
		targetID: person.ID,
		person: service.PersonInput{
			Name:     person.Name,
			Title:    person.Title,
			Phone:    person.Phone,
			Status:   person.Status,
			JoinDate: person.JoinDate,
			Notes:    person.Notes,
		},
	}

	h.send(chatID, fmt.Sprintf(`✏️ تعديل %s

أرسل الحقول المراد تغييرها، كل حقل في سطر:
الاسم: ...
الصفة: ...
الهاتف: ...
الحالة: في الخدمة | في إجازة | غياب | خارج الخدمة
تاريخ الانضمام: YYYY-MM-DD
ملاحظات: ...`, person.Name))
}

func (h *Handler) handlePersonDialog(message *tgbotapi.Message, d *dialog) {
	chatID := message.Chat.ID
	text := strings.TrimSpace(message.Text)

	switch d.step {
	case stepPersonName:
		if text == "" {
			h.send(chatID, "⚠️ الاسم مطلوب. أرسل الاسم الكامل:")
			return
		}
		d.person.Name = text
		d.step = stepPersonTitle
		h.send(chatID, "الخطوة 2 من 5:\n✏️ أرسل الصفة أو \"-\" للتخطي:")

	case stepPersonTitle:
		d.person.Title = skipValue(text)
		d.step = stepPersonPhone
		h.send(chatID, "الخطوة 3 من 5:\n📞 أرسل رقم الهاتف أو \"-\" للتخطي:")

	case stepPersonPhone:
		d.person.Phone = skipValue(text)
		d.step = stepPersonJoined
		h.send(chatID, "الخطوة 4 من 5:\n📅 أرسل تاريخ الانضمام أو \"-\" لليوم:")

	case stepPersonJoined:
		joined, err := parseDate(text, h.store.Engine.Today())
		if err != nil {
			h.send(chatID, "⚠️ "+err.Error())
			return
		}
		d.person.JoinDate = joined
		d.step = stepPersonNotes
		h.send(chatID, "الخطوة 5 من 5:\n📝 أرسل ملاحظات أو \"-\" للتخطي:")

	case stepPersonNotes:
		d.person.Notes = skipValue(text)
		delete(h.dialogs, chatID)

		person, err := h.roster.Create(d.person)
		if err != nil {
			h.reportError(chatID, err)
			return
		}
		h.send(chatID, "🎉 تمت الإضافة!\n\n"+formatPerson(*person, nil))

	case stepPersonEdit:
		h.applyPersonEdit(chatID, d, text)
	}
}

func (h *Handler) applyPersonEdit(chatID int64, d *dialog, text string) {
	fields, unknown := parseFieldLines(text)
	if len(unknown) > 0 {
		h.send(chatID, "⚠️ حقول غير معروفة: "+strings.Join(unknown, "، "))
		return
	}

	input := d.person
	for key, value := range fields {
		switch key {
		case "name":
			input.Name = value
		case "title":
			input.Title = skipValue(value)
		case "phone":
			input.Phone = skipValue(value)
		case "notes":
			input.Notes = skipValue(value)
		case "status":
			status, ok := parseStatus(value)
			if !ok {
				h.send(chatID, "⚠️ حالة غير معروفة: "+value)
				return
			}
			input.Status = status
		case "joined":
			joined, err := parseDate(value, h.store.Engine.Today())
			if err != nil {
				h.send(chatID, "⚠️ "+err.Error())
				return
			}
			input.JoinDate = joined
		}
	}

	delete(h.dialogs, chatID)

	person, err := h.roster.Update(d.targetID, input)
	if err != nil {
		h.reportError(chatID, err)
		return
	}
	h.send(chatID, "✅ تم التعديل.\n\n"+formatPerson(*person, nil))
}

func (h *Handler) archivePerson(message *tgbotapi.Message, id string) {
	chatID := message.Chat.ID
	if id == "" {
		h.send(chatID, "⚠️ الاستخدام: /archive المعرف")
		return
	}
	if err := h.roster.Archive(id); err != nil {
		h.reportError(chatID, err)
		return
	}
	h.send(chatID, "🗄 تمت الأرشفة. استخدم /restore "+id+" للاستعادة.")
}

func (h *Handler) restorePerson(message *tgbotapi.Message, id string) {
	chatID := message.Chat.ID
	if id == "" {
		h.send(chatID, "⚠️ الاستخدام: /restore المعرف")
		return
	}
	if err := h.roster.Restore(id); err != nil {
		h.reportError(chatID, err)
		return
	}
	h.send(chatID, "♻️ تمت الاستعادة.")
}

func (h *Handler) deletePerson(message *tgbotapi.Message, id string) {
	chatID := message.Chat.ID
	if id == "" {
		h.send(chatID, "⚠️ الاستخدام: /deleteperson المعرف")
		return
	}

	person, err := h.roster.Get(id)
	if err != nil {
		h.reportError(chatID, err)
		return
	}

	h.sendWithKeyboard(chatID,
		fmt.Sprintf("⚠️ حذف %s نهائياً؟ تبقى سجلات الإجازات كما هي.", person.Name),
		confirmKeyboard(cbDeletePerson, person.ID))
}

func (h *Handler) confirmDeletePerson(chatID int64, id string) {
	if err := h.roster.Delete(id); err != nil {
		h.reportError(chatID, err)
		return
	}
	h.send(chatID, "🗑 تم الحذف.")
}
