package handler

import (
	"errors"
	"strings"
	"team-tracker/internal/app"
	"team-tracker/internal/config"
	"team-tracker/internal/models"
	"team-tracker/internal/service"
	"team-tracker/pkg/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// dialog is the in-progress multi-step input of one chat.
type dialog struct {
	step     string
	targetID string
	person   service.PersonInput
	leave    service.LeaveInput
}

type Handler struct {
	client    *telegram.Client
	store     *service.Store
	roster    *service.RosterService
	ledger    *service.LedgerService
	dashboard *service.DashboardService
	backup    *service.BackupService
	reports   *service.ReportService
	dialogs   map[int64]*dialog
	config    *config.Config
}

func NewHandler(client *telegram.Client, a *app.App, cfg *config.Config) *Handler {
	return &Handler{
		client:    client,
		store:     a.Store,
		roster:    a.Roster,
		ledger:    a.Ledger,
		dashboard: a.Dashboard,
		backup:    a.Backup,
		reports:   a.Reports,
		dialogs:   make(map[int64]*dialog),
		config:    cfg,
	}
}

// HandleUpdates processes updates one at a time until the channel closes.
func (h *Handler) HandleUpdates(updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		if update.CallbackQuery != nil {
			h.handleCallbackQuery(update.CallbackQuery)
			continue
		}

		if update.Message == nil {
			continue
		}

		h.handleMessage(update.Message)
	}
}

func (h *Handler) allowed(chatID int64) bool {
	return h.config.OwnerChatID == 0 || chatID == h.config.OwnerChatID
}

func (h *Handler) handleCallbackQuery(callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil {
		return
	}
	chatID := callback.Message.Chat.ID
	data := callback.Data

	// Answer first so the button stops spinning whatever happens next.
	h.client.Bot.Request(tgbotapi.NewCallback(callback.ID, ""))

	if !h.allowed(chatID) {
		return
	}

	editMsg := tgbotapi.NewEditMessageReplyMarkup(chatID, callback.Message.MessageID, tgbotapi.NewInlineKeyboardMarkup())
	h.client.Bot.Send(editMsg)

	action, arg, _ := strings.Cut(data, ":")
	switch action {
	case cbLeavePerson, cbLeaveType, cbLeaveJustified:
		h.handleLeaveCallback(chatID, action, arg)
	case cbDeletePerson:
		h.confirmDeletePerson(chatID, arg)
	case cbDeleteLeave:
		h.confirmDeleteLeave(chatID, arg)
	case cbClearFirst:
		h.askClearAgain(chatID)
	case cbClearFinal:
		h.confirmClear(chatID)
	case cbCancel:
		delete(h.dialogs, chatID)
		h.send(chatID, "❌ تم الإلغاء.")
	}
}

func (h *Handler) handleMessage(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	userName := ""
	if message.From != nil {
		userName = message.From.UserName
	}
	logrus.Infof("[%s] %s", userName, message.Text)

	if !h.allowed(chatID) {
		h.send(chatID, "⛔ هذا البوت خاص.")
		return
	}

	if message.Document != nil {
		h.importDocument(message)
		return
	}

	if message.IsCommand() {
		// A new command abandons any unfinished dialog.
		delete(h.dialogs, chatID)
		h.handleCommand(message)
		return
	}

	if d, exists := h.dialogs[chatID]; exists {
		h.handleDialog(message, d)
		return
	}

	h.send(chatID, "ℹ️ استخدم /help لعرض الأوامر.")
}

func (h *Handler) handleDialog(message *tgbotapi.Message, d *dialog) {
	switch {
	case strings.HasPrefix(d.step, "person_"):
		h.handlePersonDialog(message, d)
	case strings.HasPrefix(d.step, "leave_"):
		h.handleLeaveDialog(message, d)
	}
}

func (h *Handler) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.client.Bot.Send(msg); err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Failed to send message")
	}
}

func (h *Handler) sendWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	if _, err := h.client.Bot.Send(msg); err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Failed to send message")
	}
}

func (h *Handler) sendDocument(chatID int64, name string, data []byte, caption string) {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	doc.Caption = caption
	if _, err := h.client.Bot.Send(doc); err != nil {
		logrus.WithError(err).WithField("file", name).Error("Failed to send document")
		h.send(chatID, "❌ تعذر إرسال الملف.")
	}
}

// reportError tells the user what went wrong. Stale ids are ignored.
func (h *Handler) reportError(chatID int64, err error) {
	if errors.Is(err, models.ErrNotFound) {
		return
	}

	var ve *models.ValidationError
	if errors.As(err, &ve) {
		h.send(chatID, "⚠️ "+validationText(ve))
		return
	}

	logrus.WithError(err).WithField("chat_id", chatID).Error("Operation failed")
	h.send(chatID, "❌ حدث خطأ: "+err.Error())
}

func validationText(ve *models.ValidationError) string {
	switch ve.Field {
	case "name":
		return "الاسم مطلوب."
	case "personId":
		return "اختر فرداً أولاً."
	case "status":
		return "حالة غير معروفة."
	}
	return ve.Error()
}
