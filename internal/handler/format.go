package handler

import (
	"fmt"
	"strconv"
	"strings"
	"team-tracker/internal/models"
	"team-tracker/internal/service"
	"team-tracker/pkg/numerals"
	"time"
)

// dateFormats are tried in order after digits are normalized.
var dateFormats = []string{
	"2006-01-02",
	"02.01.2006",
	"02/01/2006",
	"02-01-2006",
	"02.01",
	"02/01",
}

// parseDate reads a date typed by a user. Arabic-Indic digits are accepted,
// "-" or "اليوم" mean today and day.month without a year uses today's year.
func parseDate(input string, today models.Date) (models.Date, error) {
	input = strings.TrimSpace(numerals.ToWestern(input))
	if input == "-" || input == "اليوم" {
		return today, nil
	}

	for _, format := range dateFormats {
		t, err := time.Parse(format, input)
		if err != nil {
			continue
		}
		if !strings.Contains(format, "2006") {
			return models.NewDate(today.Year(), t.Month(), t.Day()), nil
		}
		return models.DateOf(t), nil
	}

	return models.Date{}, fmt.Errorf("صيغة التاريخ غير صحيحة، استخدم YYYY-MM-DD أو DD.MM.YYYY")
}

var statusAliases = map[string]models.PersonStatus{
	"active":       models.StatusActive,
	"في الخدمة":    models.StatusActive,
	"on-leave":     models.StatusOnLeave,
	"leave":        models.StatusOnLeave,
	"في إجازة":     models.StatusOnLeave,
	"absent":       models.StatusAbsent,
	"غياب":         models.StatusAbsent,
	"inactive":     models.StatusInactive,
	"خارج الخدمة":  models.StatusInactive,
}

// parseStatus accepts a status value or its Arabic label without the emoji.
func parseStatus(input string) (models.PersonStatus, bool) {
	status, ok := statusAliases[strings.ToLower(strings.TrimSpace(input))]
	return status, ok
}

// parseLeaveType accepts "leave"/"إجازة" or "absence"/"غياب".
func parseLeaveType(input string) (models.LeaveType, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "leave", "إجازة", "اجازة":
		return models.LeaveTypeLeave, true
	case "absence", "غياب":
		return models.LeaveTypeAbsence, true
	}
	return "", false
}

func parseYesNo(input string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "yes", "y", "true", "1", "نعم":
		return true, true
	case "no", "n", "false", "0", "لا":
		return false, true
	}
	return false, false
}

// parseListArgs splits "/people" arguments into key=value filters and a
// free-text search term. A two-word status label may be typed with a space
// or an underscore.
func parseListArgs(args string) service.ListOptions {
	var opts service.ListOptions
	var search []string

	tokens := strings.Fields(args)
	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		key, value, found := strings.Cut(token, "=")
		if !found {
			search = append(search, token)
			continue
		}
		switch strings.ToLower(key) {
		case "status":
			value = strings.ReplaceAll(value, "_", " ")
			if status, ok := parseStatus(value); ok {
				opts.Status = status
			} else if strings.EqualFold(value, service.StatusFilterAll) {
				opts.Status = service.StatusFilterAll
			} else if i+1 < len(tokens) {
				if status, ok := parseStatus(value + " " + tokens[i+1]); ok {
					opts.Status = status
					i++
				}
			}
		case "sort":
			switch strings.ToLower(value) {
			case service.SortByName, service.SortByDate:
				opts.SortBy = strings.ToLower(value)
			}
		default:
			search = append(search, token)
		}
	}

	opts.Search = strings.Join(search, " ")
	return opts
}

var fieldAliases = map[string]string{
	"name":           "name",
	"الاسم":          "name",
	"title":          "title",
	"الصفة":          "title",
	"phone":          "phone",
	"الهاتف":         "phone",
	"status":         "status",
	"الحالة":         "status",
	"joined":         "joined",
	"تاريخ الانضمام": "joined",
	"notes":          "notes",
	"ملاحظات":        "notes",
	"person":         "person",
	"الفرد":          "person",
	"type":           "type",
	"النوع":          "type",
	"from":           "from",
	"من":             "from",
	"to":             "to",
	"إلى":            "to",
	"reason":         "reason",
	"السبب":          "reason",
	"justified":      "justified",
	"مبرر":           "justified",
}

// parseFieldLines reads "field: value" lines. Unknown fields are returned in
// unknown so the caller can report them.
func parseFieldLines(text string) (fields map[string]string, unknown []string) {
	fields = make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			unknown = append(unknown, line)
			continue
		}
		name, ok := fieldAliases[strings.ToLower(strings.TrimSpace(key))]
		if !ok {
			unknown = append(unknown, strings.TrimSpace(key))
			continue
		}
		fields[name] = strings.TrimSpace(value)
	}
	return fields, unknown
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func formatPersonLine(i int, p models.Person) string {
	return fmt.Sprintf("%d. %s  %s\n   /person %s", i+1, p.Name, service.StatusLabel(p.Status), p.ID)
}

func formatPeople(people []models.Person) string {
	if len(people) == 0 {
		return "📭 لا يوجد أفراد."
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("👥 الأفراد (%d):\n\n", len(people)))
	for i, p := range people {
		b.WriteString(formatPersonLine(i, p))
		b.WriteString("\n")
	}
	return b.String()
}

func formatPerson(p models.Person, leaves []models.Leave) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("👤 %s\n", p.Name))
	b.WriteString(fmt.Sprintf("🆔 %s\n", p.ID))
	b.WriteString(fmt.Sprintf("💼 الصفة: %s\n", orDash(p.Title)))
	b.WriteString(fmt.Sprintf("📞 الهاتف: %s\n", orDash(p.Phone)))
	b.WriteString(fmt.Sprintf("📌 الحالة: %s\n", service.StatusLabel(p.Status)))
	b.WriteString(fmt.Sprintf("📅 تاريخ الانضمام: %s\n", numerals.FormatDate(p.JoinDate.Time)))
	if p.Notes != "" {
		b.WriteString(fmt.Sprintf("📝 ملاحظات: %s\n", p.Notes))
	}
	if p.Archived {
		b.WriteString("🗄 مؤرشف\n")
	}

	if len(leaves) > 0 {
		b.WriteString(fmt.Sprintf("\n🗓 السجل (%d):\n", len(leaves)))
		for _, leave := range leaves {
			b.WriteString(formatLeaveLine(leave))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func formatLeaveLine(l models.Leave) string {
	return fmt.Sprintf("• %s: %s، %s → %s (%s يوم)\n   /leave %s",
		service.LeaveTypeLabel(l.Type),
		l.PersonName,
		numerals.FormatDate(l.StartDate.Time),
		numerals.FormatDate(l.EndDate.Time),
		durationText(l),
		l.ID,
	)
}

// durationText is "-" when a date is missing from an imported record.
func durationText(l models.Leave) string {
	if days := l.Duration(); days > 0 {
		return strconv.Itoa(days)
	}
	return "-"
}

func formatLeaves(leaves []models.Leave) string {
	if len(leaves) == 0 {
		return "📭 لا توجد إجازات أو غيابات."
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("🗓 السجل (%d):\n\n", len(leaves)))
	for _, leave := range leaves {
		b.WriteString(formatLeaveLine(leave))
		b.WriteString("\n")
	}
	return b.String()
}

func formatLeave(l models.Leave) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🗓 %s\n", service.LeaveTypeLabel(l.Type)))
	b.WriteString(fmt.Sprintf("🆔 %s\n", l.ID))
	b.WriteString(fmt.Sprintf("👤 الفرد: %s\n", l.PersonName))
	b.WriteString(fmt.Sprintf("📅 من: %s\n", numerals.FormatDate(l.StartDate.Time)))
	b.WriteString(fmt.Sprintf("📅 إلى: %s\n", numerals.FormatDate(l.EndDate.Time)))
	b.WriteString(fmt.Sprintf("⏳ المدة: %s يوم\n", durationText(l)))
	b.WriteString(fmt.Sprintf("📝 السبب: %s\n", orDash(l.Reason)))
	if l.Type != models.LeaveTypeLeave {
		b.WriteString(fmt.Sprintf("⚖️ مبرر: %s\n", service.JustifiedLabel(l.Justified)))
	}
	return b.String()
}

func formatSummary(s service.Summary) string {
	var b strings.Builder
	b.WriteString("📊 لوحة المتابعة\n\n")
	b.WriteString(fmt.Sprintf("👥 المجموع: %d\n", s.Total))
	b.WriteString(fmt.Sprintf("%s: %d\n", service.StatusLabel(models.StatusActive), s.Active))
	b.WriteString(fmt.Sprintf("%s: %d\n", service.StatusLabel(models.StatusOnLeave), s.OnLeave))
	b.WriteString(fmt.Sprintf("%s: %d\n", service.StatusLabel(models.StatusAbsent), s.Absent))
	b.WriteString(fmt.Sprintf("%s: %d\n", service.StatusLabel(models.StatusInactive), s.Inactive))

	b.WriteString("\n🕘 آخر النشاطات:\n")
	if len(s.Recent) == 0 {
		b.WriteString("لا يوجد نشاط بعد.\n")
		return b.String()
	}
	for _, leave := range s.Recent {
		b.WriteString(formatLeaveLine(leave))
		b.WriteString("\n")
	}
	return b.String()
}
