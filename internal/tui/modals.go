package tui

import (
	"strings"

	"github.com/jy-crnz/SchedulerDesigner/internal/grid"
	"github.com/jy-crnz/SchedulerDesigner/internal/reconcile"
	"github.com/jy-crnz/SchedulerDesigner/internal/tui/theme"
	"github.com/jy-crnz/SchedulerDesigner/internal/tui/view"
)

var helpLines = []string{
	"h j k l / arrows   move the cursor",
	"enter, e           edit the class",
	"s, *               toggle the free-slot star",
	"d, x               delete the class",
	"m / c              move or copy to another cell",
	"w                  show or hide the weekend",
	"t                  pick a theme",
	"H                  edit year and term",
	"C                  clear the schedule",
	"y                  copy the class text",
	"/                  open the command prompt",
	"q                  quit",
}

// renderModal renders the active modal.
func (m Model) renderModal() string {
	styles := m.styles.modalStyles()
	set := m.styles.modalStyleSet()

	var d view.Dialog
	switch m.modalType {
	case ModalCellForm:
		tags := []string{m.cursorDayName(), reconcile.RowLabel(m.cursor.Row)}
		body := view.RenderFormBody(tags, m.formFields("Subject", "Time", "Room"),
			"Leave the subject empty to clear the cell", set.FormStyles())
		d = view.Dialog{
			Title:   "Edit class",
			Body:    body,
			Buttons: view.FormButtons,
			Compact: true,
		}
	case ModalHeaderForm:
		d = view.Dialog{
			Title:   "Wallpaper header",
			Body:    view.RenderFormBody(nil, m.formFields("Start year", "End year", "Term"), "", set.FormStyles()),
			Buttons: view.FormButtons,
			Compact: true,
		}
	case ModalConfirmClear:
		d = view.Dialog{
			Title:   "Clear schedule",
			Body:    view.RenderConfirmBody("Remove every class and reset the week to Monday to Friday?", set.BodyStyle),
			Buttons: view.ConfirmButtons,
		}
	case ModalTheme:
		d = view.Dialog{
			Title:   "Theme",
			Body:    view.RenderChoiceBody(theme.Available(), m.themeChoice, set.BodyStyle, set.HighlightStyle),
			Buttons: view.ChoiceButtons,
		}
	case ModalHelp:
		d = view.Dialog{
			Title: "Keys",
			Body:  set.BodyStyle.Render(strings.Join(helpLines, "\n")),
			Hint:  set.HintStyle.Render("press any key to close"),
		}
	default:
		return ""
	}
	return d.Render(styles)
}

func (m Model) formFields(labels ...string) []view.FormField {
	fields := make([]view.FormField, 0, len(m.form))
	for i, ti := range m.form {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		fields = append(fields, view.FormField{
			Label:   label,
			Value:   ti.View(),
			Focused: i == m.formFocus,
		})
	}
	return fields
}

func (m Model) cursorDayName() string {
	return strings.ToUpper(grid.DayName(m.cursor.Day))
}
