package pages

import (
	"strings"

	"golang.org/x/text/cases"
)

// Role is a user role as the backend names it.
type Role string

const (
	RoleWorker  Role = "WORKER"
	RoleForeman Role = "FOREMAN"
	RoleAdmin   Role = "ADMIN"
	RoleMaster  Role = "MASTER"
	RoleGuide   Role = "GUIDE"
)

var roleLabels = map[Role]string{
	RoleWorker:  "Рабочий",
	RoleForeman: "Начальник цеха",
	RoleAdmin:   "Администратор",
	RoleMaster:  "Мастер",
	RoleGuide:   "Экскурсовод",
}

// Label is the text the role select shows for r.
func (r Role) Label() (string, bool) {
	label, ok := roleLabels[r]
	return label, ok
}

// TaskStatus is a task state as the backend names it.
type TaskStatus string

const (
	TaskNotAssigned TaskStatus = "NOT_ASSIGNED"
	TaskInProgress  TaskStatus = "IN_PROGRESS"
	TaskCompleted   TaskStatus = "COMPLETED"
)

// The UI has shown each state under more than one wording.
var taskStatusSynonyms = map[TaskStatus][]string{
	TaskNotAssigned: {"NOT_ASSIGNED", "Не назначена"},
	TaskInProgress:  {"IN_PROGRESS", "В работе", "В процессе"},
	TaskCompleted:   {"COMPLETED", "Выполнено", "Завершена"},
}

// Matches reports whether a status chip's text denotes s.
func (s TaskStatus) Matches(text string) bool {
	fold := cases.Fold()
	text = fold.String(strings.TrimSpace(text))
	if text == "" {
		return false
	}
	for _, synonym := range taskStatusSynonyms[s] {
		if strings.Contains(text, fold.String(synonym)) {
			return true
		}
	}
	return false
}
