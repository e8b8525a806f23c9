package pages

import (
	"time"

	"github.com/danielsheh02/willy-wonka-factory/tests/e2e/config"
	"github.com/playwright-community/playwright-go"
)

var (
	taskCreateButton = XPath(`//button[contains(text(), 'Создать')]`)
	taskDialogTitle  = XPath(`//h2[contains(text(), 'задачу')]`)
	taskName         = inputByLabel.Format("Название")
	taskDescription  = areaByLabel.Format("Описание")
	taskStatusSelect = XPath(`//label[contains(text(), 'Статус')]/..//div[@role='combobox' or contains(@class, 'MuiSelect')]`)
	taskUserSelect   = XPath(`//label[contains(text(), 'Выбрать рабочего')]/..//div[@role='combobox' or contains(@class, 'MuiSelect')]`)
	taskAllButton    = XPath(`//button[@aria-label='все задачи' or contains(., 'Все')]`)
	taskMineButton   = XPath(`//button[@aria-label='мои задачи' or contains(., 'Мои')]`)
	taskStatusOption = Template(`//li[@role='option' and @data-value=%s]`)
	taskEditInRow    = Template(`//div[@role='row' and contains(., %s)]//button[@title='Редактировать']`)
	taskStatusInRow  = Template(`//div[@role='row' and contains(., %s)]//span[contains(@class, 'MuiChip')]`)
)

// TasksPage is the task board at /tasks.
type TasksPage struct {
	Base
}

// NewTasksPage binds the task board to page.
func NewTasksPage(page playwright.Page, cfg *config.Config) *TasksPage {
	return &TasksPage{Base: NewBase(page, cfg, "/tasks")}
}

// CreateTask creates a task assigned to worker. An empty status keeps the
// form default.
func (p *TasksPage) CreateTask(name, description, worker string, status TaskStatus) error {
	if err := p.OpenDialog(taskCreateButton); err != nil {
		return err
	}
	if _, err := p.Find(taskDialogTitle); err != nil {
		return err
	}
	if err := p.Type(taskName, name); err != nil {
		return err
	}
	if err := p.Type(taskDescription, description); err != nil {
		return err
	}
	if worker != "" {
		if err := p.Choose(taskUserSelect, optionByText.Format(worker)); err != nil {
			return err
		}
	}
	if status != "" {
		if err := p.Choose(taskStatusSelect, taskStatusOption.Format(string(status))); err != nil {
			return err
		}
	}
	return p.SaveDialog()
}

// ShowAllTasks switches the board to every task.
func (p *TasksPage) ShowAllTasks() error {
	if err := p.Click(taskAllButton); err != nil {
		return err
	}
	p.Settle(time.Second)
	return nil
}

// ShowMyTasks switches the board to the signed-in user's tasks.
func (p *TasksPage) ShowMyTasks() error {
	if err := p.Click(taskMineButton); err != nil {
		return err
	}
	p.Settle(time.Second)
	return nil
}

// TaskExists reports whether a row for name shows within five seconds.
func (p *TasksPage) TaskExists(name string) bool {
	return p.HasRow(name, DefaultVisibleTimeout)
}

// EditTaskStatus changes the status of the task called name.
func (p *TasksPage) EditTaskStatus(name string, status TaskStatus) error {
	if err := p.Click(taskEditInRow.Format(name)); err != nil {
		return err
	}
	if _, err := p.Find(taskDialogTitle); err != nil {
		return err
	}
	if err := p.Choose(taskStatusSelect, taskStatusOption.Format(string(status))); err != nil {
		return err
	}
	return p.SaveDialog()
}

// TaskStatus is the text of the status chip in the task's row.
func (p *TasksPage) TaskStatus(name string) (string, error) {
	return p.Text(taskStatusInRow.Format(name))
}
